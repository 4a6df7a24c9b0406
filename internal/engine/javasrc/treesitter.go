package javasrc

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// NodeHandler processes a syntax node. Returning true stops descent into its children.
type NodeHandler func(ctx *WalkContext, node *sitter.Node) bool

// WalkContext carries the source and the methods collected so far.
type WalkContext struct {
	Source        []byte
	InterfaceName string
	Methods       []MethodSignature
	Found         bool
}

func (c *WalkContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

// Walker dispatches node handlers by node kind.
type Walker struct {
	handlers map[string]NodeHandler
}

func NewWalker(handlers map[string]NodeHandler) *Walker {
	return &Walker{handlers: handlers}
}

func (w *Walker) Walk(ctx *WalkContext, node *sitter.Node) {
	if node == nil {
		return
	}
	if handler, ok := w.handlers[node.Kind()]; ok && handler(ctx, node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		w.Walk(ctx, node.Child(i))
	}
}

// TreeSitterExtractor reads methods from the named interface's body only.
// When the grammar does not find the interface it falls back to the regex pattern.
type TreeSitterExtractor struct {
	language *sitter.Language
	walker   *Walker
	fallback MethodExtractor
}

func NewTreeSitterExtractor() *TreeSitterExtractor {
	e := &TreeSitterExtractor{
		language: sitter.NewLanguage(tree_sitter_java.Language()),
		fallback: RegexExtractor{},
	}
	e.walker = NewWalker(map[string]NodeHandler{
		"interface_declaration": e.handleInterface,
	})
	return e
}

func (e *TreeSitterExtractor) Name() string { return "treesitter" }

func (e *TreeSitterExtractor) ExtractMethods(content, interfaceName string) []MethodSignature {
	source := []byte(content)

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(e.language); err != nil {
		return e.fallback.ExtractMethods(content, interfaceName)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return e.fallback.ExtractMethods(content, interfaceName)
	}
	defer tree.Close()

	ctx := &WalkContext{Source: source, InterfaceName: interfaceName, Methods: []MethodSignature{}}
	e.walker.Walk(ctx, tree.RootNode())
	if !ctx.Found {
		return e.fallback.ExtractMethods(content, interfaceName)
	}
	return ctx.Methods
}

func (e *TreeSitterExtractor) handleInterface(ctx *WalkContext, node *sitter.Node) bool {
	if ctx.Found || ctx.Text(node.ChildByFieldName("name")) != ctx.InterfaceName {
		return false
	}
	ctx.Found = true

	body := node.ChildByFieldName("body")
	if body == nil {
		return true
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		member := body.NamedChild(i)
		if member == nil || member.Kind() != "method_declaration" {
			continue
		}
		returnType := strings.TrimSpace(ctx.Text(member.ChildByFieldName("type")))
		if returnType == "" {
			returnType = "void"
		}
		params := ctx.Text(member.ChildByFieldName("parameters"))
		params = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(params), "("), ")")
		ctx.Methods = append(ctx.Methods, MethodSignature{
			ReturnType: returnType,
			Name:       ctx.Text(member.ChildByFieldName("name")),
			Parameters: strings.Join(strings.Fields(params), " "),
		})
	}
	return true
}

// ExtractorFor returns the extractor registered under name, defaulting to regex.
func ExtractorFor(name string) MethodExtractor {
	if strings.EqualFold(strings.TrimSpace(name), "treesitter") {
		return NewTreeSitterExtractor()
	}
	return RegexExtractor{}
}
