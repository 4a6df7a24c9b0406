package javasrc

import (
	"regexp"
	"strings"
)

// MethodSignature is a method as captured from source text.
type MethodSignature struct {
	ReturnType string `json:"return_type"`
	Name       string `json:"name"`
	Parameters string `json:"parameters"`
}

// MethodExtractor pulls method signatures for one interface out of its file.
type MethodExtractor interface {
	Name() string
	ExtractMethods(content, interfaceName string) []MethodSignature
}

var methodPattern = regexp.MustCompile(`(?:\b(\w+(?:<[^>]+>)?(?:\[\])?)\s+)?(\w+)\s*\(([^)]*)\)(?:\s+throws\s+[^{;]+)?\s*[;{]`)

// Words the signature pattern picks up from statements and declarations.
var nonMethodWords = map[string]bool{
	"if":           true,
	"while":        true,
	"for":          true,
	"catch":        true,
	"class":        true,
	"interface":    true,
	"switch":       true,
	"return":       true,
	"new":          true,
	"synchronized": true,
	"throw":        true,
	"else":         true,
	"case":         true,
	"try":          true,
	"do":           true,
}

// ExtractMethods runs the permissive signature pattern over the whole text.
// A missing return type is recorded as "void".
func ExtractMethods(content string) []MethodSignature {
	matches := methodPattern.FindAllStringSubmatch(content, -1)
	methods := make([]MethodSignature, 0, len(matches))
	for _, m := range matches {
		returnType, name := m[1], m[2]
		if nonMethodWords[name] || nonMethodWords[returnType] {
			continue
		}
		if returnType == "" {
			returnType = "void"
		}
		methods = append(methods, MethodSignature{
			ReturnType: returnType,
			Name:       name,
			Parameters: strings.TrimSpace(m[3]),
		})
	}
	return methods
}

// RegexExtractor applies ExtractMethods to the whole file.
type RegexExtractor struct{}

func (RegexExtractor) Name() string { return "regex" }

func (RegexExtractor) ExtractMethods(content, _ string) []MethodSignature {
	return ExtractMethods(content)
}
