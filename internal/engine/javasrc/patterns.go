// Package javasrc holds the surface-level Java heuristics used by the EJB
// analysis: package, type and import capture, annotation capture, method
// signatures and implements clauses. None of it is a Java parser.
package javasrc

import (
	"regexp"
	"strings"
)

var (
	packagePattern = regexp.MustCompile(`package\s+([\w.]+)\s*;`)
	typePattern    = regexp.MustCompile(`(?:public\s+)?(?:abstract\s+)?(?:final\s+)?\b(class|interface|enum)\s+(\w+)`)
	importPattern  = regexp.MustCompile(`import\s+(?:static\s+)?([\w.*]+)\s*;`)
)

// TypeDeclaration is one `class|interface|enum Name` occurrence.
type TypeDeclaration struct {
	Kind string
	Name string
}

// ExtractPackage returns the first declared package, or "".
func ExtractPackage(content string) string {
	m := packagePattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractTypeDeclarations returns every class, interface and enum declaration in
// source order. Nested types are included.
func ExtractTypeDeclarations(content string) []TypeDeclaration {
	matches := typePattern.FindAllStringSubmatch(content, -1)
	decls := make([]TypeDeclaration, 0, len(matches))
	for _, m := range matches {
		decls = append(decls, TypeDeclaration{Kind: m[1], Name: m[2]})
	}
	return decls
}

// ExtractImports returns the imported names as written, wildcards included.
// Duplicates are removed; order follows the source.
func ExtractImports(content string) []string {
	matches := importPattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]bool, len(matches))
	imports := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		imports = append(imports, m[1])
	}
	return imports
}

// HasInterfaceDeclaration reports whether content declares `interface <name>`.
func HasInterfaceDeclaration(content, name string) bool {
	return interfaceDeclPattern(name).MatchString(content)
}

// ImplementsInterface reports whether an implements clause in content names
// the interface before the next opening brace.
func ImplementsInterface(content, name string) bool {
	if name == "" {
		return false
	}
	return regexp.MustCompile(`implements\s+[^{]*\b` + regexp.QuoteMeta(name) + `\b`).MatchString(content)
}

// DeclaresImplementation reports whether the declaration of typeName itself
// carries an implements clause naming iface.
func DeclaresImplementation(content, typeName, iface string) bool {
	if typeName == "" || iface == "" {
		return false
	}
	pattern := `\b(?:class|enum|record)\s+` + regexp.QuoteMeta(typeName) + `\b[^{]*\bimplements\s+[^{]*\b` + regexp.QuoteMeta(iface) + `\b`
	return regexp.MustCompile(pattern).MatchString(content)
}

func interfaceDeclPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\binterface\s+` + regexp.QuoteMeta(name) + `\b`)
}

// SimpleName returns the last dotted segment of a qualified name.
func SimpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// StripGenerics removes angle brackets, so List<OrderDTO> becomes ListOrderDTO.
func StripGenerics(typeName string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(typeName)
}

// ParameterTypes returns the first token of every comma-separated parameter
// that has at least a type and a name.
func ParameterTypes(parameters string) []string {
	if strings.TrimSpace(parameters) == "" {
		return nil
	}
	var types []string
	for _, param := range strings.Split(parameters, ",") {
		parts := strings.Fields(param)
		if len(parts) >= 2 {
			types = append(types, parts[0])
		}
	}
	return types
}
