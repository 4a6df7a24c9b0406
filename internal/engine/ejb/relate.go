package ejb

import (
	"ejbctx/internal/engine/javasrc"
	"ejbctx/internal/engine/symbols"
	"sort"
	"strings"
)

// Name fragments marking data-transfer and persistence types. Matching is case-sensitive.
var (
	DTOMarkers    = []string{"DTO", "Dto", "Data", "Value", "VO", "Model"}
	EntityMarkers = []string{"Entity", "Persistable", "Table", "JPA"}
)

func IsDTOName(name string) bool {
	return containsAny(name, DTOMarkers)
}

func IsEntityName(name string) bool {
	return containsAny(name, EntityMarkers)
}

func containsAny(name string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// RelatedCandidates returns the type names an interface touches: the last
// segment of each non-wildcard import, each non-void return type and the first
// token of each parameter.
func RelatedCandidates(imports []string, methods []javasrc.MethodSignature) []string {
	return append(importCandidates(imports), methodCandidates(methods)...)
}

func importCandidates(imports []string) []string {
	var candidates []string
	for _, imp := range imports {
		if name := javasrc.SimpleName(imp); name != "*" && name != "" {
			candidates = append(candidates, name)
		}
	}
	return candidates
}

func methodCandidates(methods []javasrc.MethodSignature) []string {
	var candidates []string
	for _, m := range methods {
		if m.ReturnType != "" && m.ReturnType != "void" {
			candidates = append(candidates, cleanTypeName(m.ReturnType))
		}
		for _, param := range javasrc.ParameterTypes(m.Parameters) {
			candidates = append(candidates, cleanTypeName(param))
		}
	}
	return candidates
}

func cleanTypeName(typeName string) string {
	name := javasrc.StripGenerics(javasrc.SimpleName(typeName))
	return strings.TrimRight(name, "[]")
}

// ResolveRelated fills RelatedDTOs and RelatedEntities from the interface's
// imports and method signatures. An imported name lands in at most one list,
// DTO first; a signature type may land in both. Both lists are deduplicated
// and sorted.
func ResolveRelated(record *InterfaceRecord, imports symbols.ImportMap) {
	dtos := make(map[string]bool)
	entities := make(map[string]bool)
	for _, name := range importCandidates(imports.Imports(record.FilePath)) {
		if IsDTOName(name) {
			dtos[name] = true
		} else if IsEntityName(name) {
			entities[name] = true
		}
	}
	for _, name := range methodCandidates(record.Methods) {
		if name == "" {
			continue
		}
		if IsDTOName(name) {
			dtos[name] = true
		}
		if IsEntityName(name) {
			entities[name] = true
		}
	}
	record.RelatedDTOs = sortedSet(dtos)
	record.RelatedEntities = sortedSet(entities)
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
