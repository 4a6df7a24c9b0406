package supercontext

import (
	"fmt"
	"strings"
)

// FormatArchive renders the bundle as the backup file text.
func FormatArchive(sc *SuperContext) string {
	var lines []string

	lines = append(lines,
		"// --- Interface Definition ---",
		"// File: "+sc.InterfaceName,
		sc.InterfaceCode,
		"",
	)

	if sc.BeanCode != "" {
		lines = append(lines, "// --- Implementation Bean ---")
		if sc.Metadata.BeanClass != "" {
			lines = append(lines, "// Class: "+sc.Metadata.BeanClass)
		}
		lines = append(lines, sc.BeanCode, "")
	}

	if len(sc.DTOs) > 0 {
		lines = append(lines, "// --- Related DTOs ---")
		for _, dto := range sc.DTOs {
			lines = append(lines, "// DTO: "+dto.Name, dto.Code, "")
		}
	}

	if len(sc.Entities) > 0 {
		lines = append(lines, "// --- Related Entities ---")
		for _, entity := range sc.Entities {
			lines = append(lines, "// Entity: "+entity.Name, entity.Code, "")
		}
	}

	return strings.Join(lines, "\n")
}

// FormatRetrieval renders the bundle as a store document: a short header for
// matching followed by the sources.
func FormatRetrieval(sc *SuperContext) string {
	lines := []string{
		"INTERFACE: " + sc.InterfaceName,
		"PACKAGE: " + sc.Metadata.Package,
		fmt.Sprintf("TYPE: %s", sc.Metadata.Category),
	}
	if len(sc.Metadata.Methods) > 0 {
		lines = append(lines, "METHODS: "+strings.Join(sc.Metadata.Methods, ", "))
	}
	lines = append(lines, "", formatSources(sc))
	return strings.Join(lines, "\n")
}

func formatSources(sc *SuperContext) string {
	lines := []string{"// --- Interface Definition ---", sc.InterfaceCode, ""}

	if sc.BeanCode != "" {
		lines = append(lines, "// --- Implementation Bean ---", sc.BeanCode, "")
	}
	if len(sc.DTOs) > 0 {
		lines = append(lines, "// --- Related DTOs ---")
		for _, dto := range sc.DTOs {
			lines = append(lines, "// DTO: "+dto.Name, dto.Code)
		}
	}
	if len(sc.Entities) > 0 {
		lines = append(lines, "// --- Related Entities ---")
		for _, entity := range sc.Entities {
			lines = append(lines, "// Entity: "+entity.Name, entity.Code)
		}
	}
	return strings.Join(lines, "\n")
}
