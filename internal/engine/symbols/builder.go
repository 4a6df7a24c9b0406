package symbols

import (
	"ejbctx/internal/engine/javasrc"
	"ejbctx/internal/engine/scanner"
	"ejbctx/internal/shared/observability"
	"log/slog"
	"sort"
)

type Stats struct {
	FilesScanned int
	FilesFailed  int
	Declarations int
	Collisions   int
}

// Build registers every type declared in files. Files are visited in sorted
// order so that collisions resolve to the lexicographically greatest path.
// Unreadable files are logged and skipped.
func Build(files []string, read scanner.ReadFunc) (*Table, Stats) {
	if read == nil {
		read = scanner.ReadSource
	}
	ordered := append([]string(nil), files...)
	sort.Strings(ordered)

	table := NewTable()
	var stats Stats
	for _, path := range ordered {
		content, err := read(path)
		if err != nil {
			slog.Warn("failed to read source file", "path", path, "error", err)
			observability.FileReadFailuresTotal.WithLabelValues("symbols").Inc()
			stats.FilesFailed++
			continue
		}
		stats.FilesScanned++

		pkg := javasrc.ExtractPackage(content)
		for _, decl := range javasrc.ExtractTypeDeclarations(content) {
			table.Add(pkg, decl.Name, path)
			stats.Declarations++
		}
	}

	stats.Collisions = len(table.collisions)
	for _, c := range table.collisions {
		slog.Debug("type name collision", "name", c.Name, "kept", c.Kept, "shadowed", c.Shadowed)
	}
	observability.SymbolTableEntries.Set(float64(table.Len()))
	slog.Info("built symbol table", "entries", table.Len(), "files", stats.FilesScanned, "failed", stats.FilesFailed)
	return table, stats
}

// ImportMap maps a file path to the names it imports, wildcards kept.
type ImportMap map[string][]string

// Imports returns the imports of path, or nil.
func (m ImportMap) Imports(path string) []string {
	return m[path]
}

// BuildImports reads each distinct file behind a simple-name entry once.
// A file that cannot be read maps to an empty set.
func BuildImports(table *Table, read scanner.ReadFunc) ImportMap {
	if read == nil {
		read = scanner.ReadSource
	}
	imports := make(ImportMap)
	for _, path := range table.Files() {
		content, err := read(path)
		if err != nil {
			slog.Warn("failed to analyze imports", "path", path, "error", err)
			observability.FileReadFailuresTotal.WithLabelValues("imports").Inc()
			imports[path] = []string{}
			continue
		}
		imports[path] = javasrc.ExtractImports(content)
	}
	return imports
}
