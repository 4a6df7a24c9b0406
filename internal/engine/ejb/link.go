package ejb

import (
	"ejbctx/internal/engine/javasrc"
	"ejbctx/internal/engine/scanner"
	"ejbctx/internal/engine/symbols"
	"ejbctx/internal/shared/observability"
	"log/slog"
	"strings"
)

type LinkStats struct {
	ByNaming     int
	ByImplements int
	Unlinked     int
}

// BeanCandidates lists implementation names to try for an interface, in order.
// Substitutions that leave the name unchanged are omitted.
func BeanCandidates(name string) []string {
	candidates := []string{name + "Bean", name + "Impl", name + "EJB"}
	for _, sub := range [][2]string{
		{"Remote", "Bean"},
		{"Local", "Bean"},
		{"Service", "ServiceImpl"},
		{"DAO", "DAOImpl"},
	} {
		if replaced := strings.ReplaceAll(name, sub[0], sub[1]); replaced != name {
			candidates = append(candidates, replaced)
		}
	}
	return candidates
}

// LinkBeans sets BeanClass on each record: first by naming convention, then by
// scanning other types for an implements clause naming the interface.
func LinkBeans(records []*InterfaceRecord, table *symbols.Table, read scanner.ReadFunc) LinkStats {
	if read == nil {
		read = scanner.ReadSource
	}

	var stats LinkStats
	for _, record := range records {
		if bean := linkByNaming(record.InterfaceName, table); bean != "" {
			record.BeanClass = bean
			stats.ByNaming++
			observability.BeanLinksTotal.WithLabelValues("naming").Inc()
			continue
		}
		if bean := linkByImplements(record.InterfaceName, table, read); bean != "" {
			record.BeanClass = bean
			stats.ByImplements++
			observability.BeanLinksTotal.WithLabelValues("implements").Inc()
			continue
		}
		stats.Unlinked++
		observability.BeanLinksTotal.WithLabelValues("none").Inc()
		slog.Debug("no bean found", "symbol", record.InterfaceName)
	}
	return stats
}

func linkByNaming(name string, table *symbols.Table) string {
	for _, candidate := range BeanCandidates(name) {
		if table.Has(candidate) {
			return candidate
		}
	}
	return ""
}

// linkByImplements prefers a type whose own declaration implements name and
// falls back to the first type whose file mentions it in any implements clause.
func linkByImplements(name string, table *symbols.Table, read scanner.ReadFunc) string {
	fileHit := ""
	for _, candidate := range table.SimpleNames() {
		if candidate == name {
			continue
		}
		path, _ := table.Lookup(candidate)
		content, err := read(path)
		if err != nil {
			continue
		}
		if !javasrc.ImplementsInterface(content, name) {
			continue
		}
		if javasrc.DeclaresImplementation(content, candidate, name) {
			return candidate
		}
		if fileHit == "" {
			fileHit = candidate
		}
	}
	return fileHit
}
