package ejb

import (
	"ejbctx/internal/engine/javasrc"
	"ejbctx/internal/engine/scanner"
	"ejbctx/internal/engine/symbols"
	"ejbctx/internal/shared/observability"
	"log/slog"
	"strings"
)

// EJBAnnotations are the annotation fragments that mark an interface as an EJB
// contract, matched case-insensitively as substrings.
var EJBAnnotations = []string{"Remote", "Local", "Stateless", "Stateful", "Singleton", "MessageDriven", "EJB", "EJBs"}

// NamingSuffixes are the interface-name conventions of EJB contracts.
var NamingSuffixes = []string{"Remote", "Local", "Service", "DAO", "Repository"}

// MatchesNamingConvention reports whether name ends in a recognised suffix.
func MatchesNamingConvention(name string) bool {
	for _, suffix := range NamingSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// IsEJBAnnotation reports whether annotation mentions an EJB marker.
func IsEJBAnnotation(annotation string) bool {
	upper := strings.ToUpper(annotation)
	for _, marker := range EJBAnnotations {
		if strings.Contains(upper, strings.ToUpper(marker)) {
			return true
		}
	}
	return false
}

// Qualifies reports whether an interface carries EJB characteristics.
func Qualifies(name string, annotations []string) bool {
	for _, ann := range annotations {
		if IsEJBAnnotation(ann) {
			return true
		}
	}
	return MatchesNamingConvention(name)
}

// CategoryFor decides Remote, then Local, from annotations and the name, then
// Business for the remaining naming conventions.
func CategoryFor(name string, annotations []string) Category {
	mentions := func(word string) bool {
		if strings.Contains(name, word) {
			return true
		}
		for _, ann := range annotations {
			if strings.Contains(ann, word) {
				return true
			}
		}
		return false
	}

	switch {
	case mentions("Remote"):
		return CategoryRemote
	case mentions("Local"):
		return CategoryLocal
	case MatchesNamingConvention(name):
		return CategoryBusiness
	default:
		return CategoryUnknown
	}
}

// Classify visits the simple-name symbols in (path, name) order and returns a
// record for every qualifying interface. Each name is classified at most once.
func Classify(table *symbols.Table, read scanner.ReadFunc, extractor javasrc.MethodExtractor) []*InterfaceRecord {
	if read == nil {
		read = scanner.ReadSource
	}
	if extractor == nil {
		extractor = javasrc.RegexExtractor{}
	}

	seen := make(map[string]bool)
	records := make([]*InterfaceRecord, 0)
	for _, name := range table.SimpleNames() {
		if seen[name] {
			continue
		}
		path, _ := table.Lookup(name)
		content, err := read(path)
		if err != nil {
			slog.Warn("failed to identify interface", "symbol", name, "path", path, "error", err)
			observability.FileReadFailuresTotal.WithLabelValues("classify").Inc()
			continue
		}
		if !javasrc.HasInterfaceDeclaration(content, name) {
			continue
		}

		annotations := javasrc.ExtractInterfaceAnnotations(content, name)
		if !Qualifies(name, annotations) {
			continue
		}
		seen[name] = true

		pkg := javasrc.ExtractPackage(content)
		record := &InterfaceRecord{
			ID:              qualifiedID(pkg, name),
			InterfaceName:   name,
			FilePath:        path,
			Package:         pkg,
			Annotations:     annotations,
			Category:        CategoryFor(name, annotations),
			Methods:         extractor.ExtractMethods(content, name),
			RelatedDTOs:     []string{},
			RelatedEntities: []string{},
		}
		if record.Methods == nil {
			record.Methods = []javasrc.MethodSignature{}
		}
		observability.InterfacesFoundTotal.WithLabelValues(string(record.Category)).Inc()
		slog.Debug("classified interface", "symbol", name, "category", record.Category, "methods", len(record.Methods))
		records = append(records, record)
	}
	return records
}
