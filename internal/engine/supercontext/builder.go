package supercontext

import (
	"ejbctx/internal/core/errors"
	"ejbctx/internal/engine/ejb"
	"ejbctx/internal/engine/scanner"
	"ejbctx/internal/engine/symbols"
	"ejbctx/internal/shared/observability"
	"fmt"
	"log/slog"
)

type Options struct {
	MaxSourceBytes int
	// Read overrides file access; nil reads from disk.
	Read scanner.ReadFunc
}

type Stats struct {
	Built          int
	Failed         int
	DroppedRelated int
	Truncated      int
}

type builder struct {
	table    *symbols.Table
	read     scanner.ReadFunc
	maxBytes int
	stats    *Stats
}

func newBuilder(table *symbols.Table, opts Options, stats *Stats) *builder {
	b := &builder{table: table, read: opts.Read, maxBytes: opts.MaxSourceBytes, stats: stats}
	if b.read == nil {
		b.read = scanner.ReadSource
	}
	if b.maxBytes <= 0 {
		b.maxBytes = DefaultMaxSourceBytes
	}
	if b.stats == nil {
		b.stats = &Stats{}
	}
	return b
}

// Build assembles the bundle for one record. It fails only when the interface
// file itself cannot be read or is empty.
func Build(record *ejb.InterfaceRecord, table *symbols.Table, opts Options) (*SuperContext, error) {
	return newBuilder(table, opts, nil).build(record)
}

// BuildAll builds a bundle for every record, skipping the ones that fail.
func BuildAll(records []*ejb.InterfaceRecord, table *symbols.Table, opts Options) ([]*SuperContext, Stats) {
	var stats Stats
	b := newBuilder(table, opts, &stats)

	contexts := make([]*SuperContext, 0, len(records))
	for _, record := range records {
		sc, err := b.build(record)
		if err != nil {
			slog.Warn("failed to build super-context", "symbol", record.InterfaceName, "error", err)
			stats.Failed++
			continue
		}
		contexts = append(contexts, sc)
	}
	stats.Built = len(contexts)
	slog.Info("built super-contexts", "count", stats.Built, "failed", stats.Failed, "dropped_related", stats.DroppedRelated)
	return contexts, stats
}

func (b *builder) build(record *ejb.InterfaceRecord) (*SuperContext, error) {
	interfaceCode, err := b.read(record.FilePath)
	if err != nil {
		observability.FileReadFailuresTotal.WithLabelValues("assemble").Inc()
		err = errors.Wrap(err, errors.CodeIO, "read interface source")
		err = errors.AddContext(err, errors.CtxPath, record.FilePath)
		return nil, errors.AddContext(err, errors.CtxSymbol, record.InterfaceName)
	}
	if interfaceCode == "" {
		err := errors.New(errors.CodeValidationError, "interface source is empty")
		err = errors.AddContext(err, errors.CtxPath, record.FilePath)
		return nil, errors.AddContext(err, errors.CtxSymbol, record.InterfaceName)
	}

	sc := &SuperContext{
		InterfaceName: record.InterfaceName,
		InterfaceCode: b.cap(interfaceCode),
		DTOs:          []Source{},
		Entities:      []Source{},
		Dropped:       []string{},
	}

	if record.BeanClass != "" {
		if code, ok := b.source(record.BeanClass); ok {
			sc.BeanCode = code
			sc.Metadata.HasBean = true
		}
	}

	for _, name := range record.RelatedDTOs {
		if code, ok := b.source(name); ok {
			sc.DTOs = append(sc.DTOs, Source{Name: name, Code: code})
			continue
		}
		sc.Dropped = append(sc.Dropped, name)
	}
	for _, name := range record.RelatedEntities {
		if code, ok := b.source(name); ok {
			sc.Entities = append(sc.Entities, Source{Name: name, Code: code})
			continue
		}
		sc.Dropped = append(sc.Dropped, name)
	}
	if n := len(sc.Dropped); n > 0 {
		b.stats.DroppedRelated += n
		observability.RelatedDroppedTotal.Add(float64(n))
		slog.Debug("related types without source", "symbol", record.InterfaceName, "dropped", sc.Dropped)
	}

	sc.Metadata = Metadata{
		InterfaceName: record.InterfaceName,
		Package:       record.Package,
		Category:      record.Category,
		BeanClass:     record.BeanClass,
		HasBean:       sc.Metadata.HasBean,
		DTOCount:      len(sc.DTOs),
		EntityCount:   len(sc.Entities),
		MethodCount:   len(record.Methods),
		Methods:       record.MethodNames(),
	}
	return sc, nil
}

// source resolves name through the symbol table and reads the file.
func (b *builder) source(name string) (string, bool) {
	path, ok := b.table.Lookup(name)
	if !ok {
		return "", false
	}
	code, err := b.read(path)
	if err != nil {
		slog.Warn("failed to read related source", "symbol", name, "path", path, "error", err)
		observability.FileReadFailuresTotal.WithLabelValues("assemble").Inc()
		return "", false
	}
	if code == "" {
		return "", false
	}
	return b.cap(code), true
}

func (b *builder) cap(code string) string {
	if len(code) <= b.maxBytes {
		return code
	}
	b.stats.Truncated++
	cut := b.maxBytes
	// keep whole UTF-8 sequences
	for cut > 0 && code[cut]&0xC0 == 0x80 {
		cut--
	}
	return fmt.Sprintf("%s\n// ... truncated %d bytes", code[:cut], len(code)-cut)
}
