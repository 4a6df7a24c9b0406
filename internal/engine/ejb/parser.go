package ejb

import (
	"context"
	"ejbctx/internal/core/errors"
	"ejbctx/internal/engine/javasrc"
	"ejbctx/internal/engine/scanner"
	"ejbctx/internal/engine/symbols"
	"ejbctx/internal/shared/observability"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Options struct {
	Scanner   scanner.Options
	Extractor javasrc.MethodExtractor
	// Read overrides file access; nil reads from disk.
	Read scanner.ReadFunc
}

type Stats struct {
	JavaFiles  int
	Symbols    symbols.Stats
	Links      LinkStats
	Interfaces int
}

// Analysis is everything one parse produced. Nothing in it refers back to the parser.
type Analysis struct {
	ProjectPath string
	Table       *symbols.Table
	Imports     symbols.ImportMap
	Interfaces  []*InterfaceRecord
	Stats       Stats
}

type Parser struct {
	root string
	opts Options
}

func NewParser(root string, opts Options) *Parser {
	if opts.Extractor == nil {
		opts.Extractor = javasrc.RegexExtractor{}
	}
	return &Parser{root: root, opts: opts}
}

// Parse runs scan, symbol table, imports, classification, linking and
// relatedness in order. The context is checked between phases only.
func (p *Parser) Parse(ctx context.Context) (*Analysis, error) {
	ctx, span := observability.Tracer().Start(ctx, "ejb.Parse", trace.WithAttributes(
		attribute.String("project.path", p.root),
		attribute.String("method.extractor", p.opts.Extractor.Name()),
	))
	defer span.End()

	slog.Info("starting EJB analysis", "path", p.root)

	read := p.opts.Read
	if read == nil {
		read = scanner.NewCachedReader(scanner.ReadSource).Read
	}

	var files []string
	if err := p.phase(ctx, "scan", func() error {
		var err error
		files, err = scanner.Scan(p.root, p.opts.Scanner)
		return err
	}); err != nil {
		return nil, err
	}
	observability.FilesScannedTotal.Add(float64(len(files)))

	analysis := &Analysis{ProjectPath: p.root}
	analysis.Stats.JavaFiles = len(files)

	if err := p.phase(ctx, "symbols", func() error {
		analysis.Table, analysis.Stats.Symbols = symbols.Build(files, read)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := p.phase(ctx, "imports", func() error {
		analysis.Imports = symbols.BuildImports(analysis.Table, read)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := p.phase(ctx, "classify", func() error {
		analysis.Interfaces = Classify(analysis.Table, read, p.opts.Extractor)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := p.phase(ctx, "link", func() error {
		analysis.Stats.Links = LinkBeans(analysis.Interfaces, analysis.Table, read)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := p.phase(ctx, "relate", func() error {
		for _, record := range analysis.Interfaces {
			ResolveRelated(record, analysis.Imports)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	analysis.Stats.Interfaces = len(analysis.Interfaces)
	span.SetAttributes(attribute.Int("ejb.interfaces", analysis.Stats.Interfaces))
	slog.Info("found EJB interfaces", "count", analysis.Stats.Interfaces,
		"linked", analysis.Stats.Links.ByNaming+analysis.Stats.Links.ByImplements)
	return analysis, nil
}

func (p *Parser) phase(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeCanceled, "analysis canceled"), errors.CtxPhase, name)
	}

	_, span := observability.Tracer().Start(ctx, "ejb.phase."+name)
	defer span.End()

	started := time.Now()
	err := fn()
	observability.PhaseDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())
	if err != nil {
		span.RecordError(err)
		return errors.AddContext(err, errors.CtxPhase, name)
	}
	return nil
}
