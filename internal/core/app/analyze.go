package app

import (
	"context"
	"ejbctx/internal/core/errors"
	"ejbctx/internal/core/ports"
	"ejbctx/internal/engine/ejb"
	"ejbctx/internal/engine/project"
	"ejbctx/internal/engine/supercontext"
	"ejbctx/internal/shared/observability"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type AnalyzeRequest struct {
	// Path is a project directory or a .zip archive.
	Path string
	// ManifestPath overrides output.manifest when non-empty.
	ManifestPath string
}

// Result describes one analysis run. Success is false only when the input
// could not be analyzed at all; export problems land in Warnings.
type Result struct {
	RunID       string
	Success     bool
	Message     string
	Warnings    []string
	ProjectRoot string
	FromArchive bool

	Validation   project.Result
	Analysis     *ejb.Analysis
	Contexts     []*supercontext.SuperContext
	ContextStats supercontext.Stats

	BackupDir      string
	BackupsWritten int
	BundlesStored  int
	ManifestPath   string
}

func (r *Result) warn(msg string, err error) {
	slog.Warn(msg, "error", err)
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %v", msg, err))
}

// Analyze validates the input, parses it, builds a bundle per interface and
// exports the bundles. It never panics; failures are reported in the Result.
func (a *App) Analyze(ctx context.Context, req AnalyzeRequest) (res Result) {
	a.analyzeMu.Lock()
	defer a.analyzeMu.Unlock()

	cfg := a.config()
	res.RunID = uuid.NewString()

	ctx, span := observability.Tracer().Start(ctx, "app.Analyze")
	span.SetAttributes(attribute.String("run.id", res.RunID), attribute.String("input.path", req.Path))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis panicked", "path", req.Path, "panic", r)
			res.Success = false
			res.Message = fmt.Sprintf("internal error: %v", r)
			span.SetStatus(codes.Error, res.Message)
		}
	}()

	input, err := project.PrepareInput(req.Path)
	if err != nil {
		res.Message = errors.MessageOf(err)
		span.SetStatus(codes.Error, res.Message)
		return res
	}
	defer func() {
		if err := input.Cleanup(); err != nil {
			slog.Warn("failed to remove extracted archive", "path", input.Root, "error", err)
		}
	}()
	res.ProjectRoot = input.Root
	res.FromArchive = input.FromArchive

	res.Validation = project.Validate(input.Root, cfg.Analysis.SampleLimit, ScannerOptions(cfg))
	if !res.Validation.Valid {
		res.Message = res.Validation.Message
		span.SetStatus(codes.Error, res.Message)
		return res
	}

	analysis, err := ejb.NewParser(input.Root, ParserOptions(cfg)).Parse(ctx)
	if err != nil {
		res.Message = errors.MessageOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, res.Message)
		return res
	}
	res.Analysis = analysis

	_, buildSpan := observability.Tracer().Start(ctx, "app.BuildContexts")
	res.Contexts, res.ContextStats = supercontext.BuildAll(analysis.Interfaces, analysis.Table, contextOptions(cfg))
	buildSpan.SetAttributes(attribute.Int("contexts.built", res.ContextStats.Built))
	buildSpan.End()

	res.Success = true
	res.Message = fmt.Sprintf("Found %d EJB interfaces", len(analysis.Interfaces))
	span.SetAttributes(attribute.Int("ejb.interfaces", len(analysis.Interfaces)))

	a.writeBackups(cfg.Output.BackupsEnabled(), cfg.Output.BackupDir, &res)
	a.storeBundles(ctx, analysis, &res)

	manifestPath := req.ManifestPath
	if manifestPath == "" {
		manifestPath = cfg.Output.Manifest
	}
	if manifestPath != "" {
		if err := ejb.SaveManifest(manifestPath, input.Root, analysis.Interfaces); err != nil {
			res.warn("failed to save manifest", err)
		} else {
			res.ManifestPath = manifestPath
		}
	}

	slog.Info("analysis complete", "run", res.RunID, "interfaces", len(analysis.Interfaces),
		"contexts", res.ContextStats.Built, "warnings", len(res.Warnings))
	return res
}

// writeBackups resolves a relative backup dir against the project root, or
// against the working directory for archive input whose root is temporary.
func (a *App) writeBackups(enabled bool, dir string, res *Result) {
	if !enabled || len(res.Contexts) == 0 {
		return
	}
	if !filepath.IsAbs(dir) {
		base := res.ProjectRoot
		if res.FromArchive {
			cwd, err := os.Getwd()
			if err != nil {
				res.warn("failed to resolve backup directory", err)
				return
			}
			base = cwd
		}
		dir = filepath.Join(base, dir)
	}

	n, err := supercontext.SaveBackups(dir, res.Contexts)
	res.BackupsWritten = n
	res.BackupDir = dir
	if err != nil {
		res.warn("failed to save context backups", err)
	}
}

// storeBundles replaces the collection with this run's bundles. Clear and add
// are not atomic: a failed add leaves the collection empty.
func (a *App) storeBundles(ctx context.Context, analysis *ejb.Analysis, res *Result) {
	if a.Store == nil {
		return
	}
	if err := a.Store.Clear(ctx); err != nil {
		res.warn("failed to clear context store", err)
		return
	}
	if len(res.Contexts) == 0 {
		return
	}

	bundles := Bundles(res.Contexts, analysis.Interfaces)
	if err := a.Store.AddBundles(ctx, bundles); err != nil {
		res.warn("failed to store context bundles", err)
		return
	}
	res.BundlesStored = len(bundles)
}

// Bundles converts built contexts into store documents.
func Bundles(contexts []*supercontext.SuperContext, records []*ejb.InterfaceRecord) []ports.Bundle {
	ids := make(map[string]string, len(records))
	for _, record := range records {
		ids[record.InterfaceName] = record.ID
	}

	bundles := make([]ports.Bundle, 0, len(contexts))
	for _, sc := range contexts {
		md := sc.Metadata
		bundles = append(bundles, ports.Bundle{
			Document: supercontext.FormatRetrieval(sc),
			Metadata: ports.BundleMetadata{
				InterfaceID:   ids[sc.InterfaceName],
				InterfaceName: sc.InterfaceName,
				Package:       md.Package,
				InterfaceType: string(md.Category),
				BeanClass:     md.BeanClass,
				HasBean:       md.HasBean,
				DTOCount:      md.DTOCount,
				EntityCount:   md.EntityCount,
				MethodCount:   md.MethodCount,
			},
			Methods: md.Methods,
		})
	}
	return bundles
}
