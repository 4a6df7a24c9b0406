package app

import (
	"context"
	"ejbctx/internal/core/errors"
	"ejbctx/internal/shared/observability"
	"ejbctx/internal/shared/util"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// DocumentResult summarises a DocumentAll run.
type DocumentResult struct {
	Generated []string
	Failed    map[string]string
}

// Document generates markdown for one stored interface. Only an exact
// (case-insensitive) name match is used.
func (a *App) Document(ctx context.Context, interfaceName string) (string, error) {
	if a.Generator == nil {
		return "", errors.New(errors.CodeNotSupported, "no document generator configured")
	}
	if a.Store == nil {
		return "", errors.New(errors.CodeNotSupported, "context store is disabled")
	}

	ctx, span := observability.Tracer().Start(ctx, "app.Document")
	span.SetAttributes(attribute.String("ejb.interface", interfaceName))
	defer span.End()

	bundle, found, err := a.Store.GetByInterfaceName(ctx, interfaceName)
	if err != nil {
		return "", errors.AddContext(errors.Wrap(err, errors.CodeIO, "query context store"), errors.CtxSymbol, interfaceName)
	}
	if !found {
		err := errors.New(errors.CodeNotFound, fmt.Sprintf("interface %s not found in context store", interfaceName))
		if closest, qErr := a.Store.QueryByInterfaceName(ctx, interfaceName, 1); qErr == nil && len(closest) > 0 {
			err = errors.AddContext(err, "closest", closest[0].Metadata.InterfaceName)
		}
		return "", err
	}

	a.configMu.RLock()
	limiter := a.limiter
	a.configMu.RUnlock()
	if err := limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, errors.CodeCanceled, "waiting for generation slot")
	}

	markdown, err := a.Generator(ctx, bundle.Document, bundle.Metadata.InterfaceName)
	if err != nil {
		observability.GenerationRequestsTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		return "", errors.AddContext(errors.Wrap(err, errors.CodeInternal, "generate documentation"), errors.CtxSymbol, interfaceName)
	}
	observability.GenerationRequestsTotal.WithLabelValues("ok").Inc()
	return markdown, nil
}

// DocumentAll generates a <Name>.md file in outputDir for every stored
// interface. Per-interface failures are collected and do not stop the run.
func (a *App) DocumentAll(ctx context.Context, outputDir string) (DocumentResult, error) {
	res := DocumentResult{Failed: make(map[string]string)}
	if a.Store == nil {
		return res, errors.New(errors.CodeNotSupported, "context store is disabled")
	}
	if strings.TrimSpace(outputDir) == "" {
		outputDir = a.config().Generation.OutputDir
	}

	names, err := a.Store.InterfaceNames(ctx)
	if err != nil {
		return res, errors.Wrap(err, errors.CodeIO, "list stored interfaces")
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrap(err, errors.CodeCanceled, "documentation canceled")
		}

		markdown, err := a.Document(ctx, name)
		if err != nil {
			slog.Warn("failed to document interface", "symbol", name, "error", err)
			res.Failed[name] = errors.MessageOf(err)
			continue
		}

		path := filepath.Join(outputDir, util.SafeFileName(name)+".md")
		if err := util.WriteStringWithDirs(path, markdown, 0o644); err != nil {
			slog.Warn("failed to write documentation", "path", path, "error", err)
			res.Failed[name] = err.Error()
			continue
		}
		res.Generated = append(res.Generated, path)
	}

	slog.Info("documentation generated", "written", len(res.Generated), "failed", len(res.Failed))
	return res, nil
}
