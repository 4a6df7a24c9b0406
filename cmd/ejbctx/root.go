package main

import (
	"context"
	"ejbctx/internal/core/app"
	"ejbctx/internal/core/config"
	"ejbctx/internal/shared/observability"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const (
	defaultConfigPath = "./ejbctx.toml"
	version           = "0.3.0"
)

// cli carries state shared by subcommands for one invocation.
type cli struct {
	configPath string
	verbose    bool

	cfg      *config.Config
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "ejbctx",
		Short:         "Build LLM-ready context bundles for EJB interfaces",
		Long:          "ejbctx scans a Java EE project, classifies its EJB interfaces and assembles\neach one with its bean, DTO and entity sources for documentation and retrieval.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.teardown(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", defaultConfigPath, "Path to config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newValidateCmd(c),
		newAnalyzeCmd(c),
		newManifestCmd(c),
		newQueryCmd(c),
		newListCmd(c),
		newGenerateCmd(c),
		newWatchCmd(c),
	)
	return root
}

func (c *cli) setup(ctx context.Context) error {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", c.configPath, err)
	}
	c.cfg = cfg

	shutdown, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint, cfg.Observability.ServiceName)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	}
	c.shutdown = shutdown
	return nil
}

func (c *cli) teardown(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return c.shutdown(ctx)
}

// newApp builds an App for commands that need the store or a generator.
func (c *cli) newApp(opts app.Options) (*app.App, error) {
	return app.New(c.cfg, opts)
}
