package main

import (
	"context"
	"ejbctx/internal/core/app"
	"ejbctx/internal/core/config"
	"ejbctx/internal/core/ports"
	"ejbctx/internal/engine/ejb"
	"ejbctx/internal/engine/project"
	"ejbctx/internal/shared/util"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var errInvalidProject = errors.New("project is not a valid EJB project")

func newValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check whether a directory or .zip looks like an EJB project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := project.PrepareInput(args[0])
			if err != nil {
				return err
			}
			defer input.Cleanup()

			res := project.Validate(input.Root, c.cfg.Analysis.SampleLimit, app.ScannerOptions(c.cfg))
			fmt.Fprintln(cmd.OutOrStdout(), renderValidation(res))
			if !res.Valid {
				return errInvalidProject
			}
			return nil
		},
	}
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	var (
		manifestPath string
		noStore      bool
		noBackups    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Analyze a project, write context backups and refresh the context store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noStore {
				disabled := false
				c.cfg.Store.Enabled = &disabled
			}
			if noBackups {
				disabled := false
				c.cfg.Output.WriteBackups = &disabled
			}

			a, err := c.newApp(app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.Analyze(cmd.Context(), app.AnalyzeRequest{Path: args[0], ManifestPath: manifestPath})
			fmt.Fprintln(cmd.OutOrStdout(), renderAnalysis(res))
			if !res.Success {
				return errors.New(res.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Also write the interface manifest JSON to this file")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Do not write bundles to the context store")
	cmd.Flags().BoolVar(&noBackups, "no-backups", false, "Do not write per-interface backup files")
	return cmd
}

func newManifestCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "manifest <path>",
		Short: "Print the interface manifest JSON without touching the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := project.PrepareInput(args[0])
			if err != nil {
				return err
			}
			defer input.Cleanup()

			analysis, err := ejb.NewParser(input.Root, app.ParserOptions(c.cfg)).Parse(cmd.Context())
			if err != nil {
				return err
			}

			if output != "" {
				if err := ejb.SaveManifest(output, input.Root, analysis.Interfaces); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Wrote %d interfaces to %s", len(analysis.Interfaces), output)))
				return nil
			}

			data, err := analysis.Manifest()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the manifest to a file instead of stdout")
	return cmd
}

func newQueryCmd(c *cli) *cobra.Command {
	var (
		byMethod bool
		limit    int
		full     bool
	)

	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Look up stored bundles by interface or method name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()
			if a.Store == nil {
				return errors.New("context store is disabled")
			}

			var results []ports.QueryResult
			if byMethod {
				results, err = a.Store.QueryByMethod(cmd.Context(), args[0], limit)
			} else {
				results, err = a.Store.QueryByInterfaceName(cmd.Context(), args[0], limit)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderQuery(args[0], results, full))
			return nil
		},
	}

	cmd.Flags().BoolVar(&byMethod, "method", false, "Match against method names instead of interface names")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum results (default 1 by name, 5 by method)")
	cmd.Flags().BoolVar(&full, "full", false, "Print the full bundle document")
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List interfaces in the context store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.newApp(app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()
			if a.Store == nil {
				return errors.New("context store is disabled")
			}

			names, err := a.Store.InterfaceNames(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle(fmt.Sprintf("%d stored interfaces", len(names))))
			for _, name := range names {
				fmt.Fprintln(out, "  "+name)
			}
			return nil
		},
	}
}

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		outputDir string
		command   string
	)

	cmd := &cobra.Command{
		Use:   "generate [interface]",
		Short: "Generate markdown documentation from stored bundles",
		Long:  "generate pipes each stored bundle into the configured generator command and\nwrites its stdout as <Interface>.md. With an argument only that interface is documented.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := c.cfg.Generation.Command
			if command != "" {
				argv = strings.Fields(command)
			}
			gen, err := app.CommandGenerator(argv)
			if err != nil {
				return fmt.Errorf("%w (set generation.command or --command)", err)
			}

			a, err := c.newApp(app.Options{Generator: gen})
			if err != nil {
				return err
			}
			defer a.Close()

			dir := outputDir
			if dir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				paths, err := config.ResolvePaths(c.cfg, cwd)
				if err != nil {
					return err
				}
				dir = paths.GenerationDir
			}

			if len(args) == 1 {
				markdown, err := a.Document(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				path := filepath.Join(dir, util.SafeFileName(args[0])+".md")
				if err := util.WriteStringWithDirs(path, markdown, 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Wrote "+path))
				return nil
			}

			res, err := a.DocumentAll(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDocuments(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (default generation.output_dir)")
	cmd.Flags().StringVar(&command, "command", "", "Generator command line, overrides generation.command")
	return cmd
}

func newWatchCmd(c *cli) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-run the analysis whenever Java sources change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := c.newApp(app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			addr := metricsAddr
			if addr == "" {
				addr = c.cfg.Observability.MetricsAddress
			}
			if addr != "" {
				srv := newMetricsServer(addr, a)
				if err := srv.Start(); err != nil {
					return err
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Stop(shutdownCtx)
				}()
			}

			if _, err := os.Stat(c.configPath); err == nil {
				reloader := config.NewReloader(c.configPath, c.cfg, a.SetConfig)
				if err := reloader.Start(ctx); err != nil {
					slog.Warn("config reload disabled", "path", c.configPath, "error", err)
				} else {
					defer reloader.Stop()
				}
			}

			out := cmd.OutOrStdout()
			return a.Watch(ctx, args[0], func(res app.Result) {
				fmt.Fprintln(out, statusStyle.Render("Scan at "+time.Now().Format("15:04:05")))
				fmt.Fprintln(out, renderAnalysis(res))
			})
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}
