// Package main provides the newsharvester binary entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"NewsHarvester/internal/app"
	"NewsHarvester/internal/config"
	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/logging"
	"NewsHarvester/internal/scanner"
)

const (
	Version = "0.1.0"
	appName = "newsharvester"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	mode       string
	logLevel   string
}

func rootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Harvest tech and finance headlines from configured sources",
		Long: `newsharvester fetches a fixed list of news sites, extracts headline
links from their feeds or home pages, drops noise and duplicates, classifies
and scores every article and writes one JSON batch per run.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&f.mode, "mode", "", "Harvest mode: tech or finance")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(runCmd(f), serveCmd(f), sourcesCmd(f), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func runCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a single batch and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := build(ctx, f)
			if err != nil {
				return err
			}
			defer application.Close()

			batch, err := application.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "batch %s: %d articles from %d sources (%d failed)\n",
				batch.RunID, batch.TotalArticles, batch.Stats.Sources, batch.Stats.SourcesFailed)
			return nil
		},
	}
}

func serveCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run batches on the cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := build(ctx, f)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Serve(ctx)
		},
	}
}

func sourcesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the configured sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(f)
			if err != nil {
				return err
			}

			return writeSources(cmd.OutOrStdout(), cfg.DomainSources())
		},
	}
}

// writeSources prints one row per source with the strategy chain it runs.
func writeSources(out io.Writer, sources []domain.Source) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRIORITY\tSTRATEGIES\tURL")
	for _, s := range sources {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, s.Priority, strings.Join(scanner.Chain(s), ","), s.URL)
	}
	return w.Flush()
}

func load(f *flags) (config.Config, error) {
	if f.mode != "" {
		if err := os.Setenv("NEWS_HARVESTER_MODE", f.mode); err != nil {
			return config.Config{}, fmt.Errorf("set mode: %w", err)
		}
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	return cfg, nil
}

func build(ctx context.Context, f *flags) (*app.Application, error) {
	cfg, err := load(f)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	return app.New(ctx, cfg, logger)
}
