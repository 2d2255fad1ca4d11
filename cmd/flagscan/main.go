package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/flagscan/internal/adapters/fs"
	logAdapter "github.com/bft-labs/flagscan/internal/adapters/log"
	"github.com/bft-labs/flagscan/internal/app"
	"github.com/bft-labs/flagscan/internal/cliconfig"
	"github.com/bft-labs/flagscan/internal/ports"
	"github.com/bft-labs/flagscan/internal/watch"
)

const helpDescription = `
Find the boolean flags in a program's memory by diffing sequential dumps.

An address is reported when its byte changed between every pair of consecutive
dumps and only ever held 0 or 1. Addresses that settle (two equal reads in a
row) are dropped for good.

Report lines look like:
  1a3f: 0, 1, 0

Configure via $HOME/.flagscan/config.toml, FLAGSCAN_* env vars, or flags.
`

var exampleUsage = strings.TrimSpace(`
  flagscan
  flagscan --dir ./dumps --count 0 --output -
  flagscan --watch --log-level debug
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		log := logAdapter.NewConsoleLogger(os.Stderr, zerolog.InfoLevel)
		log.Error().Err(err).Msg("flagscan")
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "flagscan",
		Short:         "Find boolean flags in sequential memory dumps",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			} else if cfgPath != "" {
				return fmt.Errorf("config file %s not found", cfgPath)
			}

			// Env overrides the file; explicit flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := cfg.Level()
			zl := logAdapter.NewConsoleLogger(stderr, level)
			zl.Debug().Interface("config", cfg).Msg("configuration")
			logger := logAdapter.NewZerologAdapterWithLogger(zl)

			return run(cmd.Context(), cfg, stdout, logger)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.flagscan/config.toml)")
	root.Flags().StringVar(&cfg.Dir, "dir", cfg.Dir, "directory holding the memory dumps")
	root.Flags().StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "dump file name with one %d for the 0-based index")
	root.Flags().IntVar(&cfg.Count, "count", cfg.Count, "number of dumps to read (0 = all contiguous dumps from index 0)")
	root.Flags().StringVar(&cfg.Output, "output", cfg.Output, "report path, or - for stdout")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run whenever a dump in dir is written")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period after a dump write before re-running (watch mode)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	return root
}

func run(ctx context.Context, cfg cliconfig.Config, stdout io.Writer, logger ports.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	source := fs.NewSnapshotDir(cfg.Dir, cfg.Pattern, cfg.Count)

	var report ports.ReportWriter
	if cfg.Output == cliconfig.StdoutOutput {
		report = fs.NewStreamReport(stdout, "stdout")
	} else {
		report = fs.NewReportFile(cfg.Output)
	}

	extractor := app.NewExtractor(source, report, logger)
	logger.Info("starting",
		ports.String("dir", cfg.Dir),
		ports.String("report", report.Location()),
		ports.Bool("watch", cfg.Watch),
	)

	if !cfg.Watch {
		_, err := extractor.Run(ctx)
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(
		source.Dir(),
		func(name string) bool {
			_, ok := source.MatchIndex(name)
			return ok
		},
		func(ctx context.Context) error {
			_, err := extractor.Run(ctx)
			return err
		},
		logger,
		cfg.Debounce,
	)
	if err := w.Run(ctx); err != nil {
		return err
	}
	logger.Info("watch stopped")
	return nil
}
