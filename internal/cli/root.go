// Package cli implements the clinchpad command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinchpad/clinchpad-go/internal/config"
	"github.com/clinchpad/clinchpad-go/internal/telemetry"
	"github.com/clinchpad/clinchpad-go/pkg/clinchpad"
)

var (
	cfgFile string
	tracing bool

	cfg            *config.Config
	logger         *slog.Logger
	tracerShutdown func(context.Context) error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clinchpad",
	Short: "Query the ClinchPad CRM from the command line",
	Long: `clinchpad lists pipelines, stages, leads, activities, and users
from a ClinchPad account.

Configuration comes from clinchpad.yaml and CLINCHPAD_* environment
variables (a .env file in the working directory is loaded first). The
API key is required:

  export CLINCHPAD_API_KEY=...
  clinchpad pipelines`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(cfg.Log.Level),
		}))
		slog.SetDefault(logger)

		if tracing {
			shutdown, err := telemetry.Init("clinchpad", logger)
			if err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}
			tracerShutdown = shutdown
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if tracerShutdown == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML config file (default: clinchpad.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&tracing, "trace", false, "Emit OpenTelemetry traces for every API call")
}

// newClient builds a client from the loaded configuration.
func newClient() *clinchpad.Client {
	opts := []clinchpad.Option{
		clinchpad.WithBaseURL(cfg.API.BaseURL),
		clinchpad.WithLogger(logger),
	}
	if cfg.API.NoteAuthor != "" {
		opts = append(opts, clinchpad.WithNoteAuthor(cfg.API.NoteAuthor))
	}
	if tracing {
		opts = append(opts, clinchpad.WithTracing())
	}
	return clinchpad.New(cfg.API.Key, opts...)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
