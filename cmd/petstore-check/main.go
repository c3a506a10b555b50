// Command petstore-check runs the petstore smoke flow from the command line
// and serves the in-process fake petstore for local work.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Apurer/petstore-api-tests/internal/config"
	"github.com/Apurer/petstore-api-tests/internal/platform/observability"
)

const serviceName = "petstore-check"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:           "petstore-check",
		Short:         "Contract checks for the petstore pet API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(smokeCmd(&envFile))
	cmd.AddCommand(serveCmd(&envFile))
	return cmd
}

// runtimeDeps is what every subcommand needs after startup.
type runtimeDeps struct {
	cfg         config.Config
	logger      *slog.Logger
	instruments *observability.Instruments
	shutdown    func(context.Context) error
}

func bootstrap(ctx context.Context, envFile string) (*runtimeDeps, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}
	logger, err := observability.SetupLogger(observability.LoggerConfig{
		Name:  cfg.LogName,
		Dir:   cfg.LogDir,
		File:  cfg.LogFile,
		Level: cfg.LogLevel,
	})
	if err != nil {
		return nil, err
	}
	instruments, shutdown, err := observability.Init(ctx, serviceName, logger, observability.TelemetryConfig{
		Exporter:     cfg.TracesExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize observability: %w", err)
	}
	return &runtimeDeps{cfg: cfg, logger: logger, instruments: instruments, shutdown: shutdown}, nil
}

func (d *runtimeDeps) close() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.shutdown(shutdownCtx); err != nil {
		d.logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
	}
}
