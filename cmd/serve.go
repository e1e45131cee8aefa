package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prophetlog/prediction-api/api"
	"github.com/prophetlog/prediction-api/pkg/config"
	"github.com/prophetlog/prediction-api/pkg/logger"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Prediction Log API server with the configured settings.

The server exposes creator registration, ingestion runs, and prediction
lookups over HTTP.

Example:
  prediction-api serve
  prediction-api serve --port 9090
  prediction-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Use config values if flags not provided
	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	deps, err := buildDependencies(cmd.Context(), cfg, db, log)
	if err != nil {
		return err
	}

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	log.Info("starting server", zap.String("address", address))

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case <-stop:
		log.Info("shutting down server")
	case err := <-serverErr:
		log.Error("server failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	log.Info("server gracefully stopped")
	return nil
}
