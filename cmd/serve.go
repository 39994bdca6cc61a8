package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkotas/face-match/internal/config"
	"github.com/mkotas/face-match/internal/logging"
	"github.com/mkotas/face-match/internal/recognizer"
	"github.com/mkotas/face-match/internal/store"
	"github.com/mkotas/face-match/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the face matching web server",
	Long: `Start the Face Match web server.
The server exposes POST /upload_and_match: it stages the uploaded photo in
the single area, compares its faces against the requested bulk photos and
moves the upload to the processed area once the attempt completes.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 5008, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	logger, closeLog, err := logging.Setup(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer closeLog()
	slog.SetDefault(logger)
	logger.Info("logger initialized successfully", "file", cfg.Log.File)

	st, err := store.New(cfg.Storage.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to prepare storage areas: %w", err)
	}
	logger.Info("storage areas ready", "base_dir", cfg.Storage.BaseDir)

	encoder := recognizer.NewClient(cfg.Encoder.URL, cfg.Encoder.MaxImageSize)

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, port, host, st, encoder, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during shutdown", "error", err)
		}
	}()

	fmt.Printf("Starting Face Match server on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
