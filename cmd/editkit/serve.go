package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/editkit-dev/editkit/internal/config"
	"github.com/editkit-dev/editkit/pkg/server"
	"github.com/editkit-dev/editkit/pkg/upload"
)

func serveCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP server",
		Long: `Start the EditKit server.

Endpoints:
  POST /v1/upcast     convert a view tree to a model tree
  POST /v1/roundtrip  upcast then downcast, reporting the patch stream
  POST /v1/upload     store an image and probe its dimensions
  GET  /v1/session    live conversion session over WebSocket
  GET  /healthz       liveness
  GET  /metrics       Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(address)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (overrides config)")

	return cmd
}

func runServe(address string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Server.Address = address
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	store, err := buildStore(cfg.Upload)
	if err != nil {
		return err
	}

	srv := server.New(&server.Config{
		Address:          cfg.Server.Address,
		Store:            store,
		ShutdownTimeout:  time.Duration(cfg.Server.ShutdownSeconds) * time.Second,
		MetricsNamespace: cfg.Metrics.Namespace,
		Logger:           logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		return srv.Shutdown(context.Background())
	}
}

func buildStore(cfg config.UploadConfig) (upload.Store, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case "disk":
		return upload.NewDiskStore(cfg.Dir, cfg.BaseURL, 0)
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		return upload.NewS3Store(client, cfg.Bucket, cfg.Prefix, cfg.BaseURL, 0), nil
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
	}
}
