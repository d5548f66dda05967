package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nvr-ai/tranquil-trails/config"
	"github.com/nvr-ai/tranquil-trails/inference"
	"github.com/nvr-ai/tranquil-trails/pages"
	"github.com/nvr-ai/tranquil-trails/server"
	"github.com/nvr-ai/tranquil-trails/service"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web application",
		Long: `Serve loads the three crop detection models and the chat model, then serves
the Home, Login, Detect, Chat and About pages over HTTP.

Startup fails if any model cannot be loaded.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().IntP("port", "p", 0, "Listen port (overrides configuration and $PORT)")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, log)
}

// serve loads every model up front and runs the server until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if err := inference.InitializeRuntime(cfg.Runtime.Library); err != nil {
		return err
	}
	defer func() {
		if err := inference.DestroyRuntime(); err != nil {
			log.Warn("destroying onnxruntime environment", "error", err)
		}
	}()

	detectors := inference.NewDetectors(cfg.Runtime.Provider, cfg.Detectors(), inference.BuildONNX)
	defer detectors.Close()
	if _, err := detectors.Get(); err != nil {
		return errors.Wrap(err, "loading detection models")
	}

	generator := newGenerator(ctx, cfg.Generation)
	defer generator.Close()
	if err := generator.Load(); err != nil {
		return errors.Wrap(err, "loading chat model")
	}

	srv := server.New(server.Config{
		Address:         cfg.Server.Address,
		Port:            cfg.Server.Port,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	},
		pages.MustNewRouter(),
		service.NewDetection(detectors, log),
		service.NewChat(generator, log),
		log,
	)

	return srv.Run(ctx)
}
