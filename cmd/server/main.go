package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Zilo-22/catalogBuddy/internal/config"
	"github.com/Zilo-22/catalogBuddy/internal/core"
	"github.com/Zilo-22/catalogBuddy/internal/logging"
	"github.com/Zilo-22/catalogBuddy/internal/store"
	"github.com/Zilo-22/catalogBuddy/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"templates_dir", cfg.Store.TemplatesDir,
		"mappings_file", cfg.Store.MappingsFile,
		"upload_max_file_size", cfg.Upload.MaxFileSize,
	)

	// Wire the stores
	templates := store.NewTemplateStore(cfg.Store.TemplatesDir)
	mappings := store.NewMappingStore(cfg.Store.MappingsFile)

	// Verify the template catalog is readable before serving traffic
	ctx := context.Background()
	available, err := templates.List(ctx)
	if err != nil {
		slog.Error("failed to read template catalog", "dir", cfg.Store.TemplatesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("template catalog loaded", "count", len(available))
	for _, tpl := range available {
		slog.Debug("template", "templateKey", tpl.TemplateKey, "fields", len(tpl.Fields))
	}

	// Create service and server
	service := core.NewService(templates, mappings)
	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
