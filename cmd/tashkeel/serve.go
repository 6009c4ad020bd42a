package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/tashkeel/pkg/api"
	"github.com/hazyhaar/tashkeel/pkg/chassis"
	"github.com/hazyhaar/tashkeel/pkg/corpus"
	"github.com/mark3labs/mcp-go/server"
)

const shutdownTimeout = 10 * time.Second

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	addr := fs.String("addr", "", "listen address (overrides config)")
	fs.Parse(args)

	cfg, logger := mustConfig(*cfgPath)
	if *addr != "" {
		cfg.Addr = *addr
	}

	store, err := corpus.OpenStore(cfg.DBPath)
	if err != nil {
		logger.Error("open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	importCorpus(ctx, store, cfg.CorpusDir, logger)

	// SIGHUP: re-import corpus_dir.
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, re-importing corpus")
			importCorpus(ctx, store, cfg.CorpusDir, logger)
		}
	}()

	svc := api.NewService(store, logger)
	router := api.NewRouter(svc)

	if cfg.TLS.Enabled {
		mcpSrv := server.NewMCPServer("tashkeel", version, server.WithToolCapabilities(false))
		api.RegisterMCPTools(mcpSrv, svc)
		if err := serveChassis(ctx, cfg, router, mcpSrv, logger); err != nil {
			logger.Error("chassis error", "error", err)
			os.Exit(1)
		}
		return
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("tashkeel listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

func serveChassis(ctx context.Context, cfg config, handler http.Handler, mcpSrv *server.MCPServer, logger *slog.Logger) error {
	c, err := chassis.New(chassis.Config{
		Addr:      cfg.Addr,
		CertFile:  cfg.TLS.CertFile,
		KeyFile:   cfg.TLS.KeyFile,
		Handler:   handler,
		MCPServer: mcpSrv,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	startErr := c.Start(ctx)

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(startErr, c.Stop(shutdownCtx))
}

// importCorpus loads corpus_dir into the store. A missing directory only
// logs: the server can run on the built-in search alone.
func importCorpus(ctx context.Context, store *corpus.Store, dir string, logger *slog.Logger) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Info("no corpus directory, skipping import", "dir", dir)
		return
	}
	n, err := corpus.ImportDir(ctx, store, dir, logger)
	if err != nil {
		logger.Error("corpus import failed", "dir", dir, "imported", n, "error", err)
		return
	}
	logger.Info("corpus imported", "dir", dir, "collections", n)
}
