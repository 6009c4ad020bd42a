package main

import (
	"context"
	"flag"
	"os"

	"github.com/hazyhaar/tashkeel/pkg/api"
	"github.com/hazyhaar/tashkeel/pkg/corpus"
	"github.com/hazyhaar/tashkeel/pkg/kit"
	"github.com/mark3labs/mcp-go/server"
)

const version = "0.3.0"

// cmdMCP serves the MCP tools on stdin/stdout. Logs go to stderr.
func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := mustConfig(*cfgPath)

	store, err := corpus.OpenStore(cfg.DBPath)
	if err != nil {
		logger.Error("open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	mcpSrv := server.NewMCPServer("tashkeel", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(mcpSrv, api.NewService(store, logger))

	stdio := server.NewStdioServer(mcpSrv)
	stdio.SetContextFunc(func(ctx context.Context) context.Context {
		return kit.WithTransport(ctx, "mcp_stdio")
	})
	logger.Info("MCP stdio server ready")
	if err := stdio.Listen(context.Background(), os.Stdin, os.Stdout); err != nil {
		logger.Error("MCP stdio", "error", err)
		os.Exit(1)
	}
}
