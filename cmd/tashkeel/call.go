package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hazyhaar/tashkeel/pkg/mcpquic"
	"github.com/mark3labs/mcp-go/mcp"
)

func cmdCall(args []string) {
	fs := flag.NewFlagSet("call", flag.ExitOnError)
	addr := fs.String("addr", "localhost:8421", "server address")
	tool := fs.String("tool", "", "tool name (empty lists the tools)")
	argsJSON := fs.String("args", "{}", "tool arguments as a JSON object")
	insecure := fs.Bool("insecure", true, "skip certificate verification")
	timeout := fs.Duration("timeout", 30*time.Second, "overall timeout")
	fs.Parse(args)

	var toolArgs map[string]any
	if err := json.Unmarshal([]byte(*argsJSON), &toolArgs); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -args: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := mcpquic.NewClient(*addr, mcpquic.ClientTLSConfig(*insecure))
	if err := c.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	if *tool == "" {
		tools, err := c.ListTools(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list tools: %v\n", err)
			os.Exit(1)
		}
		for _, t := range tools.Tools {
			fmt.Printf("  %-18s  %s\n", t.Name, t.Description)
		}
		return
	}

	res, err := c.CallTool(ctx, *tool, toolArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "call %s: %v\n", *tool, err)
		os.Exit(1)
	}
	for _, content := range res.Content {
		if text, ok := content.(mcp.TextContent); ok {
			fmt.Println(text.Text)
		}
	}
	if res.IsError {
		os.Exit(1)
	}
}
