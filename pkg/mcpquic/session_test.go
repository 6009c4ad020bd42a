package mcpquic

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/hazyhaar/tashkeel/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func testMCPServer() *server.MCPServer {
	srv := server.NewMCPServer("tashkeel-test", "0.0.1", server.WithToolCapabilities(false))
	transport := func(ctx context.Context, _ any) (any, error) {
		return map[string]string{"transport": kit.GetTransport(ctx)}, nil
	}
	kit.RegisterMCPTool(srv, mcp.NewTool("transport", mcp.WithDescription("Report the calling transport")), transport,
		func(mcp.CallToolRequest) (*kit.MCPDecodeResult, error) { return &kit.MCPDecodeResult{}, nil })
	return srv
}

func TestHandler_ServeStream(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	h := NewHandler(testMCPServer(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	srvConn, cliConn := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.serveStream(ctx, srvConn, srvConn)
	}()

	c := &Client{}
	if err := c.start(ctx, cliConn, cliConn); err != nil {
		t.Fatalf("start: %v", err)
	}

	tools, err := c.ListTools(ctx)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools.Tools) != 1 || tools.Tools[0].Name != "transport" {
		t.Errorf("tools = %+v", tools.Tools)
	}

	res, err := c.CallTool(ctx, "transport", nil)
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok || text.Text != `{"transport":"mcp_quic"}` {
		t.Errorf("result = %+v", res.Content)
	}

	c.Close()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("server session did not end after client close")
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := NewClient("localhost:8421", nil)
	if _, err := c.CallTool(context.Background(), "search_text", nil); !errors.Is(err, ErrNotConnected) {
		t.Errorf("CallTool err = %v", err)
	}
	if err := c.Ping(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Ping err = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on unconnected client: %v", err)
	}
}
