package mcpquic

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/quic-go/quic-go"
)

const initializeTimeout = 10 * time.Second

// Client speaks MCP to a tashkeel server over one QUIC stream.
type Client struct {
	addr      string
	tlsCfg    *tls.Config
	conn      *quic.Conn
	stream    *quic.Stream
	mcpClient *client.Client
}

// NewClient returns an unconnected client. A nil tlsCfg skips certificate
// verification, which matches the self-signed development chassis.
func NewClient(addr string, tlsCfg *tls.Config) *Client {
	if tlsCfg == nil {
		tlsCfg = ClientTLSConfig(true)
	}
	return &Client{addr: addr, tlsCfg: tlsCfg}
}

func (c *Client) Connect(ctx context.Context) error {
	conn, err := quic.DialAddr(ctx, c.addr, c.tlsCfg, ProductionQUICConfig())
	if err != nil {
		return fmt.Errorf("quic dial %s: %w", c.addr, err)
	}
	remote := conn.RemoteAddr().String()

	if alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn != ALPNProtocolMCP {
		conn.CloseWithError(ConnErrorUnsupportedALPN, "bad ALPN")
		return &ConnectionError{RemoteAddr: remote, Code: ConnErrorUnsupportedALPN,
			Err: fmt.Errorf("%w: got %q", ErrUnsupportedALPN, alpn)}
	}

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(ConnErrorProtocolViolation, "stream open failed")
		return &ConnectionError{RemoteAddr: remote, Code: ConnErrorProtocolViolation, Err: err}
	}
	if err := SendMagicBytes(stream); err != nil {
		stream.Close()
		conn.CloseWithError(ConnErrorProtocolViolation, "magic bytes failed")
		return &ConnectionError{RemoteAddr: remote, Code: ConnErrorProtocolViolation, Err: err}
	}

	c.conn = conn
	c.stream = stream
	if err := c.start(ctx, stream, stream); err != nil {
		c.closeTransport()
		return err
	}
	return nil
}

// start runs the MCP initialize handshake over an established byte stream.
func (c *Client) start(ctx context.Context, r io.Reader, w io.WriteCloser) error {
	mcpClient := client.NewClient(transport.NewIO(r, w, nopReadCloser{}))
	if err := mcpClient.Start(ctx); err != nil {
		return fmt.Errorf("mcp start: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "tashkeel-quic-client",
		Version: "1.0.0",
	}

	initCtx, cancel := context.WithTimeout(ctx, initializeTimeout)
	defer cancel()
	if _, err := mcpClient.Initialize(initCtx, initReq); err != nil {
		mcpClient.Close()
		return fmt.Errorf("mcp initialize: %w", err)
	}
	c.mcpClient = mcpClient
	return nil
}

func (c *Client) ListTools(ctx context.Context) (*mcp.ListToolsResult, error) {
	if c.mcpClient == nil {
		return nil, ErrNotConnected
	}
	return c.mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
}

func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if c.mcpClient == nil {
		return nil, ErrNotConnected
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return c.mcpClient.CallTool(ctx, req)
}

func (c *Client) Ping(ctx context.Context) error {
	if c.mcpClient == nil {
		return ErrNotConnected
	}
	return c.mcpClient.Ping(ctx)
}

func (c *Client) Close() error {
	if c.mcpClient != nil {
		c.mcpClient.Close()
		c.mcpClient = nil
	}
	c.closeTransport()
	return nil
}

func (c *Client) closeTransport() {
	if c.stream != nil {
		c.stream.Close()
		c.stream = nil
	}
	if c.conn != nil {
		c.conn.CloseWithError(ConnErrorNoError, "client closing")
		c.conn = nil
	}
}

type nopReadCloser struct{}

func (nopReadCloser) Read([]byte) (int, error) { return 0, io.EOF }
func (nopReadCloser) Close() error             { return nil }
