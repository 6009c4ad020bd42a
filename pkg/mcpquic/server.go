package mcpquic

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hazyhaar/tashkeel/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"
)

// maxLineBytes bounds one JSON-RPC message.
const maxLineBytes = 1 << 20

// Handler serves MCP sessions on QUIC connections it does not own.
// The chassis hands it connections that negotiated ALPNProtocolMCP.
type Handler struct {
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

func NewHandler(mcpSrv *server.MCPServer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mcpServer: mcpSrv, logger: logger}
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ServeConn runs one MCP session on the first stream the peer opens.
func (h *Handler) ServeConn(ctx context.Context, conn *quic.Conn) {
	remote := conn.RemoteAddr().String()

	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		h.logger.Error("MCP accept stream failed", "remote", remote, "error", err)
		conn.CloseWithError(ConnErrorProtocolViolation, "stream accept failed")
		return
	}
	if err := ValidateMagicBytes(stream); err != nil {
		h.logger.Warn("MCP magic bytes invalid", "remote", remote, "error", err)
		stream.CancelWrite(StreamErrorProtocolConfusion)
		stream.CancelRead(StreamErrorProtocolConfusion)
		conn.CloseWithError(ConnErrorProtocolViolation, "invalid magic bytes")
		return
	}

	h.logger.Info("MCP session starting", "remote", remote)
	h.serveStream(ctx, stream, stream)
	stream.Close()
	conn.CloseWithError(ConnErrorNoError, "session ended")
}

// serveStream reads newline-delimited JSON-RPC messages from r and writes
// responses and notifications to w until r is exhausted or ctx ends.
func (h *Handler) serveStream(ctx context.Context, r io.Reader, w io.Writer) {
	sess := newSession("quic_"+randomHex(4), w)
	if err := h.mcpServer.RegisterSession(ctx, sess); err != nil {
		h.logger.Error("MCP session register failed", "session", sess.id, "error", err)
		return
	}
	defer h.mcpServer.UnregisterSession(ctx, sess.id)

	ctx, cancel := context.WithCancel(kit.WithTransport(ctx, "mcp_quic"))
	defer cancel()
	ctx = h.mcpServer.WithContext(ctx, sess)
	go sess.writeNotifications(ctx)

	reader := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				h.logger.Error("MCP read error", "session", sess.id, "error", err)
			}
			break
		}
		if len(line) == 0 {
			continue
		}

		response := h.mcpServer.HandleMessage(ctx, json.RawMessage(line))
		if response == nil {
			continue
		}
		if err := sess.writeJSON(response); err != nil {
			h.logger.Error("MCP write error", "session", sess.id, "error", err)
			break
		}
	}
	h.logger.Info("MCP session ended", "session", sess.id)
}

var errLineTooLong = errors.New("message exceeds maximum size")

func readLine(r *bufio.Reader) ([]byte, error) {
	var line []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, err
		}
		line = append(line, chunk...)
		if len(line) > maxLineBytes {
			return nil, errLineTooLong
		}
		if !isPrefix {
			return line, nil
		}
	}
}

// session implements server.ClientSession for a single stream.
type session struct {
	id            string
	notifications chan mcp.JSONRPCNotification
	initialized   atomic.Bool
	w             io.Writer
	mu            sync.Mutex
}

func newSession(id string, w io.Writer) *session {
	return &session{
		id:            id,
		notifications: make(chan mcp.JSONRPCNotification, 100),
		w:             w,
	}
}

func (s *session) SessionID() string                                   { return s.id }
func (s *session) NotificationChannel() chan<- mcp.JSONRPCNotification { return s.notifications }
func (s *session) Initialize()                                         { s.initialized.Store(true) }
func (s *session) Initialized() bool                                   { return s.initialized.Load() }

// writeJSON writes one message followed by a newline. Responses and
// notifications share the stream, so writes are serialized.
func (s *session) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(data)
	return err
}

func (s *session) writeNotifications(ctx context.Context) {
	for {
		select {
		case notif := <-s.notifications:
			_ = s.writeJSON(notif)
		case <-ctx.Done():
			return
		}
	}
}
