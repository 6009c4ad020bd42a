// Package chassis runs the tashkeel API on one port with two transports.
//
//   - TCP: HTTP/1.1 and HTTP/2 over TLS, for curl and browsers.
//   - UDP: QUIC, demultiplexed by ALPN. "h3" is HTTP/3 with the same handler;
//     "tashkeel-mcp-v1" is MCP JSON-RPC on a QUIC stream.
//
// HTTP responses advertise HTTP/3 with Alt-Svc. Without cert and key files a
// self-signed certificate is generated.
package chassis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/hazyhaar/tashkeel/pkg/mcpquic"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"
)

// ALPNHTTP3 selects HTTP/3 on the QUIC listener.
const ALPNHTTP3 = "h3"

type Server struct {
	addr        string
	logger      *slog.Logger
	tlsCfg      *tls.Config
	httpHandler http.Handler
	mcpHandler  *mcpquic.Handler
	h3Server    *http3.Server
	tcpServer   *http.Server
	quicLn      *quic.Listener
	mu          sync.Mutex
}

type Config struct {
	Addr      string // TCP and UDP share this address
	CertFile  string
	KeyFile   string
	Handler   http.Handler
	MCPServer *server.MCPServer // nil disables MCP over QUIC
	Logger    *slog.Logger
}

func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Handler == nil {
		return nil, errors.New("chassis: nil handler")
	}

	tlsCfg, err := mcpquic.ServerTLSConfig(cfg.CertFile, cfg.KeyFile, ALPNHTTP3, mcpquic.ALPNProtocolMCP)
	if err != nil {
		return nil, fmt.Errorf("chassis TLS: %w", err)
	}
	if cfg.CertFile != "" {
		cfg.Logger.Info("TLS certificate loaded", "cert", cfg.CertFile)
	} else {
		cfg.Logger.Warn("TLS using self-signed development certificate")
	}

	s := &Server{
		addr:        cfg.Addr,
		logger:      cfg.Logger,
		tlsCfg:      tlsCfg,
		httpHandler: cfg.Handler,
	}
	if cfg.MCPServer != nil {
		s.mcpHandler = mcpquic.NewHandler(cfg.MCPServer, cfg.Logger)
	}
	return s, nil
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// altSvcMiddleware advertises HTTP/3 on the listening port.
func altSvcMiddleware(addr string, next http.Handler) http.Handler {
	_, port, _ := net.SplitHostPort(addr)
	if port == "" {
		port = "8421"
	}
	altSvc := fmt.Sprintf(`h3=":%s"; ma=86400`, port)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Alt-Svc", altSvc)
		next.ServeHTTP(w, r)
	})
}

// Start opens both listeners and blocks until ctx is cancelled or a
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()

	handler := securityHeaders(altSvcMiddleware(s.addr, s.httpHandler))

	tcpTLS := s.tlsCfg.Clone()
	tcpTLS.NextProtos = []string{"h2", "http/1.1"}
	s.tcpServer = &http.Server{
		Addr:      s.addr,
		Handler:   handler,
		TLSConfig: tcpTLS,
	}

	ln, err := quic.ListenAddr(s.addr, s.tlsCfg, mcpquic.ProductionQUICConfig())
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("QUIC listen: %w", err)
	}
	s.quicLn = ln
	s.h3Server = &http3.Server{Handler: handler}
	s.mu.Unlock()

	s.logger.Info("chassis started", "addr", s.addr, "mcp", s.mcpHandler != nil)

	errCh := make(chan error, 2)
	go func() {
		tcpLn, err := tls.Listen("tcp", s.addr, tcpTLS)
		if err != nil {
			errCh <- fmt.Errorf("TCP listen: %w", err)
			return
		}
		if err := s.tcpServer.Serve(tcpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("TCP: %w", err)
		}
	}()

	go func() {
		for {
			conn, err := ln.Accept(ctx)
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, quic.ErrServerClosed) {
					errCh <- fmt.Errorf("QUIC accept: %w", err)
				}
				return
			}
			s.route(ctx, conn)
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) route(ctx context.Context, conn *quic.Conn) {
	switch alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn {
	case ALPNHTTP3:
		go func() {
			if err := s.h3Server.ServeQUICConn(conn); err != nil {
				s.logger.Debug("HTTP/3 conn done", "remote", conn.RemoteAddr(), "error", err)
			}
		}()
	case mcpquic.ALPNProtocolMCP:
		if s.mcpHandler == nil {
			conn.CloseWithError(mcpquic.ConnErrorMCPDisabled, "MCP not enabled")
			return
		}
		go s.mcpHandler.ServeConn(ctx, conn)
	default:
		s.logger.Warn("unknown ALPN, closing", "alpn", alpn, "remote", conn.RemoteAddr())
		conn.CloseWithError(mcpquic.ConnErrorUnsupportedALPN, "unsupported ALPN: "+alpn)
	}
}

// Stop shuts down the TCP server and closes the QUIC listener.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.tcpServer != nil {
		errs = append(errs, s.tcpServer.Shutdown(ctx))
	}
	if s.h3Server != nil {
		errs = append(errs, s.h3Server.Close())
	}
	if s.quicLn != nil {
		errs = append(errs, s.quicLn.Close())
	}
	s.logger.Info("chassis stopped")
	return errors.Join(errs...)
}
