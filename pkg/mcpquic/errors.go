package mcpquic

import (
	"errors"
	"fmt"

	"github.com/quic-go/quic-go"
)

// QUIC stream-level error codes
const (
	StreamErrorNoError           quic.StreamErrorCode = 0x00
	StreamErrorProtocolConfusion quic.StreamErrorCode = 0x02
)

// QUIC connection-level error codes
const (
	ConnErrorNoError           quic.ApplicationErrorCode = 0x00
	ConnErrorUnsupportedALPN   quic.ApplicationErrorCode = 0x01
	ConnErrorProtocolViolation quic.ApplicationErrorCode = 0x03
	ConnErrorMCPDisabled       quic.ApplicationErrorCode = 0x10
)

var (
	ErrInvalidMagicBytes = errors.New("invalid magic bytes: expected " + MagicBytesMCP)
	ErrUnsupportedALPN   = errors.New("ALPN negotiation failed: " + ALPNProtocolMCP + " not selected")
	ErrNotConnected      = errors.New("client not connected")
)

// ConnectionError reports a failed connection with the QUIC code sent to the peer.
type ConnectionError struct {
	RemoteAddr string
	Code       quic.ApplicationErrorCode
	Err        error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %s error code 0x%02x: %v", e.RemoteAddr, e.Code, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
