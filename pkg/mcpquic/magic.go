package mcpquic

import (
	"bytes"
	"fmt"
	"io"
)

// ValidateMagicBytes reads the 4-byte preface from r and checks it.
func ValidateMagicBytes(r io.Reader) error {
	magic := make([]byte, len(MagicBytesMCP))
	if _, err := io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("read magic bytes: %w", err)
	}
	if !bytes.Equal(magic, []byte(MagicBytesMCP)) {
		return fmt.Errorf("%w: got %q", ErrInvalidMagicBytes, string(magic))
	}
	return nil
}

// SendMagicBytes writes the preface. Clients send it first on a new stream.
func SendMagicBytes(w io.Writer) error {
	if _, err := w.Write([]byte(MagicBytesMCP)); err != nil {
		return fmt.Errorf("write magic bytes: %w", err)
	}
	return nil
}
