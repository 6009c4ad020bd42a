package mcpquic

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestMagicBytes_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := SendMagicBytes(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "TSK1" {
		t.Fatalf("preface = %q", buf.String())
	}
	if err := ValidateMagicBytes(&buf); err != nil {
		t.Errorf("ValidateMagicBytes: %v", err)
	}
}

func TestValidateMagicBytes_Rejects(t *testing.T) {
	if err := ValidateMagicBytes(strings.NewReader("HRS1{}")); !errors.Is(err, ErrInvalidMagicBytes) {
		t.Errorf("wrong preface: err = %v, want ErrInvalidMagicBytes", err)
	}
	err := ValidateMagicBytes(strings.NewReader("TS"))
	if err == nil || errors.Is(err, ErrInvalidMagicBytes) {
		t.Errorf("short preface: err = %v, want read error", err)
	}
}

func TestConnectionError_Unwrap(t *testing.T) {
	err := &ConnectionError{RemoteAddr: "127.0.0.1:8421", Code: ConnErrorUnsupportedALPN, Err: ErrUnsupportedALPN}
	if !errors.Is(err, ErrUnsupportedALPN) {
		t.Error("ConnectionError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "0x01") {
		t.Errorf("Error() = %q, want code", err.Error())
	}
}
