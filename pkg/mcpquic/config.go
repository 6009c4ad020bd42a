// Package mcpquic carries MCP JSON-RPC over a QUIC stream.
package mcpquic

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"time"

	"github.com/quic-go/quic-go"
)

const (
	ALPNProtocolMCP    = "tashkeel-mcp-v1"
	MagicBytesMCP      = "TSK1"
	DefaultIdleTimeout = 5 * time.Minute
	DefaultKeepAlive   = 30 * time.Second
)

func ProductionQUICConfig() *quic.Config {
	return &quic.Config{
		MaxStreamReceiveWindow:     10 * 1024 * 1024,
		MaxConnectionReceiveWindow: 50 * 1024 * 1024,
		MaxIdleTimeout:             DefaultIdleTimeout,
		KeepAlivePeriod:            DefaultKeepAlive,
	}
}

// GenerateSelfSignedCert generates an ECDSA P-256 certificate for localhost.
// Development only.
func GenerateSelfSignedCert() (tls.Certificate, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("generate private key: %w", err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("generate serial: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{"tashkeel dev"}, CommonName: "localhost"},
		NotBefore:             now,
		NotAfter:              now.Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("::1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("create certificate: %w", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("marshal private key: %w", err)
	}
	return tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}),
	)
}

// ServerTLSConfig returns a TLS 1.3 config offering the given ALPN protocols.
// With empty certFile/keyFile a self-signed certificate is generated.
func ServerTLSConfig(certFile, keyFile string, protos ...string) (*tls.Config, error) {
	var cert tls.Certificate
	var err error
	if certFile != "" && keyFile != "" {
		cert, err = tls.LoadX509KeyPair(certFile, keyFile)
	} else {
		cert, err = GenerateSelfSignedCert()
	}
	if err != nil {
		return nil, err
	}
	if len(protos) == 0 {
		protos = []string{ALPNProtocolMCP}
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   protos,
		MinVersion:   tls.VersionTLS13,
	}, nil
}

func ClientTLSConfig(insecure bool) *tls.Config {
	return &tls.Config{
		NextProtos:         []string{ALPNProtocolMCP},
		MinVersion:         tls.VersionTLS13,
		InsecureSkipVerify: insecure,
	}
}
