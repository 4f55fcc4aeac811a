// Package tlsutil builds the server-side TLS configuration for the
// cluster-agent gRPC listener: a certificate/key pair and an optional
// client-CA bundle for mutual TLS.
package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// ServerConfig describes the on-disk material needed to build a
// server-side tls.Config.
type ServerConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

// LoadServerConfig reads the certificate/key pair named by cfg and, if
// ClientCAFile is set, configures mutual TLS by requiring and verifying
// client certificates against that bundle.
func LoadServerConfig(cfg ServerConfig) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("loading server certificate: %w", err)
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if cfg.ClientCAFile == "" {
		return tlsConfig, nil
	}

	pemBytes, err := os.ReadFile(cfg.ClientCAFile)
	if err != nil {
		return nil, fmt.Errorf("reading client CA bundle: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemBytes) {
		return nil, fmt.Errorf("no certificates found in client CA bundle: %s", cfg.ClientCAFile)
	}

	tlsConfig.ClientCAs = pool
	tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert

	return tlsConfig, nil
}
