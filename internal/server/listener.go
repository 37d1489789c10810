package server

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"

	"golang.org/x/net/netutil"

	"github.com/MKhiriev/go-mgmt-agent/internal/config"
)

// newListener builds the TCP listener the configuration describes:
// resolved bind address and port, TLS when the protocol is https, and
// the executor model mapped onto a connection-limiting listener.
//
// The configured backlog is not forwarded: the accept backlog belongs to
// the kernel on this platform, the executor limit is what actually caps
// concurrent serving.
func newListener(cfg *config.AgentConfig) (net.Listener, error) {
	host := ""
	if ip := cfg.BindAddress(); ip != nil {
		host = ip.String()
	}
	addr := net.JoinHostPort(host, strconv.Itoa(cfg.Port()))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("error binding %s: %w", addr, err)
	}

	if cfg.Protocol() == "https" {
		tlsConfig, err := newTLSConfig(cfg)
		if err != nil {
			listener.Close()
			return nil, err
		}
		listener = tls.NewListener(listener, tlsConfig)
	}

	return limitListener(listener, cfg)
}

// limitListener applies the executor model: "single" serves one
// connection at a time, "fixed" at most ThreadCount, "cached" is
// unbounded.
func limitListener(listener net.Listener, cfg *config.AgentConfig) (net.Listener, error) {
	switch cfg.Executor() {
	case "single":
		return netutil.LimitListener(listener, 1), nil
	case "fixed":
		return netutil.LimitListener(listener, cfg.ThreadCount()), nil
	case "cached":
		return listener, nil
	default:
		// unreachable after config validation
		listener.Close()
		return nil, fmt.Errorf("unsupported executor model %q", cfg.Executor())
	}
}

// newTLSConfig loads the server certificate and key from the keystore
// PEM bundle. Handshake behavior beyond certificate selection and the
// client-cert requirement stays with crypto/tls.
func newTLSConfig(cfg *config.AgentConfig) (*tls.Config, error) {
	certificate, err := tls.LoadX509KeyPair(cfg.Keystore(), cfg.Keystore())
	if err != nil {
		return nil, fmt.Errorf("error loading keystore %s: %w", cfg.Keystore(), err)
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{certificate},
		MinVersion:   tls.VersionTLS12,
	}
	if cfg.UseSSLClientAuthentication() {
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return tlsConfig, nil
}
