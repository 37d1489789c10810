// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net"
	"strings"

	"github.com/MKhiriev/go-mgmt-agent/internal/auth"
)

// AgentConfig is the validated, immutable bootstrap configuration of the
// management agent. It is constructed exactly once from the merged
// option layers and read-only thereafter, so concurrent readers need no
// synchronization.
type AgentConfig struct {
	opts Options

	protocol         string
	address          net.IP
	port             int
	backlog          int
	executor         string
	threadCount      int
	contextPath      string
	keystore         string
	keystorePassword []byte
	useSSLClientAuth bool
	authenticator    auth.Authenticator
}

// NewAgentConfig merges overrides on top of the bundled defaults,
// validates every field in a fixed order and returns the resulting
// configuration. The first invalid value aborts construction with an
// [InvalidConfigError]; there is never a partially usable result.
func NewAgentConfig(overrides Options) (*AgentConfig, error) {
	return NewAgentConfigWithDefaults(overrides, DefaultOptions())
}

// NewAgentConfigWithDefaults is [NewAgentConfig] with an explicit
// defaults layer, for embedders and tests that supply synthetic
// defaults instead of the bundled resource.
func NewAgentConfigWithDefaults(overrides, defaults Options) (*AgentConfig, error) {
	merged, err := Merge(defaults, overrides)
	if err != nil {
		return nil, err
	}

	cfg := &AgentConfig{opts: merged}

	// fixed order: earlier validated fields gate later ones (keystore
	// presence depends on protocol, thread count on executor).
	inits := []func() error{
		cfg.initContextPath,
		cfg.initAuthenticator,
		cfg.initProtocol,
		cfg.initAddress,
		cfg.initPort,
		cfg.initBacklog,
		cfg.initExecutor,
		cfg.initThreadCount,
		cfg.initKeystore,
		cfg.initClientCertAuth,
		cfg.initKeystorePassword,
	}
	for _, init := range inits {
		if err := init(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Options returns the merged option lookup the configuration was built
// from. It is the general-purpose configuration object the rest of the
// agent (protocol layer, custom authenticators) reads.
func (c *AgentConfig) Options() Options {
	return c.opts
}

// Protocol returns "http" or "https".
func (c *AgentConfig) Protocol() string {
	return c.protocol
}

// BindAddress returns the resolved address to bind the listener to. A
// nil IP is the any-interface sentinel; when no host was configured the
// loopback address is returned as the secure default.
func (c *AgentConfig) BindAddress() net.IP {
	return c.address
}

// Port returns the listener port.
func (c *AgentConfig) Port() int {
	return c.port
}

// Backlog is the number of pending requests to keep before dropping
// them.
func (c *AgentConfig) Backlog() int {
	return c.backlog
}

// Executor returns the serving model in canonical lower case: "single",
// "fixed" or "cached".
func (c *AgentConfig) Executor() string {
	return c.executor
}

// ThreadCount returns the worker count; it is meaningful only when
// [AgentConfig.Executor] is "fixed".
func (c *AgentConfig) ThreadCount() int {
	return c.threadCount
}

// ContextPath returns the path the agent is served under. It always
// ends with "/".
func (c *AgentConfig) ContextPath() string {
	return c.contextPath
}

// Keystore returns the path to the PEM bundle holding the server
// certificate and key, or the empty string for plain http.
func (c *AgentConfig) Keystore() string {
	return c.keystore
}

// KeystorePassword returns the keystore password as bytes, empty when no
// password was given.
func (c *AgentConfig) KeystorePassword() []byte {
	return c.keystorePassword
}

// UseSSLClientAuthentication reports whether the https listener should
// require client certificates.
func (c *AgentConfig) UseSSLClientAuthentication() bool {
	return c.useSSLClientAuth
}

// Authenticator returns the credential checker the HTTP layer must
// enforce, or nil when no authentication is configured.
func (c *AgentConfig) Authenticator() auth.Authenticator {
	return c.authenticator
}

// AgentID returns the unique identifier of this agent instance.
func (c *AgentConfig) AgentID() string {
	return c.opts.Get(KeyAgentID)
}

func (c *AgentConfig) initContextPath() error {
	path := c.opts.GetOrDefault(KeyAgentContext, DefaultContextPath)
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	c.contextPath = path
	return nil
}

func (c *AgentConfig) initAuthenticator() error {
	if name := c.opts.Get(KeyAuthenticator); name != "" {
		authenticator, err := auth.Resolve(name, c.opts)
		if err != nil {
			return invalidConfig(KeyAuthenticator, name, "cannot construct custom authenticator", err)
		}
		c.authenticator = authenticator
		return nil
	}

	// built-in fallback: basic credentials when both are given,
	// otherwise no authentication at all
	if c.opts.Has(KeyUser) && c.opts.Has(KeyPassword) {
		c.authenticator = auth.NewBasic(c.opts.Get(KeyUser), c.opts.Get(KeyPassword))
	}
	return nil
}

func (c *AgentConfig) initProtocol() error {
	protocol := c.opts.GetOrDefault(KeyProtocol, DefaultProtocol)
	if protocol != "http" && protocol != "https" {
		return invalidConfig(KeyProtocol, protocol, `must be either "http" or "https"`, nil)
	}
	c.protocol = protocol
	return nil
}

func (c *AgentConfig) initAddress() error {
	host := c.opts.Get(KeyHost)
	switch {
	case host == "*" || host == "0.0.0.0":
		c.address = nil // wildcard: bind every interface
	case host == "":
		c.address = net.IPv4(127, 0, 0, 1) // secure default: loopback
	default:
		if ip := net.ParseIP(host); ip != nil {
			c.address = ip
			return nil
		}
		ips, err := net.LookupIP(host)
		if err != nil {
			return invalidConfig(KeyHost, host, "cannot resolve host", err)
		}
		c.address = ips[0]
	}
	return nil
}

func (c *AgentConfig) initPort() error {
	port, err := c.requiredInt(KeyPort)
	if err != nil {
		return err
	}
	c.port = port
	return nil
}

func (c *AgentConfig) initBacklog() error {
	backlog, err := c.requiredInt(KeyBacklog)
	if err != nil {
		return err
	}
	c.backlog = backlog
	return nil
}

func (c *AgentConfig) requiredInt(key string) (int, error) {
	if !c.opts.Has(key) {
		return 0, invalidConfig(key, "", "required option is missing", nil)
	}
	value, err := c.opts.GetInt(key)
	if err != nil {
		return 0, invalidConfig(key, c.opts.Get(key), "must be a decimal integer", err)
	}
	if value < 0 {
		return 0, invalidConfig(key, c.opts.Get(key), "must not be negative", nil)
	}
	return value, nil
}

func (c *AgentConfig) initExecutor() error {
	executor := strings.ToLower(c.opts.GetOrDefault(KeyExecutor, DefaultExecutor))
	switch executor {
	case "single", "fixed", "cached":
		c.executor = executor
		return nil
	default:
		return invalidConfig(KeyExecutor, c.opts.Get(KeyExecutor),
			`must be either "single", "fixed" or "cached"`, nil)
	}
}

func (c *AgentConfig) initThreadCount() error {
	if !c.opts.Has(KeyThreadNr) {
		c.threadCount = DefaultThreadCount
		return nil
	}
	count, err := c.opts.GetInt(KeyThreadNr)
	if err != nil {
		return invalidConfig(KeyThreadNr, c.opts.Get(KeyThreadNr), "must be a decimal integer", err)
	}
	c.threadCount = count
	return nil
}

func (c *AgentConfig) initKeystore() error {
	c.keystore = c.opts.Get(KeyKeystore)
	if c.protocol == "https" && c.keystore == "" {
		return invalidConfig(KeyKeystore, "",
			`no keystore defined for the https protocol; point the "keystore" option to a valid PEM bundle`, nil)
	}
	return nil
}

func (c *AgentConfig) initClientCertAuth() error {
	// lenient on purpose: an unparseable flag value reads as false
	c.useSSLClientAuth = c.opts.GetBool(KeyUseSSLClientAuth)
	return nil
}

func (c *AgentConfig) initKeystorePassword() error {
	c.keystorePassword = []byte(c.opts.Get(KeyKeystorePassword))
	return nil
}
