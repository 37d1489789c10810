// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mgmt-agent/internal/auth"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func testDefaults() Options {
	return Options{KeyPort: "8778", KeyBacklog: "10"}
}

func newTestConfig(t *testing.T, overrides Options) *AgentConfig {
	t.Helper()
	cfg, err := NewAgentConfigWithDefaults(overrides, testDefaults())
	require.NoError(t, err)
	return cfg
}

type allowAll struct{}

func (allowAll) Authenticate(*http.Request) bool { return true }

// ── construction ──────────────────────────────────────────────────────────────

// TestNewAgentConfig_DefaultsOnly verifies the full derived shape of a
// configuration built from defaults alone: http on loopback, single
// executor, default context path, no authentication.
func TestNewAgentConfig_DefaultsOnly(t *testing.T) {
	cfg := newTestConfig(t, Options{})

	assert.Equal(t, "http", cfg.Protocol())
	assert.True(t, cfg.BindAddress().IsLoopback())
	assert.Equal(t, 8778, cfg.Port())
	assert.Equal(t, 10, cfg.Backlog())
	assert.Equal(t, "single", cfg.Executor())
	assert.Equal(t, DefaultThreadCount, cfg.ThreadCount())
	assert.Equal(t, DefaultContextPath, cfg.ContextPath())
	assert.Empty(t, cfg.Keystore())
	assert.Empty(t, cfg.KeystorePassword())
	assert.False(t, cfg.UseSSLClientAuthentication())
	assert.Nil(t, cfg.Authenticator())
	assert.NotEmpty(t, cfg.AgentID())
}

// TestNewAgentConfig_DeterministicExceptAgentID verifies that identical
// input yields identical fields, the generated agent id excepted.
func TestNewAgentConfig_DeterministicExceptAgentID(t *testing.T) {
	overrides := Options{KeyHost: "127.0.0.1", KeyPort: "9000", KeyExecutor: "cached"}

	first := newTestConfig(t, overrides)
	second := newTestConfig(t, overrides)

	assert.Equal(t, first.Protocol(), second.Protocol())
	assert.Equal(t, first.BindAddress(), second.BindAddress())
	assert.Equal(t, first.Port(), second.Port())
	assert.Equal(t, first.Backlog(), second.Backlog())
	assert.Equal(t, first.Executor(), second.Executor())
	assert.Equal(t, first.ContextPath(), second.ContextPath())
	assert.NotEqual(t, first.AgentID(), second.AgentID())
}

// ── context path ──────────────────────────────────────────────────────────────

// TestContextPath_AlwaysSlashTerminated verifies the trailing separator
// invariant for values with and without one.
func TestContextPath_AlwaysSlashTerminated(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"/manage", "/manage/"},
		{"/manage/", "/manage/"},
		{"/", "/"},
	}
	for _, tt := range tests {
		cfg := newTestConfig(t, Options{KeyAgentContext: tt.value})
		assert.Equalf(t, tt.want, cfg.ContextPath(), "value %q", tt.value)
	}
}

// ── protocol / keystore ───────────────────────────────────────────────────────

// TestProtocol_RejectsUnknownLiteral verifies that any literal other than
// http/https fails with InvalidConfig.
func TestProtocol_RejectsUnknownLiteral(t *testing.T) {
	_, err := NewAgentConfigWithDefaults(Options{KeyProtocol: "ftp"}, testDefaults())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "ftp")
}

// TestProtocol_HTTPSRequiresKeystore verifies the https/keystore coupling
// in both directions.
func TestProtocol_HTTPSRequiresKeystore(t *testing.T) {
	_, err := NewAgentConfigWithDefaults(Options{KeyProtocol: "https"}, testDefaults())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := newTestConfig(t, Options{KeyProtocol: "https", KeyKeystore: "foo.jks"})
	assert.Equal(t, "https", cfg.Protocol())
	assert.Equal(t, "foo.jks", cfg.Keystore())
}

// TestKeystorePassword_RawBytes verifies the password conversion and the
// empty sequence for the absent key.
func TestKeystorePassword_RawBytes(t *testing.T) {
	cfg := newTestConfig(t, Options{KeyKeystorePassword: "s3cret"})
	assert.Equal(t, []byte("s3cret"), cfg.KeystorePassword())

	cfg = newTestConfig(t, Options{})
	assert.Empty(t, cfg.KeystorePassword())
}

// ── bind address ──────────────────────────────────────────────────────────────

// TestBindAddress_WildcardSentinels verifies that "*" and "0.0.0.0" both
// resolve to the any-interface sentinel (nil IP).
func TestBindAddress_WildcardSentinels(t *testing.T) {
	for _, host := range []string{"*", "0.0.0.0"} {
		cfg := newTestConfig(t, Options{KeyHost: host})
		assert.Nilf(t, cfg.BindAddress(), "host %q", host)
	}
}

// TestBindAddress_AbsentHostIsLoopback verifies the secure default: no
// host key means loopback, not wildcard.
func TestBindAddress_AbsentHostIsLoopback(t *testing.T) {
	cfg := newTestConfig(t, Options{})
	require.NotNil(t, cfg.BindAddress())
	assert.True(t, cfg.BindAddress().IsLoopback())
}

// TestBindAddress_LiteralIP verifies that a literal IP is taken as-is
// without a resolver round trip.
func TestBindAddress_LiteralIP(t *testing.T) {
	cfg := newTestConfig(t, Options{KeyHost: "192.0.2.1"})
	assert.True(t, net.ParseIP("192.0.2.1").Equal(cfg.BindAddress()))
}

// TestBindAddress_UnresolvableHost verifies that a failing name lookup
// aborts construction with InvalidConfig wrapping the resolver error.
func TestBindAddress_UnresolvableHost(t *testing.T) {
	_, err := NewAgentConfigWithDefaults(Options{KeyHost: "nonexistent.invalid"}, testDefaults())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var invalid *InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, KeyHost, invalid.Key)
	assert.Error(t, invalid.Err, "expected the resolver error to be wrapped")
}

// ── port / backlog ────────────────────────────────────────────────────────────

// TestPort_ParseMatrix verifies required-key and decimal-parse handling
// for the port option.
func TestPort_ParseMatrix(t *testing.T) {
	cfg := newTestConfig(t, Options{KeyPort: "8080"})
	assert.Equal(t, 8080, cfg.Port())

	_, err := NewAgentConfigWithDefaults(Options{KeyPort: "notanumber"}, testDefaults())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewAgentConfigWithDefaults(Options{}, Options{KeyBacklog: "10"})
	assert.ErrorIs(t, err, ErrInvalidConfig, "missing port key must be fatal")

	_, err = NewAgentConfigWithDefaults(Options{KeyPort: "-1"}, testDefaults())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// TestBacklog_ParseMatrix verifies the same rules for backlog.
func TestBacklog_ParseMatrix(t *testing.T) {
	cfg := newTestConfig(t, Options{KeyBacklog: "42"})
	assert.Equal(t, 42, cfg.Backlog())

	_, err := NewAgentConfigWithDefaults(Options{KeyBacklog: "many"}, testDefaults())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewAgentConfigWithDefaults(Options{}, Options{KeyPort: "8778"})
	assert.ErrorIs(t, err, ErrInvalidConfig, "missing backlog key must be fatal")
}

// ── executor / threads ────────────────────────────────────────────────────────

// TestExecutor_Matrix verifies the executor model validation: default,
// case-insensitive match, and rejection of unknown models.
func TestExecutor_Matrix(t *testing.T) {
	cfg := newTestConfig(t, Options{})
	assert.Equal(t, "single", cfg.Executor())

	cfg = newTestConfig(t, Options{KeyExecutor: "FIXED"})
	assert.Equal(t, "fixed", cfg.Executor())

	_, err := NewAgentConfigWithDefaults(Options{KeyExecutor: "bogus"}, testDefaults())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "bogus")
}

// TestThreadCount_DefaultAndParse verifies the thread count default of 5
// and the fatal non-numeric parse.
func TestThreadCount_DefaultAndParse(t *testing.T) {
	cfg := newTestConfig(t, Options{})
	assert.Equal(t, 5, cfg.ThreadCount())

	cfg = newTestConfig(t, Options{KeyThreadNr: "12"})
	assert.Equal(t, 12, cfg.ThreadCount())

	_, err := NewAgentConfigWithDefaults(Options{KeyThreadNr: "dozen"}, testDefaults())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// ── client cert flag ──────────────────────────────────────────────────────────

// TestUseSSLClientAuthentication_LenientFlag verifies the preserved
// permissive parse: invalid values read as false, never as an error.
func TestUseSSLClientAuthentication_LenientFlag(t *testing.T) {
	cfg := newTestConfig(t, Options{KeyUseSSLClientAuth: "true"})
	assert.True(t, cfg.UseSSLClientAuthentication())

	cfg = newTestConfig(t, Options{KeyUseSSLClientAuth: "bogus"})
	assert.False(t, cfg.UseSSLClientAuthentication())

	cfg = newTestConfig(t, Options{})
	assert.False(t, cfg.UseSSLClientAuthentication())
}

// ── authenticator selection ───────────────────────────────────────────────────

// TestAuthenticator_BasicFallback verifies that user+password select the
// built-in basic-credential checker and that either alone selects none.
func TestAuthenticator_BasicFallback(t *testing.T) {
	cfg := newTestConfig(t, Options{KeyUser: "admin", KeyPassword: "secret"})
	basic, ok := cfg.Authenticator().(*auth.Basic)
	require.True(t, ok, "expected a *auth.Basic authenticator")

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("admin", "secret")
	assert.True(t, basic.Authenticate(req))

	cfg = newTestConfig(t, Options{KeyUser: "admin"})
	assert.Nil(t, cfg.Authenticator())

	cfg = newTestConfig(t, Options{})
	assert.Nil(t, cfg.Authenticator())
}

// TestAuthenticator_RegisteredCustom verifies that a registered name is
// resolved through the registry and receives the merged options.
func TestAuthenticator_RegisteredCustom(t *testing.T) {
	var seen string
	auth.Register("agent-test-custom", auth.Factory(func(opts auth.Options) (auth.Authenticator, error) {
		seen = opts.Get("custom.flavor")
		return allowAll{}, nil
	}))

	cfg := newTestConfig(t, Options{KeyAuthenticator: "agent-test-custom", "custom.flavor": "vanilla"})
	assert.Equal(t, allowAll{}, cfg.Authenticator())
	assert.Equal(t, "vanilla", seen)
}

// TestAuthenticator_UnknownName verifies that an unregistered name fails
// with InvalidConfig naming the authenticator.
func TestAuthenticator_UnknownName(t *testing.T) {
	_, err := NewAgentConfigWithDefaults(Options{KeyAuthenticator: "no-such-authenticator"}, testDefaults())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, auth.ErrUnknownAuthenticator)
	assert.Contains(t, err.Error(), "no-such-authenticator")
}

// TestAuthenticator_InvalidRegistration verifies that a registration of
// the wrong shape is rejected at construction with InvalidConfig.
func TestAuthenticator_InvalidRegistration(t *testing.T) {
	auth.Register("agent-test-bad-shape", "not a factory at all")

	_, err := NewAgentConfigWithDefaults(Options{KeyAuthenticator: "agent-test-bad-shape"}, testDefaults())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "agent-test-bad-shape")
}

// TestAuthenticator_JWTFromOptions verifies the shipped "jwt" pluggable
// authenticator end to end through the config layer.
func TestAuthenticator_JWTFromOptions(t *testing.T) {
	cfg := newTestConfig(t, Options{
		KeyAuthenticator:      "jwt",
		auth.JWTSignKeyOption: "sign-key",
		auth.JWTIssuerOption:  "mgmt-agent",
	})
	_, ok := cfg.Authenticator().(*auth.JWT)
	assert.True(t, ok, "expected a *auth.JWT authenticator")

	_, err := NewAgentConfigWithDefaults(Options{KeyAuthenticator: "jwt"}, testDefaults())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig, "jwt without sign key must be fatal")
}

// ── error shape ───────────────────────────────────────────────────────────────

// TestInvalidConfigError_MessageNamesKeyAndValue verifies the
// user-facing message contract.
func TestInvalidConfigError_MessageNamesKeyAndValue(t *testing.T) {
	_, err := NewAgentConfigWithDefaults(Options{KeyPort: "abc"}, testDefaults())
	require.Error(t, err)

	assert.Contains(t, err.Error(), KeyPort)
	assert.Contains(t, err.Error(), "abc")

	var invalid *InvalidConfigError
	require.ErrorAs(t, err, &invalid)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Error(t, invalid.Unwrap(), "parse failures must wrap the cause")
}
