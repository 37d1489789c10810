// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Option keys recognized by the validators. Keys are case-sensitive
// literal strings; anything else in the merged map is kept verbatim for
// downstream readers of [AgentConfig.Options].
const (
	// KeyHost is the address to bind the HTTP listener to. "*" and
	// "0.0.0.0" select every interface; an absent key selects loopback.
	KeyHost = "host"
	// KeyPort is the TCP port to listen on. Required (the bundled
	// defaults provide it).
	KeyPort = "port"
	// KeyBacklog is the accept backlog of the listener. Required (the
	// bundled defaults provide it).
	KeyBacklog = "backlog"
	// KeyProtocol selects "http" or "https".
	KeyProtocol = "protocol"
	// KeyExecutor selects the serving model: "single", "fixed" or
	// "cached" (case-insensitive).
	KeyExecutor = "executor"
	// KeyThreadNr is the worker count when the executor is "fixed".
	KeyThreadNr = "threadNr"
	// KeyKeystore is the path to the PEM bundle holding the server
	// certificate and key. Required when the protocol is "https".
	KeyKeystore = "keystore"
	// KeyKeystorePassword protects an encrypted keystore. May be empty.
	KeyKeystorePassword = "keystorePassword"
	// KeyUseSSLClientAuth toggles TLS client-certificate authentication.
	// Parsed leniently: any value other than a parseable "true" reads
	// as false.
	KeyUseSSLClientAuth = "useSslClientAuthentication"
	// KeyAgentContext is the context path the agent is served under.
	KeyAgentContext = "agentContext"
	// KeyAgentID identifies this agent instance. Generated during the
	// merge when not supplied.
	KeyAgentID = "agentId"
	// KeyDetectorOptions holds the JSON detector-options blob injected
	// during the merge. Never supplied directly.
	KeyDetectorOptions = "detectorOptions"
	// KeyAuthenticator names a registered custom authenticator. When
	// empty the built-in basic-credential fallback applies.
	KeyAuthenticator = "authenticator"
	// KeyUser and KeyPassword select the built-in basic-credential
	// authenticator when both are present.
	KeyUser     = "user"
	KeyPassword = "password"
	// KeyBootPprof, when "true", injects the pprof detector options
	// blob under KeyDetectorOptions.
	KeyBootPprof = "bootPprof"
)

// Built-in fallbacks for optional keys.
const (
	DefaultProtocol    = "http"
	DefaultExecutor    = "single"
	DefaultContextPath = "/mgmt/"
	DefaultThreadCount = 5
)
