// Package server is the HTTP(S) bootstrap consuming the validated agent
// configuration.
//
// It owns the listener (bind address, TLS from the keystore, executor
// model via a connection-limiting listener), mounts the management
// router under the configured context path, enforces the configured
// authenticator, and handles startup, signal handling and graceful
// shutdown. The management protocol itself is served behind the router
// by external collaborators.
package server
