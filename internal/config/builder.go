// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// optionsBuilder assembles the caller-supplied overrides layer from the
// available sources. Sources are applied in the order the withX calls
// run; later sources win key-by-key. The defaults layer is not the
// builder's business — [Merge] puts it underneath afterwards.
type optionsBuilder struct {
	layers []Options
	err    error
}

func newOptionsBuilder() *optionsBuilder {
	return &optionsBuilder{
		layers: make([]Options, 0, 2),
	}
}

func (b *optionsBuilder) build() (Options, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building options: %w", b.err)
	}

	overrides := make(Options)
	for _, layer := range b.layers {
		for key, value := range layer {
			overrides[key] = value
		}
	}

	return overrides, nil
}

func (b *optionsBuilder) withEnv() *optionsBuilder {
	envOpts, err := parseEnv()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.layers = append(b.layers, envOpts)
	return b
}

func (b *optionsBuilder) withArgs(args []string) *optionsBuilder {
	argOpts, err := parseArgs(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.layers = append(b.layers, argOpts)
	return b
}

// CollectOverrides builds the overrides layer from the process
// environment (AGENT_* variables) and command-line key=value pairs,
// arguments winning over environment. The result is the overrides input
// for [Merge] / [NewAgentConfig].
func CollectOverrides(args []string) (Options, error) {
	return newOptionsBuilder().
		withEnv().
		withArgs(args).
		build()
}

// envOptions mirrors the recognized option keys onto AGENT_* environment
// variables. All fields stay strings: conversion and validation belong
// to the validators, not the source.
type envOptions struct {
	Host             string `env:"HOST"`
	Port             string `env:"PORT"`
	Backlog          string `env:"BACKLOG"`
	Protocol         string `env:"PROTOCOL"`
	Executor         string `env:"EXECUTOR"`
	ThreadNr         string `env:"THREAD_NR"`
	Keystore         string `env:"KEYSTORE"`
	KeystorePassword string `env:"KEYSTORE_PASSWORD"`
	UseSSLClientAuth string `env:"USE_SSL_CLIENT_AUTHENTICATION"`
	AgentContext     string `env:"CONTEXT"`
	AgentID          string `env:"ID"`
	Authenticator    string `env:"AUTHENTICATOR"`
	User             string `env:"USER"`
	Password         string `env:"PASSWORD"`
	BootPprof        string `env:"BOOT_PPROF"`
}

func parseEnv() (Options, error) {
	var cfg envOptions
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "AGENT_"}); err != nil {
		return nil, fmt.Errorf("error getting env options: %w", err)
	}

	opts := make(Options)
	for key, value := range map[string]string{
		KeyHost:             cfg.Host,
		KeyPort:             cfg.Port,
		KeyBacklog:          cfg.Backlog,
		KeyProtocol:         cfg.Protocol,
		KeyExecutor:         cfg.Executor,
		KeyThreadNr:         cfg.ThreadNr,
		KeyKeystore:         cfg.Keystore,
		KeyKeystorePassword: cfg.KeystorePassword,
		KeyUseSSLClientAuth: cfg.UseSSLClientAuth,
		KeyAgentContext:     cfg.AgentContext,
		KeyAgentID:          cfg.AgentID,
		KeyAuthenticator:    cfg.Authenticator,
		KeyUser:             cfg.User,
		KeyPassword:         cfg.Password,
		KeyBootPprof:        cfg.BootPprof,
	} {
		if value != "" {
			opts[key] = value
		}
	}

	return opts, nil
}

// parseArgs reads command-line arguments of the form key=value. The key
// set is open: unknown keys are carried into the merged options for
// downstream readers (custom authenticators, the protocol layer).
func parseArgs(args []string) (Options, error) {
	opts := make(Options, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("argument %q is not of the form key=value", arg)
		}
		opts[key] = value
	}
	return opts, nil
}
