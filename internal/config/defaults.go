// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
)

//go:embed default-agent.properties
var defaultProperties []byte

// DefaultOptions returns the built-in defaults shipped with the agent as
// the lowest-precedence options layer. The bundled resource is a flat
// key=value properties file and is read once per call; callers that need
// synthetic defaults (tests, embedders) pass their own map to
// [NewAgentConfigWithDefaults] instead.
func DefaultOptions() Options {
	opts, err := parseProperties(bytes.NewReader(defaultProperties))
	if err != nil {
		// the resource is compiled in, a parse failure is a build defect
		panic(fmt.Sprintf("config: bundled default-agent.properties is malformed: %v", err))
	}
	return opts
}

// parseProperties reads a flat key=value properties stream. Blank lines
// and lines starting with '#' or '!' are skipped; the first '=' splits
// key from value and both sides are trimmed.
func parseProperties(r io.Reader) (Options, error) {
	opts := make(Options)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "!") {
			continue
		}
		key, value, found := strings.Cut(text, "=")
		if !found {
			return nil, fmt.Errorf("line %d: missing '=' separator in %q", line, text)
		}
		opts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading properties: %w", err)
	}
	return opts, nil
}
