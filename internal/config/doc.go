// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config is the bootstrap configuration layer of the management
// agent.
//
// Raw options are flat string-to-string pairs assembled from three layers
// (later layers override earlier ones):
//  1. Built-in defaults, read from the bundled default-agent.properties
//     resource (or any synthetic defaults map passed explicitly)
//  2. Environment variables (AGENT_* prefix)
//  3. Command-line key=value pairs
//
// The layers are merged exactly once into an immutable [Options] lookup,
// two computed keys (agent id, detector options) are injected, and
// [NewAgentConfig] then validates and converts every field in a fixed
// order, failing fast with [InvalidConfigError] on the first bad value.
// The resulting [AgentConfig] is read-only for the rest of the process
// life and is the only thing the HTTP bootstrap consumes.
package config
