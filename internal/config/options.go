// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strconv"

// Options is the general-purpose configuration lookup built once by
// [Merge] and treated as read-only afterwards. It backs both the typed
// [AgentConfig] accessors and any downstream component that wants raw
// option values (custom authenticators read arbitrary keys through it).
type Options map[string]string

// Get returns the value for key, or the empty string when the key is
// absent.
func (o Options) Get(key string) string {
	return o[key]
}

// GetOrDefault returns the value for key, or fallback when the key is
// absent. An empty value stored under the key is returned as-is.
func (o Options) GetOrDefault(key, fallback string) string {
	if v, ok := o[key]; ok {
		return v
	}
	return fallback
}

// GetBool reads key as a boolean flag. Absent keys and values that do
// not parse as a boolean read as false; flag typos never fail.
func (o Options) GetBool(key string) bool {
	v, err := strconv.ParseBool(o[key])
	return err == nil && v
}

// GetInt parses the value for key as a decimal integer.
func (o Options) GetInt(key string) (int, error) {
	return strconv.Atoi(o[key])
}

// Has reports whether key is present, regardless of its value.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}
