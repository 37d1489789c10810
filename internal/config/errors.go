// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel every [InvalidConfigError] matches via
// errors.Is. Callers that only care whether construction failed on user
// input check against it; the concrete error carries the details.
var ErrInvalidConfig = errors.New("invalid agent configuration")

// InvalidConfigError is the single error kind raised while constructing
// an [AgentConfig]. It names the offending option and value, explains
// the rule that was broken, and wraps the lower-level cause when one
// exists (name resolution, number parse, authenticator construction).
//
// Any InvalidConfigError aborts construction entirely; there is no
// partially usable configuration object.
type InvalidConfigError struct {
	Key    string
	Value  string
	Reason string
	Err    error
}

func (e *InvalidConfigError) Error() string {
	msg := fmt.Sprintf("invalid agent configuration: option %q", e.Key)
	if e.Value != "" {
		msg += fmt.Sprintf(" with value %q", e.Value)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is lets errors.Is(err, ErrInvalidConfig) match without callers knowing
// the concrete type.
func (e *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Unwrap exposes the lower-level cause, if any.
func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}

func invalidConfig(key, value, reason string, cause error) error {
	return &InvalidConfigError{Key: key, Value: value, Reason: reason, Err: cause}
}
