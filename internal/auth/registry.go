// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"errors"
	"fmt"
	"sync"
)

// Factory constructs an [Authenticator] from the runtime options. This
// is the preferred registration form: it lets custom authenticators read
// arbitrary configuration keys.
type Factory func(opts Options) (Authenticator, error)

// SimpleFactory constructs an [Authenticator] without arguments. It is
// the fallback form for implementations that need no configuration.
type SimpleFactory func() (Authenticator, error)

// ErrUnknownAuthenticator is wrapped by [Resolve] when the configured
// name has never been registered.
var ErrUnknownAuthenticator = errors.New("unknown authenticator")

var (
	registryMu sync.RWMutex
	registry   = make(map[string]any)
)

// Register makes an authenticator constructor available under name.
// The value must be a [Factory] or a [SimpleFactory]; anything else is
// kept and rejected at resolution time with an error naming the
// offending registration. Registering the same name twice panics, as
// does a nil constructor.
func Register(name string, constructor any) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if constructor == nil {
		panic("auth: Register constructor is nil")
	}
	if _, dup := registry[name]; dup {
		panic("auth: Register called twice for authenticator " + name)
	}
	registry[name] = constructor
}

// Resolve looks up the authenticator registered under name and
// constructs it, preferring the options-arg constructor form and falling
// back to the no-arg form. Every failure names the authenticator and the
// constructor form that was attempted and wraps the underlying cause.
func Resolve(name string, opts Options) (Authenticator, error) {
	registryMu.RLock()
	constructor, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q is not registered", ErrUnknownAuthenticator, name)
	}

	switch factory := constructor.(type) {
	case Factory:
		return construct(name, "options-arg", func() (Authenticator, error) { return factory(opts) })
	case func(Options) (Authenticator, error):
		return construct(name, "options-arg", func() (Authenticator, error) { return factory(opts) })
	case SimpleFactory:
		return construct(name, "no-arg", factory)
	case func() (Authenticator, error):
		return construct(name, "no-arg", factory)
	default:
		return nil, fmt.Errorf("authenticator %q is registered as %T, which is neither a Factory nor a SimpleFactory",
			name, constructor)
	}
}

func construct(name, form string, build func() (Authenticator, error)) (Authenticator, error) {
	a, err := build()
	if err != nil {
		return nil, fmt.Errorf("cannot invoke %s constructor for authenticator %q: %w", form, name, err)
	}
	if a == nil {
		return nil, fmt.Errorf("%s constructor for authenticator %q returned no instance", form, name)
	}
	return a, nil
}
