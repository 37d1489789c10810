// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import "net/http"

// Authenticator is the capability the HTTP bootstrap enforces on every
// management request. Implementations must be safe for concurrent use.
type Authenticator interface {
	// Authenticate reports whether the request carries acceptable
	// credentials.
	Authenticate(r *http.Request) bool
}

// Options is the read-only configuration lookup handed to authenticator
// factories, so custom authenticators can read arbitrary option keys
// without this package importing the config layer.
type Options interface {
	// Get returns the value for key, or the empty string when absent.
	Get(key string) string
}
