// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth defines the credential-checking capability the HTTP layer
// enforces and the registry through which custom implementations are
// selected by name at configuration time.
//
// Three levels exist: no authentication (a nil [Authenticator]), the
// built-in [Basic] user/password checker, and pluggable implementations
// registered via [Register] and resolved via [Resolve]. The package
// depends on neither the config package nor the HTTP bootstrap; config
// values reach factories through the narrow [Options] lookup.
package auth
