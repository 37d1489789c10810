// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Basic checks HTTP basic-auth credentials against a single configured
// user/password pair. The configured password may be plain text or a
// bcrypt hash (htpasswd style, recognized by its "$2a$"/"$2b$"/"$2y$"
// prefix); plain-text comparison is constant-time.
type Basic struct {
	user     string
	password string
}

// NewBasic returns the built-in basic-credential authenticator for the
// given user and password.
func NewBasic(user, password string) *Basic {
	return &Basic{user: user, password: password}
}

// Authenticate implements [Authenticator].
func (b *Basic) Authenticate(r *http.Request) bool {
	user, password, ok := r.BasicAuth()
	if !ok {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(b.user)) == 1

	var passwordOK bool
	if isBcryptHash(b.password) {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(b.password), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(b.password)) == 1
	}

	// evaluate both comparisons before deciding
	return userOK && passwordOK
}

func isBcryptHash(password string) bool {
	return strings.HasPrefix(password, "$2a$") ||
		strings.HasPrefix(password, "$2b$") ||
		strings.HasPrefix(password, "$2y$")
}
