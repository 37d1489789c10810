// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Option keys the jwt authenticator reads from the runtime options.
const (
	// JWTSignKeyOption holds the HMAC key bearer tokens must be signed
	// with. Required when the "jwt" authenticator is selected.
	JWTSignKeyOption = "jwtSignKey"
	// JWTIssuerOption, when set, is the required "iss" claim.
	JWTIssuerOption = "jwtIssuer"
)

func init() {
	Register("jwt", Factory(NewJWTFromOptions))
}

// JWT accepts requests carrying a bearer token signed with the
// configured HMAC key. It ships registered under the name "jwt" and
// doubles as the reference implementation of the pluggable
// authenticator path.
type JWT struct {
	parser  *jwt.Parser
	signKey []byte
}

// NewJWTFromOptions is the options-arg constructor for the "jwt"
// authenticator. It fails when the sign key option is missing.
func NewJWTFromOptions(opts Options) (Authenticator, error) {
	signKey := opts.Get(JWTSignKeyOption)
	if signKey == "" {
		return nil, errors.New("option " + JWTSignKeyOption + " is required")
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if issuer := opts.Get(JWTIssuerOption); issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(issuer))
	}

	return &JWT{
		parser:  jwt.NewParser(parserOpts...),
		signKey: []byte(signKey),
	}, nil
}

// Authenticate implements [Authenticator].
func (j *JWT) Authenticate(r *http.Request) bool {
	tokenString, err := bearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return false
	}

	token, err := j.parser.Parse(tokenString, func(*jwt.Token) (any, error) {
		return j.signKey, nil
	})

	return err == nil && token.Valid
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errors.New("authorization header is not a bearer token")
	}
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}
