// Package auth models the OAuth2 client-credentials exchange with the partner
// authorization server and caches the resulting access token.
package auth

import (
	"strings"
	"time"

	"github.com/goliatone/go-pisp/core"
)

// Authorization is an issued access token with its expiry. Instances are
// immutable value objects.
type Authorization struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// NewAuthorization validates the token material. The token type defaults to
// Bearer when the server omits it.
func NewAuthorization(accessToken string, tokenType string, expiresAt time.Time) (Authorization, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return Authorization{}, core.InvalidConfigurationError("auth: access token is required")
	}
	if expiresAt.IsZero() {
		return Authorization{}, core.InvalidConfigurationError("auth: token expiration is required")
	}
	tokenType = strings.TrimSpace(tokenType)
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return Authorization{
		AccessToken: accessToken,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	}, nil
}

// HeaderValue renders the Authorization header value, scheme included.
func (a Authorization) HeaderValue() string {
	return a.TokenType + " " + a.AccessToken
}

// Valid reports whether the token can still be presented at the given instant,
// keeping the renew margin clear of the expiry.
func (a Authorization) Valid(now time.Time, renewMargin time.Duration) bool {
	if a.AccessToken == "" || a.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(renewMargin).Before(a.ExpiresAt)
}
