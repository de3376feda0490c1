package auth

import (
	"encoding/json"
	"strings"
	"time"
)

const defaultTokenLifetime = 300 * time.Second

// TokenResponse is the success body of the token endpoint. The partner embeds
// a JWT user body as a JSON string under "jwt.user.body" whose auth_time, when
// present, anchors the token lifetime instead of the response arrival time.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   *int64 `json:"expires_in"`
	Scope       string `json:"scope"`
	JWTUserBody string `json:"jwt.user.body"`
}

type jwtUserBody struct {
	AuthTime *int64 `json:"auth_time"`
}

// IssuedAt resolves the instant the token lifetime is counted from: the JWT
// body's auth_time when the partner sent one, otherwise the given fallback.
func (r TokenResponse) IssuedAt(fallback time.Time) time.Time {
	body := strings.TrimSpace(r.JWTUserBody)
	if body == "" {
		return fallback
	}
	var parsed jwtUserBody
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || parsed.AuthTime == nil {
		return fallback
	}
	return time.Unix(*parsed.AuthTime, 0)
}

// Lifetime returns the advertised token lifetime, defaulting to five minutes
// when the server omits expires_in.
func (r TokenResponse) Lifetime() time.Duration {
	if r.ExpiresIn == nil || *r.ExpiresIn <= 0 {
		return defaultTokenLifetime
	}
	return time.Duration(*r.ExpiresIn) * time.Second
}

// ErrorResponse is the RFC 6749 error body of the token endpoint.
type ErrorResponse struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	URI         string `json:"error_uri"`
}
