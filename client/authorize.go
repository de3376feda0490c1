package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-pisp/auth"
	"github.com/goliatone/go-pisp/core"
)

const tokenPath = "/oauth/token"

// Authorize returns a presentable access token, reusing the cached one while
// it stays clear of the renew margin. Concurrent callers share one refresh.
func (c *Client) Authorize(ctx context.Context) (auth.Authorization, error) {
	if authorization, ok := c.tokens.Get(); ok {
		return authorization, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if authorization, ok := c.tokens.Get(); ok {
		return authorization, nil
	}

	authorization, err := c.requestToken(ctx)
	if err != nil {
		return auth.Authorization{}, err
	}
	c.tokens.Set(authorization)
	return authorization, nil
}

func (c *Client) requestToken(ctx context.Context) (auth.Authorization, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req := core.TransportRequest{
		Method: http.MethodPost,
		URL:    c.authURL(tokenPath),
		Headers: map[string]string{
			"Authorization": basicAuthHeader(c.config.ClientID, c.config.ClientSecret),
			"Content-Type":  "application/x-www-form-urlencoded",
		},
		Body:    []byte(form.Encode()),
		Timeout: c.config.HTTP.RequestTimeoutDuration(),
	}

	res, err := c.executor.Execute(ctx, req)
	if err != nil {
		return auth.Authorization{}, err
	}
	if res.StatusCode != http.StatusOK {
		return auth.Authorization{}, c.classifyTokenError(res)
	}
	return c.parseTokenResponse(res)
}

func (c *Client) parseTokenResponse(res core.StringResponse) (auth.Authorization, error) {
	var token auth.TokenResponse
	if err := json.Unmarshal([]byte(res.Body), &token); err != nil {
		return auth.Authorization{}, core.WrapCommunicationError(err, "client: token response is not parsable")
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return auth.Authorization{}, core.CommunicationError("client: token response has no access_token")
	}

	now := c.now()
	expiresAt := token.IssuedAt(now).Add(token.Lifetime())
	authorization, err := auth.NewAuthorization(token.AccessToken, token.TokenType, expiresAt)
	if err != nil {
		return auth.Authorization{}, err
	}

	c.logger.Info("access token acquired",
		"token_type", authorization.TokenType,
		"scope", token.Scope,
		"expires_at", authorization.ExpiresAt,
	)
	return authorization, nil
}

func (c *Client) classifyTokenError(res core.StringResponse) error {
	var body auth.ErrorResponse
	if err := json.Unmarshal([]byte(res.Body), &body); err == nil && strings.TrimSpace(body.Code) != "" {
		c.logger.Error("token endpoint rejected the request",
			"status_code", res.StatusCode,
			"error", body.Code,
			"error_description", body.Description,
		)
		return core.AuthorizationError(body.Code)
	}
	c.logger.Error("token endpoint returned an unexpected response",
		"status_code", res.StatusCode,
		"status_message", res.StatusMessage,
	)
	return core.PartnerUnknownError("client: token endpoint returned status " + strconv.Itoa(res.StatusCode))
}

func basicAuthHeader(clientID string, clientSecret string) string {
	credentials := clientID + ":" + clientSecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}
