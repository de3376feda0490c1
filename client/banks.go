package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-pisp/core"
)

const banksPath = "/banks"

type banksEnvelope struct {
	AccountServiceProviders []core.Bank `json:"accountServiceProviders"`
}

// ListBanks returns the account servicing providers reachable through the
// partner, typically used to let the PSU pick their bank before initiation.
func (c *Client) ListBanks(ctx context.Context) ([]core.Bank, error) {
	authorization, err := c.Authorize(ctx)
	if err != nil {
		return nil, err
	}

	target := c.paymentURL(banksPath)
	headers := map[string]string{
		"Authorization": authorization.HeaderValue(),
		"X-Request-ID":  uuid.NewString(),
	}
	if err := c.signRequest(http.MethodGet, target, headers, []string{"X-Request-ID"}); err != nil {
		return nil, err
	}

	res, err := c.executor.Execute(ctx, core.TransportRequest{
		Method:  http.MethodGet,
		URL:     target,
		Headers: headers,
		Timeout: c.config.HTTP.RequestTimeoutDuration(),
	})
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, c.classifyPartnerError(res)
	}

	var envelope banksEnvelope
	if err := json.Unmarshal([]byte(res.Body), &envelope); err != nil {
		return nil, core.WrapCommunicationError(err, "client: banks response is not parsable")
	}
	return envelope.AccountServiceProviders, nil
}
