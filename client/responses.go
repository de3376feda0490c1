package client

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-pisp/core"
)

type paymentRequestEnvelope struct {
	PaymentRequest *core.Payment `json:"paymentRequest"`
}

type initResponseBody struct {
	Links struct {
		ConsentApproval struct {
			Href string `json:"href"`
		} `json:"consentApproval"`
	} `json:"_links"`
}

type partnerErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
}

func parseInitResponse(res core.StringResponse) (PaymentInitResult, error) {
	location := strings.TrimSpace(res.Header("Location"))
	if location == "" {
		return PaymentInitResult{}, core.PluginError("client: init response has no Location header")
	}
	paymentID := paymentIDFromLocation(location)
	if paymentID == "" {
		return PaymentInitResult{}, core.PluginError("client: init response Location carries no payment id")
	}

	var body initResponseBody
	if err := json.Unmarshal([]byte(res.Body), &body); err != nil {
		return PaymentInitResult{}, core.WrapPluginError(err, "client: init response is not parsable")
	}
	approvalURL := strings.TrimSpace(body.Links.ConsentApproval.Href)
	if approvalURL == "" {
		return PaymentInitResult{}, core.PluginError("client: init response has no consent approval link")
	}

	return PaymentInitResult{
		PaymentID:   paymentID,
		ApprovalURL: approvalURL,
		StatusCode:  res.StatusCode,
	}, nil
}

// paymentIDFromLocation extracts the last path segment of the Location value.
// The partner has sent absolute URLs, absolute paths, and bare ids over time;
// all three resolve the same way.
func paymentIDFromLocation(location string) string {
	trimmed := strings.TrimRight(location, "/")
	if trimmed == "" {
		return ""
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func (c *Client) classifyPartnerError(res core.StringResponse) error {
	var body partnerErrorBody
	message := "unknown partner error"
	if err := json.Unmarshal([]byte(res.Body), &body); err == nil {
		if strings.TrimSpace(body.Message) != "" {
			message = body.Message
		} else if strings.TrimSpace(body.Error) != "" {
			message = body.Error
		}
	}
	c.logger.Error("partner rejected the request",
		"status_code", res.StatusCode,
		"status_message", res.StatusMessage,
		"error", body.Error,
		"message", body.Message,
		"path", body.Path,
	)
	return core.PartnerUnknownError(message)
}
