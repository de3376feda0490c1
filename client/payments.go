package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-pisp/core"
	"github.com/goliatone/go-pisp/signature"
)

const paymentRequestsPath = "/payment-requests"

const psuDateLayout = "20060102150405"

// PaymentInitResult is the outcome of a successful payment initiation: the
// partner-assigned payment id and the URL the PSU must be redirected to for
// consent.
type PaymentInitResult struct {
	PaymentID   string
	ApprovalURL string
	StatusCode  int
}

// InitiatePayment submits a payment request. The body is digested and signed
// together with the request id; PSU session details travel as headers.
func (c *Client) InitiatePayment(ctx context.Context, payment core.Payment, psu core.PSUInformation) (PaymentInitResult, error) {
	authorization, err := c.Authorize(ctx)
	if err != nil {
		return PaymentInitResult{}, err
	}

	body, err := json.Marshal(payment)
	if err != nil {
		return PaymentInitResult{}, core.WrapPluginError(err, "client: payment request is not serializable")
	}

	target := c.paymentURL(paymentRequestsPath)
	headers := map[string]string{
		"Authorization": authorization.HeaderValue(),
		"Content-Type":  "application/json",
		"X-Request-ID":  uuid.NewString(),
		"Digest":        signature.Digest(string(body)),
	}
	addPSUHeaders(headers, psu)

	if err := c.signRequest(http.MethodPost, target, headers, []string{"X-Request-ID", "Digest"}); err != nil {
		return PaymentInitResult{}, err
	}

	res, err := c.executor.Execute(ctx, core.TransportRequest{
		Method:  http.MethodPost,
		URL:     target,
		Headers: headers,
		Body:    body,
		Timeout: c.config.HTTP.RequestTimeoutDuration(),
	})
	if err != nil {
		return PaymentInitResult{}, err
	}
	if res.StatusCode != http.StatusCreated {
		return PaymentInitResult{}, c.classifyPartnerError(res)
	}
	return parseInitResponse(res)
}

// FetchStatus retrieves the current state of a previously initiated payment.
func (c *Client) FetchStatus(ctx context.Context, paymentID string) (core.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return core.Payment{}, core.InvalidConfigurationError("client: payment id is required")
	}
	authorization, err := c.Authorize(ctx)
	if err != nil {
		return core.Payment{}, err
	}

	target := c.paymentURL(paymentRequestsPath + "/" + url.PathEscape(paymentID))
	headers := map[string]string{
		"Authorization": authorization.HeaderValue(),
		"X-Request-ID":  uuid.NewString(),
	}
	if err := c.signRequest(http.MethodGet, target, headers, []string{"X-Request-ID"}); err != nil {
		return core.Payment{}, err
	}

	res, err := c.executor.Execute(ctx, core.TransportRequest{
		Method:  http.MethodGet,
		URL:     target,
		Headers: headers,
		Timeout: c.config.HTTP.RequestTimeoutDuration(),
	})
	if err != nil {
		return core.Payment{}, err
	}
	if res.StatusCode != http.StatusOK {
		return core.Payment{}, c.classifyPartnerError(res)
	}

	var envelope paymentRequestEnvelope
	if err := json.Unmarshal([]byte(res.Body), &envelope); err != nil {
		return core.Payment{}, core.WrapCommunicationError(err, "client: status response is not parsable")
	}
	if envelope.PaymentRequest == nil {
		return core.Payment{}, core.CommunicationError("client: status response has no paymentRequest")
	}
	return *envelope.PaymentRequest, nil
}

// TransactionOutcome fetches the payment status and classifies it into a
// normalized outcome.
func (c *Client) TransactionOutcome(ctx context.Context, paymentID string) (core.TransactionOutcome, error) {
	payment, err := c.FetchStatus(ctx, paymentID)
	if err != nil {
		return core.TransactionOutcome{}, err
	}
	return core.OutcomeFromPayment(payment)
}

func (c *Client) signRequest(method string, target string, headers map[string]string, signedHeaders []string) error {
	signaturePath, err := requestPath(target)
	if err != nil {
		return err
	}
	value, err := c.signer.Sign(method, signaturePath, headers, signedHeaders)
	if err != nil {
		return err
	}
	headers["Signature"] = value
	return nil
}

func requestPath(target string) (string, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return "", core.WrapPluginError(err, "client: request url is not parsable")
	}
	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return path, nil
}

func addPSUHeaders(headers map[string]string, psu core.PSUInformation) {
	set := func(name string, value string) {
		if strings.TrimSpace(value) != "" {
			headers[name] = value
		}
	}
	set("PSUAddress", psu.IPAddress)
	if psu.IPPort > 0 {
		headers["PSUPort"] = strconv.Itoa(psu.IPPort)
	}
	set("PSUHTTPMethod", psu.HTTPMethod)
	if psu.LastLogin != nil {
		headers["PSUDate"] = psu.LastLogin.Format(psuDateLayout)
	}
	set("PSUUserAgent", psu.HeaderUserAgent)
	set("PSUReferer", psu.HeaderReferer)
	set("PSUAccept", psu.HeaderAccept)
	set("PSUAcceptCharset", psu.HeaderAcceptCharset)
	set("PSUAcceptEncoding", psu.HeaderAcceptEncoding)
	set("PSUAcceptLanguage", psu.HeaderAcceptLanguage)
	set("PsuGeoLocation", psu.GeoLocation)
	set("PSU-Device-ID", psu.DeviceID)
}
