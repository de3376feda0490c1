package client

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-pisp/core"
	"github.com/goliatone/go-pisp/signature"
)

func testPayment() core.Payment {
	amount := &core.Amount{Amount: "42.50", Currency: "EUR"}
	return core.Payment{
		PaymentInformationID: "REF-1",
		NumberOfTransactions: 1,
		CreditTransfers: []core.CreditTransferTransaction{{
			PaymentID:        &core.PaymentIdentification{InstructionID: "INSTR-1", EndToEndID: "E2E-1"},
			InstructedAmount: amount,
		}},
	}
}

func initCreatedResponse() core.StringResponse {
	return core.NewStringResponse(201, "Created",
		map[string]string{"Location": "https://api.partner.example/hub-pisp/v1/payment-requests/ABC-123"},
		`{"_links":{"consentApproval":{"href":"https://psu.partner.example/consent/ABC-123"}}}`)
}

func TestInitiatePayment(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		tokenResponse(),
		initCreatedResponse(),
	}}
	client := newTestClient(t, executor)

	lastLogin := time.Date(2026, 7, 31, 9, 30, 15, 0, time.UTC)
	psu := core.PSUInformation{
		LastLogin:       &lastLogin,
		IPAddress:       "203.0.113.7",
		IPPort:          443,
		HTTPMethod:      "POST",
		HeaderUserAgent: "Mozilla/5.0",
	}

	result, err := client.InitiatePayment(context.Background(), testPayment(), psu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PaymentID != "ABC-123" {
		t.Fatalf("unexpected payment id %q", result.PaymentID)
	}
	if result.ApprovalURL != "https://psu.partner.example/consent/ABC-123" {
		t.Fatalf("unexpected approval url %q", result.ApprovalURL)
	}
	if result.StatusCode != 201 {
		t.Fatalf("unexpected status code %d", result.StatusCode)
	}

	if len(executor.requests) != 2 {
		t.Fatalf("expected token plus init request, got %d", len(executor.requests))
	}
	req := executor.requests[1]
	if req.Method != "POST" || req.URL != "https://api.partner.example/hub-pisp/v1/payment-requests" {
		t.Fatalf("unexpected init request %s %s", req.Method, req.URL)
	}
	if req.Headers["Authorization"] != "Bearer T" {
		t.Fatalf("unexpected authorization header %q", req.Headers["Authorization"])
	}
	if req.Headers["Content-Type"] != "application/json" {
		t.Fatalf("unexpected content type %q", req.Headers["Content-Type"])
	}
	if strings.TrimSpace(req.Headers["X-Request-ID"]) == "" {
		t.Fatal("expected request id header")
	}
	if req.Headers["Digest"] != signature.Digest(string(req.Body)) {
		t.Fatal("expected digest header to cover the sent body")
	}
	if !strings.Contains(req.Headers["Signature"], `keyId="https://partner.example/keys/1"`) {
		t.Fatalf("unexpected signature header %q", req.Headers["Signature"])
	}
	if !strings.Contains(req.Headers["Signature"], `headers="(request-target) x-request-id digest"`) {
		t.Fatalf("expected request id and digest to be signed, got %q", req.Headers["Signature"])
	}
	if req.Headers["PSUDate"] != "20260731093015" {
		t.Fatalf("unexpected PSUDate %q", req.Headers["PSUDate"])
	}
	if req.Headers["PSUAddress"] != "203.0.113.7" || req.Headers["PSUPort"] != "443" {
		t.Fatalf("unexpected PSU headers: %v", req.Headers)
	}
	if _, ok := req.Headers["PSUReferer"]; ok {
		t.Fatal("expected unset PSU fields to stay off the wire")
	}
}

func TestInitiatePaymentRequiresLocation(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		tokenResponse(),
		core.NewStringResponse(201, "Created", nil,
			`{"_links":{"consentApproval":{"href":"https://psu.partner.example/consent/1"}}}`),
	}}
	client := newTestClient(t, executor)

	_, err := client.InitiatePayment(context.Background(), testPayment(), core.PSUInformation{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsPluginError(err) {
		t.Fatalf("expected plugin error, got %v", err)
	}
}

func TestInitiatePaymentRequiresApprovalLink(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		tokenResponse(),
		core.NewStringResponse(201, "Created",
			map[string]string{"Location": "/payment-requests/ABC-123"},
			`{"_links":{}}`),
	}}
	client := newTestClient(t, executor)

	_, err := client.InitiatePayment(context.Background(), testPayment(), core.PSUInformation{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsPluginError(err) {
		t.Fatalf("expected plugin error, got %v", err)
	}
}

func TestInitiatePaymentRejectsMalformedBody(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		tokenResponse(),
		core.NewStringResponse(201, "Created",
			map[string]string{"Location": "/payment-requests/ABC-123"},
			"<html>not json</html>"),
	}}
	client := newTestClient(t, executor)

	_, err := client.InitiatePayment(context.Background(), testPayment(), core.PSUInformation{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsPluginError(err) {
		t.Fatalf("expected plugin error, got %v", err)
	}
}

func TestInitiatePaymentClassifiesPartnerError(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		tokenResponse(),
		core.NewStringResponse(400, "Bad Request", nil,
			`{"error":"Bad Request","message":"paymentInformationId is mandatory","status":400}`),
	}}
	client := newTestClient(t, executor)

	_, err := client.InitiatePayment(context.Background(), testPayment(), core.PSUInformation{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsPartnerUnknownError(err) {
		t.Fatalf("expected partner unknown error, got %v", err)
	}
	if !strings.Contains(err.Error(), "paymentInformationId is mandatory") {
		t.Fatalf("expected partner message surfaced, got %v", err)
	}
}

func TestPaymentIDFromLocation(t *testing.T) {
	cases := []struct {
		name     string
		location string
		want     string
	}{
		{"absolute url", "https://api.partner.example/hub-pisp/v1/payment-requests/ABC-123", "ABC-123"},
		{"absolute path", "/hub-pisp/v1/payment-requests/ABC-123", "ABC-123"},
		{"bare id", "ABC-123", "ABC-123"},
		{"trailing slash", "/payment-requests/ABC-123/", "ABC-123"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := paymentIDFromLocation(tc.location); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFetchStatusUnwrapsEnvelope(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		tokenResponse(),
		core.NewStringResponse(200, "OK", nil,
			`{"paymentRequest":{"resourceId":"ABC-123","creditTransferTransaction":[{"transactionStatus":"ACSP"}]}}`),
	}}
	client := newTestClient(t, executor)

	payment, err := client.FetchStatus(context.Background(), "ABC-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.ResourceID != "ABC-123" {
		t.Fatalf("unexpected resource id %q", payment.ResourceID)
	}
	if len(payment.CreditTransfers) != 1 || payment.CreditTransfers[0].TransactionStatus != "ACSP" {
		t.Fatalf("unexpected transactions: %+v", payment.CreditTransfers)
	}

	req := executor.requests[1]
	if req.Method != "GET" || req.URL != "https://api.partner.example/hub-pisp/v1/payment-requests/ABC-123" {
		t.Fatalf("unexpected status request %s %s", req.Method, req.URL)
	}
	if !strings.Contains(req.Headers["Signature"], `headers="(request-target) x-request-id"`) {
		t.Fatalf("expected request id to be signed, got %q", req.Headers["Signature"])
	}
	if _, ok := req.Headers["Digest"]; ok {
		t.Fatal("expected no digest on a bodyless request")
	}
}

func TestFetchStatusRequiresPaymentID(t *testing.T) {
	client := newTestClient(t, &fakeExecutor{})
	if _, err := client.FetchStatus(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty payment id")
	}
}

func TestFetchStatusRequiresEnvelope(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		tokenResponse(),
		core.NewStringResponse(200, "OK", nil, `{}`),
	}}
	client := newTestClient(t, executor)

	_, err := client.FetchStatus(context.Background(), "ABC-123")
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsCommunicationError(err) {
		t.Fatalf("expected communication error, got %v", err)
	}
}

func TestTransactionOutcome(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		tokenResponse(),
		core.NewStringResponse(200, "OK", nil,
			`{"paymentRequest":{"creditTransferTransaction":[{"transactionStatus":"RJCT","statusReasonInformation":"AC01"}]}}`),
	}}
	client := newTestClient(t, executor)

	outcome, err := client.TransactionOutcome(context.Background(), "ABC-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != core.OutcomeFailure {
		t.Fatalf("expected failure, got %q", outcome.Kind)
	}
	if outcome.Cause != core.FailureCauseInvalidData {
		t.Fatalf("expected invalid data cause, got %q", outcome.Cause)
	}
}

func TestListBanks(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		tokenResponse(),
		core.NewStringResponse(200, "OK", nil,
			`{"accountServiceProviders":[{"id":"1","bic":"CCBPFRPP","name":"Banque Populaire"},{"id":"2","bic":"BREDFRPP","name":"BRED"}]}`),
	}}
	client := newTestClient(t, executor)

	banks, err := client.ListBanks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(banks) != 2 {
		t.Fatalf("expected 2 banks, got %d", len(banks))
	}
	if banks[0].BIC != "CCBPFRPP" || banks[1].Name != "BRED" {
		t.Fatalf("unexpected banks: %+v", banks)
	}

	req := executor.requests[1]
	if req.Method != "GET" || req.URL != "https://api.partner.example/hub-pisp/v1/banks" {
		t.Fatalf("unexpected banks request %s %s", req.Method, req.URL)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClientSecret = ""
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for invalid configuration")
	}

	cfg = testConfig(t)
	cfg.ClientPrivateKey = "not-pem"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unusable private key")
	}
}
