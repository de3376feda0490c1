package client

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"strconv"
	"testing"
	"time"

	"github.com/goliatone/go-pisp/core"
)

var fixedNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

type fakeExecutor struct {
	responses []core.StringResponse
	errs      []error
	requests  []core.TransportRequest
}

func (f *fakeExecutor) Execute(_ context.Context, req core.TransportRequest) (core.StringResponse, error) {
	index := len(f.requests)
	f.requests = append(f.requests, req)
	if index < len(f.errs) && f.errs[index] != nil {
		return core.StringResponse{}, f.errs[index]
	}
	if index >= len(f.responses) {
		return core.StringResponse{}, core.CommunicationError("client_test: no scripted response")
	}
	return f.responses[index], nil
}

func testPEMIdentity(t *testing.T) (string, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "connector-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
	return string(certPEM), string(keyPEM)
}

func testConfig(t *testing.T) core.Config {
	t.Helper()
	certPEM, keyPEM := testPEMIdentity(t)
	cfg := core.DefaultConfig()
	cfg.AuthBaseURL = "https://auth.partner.example"
	cfg.PaymentBaseURL = "https://api.partner.example/hub-pisp/v1"
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	cfg.SignatureKeyID = "https://partner.example/keys/1"
	cfg.ClientCertificate = certPEM
	cfg.ClientPrivateKey = keyPEM
	return cfg
}

func newTestClient(t *testing.T, executor *fakeExecutor) *Client {
	t.Helper()
	client, err := New(testConfig(t),
		WithExecutor(executor),
		WithNow(func() time.Time { return fixedNow }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func tokenResponse() core.StringResponse {
	return core.NewStringResponse(200, "OK", nil,
		`{"access_token":"T","expires_in":1800,"scope":"pisp"}`)
}

func TestAuthorizeParsesToken(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{tokenResponse()}}
	client := newTestClient(t, executor)

	authorization, err := client.Authorize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authorization.HeaderValue() != "Bearer T" {
		t.Fatalf("unexpected header value %q", authorization.HeaderValue())
	}
	if want := fixedNow.Add(1800 * time.Second); !authorization.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, authorization.ExpiresAt)
	}

	req := executor.requests[0]
	if req.Method != "POST" || req.URL != "https://auth.partner.example/oauth/token" {
		t.Fatalf("unexpected token request %s %s", req.Method, req.URL)
	}
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-id:client-secret"))
	if req.Headers["Authorization"] != wantAuth {
		t.Fatalf("unexpected authorization header %q", req.Headers["Authorization"])
	}
	if string(req.Body) != "grant_type=client_credentials" {
		t.Fatalf("unexpected form body %q", req.Body)
	}
}

func TestAuthorizeReusesCachedToken(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{tokenResponse()}}
	client := newTestClient(t, executor)

	if _, err := client.Authorize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.Authorize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(executor.requests) != 1 {
		t.Fatalf("expected a single token request, got %d", len(executor.requests))
	}
}

func TestAuthorizeRefreshesOnInjectedClock(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{tokenResponse(), tokenResponse()}}
	now := fixedNow
	client, err := New(testConfig(t),
		WithExecutor(executor),
		WithNow(func() time.Time { return now }),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.Authorize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(executor.requests) != 1 {
		t.Fatalf("expected one token request, got %d", len(executor.requests))
	}

	now = fixedNow.Add(30 * time.Minute)
	if _, err := client.Authorize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(executor.requests) != 2 {
		t.Fatalf("expected refresh after expiry on the injected clock, got %d requests", len(executor.requests))
	}
}

func TestAuthorizeHonorsJWTAuthTime(t *testing.T) {
	authTime := fixedNow.Add(-10 * time.Minute)
	body := `{"access_token":"T","expires_in":1800,"jwt.user.body":"{\"auth_time\":` +
		strconv.FormatInt(authTime.Unix(), 10) + `}"}`
	executor := &fakeExecutor{responses: []core.StringResponse{
		core.NewStringResponse(200, "OK", nil, body),
	}}
	client := newTestClient(t, executor)

	authorization, err := client.Authorize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := authTime.Add(1800 * time.Second); !authorization.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, authorization.ExpiresAt)
	}
}

func TestAuthorizeClassifiesOAuthError(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		core.NewStringResponse(401, "Unauthorized", nil,
			`{"error":"invalid_client","error_description":"client authentication failed"}`),
	}}
	client := newTestClient(t, executor)

	_, err := client.Authorize(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsAuthorizationError(err) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestAuthorizeClassifiesUnparsableErrorBody(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		core.NewStringResponse(500, "Internal Server Error", nil, "<html>gateway timeout</html>"),
	}}
	client := newTestClient(t, executor)

	_, err := client.Authorize(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsPartnerUnknownError(err) {
		t.Fatalf("expected partner unknown error, got %v", err)
	}
}

func TestAuthorizeRejectsTokenWithoutAccessToken(t *testing.T) {
	executor := &fakeExecutor{responses: []core.StringResponse{
		core.NewStringResponse(200, "OK", nil, `{"scope":"pisp"}`),
	}}
	client := newTestClient(t, executor)

	_, err := client.Authorize(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !core.IsCommunicationError(err) {
		t.Fatalf("expected communication error, got %v", err)
	}
}
