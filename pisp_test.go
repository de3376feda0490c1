package pisp

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"
)

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

func TestNewFromRaw(t *testing.T) {
	certPEM, keyPEM := testPEMIdentity(t)

	connector, err := NewFromRaw(context.Background(), map[string]any{
		"auth_base_url":      "https://auth.partner.example",
		"payment_base_url":   "https://api.partner.example/hub-pisp/v1",
		"client_id":          "client-id",
		"client_secret":      "client-secret",
		"signature_key_id":   "https://partner.example/keys/1",
		"client_certificate": certPEM,
		"client_private_key": keyPEM,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if connector.Identity().Leaf().Subject.CommonName != "connector-test" {
		t.Fatal("expected identity parsed from loaded configuration")
	}
}

func TestNewFromProviderRejectsDefaults(t *testing.T) {
	if _, err := NewFromProvider(context.Background(), nil); err == nil {
		t.Fatal("expected validation error for bare defaults")
	}
}
