// Package identity parses the partner-issued PEM material into the key pair
// used for mutual TLS and HTTP message signing.
package identity

import (
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-pisp/core"
)

// Holder owns the parsed certificate chain and RSA private key. It is
// immutable after construction and safe for concurrent use.
type Holder struct {
	chain      []*x509.Certificate
	rawChain   [][]byte
	privateKey *rsa.PrivateKey
	passphrase string
}

// NewHolder parses a PEM certificate chain and a PKCS#8 RSA private key.
// Malformed or non-RSA material is a configuration error.
func NewHolder(pemChain string, pemPrivateKey string) (*Holder, error) {
	chain, rawChain, err := parseChain(pemChain)
	if err != nil {
		return nil, err
	}
	key, err := parsePrivateKey(pemPrivateKey)
	if err != nil {
		return nil, err
	}
	return &Holder{
		chain:      chain,
		rawChain:   rawChain,
		privateKey: key,
		passphrase: uuid.NewString(),
	}, nil
}

func parseChain(pemChain string) ([]*x509.Certificate, [][]byte, error) {
	rest := []byte(strings.TrimSpace(pemChain))
	if len(rest) == 0 {
		return nil, nil, core.InvalidConfigurationError("identity: client certificate is empty")
	}
	var chain []*x509.Certificate
	var raw [][]byte
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, nil, core.WrapInvalidConfigurationError(err, "identity: client certificate is not parsable")
		}
		chain = append(chain, cert)
		raw = append(raw, block.Bytes)
	}
	if len(chain) == 0 {
		return nil, nil, core.InvalidConfigurationError("identity: client certificate contains no certificate block")
	}
	return chain, raw, nil
}

func parsePrivateKey(pemPrivateKey string) (*rsa.PrivateKey, error) {
	trimmed := strings.TrimSpace(pemPrivateKey)
	if trimmed == "" {
		return nil, core.InvalidConfigurationError("identity: client private key is empty")
	}
	block, _ := pem.Decode([]byte(trimmed))
	if block == nil {
		return nil, core.InvalidConfigurationError("identity: client private key is not PEM encoded")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, core.WrapInvalidConfigurationError(err, "identity: client private key is not parsable")
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, core.InvalidConfigurationError("identity: client private key is not an RSA key")
	}
	return key, nil
}

// Leaf returns the first certificate of the chain.
func (h *Holder) Leaf() *x509.Certificate {
	return h.chain[0]
}

// Chain returns the parsed certificate chain in PEM order.
func (h *Holder) Chain() []*x509.Certificate {
	out := make([]*x509.Certificate, len(h.chain))
	copy(out, h.chain)
	return out
}

// PrivateKey returns the RSA signing key.
func (h *Holder) PrivateKey() *rsa.PrivateKey {
	return h.privateKey
}

// TLSCertificate assembles the client certificate presented during the mutual
// TLS handshake.
func (h *Holder) TLSCertificate() tls.Certificate {
	raw := make([][]byte, len(h.rawChain))
	copy(raw, h.rawChain)
	return tls.Certificate{
		Certificate: raw,
		PrivateKey:  h.privateKey,
		Leaf:        h.chain[0],
	}
}

// KeystorePassphrase returns the process-local passphrase generated at
// construction. It never leaves the process and must not be logged.
func (h *Holder) KeystorePassphrase() string {
	return h.passphrase
}
