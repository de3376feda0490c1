package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/goliatone/go-pisp/core"
)

const (
	signatureAlgorithm  = "rsa-sha256"
	requestTargetHeader = "(request-target)"
)

// Signer signs requests with the scheme the partner verifies: an RSA-SHA256
// signature over "(request-target)" plus a declared header subset, rendered
// as a keyId/algorithm/headers/signature parameter list.
type Signer struct {
	keyID      string
	privateKey *rsa.PrivateKey
}

func NewSigner(keyID string, privateKey *rsa.PrivateKey) (*Signer, error) {
	keyID = strings.TrimSpace(keyID)
	if keyID == "" {
		return nil, core.InvalidConfigurationError("signature: key id is required")
	}
	if privateKey == nil {
		return nil, core.InvalidConfigurationError("signature: private key is required")
	}
	return &Signer{keyID: keyID, privateKey: privateKey}, nil
}

// Sign builds the Signature header value covering the given header names in
// order. Every named header must be present in the header map; the caller
// sets the headers before signing so the signed bytes match the wire bytes.
func (s *Signer) Sign(method string, path string, headers map[string]string, signedHeaders []string) (string, error) {
	signingString, headerList, err := s.signingString(method, path, headers, signedHeaders)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256([]byte(signingString))
	signed, err := rsa.SignPKCS1v15(rand.Reader, s.privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return "", core.WrapPluginError(err, "signature: signing failed")
	}
	encoded := base64.StdEncoding.EncodeToString(signed)
	return `keyId="` + s.keyID +
		`",algorithm="` + signatureAlgorithm +
		`",headers="` + headerList +
		`",signature="` + encoded + `"`, nil
}

func (s *Signer) signingString(method string, path string, headers map[string]string, signedHeaders []string) (string, string, error) {
	lookup := make(map[string]string, len(headers))
	for name, value := range headers {
		lookup[strings.ToLower(strings.TrimSpace(name))] = value
	}

	lines := make([]string, 0, len(signedHeaders)+1)
	names := make([]string, 0, len(signedHeaders)+1)

	lines = append(lines, requestTargetHeader+": "+strings.ToLower(method)+" "+path)
	names = append(names, requestTargetHeader)

	for _, header := range signedHeaders {
		name := strings.ToLower(strings.TrimSpace(header))
		value, ok := lookup[name]
		if !ok {
			return "", "", core.PluginError("signature: signed header " + name + " is not set on the request")
		}
		lines = append(lines, name+": "+value)
		names = append(names, name)
	}
	return strings.Join(lines, "\n"), strings.Join(names, " "), nil
}
