// Package signature produces the Digest and Signature headers the partner
// verifies on inbound requests.
package signature

import (
	"crypto/sha256"
	"encoding/base64"
	"regexp"
	"strings"
)

var lineBreakRun = regexp.MustCompile(`[\n\r]+ *`)

// CanonicalizeBody normalizes a JSON body before hashing so that formatting
// differences between serializers do not change the digest: line breaks and
// their trailing indentation are removed, and the separators after ':' and
// ',' are collapsed.
func CanonicalizeBody(body string) string {
	out := lineBreakRun.ReplaceAllString(body, "")
	out = strings.ReplaceAll(out, ": ", ":")
	out = strings.ReplaceAll(out, ", ", ",")
	return out
}

// Digest computes the Digest header value for a JSON body:
// "SHA-256=" followed by the base64 SHA-256 of the canonicalized body.
func Digest(body string) string {
	sum := sha256.Sum256([]byte(CanonicalizeBody(body)))
	return "SHA-256=" + base64.StdEncoding.EncodeToString(sum[:])
}
