package core

import "strings"

const RedactedValue = "[REDACTED]"

// RedactHeaders returns a copy of the header map safe for logging. The
// Authorization value keeps its scheme so operators can tell Basic from
// Bearer; everything after the scheme is masked.
func RedactHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(headers))
	for name, value := range headers {
		if shouldRedactHeader(name) {
			out[name] = redactAuthorizationValue(value)
			continue
		}
		out[name] = value
	}
	return out
}

func shouldRedactHeader(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "authorization", "proxy-authorization", "signature":
		return true
	default:
		return false
	}
}

func redactAuthorizationValue(value string) string {
	scheme, _, found := strings.Cut(strings.TrimSpace(value), " ")
	if !found {
		return RedactedValue
	}
	return scheme + " " + RedactedValue
}
