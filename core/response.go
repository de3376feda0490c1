package core

import "strings"

// StringResponse is an immutable snapshot of a completed HTTP exchange.
// Header lookups are case-insensitive.
type StringResponse struct {
	StatusCode    int
	StatusMessage string
	Body          string

	headers map[string]string
}

func NewStringResponse(statusCode int, statusMessage string, headers map[string]string, body string) StringResponse {
	normalized := make(map[string]string, len(headers))
	for name, value := range headers {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		normalized[key] = value
	}
	return StringResponse{
		StatusCode:    statusCode,
		StatusMessage: statusMessage,
		Body:          body,
		headers:       normalized,
	}
}

// Header returns the value for the given header name, or "" when absent.
func (r StringResponse) Header(name string) string {
	if len(r.headers) == 0 {
		return ""
	}
	return r.headers[strings.ToLower(strings.TrimSpace(name))]
}

// HasHeader reports whether the response carried the given header.
func (r StringResponse) HasHeader(name string) bool {
	if len(r.headers) == 0 {
		return false
	}
	_, ok := r.headers[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Headers returns a copy of the normalized header map.
func (r StringResponse) Headers() map[string]string {
	out := make(map[string]string, len(r.headers))
	for name, value := range r.headers {
		out[name] = value
	}
	return out
}
