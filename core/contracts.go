package core

import (
	"context"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// HTTPDoer is the minimal surface the transport needs from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportRequest is a fully prepared outgoing request: the transport adds
// nothing to it beyond execution, so the signed material stays untouched.
type TransportRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
}

// RequestExecutor executes a prepared request and returns the completed
// exchange as an immutable snapshot. Implementations own retry semantics.
type RequestExecutor interface {
	Execute(ctx context.Context, req TransportRequest) (StringResponse, error)
}

// RequestSigner produces the Signature header value covering the given header
// subset, in the order provided.
type RequestSigner interface {
	Sign(method string, path string, headers map[string]string, signedHeaders []string) (string, error)
}
