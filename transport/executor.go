// Package transport executes prepared HTTP requests against the partner with
// bounded retries. Retries only cover transport failures: once a response has
// been received, whatever its status, the attempt loop ends.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-pisp/core"
)

const defaultResponseBodyLimit int64 = 10 << 20 // 10 MiB

// Executor retries a request up to Retries times against the wrapped client.
// A fresh *http.Request is built per attempt so the body reader is never
// replayed.
type Executor struct {
	client  core.HTTPDoer
	retries int
	limit   int64
	logger  core.Logger
}

func NewExecutor(client core.HTTPDoer, retries int, logger core.Logger) *Executor {
	if retries <= 0 {
		retries = core.DefaultRetries
	}
	return &Executor{
		client:  client,
		retries: retries,
		limit:   defaultResponseBodyLimit,
		logger:  glog.Ensure(logger),
	}
}

func (e *Executor) Execute(ctx context.Context, req core.TransportRequest) (core.StringResponse, error) {
	if e == nil || e.client == nil {
		return core.StringResponse{}, core.PluginError("transport: executor requires an http client")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.TrimSpace(strings.ToUpper(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	parsedURL, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil || parsedURL.String() == "" {
		return core.StringResponse{}, core.PluginError("transport: request url is required")
	}
	target := parsedURL.String()

	var lastErr error
	for attempt := 1; attempt <= e.retries; attempt++ {
		e.logger.Info("partner request attempt",
			"method", method,
			"url", target,
			"attempt", attempt,
			"headers", core.RedactHeaders(req.Headers),
		)

		res, err := e.attempt(ctx, method, target, req)
		if err != nil {
			lastErr = err
			e.logger.Error("partner request attempt failed",
				"method", method,
				"url", target,
				"attempt", attempt,
				"error", err,
			)
			continue
		}

		e.logger.Info("partner response received",
			"method", method,
			"url", target,
			"attempt", attempt,
			"status_code", res.StatusCode,
		)
		return res, nil
	}

	return core.StringResponse{}, core.WrapCommunicationError(lastErr,
		"transport: request to partner failed after "+strconv.Itoa(e.retries)+" attempts")
}

func (e *Executor) attempt(ctx context.Context, method string, target string, req core.TransportRequest) (core.StringResponse, error) {
	attemptCtx := ctx
	cancel := func() {}
	if req.Timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, req.Timeout)
	}
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, target, bytes.NewReader(req.Body))
	if err != nil {
		return core.StringResponse{}, err
	}
	for name, value := range req.Headers {
		if strings.TrimSpace(name) == "" {
			continue
		}
		httpReq.Header.Set(name, value)
	}

	httpRes, err := e.client.Do(httpReq)
	if err != nil {
		return core.StringResponse{}, err
	}
	defer httpRes.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpRes.Body, e.limit))
	if err != nil {
		return core.StringResponse{}, err
	}

	return core.NewStringResponse(
		httpRes.StatusCode,
		statusMessage(httpRes),
		flattenHeaders(httpRes.Header),
		string(body),
	), nil
}

func statusMessage(res *http.Response) string {
	_, message, found := strings.Cut(res.Status, " ")
	if !found {
		return res.Status
	}
	return message
}

func flattenHeaders(headers http.Header) map[string]string {
	if len(headers) == 0 {
		return map[string]string{}
	}
	flat := make(map[string]string, len(headers))
	for name, values := range headers {
		if len(values) == 0 {
			flat[name] = ""
			continue
		}
		flat[name] = strings.Join(values, ",")
	}
	return flat
}

var _ core.RequestExecutor = (*Executor)(nil)
