// Package client orchestrates the partner exchanges: token acquisition,
// payment initiation, status retrieval, and the bank directory.
package client

import (
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-pisp/auth"
	"github.com/goliatone/go-pisp/core"
	"github.com/goliatone/go-pisp/identity"
	"github.com/goliatone/go-pisp/signature"
	"github.com/goliatone/go-pisp/transport"
)

// Client is a partner connector bound to one set of credentials. It is safe
// for concurrent use.
type Client struct {
	config   core.Config
	identity *identity.Holder
	signer   core.RequestSigner
	executor core.RequestExecutor
	tokens   *auth.TokenCache
	logger   core.Logger

	refreshMu sync.Mutex
	now       func() time.Time
}

type Option func(*Client)

// WithHTTPClient replaces the mutual-TLS HTTP client the default executor is
// built on. Ignored when WithExecutor is also given.
func WithHTTPClient(doer core.HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.executor = transport.NewExecutor(doer, c.config.HTTP.Retries, c.logger)
		}
	}
}

func WithExecutor(executor core.RequestExecutor) Option {
	return func(c *Client) {
		if executor != nil {
			c.executor = executor
		}
	}
}

func WithSigner(signer core.RequestSigner) Option {
	return func(c *Client) {
		if signer != nil {
			c.signer = signer
		}
	}
}

func WithLogger(logger core.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNow overrides the clock, used by tests to pin token expiry.
func WithNow(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New validates the configuration, parses the PEM identity, and assembles the
// default signing and transport stack. Options may swap any of the parts.
func New(cfg core.Config, options ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, core.WrapInvalidConfigurationError(err, "client: invalid configuration")
	}

	holder, err := identity.NewHolder(cfg.ClientCertificate, cfg.ClientPrivateKey)
	if err != nil {
		return nil, err
	}
	signer, err := signature.NewSigner(cfg.SignatureKeyID, holder.PrivateKey())
	if err != nil {
		return nil, err
	}

	client := &Client{
		config:   cfg,
		identity: holder,
		signer:   signer,
		logger:   glog.Nop(),
		now:      time.Now,
	}
	for _, option := range options {
		option(client)
	}
	client.tokens = auth.NewTokenCache(cfg.TokenRenewMarginDuration(), client.now)
	if client.executor == nil {
		client.executor = transport.NewExecutor(mtlsHTTPClient(cfg, holder), cfg.HTTP.Retries, client.logger)
	}
	return client, nil
}

func mtlsHTTPClient(cfg core.Config, holder *identity.Holder) *http.Client {
	dialer := &net.Dialer{Timeout: cfg.HTTP.ConnectTimeoutDuration()}
	return &http.Client{
		Transport: &http.Transport{
			DialContext: dialer.DialContext,
			TLSClientConfig: &tls.Config{
				Certificates: []tls.Certificate{holder.TLSCertificate()},
				MinVersion:   tls.VersionTLS12,
			},
			ResponseHeaderTimeout: cfg.HTTP.SocketTimeoutDuration(),
		},
	}
}

// Identity exposes the parsed PEM identity of this client.
func (c *Client) Identity() *identity.Holder {
	return c.identity
}

func (c *Client) paymentURL(path string) string {
	return strings.TrimRight(c.config.PaymentBaseURL, "/") + path
}

func (c *Client) authURL(path string) string {
	return strings.TrimRight(c.config.AuthBaseURL, "/") + path
}
