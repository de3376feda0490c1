// Package pisp is a payment initiation connector for a partner implementing
// the STET-style PSD2 API: OAuth2 client-credentials authorization over
// mutual TLS, signed payment requests, and normalized transaction outcomes.
package pisp

import (
	"context"

	"github.com/goliatone/go-pisp/client"
	"github.com/goliatone/go-pisp/core"
)

// Config is the connector configuration.
type Config = core.Config

// Option configures the client built by New.
type Option = client.Option

// New builds a connector client from the partner-supplied configuration.
func New(cfg Config, options ...Option) (*client.Client, error) {
	return client.New(cfg, options...)
}

// DefaultConfig returns the configuration defaults the partner documents.
func DefaultConfig() Config {
	return core.DefaultConfig()
}

// NewFromProvider loads the configuration through the given provider on top
// of the defaults, then builds the client. A nil provider yields the defaults
// alone, which fail validation until the partner material is supplied.
func NewFromProvider(ctx context.Context, provider core.ConfigProvider, options ...Option) (*client.Client, error) {
	if provider == nil {
		provider = core.NewCfgxConfigProvider(nil)
	}
	cfg, err := provider.Load(ctx, core.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return client.New(cfg, options...)
}

// NewFromRaw builds the client from untyped key/value settings, the shape
// host platforms hand over from their settings store.
func NewFromRaw(ctx context.Context, values map[string]any, options ...Option) (*client.Client, error) {
	provider := core.NewCfgxConfigProvider(core.NewStaticRawConfigLoader(values))
	return NewFromProvider(ctx, provider, options...)
}
