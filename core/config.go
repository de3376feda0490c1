package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultConnectTimeoutSec = 10
	DefaultRequestTimeoutSec = 30
	DefaultSocketTimeoutSec  = 30
	DefaultRetries           = 3
	DefaultTokenRenewMargin  = 60
)

// HTTPConfig bounds every network call the client performs. All durations are
// expressed in seconds, matching the partner onboarding sheet.
type HTTPConfig struct {
	ConnectTimeout int `koanf:"connect_timeout" mapstructure:"connect_timeout"`
	RequestTimeout int `koanf:"request_timeout" mapstructure:"request_timeout"`
	SocketTimeout  int `koanf:"socket_timeout" mapstructure:"socket_timeout"`
	Retries        int `koanf:"retries" mapstructure:"retries"`
}

// Config carries the partner-supplied material the connector needs: endpoint
// base URLs, OAuth client credentials, the signature key id, and the PEM
// identity used for mutual TLS and message signing.
type Config struct {
	AuthBaseURL       string     `koanf:"auth_base_url" mapstructure:"auth_base_url"`
	PaymentBaseURL    string     `koanf:"payment_base_url" mapstructure:"payment_base_url"`
	ClientID          string     `koanf:"client_id" mapstructure:"client_id"`
	ClientSecret      string     `koanf:"client_secret" mapstructure:"client_secret"`
	SignatureKeyID    string     `koanf:"signature_key_id" mapstructure:"signature_key_id"`
	ClientCertificate string     `koanf:"client_certificate" mapstructure:"client_certificate"`
	ClientPrivateKey  string     `koanf:"client_private_key" mapstructure:"client_private_key"`
	TokenRenewMargin  int        `koanf:"token_renew_margin" mapstructure:"token_renew_margin"`
	HTTP              HTTPConfig `koanf:"http" mapstructure:"http"`
}

func DefaultConfig() Config {
	return Config{
		TokenRenewMargin: DefaultTokenRenewMargin,
		HTTP: HTTPConfig{
			ConnectTimeout: DefaultConnectTimeoutSec,
			RequestTimeout: DefaultRequestTimeoutSec,
			SocketTimeout:  DefaultSocketTimeoutSec,
			Retries:        DefaultRetries,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.AuthBaseURL) == "" {
		return fmt.Errorf("core: auth_base_url is required")
	}
	if strings.TrimSpace(c.PaymentBaseURL) == "" {
		return fmt.Errorf("core: payment_base_url is required")
	}
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("core: client_id is required")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		return fmt.Errorf("core: client_secret is required")
	}
	if strings.TrimSpace(c.SignatureKeyID) == "" {
		return fmt.Errorf("core: signature_key_id is required")
	}
	if strings.TrimSpace(c.ClientCertificate) == "" {
		return fmt.Errorf("core: client_certificate is required")
	}
	if strings.TrimSpace(c.ClientPrivateKey) == "" {
		return fmt.Errorf("core: client_private_key is required")
	}
	if c.TokenRenewMargin < 0 {
		return fmt.Errorf("core: token_renew_margin must not be negative")
	}
	if c.HTTP.ConnectTimeout <= 0 || c.HTTP.RequestTimeout <= 0 || c.HTTP.SocketTimeout <= 0 {
		return fmt.Errorf("core: http timeouts must be positive")
	}
	if c.HTTP.Retries <= 0 {
		return fmt.Errorf("core: http retries must be positive")
	}
	return nil
}

func (c HTTPConfig) ConnectTimeoutDuration() time.Duration {
	return time.Duration(c.ConnectTimeout) * time.Second
}

func (c HTTPConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c HTTPConfig) SocketTimeoutDuration() time.Duration {
	return time.Duration(c.SocketTimeout) * time.Second
}

func (c Config) TokenRenewMarginDuration() time.Duration {
	return time.Duration(c.TokenRenewMargin) * time.Second
}
