package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorInvalidConfiguration = "PISP_INVALID_CONFIGURATION"
	ErrorCommunication        = "PISP_COMMUNICATION_ERROR"
	ErrorAuthorization        = "PISP_AUTHORIZATION_ERROR"
	ErrorPartnerUnknown       = "PISP_PARTNER_UNKNOWN_ERROR"
	ErrorPlugin               = "PISP_PLUGIN_ERROR"
)

// InvalidConfigurationError reports missing or malformed setup. It is fatal:
// the caller must fix the configuration, no retry will help.
func InvalidConfigurationError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorInvalidConfiguration)
}

func WrapInvalidConfigurationError(source error, message string) *goerrors.Error {
	if source == nil {
		return InvalidConfigurationError(message)
	}
	return goerrors.Wrap(source, goerrors.CategoryBadInput, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorInvalidConfiguration)
}

// CommunicationError reports that no usable response was obtained: either the
// transport exhausted its retries, or a success body did not parse.
func CommunicationError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorCommunication)
}

func WrapCommunicationError(source error, message string) *goerrors.Error {
	if source == nil {
		return CommunicationError(message)
	}
	return goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorCommunication)
}

// AuthorizationError carries the machine error code from an RFC 6749 error
// body. The partner's error_description is logged, never embedded here.
func AuthorizationError(code string) *goerrors.Error {
	return goerrors.New("authorization error: "+strings.TrimSpace(code), goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ErrorAuthorization)
}

// PartnerUnknownError reports a partner 4xx/5xx whose business meaning the
// connector cannot act on beyond surfacing the message internally.
func PartnerUnknownError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryExternal).
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorPartnerUnknown)
}

// PluginError reports an internal invariant violation: a header missing from
// the signed set, an unusable signing key, unparsable redirection data.
func PluginError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorPlugin)
}

func WrapPluginError(source error, message string) *goerrors.Error {
	if source == nil {
		return PluginError(message)
	}
	return goerrors.Wrap(source, goerrors.CategoryInternal, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorPlugin)
}

// TextCode extracts the connector error code from any error, or "" when the
// error does not carry one.
func TextCode(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode
	}
	return ""
}

func HasTextCode(err error, textCode string) bool {
	return TextCode(err) == textCode
}

func IsInvalidConfiguration(err error) bool { return HasTextCode(err, ErrorInvalidConfiguration) }

func IsCommunicationError(err error) bool { return HasTextCode(err, ErrorCommunication) }

func IsAuthorizationError(err error) bool { return HasTextCode(err, ErrorAuthorization) }

func IsPartnerUnknownError(err error) bool { return HasTextCode(err, ErrorPartnerUnknown) }

func IsPluginError(err error) bool { return HasTextCode(err, ErrorPlugin) }
