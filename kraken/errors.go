package kraken

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingRequiredParams is wrapped by ConfigurationError when a request is
// refused because mandatory parameters were not supplied.
var ErrMissingRequiredParams = errors.New("missing required parameters")

// NetworkError covers transport failures and bodies that could not be parsed.
type NetworkError struct {
	Reason string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("kraken network error: %s", e.Reason)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a business-logic rejection reported by the exchange in the
// "error" array of an otherwise well-formed response. Reason holds the first
// entry, Errors the full list as received.
type APIError struct {
	Reason string
	Errors []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kraken api error: %s", e.Reason)
}

// EncodingError reports that the secret, path or payload could not be turned
// into the bytes needed for signing.
type EncodingError struct {
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("kraken encoding error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("kraken encoding error: %s", e.Reason)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned before anything is sent: missing order
// fields, unusable host or method names.
type ConfigurationError struct {
	Reason  string
	Missing []string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("kraken configuration error: %s (missing: %s)", e.Reason, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("kraken configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err carries an exchange-reported rejection.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNetworkError reports whether err is a transport or parsing failure.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
