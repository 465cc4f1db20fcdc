package kraken

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Visibility selects the public or private half of the API.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

const (
	HeaderAPIKey  = "API-Key"
	HeaderAPISign = "API-Sign"

	DefaultScheme  = "https"
	DefaultHost    = "api.kraken.com"
	DefaultVersion = "0"
)

// Credentials identify an account. Secret is the base64 encoded private key
// as issued by the exchange. The value is read-only once handed to a client.
type Credentials struct {
	Key    string
	Secret string
}

// RequestSpec is a fully assembled request. It is built per call and never
// reused.
type RequestSpec struct {
	Method     string
	Visibility Visibility
	HTTPMethod string
	Path       string
	URL        string
	Header     http.Header
	Body       string
	// Params are the parameters as sent, including the nonce for private
	// calls.
	Params Params
}

// HTTPRequest converts the spec into an *http.Request bound to ctx.
func (s *RequestSpec) HTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if s.Body != "" {
		body = strings.NewReader(s.Body)
	}

	req, err := http.NewRequestWithContext(ctx, s.HTTPMethod, s.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range s.Header {
		req.Header[k] = append([]string(nil), v...)
	}
	return req, nil
}

// Builder assembles public and private requests. A Builder holds no per-call
// state besides the nonce generator, which is safe for concurrent use.
type Builder struct {
	Scheme      string
	Host        string
	Version     string
	Credentials Credentials
	Nonces      *NonceGenerator
	// ParamHeaders copies every private parameter into a request header of
	// the same name in addition to the body. Parameters whose name or value
	// net/http would refuse as a header are left in the body only.
	ParamHeaders bool
}

// NewBuilder returns a Builder for the production host with parameter
// headers enabled.
func NewBuilder(creds Credentials) *Builder {
	return &Builder{
		Scheme:       DefaultScheme,
		Host:         DefaultHost,
		Version:      DefaultVersion,
		Credentials:  creds,
		Nonces:       NewNonceGenerator(),
		ParamHeaders: true,
	}
}

// Path returns "/{version}/{visibility}/{method}".
func (b *Builder) Path(method string, vis Visibility) string {
	return "/" + b.Version + "/" + string(vis) + "/" + method
}

func (b *Builder) endpoint(method string, vis Visibility) (string, *url.URL, error) {
	if strings.TrimSpace(method) == "" {
		return "", nil, &ConfigurationError{Reason: "method name is empty"}
	}
	if strings.ContainsAny(method, "/?#") {
		return "", nil, &ConfigurationError{Reason: fmt.Sprintf("method name %q is not a single path segment", method)}
	}
	if b.Host == "" {
		return "", nil, &ConfigurationError{Reason: "host is empty"}
	}
	scheme := b.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	path := b.Path(method, vis)
	u := &url.URL{Scheme: scheme, Host: b.Host, Path: path}
	if _, err := url.Parse(u.String()); err != nil {
		return "", nil, &ConfigurationError{Reason: "malformed url", Err: err}
	}
	return path, u, nil
}

// Public builds an unsigned GET request with params in the query string.
func (b *Builder) Public(method string, params Params) (*RequestSpec, error) {
	path, u, err := b.endpoint(method, Public)
	if err != nil {
		return nil, err
	}
	sent := params.Clone()
	u.RawQuery = EncodeParams(sent)

	return &RequestSpec{
		Method:     method,
		Visibility: Public,
		HTTPMethod: http.MethodGet,
		Path:       path,
		URL:        u.String(),
		Header:     http.Header{},
		Params:     sent,
	}, nil
}

// Private builds a signed POST request. A fresh nonce is injected into a copy
// of params, the copy is encoded once, and that same string is both signed
// and used as the body.
func (b *Builder) Private(method string, params Params) (*RequestSpec, error) {
	path, u, err := b.endpoint(method, Private)
	if err != nil {
		return nil, err
	}
	if b.Nonces == nil {
		return nil, &ConfigurationError{Reason: "builder has no nonce generator"}
	}

	nonce := b.Nonces.Next()
	sent := params.With(NonceKey, nonce)
	encoded := EncodeParams(sent)

	signature, err := Sign(path, encoded, nonce, b.Credentials.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s: %w", method, err)
	}

	header := http.Header{}
	if b.ParamHeaders {
		for k, v := range sent {
			// keys such as close[price] are not valid header names
			if httpguts.ValidHeaderFieldName(k) && httpguts.ValidHeaderFieldValue(v) {
				header.Set(k, v)
			}
		}
	}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	header.Set(HeaderAPIKey, b.Credentials.Key)
	header.Set(HeaderAPISign, signature)

	return &RequestSpec{
		Method:     method,
		Visibility: Private,
		HTTPMethod: http.MethodPost,
		Path:       path,
		URL:        u.String(),
		Header:     header,
		Body:       encoded,
		Params:     sent,
	}, nil
}

// Build dispatches to Public or Private.
func (b *Builder) Build(method string, params Params, vis Visibility) (*RequestSpec, error) {
	switch vis {
	case Public:
		return b.Public(method, params)
	case Private:
		return b.Private(method, params)
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown visibility %q", vis)}
	}
}

// RequireParams refuses a parameter set that lacks any of keys. Every
// missing key is listed in the returned error.
func RequireParams(params Params, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if v, ok := params[k]; !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &ConfigurationError{
			Reason:  "required options not given",
			Missing: missing,
			Err:     ErrMissingRequiredParams,
		}
	}
	return nil
}
