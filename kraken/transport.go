package kraken

import "net/http"

// DefaultUserAgent is sent when no other agent is configured.
const DefaultUserAgent = "krakenrest/1.0"

// userAgentTransport wraps an existing RoundTripper and sets a custom
// User-Agent header on all outgoing requests.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.agent != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.agent)
	}
	if t.base != nil {
		return t.base.RoundTrip(req)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// NewHTTPClient returns an http.Client that stamps agent on every request.
// A zero timeout leaves the transport defaults in charge.
func NewHTTPClient(agent string, base http.RoundTripper) *http.Client {
	if agent == "" {
		agent = DefaultUserAgent
	}
	return &http.Client{Transport: userAgentTransport{agent: agent, base: base}}
}
