package kraken

import (
	"context"
	"net/http"
	"time"

	"krakenrest/logger"
)

// Options tune a Client. Zero values select the production defaults.
type Options struct {
	Scheme    string
	Host      string
	Version   string
	UserAgent string
	// Timeout bounds each HTTP exchange; zero keeps the transport default.
	Timeout time.Duration
	// DisableParamHeaders stops private parameters from also being sent as
	// individual headers.
	DisableParamHeaders bool
	// HTTPClient replaces the client built from UserAgent and Timeout.
	HTTPClient *http.Client
	Logger     *logger.Log
}

// Client exposes one operation per exchange endpoint. Each operation builds
// its request synchronously and completes through a Callback on another
// goroutine. A Client may be shared between goroutines; independent Clients
// do not share any state.
type Client struct {
	builder    *Builder
	dispatcher *Dispatcher
	log        *logger.Log
}

// NewClient builds a client for creds. Credentials are only needed for
// private endpoints.
func NewClient(creds Credentials, opts Options) *Client {
	b := NewBuilder(creds)
	if opts.Scheme != "" {
		b.Scheme = opts.Scheme
	}
	if opts.Host != "" {
		b.Host = opts.Host
	}
	if opts.Version != "" {
		b.Version = opts.Version
	}
	b.ParamHeaders = !opts.DisableParamHeaders

	log := opts.Logger
	if log == nil {
		log = logger.GetLogger()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(opts.UserAgent, nil)
		httpClient.Timeout = opts.Timeout
	}

	return &Client{
		builder:    b,
		dispatcher: NewDispatcher(httpClient, log),
		log:        log,
	}
}

// Builder exposes the request builder, mainly for callers that want to
// inspect or send requests themselves.
func (c *Client) Builder() *Builder {
	return c.builder
}

// Call builds and dispatches an arbitrary endpoint. Build failures are
// delivered through cb like any other failure.
func (c *Client) Call(ctx context.Context, method string, params Params, vis Visibility, cb Callback) {
	spec, err := c.builder.Build(method, params, vis)
	if err != nil {
		c.log.WithComponent("kraken_client").WithFields(logger.Fields{
			"method":     method,
			"visibility": string(vis),
		}).WithError(err).Warn("failed to build request")
		go deliver(cb, Failure[Response](err))
		return
	}
	c.dispatcher.Dispatch(ctx, spec, cb)
}

// CallSync is Call for callers that prefer to block.
func (c *Client) CallSync(ctx context.Context, method string, params Params, vis Visibility) Result[Response] {
	done := make(chan Result[Response], 1)
	c.Call(ctx, method, params, vis, func(r Result[Response]) { done <- r })
	return <-done
}

func deliver(cb Callback, r Result[Response]) {
	if cb != nil {
		cb(r)
	}
}
