/*
client implements a generic HTTP client for JSON REST API's. It owns the
connection defaults (endpoint, global headers and query parameters, bearer
credential), wraps the transport in an automatic retry decorator, and exposes
two request primitives - buffered and streamed - which every derived API
method calls with its specific path, method and typed body.
*/
package client

import (
	"net/http"
	"net/url"
	"runtime"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a generic REST API client which can be used to make requests
// to a remote endpoint, and decode JSON responses into typed values.
type Client struct {
	*http.Client

	endpoint *url.URL
	ua       string
	header   http.Header
	query    url.Values
	token    Token
	tries    uint
	delay    time.Duration

	// Interception hooks, each an identity transform when nil
	onRequest  RequestHook
	onResponse ResponseHook
	onStream   ResponseHook
}

// RequestHook intercepts the fully constructed outgoing request before it
// is handed to the transport.
type RequestHook func(*http.Request) (*http.Request, error)

// ResponseHook intercepts a response before status code classification.
// For the buffered code path the response body has already been read into
// memory; for the streamed code path the body is still live.
type ResponseHook func(*http.Response) (*http.Response, error)

// Token is a credential which can be passed in the authorization header
// of a request. The token is only sent when the value is non-empty.
type Token struct {
	Scheme string `json:"scheme,omitempty"`
	Value  string `json:"token,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Bearer is the authorization scheme for bearer tokens
	Bearer = "Bearer"
)

const (
	defaultTimeout = 30 * time.Second
	defaultTries   = 3
	defaultDelay   = 500 * time.Millisecond
)

var (
	defaultUserAgent = "go-llmclient (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new client with the given options. The transport handle is
// wrapped in an automatic retry decorator so that transient transport
// failures are retried before ever reaching error classification.
func New(opts ...ClientOpt) (*Client, error) {
	c := &Client{
		Client: &http.Client{
			Timeout: defaultTimeout,
		},
		ua:     defaultUserAgent,
		header: make(http.Header),
		query:  make(url.Values),
		tries:  defaultTries,
		delay:  defaultDelay,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Wrap the transport in the retry decorator. Trace and telemetry
	// decorators, if requested, have already been layered by their options
	// and sit beneath the retry, so each attempt is traced.
	c.Client.Transport = newRetryTransport(c.Client.Transport, c.tries, c.delay)

	// Return success
	return c, nil
}

// Close releases the transport handle. Further calls through the client
// after close are undefined; it must not be called while requests are
// in flight.
func (c *Client) Close() error {
	c.Client.CloseIdleConnections()
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SetToken replaces the request credential. Clients with different
// credentials should be separate instances; the token is the only
// configuration field which may be reassigned after construction.
func (c *Client) SetToken(token Token) {
	c.token = token
}

// Endpoint returns the endpoint for the client, or an empty string if
// no endpoint has been set.
func (c *Client) Endpoint() string {
	if c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

func (t Token) String() string {
	return t.Scheme + " " + t.Value
}
