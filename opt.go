package client

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	// Packages
	otelhttp "go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ClientOpt is a client option which can be passed to New
type ClientOpt func(*Client) error

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// OptEndpoint sets the endpoint for all client requests. The endpoint
// must carry an http or https scheme and must not end in a path
// separator; either violation is a programmer error.
func OptEndpoint(v string) ClientOpt {
	return func(c *Client) error {
		u, err := parseEndpoint(v)
		if err != nil {
			return err
		}
		c.endpoint = u
		return nil
	}
}

// OptHeader sets a client-global header sent with every request. Global
// headers override same-named per-call and derived headers.
func OptHeader(key, value string) ClientOpt {
	return func(c *Client) error {
		c.header.Set(key, value)
		return nil
	}
}

// OptQueryParam sets a client-global query parameter sent with every
// request. A per-call query parameter of the same name takes precedence.
func OptQueryParam(key, value string) ClientOpt {
	return func(c *Client) error {
		c.query.Set(key, value)
		return nil
	}
}

// OptReqToken sets the credential sent in the authorization header of
// every request. The header is only added when the token value is
// non-empty.
func OptReqToken(token Token) ClientOpt {
	return func(c *Client) error {
		c.token = token
		return nil
	}
}

// OptUserAgent sets the user agent string
func OptUserAgent(v string) ClientOpt {
	return func(c *Client) error {
		c.ua = strings.TrimSpace(v)
		return nil
	}
}

// OptTimeout sets the timeout on any single request. By default a timeout
// of 30 seconds is used.
func OptTimeout(v time.Duration) ClientOpt {
	return func(c *Client) error {
		c.Client.Timeout = v
		return nil
	}
}

// OptHTTPClient sets a pre-built transport handle. The handle is still
// wrapped in the retry decorator, and must be safe for concurrent use
// across in-flight calls.
func OptHTTPClient(v *http.Client) ClientOpt {
	return func(c *Client) error {
		if v == nil {
			return ErrBadParameter.With("OptHTTPClient")
		}
		c.Client = v
		return nil
	}
}

// OptRetry tunes the automatic retry decorator: the maximum number of
// attempts per request, and the initial backoff interval between attempts.
func OptRetry(tries uint, delay time.Duration) ClientOpt {
	return func(c *Client) error {
		if tries == 0 {
			return ErrBadParameter.With("OptRetry")
		}
		c.tries = tries
		c.delay = delay
		return nil
	}
}

// OptTrace mirrors the request and response to the given writer. When
// verbose is set, the request and response bodies are also mirrored.
func OptTrace(w io.Writer, verbose bool) ClientOpt {
	return func(c *Client) error {
		if w == nil {
			return ErrBadParameter.With("OptTrace")
		}
		c.Client.Transport = newTraceTransport(c.Client.Transport, w, verbose)
		return nil
	}
}

// OptTelemetry instruments the transport with opentelemetry spans for
// each outgoing request.
func OptTelemetry(provider trace.TracerProvider) ClientOpt {
	return func(c *Client) error {
		parent := c.Client.Transport
		if parent == nil {
			parent = http.DefaultTransport
		}
		c.Client.Transport = otelhttp.NewTransport(parent, otelhttp.WithTracerProvider(provider))
		return nil
	}
}

// OptOnRequest sets the hook which runs after request construction and
// before the request is handed to the transport.
func OptOnRequest(fn RequestHook) ClientOpt {
	return func(c *Client) error {
		c.onRequest = fn
		return nil
	}
}

// OptOnResponse sets the hook which runs on a fully materialized response,
// before status code classification.
func OptOnResponse(fn ResponseHook) ClientOpt {
	return func(c *Client) error {
		c.onResponse = fn
		return nil
	}
}

// OptOnStreamedResponse sets the hook which runs on a streamed response,
// before status code classification, while the body is still lazily
// consumable.
func OptOnStreamedResponse(fn ResponseHook) ClientOpt {
	return func(c *Client) error {
		c.onStream = fn
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// parseEndpoint checks the endpoint preconditions: an http or https scheme
// and no trailing path separator
func parseEndpoint(v string) (*url.URL, error) {
	u, err := url.Parse(v)
	if err != nil {
		return nil, ErrBadParameter.With("endpoint: ", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrBadParameter.Withf("endpoint: unsupported scheme %q", u.Scheme)
	}
	if strings.HasSuffix(u.Path, "/") {
		return nil, ErrBadParameter.Withf("endpoint: trailing path separator %q", v)
	}
	return u, nil
}
