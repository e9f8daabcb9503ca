package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Do makes a request with the given payload, and decodes the JSON response
// into out when out is not nil. When a stream callback request option is
// given the streamed primitive is used, otherwise the buffered one.
func (c *Client) Do(in Payload, out any, opts ...RequestOpt) error {
	return c.DoWithContext(context.Background(), in, out, opts...)
}

// DoWithContext makes a request with the given payload and context. A nil
// payload is treated as a GET request with no body. Any failure is raised
// as a ClientError: an encoding or transport/hook failure with no status
// code, or a non-2xx response with the status code and body attached.
func (c *Client) DoWithContext(ctx context.Context, in Payload, out any, opts ...RequestOpt) error {
	o := requestOpts{
		query:  make(url.Values),
		header: make(http.Header),
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return err
		}
	}
	if in == nil {
		in = NewRequest()
	}
	method := in.Method()

	// Resolve the effective endpoint: the client override takes precedence
	// over the per-call default
	endpoint := o.endpoint
	if c.endpoint != nil {
		endpoint = c.endpoint.String()
	}
	if endpoint == "" {
		return ErrBadParameter.With("missing endpoint")
	}

	// Merge per-call query parameters over client-global ones; per-call
	// values win on key collision
	query := make(url.Values, len(o.query)+len(c.query))
	for key, values := range o.query {
		query[key] = values
	}
	for key, values := range c.query {
		if _, exists := query[key]; !exists {
			query[key] = values
		}
	}

	uri := endpoint
	if path := strings.TrimPrefix(strings.Join(o.path, "/"), "/"); path != "" {
		uri = uri + "/" + path
	}
	if len(query) > 0 {
		uri = uri + "?" + query.Encode()
	}

	var body io.Reader
	data, err := io.ReadAll(in)
	if err != nil {
		return &ClientError{Message: errRequest, Method: method, Url: uri, Body: err}
	}
	if len(data) > 0 {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return &ClientError{Message: errRequest, Method: method, Url: uri, Body: err}
	}

	// Header order: per-call, authorization, content type, accept, then
	// client-global layered last so global configuration wins for headers.
	// This is asymmetric with the query merge above, where per-call wins.
	for key, values := range o.header {
		req.Header[key] = values
	}
	if c.token.Value != "" {
		req.Header.Set("Authorization", c.token.String())
	}
	if mimetype := in.Type(); mimetype != "" {
		req.Header.Set("Content-Type", mimetype)
	}
	if accept := in.Accept(); accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.ua != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.ua)
	}
	for key, values := range c.header {
		req.Header[http.CanonicalHeaderKey(key)] = values
	}

	httpclient := c.Client
	if o.noTimeout && httpclient.Timeout != 0 {
		clone := *c.Client
		clone.Timeout = 0
		httpclient = &clone
	}

	// Pre-send hook
	if c.onRequest != nil {
		req, err = c.onRequest(req)
		if err != nil {
			return &ClientError{Message: errResponse, Method: method, Url: uri, Body: err}
		}
	}

	// Submit through the retry-wrapped transport
	resp, err := httpclient.Do(req)
	if err != nil {
		return &ClientError{Message: errResponse, Method: method, Url: uri, Body: err}
	}
	defer resp.Body.Close()

	if o.jsonStream != nil || o.textStream != nil {
		return c.doStreamed(resp, out, &o, method, uri)
	}
	return c.doBuffered(resp, out, method, uri)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// doBuffered materializes the full response, runs the buffered response
// hook, classifies the status code and decodes the body into out.
func (c *Client) doBuffered(resp *http.Response, out any, method, uri string) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ClientError{Message: errResponse, Method: method, Url: uri, Body: err}
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))

	if c.onResponse != nil {
		resp, err = c.onResponse(resp)
		if err != nil {
			return &ClientError{Message: errResponse, Method: method, Url: uri, Body: err}
		}
		if data, err = io.ReadAll(resp.Body); err != nil {
			return &ClientError{Message: errResponse, Method: method, Url: uri, Body: err}
		}
	}

	if resp.StatusCode/100 != 2 {
		return &ClientError{Message: errUnsuccessful, Method: method, Url: uri, Code: resp.StatusCode, Body: string(data)}
	}
	return decodeResponse(data, out, method, uri)
}

// doStreamed runs the streamed response hook, classifies the status code
// and hands the lazily-consumed body to the stream decoder. On a non-2xx
// response the body is drained exactly once into the raised error.
func (c *Client) doStreamed(resp *http.Response, out any, o *requestOpts, method, uri string) error {
	var err error
	if c.onStream != nil {
		resp, err = c.onStream(resp)
		if err != nil {
			return &ClientError{Message: errResponse, Method: method, Url: uri, Body: err}
		}
	}

	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(resp.Body)
		return &ClientError{Message: errUnsuccessful, Method: method, Url: uri, Code: resp.StatusCode, Body: string(data)}
	}

	if o.textStream != nil {
		return decodeTextStream(resp.Body, o.textStream)
	}
	return decodeJsonStream(resp.Body, o.jsonStream, out)
}

func decodeResponse(data []byte, out any, method, uri string) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	switch out := out.(type) {
	case io.Writer:
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("%s %s: %w", method, uri, err)
		}
	case *string:
		*out = string(data)
	case *[]byte:
		*out = data
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: %w", method, uri, err)
		}
	}
	return nil
}
