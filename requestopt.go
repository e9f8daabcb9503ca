package client

import (
	"net/http"
	"net/url"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// RequestOpt is a per-call option which can be passed to Do and
// DoWithContext
type RequestOpt func(*requestOpts) error

// JsonStreamCallback receives each decoded object from a streamed
// newline-delimited JSON response
type JsonStreamCallback func(any) error

// TextStreamCallback receives each event from a streamed
// text/event-stream response
type TextStreamCallback func(TextStreamEvent) error

type requestOpts struct {
	endpoint   string
	path       []string
	query      url.Values
	header     http.Header
	noTimeout  bool
	jsonStream JsonStreamCallback
	textStream TextStreamCallback
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// OptPath appends path elements to the request URL
func OptPath(path ...string) RequestOpt {
	return func(o *requestOpts) error {
		o.path = append(o.path, path...)
		return nil
	}
}

// OptQuery merges query parameters into the request. Per-call parameters
// take precedence over client-global parameters of the same name.
func OptQuery(values url.Values) RequestOpt {
	return func(o *requestOpts) error {
		for key, value := range values {
			o.query[key] = append(o.query[key], value...)
		}
		return nil
	}
}

// OptReqHeader sets a per-call header. A client-global header of the same
// name takes precedence.
func OptReqHeader(key, value string) RequestOpt {
	return func(o *requestOpts) error {
		o.header.Set(key, value)
		return nil
	}
}

// OptReqEndpoint sets the endpoint for this call, used only when the
// client was constructed without an endpoint override. The same
// preconditions apply as for the client endpoint.
func OptReqEndpoint(v string) RequestOpt {
	return func(o *requestOpts) error {
		u, err := parseEndpoint(v)
		if err != nil {
			return err
		}
		o.endpoint = u.String()
		return nil
	}
}

// OptNoTimeout disables the client timeout for this call, for long
// running requests such as model downloads.
func OptNoTimeout() RequestOpt {
	return func(o *requestOpts) error {
		o.noTimeout = true
		return nil
	}
}

// OptJsonStreamCallback switches the call to the streamed primitive: the
// response body is consumed as newline-delimited JSON, and the callback
// receives a pointer to each decoded chunk, of the same type as the out
// parameter.
func OptJsonStreamCallback(fn JsonStreamCallback) RequestOpt {
	return func(o *requestOpts) error {
		o.jsonStream = fn
		return nil
	}
}

// OptTextStreamCallback switches the call to the streamed primitive: the
// response body is consumed as server-sent events, and the callback
// receives each decoded event.
func OptTextStreamCallback(fn TextStreamCallback) RequestOpt {
	return func(o *requestOpts) error {
		o.textStream = fn
		return nil
	}
}
