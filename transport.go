package client

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"time"

	// Packages
	backoff "github.com/cenkalti/backoff/v5"
	uuid "github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// retryTransport retries transient transport failures with exponential
// backoff before they reach error classification. HTTP-level responses,
// successful or not, are never retried here.
type retryTransport struct {
	parent http.RoundTripper
	tries  uint
	delay  time.Duration
}

// traceTransport mirrors each exchange to a writer, tagged so that the
// request and response of one exchange can be correlated.
type traceTransport struct {
	parent  http.RoundTripper
	w       io.Writer
	verbose bool
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newRetryTransport(parent http.RoundTripper, tries uint, delay time.Duration) http.RoundTripper {
	if parent == nil {
		parent = http.DefaultTransport
	}
	return &retryTransport{parent: parent, tries: tries, delay: delay}
}

func newTraceTransport(parent http.RoundTripper, w io.Writer, verbose bool) http.RoundTripper {
	if parent == nil {
		parent = http.DefaultTransport
	}
	return &traceTransport{parent: parent, w: w, verbose: verbose}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// A request body which cannot be replayed is sent exactly once
	if req.Body != nil && req.GetBody == nil {
		return t.parent.RoundTrip(req)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = t.delay

	return backoff.Retry(req.Context(), func() (*http.Response, error) {
		attempt := req
		if req.Body != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, backoff.Permanent(err)
			}
			attempt = req.Clone(req.Context())
			attempt.Body = body
		}
		resp, err := t.parent.RoundTrip(attempt)
		if err != nil {
			if req.Context().Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return resp, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(t.tries))
}

func (t *traceTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tag := uuid.NewString()[:8]
	fmt.Fprintf(t.w, "%s %s %s\n", tag, req.Method, req.URL)
	if t.verbose {
		if dump, err := httputil.DumpRequestOut(req, req.Body != nil); err == nil {
			t.w.Write(dump)
		}
	}

	now := time.Now()
	resp, err := t.parent.RoundTrip(req)
	if err != nil {
		fmt.Fprintf(t.w, "%s error %v\n", tag, err)
		return nil, err
	}

	fmt.Fprintf(t.w, "%s %s (%v)\n", tag, resp.Status, time.Since(now).Truncate(time.Millisecond))
	if t.verbose {
		if dump, err := httputil.DumpResponse(resp, true); err == nil {
			t.w.Write(dump)
		}
	}
	return resp, nil
}
