package client_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	// Packages
	client "github.com/mutablelogic/go-llmclient"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// roundTripFunc stubs a transport handle
type roundTripFunc func(*http.Request) (*http.Response, error)

func (fn roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return fn(req)
}

func respond(code int, body string) *http.Response {
	return &http.Response{
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       newBody(body),
	}
}

func newBody(body string) *nopCloser {
	return &nopCloser{Reader: bytes.NewReader([]byte(body))}
}

type nopCloser struct {
	*bytes.Reader
}

func (*nopCloser) Close() error { return nil }

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_endpoint_001(t *testing.T) {
	assert := assert.New(t)

	// Valid endpoints
	for _, endpoint := range []string{"https://example.com", "http://localhost:11434/api", "https://api.openai.com/v1"} {
		c, err := client.New(client.OptEndpoint(endpoint))
		assert.NoError(err)
		assert.Equal(endpoint, c.Endpoint())
	}

	// A trailing path separator is a precondition violation, not
	// silently normalized
	_, err := client.New(client.OptEndpoint("https://example.com/"))
	assert.ErrorIs(err, client.ErrBadParameter)

	// Non-HTTP schemes are rejected
	_, err = client.New(client.OptEndpoint("ftp://example.com"))
	assert.ErrorIs(err, client.ErrBadParameter)
}

func Test_endpoint_002(t *testing.T) {
	assert := assert.New(t)

	// No endpoint at construction and none per-call
	c, err := client.New()
	assert.NoError(err)
	assert.ErrorIs(c.Do(nil, nil), client.ErrBadParameter)
}

func Test_endpoint_003(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// The per-call endpoint is subject to the same preconditions as the
	// client endpoint
	c, err := client.New()
	assert.NoError(err)
	assert.NoError(c.Do(nil, nil, client.OptReqEndpoint(srv.URL)))
	assert.ErrorIs(c.Do(nil, nil, client.OptReqEndpoint(srv.URL+"/")), client.ErrBadParameter)
	assert.ErrorIs(c.Do(nil, nil, client.OptReqEndpoint("ftp://example.com")), client.ErrBadParameter)

	// The client endpoint wins over the per-call default
	var uri string
	c, err = client.New(
		client.OptEndpoint("https://example.com"),
		client.OptHTTPClient(&http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				uri = req.URL.String()
				return respond(http.StatusOK, `{}`), nil
			}),
		}),
	)
	assert.NoError(err)
	assert.NoError(c.Do(nil, nil, client.OptReqEndpoint("https://fallback.example.com"), client.OptPath("v1")))
	assert.Equal("https://example.com/v1", uri)
}

func Test_url_001(t *testing.T) {
	assert := assert.New(t)

	// Base URL plus path must compose without doubled or missing
	// separators
	var uri string
	c, err := client.New(
		client.OptEndpoint("https://example.com"),
		client.OptHTTPClient(&http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				uri = req.URL.String()
				return respond(http.StatusOK, `{}`), nil
			}),
		}),
	)
	assert.NoError(err)
	assert.NoError(c.Do(nil, nil, client.OptPath("v1", "models", "gpt-4")))
	assert.Equal("https://example.com/v1/models/gpt-4", uri)

	// A leading separator on the path suffix is absorbed
	assert.NoError(c.Do(nil, nil, client.OptPath("/v1/models/gpt-4")))
	assert.Equal("https://example.com/v1/models/gpt-4", uri)
}

func Test_auth_001(t *testing.T) {
	assert := assert.New(t)

	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// Non-empty credential is sent as a bearer header
	c, err := client.New(
		client.OptEndpoint(srv.URL),
		client.OptReqToken(client.Token{Scheme: client.Bearer, Value: "secret"}),
	)
	assert.NoError(err)
	assert.NoError(c.Do(nil, nil))
	assert.Equal("Bearer secret", auth)

	// Empty credential sends no authorization header
	c, err = client.New(client.OptEndpoint(srv.URL))
	assert.NoError(err)
	assert.NoError(c.Do(nil, nil))
	assert.Equal("", auth)

	// The credential is the one mutable configuration field
	c.SetToken(client.Token{Scheme: client.Bearer, Value: "rotated"})
	assert.NoError(c.Do(nil, nil))
	assert.Equal("Bearer rotated", auth)
}

func Test_merge_001(t *testing.T) {
	assert := assert.New(t)

	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := client.New(
		client.OptEndpoint(srv.URL),
		client.OptQueryParam("api_version", "2"),
		client.OptQueryParam("format", "short"),
	)
	assert.NoError(err)

	// Per-call query parameters win over global ones of the same name;
	// global parameters not overridden are still present
	assert.NoError(c.Do(nil, nil, client.OptQuery(url.Values{"format": {"full"}})))
	assert.Equal("full", query.Get("format"))
	assert.Equal("2", query.Get("api_version"))
}

func Test_merge_002(t *testing.T) {
	assert := assert.New(t)

	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := client.New(
		client.OptEndpoint(srv.URL),
		client.OptHeader("X-Client-Version", "global"),
	)
	assert.NoError(err)

	// Global headers win over per-call ones of the same name - the
	// opposite direction to the query parameter merge
	assert.NoError(c.Do(nil, nil, client.OptReqHeader("X-Client-Version", "percall"), client.OptReqHeader("X-Request-Source", "test")))
	assert.Equal("global", header.Get("X-Client-Version"))
	assert.Equal("test", header.Get("X-Request-Source"))
}

func Test_status_001(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/created":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"new"}`))
		case "/nocontent":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(`{"id":"ok"}`))
		}
	}))
	defer srv.Close()

	c, err := client.New(client.OptEndpoint(srv.URL))
	assert.NoError(err)

	// Any 2xx status is a success
	var out struct {
		Id string `json:"id"`
	}
	assert.NoError(c.Do(nil, &out))
	assert.Equal("ok", out.Id)
	assert.NoError(c.Do(nil, &out, client.OptPath("created")))
	assert.Equal("new", out.Id)

	// 204 with an empty body still succeeds, and leaves out untouched
	assert.NoError(c.Do(nil, &out, client.OptPath("nocontent")))
	assert.Equal("new", out.Id)
}

func Test_status_002(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/badrequest":
			http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		case "/notfound":
			http.Error(w, `{"error":"no such model"}`, http.StatusNotFound)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c, err := client.New(client.OptEndpoint(srv.URL))
	assert.NoError(err)

	for path, code := range map[string]int{"badrequest": http.StatusBadRequest, "notfound": http.StatusNotFound, "error": http.StatusInternalServerError} {
		err := c.Do(nil, nil, client.OptPath(path))
		assert.Error(err)

		var clienterr *client.ClientError
		assert.True(errors.As(err, &clienterr))
		assert.Equal(code, clienterr.StatusCode())
		assert.NotEmpty(clienterr.Body)
		assert.Contains(clienterr.Error(), "Unsuccessful response")
	}
}

func Test_encoding_001(t *testing.T) {
	assert := assert.New(t)

	// A body which cannot be serialized raises a client error with no
	// status code and the encoding failure attached
	_, err := client.NewJSONRequest(map[string]any{"ch": make(chan int)})
	assert.Error(err)

	var clienterr *client.ClientError
	assert.True(errors.As(err, &clienterr))
	assert.Equal(0, clienterr.StatusCode())
	assert.Error(clienterr.Unwrap())
}

func Test_decode_001(t *testing.T) {
	assert := assert.New(t)

	// The error rendering includes method, target URI, status code and
	// a best-effort JSON-decoded body
	clienterr := &client.ClientError{
		Message: "Unsuccessful response",
		Method:  http.MethodPost,
		Url:     "https://example.com/v1/chat/completions",
		Code:    http.StatusConflict,
		Body:    `{"error":{"message":"already exists"}}`,
	}
	text := clienterr.Error()
	assert.Contains(text, "POST")
	assert.Contains(text, "https://example.com/v1/chat/completions")
	assert.Contains(text, "409")
	assert.Contains(text, "Unsuccessful response")
	assert.Contains(text, "already exists")

	// A JSON body decodes into a structured value, a plain body stays a
	// string
	decoded, ok := clienterr.DecodedBody().(map[string]any)
	assert.True(ok)
	assert.NotNil(decoded["error"])
	assert.Equal("plain failure", (&client.ClientError{Body: "plain failure"}).DecodedBody())
}

func Test_body_001(t *testing.T) {
	assert := assert.New(t)

	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("application/json", r.Header.Get("Content-Type"))
		assert.NoError(json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := client.New(client.OptEndpoint(srv.URL))
	assert.NoError(err)

	req, err := client.NewJSONRequest(map[string]string{"model": "gpt-4"})
	assert.NoError(err)
	assert.NoError(c.Do(req, nil))
	assert.Equal("gpt-4", received["model"])
}
