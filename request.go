package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Payload is one outgoing call body: the HTTP method, the accept and
// content type labels, and the encoded body bytes (which may be empty).
// A payload is constructed fresh per call and consumed immediately.
type Payload interface {
	io.Reader

	Method() string
	Accept() string
	Type() string
}

// File is a binary file part for a multipart request
type File struct {
	Path string
	Body io.Reader
}

type request struct {
	method   string
	accept   string
	mimetype string
	buf      *bytes.Buffer
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ContentTypeAny        = "*/*"
	ContentTypeJson       = "application/json"
	ContentTypeJsonStream = "application/x-ndjson"
	ContentTypeTextStream = "text/event-stream"
	ContentTypeTextPlain  = "text/plain"
	ContentTypeBinary     = "application/octet-stream"
	ContentTypeForm       = "multipart/form-data"
	ContentTypeUrlEncoded = "application/x-www-form-urlencoded"
)

var (
	// MethodGet is a payload for a GET request with no body
	MethodGet Payload = &request{method: http.MethodGet, accept: ContentTypeJson}

	// MethodDelete is a payload for a DELETE request with no body
	MethodDelete Payload = &request{method: http.MethodDelete, accept: ContentTypeJson}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRequest returns a GET payload with no body which accepts JSON
func NewRequest() Payload {
	return NewRequestEx(http.MethodGet, ContentTypeJson)
}

// NewRequestEx returns a payload with no body, with the given method and
// accepted content type
func NewRequestEx(method, accept string) Payload {
	return &request{method: method, accept: accept}
}

// NewJSONRequest returns a POST payload with a JSON-encoded body which
// accepts JSON
func NewJSONRequest(payload any) (Payload, error) {
	return NewJSONRequestEx(http.MethodPost, payload, ContentTypeJson)
}

// NewJSONRequestEx returns a payload with a JSON-encoded body, with the
// given method and accepted content type. A body which cannot be encoded
// returns a ClientError with the encoding failure attached and no status
// code.
func NewJSONRequestEx(method string, payload any, accept string) (Payload, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return nil, &ClientError{Message: errRequest, Method: method, Body: err}
	}
	return &request{
		method:   method,
		accept:   accept,
		mimetype: ContentTypeJson,
		buf:      buf,
	}, nil
}

// NewMultipartRequest returns a POST payload with a multipart/form-data
// encoded body. Fields of type File (or a slice of File) become binary
// file parts; all other fields are stringified into form fields, named by
// their json tag.
func NewMultipartRequest(payload any, accept string) (Payload, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	if err := encodeMultipart(w, payload); err != nil {
		w.Close()
		return nil, &ClientError{Message: errRequest, Method: http.MethodPost, Body: err}
	}
	if err := w.Close(); err != nil {
		return nil, &ClientError{Message: errRequest, Method: http.MethodPost, Body: err}
	}
	return &request{
		method:   http.MethodPost,
		accept:   accept,
		mimetype: w.FormDataContentType(),
		buf:      buf,
	}, nil
}

// NewFormRequest returns a POST payload with a form-urlencoded body.
// Fields are stringified into form values, named by their json tag. File
// fields cannot be form-encoded and return an error.
func NewFormRequest(payload any, accept string) (Payload, error) {
	values, err := encodeForm(payload)
	if err != nil {
		return nil, &ClientError{Message: errRequest, Method: http.MethodPost, Body: err}
	}
	return &request{
		method:   http.MethodPost,
		accept:   accept,
		mimetype: ContentTypeUrlEncoded,
		buf:      bytes.NewBufferString(values.Encode()),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (r *request) Method() string {
	return r.method
}

func (r *request) Accept() string {
	return r.accept
}

func (r *request) Type() string {
	return r.mimetype
}

func (r *request) Read(p []byte) (int, error) {
	if r.buf == nil {
		return 0, io.EOF
	}
	return r.buf.Read(p)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func encodeMultipart(w *multipart.Writer, payload any) error {
	rv := reflect.ValueOf(payload)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return ErrBadParameter.With("multipart payload must be a struct")
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitempty := fieldName(field)
		if name == "-" {
			continue
		}
		value := rv.Field(i)
		switch v := value.Interface().(type) {
		case File:
			if err := encodeFilePart(w, name, v); err != nil {
				return err
			}
		case *File:
			if v != nil {
				if err := encodeFilePart(w, name, *v); err != nil {
					return err
				}
			}
		case []File:
			for _, file := range v {
				if err := encodeFilePart(w, name, file); err != nil {
					return err
				}
			}
		default:
			if omitempty && value.IsZero() {
				continue
			}
			if err := w.WriteField(name, fmt.Sprint(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeForm(payload any) (url.Values, error) {
	rv := reflect.ValueOf(payload)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrBadParameter.With("form payload must be a struct")
	}
	values := url.Values{}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitempty := fieldName(field)
		if name == "-" {
			continue
		}
		value := rv.Field(i)
		switch value.Interface().(type) {
		case File, *File, []File:
			return nil, ErrBadParameter.Withf("field %q cannot be form-encoded", name)
		default:
			if omitempty && value.IsZero() {
				continue
			}
			values.Set(name, fmt.Sprint(value.Interface()))
		}
	}
	return values, nil
}

func encodeFilePart(w *multipart.Writer, name string, file File) error {
	part, err := w.CreateFormFile(name, file.Path)
	if err != nil {
		return err
	}
	if file.Body == nil {
		return nil
	}
	_, err = io.Copy(part, file.Body)
	return err
}

func fieldName(field reflect.StructField) (string, bool) {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return field.Name, false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = field.Name
	}
	var omitempty bool
	for _, part := range parts[1:] {
		if part == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}
