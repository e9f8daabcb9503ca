package openai

import (
	"context"
	"io"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-llmclient"
	opt "github.com/mutablelogic/go-llmclient/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// File is an uploaded file object
type File struct {
	Id        string `json:"id"`
	Object    string `json:"object,omitempty"`
	Bytes     int64  `json:"bytes,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
}

type reqUploadFile struct {
	Purpose string      `json:"purpose"`
	File    client.File `json:"file"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// UploadFile uploads a file for the given purpose ("fine-tune", "batch",
// "assistants", ...)
func (c *Client) UploadFile(ctx context.Context, filename string, body io.Reader, purpose string) (*File, error) {
	req, err := client.NewMultipartRequest(reqUploadFile{
		Purpose: purpose,
		File: client.File{
			Path: filename,
			Body: body,
		},
	}, client.ContentTypeJson)
	if err != nil {
		return nil, err
	}

	var response File
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("files")); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListFiles returns uploaded files, paginated, optionally filtered by
// purpose
func (c *Client) ListFiles(ctx context.Context, opts ...opt.Opt) ([]File, error) {
	query, err := listQuery(opts...)
	if err != nil {
		return nil, err
	}

	var response ListResponse[File]
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("files"), client.OptQuery(query)); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetFile returns one file object by identifier
func (c *Client) GetFile(ctx context.Context, id string) (*File, error) {
	var response File
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("files", id)); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetFileContent writes the raw content of a file to w
func (c *Client) GetFileContent(ctx context.Context, id string, w io.Writer) error {
	return c.DoWithContext(ctx, client.NewRequestEx(http.MethodGet, client.ContentTypeAny), w, client.OptPath("files", id, "content"))
}

// DeleteFile deletes a file by identifier
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	var response DeleteStatus
	if err := c.DoWithContext(ctx, client.MethodDelete, &response, client.OptPath("files", id)); err != nil {
		return err
	}
	if !response.Deleted {
		return client.ErrConflict.With("file not deleted: ", id)
	}
	return nil
}
