package openai

import (
	"context"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-llmclient"
	opt "github.com/mutablelogic/go-llmclient/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Batch is a batch of requests processed asynchronously
type Batch struct {
	Id               string            `json:"id"`
	Object           string            `json:"object,omitempty"`
	Endpoint         string            `json:"endpoint"`
	InputFileId      string            `json:"input_file_id"`
	CompletionWindow string            `json:"completion_window,omitempty"`
	Status           string            `json:"status,omitempty"`
	OutputFileId     string            `json:"output_file_id,omitempty"`
	ErrorFileId      string            `json:"error_file_id,omitempty"`
	CreatedAt        int64             `json:"created_at,omitempty"`
	CompletedAt      *int64            `json:"completed_at,omitempty"`
	RequestCounts    *RequestCounts    `json:"request_counts,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// RequestCounts tallies the requests within a batch
type RequestCounts struct {
	Total     uint `json:"total"`
	Completed uint `json:"completed"`
	Failed    uint `json:"failed"`
}

// BatchRequest creates a batch from an uploaded input file
type BatchRequest struct {
	InputFileId      string            `json:"input_file_id"`
	Endpoint         string            `json:"endpoint"`
	CompletionWindow string            `json:"completion_window"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateBatch starts processing a batch of requests
func (c *Client) CreateBatch(ctx context.Context, request BatchRequest) (*Batch, error) {
	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response Batch
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("batches")); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListBatches returns batches, paginated
func (c *Client) ListBatches(ctx context.Context, opts ...opt.Opt) ([]Batch, error) {
	query, err := listQuery(opts...)
	if err != nil {
		return nil, err
	}

	var response ListResponse[Batch]
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("batches"), client.OptQuery(query)); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetBatch returns one batch by identifier
func (c *Client) GetBatch(ctx context.Context, id string) (*Batch, error) {
	var response Batch
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("batches", id)); err != nil {
		return nil, err
	}
	return &response, nil
}

// CancelBatch cancels an in-progress batch
func (c *Client) CancelBatch(ctx context.Context, id string) (*Batch, error) {
	var response Batch
	if err := c.DoWithContext(ctx, client.NewRequestEx(http.MethodPost, client.ContentTypeJson), &response, client.OptPath("batches", id, "cancel")); err != nil {
		return nil, err
	}
	return &response, nil
}
