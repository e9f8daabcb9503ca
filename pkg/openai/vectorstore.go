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

// VectorStore is a store of embedded file content for retrieval
type VectorStore struct {
	Id         string      `json:"id"`
	Object     string      `json:"object,omitempty"`
	Name       string      `json:"name,omitempty"`
	Status     string      `json:"status,omitempty"`
	UsageBytes int64       `json:"usage_bytes,omitempty"`
	CreatedAt  int64       `json:"created_at,omitempty"`
	FileCounts *FileCounts `json:"file_counts,omitempty"`
}

// FileCounts tallies the files within a vector store or file batch
type FileCounts struct {
	InProgress uint `json:"in_progress"`
	Completed  uint `json:"completed"`
	Failed     uint `json:"failed"`
	Cancelled  uint `json:"cancelled"`
	Total      uint `json:"total"`
}

// VectorStoreRequest creates a vector store
type VectorStoreRequest struct {
	Name    string   `json:"name,omitempty"`
	FileIds []string `json:"file_ids,omitempty"`
}

// VectorStoreFileBatch tracks ingestion of a set of files into a store
type VectorStoreFileBatch struct {
	Id            string      `json:"id"`
	Object        string      `json:"object,omitempty"`
	VectorStoreId string      `json:"vector_store_id"`
	Status        string      `json:"status,omitempty"`
	CreatedAt     int64       `json:"created_at,omitempty"`
	FileCounts    *FileCounts `json:"file_counts,omitempty"`
}

type reqFileBatch struct {
	FileIds []string `json:"file_ids"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateVectorStore creates a vector store, optionally seeded with
// uploaded files
func (c *Client) CreateVectorStore(ctx context.Context, request VectorStoreRequest) (*VectorStore, error) {
	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response VectorStore
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("vector_stores")); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListVectorStores returns vector stores, paginated
func (c *Client) ListVectorStores(ctx context.Context, opts ...opt.Opt) ([]VectorStore, error) {
	query, err := listQuery(opts...)
	if err != nil {
		return nil, err
	}

	var response ListResponse[VectorStore]
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("vector_stores"), client.OptQuery(query)); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetVectorStore returns one vector store by identifier
func (c *Client) GetVectorStore(ctx context.Context, id string) (*VectorStore, error) {
	var response VectorStore
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("vector_stores", id)); err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteVectorStore deletes a vector store by identifier
func (c *Client) DeleteVectorStore(ctx context.Context, id string) error {
	var response DeleteStatus
	if err := c.DoWithContext(ctx, client.MethodDelete, &response, client.OptPath("vector_stores", id)); err != nil {
		return err
	}
	if !response.Deleted {
		return client.ErrConflict.With("vector store not deleted: ", id)
	}
	return nil
}

// CreateVectorStoreFileBatch ingests a set of uploaded files into a
// vector store
func (c *Client) CreateVectorStoreFileBatch(ctx context.Context, storeId string, fileIds []string) (*VectorStoreFileBatch, error) {
	req, err := client.NewJSONRequest(reqFileBatch{FileIds: fileIds})
	if err != nil {
		return nil, err
	}

	var response VectorStoreFileBatch
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("vector_stores", storeId, "file_batches")); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetVectorStoreFileBatch returns one file batch by identifier
func (c *Client) GetVectorStoreFileBatch(ctx context.Context, storeId, batchId string) (*VectorStoreFileBatch, error) {
	var response VectorStoreFileBatch
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("vector_stores", storeId, "file_batches", batchId)); err != nil {
		return nil, err
	}
	return &response, nil
}

// CancelVectorStoreFileBatch cancels an in-progress file batch
func (c *Client) CancelVectorStoreFileBatch(ctx context.Context, storeId, batchId string) (*VectorStoreFileBatch, error) {
	var response VectorStoreFileBatch
	if err := c.DoWithContext(ctx, client.NewRequestEx(http.MethodPost, client.ContentTypeJson), &response, client.OptPath("vector_stores", storeId, "file_batches", batchId, "cancel")); err != nil {
		return nil, err
	}
	return &response, nil
}
