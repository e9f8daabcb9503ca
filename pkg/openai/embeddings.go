package openai

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-llmclient"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// EmbeddingRequest is a request to embed one or more inputs
type EmbeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions uint     `json:"dimensions,omitempty"`
	User       string   `json:"user,omitempty"`
}

// Embedding is one embedded input
type Embedding struct {
	Object    string    `json:"object,omitempty"`
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingResponse carries the embeddings for a request
type EmbeddingResponse struct {
	Object string      `json:"object,omitempty"`
	Model  string      `json:"model,omitempty"`
	Data   []Embedding `json:"data"`
	Usage  *Usage      `json:"usage,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateEmbedding embeds the request inputs
func (c *Client) CreateEmbedding(ctx context.Context, request EmbeddingRequest) (*EmbeddingResponse, error) {
	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response EmbeddingResponse
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("embeddings")); err != nil {
		return nil, err
	}
	return &response, nil
}
