package openai

import (
	"context"
	"encoding/json"

	// Packages
	client "github.com/mutablelogic/go-llmclient"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Model is a model which can be used for completions or embeddings
type Model struct {
	Id      string `json:"id"`
	Object  string `json:"object,omitempty"`
	Created int64  `json:"created,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Model) String() string {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListModels returns all models available to the credential
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var response ListResponse[Model]
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models")); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetModel returns one model by identifier
func (c *Client) GetModel(ctx context.Context, model string) (*Model, error) {
	var response Model
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models", model)); err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteModel deletes a fine-tuned model owned by the credential
func (c *Client) DeleteModel(ctx context.Context, model string) error {
	return c.DoWithContext(ctx, client.MethodDelete, nil, client.OptPath("models", model))
}
