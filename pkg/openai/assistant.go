package openai

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-llmclient"
	opt "github.com/mutablelogic/go-llmclient/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Assistant is a configured assistant
type Assistant struct {
	Id           string   `json:"id"`
	Object       string   `json:"object,omitempty"`
	CreatedAt    int64    `json:"created_at,omitempty"`
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Model        string   `json:"model"`
	Instructions string   `json:"instructions,omitempty"`
	Tools        []Tool   `json:"tools,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	TopP         *float64 `json:"top_p,omitempty"`
}

// Tool enables a built-in tool for an assistant
type Tool struct {
	Type string `json:"type"`
}

// AssistantRequest creates or modifies an assistant
type AssistantRequest struct {
	Model        string   `json:"model"`
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Tools        []Tool   `json:"tools,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	TopP         *float64 `json:"top_p,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// The assistants surface is versioned separately with a beta header
const (
	betaHeader      = "OpenAI-Beta"
	betaHeaderValue = "assistants=v2"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateAssistant creates an assistant
func (c *Client) CreateAssistant(ctx context.Context, request AssistantRequest) (*Assistant, error) {
	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response Assistant
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("assistants"), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListAssistants returns assistants, paginated
func (c *Client) ListAssistants(ctx context.Context, opts ...opt.Opt) ([]Assistant, error) {
	query, err := listQuery(opts...)
	if err != nil {
		return nil, err
	}

	var response ListResponse[Assistant]
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("assistants"), client.OptQuery(query), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetAssistant returns one assistant by identifier
func (c *Client) GetAssistant(ctx context.Context, id string) (*Assistant, error) {
	var response Assistant
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("assistants", id), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}

// ModifyAssistant updates an assistant in place
func (c *Client) ModifyAssistant(ctx context.Context, id string, request AssistantRequest) (*Assistant, error) {
	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response Assistant
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("assistants", id), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteAssistant deletes an assistant by identifier
func (c *Client) DeleteAssistant(ctx context.Context, id string) error {
	var response DeleteStatus
	if err := c.DoWithContext(ctx, client.MethodDelete, &response, client.OptPath("assistants", id), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return err
	}
	if !response.Deleted {
		return client.ErrConflict.With("assistant not deleted: ", id)
	}
	return nil
}
