package ollama

import (
	"context"
	"net/http"
	"time"

	// Packages
	client "github.com/mutablelogic/go-llmclient"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Model is a model in the local registry
type Model struct {
	Name       string       `json:"name"`
	Model      string       `json:"model,omitempty"`
	ModifiedAt time.Time    `json:"modified_at,omitzero"`
	Size       int64        `json:"size,omitempty"`
	Digest     string       `json:"digest,omitempty"`
	Details    ModelDetails `json:"details,omitzero"`
	File       string       `json:"modelfile,omitempty"`
	Parameters string       `json:"parameters,omitempty"`
	Template   string       `json:"template,omitempty"`
}

// ModelDetails are the details of the model
type ModelDetails struct {
	ParentModel       string   `json:"parent_model,omitempty"`
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// PullProgress is one chunk of the model download progress stream
type PullProgress struct {
	Status    string `json:"status"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
}

// listModelsResponse represents the API response for listing models
type listModelsResponse struct {
	Data []Model `json:"models"`
}

type reqModelName struct {
	Model string `json:"model"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// List all models in the local registry
func (ollama *Client) ListModels(ctx context.Context) ([]Model, error) {
	var response listModelsResponse
	if err := ollama.DoWithContext(ctx, nil, &response, client.OptPath("tags")); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetModel returns the model with the given name
func (ollama *Client) GetModel(ctx context.Context, name string) (*Model, error) {
	req, err := client.NewJSONRequest(reqModelName{Model: name})
	if err != nil {
		return nil, err
	}

	var response Model
	if err := ollama.DoWithContext(ctx, req, &response, client.OptPath("show")); err != nil {
		return nil, err
	}

	// The show endpoint doesn't return the name, so set it from the request
	if response.Name == "" {
		response.Name = name
	}
	return &response, nil
}

// DeleteModel removes a model from the local registry
func (ollama *Client) DeleteModel(ctx context.Context, name string) error {
	req, err := client.NewJSONRequestEx(http.MethodDelete, reqModelName{Model: name}, client.ContentTypeAny)
	if err != nil {
		return err
	}
	return ollama.DoWithContext(ctx, req, nil, client.OptPath("delete"))
}

// PullModel downloads a model into the local registry, invoking the
// callback with each progress chunk. Downloads can run for a long time,
// so the client timeout is suspended for this call.
func (ollama *Client) PullModel(ctx context.Context, name string, fn func(PullProgress) error) error {
	req, err := client.NewJSONRequest(reqModelName{Model: name})
	if err != nil {
		return err
	}

	var last PullProgress
	return ollama.DoWithContext(ctx, req, &last,
		client.OptPath("pull"),
		client.OptNoTimeout(),
		client.OptJsonStreamCallback(func(v any) error {
			progress, ok := v.(*PullProgress)
			if !ok || progress == nil {
				return client.ErrConflict.Withf("invalid progress chunk: %v", v)
			}
			if fn != nil {
				return fn(*progress)
			}
			return nil
		}),
	)
}

// Version returns the server version
func (ollama *Client) Version(ctx context.Context) (string, error) {
	var response struct {
		Version string `json:"version"`
	}
	if err := ollama.DoWithContext(ctx, nil, &response, client.OptPath("version")); err != nil {
		return "", err
	}
	return response.Version, nil
}
