package ollama

import (
	"context"
	"encoding/json"
	"time"

	// Packages
	client "github.com/mutablelogic/go-llmclient"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// GenerateRequest is a request for a completion from a prompt
type GenerateRequest struct {
	Model     string         `json:"model"`
	Prompt    string         `json:"prompt"`
	System    string         `json:"system,omitempty"`
	Template  string         `json:"template,omitempty"`
	Context   []int          `json:"context,omitempty"`
	Format    string         `json:"format,omitempty"`
	Raw       bool           `json:"raw,omitempty"`
	Stream    bool           `json:"stream"`
	KeepAlive *time.Duration `json:"keep_alive,omitempty"`
	Options   map[string]any `json:"options,omitempty"`
}

// GenerateResponse is a completion response, or one chunk of a streamed
// completion
type GenerateResponse struct {
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Response  string    `json:"response"`
	Done      bool      `json:"done"`
	Reason    string    `json:"done_reason,omitempty"`
	Context   []int     `json:"context,omitempty"`
	Metrics
}

// Metrics
type Metrics struct {
	TotalDuration      time.Duration `json:"total_duration,omitempty"`
	LoadDuration       time.Duration `json:"load_duration,omitempty"`
	PromptEvalCount    int           `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration time.Duration `json:"prompt_eval_duration,omitempty"`
	EvalCount          int           `json:"eval_count,omitempty"`
	EvalDuration       time.Duration `json:"eval_duration,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r GenerateResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate a completion for a prompt, buffered
func (ollama *Client) Generate(ctx context.Context, request GenerateRequest) (*GenerateResponse, error) {
	request.Stream = false

	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response GenerateResponse
	if err := ollama.DoWithContext(ctx, req, &response, client.OptPath("generate")); err != nil {
		return nil, err
	}
	return &response, nil
}

// GenerateStream generates a completion as a stream of chunks, invoking
// the callback for each chunk, and returns the assembled response
func (ollama *Client) GenerateStream(ctx context.Context, request GenerateRequest, fn func(*GenerateResponse) error) (*GenerateResponse, error) {
	request.Stream = true

	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response, delta GenerateResponse
	if err := ollama.DoWithContext(ctx, req, &delta, client.OptPath("generate"), client.OptJsonStreamCallback(func(v any) error {
		chunk, ok := v.(*GenerateResponse)
		if !ok || chunk == nil {
			return client.ErrConflict.Withf("invalid stream response: %v", v)
		}
		response.Model = chunk.Model
		response.CreatedAt = chunk.CreatedAt
		response.Response += chunk.Response
		if chunk.Done {
			response.Done = chunk.Done
			response.Reason = chunk.Reason
			response.Context = chunk.Context
			response.Metrics = chunk.Metrics
		}
		if fn != nil {
			return fn(chunk)
		}
		return nil
	})); err != nil {
		return nil, err
	}
	return &response, nil
}
