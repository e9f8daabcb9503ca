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

// Thread is a conversation thread for the assistants surface
type Thread struct {
	Id        string            `json:"id"`
	Object    string            `json:"object,omitempty"`
	CreatedAt int64             `json:"created_at,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ThreadMessage is one message on a thread
type ThreadMessage struct {
	Id          string           `json:"id"`
	Object      string           `json:"object,omitempty"`
	CreatedAt   int64            `json:"created_at,omitempty"`
	ThreadId    string           `json:"thread_id,omitempty"`
	Role        string           `json:"role"`
	Content     []MessageContent `json:"content,omitempty"`
	AssistantId string           `json:"assistant_id,omitempty"`
	RunId       string           `json:"run_id,omitempty"`
}

// MessageContent is one content block of a thread message
type MessageContent struct {
	Type string `json:"type"`
	Text *struct {
		Value string `json:"value"`
	} `json:"text,omitempty"`
}

// ThreadMessageRequest adds a message to a thread
type ThreadMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Run is one execution of an assistant over a thread
type Run struct {
	Id           string `json:"id"`
	Object       string `json:"object,omitempty"`
	CreatedAt    int64  `json:"created_at,omitempty"`
	ThreadId     string `json:"thread_id,omitempty"`
	AssistantId  string `json:"assistant_id,omitempty"`
	Status       string `json:"status,omitempty"`
	Model        string `json:"model,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`
}

// RunRequest starts a run
type RunRequest struct {
	AssistantId  string `json:"assistant_id"`
	Model        string `json:"model,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// ToolOutput is the result of one tool call, submitted back to a waiting
// run
type ToolOutput struct {
	ToolCallId string `json:"tool_call_id"`
	Output     string `json:"output"`
}

type reqToolOutputs struct {
	ToolOutputs []ToolOutput `json:"tool_outputs"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateThread creates an empty conversation thread
func (c *Client) CreateThread(ctx context.Context) (*Thread, error) {
	req, err := client.NewJSONRequest(struct{}{})
	if err != nil {
		return nil, err
	}

	var response Thread
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("threads"), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetThread returns one thread by identifier
func (c *Client) GetThread(ctx context.Context, id string) (*Thread, error) {
	var response Thread
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("threads", id), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}

// DeleteThread deletes a thread by identifier
func (c *Client) DeleteThread(ctx context.Context, id string) error {
	var response DeleteStatus
	if err := c.DoWithContext(ctx, client.MethodDelete, &response, client.OptPath("threads", id), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return err
	}
	if !response.Deleted {
		return client.ErrConflict.With("thread not deleted: ", id)
	}
	return nil
}

// CreateMessage adds a message to a thread
func (c *Client) CreateMessage(ctx context.Context, threadId string, request ThreadMessageRequest) (*ThreadMessage, error) {
	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response ThreadMessage
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("threads", threadId, "messages"), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListMessages returns the messages on a thread, paginated
func (c *Client) ListMessages(ctx context.Context, threadId string, opts ...opt.Opt) ([]ThreadMessage, error) {
	query, err := listQuery(opts...)
	if err != nil {
		return nil, err
	}

	var response ListResponse[ThreadMessage]
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("threads", threadId, "messages"), client.OptQuery(query), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// CreateRun starts an assistant run over a thread
func (c *Client) CreateRun(ctx context.Context, threadId string, request RunRequest) (*Run, error) {
	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response Run
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("threads", threadId, "runs"), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetRun returns one run by identifier
func (c *Client) GetRun(ctx context.Context, threadId, runId string) (*Run, error) {
	var response Run
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("threads", threadId, "runs", runId), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}

// CancelRun cancels an in-progress run
func (c *Client) CancelRun(ctx context.Context, threadId, runId string) (*Run, error) {
	var response Run
	if err := c.DoWithContext(ctx, client.NewRequestEx(http.MethodPost, client.ContentTypeJson), &response, client.OptPath("threads", threadId, "runs", runId, "cancel"), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}

// SubmitToolOutputs submits tool call results to a run waiting on
// required action
func (c *Client) SubmitToolOutputs(ctx context.Context, threadId, runId string, outputs []ToolOutput) (*Run, error) {
	req, err := client.NewJSONRequest(reqToolOutputs{ToolOutputs: outputs})
	if err != nil {
		return nil, err
	}

	var response Run
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("threads", threadId, "runs", runId, "submit_tool_outputs"), client.OptReqHeader(betaHeader, betaHeaderValue)); err != nil {
		return nil, err
	}
	return &response, nil
}
