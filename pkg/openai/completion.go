package openai

import (
	"context"
	"encoding/json"

	// Packages
	client "github.com/mutablelogic/go-llmclient"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is one chat message, sent or received
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a request for a chat completion
type CompletionRequest struct {
	Model            string         `json:"model"`
	Messages         []Message      `json:"messages"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	MaxTokens        uint           `json:"max_completion_tokens,omitempty"`
	NumCompletions   uint           `json:"n,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	Seed             *int64         `json:"seed,omitempty"`
	StopSequences    []string       `json:"stop,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	TopP             *float64       `json:"top_p,omitempty"`
	User             string         `json:"user,omitempty"`
	Stream           bool           `json:"stream,omitempty"`
	StreamOptions    *streamOptions `json:"stream_options,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// Choice is one completion choice, with either a full message (buffered)
// or a delta (streamed)
type Choice struct {
	Index        int      `json:"index"`
	Message      *Message `json:"message,omitempty"`
	Delta        *Message `json:"delta,omitempty"`
	FinishReason string   `json:"finish_reason,omitempty"`
}

// Usage is the token accounting for a completion
type Usage struct {
	PromptTokens     uint `json:"prompt_tokens"`
	CompletionTokens uint `json:"completion_tokens"`
	TotalTokens      uint `json:"total_tokens"`
}

// Completion is a chat completion response, or one chunk of a streamed
// response
type Completion struct {
	Id      string   `json:"id"`
	Object  string   `json:"object,omitempty"`
	Created int64    `json:"created,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// End-of-stream marker on the chat completions event stream
const endOfTextStream = "[DONE]"

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c Completion) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Completion generates a chat completion for the messages in the request
func (c *Client) Completion(ctx context.Context, request CompletionRequest) (*Completion, error) {
	request.Stream = false
	request.StreamOptions = nil

	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response Completion
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, err
	}
	return &response, nil
}

// CompletionStream generates a chat completion as a stream of chunks,
// invoking the callback for each chunk, and returns the assembled
// completion. The final usage chunk is requested so token accounting
// survives streaming.
func (c *Client) CompletionStream(ctx context.Context, request CompletionRequest, fn func(*Completion) error) (*Completion, error) {
	request.Stream = true
	request.StreamOptions = &streamOptions{IncludeUsage: true}

	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response Completion
	callback := func(evt client.TextStreamEvent) error {
		if evt.Data == endOfTextStream {
			return nil
		}
		var chunk Completion
		if err := evt.Json(&chunk); err != nil {
			return err
		}
		response.append(chunk)
		if fn != nil {
			return fn(&chunk)
		}
		return nil
	}

	if err := c.DoWithContext(ctx, req, nil,
		client.OptPath("chat", "completions"),
		client.OptTextStreamCallback(callback),
	); err != nil {
		return nil, err
	}
	return &response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// append folds one streamed chunk into the assembled completion
func (c *Completion) append(chunk Completion) {
	if chunk.Id != "" {
		c.Id = chunk.Id
	}
	if chunk.Model != "" {
		c.Model = chunk.Model
	}
	if chunk.Created != 0 {
		c.Created = chunk.Created
	}
	if chunk.Usage != nil {
		c.Usage = chunk.Usage
	}
	for _, choice := range chunk.Choices {
		for choice.Index >= len(c.Choices) {
			c.Choices = append(c.Choices, Choice{Index: len(c.Choices), Message: new(Message)})
		}
		message := c.Choices[choice.Index].Message
		if delta := choice.Delta; delta != nil {
			if delta.Role != "" {
				message.Role = delta.Role
			}
			message.Content += delta.Content
		}
		if choice.FinishReason != "" {
			c.Choices[choice.Index].FinishReason = choice.FinishReason
		}
	}
}
