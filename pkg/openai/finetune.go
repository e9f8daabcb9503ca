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

// FineTuningJob is a fine-tuning job object
type FineTuningJob struct {
	Id              string           `json:"id"`
	Object          string           `json:"object,omitempty"`
	Model           string           `json:"model"`
	CreatedAt       int64            `json:"created_at,omitempty"`
	FinishedAt      *int64           `json:"finished_at,omitempty"`
	FineTunedModel  string           `json:"fine_tuned_model,omitempty"`
	Status          string           `json:"status,omitempty"`
	TrainingFile    string           `json:"training_file,omitempty"`
	ValidationFile  string           `json:"validation_file,omitempty"`
	Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
	TrainedTokens   uint             `json:"trained_tokens,omitempty"`
}

// Hyperparameters tune a fine-tuning job; "auto" lets the provider
// choose, so the fields are free-form
type Hyperparameters struct {
	BatchSize              any `json:"batch_size,omitempty"`
	LearningRateMultiplier any `json:"learning_rate_multiplier,omitempty"`
	NEpochs                any `json:"n_epochs,omitempty"`
}

// FineTuningJobRequest creates a fine-tuning job
type FineTuningJobRequest struct {
	Model           string           `json:"model"`
	TrainingFile    string           `json:"training_file"`
	ValidationFile  string           `json:"validation_file,omitempty"`
	Suffix          string           `json:"suffix,omitempty"`
	Seed            *int64           `json:"seed,omitempty"`
	Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
}

// FineTuningEvent is one event in a fine-tuning job's history
type FineTuningEvent struct {
	Id        string `json:"id"`
	Object    string `json:"object,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
	Level     string `json:"level,omitempty"`
	Message   string `json:"message,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateFineTuningJob starts a fine-tuning job from an uploaded training
// file
func (c *Client) CreateFineTuningJob(ctx context.Context, request FineTuningJobRequest) (*FineTuningJob, error) {
	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response FineTuningJob
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("fine_tuning", "jobs")); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListFineTuningJobs returns fine-tuning jobs, paginated
func (c *Client) ListFineTuningJobs(ctx context.Context, opts ...opt.Opt) ([]FineTuningJob, error) {
	query, err := listQuery(opts...)
	if err != nil {
		return nil, err
	}

	var response ListResponse[FineTuningJob]
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("fine_tuning", "jobs"), client.OptQuery(query)); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetFineTuningJob returns one fine-tuning job by identifier
func (c *Client) GetFineTuningJob(ctx context.Context, id string) (*FineTuningJob, error) {
	var response FineTuningJob
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("fine_tuning", "jobs", id)); err != nil {
		return nil, err
	}
	return &response, nil
}

// CancelFineTuningJob cancels a running fine-tuning job
func (c *Client) CancelFineTuningJob(ctx context.Context, id string) (*FineTuningJob, error) {
	var response FineTuningJob
	if err := c.DoWithContext(ctx, client.NewRequestEx(http.MethodPost, client.ContentTypeJson), &response, client.OptPath("fine_tuning", "jobs", id, "cancel")); err != nil {
		return nil, err
	}
	return &response, nil
}

// ListFineTuningEvents returns the event history for a fine-tuning job,
// paginated
func (c *Client) ListFineTuningEvents(ctx context.Context, id string, opts ...opt.Opt) ([]FineTuningEvent, error) {
	query, err := listQuery(opts...)
	if err != nil {
		return nil, err
	}

	var response ListResponse[FineTuningEvent]
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("fine_tuning", "jobs", id, "events"), client.OptQuery(query)); err != nil {
		return nil, err
	}
	return response.Data, nil
}
