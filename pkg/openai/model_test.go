package openai_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	// Packages
	openai "github.com/mutablelogic/go-llmclient/pkg/openai"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_models_001(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models":
			w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4","object":"model","owned_by":"openai"},{"id":"gpt-3.5-turbo","object":"model","owned_by":"openai"}]}`))
		case "/models/gpt-4":
			w.Write([]byte(`{"id":"gpt-4","object":"model","owned_by":"openai"}`))
		default:
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	models, err := c.ListModels(context.Background())
	assert.NoError(err)
	assert.Len(models, 2)
	assert.Equal("gpt-4", models[0].Id)

	model, err := c.GetModel(context.Background(), "gpt-4")
	assert.NoError(err)
	assert.Equal("openai", model.OwnedBy)
}

func Test_pagination_001(t *testing.T) {
	assert := assert.New(t)

	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"object":"list","data":[],"has_more":false}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)

	// With no options the provider defaults are sent, and cursors are
	// omitted entirely
	_, err := c.ListBatches(context.Background())
	assert.NoError(err)
	assert.Equal("20", query.Get("limit"))
	assert.Equal("desc", query.Get("order"))
	_, exists := query["after"]
	assert.False(exists)
	_, exists = query["before"]
	assert.False(exists)
}

func Test_pagination_002(t *testing.T) {
	assert := assert.New(t)

	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"object":"list","data":[],"has_more":false}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	_, err := c.ListFineTuningJobs(context.Background(),
		openai.WithLimit(5),
		openai.WithOrder("asc"),
		openai.WithAfter("ftjob-100"),
	)
	assert.NoError(err)
	assert.Equal("5", query.Get("limit"))
	assert.Equal("asc", query.Get("order"))
	assert.Equal("ftjob-100", query.Get("after"))

	// An invalid order is rejected before any request is made
	_, err = c.ListFineTuningJobs(context.Background(), openai.WithOrder("sideways"))
	assert.Error(err)
}

func Test_assistants_001(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The assistants surface requires the beta header
		assert.Equal("assistants=v2", r.Header.Get("OpenAI-Beta"))

		switch {
		case r.URL.Path == "/assistants" && r.Method == http.MethodPost:
			w.Write([]byte(`{"id":"asst-1","object":"assistant","model":"gpt-4","name":"helper"}`))
		case r.URL.Path == "/assistants/asst-1" && r.Method == http.MethodDelete:
			w.Write([]byte(`{"id":"asst-1","object":"assistant.deleted","deleted":true}`))
		default:
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	assistant, err := c.CreateAssistant(context.Background(), openai.AssistantRequest{
		Model: "gpt-4",
		Name:  "helper",
	})
	assert.NoError(err)
	assert.Equal("asst-1", assistant.Id)
	assert.NoError(c.DeleteAssistant(context.Background(), "asst-1"))
}
