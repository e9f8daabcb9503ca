package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	ollama "github.com/mutablelogic/go-llmclient/pkg/ollama"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_models_001(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tags":
			w.Write([]byte(`{"models":[{"name":"llama3:latest","size":4661224676,"digest":"abc123"}]}`))
		case "/show":
			var req struct {
				Model string `json:"model"`
			}
			assert.NoError(json.NewDecoder(r.Body).Decode(&req))
			assert.Equal("llama3:latest", req.Model)
			w.Write([]byte(`{"modelfile":"FROM llama3","details":{"family":"llama","format":"gguf"}}`))
		case "/version":
			w.Write([]byte(`{"version":"0.5.1"}`))
		case "/delete":
			assert.Equal(http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, `{"error":"unknown path"}`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)

	models, err := c.ListModels(context.Background())
	assert.NoError(err)
	assert.Len(models, 1)
	assert.Equal("llama3:latest", models[0].Name)

	// The show endpoint does not echo the name back
	model, err := c.GetModel(context.Background(), "llama3:latest")
	assert.NoError(err)
	assert.Equal("llama3:latest", model.Name)
	assert.Equal("llama", model.Details.Family)

	version, err := c.Version(context.Background())
	assert.NoError(err)
	assert.Equal("0.5.1", version)

	assert.NoError(c.DeleteModel(context.Background(), "llama3:latest"))
}

func Test_models_002(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/pull", r.URL.Path)
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte("{\"status\":\"pulling manifest\"}\n"))
		w.Write([]byte("{\"status\":\"downloading\",\"digest\":\"sha256:abc\",\"total\":1000,\"completed\":500}\n"))
		w.Write([]byte("{\"status\":\"success\"}\n"))
	}))
	defer srv.Close()

	var progress []ollama.PullProgress
	err := newClient(t, srv.URL).PullModel(context.Background(), "llama3", func(p ollama.PullProgress) error {
		progress = append(progress, p)
		return nil
	})
	assert.NoError(err)
	assert.Len(progress, 3)
	assert.Equal("pulling manifest", progress[0].Status)
	assert.Equal(int64(500), progress[1].Completed)
	assert.Equal("success", progress[2].Status)
}
