/*
ollama implements an API client for a local ollama server
https://github.com/ollama/ollama/blob/main/docs/api.md
*/
package ollama

import (
	// Packages
	client "github.com/mutablelogic/go-llmclient"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultEndPoint = "http://localhost:11434/api"
	defaultName     = "ollama"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. The endpoint should be something like
// "http://localhost:11434/api"; when empty the local default is used.
func New(endPoint string, opts ...client.ClientOpt) (*Client, error) {
	if endPoint == "" {
		endPoint = defaultEndPoint
	}

	// Create client
	client, err := client.New(append(opts, client.OptEndpoint(endPoint))...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{client}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Return the name of the provider
func (*Client) Name() string {
	return defaultName
}
