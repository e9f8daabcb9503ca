/*
openai implements an API client for OpenAI
https://platform.openai.com/docs/api-reference
*/
package openai

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
	endPoint    = "https://api.openai.com/v1"
	defaultName = "openai"
)

// Listing endpoints page with an opaque cursor; the provider default
// page size and ordering are sent explicitly when the caller gives none
const (
	defaultPageLimit = 20
	defaultPageOrder = "desc"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client
func New(ApiKey string, opts ...client.ClientOpt) (*Client, error) {
	// Create client; caller options are applied last so the endpoint
	// can be overridden for a compatible provider
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptReqToken(client.Token{
			Scheme: client.Bearer,
			Value:  ApiKey,
		}),
	}, opts...)
	client, err := client.New(opts...)
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

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// OptOrganization sets the organization header for all requests, for
// accounts which belong to multiple organizations
func OptOrganization(v string) client.ClientOpt {
	return client.OptHeader("OpenAI-Organization", v)
}

// OptProject sets the project header for all requests
func OptProject(v string) client.ClientOpt {
	return client.OptHeader("OpenAI-Project", v)
}
