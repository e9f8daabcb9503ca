package openai

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ListResponse is the envelope for cursor-paginated listings
type ListResponse[T any] struct {
	Object  string `json:"object,omitempty"`
	Data    []T    `json:"data"`
	FirstId string `json:"first_id,omitempty"`
	LastId  string `json:"last_id,omitempty"`
	HasMore bool   `json:"has_more,omitempty"`
}

// DeleteStatus confirms deletion of an object
type DeleteStatus struct {
	Id      string `json:"id"`
	Object  string `json:"object,omitempty"`
	Deleted bool   `json:"deleted"`
}
