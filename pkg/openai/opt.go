package openai

import (
	"fmt"
	"net/url"

	// Packages
	opt "github.com/mutablelogic/go-llmclient/pkg/opt"
)

////////////////////////////////////////////////////////////////////////////////
// OPENAI OPTIONS

// WithLimit sets the maximum number of results per page
func WithLimit(limit uint) opt.Opt {
	return opt.WithUint("limit", limit)
}

// WithOrder sets the sort order by creation time, "asc" or "desc"
func WithOrder(order string) opt.Opt {
	if order != "asc" && order != "desc" {
		return opt.Error(fmt.Errorf("order must be asc or desc, got %q", order))
	}
	return opt.WithString("order", order)
}

// WithAfter sets the cursor for the next page of results
func WithAfter(cursor string) opt.Opt {
	return opt.WithString("after", cursor)
}

// WithBefore sets the cursor for the previous page of results
func WithBefore(cursor string) opt.Opt {
	return opt.WithString("before", cursor)
}

// WithPurpose filters file listings by purpose
func WithPurpose(purpose string) opt.Opt {
	return opt.WithString("purpose", purpose)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// listQuery builds the pagination query for a listing call: the provider
// defaults are sent explicitly, cursors only when the caller set one
func listQuery(opts ...opt.Opt) (url.Values, error) {
	applied := make([]opt.Opt, 0, len(opts)+2)
	applied = append(applied, WithLimit(defaultPageLimit), WithOrder(defaultPageOrder))
	applied = append(applied, opts...)
	o, err := opt.Apply(applied...)
	if err != nil {
		return nil, err
	}
	return o.Query("limit", "order", "after", "before", "purpose"), nil
}
