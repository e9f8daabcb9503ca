package opt_test

import (
	"errors"
	"testing"

	// Packages
	opt "github.com/mutablelogic/go-llmclient/pkg/opt"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_opt_001(t *testing.T) {
	assert := assert.New(t)

	o, err := opt.Apply(
		opt.WithString("order", "desc"),
		opt.WithUint("limit", 20),
	)
	assert.NoError(err)
	assert.Equal("desc", o.GetString("order"))
	assert.Equal(uint(20), o.GetUint("limit"))
	assert.True(o.Has("limit"))
	assert.False(o.Has("after"))
}

func Test_opt_002(t *testing.T) {
	assert := assert.New(t)

	// Unset keys are omitted from the query projection entirely
	o, err := opt.Apply(opt.WithUint("limit", 20))
	assert.NoError(err)

	query := o.Query("limit", "order", "after", "before")
	assert.Equal("20", query.Get("limit"))
	_, exists := query["after"]
	assert.False(exists)
	_, exists = query["order"]
	assert.False(exists)
}

func Test_opt_003(t *testing.T) {
	assert := assert.New(t)

	// A later option replaces an earlier one for the same key
	o, err := opt.Apply(
		opt.WithUint("limit", 20),
		opt.WithUint("limit", 5),
	)
	assert.NoError(err)
	assert.Equal(uint(5), o.GetUint("limit"))

	// An erroring option aborts application
	fail := errors.New("bad option")
	_, err = opt.Apply(opt.WithUint("limit", 1), opt.Error(fail))
	assert.ErrorIs(err, fail)
}
