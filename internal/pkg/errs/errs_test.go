//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"dinetime-api/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("sentinel")
	cause := errs.New("underlying cause")

	t.Run("mark is visible to errors.Is", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("cause chain stays intact", func(t *testing.T) {
		err := errs.Mark(errs.Wrap(cause, "context"), sentinel)
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("message is the cause's message", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)
		assert.Equal(t, "underlying cause", err.Error())
	})

	t.Run("nil cause yields the sentinel itself", func(t *testing.T) {
		require.ErrorIs(t, errs.Mark(nil, sentinel), sentinel)
	})

	t.Run("stacked marks are all visible", func(t *testing.T) {
		other := errs.New("second sentinel")
		err := errs.Mark(errs.Mark(cause, sentinel), other)
		assert.ErrorIs(t, err, sentinel)
		assert.ErrorIs(t, err, other)
	})

	t.Run("unrelated sentinel does not match", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)
		assert.False(t, errors.Is(err, errs.New("unrelated")))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, errs.Wrap(nil, "context"))
	})

	t.Run("wrapped error keeps its identity", func(t *testing.T) {
		cause := errs.New("boom")
		err := errs.Wrap(cause, "context")
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "context")
	})
}
