//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"salon-assist/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("state changed")

	t.Run("mark is visible to the standard library errors.Is", func(t *testing.T) {
		cause := errs.New("update affected zero rows")
		err := errs.Mark(cause, sentinel)

		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("cause stays in the chain alongside the mark", func(t *testing.T) {
		cause := errs.New("db failure")
		wrapped := errs.Wrap(cause, "failed to accept request")
		err := errs.Mark(wrapped, sentinel)

		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("message comes from the cause, not the mark", func(t *testing.T) {
		err := errs.Mark(errs.New("update affected zero rows"), sentinel)
		assert.Equal(t, "update affected zero rows", err.Error())
	})

	t.Run("marking nil returns the mark itself", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("stacked marks all hold", func(t *testing.T) {
		second := errs.New("operation failed")
		err := errs.Mark(errs.Mark(errs.New("boom"), sentinel), second)

		assert.True(t, errors.Is(err, sentinel))
		assert.True(t, errors.Is(err, second))
	})
}

func TestWrap(t *testing.T) {
	t.Run("wrapping nil stays nil", func(t *testing.T) {
		assert.NoError(t, errs.Wrap(nil, "context"))
	})
}
