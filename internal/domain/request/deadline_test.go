//go:build unit

package request_test

import (
	"testing"
	"time"

	"salon-assist/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseDeadline(t *testing.T) {
	assistantID := uuid.New()
	assignedAt := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)

	t.Run("deadline is assignment time plus window", func(t *testing.T) {
		rec := builder.NewRequestBuilder().Assigned(assistantID, assignedAt).BuildDomain()

		deadline, ok := rec.ResponseDeadline()
		require.True(t, ok)
		assert.Equal(t, assignedAt.Add(2*time.Hour), deadline)
	})

	t.Run("custom response window", func(t *testing.T) {
		b := builder.NewRequestBuilder().Assigned(assistantID, assignedAt)
		b.ResponseWindowHours = 6
		rec := b.BuildDomain()

		deadline, ok := rec.ResponseDeadline()
		require.True(t, ok)
		assert.Equal(t, assignedAt.Add(6*time.Hour), deadline)
	})

	t.Run("no deadline while pending", func(t *testing.T) {
		rec := builder.NewRequestBuilder().BuildDomain()

		_, ok := rec.ResponseDeadline()
		assert.False(t, ok)
		assert.False(t, rec.IsResponseOverdue(assignedAt.Add(48*time.Hour)))
	})

	t.Run("no deadline after acceptance", func(t *testing.T) {
		rec := builder.NewRequestBuilder().
			Accepted(assistantID, assignedAt, assignedAt.Add(time.Hour)).
			BuildDomain()

		_, ok := rec.ResponseDeadline()
		assert.False(t, ok)
	})

	t.Run("remaining and overdue around the boundary", func(t *testing.T) {
		rec := builder.NewRequestBuilder().Assigned(assistantID, assignedAt).BuildDomain()
		deadline := assignedAt.Add(2 * time.Hour)

		remaining, ok := rec.ResponseRemaining(assignedAt.Add(90 * time.Minute))
		require.True(t, ok)
		assert.Equal(t, 30*time.Minute, remaining)
		assert.False(t, rec.IsResponseOverdue(deadline))
		assert.True(t, rec.IsResponseOverdue(deadline.Add(time.Second)))
	})
}
