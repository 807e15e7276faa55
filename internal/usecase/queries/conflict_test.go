//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"salon-assist/internal/domain/conflict"
	"salon-assist/internal/domain/request"
	"salon-assist/internal/pkg/errs"
	"salon-assist/internal/usecase/queries"
	queriesmock "salon-assist/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, date time.Time, start, end string) request.TimeWindow {
	t.Helper()
	s, err := request.ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := request.ParseTimeOfDay(end)
	require.NoError(t, err)
	w, err := request.NewTimeWindow(date, s, e)
	require.NoError(t, err)
	return w
}

func TestListConflicts(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("overlap is reported grouped by request", func(t *testing.T) {
		partyID := uuid.New()
		requestID := uuid.New()
		appointmentID := uuid.New()

		requests := new(queriesmock.MockActiveRequestReadStore)
		requests.On("ListActive", ctx, (*uuid.UUID)(nil)).
			Return([]conflict.ActiveRequest{{
				ID:      requestID,
				PartyID: partyID,
				Window:  mustWindow(t, date, "09:00", "10:00"),
			}}, nil).Once()

		snapshots := new(queriesmock.MockAppointmentSnapshotSource)
		snapshots.On("Fetch", ctx, mock.Anything, mock.Anything).
			Return([]conflict.AppointmentSnapshot{{
				ID:      appointmentID,
				PartyID: partyID,
				Window:  mustWindow(t, date, "09:30", "10:30"),
				Status:  "booked",
			}}, nil).Once()

		q := queries.NewConflictQueries(requests, snapshots)
		result, err := q.ListConflicts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, result, 1)
		require.Len(t, result[requestID], 1)

		view := result[requestID][0]
		assert.Equal(t, appointmentID, view.AppointmentID)
		assert.Equal(t, "09:00", view.RequestStart)
		assert.Equal(t, "09:30", view.AppointmentStart)
	})

	t.Run("no requests means no snapshot fetch", func(t *testing.T) {
		requests := new(queriesmock.MockActiveRequestReadStore)
		requests.On("ListActive", ctx, (*uuid.UUID)(nil)).
			Return([]conflict.ActiveRequest{}, nil).Once()
		snapshots := new(queriesmock.MockAppointmentSnapshotSource)

		q := queries.NewConflictQueries(requests, snapshots)
		result, err := q.ListConflicts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, result)
		snapshots.AssertNotCalled(t, "Fetch")
	})

	t.Run("read failures degrade to an empty result", func(t *testing.T) {
		requests := new(queriesmock.MockActiveRequestReadStore)
		requests.On("ListActive", ctx, (*uuid.UUID)(nil)).
			Return(nil, errs.New("db unavailable")).Once()
		snapshots := new(queriesmock.MockAppointmentSnapshotSource)

		q := queries.NewConflictQueries(requests, snapshots)
		result, err := q.ListConflicts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("snapshot failures degrade to an empty result", func(t *testing.T) {
		requests := new(queriesmock.MockActiveRequestReadStore)
		requests.On("ListActive", ctx, (*uuid.UUID)(nil)).
			Return([]conflict.ActiveRequest{{
				ID:      uuid.New(),
				PartyID: uuid.New(),
				Window:  mustWindow(t, date, "09:00", "10:00"),
			}}, nil).Once()
		snapshots := new(queriesmock.MockAppointmentSnapshotSource)
		snapshots.On("Fetch", ctx, mock.Anything, mock.Anything).
			Return(nil, errs.New("calendar sync offline")).Once()

		q := queries.NewConflictQueries(requests, snapshots)
		result, err := q.ListConflicts(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestConflictsForParty(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	partyID := uuid.New()

	t.Run("probes a single window", func(t *testing.T) {
		window := mustWindow(t, date, "09:00", "10:00")

		snapshots := new(queriesmock.MockAppointmentSnapshotSource)
		snapshots.On("Fetch", ctx, []time.Time{window.Date()}, []uuid.UUID{partyID}).
			Return([]conflict.AppointmentSnapshot{
				{ID: uuid.New(), PartyID: partyID, Window: mustWindow(t, date, "09:30", "10:30"), Status: "booked"},
				{ID: uuid.New(), PartyID: partyID, Window: mustWindow(t, date, "10:00", "11:00"), Status: "booked"},
			}, nil).Once()

		q := queries.NewConflictQueries(new(queriesmock.MockActiveRequestReadStore), snapshots)
		views, err := q.ConflictsForParty(ctx, partyID, window)
		require.NoError(t, err)
		// The back-to-back 10:00 appointment is not an overlap
		require.Len(t, views, 1)
		assert.Equal(t, "09:30", views[0].AppointmentStart)
	})

	t.Run("fetch failure yields no warnings", func(t *testing.T) {
		window := mustWindow(t, date, "09:00", "10:00")
		snapshots := new(queriesmock.MockAppointmentSnapshotSource)
		snapshots.On("Fetch", ctx, mock.Anything, mock.Anything).
			Return(nil, errs.New("calendar sync offline")).Once()

		q := queries.NewConflictQueries(new(queriesmock.MockActiveRequestReadStore), snapshots)
		views, err := q.ConflictsForParty(ctx, partyID, window)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
