package queries

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"salon-assist/internal/domain/conflict"
	"salon-assist/internal/domain/request"
)

type ActiveRequestReadStore interface {
	ListActive(ctx context.Context, locationID *uuid.UUID) ([]conflict.ActiveRequest, error)
}

// AppointmentSnapshotSource fetches externally synced calendar entries,
// already filtered to non-cancelled appointments for the given dates and
// parties.
type AppointmentSnapshotSource interface {
	Fetch(ctx context.Context, dates []time.Time, partyIDs []uuid.UUID) ([]conflict.AppointmentSnapshot, error)
}

type ConflictQueries interface {
	// ListConflicts cross-references all active requests against the
	// appointment calendar, grouped by request id.
	ListConflicts(ctx context.Context, locationID *uuid.UUID) (map[uuid.UUID][]ConflictView, error)
	// ConflictsForParty checks one party's calendar against a single
	// window; used for advisory warnings before a manual assignment.
	ConflictsForParty(ctx context.Context, partyID uuid.UUID, window request.TimeWindow) ([]ConflictView, error)
}

type conflictQueriesImpl struct {
	requests  ActiveRequestReadStore
	snapshots AppointmentSnapshotSource
}

func NewConflictQueries(requests ActiveRequestReadStore, snapshots AppointmentSnapshotSource) ConflictQueries {
	return &conflictQueriesImpl{requests: requests, snapshots: snapshots}
}

// Conflict visibility is advisory: any upstream failure degrades to "no
// conflicts reported" instead of propagating a hard error.
func (q *conflictQueriesImpl) ListConflicts(ctx context.Context, locationID *uuid.UUID) (map[uuid.UUID][]ConflictView, error) {
	active, err := q.requests.ListActive(ctx, locationID)
	if err != nil {
		slog.Warn("conflict detection: failed to load active requests", "error", err.Error())
		return map[uuid.UUID][]ConflictView{}, nil
	}
	if len(active) == 0 {
		return map[uuid.UUID][]ConflictView{}, nil
	}

	dates, parties := narrowSnapshotQuery(active)
	snapshots, err := q.snapshots.Fetch(ctx, dates, parties)
	if err != nil {
		slog.Warn("conflict detection: failed to fetch appointment snapshots", "error", err.Error())
		return map[uuid.UUID][]ConflictView{}, nil
	}

	detected := conflict.Detect(active, snapshots)
	result := make(map[uuid.UUID][]ConflictView, len(detected))
	for requestID, conflicts := range detected {
		views := make([]ConflictView, len(conflicts))
		for i, c := range conflicts {
			views[i] = toConflictView(c)
		}
		result[requestID] = views
	}
	return result, nil
}

func (q *conflictQueriesImpl) ConflictsForParty(ctx context.Context, partyID uuid.UUID, window request.TimeWindow) ([]ConflictView, error) {
	snapshots, err := q.snapshots.Fetch(ctx, []time.Time{window.Date()}, []uuid.UUID{partyID})
	if err != nil {
		slog.Warn("conflict detection: failed to fetch appointment snapshots", "party_id", partyID, "error", err.Error())
		return nil, nil
	}

	probe := []conflict.ActiveRequest{{ID: uuid.Nil, PartyID: partyID, Window: window}}
	detected := conflict.Detect(probe, snapshots)

	views := make([]ConflictView, 0, len(detected[uuid.Nil]))
	for _, c := range detected[uuid.Nil] {
		views = append(views, toConflictView(c))
	}
	return views, nil
}

// narrowSnapshotQuery derives the distinct dates and party ids present in
// the active set, bounding the calendar read.
func narrowSnapshotQuery(active []conflict.ActiveRequest) ([]time.Time, []uuid.UUID) {
	dateSet := make(map[time.Time]struct{})
	partySet := make(map[uuid.UUID]struct{})
	for _, r := range active {
		dateSet[r.Window.Date()] = struct{}{}
		partySet[r.PartyID] = struct{}{}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	parties := make([]uuid.UUID, 0, len(partySet))
	for p := range partySet {
		parties = append(parties, p)
	}
	return dates, parties
}

func toConflictView(c conflict.Conflict) ConflictView {
	return ConflictView{
		RequestID:        c.RequestID,
		AppointmentID:    c.AppointmentID,
		Date:             c.RequestWindow.Date(),
		RequestStart:     c.RequestWindow.Start().String(),
		RequestEnd:       c.RequestWindow.End().String(),
		AppointmentStart: c.AppointmentWindow.Start().String(),
		AppointmentEnd:   c.AppointmentWindow.End().String(),
	}
}
