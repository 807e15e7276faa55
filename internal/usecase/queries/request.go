package queries

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"salon-assist/internal/domain/staff"
	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/clock"
	"salon-assist/internal/pkg/errs"
)

var (
	ErrRequestNotFound  = errs.New("request not found")
	ErrPermissionDenied = errs.New("permission denied")
)

type RequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	ListByStylist(ctx context.Context, stylistID uuid.UUID, locationID *uuid.UUID) ([]*RequestListItem, error)
	ListByAssistant(ctx context.Context, assistantID uuid.UUID, locationID *uuid.UUID) ([]*RequestListItem, error)
	ListAll(ctx context.Context, locationID *uuid.UUID) ([]*RequestListItem, error)
	ListAwaitingResponse(ctx context.Context) ([]*AwaitingResponseRow, error)
}

type RequestQueries interface {
	GetByID(ctx context.Context, actor staff.Actor, id uuid.UUID) (*RequestView, error)
	ListByStylist(ctx context.Context, stylistID uuid.UUID, locationID *uuid.UUID) ([]*RequestListItem, error)
	ListByAssistant(ctx context.Context, assistantID uuid.UUID, locationID *uuid.UUID) ([]*RequestListItem, error)
	ListAll(ctx context.Context, locationID *uuid.UUID) ([]*RequestListItem, error)
	ListNeedingAttention(ctx context.Context) ([]*AttentionItem, error)
}

type requestQueriesImpl struct {
	store RequestReadStore
	clock clock.Clock
}

func NewRequestQueries(store RequestReadStore, clock clock.Clock) RequestQueries {
	return &requestQueriesImpl{store: store, clock: clock}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, actor staff.Actor, id uuid.UUID) (*RequestView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if !canViewRequest(actor, view) {
		return nil, ErrPermissionDenied
	}
	return view, nil
}

func (q *requestQueriesImpl) ListByStylist(ctx context.Context, stylistID uuid.UUID, locationID *uuid.UUID) ([]*RequestListItem, error) {
	return q.store.ListByStylist(ctx, stylistID, locationID)
}

func (q *requestQueriesImpl) ListByAssistant(ctx context.Context, assistantID uuid.UUID, locationID *uuid.UUID) ([]*RequestListItem, error) {
	return q.store.ListByAssistant(ctx, assistantID, locationID)
}

func (q *requestQueriesImpl) ListAll(ctx context.Context, locationID *uuid.UUID) ([]*RequestListItem, error) {
	return q.store.ListAll(ctx, locationID)
}

// ListNeedingAttention returns assigned-unaccepted requests with their
// response deadlines, overdue first, then by least time remaining.
func (q *requestQueriesImpl) ListNeedingAttention(ctx context.Context) ([]*AttentionItem, error) {
	rows, err := q.store.ListAwaitingResponse(ctx)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	items := make([]*AttentionItem, len(rows))
	for i, row := range rows {
		deadline := row.AssignedAt.Add(time.Duration(row.ResponseWindowHours) * time.Hour)
		remaining := deadline.Sub(now)
		items[i] = &AttentionItem{
			Request:   row.Item,
			Deadline:  deadline,
			Remaining: remaining,
			Overdue:   remaining < 0,
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Remaining < items[j].Remaining
	})

	return items, nil
}

func canViewRequest(actor staff.Actor, view *RequestView) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.ID == view.StylistID {
		return true
	}
	if view.AssistantID != nil && *view.AssistantID == actor.ID {
		return true
	}
	for _, id := range view.DeclinedBy {
		if id == actor.ID {
			return true
		}
	}
	return false
}
