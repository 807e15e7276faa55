package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salon-assist/internal/domain/request"
)

// Write-side ports. Every transition method is a guarded conditional
// update: the SQL WHERE clause restates the expected prior state, and a
// zero-row match surfaces as a STALE_STATE repository error. That guard is
// the sole concurrency-correctness mechanism; no in-process locks exist.
type RequestRepository interface {
	Create(ctx context.Context, req *request.AssistantRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*request.AssistantRequest, error)

	// Assign: legal from pending, or assigned with accepted_at null.
	Assign(ctx context.Context, id, assistantID uuid.UUID, now time.Time) error
	// Accept: legal when assigned to this assistant and accepted_at null.
	Accept(ctx context.Context, id, assistantID uuid.UUID, now time.Time) error
	// Decline: same precondition as Accept; appends to the decline log
	// idempotently and returns the request to pending in one transaction.
	Decline(ctx context.Context, id, assistantID uuid.UUID, now time.Time) error
	// Cancel: legal from pending or assigned.
	Cancel(ctx context.Context, id uuid.UUID, now time.Time) error
	// Complete: legal from assigned with accepted_at set.
	Complete(ctx context.Context, id uuid.UUID, now time.Time) error
}

type LocationSnapshot struct {
	ID   uuid.UUID
	Name string
}

type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LocationSnapshot, error)
}

// WorkingDay is one weekday's schedule entry for an assistant at a
// location. Weekday follows time.Weekday (Sunday = 0).
type WorkingDay struct {
	LocationID uuid.UUID
	Weekday    time.Weekday
	Works      bool
}

type AssistantSnapshot struct {
	ID          uuid.UUID
	DisplayName string
	IsActive    bool
	WorkingDays []WorkingDay
}

func (a *AssistantSnapshot) WorksAt(locationID uuid.UUID, weekday time.Weekday) bool {
	for _, d := range a.WorkingDays {
		if d.LocationID == locationID && d.Weekday == weekday {
			return d.Works
		}
	}
	return false
}

// AvailabilityRepository is the external availability input: active
// assistants and their per-location weekly schedules. How those schedules
// are computed is not this service's concern.
type AvailabilityRepository interface {
	FindAssistant(ctx context.Context, id uuid.UUID) (*AssistantSnapshot, error)
	ListActiveAssistants(ctx context.Context) ([]*AssistantSnapshot, error)
}

// NotificationRepository enqueues outbox jobs for an external dispatcher.
// Enqueue failures are logged and never block a state transition.
type NotificationRepository interface {
	Enqueue(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
