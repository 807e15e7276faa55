package request

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyClientName = errors.New("client name is required")
	ErrInvalidStatus   = errors.New("invalid request status")
)

// DefaultResponseWindowHours is how long an assigned assistant has to
// respond when no explicit window is set on the request.
const DefaultResponseWindowHours = 2

// AssistantRequest is one stylist's ask for one assistant's help during a
// fixed time window. It is mutated exclusively through guarded store
// transitions; the entity itself only validates construction and answers
// questions about its current state.
type AssistantRequest struct {
	id                  uuid.UUID
	stylistID           uuid.UUID
	assistantID         *uuid.UUID
	locationID          uuid.UUID
	serviceID           uuid.UUID
	clientName          string
	notes               Note
	window              TimeWindow
	status              Status
	assignedAt          *time.Time
	acceptedAt          *time.Time
	declinedBy          []uuid.UUID
	responseWindowHours int
	parentRequestID     *uuid.UUID
	createdAt           time.Time
	updatedAt           time.Time
}

func NewAssistantRequest(
	stylistID, locationID, serviceID uuid.UUID,
	clientName string,
	window TimeWindow,
	notes Note,
	responseWindowHours int,
	parentRequestID *uuid.UUID,
) (*AssistantRequest, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, ErrEmptyClientName
	}
	if responseWindowHours <= 0 {
		responseWindowHours = DefaultResponseWindowHours
	}

	return &AssistantRequest{
		id:                  uuid.New(),
		stylistID:           stylistID,
		locationID:          locationID,
		serviceID:           serviceID,
		clientName:          clientName,
		notes:               notes,
		window:              window,
		status:              StatusPending,
		responseWindowHours: responseWindowHours,
		parentRequestID:     parentRequestID,
	}, nil
}

func ReconstructAssistantRequest(
	id, stylistID uuid.UUID,
	assistantID *uuid.UUID,
	locationID, serviceID uuid.UUID,
	clientName string,
	notes Note,
	window TimeWindow,
	status Status,
	assignedAt, acceptedAt *time.Time,
	declinedBy []uuid.UUID,
	responseWindowHours int,
	parentRequestID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *AssistantRequest {
	return &AssistantRequest{
		id:                  id,
		stylistID:           stylistID,
		assistantID:         assistantID,
		locationID:          locationID,
		serviceID:           serviceID,
		clientName:          clientName,
		notes:               notes,
		window:              window,
		status:              status,
		assignedAt:          assignedAt,
		acceptedAt:          acceptedAt,
		declinedBy:          declinedBy,
		responseWindowHours: responseWindowHours,
		parentRequestID:     parentRequestID,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (r *AssistantRequest) ID() uuid.UUID               { return r.id }
func (r *AssistantRequest) StylistID() uuid.UUID        { return r.stylistID }
func (r *AssistantRequest) AssistantID() *uuid.UUID     { return r.assistantID }
func (r *AssistantRequest) LocationID() uuid.UUID       { return r.locationID }
func (r *AssistantRequest) ServiceID() uuid.UUID        { return r.serviceID }
func (r *AssistantRequest) ClientName() string          { return r.clientName }
func (r *AssistantRequest) Notes() Note                 { return r.notes }
func (r *AssistantRequest) Window() TimeWindow          { return r.window }
func (r *AssistantRequest) Status() Status              { return r.status }
func (r *AssistantRequest) AssignedAt() *time.Time      { return r.assignedAt }
func (r *AssistantRequest) AcceptedAt() *time.Time      { return r.acceptedAt }
func (r *AssistantRequest) DeclinedBy() []uuid.UUID     { return r.declinedBy }
func (r *AssistantRequest) ResponseWindowHours() int    { return r.responseWindowHours }
func (r *AssistantRequest) ParentRequestID() *uuid.UUID { return r.parentRequestID }
func (r *AssistantRequest) CreatedAt() time.Time        { return r.createdAt }
func (r *AssistantRequest) UpdatedAt() time.Time        { return r.updatedAt }

func (r *AssistantRequest) IsPending() bool  { return r.status == StatusPending }
func (r *AssistantRequest) IsTerminal() bool { return r.status.IsTerminal() }

// IsAwaitingResponse reports whether an assistant holds this request but
// has not yet accepted it.
func (r *AssistantRequest) IsAwaitingResponse() bool {
	return r.status == StatusAssigned && r.acceptedAt == nil
}

func (r *AssistantRequest) IsAccepted() bool {
	return r.status == StatusAssigned && r.acceptedAt != nil
}

// Assignable reports whether a (re)assignment is currently legal: the
// request is pending, or assigned but not yet accepted.
func (r *AssistantRequest) Assignable() bool {
	return r.IsPending() || r.IsAwaitingResponse()
}

func (r *AssistantRequest) IsAssignedTo(assistantID uuid.UUID) bool {
	return r.assistantID != nil && *r.assistantID == assistantID
}

func (r *AssistantRequest) HasDeclined(assistantID uuid.UUID) bool {
	for _, id := range r.declinedBy {
		if id == assistantID {
			return true
		}
	}
	return false
}

// WindowPassed reports whether the requested slot is already behind now.
func (r *AssistantRequest) WindowPassed(now time.Time) bool {
	return now.After(r.window.EndAt())
}
