//go:build unit

package builder

import (
	"time"

	"github.com/google/uuid"

	"salon-assist/internal/domain/request"
	"salon-assist/internal/usecase/commands"
	"salon-assist/internal/usecase/queries"
)

// RequestBuilder assembles assistant requests in any lifecycle state. The
// defaults describe a fresh pending request for tomorrow morning.
type RequestBuilder struct {
	ID                  uuid.UUID
	StylistID           uuid.UUID
	AssistantID         *uuid.UUID
	LocationID          uuid.UUID
	ServiceID           uuid.UUID
	ClientName          string
	Notes               string
	Date                time.Time
	StartTime           string
	EndTime             string
	Status              request.Status
	AssignedAt          *time.Time
	AcceptedAt          *time.Time
	DeclinedBy          []uuid.UUID
	ResponseWindowHours int
	ParentRequestID     *uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func NewRequestBuilder() *RequestBuilder {
	now := time.Now()
	return &RequestBuilder{
		ID:                  uuid.New(),
		StylistID:           uuid.New(),
		LocationID:          uuid.New(),
		ServiceID:           uuid.New(),
		ClientName:          "Dana Winters",
		Date:                now.AddDate(0, 0, 1).Truncate(24 * time.Hour),
		StartTime:           "09:00",
		EndTime:             "10:30",
		Status:              request.StatusPending,
		ResponseWindowHours: request.DefaultResponseWindowHours,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func (b *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(b)
	return b
}

// Assigned moves the builder into the assigned, awaiting-response state.
func (b *RequestBuilder) Assigned(assistantID uuid.UUID, at time.Time) *RequestBuilder {
	b.Status = request.StatusAssigned
	b.AssistantID = &assistantID
	b.AssignedAt = &at
	b.AcceptedAt = nil
	return b
}

// Accepted moves the builder into the assigned-and-accepted state.
func (b *RequestBuilder) Accepted(assistantID uuid.UUID, assignedAt, acceptedAt time.Time) *RequestBuilder {
	b.Assigned(assistantID, assignedAt)
	b.AcceptedAt = &acceptedAt
	return b
}

func (b *RequestBuilder) window() request.TimeWindow {
	start, err := request.ParseTimeOfDay(b.StartTime)
	if err != nil {
		panic(err)
	}
	end, err := request.ParseTimeOfDay(b.EndTime)
	if err != nil {
		panic(err)
	}
	window, err := request.NewTimeWindow(b.Date, start, end)
	if err != nil {
		panic(err)
	}
	return window
}

func (b *RequestBuilder) BuildDomain() *request.AssistantRequest {
	return request.ReconstructAssistantRequest(
		b.ID, b.StylistID, b.AssistantID,
		b.LocationID, b.ServiceID,
		b.ClientName, request.NewNote(b.Notes), b.window(),
		b.Status, b.AssignedAt, b.AcceptedAt, b.DeclinedBy,
		b.ResponseWindowHours, b.ParentRequestID,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *RequestBuilder) BuildNewDomain() (*request.AssistantRequest, error) {
	return request.NewAssistantRequest(
		b.StylistID, b.LocationID, b.ServiceID,
		b.ClientName, b.window(), request.NewNote(b.Notes),
		b.ResponseWindowHours, b.ParentRequestID,
	)
}

func (b *RequestBuilder) BuildParams() commands.CreateRequestParams {
	var notes *string
	if b.Notes != "" {
		notes = &b.Notes
	}
	return commands.CreateRequestParams{
		LocationID:          b.LocationID,
		ServiceID:           b.ServiceID,
		ClientName:          b.ClientName,
		Date:                b.Date,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		Notes:               notes,
		ResponseWindowHours: &b.ResponseWindowHours,
		ParentRequestID:     b.ParentRequestID,
	}
}

func (b *RequestBuilder) BuildView() *queries.RequestView {
	declined := b.DeclinedBy
	if declined == nil {
		declined = []uuid.UUID{}
	}
	var notes *string
	if b.Notes != "" {
		notes = &b.Notes
	}
	return &queries.RequestView{
		ID:                  b.ID,
		StylistID:           b.StylistID,
		StylistName:         "Test Stylist",
		AssistantID:         b.AssistantID,
		LocationID:          b.LocationID,
		LocationName:        "Downtown Studio",
		ServiceID:           b.ServiceID,
		ClientName:          b.ClientName,
		Notes:               notes,
		Date:                b.Date,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		Status:              b.Status.String(),
		AssignedAt:          b.AssignedAt,
		AcceptedAt:          b.AcceptedAt,
		DeclinedBy:          declined,
		ResponseWindowHours: b.ResponseWindowHours,
		ParentRequestID:     b.ParentRequestID,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

func (b *RequestBuilder) BuildListItem() *queries.RequestListItem {
	return &queries.RequestListItem{
		ID:          b.ID,
		StylistID:   b.StylistID,
		StylistName: "Test Stylist",
		AssistantID: b.AssistantID,
		LocationID:  b.LocationID,
		ClientName:  b.ClientName,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
	}
}
