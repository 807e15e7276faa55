package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type RequestView struct {
	ID                  uuid.UUID  `json:"id"`
	StylistID           uuid.UUID  `json:"stylist_id"`
	StylistName         string     `json:"stylist_name"`
	AssistantID         *uuid.UUID `json:"assistant_id,omitempty"`
	AssistantName       *string    `json:"assistant_name,omitempty"`
	LocationID          uuid.UUID  `json:"location_id"`
	LocationName        string     `json:"location_name"`
	ServiceID           uuid.UUID  `json:"service_id"`
	ClientName          string     `json:"client_name"`
	Notes               *string    `json:"notes,omitempty"`
	Date                time.Time  `json:"date"`
	StartTime           string     `json:"start_time"`
	EndTime             string     `json:"end_time"`
	Status              string     `json:"status"`
	AssignedAt          *time.Time `json:"assigned_at,omitempty"`
	AcceptedAt          *time.Time `json:"accepted_at,omitempty"`
	DeclinedBy          []uuid.UUID `json:"declined_by"`
	ResponseWindowHours int        `json:"response_window_hours"`
	ParentRequestID     *uuid.UUID `json:"parent_request_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type RequestListItem struct {
	ID            uuid.UUID  `json:"id"`
	StylistID     uuid.UUID  `json:"stylist_id"`
	StylistName   string     `json:"stylist_name"`
	AssistantID   *uuid.UUID `json:"assistant_id,omitempty"`
	AssistantName *string    `json:"assistant_name,omitempty"`
	LocationID    uuid.UUID  `json:"location_id"`
	ClientName    string     `json:"client_name"`
	Date          time.Time  `json:"date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AwaitingResponseRow is a list item plus the fields needed to compute the
// response deadline; produced by the read store, consumed by the attention
// queue.
type AwaitingResponseRow struct {
	Item                RequestListItem
	AssignedAt          time.Time
	ResponseWindowHours int
}

// AttentionItem is one entry in the admin "needs attention" queue: an
// assigned request whose assistant has not responded yet.
type AttentionItem struct {
	Request   RequestListItem `json:"request"`
	Deadline  time.Time       `json:"deadline"`
	Remaining time.Duration   `json:"remaining"`
	Overdue   bool            `json:"overdue"`
}

type ConflictView struct {
	RequestID        uuid.UUID `json:"request_id"`
	AppointmentID    uuid.UUID `json:"appointment_id"`
	Date             time.Time `json:"date"`
	RequestStart     string    `json:"request_start"`
	RequestEnd       string    `json:"request_end"`
	AppointmentStart string    `json:"appointment_start"`
	AppointmentEnd   string    `json:"appointment_end"`
}

type AuthorizedStaffView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
}
