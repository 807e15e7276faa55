package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"salon-assist/internal/usecase/commands"
	"salon-assist/internal/usecase/queries"
)

type RequestResponse struct {
	ID                  uuid.UUID   `json:"id"`
	StylistID           uuid.UUID   `json:"stylistId"`
	StylistName         string      `json:"stylistName"`
	AssistantID         *uuid.UUID  `json:"assistantId,omitempty"`
	AssistantName       *string     `json:"assistantName,omitempty"`
	LocationID          uuid.UUID   `json:"locationId"`
	LocationName        string      `json:"locationName"`
	ServiceID           uuid.UUID   `json:"serviceId"`
	ClientName          string      `json:"clientName"`
	Notes               *string     `json:"notes,omitempty"`
	Date                time.Time   `json:"date"`
	StartTime           string      `json:"startTime"`
	EndTime             string      `json:"endTime"`
	Status              string      `json:"status"`
	AssignedAt          *time.Time  `json:"assignedAt,omitempty"`
	AcceptedAt          *time.Time  `json:"acceptedAt,omitempty"`
	DeclinedBy          []uuid.UUID `json:"declinedBy"`
	ResponseWindowHours int         `json:"responseWindowHours"`
	ParentRequestID     *uuid.UUID  `json:"parentRequestId,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

type RequestListResponse struct {
	ID            uuid.UUID  `json:"id"`
	StylistID     uuid.UUID  `json:"stylistId"`
	StylistName   string     `json:"stylistName"`
	AssistantID   *uuid.UUID `json:"assistantId,omitempty"`
	AssistantName *string    `json:"assistantName,omitempty"`
	LocationID    uuid.UUID  `json:"locationId"`
	ClientName    string     `json:"clientName"`
	Date          time.Time  `json:"date"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type AttentionResponse struct {
	Request   RequestListResponse `json:"request"`
	Deadline  time.Time           `json:"deadline"`
	Remaining string              `json:"remaining"`
	Overdue   bool                `json:"overdue"`
}

type AssignResponse struct {
	Request  *RequestResponse `json:"request"`
	Warnings []string         `json:"warnings"`
}

type CandidateResponse struct {
	AssistantID uuid.UUID `json:"assistantId"`
	DisplayName string    `json:"displayName"`
	Scheduled   bool      `json:"scheduled"`
	HasDeclined bool      `json:"hasDeclined"`
}

func FromRequestView(rm *queries.RequestView) *RequestResponse {
	var resp RequestResponse
	_ = copier.Copy(&resp, rm)
	if resp.DeclinedBy == nil {
		resp.DeclinedBy = []uuid.UUID{}
	}
	return &resp
}

func FromRequestListItem(rm *queries.RequestListItem) *RequestListResponse {
	var resp RequestListResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromAttentionItem(rm *queries.AttentionItem) *AttentionResponse {
	return &AttentionResponse{
		Request:   *FromRequestListItem(&rm.Request),
		Deadline:  rm.Deadline,
		Remaining: rm.Remaining.String(),
		Overdue:   rm.Overdue,
	}
}

func FromCandidates(rms []commands.AssignmentCandidate) []CandidateResponse {
	response := make([]CandidateResponse, len(rms))
	for i, rm := range rms {
		response[i] = CandidateResponse{
			AssistantID: rm.AssistantID,
			DisplayName: rm.DisplayName,
			Scheduled:   rm.Scheduled,
			HasDeclined: rm.HasDeclined,
		}
	}
	return response
}

func FromResolveResult(rm *commands.ResolveResult) *AssignResponse {
	warnings := rm.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return &AssignResponse{
		Request:  FromRequestView(rm.Request),
		Warnings: warnings,
	}
}
