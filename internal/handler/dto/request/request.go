package request

import (
	"time"

	"github.com/google/uuid"

	"salon-assist/internal/usecase/commands"
)

const dateLayout = "2006-01-02"

type CreateAssistRequest struct {
	LocationID          uuid.UUID  `json:"location_id" binding:"required"`
	ServiceID           uuid.UUID  `json:"service_id" binding:"required"`
	ClientName          string     `json:"client_name" binding:"required"`
	Date                string     `json:"date" binding:"required"`
	StartTime           string     `json:"start_time" binding:"required"`
	EndTime             string     `json:"end_time" binding:"required"`
	Notes               *string    `json:"notes,omitempty"`
	ResponseWindowHours *int       `json:"response_window_hours,omitempty"`
	ParentRequestID     *uuid.UUID `json:"parent_request_id,omitempty"`
}

func (r CreateAssistRequest) ToParams() (commands.CreateRequestParams, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return commands.CreateRequestParams{}, err
	}
	return commands.CreateRequestParams{
		LocationID:          r.LocationID,
		ServiceID:           r.ServiceID,
		ClientName:          r.ClientName,
		Date:                date,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		Notes:               r.Notes,
		ResponseWindowHours: r.ResponseWindowHours,
		ParentRequestID:     r.ParentRequestID,
	}, nil
}

type AssignRequest struct {
	AssistantID uuid.UUID `json:"assistant_id" binding:"required"`
}
