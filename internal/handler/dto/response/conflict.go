package response

import (
	"time"

	"github.com/google/uuid"

	"salon-assist/internal/usecase/queries"
)

type ConflictResponse struct {
	RequestID        uuid.UUID `json:"requestId"`
	AppointmentID    uuid.UUID `json:"appointmentId"`
	Date             time.Time `json:"date"`
	RequestStart     string    `json:"requestStart"`
	RequestEnd       string    `json:"requestEnd"`
	AppointmentStart string    `json:"appointmentStart"`
	AppointmentEnd   string    `json:"appointmentEnd"`
}

func FromConflictView(rm queries.ConflictView) ConflictResponse {
	return ConflictResponse{
		RequestID:        rm.RequestID,
		AppointmentID:    rm.AppointmentID,
		Date:             rm.Date,
		RequestStart:     rm.RequestStart,
		RequestEnd:       rm.RequestEnd,
		AppointmentStart: rm.AppointmentStart,
		AppointmentEnd:   rm.AppointmentEnd,
	}
}

func FromConflictMap(detected map[uuid.UUID][]queries.ConflictView) map[uuid.UUID][]ConflictResponse {
	result := make(map[uuid.UUID][]ConflictResponse, len(detected))
	for requestID, conflicts := range detected {
		views := make([]ConflictResponse, len(conflicts))
		for i, c := range conflicts {
			views[i] = FromConflictView(c)
		}
		result[requestID] = views
	}
	return result
}
