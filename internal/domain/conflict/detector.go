package conflict

import (
	"github.com/google/uuid"

	"salon-assist/internal/domain/request"
)

// AppointmentStatusCancelled mirrors the external calendar's terminal
// status; cancelled appointments never conflict.
const AppointmentStatusCancelled = "cancelled"

// ActiveRequest is the minimal projection of a non-terminal
// AssistantRequest the detector needs.
type ActiveRequest struct {
	ID uuid.UUID
	// PartyID is the responsible party whose calendar is checked; for
	// standard requests this is the stylist.
	PartyID uuid.UUID
	Window  request.TimeWindow
}

// AppointmentSnapshot is an externally sourced calendar entry. It is never
// mutated here.
type AppointmentSnapshot struct {
	ID      uuid.UUID
	PartyID uuid.UUID
	Window  request.TimeWindow
	Status  string
}

// Conflict is a derived value: a time overlap between one request and one
// appointment for the same responsible party. It is recomputed on demand
// and never persisted.
type Conflict struct {
	RequestID         uuid.UUID
	AppointmentID     uuid.UUID
	RequestWindow     request.TimeWindow
	AppointmentWindow request.TimeWindow
}

// Detect flags every half-open overlap between an active request and a
// non-cancelled appointment belonging to the request's responsible party on the same
// date. Results are grouped by request id. Requests without conflicts have
// no map entry.
func Detect(requests []ActiveRequest, appointments []AppointmentSnapshot) map[uuid.UUID][]Conflict {
	byParty := make(map[uuid.UUID][]AppointmentSnapshot, len(appointments))
	for _, a := range appointments {
		if a.Status == AppointmentStatusCancelled {
			continue
		}
		byParty[a.PartyID] = append(byParty[a.PartyID], a)
	}

	result := make(map[uuid.UUID][]Conflict)
	for _, r := range requests {
		for _, a := range byParty[r.PartyID] {
			if !r.Window.Overlaps(a.Window) {
				continue
			}
			result[r.ID] = append(result[r.ID], Conflict{
				RequestID:         r.ID,
				AppointmentID:     a.ID,
				RequestWindow:     r.Window,
				AppointmentWindow: a.Window,
			})
		}
	}
	return result
}
