package request

import "time"

// Response-deadline arithmetic. These are pure reads over the entity; the
// store keeps no deadline state and nothing fires when a deadline lapses.
// Overdue requests stay assigned-unaccepted until an admin reassigns or
// cancels.

// ResponseDeadline returns the instant the assigned assistant's response
// window closes. ok is false unless the request is assigned and still
// awaiting a response.
func (r *AssistantRequest) ResponseDeadline() (time.Time, bool) {
	if !r.IsAwaitingResponse() || r.assignedAt == nil {
		return time.Time{}, false
	}
	return r.assignedAt.Add(time.Duration(r.responseWindowHours) * time.Hour), true
}

// ResponseRemaining returns the time left to respond. Negative means
// overdue. ok follows the same validity rule as ResponseDeadline.
func (r *AssistantRequest) ResponseRemaining(now time.Time) (time.Duration, bool) {
	deadline, ok := r.ResponseDeadline()
	if !ok {
		return 0, false
	}
	return deadline.Sub(now), true
}

func (r *AssistantRequest) IsResponseOverdue(now time.Time) bool {
	remaining, ok := r.ResponseRemaining(now)
	return ok && remaining < 0
}
