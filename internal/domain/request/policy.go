package request

import "salon-assist/internal/domain/staff"

// Permission predicates over (actor, request). Transition legality against
// the *stored* state is enforced separately by the guarded store updates;
// these only answer "may this party attempt the operation at all".

func CanCreate(actor staff.Actor) bool {
	return actor.IsStylist() || actor.IsAdmin()
}

// CanAssign covers both self-service matching and the admin resolver; only
// admins may pick an assistant for someone else's request.
func CanAssign(actor staff.Actor) bool {
	return actor.IsAdmin()
}

func CanAccept(actor staff.Actor, r *AssistantRequest) bool {
	return actor.IsAssistant() && r.IsAssignedTo(actor.ID)
}

func CanDecline(actor staff.Actor, r *AssistantRequest) bool {
	return actor.IsAssistant() && r.IsAssignedTo(actor.ID)
}

func CanCancel(actor staff.Actor, r *AssistantRequest) bool {
	return actor.IsAdmin() || actor.ID == r.StylistID()
}

func CanComplete(actor staff.Actor, r *AssistantRequest) bool {
	return actor.IsAdmin() || actor.ID == r.StylistID()
}
