package staff

import "github.com/google/uuid"

type Role string

const (
	RoleStylist   Role = "stylist"
	RoleAssistant Role = "assistant"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStylist, RoleAssistant, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Actor is the authenticated party performing an operation. Permission
// predicates take an Actor rather than re-reading role claims inline.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool     { return a.Role == RoleAdmin }
func (a Actor) IsStylist() bool   { return a.Role == RoleStylist }
func (a Actor) IsAssistant() bool { return a.Role == RoleAssistant }
