//go:build unit

package builder

import (
	"github.com/google/uuid"

	"salon-assist/internal/domain/staff"
	"salon-assist/internal/usecase/queries"
)

type StaffBuilder struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Role        staff.Role
	IsActive    bool
}

func NewStaffBuilder() *StaffBuilder {
	return &StaffBuilder{
		ID:          uuid.New(),
		Email:       "stylist@example.com",
		DisplayName: "Test Stylist",
		Role:        staff.RoleStylist,
		IsActive:    true,
	}
}

func (b *StaffBuilder) AsAssistant() *StaffBuilder {
	b.Role = staff.RoleAssistant
	b.Email = "assistant@example.com"
	b.DisplayName = "Test Assistant"
	return b
}

func (b *StaffBuilder) AsAdmin() *StaffBuilder {
	b.Role = staff.RoleAdmin
	b.Email = "admin@example.com"
	b.DisplayName = "Test Admin"
	return b
}

func (b *StaffBuilder) Inactive() *StaffBuilder {
	b.IsActive = false
	return b
}

func (b *StaffBuilder) BuildActor() staff.Actor {
	return staff.Actor{ID: b.ID, Role: b.Role}
}

func (b *StaffBuilder) BuildView() *queries.AuthorizedStaffView {
	return &queries.AuthorizedStaffView{
		ID:          b.ID,
		Email:       b.Email,
		DisplayName: b.DisplayName,
		Role:        b.Role.String(),
		IsActive:    b.IsActive,
	}
}
