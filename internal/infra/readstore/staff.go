package readstore

import (
	"context"

	"github.com/google/uuid"

	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/pgconv"
	"salon-assist/internal/usecase/queries"
)

type StaffReadStore struct {
	db infra.DBTX
}

func NewStaffReadStore(db infra.DBTX) *StaffReadStore {
	return &StaffReadStore{db: db}
}

const staffByEmailSQL = `
	SELECT id, email, display_name, role, is_active, password_hash
	FROM staff
	WHERE email = $1
`

func (s *StaffReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedStaffView, string, error) {
	var (
		view queries.AuthorizedStaffView
		hash string
	)
	err := s.db.QueryRow(ctx, staffByEmailSQL, email).
		Scan(&view.ID, &view.Email, &view.DisplayName, &view.Role, &view.IsActive, &hash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("staff not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find staff by email", err)
	}
	return &view, hash, nil
}

const staffByIDSQL = `
	SELECT id, email, display_name, role, is_active
	FROM staff
	WHERE id = $1
`

func (s *StaffReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedStaffView, error) {
	var view queries.AuthorizedStaffView
	err := s.db.QueryRow(ctx, staffByIDSQL, id).
		Scan(&view.ID, &view.Email, &view.DisplayName, &view.Role, &view.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("staff not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find staff by id", err)
	}
	return &view, nil
}
