package queries

import (
	"context"

	"github.com/google/uuid"

	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/errs"
)

var ErrStaffNotFound = errs.New("staff not found")

type StaffReadStore interface {
	// FindByEmail returns the staff view together with the stored
	// password hash for credential checks.
	FindByEmail(ctx context.Context, email string) (*AuthorizedStaffView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedStaffView, error)
}

type StaffQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedStaffView, error)
}

type staffQueriesImpl struct {
	store StaffReadStore
}

func NewStaffQueries(store StaffReadStore) StaffQueries {
	return &staffQueriesImpl{store: store}
}

func (q *staffQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedStaffView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return view, nil
}
