package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/pgconv"
	"salon-assist/internal/usecase/commands"
)

type LocationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.LocationSnapshot, error) {
	var snap commands.LocationSnapshot
	err := r.db.QueryRow(ctx, `SELECT id, name FROM locations WHERE id = $1`, id).
		Scan(&snap.ID, &snap.Name)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("location not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find location", err)
	}
	return &snap, nil
}
