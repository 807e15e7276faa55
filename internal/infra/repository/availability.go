package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/pgconv"
	"salon-assist/internal/usecase/commands"
)

// AvailabilityRepository reads assistant availability out of the staff and
// schedule tables maintained by the surrounding application.
type AvailabilityRepository struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

const assistantSQL = `
	SELECT id, display_name, is_active
	FROM staff
	WHERE id = $1 AND role = 'assistant'
`

const scheduleSQL = `
	SELECT location_id, weekday, works
	FROM assistant_schedules
	WHERE staff_id = $1
`

func (r *AvailabilityRepository) FindAssistant(ctx context.Context, id uuid.UUID) (*commands.AssistantSnapshot, error) {
	var snap commands.AssistantSnapshot
	err := r.db.QueryRow(ctx, assistantSQL, id).Scan(&snap.ID, &snap.DisplayName, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("assistant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find assistant", err)
	}

	days, err := r.loadSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	snap.WorkingDays = days
	return &snap, nil
}

const activeAssistantsSQL = `
	SELECT id, display_name, is_active
	FROM staff
	WHERE role = 'assistant' AND is_active
	ORDER BY display_name
`

func (r *AvailabilityRepository) ListActiveAssistants(ctx context.Context) ([]*commands.AssistantSnapshot, error) {
	rows, err := r.db.Query(ctx, activeAssistantsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active assistants", err)
	}
	defer rows.Close()

	var result []*commands.AssistantSnapshot
	for rows.Next() {
		var snap commands.AssistantSnapshot
		if err := rows.Scan(&snap.ID, &snap.DisplayName, &snap.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan assistant", err)
		}
		result = append(result, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate assistants", err)
	}

	for _, snap := range result {
		days, err := r.loadSchedule(ctx, snap.ID)
		if err != nil {
			return nil, err
		}
		snap.WorkingDays = days
	}
	return result, nil
}

func (r *AvailabilityRepository) loadSchedule(ctx context.Context, staffID uuid.UUID) ([]commands.WorkingDay, error) {
	rows, err := r.db.Query(ctx, scheduleSQL, staffID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load assistant schedule", err)
	}
	defer rows.Close()

	var days []commands.WorkingDay
	for rows.Next() {
		var (
			locationID uuid.UUID
			weekday    int16
			works      bool
		)
		if err := rows.Scan(&locationID, &weekday, &works); err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule entry", err)
		}
		days = append(days, commands.WorkingDay{
			LocationID: locationID,
			Weekday:    time.Weekday(weekday),
			Works:      works,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate schedule entries", err)
	}
	return days, nil
}
