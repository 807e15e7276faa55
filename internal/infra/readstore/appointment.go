package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"salon-assist/internal/domain/conflict"
	"salon-assist/internal/domain/request"
	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/pgconv"
)

// AppointmentSnapshotStore reads the calendar snapshot table synced in by
// the external booking system. Cancelled appointments never conflict, so
// they are filtered at the source.
type AppointmentSnapshotStore struct {
	db infra.DBTX
}

func NewAppointmentSnapshotStore(db infra.DBTX) *AppointmentSnapshotStore {
	return &AppointmentSnapshotStore{db: db}
}

const appointmentSnapshotSQL = `
	SELECT a.id, a.party_id, a.appointment_date, a.start_time, a.end_time, a.status
	FROM appointments a
	WHERE a.appointment_date = ANY($1)
	  AND a.party_id = ANY($2)
	  AND a.status <> 'cancelled'
`

func (s *AppointmentSnapshotStore) Fetch(ctx context.Context, dates []time.Time, partyIDs []uuid.UUID) ([]conflict.AppointmentSnapshot, error) {
	if len(dates) == 0 || len(partyIDs) == 0 {
		return nil, nil
	}

	pgDates := make([]pgtype.Date, len(dates))
	for i, d := range dates {
		pgDates[i] = pgconv.DateToPgtype(d)
	}

	rows, err := s.db.Query(ctx, appointmentSnapshotSQL, pgDates, partyIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to fetch appointment snapshots", err)
	}
	defer rows.Close()

	var result []conflict.AppointmentSnapshot
	for rows.Next() {
		var (
			id, partyID        uuid.UUID
			date               pgtype.Date
			startTime, endTime pgtype.Time
			status             string
		)
		if err := rows.Scan(&id, &partyID, &date, &startTime, &endTime, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment snapshot", err)
		}
		window, err := request.NewTimeWindow(
			pgconv.DateFromPgtype(date),
			request.TimeOfDay(pgconv.MinutesFromPgtypeTime(startTime)),
			request.TimeOfDay(pgconv.MinutesFromPgtypeTime(endTime)),
		)
		if err != nil {
			return nil, infra.WrapRepoErr("stored appointment window is invalid", err)
		}
		result = append(result, conflict.AppointmentSnapshot{
			ID:      id,
			PartyID: partyID,
			Window:  window,
			Status:  status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointment snapshots", err)
	}
	return result, nil
}
