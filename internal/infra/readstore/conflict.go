package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"salon-assist/internal/domain/conflict"
	"salon-assist/internal/domain/request"
	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/pgconv"
)

// ActiveRequestReadStore projects pending and assigned requests into the
// minimal shape the conflict detector needs. The party checked against the
// calendar is the stylist; assistant calendars are probed separately at
// assignment time.
type ActiveRequestReadStore struct {
	db infra.DBTX
}

func NewActiveRequestReadStore(db infra.DBTX) *ActiveRequestReadStore {
	return &ActiveRequestReadStore{db: db}
}

const activeRequestSQL = `
	SELECT r.id, r.stylist_id, r.request_date, r.start_time, r.end_time
	FROM assistant_requests r
	WHERE r.status IN ('pending', 'assigned')
	  AND ($1::uuid IS NULL OR r.location_id = $1)
`

func (s *ActiveRequestReadStore) ListActive(ctx context.Context, locationID *uuid.UUID) ([]conflict.ActiveRequest, error) {
	rows, err := s.db.Query(ctx, activeRequestSQL, pgconv.UUIDPtrToPgtype(locationID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active requests", err)
	}
	defer rows.Close()

	var result []conflict.ActiveRequest
	for rows.Next() {
		var (
			id, stylistID      uuid.UUID
			date               pgtype.Date
			startTime, endTime pgtype.Time
		)
		if err := rows.Scan(&id, &stylistID, &date, &startTime, &endTime); err != nil {
			return nil, infra.WrapRepoErr("failed to scan active request", err)
		}
		window, err := request.NewTimeWindow(
			pgconv.DateFromPgtype(date),
			request.TimeOfDay(pgconv.MinutesFromPgtypeTime(startTime)),
			request.TimeOfDay(pgconv.MinutesFromPgtypeTime(endTime)),
		)
		if err != nil {
			return nil, infra.WrapRepoErr("stored request window is invalid", err)
		}
		result = append(result, conflict.ActiveRequest{ID: id, PartyID: stylistID, Window: window})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate active requests", err)
	}
	return result, nil
}
