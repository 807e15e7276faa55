package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"salon-assist/internal/domain/request"
	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/pgconv"
	"salon-assist/internal/usecase/queries"
)

type RequestReadStore struct {
	db infra.DBTX
}

func NewRequestReadStore(db infra.DBTX) *RequestReadStore {
	return &RequestReadStore{db: db}
}

const requestViewSQL = `
	SELECT r.id, r.stylist_id, s.display_name,
	       r.assistant_id, a.display_name,
	       r.location_id, l.name, r.service_id, r.client_name, r.notes,
	       r.request_date, r.start_time, r.end_time, r.status,
	       r.assigned_at, r.accepted_at,
	       COALESCE(d.assistants, '{}') AS declined_by,
	       r.response_window_hours, r.parent_request_id, r.created_at, r.updated_at
	FROM assistant_requests r
	JOIN staff s ON s.id = r.stylist_id
	LEFT JOIN staff a ON a.id = r.assistant_id
	JOIN locations l ON l.id = r.location_id
	LEFT JOIN (
		SELECT request_id, array_agg(assistant_id ORDER BY declined_at) AS assistants
		FROM request_declines
		GROUP BY request_id
	) d ON d.request_id = r.id
	WHERE r.id = $1`

func (r *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	row := r.db.QueryRow(ctx, requestViewSQL, id)

	view, err := scanRequestView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request by ID", err)
	}
	return view, nil
}

const requestListSQL = `
	SELECT r.id, r.stylist_id, s.display_name,
	       r.assistant_id, a.display_name,
	       r.location_id, r.client_name,
	       r.request_date, r.start_time, r.end_time, r.status, r.created_at
	FROM assistant_requests r
	JOIN staff s ON s.id = r.stylist_id
	LEFT JOIN staff a ON a.id = r.assistant_id`

const requestListOrder = ` ORDER BY r.request_date, r.start_time, r.created_at`

func (r *RequestReadStore) ListByStylist(ctx context.Context, stylistID uuid.UUID, locationID *uuid.UUID) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx,
		requestListSQL+` WHERE r.stylist_id = $1 AND ($2::uuid IS NULL OR r.location_id = $2)`+requestListOrder,
		stylistID, pgconv.UUIDPtrToPgtype(locationID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests by stylist", err)
	}
	return scanRequestList(rows)
}

func (r *RequestReadStore) ListByAssistant(ctx context.Context, assistantID uuid.UUID, locationID *uuid.UUID) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx,
		requestListSQL+` WHERE r.assistant_id = $1 AND ($2::uuid IS NULL OR r.location_id = $2)`+requestListOrder,
		assistantID, pgconv.UUIDPtrToPgtype(locationID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests by assistant", err)
	}
	return scanRequestList(rows)
}

func (r *RequestReadStore) ListAll(ctx context.Context, locationID *uuid.UUID) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx,
		requestListSQL+` WHERE ($1::uuid IS NULL OR r.location_id = $1)`+requestListOrder,
		pgconv.UUIDPtrToPgtype(locationID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests", err)
	}
	return scanRequestList(rows)
}

func (r *RequestReadStore) ListAwaitingResponse(ctx context.Context) ([]*queries.AwaitingResponseRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.stylist_id, s.display_name,
		       r.assistant_id, a.display_name,
		       r.location_id, r.client_name,
		       r.request_date, r.start_time, r.end_time, r.status, r.created_at,
		       r.assigned_at, r.response_window_hours
		FROM assistant_requests r
		JOIN staff s ON s.id = r.stylist_id
		LEFT JOIN staff a ON a.id = r.assistant_id
		WHERE r.status = 'assigned' AND r.accepted_at IS NULL
		ORDER BY r.assigned_at`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list awaiting-response requests", err)
	}
	defer rows.Close()

	var result []*queries.AwaitingResponseRow
	for rows.Next() {
		item, assignedAt, windowHours, err := scanAwaitingRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan awaiting-response row", err)
		}
		result = append(result, &queries.AwaitingResponseRow{
			Item:                *item,
			AssignedAt:          assignedAt,
			ResponseWindowHours: windowHours,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read awaiting-response rows", err)
	}
	return result, nil
}

func scanRequestView(row pgx.Row) (*queries.RequestView, error) {
	var (
		view                 queries.RequestView
		assistantID          pgtype.UUID
		assistantName, notes pgtype.Text
		date                 pgtype.Date
		startTime, endTime   pgtype.Time
		assigned, accepted   pgtype.Timestamptz
		declinedBy           []uuid.UUID
		parentID             pgtype.UUID
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&view.ID, &view.StylistID, &view.StylistName,
		&assistantID, &assistantName,
		&view.LocationID, &view.LocationName, &view.ServiceID, &view.ClientName, &notes,
		&date, &startTime, &endTime, &view.Status,
		&assigned, &accepted, &declinedBy,
		&view.ResponseWindowHours, &parentID, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.AssistantID = pgconv.UUIDPtrFromPgtype(assistantID)
	view.AssistantName = pgconv.StringPtrFromPgtype(assistantName)
	view.Notes = pgconv.StringPtrFromPgtype(notes)
	view.Date = pgconv.DateFromPgtype(date)
	view.StartTime = request.TimeOfDay(pgconv.MinutesFromPgtypeTime(startTime)).String()
	view.EndTime = request.TimeOfDay(pgconv.MinutesFromPgtypeTime(endTime)).String()
	view.AssignedAt = pgconv.TimePtrFromPgtype(assigned)
	view.AcceptedAt = pgconv.TimePtrFromPgtype(accepted)
	view.DeclinedBy = declinedBy
	view.ParentRequestID = pgconv.UUIDPtrFromPgtype(parentID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &view, nil
}

func scanRequestList(rows pgx.Rows) ([]*queries.RequestListItem, error) {
	defer rows.Close()

	var result []*queries.RequestListItem
	for rows.Next() {
		item, err := scanRequestListItem(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan request list row", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read request list rows", err)
	}
	return result, nil
}

func scanRequestListItem(row pgx.Row) (*queries.RequestListItem, error) {
	var (
		item               queries.RequestListItem
		assistantID        pgtype.UUID
		assistantName      pgtype.Text
		date               pgtype.Date
		startTime, endTime pgtype.Time
		createdAt          pgtype.Timestamptz
	)

	err := row.Scan(
		&item.ID, &item.StylistID, &item.StylistName,
		&assistantID, &assistantName,
		&item.LocationID, &item.ClientName,
		&date, &startTime, &endTime, &item.Status, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	item.AssistantID = pgconv.UUIDPtrFromPgtype(assistantID)
	item.AssistantName = pgconv.StringPtrFromPgtype(assistantName)
	item.Date = pgconv.DateFromPgtype(date)
	item.StartTime = request.TimeOfDay(pgconv.MinutesFromPgtypeTime(startTime)).String()
	item.EndTime = request.TimeOfDay(pgconv.MinutesFromPgtypeTime(endTime)).String()
	item.CreatedAt = pgconv.TimeFromPgtype(createdAt)

	return &item, nil
}

func scanAwaitingRow(rows pgx.Rows) (*queries.RequestListItem, time.Time, int, error) {
	var (
		item               queries.RequestListItem
		assistantID        pgtype.UUID
		assistantName      pgtype.Text
		date               pgtype.Date
		startTime, endTime pgtype.Time
		createdAt          pgtype.Timestamptz
		assignedAt         pgtype.Timestamptz
		windowHours        int
	)

	err := rows.Scan(
		&item.ID, &item.StylistID, &item.StylistName,
		&assistantID, &assistantName,
		&item.LocationID, &item.ClientName,
		&date, &startTime, &endTime, &item.Status, &createdAt,
		&assignedAt, &windowHours,
	)
	if err != nil {
		return nil, time.Time{}, 0, err
	}

	item.AssistantID = pgconv.UUIDPtrFromPgtype(assistantID)
	item.AssistantName = pgconv.StringPtrFromPgtype(assistantName)
	item.Date = pgconv.DateFromPgtype(date)
	item.StartTime = request.TimeOfDay(pgconv.MinutesFromPgtypeTime(startTime)).String()
	item.EndTime = request.TimeOfDay(pgconv.MinutesFromPgtypeTime(endTime)).String()
	item.CreatedAt = pgconv.TimeFromPgtype(createdAt)

	return &item, pgconv.TimeFromPgtype(assignedAt), windowHours, nil
}
