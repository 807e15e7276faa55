package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"salon-assist/internal/domain/request"
	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/pgconv"
)

// RequestRepository is the write side of the request store. Every
// transition restates its precondition in the WHERE clause; a zero-row
// update is resolved into NOT_FOUND or STALE_STATE by a follow-up
// existence check. Nothing here overwrites state it did not expect.
type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.AssistantRequest) error {
	var notes *string
	if !req.Notes().IsEmpty() {
		s := req.Notes().String()
		notes = &s
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO assistant_requests (
			id, stylist_id, location_id, service_id, client_name, notes,
			request_date, start_time, end_time, status,
			response_window_hours, parent_request_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())`,
		req.ID(), req.StylistID(), req.LocationID(), req.ServiceID(),
		req.ClientName(), pgconv.StringPtrToPgtype(notes),
		pgconv.DateToPgtype(req.Window().Date()),
		pgconv.PgtypeTimeFromMinutes(req.Window().Start().Minutes()),
		pgconv.PgtypeTimeFromMinutes(req.Window().End().Minutes()),
		req.Status().String(),
		req.ResponseWindowHours(),
		pgconv.UUIDPtrToPgtype(req.ParentRequestID()),
	)
	if err != nil {
		return wrapPgErr("failed to create request", err)
	}
	return nil
}

const findRequestSQL = `
	SELECT r.id, r.stylist_id, r.assistant_id, r.location_id, r.service_id,
	       r.client_name, r.notes, r.request_date, r.start_time, r.end_time,
	       r.status, r.assigned_at, r.accepted_at,
	       COALESCE(d.assistants, '{}') AS declined_by,
	       r.response_window_hours, r.parent_request_id, r.created_at, r.updated_at
	FROM assistant_requests r
	LEFT JOIN (
		SELECT request_id, array_agg(assistant_id ORDER BY declined_at) AS assistants
		FROM request_declines
		GROUP BY request_id
	) d ON d.request_id = r.id
	WHERE r.id = $1`

func (r *RequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.AssistantRequest, error) {
	var (
		reqID, stylistID       uuid.UUID
		assistantID, parentID  pgtype.UUID
		locationID, serviceID  uuid.UUID
		clientName             string
		notes                  pgtype.Text
		date                   pgtype.Date
		startTime, endTime     pgtype.Time
		status                 string
		assignedAt, acceptedAt pgtype.Timestamptz
		declinedBy             []uuid.UUID
		responseWindowHours    int
		createdAt, updatedAt   pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, findRequestSQL, id).Scan(
		&reqID, &stylistID, &assistantID, &locationID, &serviceID,
		&clientName, &notes, &date, &startTime, &endTime,
		&status, &assignedAt, &acceptedAt, &declinedBy,
		&responseWindowHours, &parentID, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request by ID", err)
	}

	parsedStatus, err := request.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored request has invalid status", err)
	}

	window, err := request.NewTimeWindow(
		pgconv.DateFromPgtype(date),
		request.TimeOfDay(pgconv.MinutesFromPgtypeTime(startTime)),
		request.TimeOfDay(pgconv.MinutesFromPgtypeTime(endTime)),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("stored request has invalid time window", err)
	}

	return request.ReconstructAssistantRequest(
		reqID, stylistID,
		pgconv.UUIDPtrFromPgtype(assistantID),
		locationID, serviceID,
		clientName,
		request.NewNote(textOrEmpty(notes)),
		window,
		parsedStatus,
		pgconv.TimePtrFromPgtype(assignedAt),
		pgconv.TimePtrFromPgtype(acceptedAt),
		declinedBy,
		responseWindowHours,
		pgconv.UUIDPtrFromPgtype(parentID),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *RequestRepository) Assign(ctx context.Context, id, assistantID uuid.UUID, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE assistant_requests
		SET assistant_id = $2, status = 'assigned', assigned_at = $3,
		    accepted_at = NULL, updated_at = $3
		WHERE id = $1
		  AND (status = 'pending' OR (status = 'assigned' AND accepted_at IS NULL))`,
		id, assistantID, pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return wrapPgErr("failed to assign request", err)
	}
	if tag.RowsAffected() == 0 {
		return r.resolveGuardFailure(ctx, id, "assign")
	}
	return nil
}

func (r *RequestRepository) Accept(ctx context.Context, id, assistantID uuid.UUID, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE assistant_requests
		SET accepted_at = $3, updated_at = $3
		WHERE id = $1 AND status = 'assigned' AND assistant_id = $2
		  AND accepted_at IS NULL`,
		id, assistantID, pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return wrapPgErr("failed to accept request", err)
	}
	if tag.RowsAffected() == 0 {
		return r.resolveGuardFailure(ctx, id, "accept")
	}
	return nil
}

func (r *RequestRepository) Decline(ctx context.Context, id, assistantID uuid.UUID, now time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin decline transaction", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback decline transaction", "error", rollbackErr.Error())
		}
	}()

	// The unique constraint makes repeated declines by the same assistant
	// idempotent: the log gains at most one row per (request, assistant).
	_, err = tx.Exec(ctx, `
		INSERT INTO request_declines (request_id, assistant_id, declined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (request_id, assistant_id) DO NOTHING`,
		id, assistantID, pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return wrapPgErr("failed to record decline", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE assistant_requests
		SET assistant_id = NULL, assigned_at = NULL, status = 'pending',
		    updated_at = $3
		WHERE id = $1 AND status = 'assigned' AND assistant_id = $2
		  AND accepted_at IS NULL`,
		id, assistantID, pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return wrapPgErr("failed to decline request", err)
	}
	if tag.RowsAffected() == 0 {
		// Guard failed; the rollback also discards the decline row.
		return r.resolveGuardFailure(ctx, id, "decline")
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit decline transaction", err)
	}
	return nil
}

func (r *RequestRepository) Cancel(ctx context.Context, id uuid.UUID, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE assistant_requests
		SET status = 'cancelled', updated_at = $2
		WHERE id = $1 AND status IN ('pending', 'assigned')`,
		id, pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return wrapPgErr("failed to cancel request", err)
	}
	if tag.RowsAffected() == 0 {
		return r.resolveGuardFailure(ctx, id, "cancel")
	}
	return nil
}

func (r *RequestRepository) Complete(ctx context.Context, id uuid.UUID, now time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE assistant_requests
		SET status = 'completed', updated_at = $2
		WHERE id = $1 AND status = 'assigned' AND accepted_at IS NOT NULL`,
		id, pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return wrapPgErr("failed to complete request", err)
	}
	if tag.RowsAffected() == 0 {
		return r.resolveGuardFailure(ctx, id, "complete")
	}
	return nil
}

// resolveGuardFailure disambiguates a zero-row guarded update: the row is
// either gone (NOT_FOUND) or no longer in the expected state (STALE_STATE).
func (r *RequestRepository) resolveGuardFailure(ctx context.Context, id uuid.UUID, op string) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM assistant_requests WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return infra.WrapRepoErr("failed to resolve guard failure", err)
	}
	if !exists {
		return infra.WrapRepoErr("request not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("guarded "+op+" matched no rows", nil, infra.KindStaleState)
}

func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case "23503":
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}

func textOrEmpty(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
