package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"salon-assist/internal/domain/request"
	"salon-assist/internal/domain/staff"
	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/clock"
	"salon-assist/internal/pkg/config"
	"salon-assist/internal/pkg/errs"
	"salon-assist/internal/usecase/queries"
)

var (
	ErrRequestNotFound         = errs.New("request not found")
	ErrAssistantNotFound       = errs.New("assistant not found")
	ErrLocationNotFound        = errs.New("location not found")
	ErrValidation              = errs.New("request validation failed")
	ErrStaleState              = errs.New("request state changed concurrently")
	ErrPermissionDenied        = errs.New("permission denied")
	ErrWindowPassed            = errs.New("request window already passed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateRequestParams struct {
	LocationID          uuid.UUID
	ServiceID           uuid.UUID
	ClientName          string
	Date                time.Time
	StartTime           string
	EndTime             string
	Notes               *string
	ResponseWindowHours *int
	ParentRequestID     *uuid.UUID
}

type RequestCommands interface {
	Create(ctx context.Context, actor staff.Actor, p CreateRequestParams) (*queries.RequestView, error)
	Assign(ctx context.Context, actor staff.Actor, requestID, assistantID uuid.UUID) (*queries.RequestView, error)
	Accept(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error)
	Decline(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error)
	Cancel(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error)
	Complete(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error)
}

type requestCommandsImpl struct {
	repo         RequestRepository
	locationRepo LocationRepository
	notifyRepo   NotificationRepository
	readStore    queries.RequestReadStore
	clock        clock.Clock
	cfg          config.AssignmentConfig
}

func NewRequestCommands(
	repo RequestRepository,
	locationRepo LocationRepository,
	notifyRepo NotificationRepository,
	readStore queries.RequestReadStore,
	clock clock.Clock,
	cfg config.AssignmentConfig,
) RequestCommands {
	return &requestCommandsImpl{
		repo:         repo,
		locationRepo: locationRepo,
		notifyRepo:   notifyRepo,
		readStore:    readStore,
		clock:        clock,
		cfg:          cfg,
	}
}

func (c *requestCommandsImpl) Create(ctx context.Context, actor staff.Actor, p CreateRequestParams) (*queries.RequestView, error) {
	if !request.CanCreate(actor) {
		return nil, ErrPermissionDenied
	}

	window, err := parseWindow(p.Date, p.StartTime, p.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	if _, err := c.locationRepo.FindByID(ctx, p.LocationID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	responseWindow := c.cfg.ResponseWindowHours
	if p.ResponseWindowHours != nil {
		responseWindow = *p.ResponseWindowHours
	}

	notes := request.NewNote("")
	if p.Notes != nil {
		notes = request.NewNote(*p.Notes)
	}

	entity, err := request.NewAssistantRequest(
		actor.ID, p.LocationID, p.ServiceID,
		p.ClientName, window, notes,
		responseWindow, p.ParentRequestID,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	if err := c.repo.Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, ErrLocationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c.notify(ctx, "request_created", entity.ID(), map[string]any{
		"stylist_id": actor.ID,
	})

	return c.readBack(ctx, entity.ID())
}

func (c *requestCommandsImpl) Assign(ctx context.Context, actor staff.Actor, requestID, assistantID uuid.UUID) (*queries.RequestView, error) {
	rec, err := c.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.CanAssign(actor) {
		return nil, ErrPermissionDenied
	}
	if !rec.Assignable() {
		return nil, ErrStaleState
	}

	if err := c.repo.Assign(ctx, requestID, assistantID, c.clock.Now()); err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, ErrAssistantNotFound
		}
		return nil, c.mapTransitionErr(err)
	}

	c.notify(ctx, "request_assigned", requestID, map[string]any{
		"assistant_id": assistantID,
		"assigned_by":  actor.ID,
	})

	return c.readBack(ctx, requestID)
}

func (c *requestCommandsImpl) Accept(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error) {
	rec, err := c.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	// A second accept (same or different party) is a conflict on a
	// request no longer awaiting a response, not a silent success.
	if !rec.IsAwaitingResponse() {
		return nil, ErrStaleState
	}
	if !request.CanAccept(actor, rec) {
		return nil, ErrPermissionDenied
	}

	if err := c.repo.Accept(ctx, requestID, actor.ID, c.clock.Now()); err != nil {
		return nil, c.mapTransitionErr(err)
	}

	c.notify(ctx, "request_accepted", requestID, map[string]any{
		"assistant_id": actor.ID,
	})

	return c.readBack(ctx, requestID)
}

func (c *requestCommandsImpl) Decline(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error) {
	rec, err := c.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !rec.IsAwaitingResponse() {
		return nil, ErrStaleState
	}
	if !request.CanDecline(actor, rec) {
		return nil, ErrPermissionDenied
	}

	if err := c.repo.Decline(ctx, requestID, actor.ID, c.clock.Now()); err != nil {
		return nil, c.mapTransitionErr(err)
	}

	c.notify(ctx, "request_declined", requestID, map[string]any{
		"assistant_id": actor.ID,
	})

	return c.readBack(ctx, requestID)
}

func (c *requestCommandsImpl) Cancel(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error) {
	rec, err := c.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if rec.IsTerminal() {
		return nil, ErrStaleState
	}
	if !request.CanCancel(actor, rec) {
		return nil, ErrPermissionDenied
	}
	if rec.Status() == request.StatusAssigned && rec.WindowPassed(c.clock.Now()) {
		return nil, ErrWindowPassed
	}

	if err := c.repo.Cancel(ctx, requestID, c.clock.Now()); err != nil {
		return nil, c.mapTransitionErr(err)
	}

	c.notify(ctx, "request_cancelled", requestID, map[string]any{
		"cancelled_by": actor.ID,
	})

	return c.readBack(ctx, requestID)
}

func (c *requestCommandsImpl) Complete(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error) {
	rec, err := c.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !rec.IsAccepted() {
		return nil, ErrStaleState
	}
	if !request.CanComplete(actor, rec) {
		return nil, ErrPermissionDenied
	}

	if err := c.repo.Complete(ctx, requestID, c.clock.Now()); err != nil {
		return nil, c.mapTransitionErr(err)
	}

	c.notify(ctx, "request_completed", requestID, map[string]any{
		"completed_by": actor.ID,
	})

	return c.readBack(ctx, requestID)
}

func (c *requestCommandsImpl) loadRequest(ctx context.Context, id uuid.UUID) (*request.AssistantRequest, error) {
	rec, err := c.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rec, nil
}

func (c *requestCommandsImpl) mapTransitionErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrRequestNotFound
	case infra.IsKind(err, infra.KindStaleState):
		return errs.Mark(err, ErrStaleState)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}

func (c *requestCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	view, err := c.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// notify is fire-and-forget: a failed enqueue never rolls back or blocks
// the transition it follows.
func (c *requestCommandsImpl) notify(ctx context.Context, topic string, requestID uuid.UUID, extra map[string]any) {
	body := map[string]any{"request_id": requestID}
	for k, v := range extra {
		body[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		slog.Warn("failed to marshal notification payload", "topic", topic, "error", err.Error())
		return
	}

	if err := c.notifyRepo.Enqueue(ctx, "email", topic, payload, c.clock.Now()); err != nil {
		slog.Warn("failed to enqueue notification", "topic", topic, "request_id", requestID, "error", err.Error())
	}
}

func parseWindow(date time.Time, startStr, endStr string) (request.TimeWindow, error) {
	start, err := request.ParseTimeOfDay(startStr)
	if err != nil {
		return request.TimeWindow{}, err
	}
	end, err := request.ParseTimeOfDay(endStr)
	if err != nil {
		return request.TimeWindow{}, err
	}
	return request.NewTimeWindow(date, start, end)
}
