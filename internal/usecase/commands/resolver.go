package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"salon-assist/internal/domain/request"
	"salon-assist/internal/domain/staff"
	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/errs"
	"salon-assist/internal/usecase/queries"
)

// ResolveResult carries the updated request plus advisory warnings the
// admin saw before confirming. Warnings never block the assignment.
type ResolveResult struct {
	Request  *queries.RequestView
	Warnings []string
}

// AssignmentCandidate is one active assistant annotated with what the
// admin wants to know before picking: whether they work that location and
// weekday, and whether they already turned this request down.
type AssignmentCandidate struct {
	AssistantID uuid.UUID
	DisplayName string
	Scheduled   bool
	HasDeclined bool
}

// AssignmentResolver is the administrative entry point for assigning or
// reassigning a pending or unaccepted request directly. It adds no state
// of its own: the actual transition is the same guarded Assign every
// caller goes through.
type AssignmentResolver interface {
	Resolve(ctx context.Context, actor staff.Actor, requestID, assistantID uuid.UUID) (*ResolveResult, error)
	Candidates(ctx context.Context, actor staff.Actor, requestID uuid.UUID) ([]AssignmentCandidate, error)
}

type assignmentResolverImpl struct {
	commands     RequestCommands
	repo         RequestRepository
	availability AvailabilityRepository
	conflicts    queries.ConflictQueries
}

func NewAssignmentResolver(
	commands RequestCommands,
	repo RequestRepository,
	availability AvailabilityRepository,
	conflicts queries.ConflictQueries,
) AssignmentResolver {
	return &assignmentResolverImpl{
		commands:     commands,
		repo:         repo,
		availability: availability,
		conflicts:    conflicts,
	}
}

func (r *assignmentResolverImpl) Resolve(ctx context.Context, actor staff.Actor, requestID, assistantID uuid.UUID) (*ResolveResult, error) {
	if !request.CanAssign(actor) {
		return nil, ErrPermissionDenied
	}

	rec, err := r.repo.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	warnings := r.collectWarnings(ctx, rec, assistantID)

	view, err := r.commands.Assign(ctx, actor, requestID, assistantID)
	if err != nil {
		return nil, err
	}

	return &ResolveResult{Request: view, Warnings: warnings}, nil
}

// Candidates lists every active assistant for the admin picking screen,
// annotated against the request's location, weekday and decline history.
// Nothing here blocks: an unscheduled or previously-declining assistant
// can still be chosen through Resolve.
func (r *assignmentResolverImpl) Candidates(ctx context.Context, actor staff.Actor, requestID uuid.UUID) ([]AssignmentCandidate, error) {
	if !request.CanAssign(actor) {
		return nil, ErrPermissionDenied
	}

	rec, err := r.repo.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	assistants, err := r.availability.ListActiveAssistants(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	weekday := rec.Window().Date().Weekday()
	candidates := make([]AssignmentCandidate, 0, len(assistants))
	for _, a := range assistants {
		candidates = append(candidates, AssignmentCandidate{
			AssistantID: a.ID,
			DisplayName: a.DisplayName,
			Scheduled:   a.WorksAt(rec.LocationID(), weekday),
			HasDeclined: rec.HasDeclined(a.ID),
		})
	}
	return candidates, nil
}

func (r *assignmentResolverImpl) collectWarnings(ctx context.Context, rec *request.AssistantRequest, assistantID uuid.UUID) []string {
	var warnings []string

	if rec.HasDeclined(assistantID) {
		warnings = append(warnings, "assistant previously declined this request")
	}

	assistant, err := r.availability.FindAssistant(ctx, assistantID)
	switch {
	case err != nil:
		// Availability is advisory here; the FK on assign still catches
		// assistants that do not exist at all.
		warnings = append(warnings, "availability could not be checked")
	case !assistant.IsActive:
		warnings = append(warnings, "assistant is inactive")
	case !assistant.WorksAt(rec.LocationID(), rec.Window().Date().Weekday()):
		warnings = append(warnings, "assistant is not scheduled to work at this location that day")
	}

	overlaps, err := r.conflicts.ConflictsForParty(ctx, assistantID, rec.Window())
	if err == nil {
		for _, c := range overlaps {
			warnings = append(warnings, fmt.Sprintf(
				"assistant has an appointment %s-%s on %s",
				c.AppointmentStart, c.AppointmentEnd, c.Date.Format("2006-01-02"),
			))
		}
	}

	return warnings
}
