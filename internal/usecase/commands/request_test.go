//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"salon-assist/internal/domain/request"
	"salon-assist/internal/infra"
	"salon-assist/internal/pkg/clock"
	"salon-assist/internal/pkg/config"
	"salon-assist/internal/pkg/errs"
	"salon-assist/internal/usecase/commands"
	"salon-assist/tests/common/builder"
	commandsmock "salon-assist/tests/mock/commands"
	queriesmock "salon-assist/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type commandsFixture struct {
	repo      *commandsmock.MockRequestRepository
	locations *commandsmock.MockLocationRepository
	notify    *commandsmock.MockNotificationRepository
	readStore *queriesmock.MockRequestReadStore
	clock     *clock.MockClock
	uc        commands.RequestCommands
}

func newCommandsFixture(t *testing.T) *commandsFixture {
	t.Helper()
	f := &commandsFixture{
		repo:      new(commandsmock.MockRequestRepository),
		locations: new(commandsmock.MockLocationRepository),
		notify:    new(commandsmock.MockNotificationRepository),
		readStore: new(queriesmock.MockRequestReadStore),
		clock:     clock.NewMockClock(time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)),
	}
	f.uc = commands.NewRequestCommands(
		f.repo, f.locations, f.notify, f.readStore,
		f.clock, config.AssignmentConfig{ResponseWindowHours: 2},
	)
	return f
}

func (f *commandsFixture) expectNotify() {
	f.notify.On("Enqueue", mock.Anything, "email", mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
}

func staleErr() error {
	return infra.WrapRepoErr("state guard failed", errs.New("no rows updated"), infra.KindStaleState)
}

func notFoundErr() error {
	return infra.WrapRepoErr("request not found", errs.New("no rows"), infra.KindNotFound)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	stylist := builder.NewStaffBuilder().BuildActor()
	assistant := builder.NewStaffBuilder().AsAssistant().BuildActor()

	t.Run("success", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()
		b.StylistID = stylist.ID

		f.locations.On("FindByID", ctx, b.LocationID).
			Return(&commands.LocationSnapshot{ID: b.LocationID, Name: "Downtown Studio"}, nil).Once()
		f.repo.On("Create", ctx, mock.AnythingOfType("*request.AssistantRequest")).Return(nil).Once()
		f.expectNotify()
		f.readStore.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
			Return(b.BuildView(), nil).Once()

		view, err := f.uc.Create(ctx, stylist, b.BuildParams())
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, "pending", view.Status)
		f.repo.AssertExpectations(t)
		f.notify.AssertExpectations(t)
	})

	t.Run("assistants may not create requests", func(t *testing.T) {
		f := newCommandsFixture(t)

		_, err := f.uc.Create(ctx, assistant, builder.NewRequestBuilder().BuildParams())
		assert.ErrorIs(t, err, commands.ErrPermissionDenied)
		f.repo.AssertNotCalled(t, "Create")
	})

	t.Run("malformed time window", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()
		b.StartTime = "10:00"
		b.EndTime = "09:00"

		_, err := f.uc.Create(ctx, stylist, b.BuildParams())
		assert.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("unknown location", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()

		f.locations.On("FindByID", ctx, b.LocationID).
			Return(nil, infra.WrapRepoErr("location not found", errs.New("no rows"), infra.KindNotFound)).Once()

		_, err := f.uc.Create(ctx, stylist, b.BuildParams())
		assert.ErrorIs(t, err, commands.ErrLocationNotFound)
	})

	t.Run("notification failure does not fail the create", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()
		b.StylistID = stylist.ID

		f.locations.On("FindByID", ctx, b.LocationID).
			Return(&commands.LocationSnapshot{ID: b.LocationID, Name: "Downtown Studio"}, nil).Once()
		f.repo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.notify.On("Enqueue", mock.Anything, "email", mock.Anything, mock.Anything, mock.Anything).
			Return(errs.New("outbox unavailable")).Once()
		f.readStore.On("FindByID", ctx, mock.Anything).Return(b.BuildView(), nil).Once()

		_, err := f.uc.Create(ctx, stylist, b.BuildParams())
		assert.NoError(t, err)
	})
}

func TestAssign(t *testing.T) {
	ctx := context.Background()
	admin := builder.NewStaffBuilder().AsAdmin().BuildActor()
	stylist := builder.NewStaffBuilder().BuildActor()
	assistantID := uuid.New()

	t.Run("assigns a pending request", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()

		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()
		f.repo.On("Assign", ctx, b.ID, assistantID, f.clock.Now()).Return(nil).Once()
		f.expectNotify()
		assigned := builder.NewRequestBuilder().Assigned(assistantID, f.clock.Now())
		assigned.ID = b.ID
		f.readStore.On("FindByID", ctx, b.ID).Return(assigned.BuildView(), nil).Once()

		view, err := f.uc.Assign(ctx, admin, b.ID, assistantID)
		require.NoError(t, err)
		assert.Equal(t, "assigned", view.Status)
		f.repo.AssertExpectations(t)
	})

	t.Run("reassignment while awaiting response is legal", func(t *testing.T) {
		f := newCommandsFixture(t)
		other := uuid.New()
		b := builder.NewRequestBuilder().Assigned(other, f.clock.Now().Add(-time.Hour))

		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()
		f.repo.On("Assign", ctx, b.ID, assistantID, f.clock.Now()).Return(nil).Once()
		f.expectNotify()
		f.readStore.On("FindByID", ctx, b.ID).Return(b.BuildView(), nil).Once()

		_, err := f.uc.Assign(ctx, admin, b.ID, assistantID)
		assert.NoError(t, err)
	})

	t.Run("only admins assign", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()

		_, err := f.uc.Assign(ctx, stylist, b.ID, assistantID)
		assert.ErrorIs(t, err, commands.ErrPermissionDenied)
		f.repo.AssertNotCalled(t, "Assign")
	})

	t.Run("accepted request is no longer assignable", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder().
			Accepted(assistantID, f.clock.Now().Add(-2*time.Hour), f.clock.Now().Add(-time.Hour))
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()

		_, err := f.uc.Assign(ctx, admin, b.ID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrStaleState)
	})

	t.Run("guard failure surfaces as stale state", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()
		f.repo.On("Assign", ctx, b.ID, assistantID, f.clock.Now()).Return(staleErr()).Once()

		_, err := f.uc.Assign(ctx, admin, b.ID, assistantID)
		assert.ErrorIs(t, err, commands.ErrStaleState)
	})

	t.Run("unknown assistant", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()
		f.repo.On("Assign", ctx, b.ID, assistantID, f.clock.Now()).
			Return(infra.WrapRepoErr("fk violated", errs.New("violation"), infra.KindForeignKeyViolated)).Once()

		_, err := f.uc.Assign(ctx, admin, b.ID, assistantID)
		assert.ErrorIs(t, err, commands.ErrAssistantNotFound)
	})

	t.Run("missing request", func(t *testing.T) {
		f := newCommandsFixture(t)
		id := uuid.New()
		f.repo.On("FindByID", ctx, id).Return(nil, notFoundErr()).Once()

		_, err := f.uc.Assign(ctx, admin, id, assistantID)
		assert.ErrorIs(t, err, commands.ErrRequestNotFound)
	})
}

func TestAcceptDecline(t *testing.T) {
	ctx := context.Background()
	assistant := builder.NewStaffBuilder().AsAssistant().BuildActor()

	awaiting := func(f *commandsFixture) *builder.RequestBuilder {
		return builder.NewRequestBuilder().Assigned(assistant.ID, f.clock.Now().Add(-30*time.Minute))
	}

	t.Run("assigned assistant accepts", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := awaiting(f)

		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()
		f.repo.On("Accept", ctx, b.ID, assistant.ID, f.clock.Now()).Return(nil).Once()
		f.expectNotify()
		f.readStore.On("FindByID", ctx, b.ID).Return(b.BuildView(), nil).Once()

		_, err := f.uc.Accept(ctx, assistant, b.ID)
		assert.NoError(t, err)
		f.repo.AssertExpectations(t)
	})

	t.Run("second accept is a conflict", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder().
			Accepted(assistant.ID, f.clock.Now().Add(-time.Hour), f.clock.Now().Add(-30*time.Minute))
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()

		_, err := f.uc.Accept(ctx, assistant, b.ID)
		assert.ErrorIs(t, err, commands.ErrStaleState)
		f.repo.AssertNotCalled(t, "Accept")
	})

	t.Run("only the assigned assistant may respond", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := awaiting(f)
		interloper := builder.NewStaffBuilder().AsAssistant().BuildActor()
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Twice()

		_, err := f.uc.Accept(ctx, interloper, b.ID)
		assert.ErrorIs(t, err, commands.ErrPermissionDenied)

		_, err = f.uc.Decline(ctx, interloper, b.ID)
		assert.ErrorIs(t, err, commands.ErrPermissionDenied)
	})

	t.Run("decline returns the request to pending", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := awaiting(f)

		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()
		f.repo.On("Decline", ctx, b.ID, assistant.ID, f.clock.Now()).Return(nil).Once()
		f.expectNotify()
		reverted := builder.NewRequestBuilder()
		reverted.ID = b.ID
		reverted.DeclinedBy = []uuid.UUID{assistant.ID}
		f.readStore.On("FindByID", ctx, b.ID).Return(reverted.BuildView(), nil).Once()

		view, err := f.uc.Decline(ctx, assistant, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "pending", view.Status)
		assert.Contains(t, view.DeclinedBy, assistant.ID)
	})

	t.Run("decline race surfaces as stale state", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := awaiting(f)
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()
		f.repo.On("Decline", ctx, b.ID, assistant.ID, f.clock.Now()).Return(staleErr()).Once()

		_, err := f.uc.Decline(ctx, assistant, b.ID)
		assert.ErrorIs(t, err, commands.ErrStaleState)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	admin := builder.NewStaffBuilder().AsAdmin().BuildActor()

	t.Run("stylist cancels own pending request", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()
		owner := builder.NewStaffBuilder().BuildActor()
		b.StylistID = owner.ID

		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()
		f.repo.On("Cancel", ctx, b.ID, f.clock.Now()).Return(nil).Once()
		f.expectNotify()
		f.readStore.On("FindByID", ctx, b.ID).Return(b.BuildView(), nil).Once()

		_, err := f.uc.Cancel(ctx, owner, b.ID)
		assert.NoError(t, err)
	})

	t.Run("cancelling a terminal request is a conflict", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()
		b.Status = request.StatusCancelled
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()

		_, err := f.uc.Cancel(ctx, admin, b.ID)
		assert.ErrorIs(t, err, commands.ErrStaleState)
	})

	t.Run("assigned request past its window cannot be cancelled", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder().Assigned(uuid.New(), f.clock.Now())
		b.Date = f.clock.Now().AddDate(0, 0, -2)
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()

		_, err := f.uc.Cancel(ctx, admin, b.ID)
		assert.ErrorIs(t, err, commands.ErrWindowPassed)
		f.repo.AssertNotCalled(t, "Cancel")
	})

	t.Run("a stranger cannot cancel", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder()
		stranger := builder.NewStaffBuilder().BuildActor()
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()

		_, err := f.uc.Cancel(ctx, stranger, b.ID)
		assert.ErrorIs(t, err, commands.ErrPermissionDenied)
	})
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	owner := builder.NewStaffBuilder().BuildActor()

	t.Run("accepted request completes", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder().
			Accepted(uuid.New(), f.clock.Now().Add(-3*time.Hour), f.clock.Now().Add(-2*time.Hour))
		b.StylistID = owner.ID

		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()
		f.repo.On("Complete", ctx, b.ID, f.clock.Now()).Return(nil).Once()
		f.expectNotify()
		f.readStore.On("FindByID", ctx, b.ID).Return(b.BuildView(), nil).Once()

		_, err := f.uc.Complete(ctx, owner, b.ID)
		assert.NoError(t, err)
	})

	t.Run("unaccepted request cannot complete", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewRequestBuilder().Assigned(uuid.New(), f.clock.Now())
		b.StylistID = owner.ID
		f.repo.On("FindByID", ctx, b.ID).Return(b.BuildDomain(), nil).Once()

		_, err := f.uc.Complete(ctx, owner, b.ID)
		assert.ErrorIs(t, err, commands.ErrStaleState)
		f.repo.AssertNotCalled(t, "Complete")
	})
}
