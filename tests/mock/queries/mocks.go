//go:build unit

// Package queriesmock provides hand-written testify doubles for the
// read-side ports.
package queriesmock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"salon-assist/internal/domain/conflict"
	"salon-assist/internal/domain/request"
	"salon-assist/internal/domain/staff"
	"salon-assist/internal/usecase/queries"
)

type MockRequestReadStore struct {
	mock.Mock
}

func (m *MockRequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestView), args.Error(1)
}

func (m *MockRequestReadStore) ListByStylist(ctx context.Context, stylistID uuid.UUID, locationID *uuid.UUID) ([]*queries.RequestListItem, error) {
	args := m.Called(ctx, stylistID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.RequestListItem), args.Error(1)
}

func (m *MockRequestReadStore) ListByAssistant(ctx context.Context, assistantID uuid.UUID, locationID *uuid.UUID) ([]*queries.RequestListItem, error) {
	args := m.Called(ctx, assistantID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.RequestListItem), args.Error(1)
}

func (m *MockRequestReadStore) ListAll(ctx context.Context, locationID *uuid.UUID) ([]*queries.RequestListItem, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.RequestListItem), args.Error(1)
}

func (m *MockRequestReadStore) ListAwaitingResponse(ctx context.Context) ([]*queries.AwaitingResponseRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.AwaitingResponseRow), args.Error(1)
}

type MockStaffReadStore struct {
	mock.Mock
}

func (m *MockStaffReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedStaffView, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*queries.AuthorizedStaffView), args.String(1), args.Error(2)
}

func (m *MockStaffReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedStaffView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.AuthorizedStaffView), args.Error(1)
}

type MockConflictQueries struct {
	mock.Mock
}

func (m *MockConflictQueries) ListConflicts(ctx context.Context, locationID *uuid.UUID) (map[uuid.UUID][]queries.ConflictView, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]queries.ConflictView), args.Error(1)
}

func (m *MockConflictQueries) ConflictsForParty(ctx context.Context, partyID uuid.UUID, window request.TimeWindow) ([]queries.ConflictView, error) {
	args := m.Called(ctx, partyID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.ConflictView), args.Error(1)
}

type MockActiveRequestReadStore struct {
	mock.Mock
}

func (m *MockActiveRequestReadStore) ListActive(ctx context.Context, locationID *uuid.UUID) ([]conflict.ActiveRequest, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]conflict.ActiveRequest), args.Error(1)
}

type MockAppointmentSnapshotSource struct {
	mock.Mock
}

func (m *MockAppointmentSnapshotSource) Fetch(ctx context.Context, dates []time.Time, partyIDs []uuid.UUID) ([]conflict.AppointmentSnapshot, error) {
	args := m.Called(ctx, dates, partyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]conflict.AppointmentSnapshot), args.Error(1)
}

type MockRequestQueries struct {
	mock.Mock
}

func (m *MockRequestQueries) GetByID(ctx context.Context, actor staff.Actor, id uuid.UUID) (*queries.RequestView, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestView), args.Error(1)
}

func (m *MockRequestQueries) ListByStylist(ctx context.Context, stylistID uuid.UUID, locationID *uuid.UUID) ([]*queries.RequestListItem, error) {
	args := m.Called(ctx, stylistID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.RequestListItem), args.Error(1)
}

func (m *MockRequestQueries) ListByAssistant(ctx context.Context, assistantID uuid.UUID, locationID *uuid.UUID) ([]*queries.RequestListItem, error) {
	args := m.Called(ctx, assistantID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.RequestListItem), args.Error(1)
}

func (m *MockRequestQueries) ListAll(ctx context.Context, locationID *uuid.UUID) ([]*queries.RequestListItem, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.RequestListItem), args.Error(1)
}

func (m *MockRequestQueries) ListNeedingAttention(ctx context.Context) ([]*queries.AttentionItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.AttentionItem), args.Error(1)
}
