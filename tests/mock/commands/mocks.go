//go:build unit

// Package commandsmock provides hand-written testify doubles for the
// write-side ports.
package commandsmock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"salon-assist/internal/domain/request"
	"salon-assist/internal/domain/staff"
	"salon-assist/internal/usecase/commands"
	"salon-assist/internal/usecase/queries"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *request.AssistantRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.AssistantRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.AssistantRequest), args.Error(1)
}

func (m *MockRequestRepository) Assign(ctx context.Context, id, assistantID uuid.UUID, now time.Time) error {
	args := m.Called(ctx, id, assistantID, now)
	return args.Error(0)
}

func (m *MockRequestRepository) Accept(ctx context.Context, id, assistantID uuid.UUID, now time.Time) error {
	args := m.Called(ctx, id, assistantID, now)
	return args.Error(0)
}

func (m *MockRequestRepository) Decline(ctx context.Context, id, assistantID uuid.UUID, now time.Time) error {
	args := m.Called(ctx, id, assistantID, now)
	return args.Error(0)
}

func (m *MockRequestRepository) Cancel(ctx context.Context, id uuid.UUID, now time.Time) error {
	args := m.Called(ctx, id, now)
	return args.Error(0)
}

func (m *MockRequestRepository) Complete(ctx context.Context, id uuid.UUID, now time.Time) error {
	args := m.Called(ctx, id, now)
	return args.Error(0)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.LocationSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commands.LocationSnapshot), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Enqueue(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	args := m.Called(ctx, kind, topic, payload, runAt)
	return args.Error(0)
}

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) FindAssistant(ctx context.Context, id uuid.UUID) (*commands.AssistantSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commands.AssistantSnapshot), args.Error(1)
}

func (m *MockAvailabilityRepository) ListActiveAssistants(ctx context.Context) ([]*commands.AssistantSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commands.AssistantSnapshot), args.Error(1)
}

type MockRequestCommands struct {
	mock.Mock
}

func (m *MockRequestCommands) Create(ctx context.Context, actor staff.Actor, p commands.CreateRequestParams) (*queries.RequestView, error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestView), args.Error(1)
}

func (m *MockRequestCommands) Assign(ctx context.Context, actor staff.Actor, requestID, assistantID uuid.UUID) (*queries.RequestView, error) {
	args := m.Called(ctx, actor, requestID, assistantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestView), args.Error(1)
}

func (m *MockRequestCommands) Accept(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestView), args.Error(1)
}

func (m *MockRequestCommands) Decline(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestView), args.Error(1)
}

func (m *MockRequestCommands) Cancel(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestView), args.Error(1)
}

func (m *MockRequestCommands) Complete(ctx context.Context, actor staff.Actor, requestID uuid.UUID) (*queries.RequestView, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.RequestView), args.Error(1)
}

type MockAssignmentResolver struct {
	mock.Mock
}

func (m *MockAssignmentResolver) Resolve(ctx context.Context, actor staff.Actor, requestID, assistantID uuid.UUID) (*commands.ResolveResult, error) {
	args := m.Called(ctx, actor, requestID, assistantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commands.ResolveResult), args.Error(1)
}

func (m *MockAssignmentResolver) Candidates(ctx context.Context, actor staff.Actor, requestID uuid.UUID) ([]commands.AssignmentCandidate, error) {
	args := m.Called(ctx, actor, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commands.AssignmentCandidate), args.Error(1)
}
