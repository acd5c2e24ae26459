package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lhagen/tripchat/backend/internal/actor"
	"github.com/lhagen/tripchat/backend/internal/domain"
	"github.com/lhagen/tripchat/backend/internal/llm"
	"github.com/lhagen/tripchat/backend/internal/repo"
	"github.com/lhagen/tripchat/backend/testutil"
)

// newRegistry returns an actor registry over a throwaway bbolt file.
// Service tests use real actors — they are cheap and the serialization
// behavior is part of what is under test.
func newRegistry(t *testing.T) *actor.Registry {
	t.Helper()
	return actor.NewRegistry(testutil.NewBoltDB(t))
}

// mockGenerator is a scripted test double for llm.Generator.
// Set only the function fields your test needs.
type mockGenerator struct {
	createPlan func(ctx context.Context, destination string, days int) (llm.PlanResult, error)
	chat       func(ctx context.Context, planContext string, history []domain.Message, input string) (string, error)
}

func (m *mockGenerator) CreatePlan(ctx context.Context, destination string, days int) (llm.PlanResult, error) {
	return m.createPlan(ctx, destination, days)
}

func (m *mockGenerator) Chat(ctx context.Context, planContext string, history []domain.Message, input string) (string, error) {
	return m.chat(ctx, planContext, history, input)
}

var _ llm.Generator = (*mockGenerator)(nil)

// mockTripRepo is a function-field test double for repo.TripRepo.
type mockTripRepo struct {
	create func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	get    func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list   func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.get(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockPlanRepo is a function-field test double for repo.PlanRepo.
type mockPlanRepo struct {
	create func(ctx context.Context, plan domain.Plan) (domain.Plan, error)
	get    func(ctx context.Context, tripID uuid.UUID) (domain.Plan, error)
}

func (m *mockPlanRepo) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	return m.create(ctx, plan)
}
func (m *mockPlanRepo) GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.Plan, error) {
	return m.get(ctx, tripID)
}

var _ repo.PlanRepo = (*mockPlanRepo)(nil)

// memMessageRepo is an in-memory repo.MessageRepo that records appends in
// order, which is exactly what the chat-turn tests need to assert. Error
// fields, when set, make the corresponding operation fail.
type memMessageRepo struct {
	msgs []domain.Message

	appendErr error
	existsErr error
	listErr   error
}

func (m *memMessageRepo) Append(_ context.Context, msg domain.Message) (domain.Message, error) {
	if m.appendErr != nil {
		return domain.Message{}, m.appendErr
	}
	msg.CreatedAt = time.Now().UTC()
	m.msgs = append(m.msgs, msg)
	return msg, nil
}

func (m *memMessageRepo) Exists(_ context.Context, tripID uuid.UUID) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, msg := range m.msgs {
		if msg.TripID == tripID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memMessageRepo) ListByTrip(_ context.Context, tripID uuid.UUID) ([]domain.Message, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Message
	for _, msg := range m.msgs {
		if msg.TripID == tripID {
			out = append(out, msg)
		}
	}
	return out, nil
}

var _ repo.MessageRepo = (*memMessageRepo)(nil)
