package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhagen/tripchat/backend/internal/actor"
	"github.com/lhagen/tripchat/backend/internal/domain"
	"github.com/lhagen/tripchat/backend/internal/service"
)

// initTrip seeds an initialized actor and returns its identifier.
func initTrip(t *testing.T, reg *actor.Registry) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, reg.Actor(id).Init(actor.Definition{
		Destination: "Paris",
		Days:        5,
		Plan:        testPlan,
	}))
	return id
}

// echoChat replies with a fixed string and captures what generation saw.
type chatCall struct {
	planContext string
	history     []domain.Message
	input       string
}

func echoChat(reply string, calls *[]chatCall) *mockGenerator {
	return &mockGenerator{
		chat: func(_ context.Context, planContext string, history []domain.Message, input string) (string, error) {
			if calls != nil {
				*calls = append(*calls, chatCall{planContext, history, input})
			}
			return reply, nil
		},
	}
}

func TestChatService_Send_EmptyMessage(t *testing.T) {
	reg := newRegistry(t)
	id := initTrip(t, reg)
	msgs := &memMessageRepo{}
	svc := service.NewChatService(reg, echoChat("r", nil), msgs, false)

	_, err := svc.Send(context.Background(), id, "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, msgs.msgs, "nothing may be appended for rejected input")
}

func TestChatService_Send_UninitializedTrip(t *testing.T) {
	reg := newRegistry(t)
	msgs := &memMessageRepo{}
	svc := service.NewChatService(reg, echoChat("r", nil), msgs, false)

	_, err := svc.Send(context.Background(), uuid.New(), "hello")

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
	assert.Empty(t, msgs.msgs, "no message may be appended for an unaddressable trip")
}

func TestChatService_Send_BootstrapTurn_ReplyNotPersisted(t *testing.T) {
	reg := newRegistry(t)
	id := initTrip(t, reg)
	msgs := &memMessageRepo{}
	var calls []chatCall
	svc := service.NewChatService(reg, echoChat("R1", &calls), msgs, false)

	reply, err := svc.Send(context.Background(), id, "What's day 1?")

	require.NoError(t, err)
	assert.Equal(t, "R1", reply)

	// Only the user's own message was recorded; the bootstrap reply is
	// returned to the caller but withheld from the log.
	require.Len(t, msgs.msgs, 1)
	assert.Equal(t, domain.RoleUser, msgs.msgs[0].Role)
	assert.Equal(t, "What's day 1?", msgs.msgs[0].Text)

	// Generation ran against the plan with an empty history.
	require.Len(t, calls, 1)
	assert.Equal(t, testPlan, calls[0].planContext)
	assert.Empty(t, calls[0].history)
	assert.Equal(t, "What's day 1?", calls[0].input)
}

func TestChatService_Send_BootstrapTurn_PersistConfigured(t *testing.T) {
	reg := newRegistry(t)
	id := initTrip(t, reg)
	msgs := &memMessageRepo{}
	svc := service.NewChatService(reg, echoChat("R1", nil), msgs, true)

	_, err := svc.Send(context.Background(), id, "What's day 1?")

	require.NoError(t, err)
	require.Len(t, msgs.msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs.msgs[0].Role)
	assert.Equal(t, domain.RoleAssistant, msgs.msgs[1].Role)
	assert.Equal(t, "R1", msgs.msgs[1].Text)
}

func TestChatService_Send_SecondTurn_AppendsUserThenAssistant(t *testing.T) {
	reg := newRegistry(t)
	id := initTrip(t, reg)
	msgs := &memMessageRepo{}
	var calls []chatCall
	svc := service.NewChatService(reg, echoChat("R", &calls), msgs, false)

	ctx := context.Background()
	_, err := svc.Send(ctx, id, "What's day 1?")
	require.NoError(t, err)

	reply, err := svc.Send(ctx, id, "And day 2?")
	require.NoError(t, err)
	assert.Equal(t, "R", reply)

	// Turn 1 recorded 1 row (user only), turn 2 exactly 2 more, in order.
	require.Len(t, msgs.msgs, 3)
	assert.Equal(t, domain.RoleUser, msgs.msgs[1].Role)
	assert.Equal(t, "And day 2?", msgs.msgs[1].Text)
	assert.Equal(t, domain.RoleAssistant, msgs.msgs[2].Role)

	// The second call saw the prior turn's user message as history, and the
	// new input only as input.
	require.Len(t, calls, 2)
	require.Len(t, calls[1].history, 1)
	assert.Equal(t, "What's day 1?", calls[1].history[0].Text)
	assert.Equal(t, "And day 2?", calls[1].input)
}

func TestChatService_Send_GenerationFailure_NoAssistantAppend(t *testing.T) {
	reg := newRegistry(t)
	id := initTrip(t, reg)
	msgs := &memMessageRepo{
		// Seed prior history so the persisting branch would run.
		msgs: []domain.Message{{TripID: id, Text: "earlier", Role: domain.RoleUser}},
	}
	gen := &mockGenerator{
		chat: func(context.Context, string, []domain.Message, string) (string, error) {
			return "", fmt.Errorf("%w: backend down", domain.ErrGeneration)
		},
	}
	svc := service.NewChatService(reg, gen, msgs, false)

	_, err := svc.Send(context.Background(), id, "hello")

	assert.ErrorIs(t, err, domain.ErrGeneration)
	// The user message committed before the failure and stays committed —
	// fail-fast, no compensating rollback.
	require.Len(t, msgs.msgs, 2)
	assert.Equal(t, domain.RoleUser, msgs.msgs[1].Role)
}

func TestChatService_Send_AppendFailure_SkipsGeneration(t *testing.T) {
	reg := newRegistry(t)
	id := initTrip(t, reg)
	msgs := &memMessageRepo{appendErr: errors.New("disk full")}
	genCalled := false
	gen := &mockGenerator{
		chat: func(context.Context, string, []domain.Message, string) (string, error) {
			genCalled = true
			return "r", nil
		},
	}
	svc := service.NewChatService(reg, gen, msgs, false)

	_, err := svc.Send(context.Background(), id, "hello")

	require.Error(t, err)
	assert.False(t, genCalled, "never fabricate a reply to an unsaved message")
}

func TestChatService_History(t *testing.T) {
	reg := newRegistry(t)
	id := initTrip(t, reg)
	msgs := &memMessageRepo{msgs: []domain.Message{
		{TripID: id, Text: "a", Role: domain.RoleUser},
		{TripID: id, Text: "b", Role: domain.RoleAssistant},
	}}
	svc := service.NewChatService(reg, echoChat("r", nil), msgs, false)

	got, err := svc.History(context.Background(), id)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
}

func TestChatService_History_Empty(t *testing.T) {
	reg := newRegistry(t)
	id := initTrip(t, reg)
	svc := service.NewChatService(reg, echoChat("r", nil), &memMessageRepo{}, false)

	got, err := svc.History(context.Background(), id)

	require.NoError(t, err)
	assert.Empty(t, got)
}
