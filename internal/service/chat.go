package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lhagen/tripchat/backend/internal/actor"
	"github.com/lhagen/tripchat/backend/internal/domain"
	"github.com/lhagen/tripchat/backend/internal/llm"
	"github.com/lhagen/tripchat/backend/internal/repo"
)

// ChatService implements the chat-turn protocol and history reads.
type ChatService struct {
	actors   *actor.Registry
	gen      llm.Generator
	messages repo.MessageRepo

	// persistBootstrap controls the first-turn branch: when false (the
	// default) the reply to the very first message of a trip is returned but
	// not appended to the log; when true every assistant reply is persisted.
	persistBootstrap bool
}

// NewChatService constructs a ChatService.
func NewChatService(actors *actor.Registry, gen llm.Generator, messages repo.MessageRepo, persistBootstrap bool) *ChatService {
	return &ChatService{
		actors:           actors,
		gen:              gen,
		messages:         messages,
		persistBootstrap: persistBootstrap,
	}
}

// Send runs one chat turn for the trip and returns the assistant's reply.
//
// The whole turn executes inside the trip actor's lock, so two concurrent
// turns for the same trip cannot interleave their appends — the actor is the
// single writer gate for the conversation as well as the definition. Turns
// for different trips run concurrently.
//
// Within a turn the order is: read the definition (an uninitialized actor
// fails the turn before anything is written), check whether any history
// exists (checked before the append, so "no history" means zero prior
// turns), append the user message, generate, and — outside the bootstrap
// branch unless configured otherwise — append the reply.
func (s *ChatService) Send(ctx context.Context, tripID uuid.UUID, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("service.ChatService.Send: %w: message is required", domain.ErrValidation)
	}

	var reply string
	err := s.actors.Actor(tripID).Turn(func(def actor.Definition) error {
		// The existence check precedes the append, so "no history" means
		// zero prior turns and the bootstrap branch is actually reachable.
		hasHistory, err := s.messages.Exists(ctx, tripID)
		if err != nil {
			return fmt.Errorf("check history: %w", err)
		}

		// Prior turns only: the new user message is passed to generation as
		// the input, never duplicated into the history.
		var history []domain.Message
		if hasHistory {
			history, err = s.messages.ListByTrip(ctx, tripID)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
		}

		if _, err := s.messages.Append(ctx, domain.Message{
			TripID: tripID,
			Text:   text,
			Role:   domain.RoleUser,
		}); err != nil {
			// The user message was never saved; no generation call is made —
			// never fabricate a reply to an unsaved message.
			return fmt.Errorf("append user message: %w", err)
		}

		reply, err = s.gen.Chat(ctx, def.Plan, history, text)
		if err != nil {
			return err
		}

		// Bootstrap turns deliberately withhold the reply from the log
		// unless configured to always persist.
		if !hasHistory && !s.persistBootstrap {
			return nil
		}

		if _, err := s.messages.Append(ctx, domain.Message{
			TripID: tripID,
			Text:   reply,
			Role:   domain.RoleAssistant,
		}); err != nil {
			return fmt.Errorf("append assistant message: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("service.ChatService.Send: %w", err)
	}

	return reply, nil
}

// History returns the trip's full message log in insertion order. An empty
// slice with a nil error means the trip has no messages yet.
func (s *ChatService) History(ctx context.Context, tripID uuid.UUID) ([]domain.Message, error) {
	msgs, err := s.messages.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ChatService.History: %w", err)
	}
	return msgs, nil
}
