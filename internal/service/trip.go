// Package service contains the business logic for the trip chat backend.
// Services validate inputs, enforce the creation and chat-turn protocols, and
// orchestrate the trip actors, the conversation log repos, and the generation
// backend. No SQL lives here — services depend on repo interfaces, not
// implementations.
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

// TripService implements trip creation and definition reads.
type TripService struct {
	actors *actor.Registry
	gen    llm.Generator
	trips  repo.TripRepo
	plans  repo.PlanRepo
}

// NewTripService constructs a TripService.
func NewTripService(actors *actor.Registry, gen llm.Generator, trips repo.TripRepo, plans repo.PlanRepo) *TripService {
	return &TripService{actors: actors, gen: gen, trips: trips, plans: plans}
}

// CreateTripInput carries the caller-supplied fields of the creation flow.
type CreateTripInput struct {
	Destination string
	Days        int
}

// Create runs the trip creation flow and returns the new trip identifier.
//
// The order is strict and each failure is terminal with no rollback of
// earlier steps: generate the plan first (so a generation failure creates
// nothing at all), then initialize the actor (so a log-store row never exists
// without an actor), then write the trip row, then the plan row. A failure
// after actor init leaves an initialized actor with no log-store rows — an
// accepted window; re-running creation mints a fresh identifier.
func (s *TripService) Create(ctx context.Context, in CreateTripInput) (uuid.UUID, error) {
	if strings.TrimSpace(in.Destination) == "" {
		return uuid.Nil, fmt.Errorf("service.TripService.Create: %w: destination is required", domain.ErrValidation)
	}
	if in.Days <= 0 {
		return uuid.Nil, fmt.Errorf("service.TripService.Create: %w: days must be a positive number", domain.ErrValidation)
	}

	tripID := uuid.New()

	plan, err := s.gen.CreatePlan(ctx, in.Destination, in.Days)
	if err != nil {
		return uuid.Nil, fmt.Errorf("service.TripService.Create: %w", err)
	}

	err = s.actors.Actor(tripID).Init(actor.Definition{
		Destination: in.Destination,
		Days:        in.Days,
		Plan:        plan.Text,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("service.TripService.Create: init actor: %w", err)
	}

	if _, err := s.trips.Create(ctx, domain.Trip{
		ID:          tripID,
		Destination: in.Destination,
		Days:        in.Days,
	}); err != nil {
		return uuid.Nil, fmt.Errorf("service.TripService.Create: trip row: %w", err)
	}

	if _, err := s.plans.Create(ctx, domain.Plan{
		TripID:    tripID,
		Plan:      plan.Text,
		InputText: plan.Prompt,
	}); err != nil {
		return uuid.Nil, fmt.Errorf("service.TripService.Create: plan row: %w", err)
	}

	return tripID, nil
}

// Definition returns the trip's canonical definition straight from its actor,
// bypassing the log store. Returns domain.ErrNotInitialized for an identifier
// whose actor has no state.
func (s *TripService) Definition(ctx context.Context, id uuid.UUID) (actor.Definition, error) {
	def, err := s.actors.Actor(id).Read()
	if err != nil {
		return actor.Definition{}, fmt.Errorf("service.TripService.Definition: %w", err)
	}
	return def, nil
}

// List returns a page of trip shadow rows from the log store. Bulk reads
// never go through the actors.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	return trips, total, nil
}
