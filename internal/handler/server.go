// Package handler implements the HTTP layer of the trip chat backend.
// All handlers are methods on Server, split into resource-specific files
// (trip.go, chat.go, health.go) that share the same struct and dependencies.
// Handlers translate HTTP to service calls and sentinel errors to statuses —
// no business logic lives here.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lhagen/tripchat/backend/internal/actor"
	"github.com/lhagen/tripchat/backend/internal/domain"
	"github.com/lhagen/tripchat/backend/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the actors or the database.
type TripServicer interface {
	Create(ctx context.Context, in service.CreateTripInput) (uuid.UUID, error)
	Definition(ctx context.Context, id uuid.UUID) (actor.Definition, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

// ChatServicer defines the conversation operations the handlers depend on.
type ChatServicer interface {
	Send(ctx context.Context, tripID uuid.UUID, text string) (string, error)
	History(ctx context.Context, tripID uuid.UUID) ([]domain.Message, error)
}

// Server holds the handler dependencies. Wire it in main.go via Register.
type Server struct {
	trips TripServicer
	chat  ChatServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, chat ChatServicer) *Server {
	return &Server{trips: trips, chat: chat}
}

// Register mounts every route on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.getHealth)
	r.Get("/", s.getIndex)

	r.Post("/trips", s.createTrip)
	r.Get("/trips", s.listTrips)
	r.Get("/trips/{tripID}", s.getTrip)
	r.Post("/trips/{tripID}/messages", s.postMessage)
	r.Get("/trips/{tripID}/messages", s.listMessages)
}
