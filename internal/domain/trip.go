// Package domain contains the core data types for the trip chat backend.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (actor, repo, llm, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the durable shadow copy of a trip definition kept in the
// conversation log store. The authoritative definition (including the
// generated plan text) lives in the trip's actor; this row exists for
// durability and for bulk reads that never touch an actor.
//
// A trip is created exactly once and never updated — there is no update path.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	Days        int       `json:"days"`
	CreatedAt   time.Time `json:"created_at"`
}

// Plan is the seed artifact written once during trip creation: the generated
// plan text together with the prompt text that produced it.
type Plan struct {
	TripID    uuid.UUID `json:"trip_id"`
	Plan      string    `json:"plan"`
	InputText string    `json:"input_text"`
	CreatedAt time.Time `json:"created_at"`
}
