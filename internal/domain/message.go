package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one entry in a trip's append-only conversation log.
// Messages are never mutated or deleted, and their order within a trip is the
// store's insertion order — never client-supplied.
type Message struct {
	TripID    uuid.UUID `json:"trip_id"`
	Text      string    `json:"text"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
