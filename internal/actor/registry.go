package actor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

// Registry hands out the one TripActor instance per trip identifier.
// All actors share a single bbolt database; each owns its own bucket.
type Registry struct {
	db *bbolt.DB

	mu     sync.Mutex
	actors map[uuid.UUID]*TripActor
}

// NewRegistry builds a Registry over an already-open bbolt database.
func NewRegistry(db *bbolt.DB) *Registry {
	return &Registry{
		db:     db,
		actors: make(map[uuid.UUID]*TripActor),
	}
}

// Actor returns the actor for id, creating the in-process instance on first
// use. Repeated calls with the same id return the same instance, which is
// what makes the per-trip lock an actual serialization point.
//
// Returning an actor says nothing about whether the trip exists — an actor
// for an unknown id simply reports domain.ErrNotInitialized on Read.
func (r *Registry) Actor(id uuid.UUID) *TripActor {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.actors[id]
	if !ok {
		a = &TripActor{id: id, db: r.db}
		r.actors[id] = a
	}
	return a
}

// Open opens (creating if necessary) the bbolt file backing the actors.
// The one-second timeout turns "another process holds the file lock" into an
// error instead of an indefinite hang at startup.
func Open(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("actor.Open %s: %w", path, err)
	}
	return db, nil
}
