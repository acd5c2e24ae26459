// Package actor implements the per-trip single-writer actor that owns the
// canonical trip definition. Each trip identifier addresses exactly one
// TripActor instance (see Registry), and every operation on that instance runs
// under its lock — no two operations on the same trip execute concurrently.
//
// Definitions are durable: they are written to a bbolt bucket keyed by the
// trip identifier, so actors survive process restarts. The bbolt file is
// private to the actors and has an independent lifecycle from the relational
// conversation log.
package actor

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/lhagen/tripchat/backend/internal/domain"
)

// Definition is the triple a trip actor owns. Once initialized it never
// changes except through a full overwrite by a later Init.
type Definition struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Plan        string `json:"plan"`
}

// Storage keys inside a trip's bucket.
var (
	keyDestination = []byte("destination")
	keyDays        = []byte("days")
	keyPlan        = []byte("plan")
)

// TripActor serializes all operations for one trip identifier.
// Obtain instances through Registry.Actor — constructing two actors for the
// same identifier would defeat the single-writer guarantee.
type TripActor struct {
	id uuid.UUID
	db *bbolt.DB

	// mu is the actor's single logical thread: Init, Read, and whole chat
	// turns (Turn) all serialize on it.
	mu sync.Mutex
}

// Init persists the definition, overwriting any prior value (last-write-wins,
// no field-level merge). All three fields are written in one transaction, so
// a concurrent or later Read never observes a partial definition.
// Validation of the fields is the caller's job.
func (a *TripActor) Init(def Definition) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.init(def)
}

// Read returns the persisted definition, or domain.ErrNotInitialized if no
// Init has ever completed for this trip.
func (a *TripActor) Read() (Definition, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.read()
}

// Turn runs fn with the current definition while holding the actor's lock.
// It is the serialization point for chat turns: two concurrent turns for the
// same trip execute one after the other, and neither can interleave with an
// Init. Returns domain.ErrNotInitialized, without calling fn, when the actor
// has no state.
func (a *TripActor) Turn(fn func(Definition) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	def, err := a.read()
	if err != nil {
		return err
	}
	return fn(def)
}

func (a *TripActor) init(def Definition) error {
	err := a.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(a.bucket())
		if err != nil {
			return err
		}
		if err := b.Put(keyDestination, []byte(def.Destination)); err != nil {
			return err
		}
		if err := b.Put(keyDays, []byte(strconv.Itoa(def.Days))); err != nil {
			return err
		}
		return b.Put(keyPlan, []byte(def.Plan))
	})
	if err != nil {
		return fmt.Errorf("actor.TripActor.Init: %w", err)
	}
	return nil
}

func (a *TripActor) read() (Definition, error) {
	var def Definition
	err := a.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(a.bucket())
		if b == nil {
			return domain.ErrNotInitialized
		}
		dest := b.Get(keyDestination)
		days := b.Get(keyDays)
		plan := b.Get(keyPlan)
		// All three or none: a missing key means the actor was never
		// initialized (Init writes them atomically).
		if dest == nil || days == nil || plan == nil {
			return domain.ErrNotInitialized
		}
		n, err := strconv.Atoi(string(days))
		if err != nil {
			return fmt.Errorf("corrupt days value %q: %w", days, err)
		}
		def = Definition{
			Destination: string(dest),
			Days:        n,
			Plan:        string(plan),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotInitialized) {
			return Definition{}, domain.ErrNotInitialized
		}
		return Definition{}, fmt.Errorf("actor.TripActor.Read: %w", err)
	}
	return def, nil
}

func (a *TripActor) bucket() []byte {
	return []byte(a.id.String())
}
