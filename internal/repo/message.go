package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/lhagen/tripchat/backend/internal/domain"
)

// MessageRepo defines persistence for the append-only conversation log.
// There is no update or delete: once appended, a message is history.
type MessageRepo interface {
	// Append inserts one message at the end of a trip's log and returns the
	// persisted record (with the store-assigned timestamp).
	Append(ctx context.Context, msg domain.Message) (domain.Message, error)

	// Exists reports whether the trip has any messages at all.
	Exists(ctx context.Context, tripID uuid.UUID) (bool, error)

	// ListByTrip returns a trip's full message log in insertion order.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Message, error)
}

type pgMessageRepo struct {
	db db
}

// NewMessageRepo constructs a MessageRepo backed by the provided db connection.
func NewMessageRepo(db db) MessageRepo {
	return &pgMessageRepo{db: db}
}

// Append inserts one message row and returns the persisted record.
func (r *pgMessageRepo) Append(ctx context.Context, msg domain.Message) (domain.Message, error) {
	const q = `
		INSERT INTO messages (trip_id, message, role)
		VALUES (@trip_id, @message, @role)
		RETURNING trip_id, message, role, created_at`

	args := pgx.NamedArgs{
		"trip_id": msg.TripID,
		"message": msg.Text,
		"role":    string(msg.Role),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanMessage(row)
	if err != nil {
		return domain.Message{}, fmt.Errorf("repo.MessageRepo.Append: %w", err)
	}
	return result, nil
}

// Exists probes for any message belonging to the trip.
func (r *pgMessageRepo) Exists(ctx context.Context, tripID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM messages WHERE trip_id = @trip_id)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.MessageRepo.Exists: %w", err)
	}
	return exists, nil
}

// ListByTrip returns the full log in append order (bigserial id order, which
// is the insertion order regardless of timestamp resolution).
func (r *pgMessageRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Message, error) {
	const q = `
		SELECT trip_id, message, role, created_at
		FROM messages
		WHERE trip_id = @trip_id
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MessageRepo.ListByTrip: scan: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MessageRepo.ListByTrip: rows: %w", err)
	}

	return msgs, nil
}

// scanMessage maps a single database row into a domain.Message.
func scanMessage(s scanner) (domain.Message, error) {
	var (
		m      domain.Message
		tripID pgtype.UUID
		role   string
	)

	err := s.Scan(&tripID, &m.Text, &role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Message{}, domain.ErrNotFound
		}
		return domain.Message{}, err
	}

	m.TripID = uuid.UUID(tripID.Bytes)
	m.Role = domain.Role(role)
	return m, nil
}
