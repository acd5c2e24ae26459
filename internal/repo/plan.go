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

// PlanRepo defines persistence for the plan rows seeded during trip creation.
type PlanRepo interface {
	// Create inserts the plan row (generated plan text plus the prompt that
	// produced it) and returns the persisted record.
	Create(ctx context.Context, plan domain.Plan) (domain.Plan, error)

	// GetByTrip returns the plan row for a trip.
	// Returns domain.ErrNotFound if the trip has no plan row.
	GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.Plan, error)
}

type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by the provided db connection.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

// Create inserts the plan row and returns the persisted record.
func (r *pgPlanRepo) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	const q = `
		INSERT INTO plans (trip_id, plan, input_text)
		VALUES (@trip_id, @plan, @input_text)
		RETURNING trip_id, plan, input_text, created_at`

	args := pgx.NamedArgs{
		"trip_id":    plan.TripID,
		"plan":       plan.Plan,
		"input_text": plan.InputText,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}
	return result, nil
}

// GetByTrip retrieves a trip's plan row.
func (r *pgPlanRepo) GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.Plan, error) {
	const q = `
		SELECT trip_id, plan, input_text, created_at
		FROM plans
		WHERE trip_id = @trip_id
		ORDER BY id
		LIMIT 1`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	result, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.GetByTrip: %w", err)
	}
	return result, nil
}

// scanPlan maps a single database row into a domain.Plan.
func scanPlan(s scanner) (domain.Plan, error) {
	var (
		p      domain.Plan
		tripID pgtype.UUID
	)

	err := s.Scan(&tripID, &p.Plan, &p.InputText, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Plan{}, domain.ErrNotFound
		}
		return domain.Plan{}, err
	}

	p.TripID = uuid.UUID(tripID.Bytes)
	return p, nil
}
