package lab

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Test) error
	GetByID(ctx context.Context, id uuid.UUID) (*Test, error)
	Update(ctx context.Context, t *Test) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List joins patients and filters by test date, newest first.
	List(ctx context.Context, r DateRange) ([]*ListItem, error)
	// CountByTest tallies results per test name, ordered by name.
	CountByTest(ctx context.Context, r DateRange) ([]*CountRow, error)
}
