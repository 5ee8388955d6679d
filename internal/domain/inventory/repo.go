package inventory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Medicine) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error)
	GetByName(ctx context.Context, name string) (*Medicine, error)
	// GetByIDForUpdate and GetByNameForUpdate lock the medicine row for the
	// remainder of the enclosing transaction. Name lookups resolve duplicate
	// names to the lowest id.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Medicine, error)
	GetByNameForUpdate(ctx context.Context, name string) (*Medicine, error)
	// AddIssued adds delta (possibly negative) to issued_quantity.
	AddIssued(ctx context.Context, id uuid.UUID, delta int) error
	// SetStock replaces stock_count unconditionally.
	SetStock(ctx context.Context, id uuid.UUID, stockCount int) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Medicine, error)
	CountLowStock(ctx context.Context, threshold int) (int, error)
}
