package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akshansh/outreach-clinic/internal/platform/db"
)

// ActivityRecorder appends an entry to the activity log. Implementations
// never fail into the caller's path.
type ActivityRecorder interface {
	Record(ctx context.Context, action, details string)
}

// Service is the inventory ledger: the single authority over stock_count and
// issued_quantity. Everything that changes those numbers goes through it.
type Service struct {
	repo Repository
	run  db.TxRunner
	rec  ActivityRecorder
}

func NewService(repo Repository, run db.TxRunner, rec ActivityRecorder) *Service {
	return &Service{repo: repo, run: run, rec: rec}
}

// GetRemaining reports the remaining stock of the named medicine.
func (s *Service) GetRemaining(ctx context.Context, name string) (int, error) {
	m, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &NotFoundError{Key: name}
		}
		return 0, err
	}
	return m.Remaining(), nil
}

// ApplyDelta adds delta to the named medicine's issued_quantity. It must be
// called inside an existing unit of work: the medicine row stays locked until
// that unit commits or rolls back, which is what serializes concurrent
// issuances of the same medicine.
//
// A positive delta that exceeds remaining stock fails with
// InsufficientStockError and leaves the row untouched. Negative deltas
// (returns) always apply. Zero is a no-op.
func (s *Service) ApplyDelta(ctx context.Context, name string, delta int) error {
	if delta == 0 {
		return nil
	}

	m, err := s.repo.GetByNameForUpdate(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Key: name}
		}
		return err
	}

	if delta > 0 && delta > m.Remaining() {
		return &InsufficientStockError{Name: m.Name, Requested: delta, Remaining: m.Remaining()}
	}

	return s.repo.AddIssued(ctx, m.ID, delta)
}

// Issue dispenses quantity units of a medicine outside the follow-up flow.
// The quantity is validated before any store access.
func (s *Service) Issue(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return &ValidationError{Msg: "issue quantity must be a positive number"}
	}

	var name string
	err := s.run(ctx, func(ctx context.Context) error {
		m, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &NotFoundError{Key: id.String()}
			}
			return err
		}
		if quantity > m.Remaining() {
			return &InsufficientStockError{Name: m.Name, Requested: quantity, Remaining: m.Remaining()}
		}
		name = m.Name
		return s.repo.AddIssued(ctx, m.ID, quantity)
	})
	if err != nil {
		return err
	}
	s.rec.Record(ctx, "Medicine Issued", fmt.Sprintf("Issued %d of %s (ID: %s)", quantity, name, id))
	return nil
}

// Restock replaces a medicine's stock_count. The new count is not checked
// against issued_quantity, so remaining stock can go negative; that matches
// how stock corrections have always worked here and reports surface it.
func (s *Service) Restock(ctx context.Context, id uuid.UUID, stockCount int) error {
	if stockCount < 0 {
		return &ValidationError{Msg: "stock count must not be negative"}
	}

	err := s.run(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &NotFoundError{Key: id.String()}
			}
			return err
		}
		return s.repo.SetStock(ctx, id, stockCount)
	})
	if err != nil {
		return err
	}
	s.rec.Record(ctx, "Stock Updated", fmt.Sprintf("Stock updated for medicine ID: %s to %d", id, stockCount))
	return nil
}

// Add creates a new medicine with nothing issued yet. Names are not required
// to be unique; a duplicate gets its own independent row.
func (s *Service) Add(ctx context.Context, name string, stockCount int, expirationDate *time.Time) (*Medicine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Msg: "medicine name is required"}
	}
	if stockCount < 0 {
		return nil, &ValidationError{Msg: "stock count must not be negative"}
	}

	m := &Medicine{
		Name:           name,
		StockCount:     stockCount,
		IssuedQuantity: 0,
		ExpirationDate: expirationDate,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.rec.Record(ctx, "Medicine Added", fmt.Sprintf("Added new medicine to inventory: %s", name))
	return m, nil
}

// Remove deletes a medicine unconditionally.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.rec.Record(ctx, "Medicine Deleted", fmt.Sprintf("Deleted medicine from inventory. ID: %s", id))
	return nil
}

// Get returns a single medicine by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Key: id.String()}
		}
		return nil, err
	}
	return m, nil
}

// List returns the full inventory ordered by name, with remaining stock
// derived per item.
func (s *Service) List(ctx context.Context) ([]*ListItem, error) {
	meds, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*ListItem, 0, len(meds))
	for _, m := range meds {
		items = append(items, &ListItem{
			ID:             m.ID,
			Name:           m.Name,
			StockCount:     m.StockCount,
			IssuedQuantity: m.IssuedQuantity,
			Remaining:      m.Remaining(),
			ExpirationDate: m.ExpirationDate,
		})
	}
	return items, nil
}
