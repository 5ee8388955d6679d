package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshansh/outreach-clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const medCols = `id, name, stock_count, issued_quantity, expiration_date, created_at, updated_at`

func scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.Name, &m.StockCount, &m.IssuedQuantity,
		&m.ExpirationDate, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Medicine) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medicine_inventory (id, name, stock_count, issued_quantity, expiration_date)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.StockCount, m.IssuedQuantity, m.ExpirationDate)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return scanMedicine(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medCols+` FROM medicine_inventory WHERE id = $1`, id))
}

func (r *repoPG) GetByName(ctx context.Context, name string) (*Medicine, error) {
	return scanMedicine(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medCols+` FROM medicine_inventory WHERE name = $1 ORDER BY id LIMIT 1`, name))
}

// Duplicate names are legal in this schema; ORDER BY id makes the winner of a
// name lookup deterministic.
func (r *repoPG) GetByNameForUpdate(ctx context.Context, name string) (*Medicine, error) {
	return scanMedicine(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medCols+` FROM medicine_inventory WHERE name = $1 ORDER BY id LIMIT 1 FOR UPDATE`, name))
}

func (r *repoPG) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return scanMedicine(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medCols+` FROM medicine_inventory WHERE id = $1 FOR UPDATE`, id))
}

func (r *repoPG) AddIssued(ctx context.Context, id uuid.UUID, delta int) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medicine_inventory
		SET issued_quantity = issued_quantity + $2, updated_at = NOW()
		WHERE id = $1`, id, delta)
	return err
}

func (r *repoPG) SetStock(ctx context.Context, id uuid.UUID, stockCount int) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medicine_inventory
		SET stock_count = $2, updated_at = NOW()
		WHERE id = $1`, id, stockCount)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medicine_inventory WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context) ([]*Medicine, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+medCols+` FROM medicine_inventory ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *repoPG) CountLowStock(ctx context.Context, threshold int) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(id) FROM medicine_inventory
		WHERE stock_count - issued_quantity <= $1`, threshold).Scan(&count)
	return count, err
}
