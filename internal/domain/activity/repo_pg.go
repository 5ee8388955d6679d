package activity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// repoPG always writes through the pool, never an enclosing transaction: a
// log entry must not be rolled back with the work it describes, and a failed
// log write must not poison that work either.
type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const entryCols = `id, action, details, created_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Action, &e.Details, &e.CreatedAt)
	return &e, err
}

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activity_log (id, action, details)
		VALUES ($1, $2, $3)`,
		e.ID, e.Action, e.Details)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryCols+` FROM activity_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(id) FROM activity_log`).Scan(&n)
	return n, err
}
