package logbook

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const entryCols = `id, entry_date, time_out, time_in, kms_opening, kms_closing,
	total_kms, fuel_quantity, villages_visited, created_at`

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO logbook (id, entry_date, time_out, time_in, kms_opening,
			kms_closing, total_kms, fuel_quantity, villages_visited)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.EntryDate, e.TimeOut, e.TimeIn, e.KmsOpening,
		e.KmsClosing, e.TotalKms, e.FuelQuantity, e.VillagesVisited)
	return err
}

func (r *repoPG) List(ctx context.Context) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryCols+` FROM logbook ORDER BY entry_date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.TimeOut, &e.TimeIn,
			&e.KmsOpening, &e.KmsClosing, &e.TotalKms, &e.FuelQuantity,
			&e.VillagesVisited, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
