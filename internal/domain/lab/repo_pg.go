package lab

import (
	"context"
	"fmt"

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

const testCols = `id, patient_id, test_date, test_name, result_positive_reading,
	result_negative_reading, created_at, updated_at`

func scanTest(row pgx.Row) (*Test, error) {
	var t Test
	err := row.Scan(&t.ID, &t.PatientID, &t.TestDate, &t.TestName,
		&t.ResultPositiveReading, &t.ResultNegativeReading, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Test) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO lab_tests (id, patient_id, test_date, test_name,
			result_positive_reading, result_negative_reading)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.PatientID, t.TestDate, t.TestName,
		t.ResultPositiveReading, t.ResultNegativeReading)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Test, error) {
	return scanTest(r.conn(ctx).QueryRow(ctx,
		`SELECT `+testCols+` FROM lab_tests WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, t *Test) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE lab_tests SET test_date = $2, test_name = $3,
			result_positive_reading = $4, result_negative_reading = $5,
			updated_at = NOW()
		WHERE id = $1`,
		t.ID, t.TestDate, t.TestName, t.ResultPositiveReading, t.ResultNegativeReading)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM lab_tests WHERE id = $1`, id)
	return err
}

// dateFilter appends test_date bounds to the query.
func dateFilter(sql string, dr DateRange, args []interface{}) (string, []interface{}) {
	if !dr.Start.IsZero() {
		args = append(args, dr.Start)
		sql += fmt.Sprintf(" AND lt.test_date >= $%d", len(args))
	}
	if !dr.End.IsZero() {
		args = append(args, dr.End)
		sql += fmt.Sprintf(" AND lt.test_date <= $%d", len(args))
	}
	return sql, args
}

func (r *repoPG) List(ctx context.Context, dr DateRange) ([]*ListItem, error) {
	sql := `
		SELECT lt.id, lt.patient_id, lt.test_date, lt.test_name,
			lt.result_positive_reading, lt.result_negative_reading,
			lt.created_at, lt.updated_at,
			p.name, p.husband_father_name, p.sex
		FROM lab_tests lt
		JOIN patients p ON lt.patient_id = p.id
		WHERE TRUE`
	sql, args := dateFilter(sql, dr, nil)
	sql += ` ORDER BY lt.test_date DESC, p.name ASC`

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ListItem
	for rows.Next() {
		var it ListItem
		if err := rows.Scan(&it.ID, &it.PatientID, &it.TestDate, &it.TestName,
			&it.ResultPositiveReading, &it.ResultNegativeReading,
			&it.CreatedAt, &it.UpdatedAt,
			&it.PatientName, &it.HusbandFatherName, &it.Sex); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *repoPG) CountByTest(ctx context.Context, dr DateRange) ([]*CountRow, error) {
	sql := `
		SELECT lt.test_name,
			COUNT(lt.id),
			COUNT(*) FILTER (WHERE lt.result_positive_reading IS NOT NULL AND lt.result_positive_reading <> ''),
			COUNT(*) FILTER (WHERE lt.result_negative_reading IS NOT NULL AND lt.result_negative_reading <> '')
		FROM lab_tests lt
		WHERE TRUE`
	sql, args := dateFilter(sql, dr, nil)
	sql += ` GROUP BY lt.test_name ORDER BY lt.test_name ASC`

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*CountRow
	for rows.Next() {
		var c CountRow
		if err := rows.Scan(&c.TestName, &c.TotalTests, &c.Positive, &c.Negative); err != nil {
			return nil, err
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}
