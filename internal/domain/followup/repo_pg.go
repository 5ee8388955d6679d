package followup

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

const followUpCols = `id, patient_id, follow_up_date, pulse, respiratory_rate, temperature,
	blood_pressure, weight_kg, height_cm, random_blood_sugar, haemoglobin,
	known_case_of, history_of, complaint_of, on_examination, treatment_advised,
	medicine_prescribed, follow_up_notes, last_menstrual_period,
	expected_delivery_date, heartbeat, urine_sugar, urine_albumin,
	created_at, updated_at`

func scanFollowUp(row pgx.Row) (*FollowUp, error) {
	var f FollowUp
	err := row.Scan(&f.ID, &f.PatientID, &f.FollowUpDate, &f.Pulse, &f.RespiratoryRate,
		&f.Temperature, &f.BloodPressure, &f.WeightKg, &f.HeightCm,
		&f.RandomBloodSugar, &f.Haemoglobin, &f.KnownCaseOf, &f.HistoryOf,
		&f.ComplaintOf, &f.OnExamination, &f.TreatmentAdvised, &f.MedicinePrescribed,
		&f.FollowUpNotes, &f.LastMenstrualPeriod, &f.ExpectedDeliveryDate,
		&f.Heartbeat, &f.UrineSugar, &f.UrineAlbumin, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (r *repoPG) Create(ctx context.Context, f *FollowUp) error {
	f.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO follow_ups (id, patient_id, follow_up_date, pulse, respiratory_rate,
			temperature, blood_pressure, weight_kg, height_cm, random_blood_sugar,
			haemoglobin, known_case_of, history_of, complaint_of, on_examination,
			treatment_advised, medicine_prescribed, follow_up_notes,
			last_menstrual_period, expected_delivery_date, heartbeat,
			urine_sugar, urine_albumin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)`,
		f.ID, f.PatientID, f.FollowUpDate, f.Pulse, f.RespiratoryRate, f.Temperature,
		f.BloodPressure, f.WeightKg, f.HeightCm, f.RandomBloodSugar, f.Haemoglobin,
		f.KnownCaseOf, f.HistoryOf, f.ComplaintOf, f.OnExamination, f.TreatmentAdvised,
		f.MedicinePrescribed, f.FollowUpNotes, f.LastMenstrualPeriod,
		f.ExpectedDeliveryDate, f.Heartbeat, f.UrineSugar, f.UrineAlbumin)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*FollowUp, error) {
	return scanFollowUp(r.conn(ctx).QueryRow(ctx,
		`SELECT `+followUpCols+` FROM follow_ups WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, f *FollowUp) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE follow_ups SET patient_id = $2, follow_up_date = $3, pulse = $4,
			respiratory_rate = $5, temperature = $6, blood_pressure = $7,
			weight_kg = $8, height_cm = $9, random_blood_sugar = $10,
			haemoglobin = $11, known_case_of = $12, history_of = $13,
			complaint_of = $14, on_examination = $15, treatment_advised = $16,
			medicine_prescribed = $17, follow_up_notes = $18,
			last_menstrual_period = $19, expected_delivery_date = $20,
			heartbeat = $21, urine_sugar = $22, urine_albumin = $23,
			updated_at = NOW()
		WHERE id = $1`,
		f.ID, f.PatientID, f.FollowUpDate, f.Pulse, f.RespiratoryRate, f.Temperature,
		f.BloodPressure, f.WeightKg, f.HeightCm, f.RandomBloodSugar, f.Haemoglobin,
		f.KnownCaseOf, f.HistoryOf, f.ComplaintOf, f.OnExamination, f.TreatmentAdvised,
		f.MedicinePrescribed, f.FollowUpNotes, f.LastMenstrualPeriod,
		f.ExpectedDeliveryDate, f.Heartbeat, f.UrineSugar, f.UrineAlbumin)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM follow_ups WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*FollowUp, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+followUpCols+` FROM follow_ups
		WHERE patient_id = $1
		ORDER BY follow_up_date DESC, created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*FollowUp
	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}
