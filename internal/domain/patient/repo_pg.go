package patient

import (
	"context"
	"errors"

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

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, name, husband_father_name, age, sex, village_id,
			program_type, caste, registration_date, bpl_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.HusbandFatherName, p.Age, p.Sex, p.VillageID,
		p.ProgramType, p.Caste, p.RegistrationDate, p.BPLStatus)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	var p Patient
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT p.id, p.name, p.husband_father_name, p.age, p.sex, p.village_id,
			COALESCE(v.name, ''), p.program_type, p.caste, p.registration_date,
			p.bpl_status, p.created_at, p.updated_at
		FROM patients p
		LEFT JOIN villages v ON p.village_id = v.id
		WHERE p.id = $1`, id).Scan(
		&p.ID, &p.Name, &p.HusbandFatherName, &p.Age, &p.Sex, &p.VillageID,
		&p.VillageName, &p.ProgramType, &p.Caste, &p.RegistrationDate,
		&p.BPLStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET name = $2, husband_father_name = $3, age = $4,
			sex = $5, village_id = $6, program_type = $7, caste = $8,
			registration_date = $9, bpl_status = $10, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.HusbandFatherName, p.Age, p.Sex, p.VillageID,
		p.ProgramType, p.Caste, p.RegistrationDate, p.BPLStatus)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListNames(ctx context.Context) ([]*NameRef, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, name FROM patients ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []*NameRef
	for rows.Next() {
		var ref NameRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		refs = append(refs, &ref)
	}
	return refs, rows.Err()
}

func (r *repoPG) FindOrCreateVillage(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.conn(ctx).QueryRow(ctx, `SELECT id FROM villages WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, err
	}

	id = uuid.New()
	if _, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO villages (id, name) VALUES ($1, $2)`, id, name); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repoPG) ListVillages(ctx context.Context) ([]*Village, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, name FROM villages ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var villages []*Village
	for rows.Next() {
		var v Village
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		villages = append(villages, &v)
	}
	return villages, rows.Err()
}

func (r *repoPG) DeleteProgramDetails(ctx context.Context, patientID uuid.UUID) error {
	if _, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM anc_details WHERE patient_id = $1`, patientID); err != nil {
		return err
	}
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM pnc_details WHERE patient_id = $1`, patientID)
	return err
}

func (r *repoPG) CreateANC(ctx context.Context, d *ANCDetails) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO anc_details (patient_id, gpal, albumin, tt, fhr,
			gestational_age, fp, contact, remark)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.PatientID, d.GPAL, d.Albumin, d.TT, d.FHR,
		d.GestationalAge, d.FP, d.Contact, d.Remark)
	return err
}

func (r *repoPG) CreatePNC(ctx context.Context, d *PNCDetails) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pnc_details (patient_id, pnc_duration, mother_weight, child_weight)
		VALUES ($1, $2, $3, $4)`,
		d.PatientID, d.PNCDuration, d.MotherWeight, d.ChildWeight)
	return err
}

func (r *repoPG) GetANC(ctx context.Context, patientID uuid.UUID) (*ANCDetails, error) {
	var d ANCDetails
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT patient_id, gpal, albumin, tt, fhr, gestational_age, fp, contact, remark
		FROM anc_details WHERE patient_id = $1`, patientID).Scan(
		&d.PatientID, &d.GPAL, &d.Albumin, &d.TT, &d.FHR,
		&d.GestationalAge, &d.FP, &d.Contact, &d.Remark)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) GetPNC(ctx context.Context, patientID uuid.UUID) (*PNCDetails, error) {
	var d PNCDetails
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT patient_id, pnc_duration, mother_weight, child_weight
		FROM pnc_details WHERE patient_id = $1`, patientID).Scan(
		&d.PatientID, &d.PNCDuration, &d.MotherWeight, &d.ChildWeight)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
