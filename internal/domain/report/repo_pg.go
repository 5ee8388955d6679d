package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) CountPatients(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(id) FROM patients`).Scan(&n)
	return n, err
}

func (r *repoPG) CountPatientsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(id) FROM patients WHERE registration_date >= $1`, since).Scan(&n)
	return n, err
}

func (r *repoPG) CountFollowUpsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(id) FROM follow_ups WHERE follow_up_date >= $1`, since).Scan(&n)
	return n, err
}

func (r *repoPG) PatientRecords(ctx context.Context, f RecordFilters) ([]*PatientRecord, error) {
	sql := `
		SELECT p.id, p.name, COALESCE(v.name, ''), p.registration_date,
			(SELECT MAX(fu.follow_up_date) FROM follow_ups fu WHERE fu.patient_id = p.id)
		FROM patients p
		LEFT JOIN villages v ON p.village_id = v.id
		WHERE TRUE`
	var args []interface{}
	if f.SearchTerm != "" {
		args = append(args, "%"+f.SearchTerm+"%")
		sql += fmt.Sprintf(" AND p.name ILIKE $%d", len(args))
	}
	if !f.Start.IsZero() {
		args = append(args, f.Start)
		sql += fmt.Sprintf(" AND p.registration_date >= $%d", len(args))
	}
	if !f.End.IsZero() {
		args = append(args, f.End)
		sql += fmt.Sprintf(" AND p.registration_date <= $%d", len(args))
	}
	sql += ` ORDER BY p.name ASC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*PatientRecord, error) {
		var rec PatientRecord
		err := row.Scan(&rec.ID, &rec.Name, &rec.VillageName,
			&rec.RegistrationDate, &rec.LastFollowUp)
		return &rec, err
	})
}

func (r *repoPG) Demographics(ctx context.Context) ([]*DemographicsRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.name,
			COUNT(p.id),
			COUNT(*) FILTER (WHERE p.caste = 'General'),
			COUNT(*) FILTER (WHERE p.caste = 'SC/ST'),
			COUNT(*) FILTER (WHERE p.caste = 'Others')
		FROM patients p
		JOIN villages v ON p.village_id = v.id
		GROUP BY v.name
		ORDER BY v.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*DemographicsRow, error) {
		var d DemographicsRow
		err := row.Scan(&d.VillageName, &d.TotalPatients,
			&d.GeneralCount, &d.SCSTCount, &d.OthersCount)
		return &d, err
	})
}

func (r *repoPG) Visits(ctx context.Context, f VisitFilters) ([]*Visit, error) {
	sql := `
		SELECT * FROM (
			SELECT p.id AS patient_id, p.name AS patient_name,
				COALESCE(v.name, '') AS village_name, p.program_type, p.caste,
				p.registration_date AS visit_date, 'Initial Visit' AS visit_type
			FROM patients p
			LEFT JOIN villages v ON p.village_id = v.id

			UNION ALL

			SELECT fu.patient_id, p.name, COALESCE(v.name, ''), p.program_type,
				p.caste, fu.follow_up_date, 'Follow-up'
			FROM follow_ups fu
			JOIN patients p ON fu.patient_id = p.id
			LEFT JOIN villages v ON p.village_id = v.id
		) all_visits
		WHERE TRUE`
	var args []interface{}
	if !f.Start.IsZero() {
		args = append(args, f.Start)
		sql += fmt.Sprintf(" AND visit_date >= $%d", len(args))
	}
	if !f.End.IsZero() {
		args = append(args, f.End)
		sql += fmt.Sprintf(" AND visit_date <= $%d", len(args))
	}
	if len(f.Villages) > 0 {
		args = append(args, f.Villages)
		sql += fmt.Sprintf(" AND village_name = ANY($%d)", len(args))
	}
	if len(f.Programs) > 0 {
		args = append(args, f.Programs)
		sql += fmt.Sprintf(" AND program_type = ANY($%d)", len(args))
	}
	if len(f.Castes) > 0 {
		args = append(args, f.Castes)
		sql += fmt.Sprintf(" AND caste = ANY($%d)", len(args))
	}
	sql += ` ORDER BY visit_date DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*Visit, error) {
		var v Visit
		err := row.Scan(&v.PatientID, &v.PatientName, &v.VillageName,
			&v.ProgramType, &v.Caste, &v.VisitDate, &v.VisitType)
		return &v, err
	})
}

func (r *repoPG) FollowUpVitals(ctx context.Context, start, end time.Time) ([]*VitalsRow, error) {
	sql := `
		SELECT v.name, p.id, fu.medicine_prescribed, fu.blood_pressure, fu.heartbeat
		FROM follow_ups fu
		JOIN patients p ON fu.patient_id = p.id
		JOIN villages v ON p.village_id = v.id
		WHERE TRUE`
	var args []interface{}
	if !start.IsZero() {
		args = append(args, start)
		sql += fmt.Sprintf(" AND fu.follow_up_date >= $%d", len(args))
	}
	if !end.IsZero() {
		args = append(args, end)
		sql += fmt.Sprintf(" AND fu.follow_up_date <= $%d", len(args))
	}
	sql += ` ORDER BY v.name ASC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*VitalsRow, error) {
		var v VitalsRow
		err := row.Scan(&v.VillageName, &v.PatientID, &v.MedicinePrescribed,
			&v.BloodPressure, &v.Heartbeat)
		return &v, err
	})
}

func (r *repoPG) PatientFacts(ctx context.Context, year int) ([]*PatientFact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM registration_date)::int, sex, age,
			COALESCE(caste, ''), program_type, village_id
		FROM patients
		WHERE EXTRACT(YEAR FROM registration_date) = $1`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*PatientFact, error) {
		var f PatientFact
		err := row.Scan(&f.Month, &f.Sex, &f.Age, &f.Caste, &f.ProgramType, &f.VillageID)
		return &f, err
	})
}

func (r *repoPG) FollowUpFacts(ctx context.Context, year int) ([]*FollowUpFact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM fu.follow_up_date)::int, fu.patient_id,
			p.village_id, COALESCE(fu.complaint_of, ''), COALESCE(fu.haemoglobin, '')
		FROM follow_ups fu
		JOIN patients p ON fu.patient_id = p.id
		WHERE EXTRACT(YEAR FROM fu.follow_up_date) = $1`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*FollowUpFact, error) {
		var f FollowUpFact
		err := row.Scan(&f.Month, &f.PatientID, &f.VillageID, &f.ComplaintOf, &f.Haemoglobin)
		return &f, err
	})
}

func (r *repoPG) LabFacts(ctx context.Context, year int) ([]*LabFact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM lt.test_date)::int, lt.patient_id, p.program_type
		FROM lab_tests lt
		JOIN patients p ON lt.patient_id = p.id
		WHERE EXTRACT(YEAR FROM lt.test_date) = $1`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*LabFact, error) {
		var f LabFact
		err := row.Scan(&f.Month, &f.PatientID, &f.ProgramType)
		return &f, err
	})
}

func (r *repoPG) DumpPatients(ctx context.Context) ([]*PatientDump, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.husband_father_name, p.age, p.sex,
			COALESCE(v.name, ''), p.program_type, p.caste, p.bpl_status,
			p.registration_date
		FROM patients p
		LEFT JOIN villages v ON p.village_id = v.id
		ORDER BY p.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*PatientDump, error) {
		var d PatientDump
		err := row.Scan(&d.ID, &d.Name, &d.HusbandFatherName, &d.Age, &d.Sex,
			&d.VillageName, &d.ProgramType, &d.Caste, &d.BPLStatus, &d.RegistrationDate)
		return &d, err
	})
}

func (r *repoPG) DumpFollowUps(ctx context.Context) ([]*FollowUpDump, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT fu.id, p.name, fu.follow_up_date, fu.blood_pressure,
			fu.haemoglobin, fu.complaint_of, fu.treatment_advised,
			fu.medicine_prescribed, fu.follow_up_notes
		FROM follow_ups fu
		JOIN patients p ON fu.patient_id = p.id
		ORDER BY p.name ASC, fu.follow_up_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*FollowUpDump, error) {
		var d FollowUpDump
		err := row.Scan(&d.ID, &d.PatientName, &d.FollowUpDate, &d.BloodPressure,
			&d.Haemoglobin, &d.ComplaintOf, &d.TreatmentAdvised,
			&d.MedicinePrescribed, &d.FollowUpNotes)
		return &d, err
	})
}

func (r *repoPG) DumpANC(ctx context.Context) ([]*ANCDump, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.name, a.gpal, a.albumin, a.tt, a.fhr, a.gestational_age,
			a.fp, a.contact, a.remark
		FROM anc_details a
		JOIN patients p ON a.patient_id = p.id
		ORDER BY p.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*ANCDump, error) {
		var d ANCDump
		err := row.Scan(&d.PatientName, &d.GPAL, &d.Albumin, &d.TT, &d.FHR,
			&d.GestationalAge, &d.FP, &d.Contact, &d.Remark)
		return &d, err
	})
}

func (r *repoPG) DumpPNC(ctx context.Context) ([]*PNCDump, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.name, n.pnc_duration, n.mother_weight, n.child_weight
		FROM pnc_details n
		JOIN patients p ON n.patient_id = p.id
		ORDER BY p.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows, func(row pgx.Rows) (*PNCDump, error) {
		var d PNCDump
		err := row.Scan(&d.PatientName, &d.PNCDuration, &d.MotherWeight, &d.ChildWeight)
		return &d, err
	})
}

func collect[T any](rows pgx.Rows, scan func(pgx.Rows) (*T, error)) ([]*T, error) {
	var out []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
