package followup

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akshansh/outreach-clinic/internal/domain/inventory"
	"github.com/akshansh/outreach-clinic/internal/platform/db"
)

// ErrNotFound is returned when the follow-up id does not exist.
var ErrNotFound = errors.New("follow-up record not found")

// Ledger is the slice of the inventory service the coordinator needs: apply
// one signed issued-quantity change inside the current unit of work.
type Ledger interface {
	ApplyDelta(ctx context.Context, name string, delta int) error
}

// PatientResolver looks up a patient's display name for the activity log.
type PatientResolver interface {
	PatientName(ctx context.Context, id uuid.UUID) (string, error)
}

// ActivityRecorder appends an entry to the activity log. Implementations
// never fail into the caller's path.
type ActivityRecorder interface {
	Record(ctx context.Context, action, details string)
}

// Service coordinates follow-up writes with the inventory ledger: the
// follow-up row and every stock movement it implies commit or roll back as
// one unit.
type Service struct {
	repo     Repository
	ledger   Ledger
	run      db.TxRunner
	rec      ActivityRecorder
	patients PatientResolver
}

func NewService(repo Repository, ledger Ledger, run db.TxRunner, rec ActivityRecorder, patients PatientResolver) *Service {
	return &Service{repo: repo, ledger: ledger, run: run, rec: rec, patients: patients}
}

// Create stores a follow-up and issues every medicine its prescription
// names, in order of appearance. Any issuance failure (unknown medicine,
// insufficient stock) aborts the whole thing, follow-up row included.
func (s *Service) Create(ctx context.Context, f *FollowUp) error {
	if f.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if f.FollowUpDate.IsZero() {
		return fmt.Errorf("follow_up_date is required")
	}

	err := s.run(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, f); err != nil {
			return err
		}
		for _, med := range inventory.ParsePrescription(f.MedicinePrescribed) {
			if err := s.ledger.ApplyDelta(ctx, med.Name, med.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.rec.Record(ctx, "Follow-up Added", fmt.Sprintf("New follow-up added for patient: %s on date %s",
		s.patientLabel(ctx, f.PatientID), f.FollowUpDate.Format("2006-01-02")))
	return nil
}

// Update replaces a follow-up and reconciles the ledger against the old
// prescription: per medicine, old quantities count negative and new ones
// positive, and only the net change is applied. Saving an unchanged
// prescription therefore moves no stock at all. Medicines are reconciled in
// name order; zero nets are skipped entirely.
func (s *Service) Update(ctx context.Context, f *FollowUp) error {
	err := s.run(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, f.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if err := s.repo.Update(ctx, f); err != nil {
			return err
		}

		delta := prescriptionDelta(old.MedicinePrescribed, f.MedicinePrescribed)
		for _, name := range sortedNames(delta) {
			if err := s.ledger.ApplyDelta(ctx, name, delta[name]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.rec.Record(ctx, "Follow-up Updated", fmt.Sprintf("Follow-up record (ID: %s) updated for patient: %s",
		f.ID, s.patientLabel(ctx, f.PatientID)))
	return nil
}

// Delete removes a follow-up. Stock issued for its prescription is NOT
// returned to the shelf: the medicine left the camp with the patient, so the
// ledger keeps the issuance.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.rec.Record(ctx, "Follow-up Deleted", fmt.Sprintf("Follow-up record (ID: %s) deleted for patient: %s",
		id, s.patientLabel(ctx, f.PatientID)))
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*FollowUp, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*FollowUp, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// patientLabel is best effort; the activity line falls back to the raw id.
func (s *Service) patientLabel(ctx context.Context, id uuid.UUID) string {
	if s.patients != nil {
		if name, err := s.patients.PatientName(ctx, id); err == nil && name != "" {
			return name
		}
	}
	return "ID: " + id.String()
}
