package lab

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when the lab record id does not exist.
var ErrNotFound = errors.New("lab record not found")

type ActivityRecorder interface {
	Record(ctx context.Context, action, details string)
}

// PatientResolver looks up a patient's display name for the activity log.
type PatientResolver interface {
	PatientName(ctx context.Context, id uuid.UUID) (string, error)
}

type Service struct {
	repo     Repository
	rec      ActivityRecorder
	patients PatientResolver
}

func NewService(repo Repository, rec ActivityRecorder, patients PatientResolver) *Service {
	return &Service{repo: repo, rec: rec, patients: patients}
}

func (s *Service) Create(ctx context.Context, t *Test) error {
	if t.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if t.TestDate.IsZero() {
		return fmt.Errorf("test_date is required")
	}
	if t.TestName == "" {
		return fmt.Errorf("test_name is required")
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}

	label := "ID: " + t.PatientID.String()
	if s.patients != nil {
		if name, err := s.patients.PatientName(ctx, t.PatientID); err == nil && name != "" {
			label = name
		}
	}
	s.rec.Record(ctx, "Lab Record Added", fmt.Sprintf("New lab record for %s (Test: %s)", label, t.TestName))
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Test, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Update rewrites the test result fields; the patient link is immutable.
func (s *Service) Update(ctx context.Context, t *Test) error {
	existing, err := s.repo.GetByID(ctx, t.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	t.PatientID = existing.PatientID

	if err := s.repo.Update(ctx, t); err != nil {
		return err
	}
	s.rec.Record(ctx, "Lab Record Updated", fmt.Sprintf("Lab record (ID: %s) was updated.", t.ID))
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.rec.Record(ctx, "Lab Record Deleted", fmt.Sprintf("Lab record (ID: %s) was deleted.", id))
	return nil
}

func (s *Service) List(ctx context.Context, r DateRange) ([]*ListItem, error) {
	return s.repo.List(ctx, r)
}

func (s *Service) CountByTest(ctx context.Context, r DateRange) ([]*CountRow, error) {
	return s.repo.CountByTest(ctx, r)
}
