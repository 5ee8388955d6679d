package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akshansh/outreach-clinic/internal/domain/followup"
	"github.com/akshansh/outreach-clinic/internal/platform/db"
)

// ErrNotFound is returned when the patient id does not exist.
var ErrNotFound = errors.New("patient not found")

// ActivityRecorder appends an entry to the activity log. Implementations
// never fail into the caller's path.
type ActivityRecorder interface {
	Record(ctx context.Context, action, details string)
}

// FollowUpLister is the slice of the follow-up store patient details need.
type FollowUpLister interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*followup.FollowUp, error)
}

type Service struct {
	repo      Repository
	followUps FollowUpLister
	run       db.TxRunner
	rec       ActivityRecorder
}

func NewService(repo Repository, followUps FollowUpLister, run db.TxRunner, rec ActivityRecorder) *Service {
	return &Service{repo: repo, followUps: followUps, run: run, rec: rec}
}

// Input is a patient write with its optional program card. The card is only
// stored when it matches the program type.
type Input struct {
	Patient    Patient
	ANCDetails *ANCDetails
	PNCDetails *PNCDetails
}

func (in *Input) validate() error {
	if strings.TrimSpace(in.Patient.Name) == "" {
		return fmt.Errorf("patient name is required")
	}
	if strings.TrimSpace(in.Patient.VillageName) == "" {
		return fmt.Errorf("village name is required")
	}
	if in.Patient.RegistrationDate.IsZero() {
		return fmt.Errorf("registration_date is required")
	}
	return nil
}

// Register stores a new patient, resolving the village by name (creating it
// on first sight) and attaching the ANC or PNC card when the program type
// calls for one, all in one unit of work.
func (s *Service) Register(ctx context.Context, in *Input) (*Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p := &in.Patient
	err := s.run(ctx, func(ctx context.Context) error {
		villageID, err := s.repo.FindOrCreateVillage(ctx, strings.TrimSpace(p.VillageName))
		if err != nil {
			return err
		}
		p.VillageID = villageID

		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		return s.storeProgramDetails(ctx, p, in)
	})
	if err != nil {
		return nil, err
	}

	s.rec.Record(ctx, "Patient Created", fmt.Sprintf("New patient registered: %s (ID: %s)", p.Name, p.ID))
	return p, nil
}

// Update rewrites the patient and replaces its program card wholesale: both
// card tables are cleared first, then the card matching the new program type
// is reinserted. A program switch therefore drops the old card.
func (s *Service) Update(ctx context.Context, in *Input) error {
	if err := in.validate(); err != nil {
		return err
	}

	p := &in.Patient
	err := s.run(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, p.ID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		villageID, err := s.repo.FindOrCreateVillage(ctx, strings.TrimSpace(p.VillageName))
		if err != nil {
			return err
		}
		p.VillageID = villageID

		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		if err := s.repo.DeleteProgramDetails(ctx, p.ID); err != nil {
			return err
		}
		return s.storeProgramDetails(ctx, p, in)
	})
	if err != nil {
		return err
	}

	s.rec.Record(ctx, "Patient Updated", fmt.Sprintf("Patient details updated for %s (ID: %s)", p.Name, p.ID))
	return nil
}

func (s *Service) storeProgramDetails(ctx context.Context, p *Patient, in *Input) error {
	switch {
	case p.ProgramType == ProgramANC && in.ANCDetails != nil:
		in.ANCDetails.PatientID = p.ID
		return s.repo.CreateANC(ctx, in.ANCDetails)
	case p.ProgramType == ProgramPNC && in.PNCDetails != nil:
		in.PNCDetails.PatientID = p.ID
		return s.repo.CreatePNC(ctx, in.PNCDetails)
	}
	return nil
}

// Delete removes a patient. The activity line keeps the name when the row
// still exists, the raw id otherwise.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	label := "ID: " + id.String()
	if p, err := s.repo.GetByID(ctx, id); err == nil {
		label = p.Name
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.rec.Record(ctx, "Patient Deleted", "Patient record deleted: "+label)
	return nil
}

// Details is the full card the patient view renders.
type Details struct {
	Details    *Patient             `json:"details"`
	FollowUps  []*followup.FollowUp `json:"follow_ups"`
	ANCDetails *ANCDetails          `json:"anc_details"`
	PNCDetails *PNCDetails          `json:"pnc_details"`
}

// Get returns one patient row.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Details assembles the patient, its follow-up history (newest first) and
// whichever program card its program type carries.
func (s *Service) Details(ctx context.Context, id uuid.UUID) (*Details, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	followUps, err := s.followUps.ListByPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	if followUps == nil {
		followUps = []*followup.FollowUp{}
	}

	d := &Details{Details: p, FollowUps: followUps}
	switch p.ProgramType {
	case ProgramANC:
		if anc, err := s.repo.GetANC(ctx, id); err == nil {
			d.ANCDetails = anc
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	case ProgramPNC:
		if pnc, err := s.repo.GetPNC(ctx, id); err == nil {
			d.PNCDetails = pnc
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	return d, nil
}

// ListNames returns the id/name pairs for the patient picker.
func (s *Service) ListNames(ctx context.Context) ([]*NameRef, error) {
	return s.repo.ListNames(ctx)
}

// Villages returns every known village, ordered by name.
func (s *Service) Villages(ctx context.Context) ([]*Village, error) {
	return s.repo.ListVillages(ctx)
}

// PatientName resolves an id to a display name for activity log lines.
func (s *Service) PatientName(ctx context.Context, id uuid.UUID) (string, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}
