package followup

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, f *FollowUp) error
	GetByID(ctx context.Context, id uuid.UUID) (*FollowUp, error)
	Update(ctx context.Context, f *FollowUp) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByPatient returns a patient's follow-ups, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*FollowUp, error)
}
