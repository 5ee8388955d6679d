package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	// GetByID returns the patient with VillageName resolved.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListNames(ctx context.Context) ([]*NameRef, error)

	// FindOrCreateVillage resolves a village name to its id, inserting the
	// village if it is new. Runs on the caller's transaction when present.
	FindOrCreateVillage(ctx context.Context, name string) (uuid.UUID, error)
	ListVillages(ctx context.Context) ([]*Village, error)

	// Program details: a patient carries at most one card, matching its
	// program type. Replace semantics are delete-then-insert.
	DeleteProgramDetails(ctx context.Context, patientID uuid.UUID) error
	CreateANC(ctx context.Context, d *ANCDetails) error
	CreatePNC(ctx context.Context, d *PNCDetails) error
	GetANC(ctx context.Context, patientID uuid.UUID) (*ANCDetails, error)
	GetPNC(ctx context.Context, patientID uuid.UUID) (*PNCDetails, error)
}
