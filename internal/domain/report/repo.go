package report

import (
	"context"
	"time"
)

// Repository is the read side of the reporting module; every method is a
// projection over the clinical tables.
type Repository interface {
	CountPatients(ctx context.Context) (int, error)
	CountPatientsSince(ctx context.Context, since time.Time) (int, error)
	CountFollowUpsSince(ctx context.Context, since time.Time) (int, error)

	PatientRecords(ctx context.Context, f RecordFilters) ([]*PatientRecord, error)
	Demographics(ctx context.Context) ([]*DemographicsRow, error)
	Visits(ctx context.Context, f VisitFilters) ([]*Visit, error)
	// FollowUpVitals returns village-joined follow-up vitals within the
	// date range for the village summary.
	FollowUpVitals(ctx context.Context, start, end time.Time) ([]*VitalsRow, error)

	// Yearly facts for the cumulative matrix.
	PatientFacts(ctx context.Context, year int) ([]*PatientFact, error)
	FollowUpFacts(ctx context.Context, year int) ([]*FollowUpFact, error)
	LabFacts(ctx context.Context, year int) ([]*LabFact, error)

	// Full dumps for the multi-sheet patient details export.
	DumpPatients(ctx context.Context) ([]*PatientDump, error)
	DumpFollowUps(ctx context.Context) ([]*FollowUpDump, error)
	DumpANC(ctx context.Context) ([]*ANCDump, error)
	DumpPNC(ctx context.Context) ([]*PNCDump, error)
}
