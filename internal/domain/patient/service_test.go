package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akshansh/outreach-clinic/internal/domain/followup"
	"github.com/akshansh/outreach-clinic/internal/platform/db"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	villages map[string]uuid.UUID
	anc      map[uuid.UUID]*ANCDetails
	pnc      map[uuid.UUID]*PNCDetails
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		patients: map[uuid.UUID]*Patient{},
		villages: map[string]uuid.UUID{},
		anc:      map[uuid.UUID]*ANCDetails{},
		pnc:      map[uuid.UUID]*PNCDetails{},
	}
}

func (r *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	for name, vid := range r.villages {
		if vid == p.VillageID {
			cp.VillageName = name
		}
	}
	return &cp, nil
}

func (r *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := r.patients[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.patients, id)
	return nil
}

func (r *mockRepo) ListNames(_ context.Context) ([]*NameRef, error) {
	var refs []*NameRef
	for _, p := range r.patients {
		refs = append(refs, &NameRef{ID: p.ID, Name: p.Name})
	}
	return refs, nil
}

func (r *mockRepo) FindOrCreateVillage(_ context.Context, name string) (uuid.UUID, error) {
	if id, ok := r.villages[name]; ok {
		return id, nil
	}
	id := uuid.New()
	r.villages[name] = id
	return id, nil
}

func (r *mockRepo) ListVillages(_ context.Context) ([]*Village, error) {
	var out []*Village
	for name, id := range r.villages {
		out = append(out, &Village{ID: id, Name: name})
	}
	return out, nil
}

func (r *mockRepo) DeleteProgramDetails(_ context.Context, patientID uuid.UUID) error {
	delete(r.anc, patientID)
	delete(r.pnc, patientID)
	return nil
}

func (r *mockRepo) CreateANC(_ context.Context, d *ANCDetails) error {
	cp := *d
	r.anc[d.PatientID] = &cp
	return nil
}

func (r *mockRepo) CreatePNC(_ context.Context, d *PNCDetails) error {
	cp := *d
	r.pnc[d.PatientID] = &cp
	return nil
}

func (r *mockRepo) GetANC(_ context.Context, patientID uuid.UUID) (*ANCDetails, error) {
	d, ok := r.anc[patientID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (r *mockRepo) GetPNC(_ context.Context, patientID uuid.UUID) (*PNCDetails, error) {
	d, ok := r.pnc[patientID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

type mockLister struct{ byPatient map[uuid.UUID][]*followup.FollowUp }

func (l *mockLister) ListByPatient(_ context.Context, id uuid.UUID) ([]*followup.FollowUp, error) {
	return l.byPatient[id], nil
}

type mockRecorder struct{ actions []string }

func (r *mockRecorder) Record(_ context.Context, action, _ string) {
	r.actions = append(r.actions, action)
}

func newTestService() (*Service, *mockRepo, *mockLister, *mockRecorder) {
	repo := newMockRepo()
	lister := &mockLister{byPatient: map[uuid.UUID][]*followup.FollowUp{}}
	rec := &mockRecorder{}
	return NewService(repo, lister, db.PassthroughRunner(), rec), repo, lister, rec
}

func ancInput(village string) *Input {
	gpal := "G2P1"
	return &Input{
		Patient: Patient{
			Name:             "Asha Devi",
			Age:              26,
			Sex:              "Female",
			VillageName:      village,
			ProgramType:      ProgramANC,
			RegistrationDate: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		ANCDetails: &ANCDetails{GPAL: &gpal},
	}
}

func TestRegisterCreatesVillageOnFirstSight(t *testing.T) {
	svc, repo, _, rec := newTestService()
	ctx := context.Background()

	p1, err := svc.Register(ctx, ancInput("Rampur"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(repo.villages) != 1 {
		t.Fatalf("villages = %d, want 1", len(repo.villages))
	}

	in2 := ancInput("Rampur")
	in2.Patient.Name = "Sita"
	p2, err := svc.Register(ctx, in2)
	if err != nil {
		t.Fatalf("Register second: %v", err)
	}
	if len(repo.villages) != 1 {
		t.Errorf("second registration minted a duplicate village")
	}
	if p1.VillageID != p2.VillageID {
		t.Errorf("village ids differ for the same village name")
	}
	if len(rec.actions) != 2 || rec.actions[0] != "Patient Created" {
		t.Errorf("recorded actions = %v", rec.actions)
	}
}

func TestRegisterAttachesProgramCard(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Register(ctx, ancInput("Rampur"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := repo.anc[p.ID]; !ok {
		t.Error("ANC card not stored for ANC patient")
	}

	// card ignored when program type does not match
	in := ancInput("Rampur")
	in.Patient.ProgramType = "General"
	p2, err := svc.Register(ctx, in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := repo.anc[p2.ID]; ok {
		t.Error("ANC card stored for non-ANC patient")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	in := ancInput("Rampur")
	in.Patient.Name = "  "
	if _, err := svc.Register(ctx, in); err == nil {
		t.Error("blank name accepted")
	}

	in = ancInput("  ")
	if _, err := svc.Register(ctx, in); err == nil {
		t.Error("blank village accepted")
	}

	in = ancInput("Rampur")
	in.Patient.RegistrationDate = time.Time{}
	if _, err := svc.Register(ctx, in); err == nil {
		t.Error("zero registration date accepted")
	}
}

func TestUpdateReplacesProgramCard(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Register(ctx, ancInput("Rampur"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// switch ANC -> PNC: old card dropped, new card stored
	duration := "6 weeks"
	in := &Input{
		Patient:    *p,
		PNCDetails: &PNCDetails{PNCDuration: &duration},
	}
	in.Patient.ProgramType = ProgramPNC
	if err := svc.Update(ctx, in); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, ok := repo.anc[p.ID]; ok {
		t.Error("stale ANC card survived the program switch")
	}
	if _, ok := repo.pnc[p.ID]; !ok {
		t.Error("PNC card not stored after the program switch")
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	in := ancInput("Rampur")
	in.Patient.ID = uuid.New()
	if err := svc.Update(context.Background(), in); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDetails(t *testing.T) {
	svc, _, lister, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Register(ctx, ancInput("Rampur"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	lister.byPatient[p.ID] = []*followup.FollowUp{
		{ID: uuid.New(), PatientID: p.ID, MedicinePrescribed: "Paracetamol (2)"},
	}

	d, err := svc.Details(ctx, p.ID)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if d.Details.Name != "Asha Devi" {
		t.Errorf("name = %q", d.Details.Name)
	}
	if d.Details.VillageName != "Rampur" {
		t.Errorf("village = %q, want Rampur", d.Details.VillageName)
	}
	if len(d.FollowUps) != 1 {
		t.Errorf("follow-ups = %d, want 1", len(d.FollowUps))
	}
	if d.ANCDetails == nil || d.ANCDetails.GPAL == nil || *d.ANCDetails.GPAL != "G2P1" {
		t.Errorf("anc details = %+v", d.ANCDetails)
	}
	if d.PNCDetails != nil {
		t.Error("pnc details present for ANC patient")
	}
}

func TestDetailsNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	if _, err := svc.Details(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteRecordsName(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Register(ctx, ancInput("Rampur"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	var details string
	svc.rec = recorderFunc(func(_, d string) { details = d })
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.patients[p.ID]; ok {
		t.Error("patient still present after delete")
	}
	if details != "Patient record deleted: Asha Devi" {
		t.Errorf("details = %q", details)
	}
}

func TestPatientName(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Register(ctx, ancInput("Rampur"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	name, err := svc.PatientName(ctx, p.ID)
	if err != nil {
		t.Fatalf("PatientName: %v", err)
	}
	if name != "Asha Devi" {
		t.Errorf("name = %q", name)
	}
	if _, err := svc.PatientName(ctx, uuid.New()); err == nil {
		t.Error("unknown id resolved")
	}
}

type recorderFunc func(action, details string)

func (f recorderFunc) Record(_ context.Context, action, details string) { f(action, details) }
