package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	patientsTotal int
	patientsSince int
	follow        int
	records       []*PatientRecord
	demographics  []*DemographicsRow
	visits        []*Visit
	vitals        []*VitalsRow
	patientFacts  []*PatientFact
	followFacts   []*FollowUpFact
	labFacts      []*LabFact
}

func (r *mockRepo) CountPatients(context.Context) (int, error) { return r.patientsTotal, nil }
func (r *mockRepo) CountPatientsSince(context.Context, time.Time) (int, error) {
	return r.patientsSince, nil
}
func (r *mockRepo) CountFollowUpsSince(context.Context, time.Time) (int, error) {
	return r.follow, nil
}
func (r *mockRepo) PatientRecords(context.Context, RecordFilters) ([]*PatientRecord, error) {
	return r.records, nil
}
func (r *mockRepo) Demographics(context.Context) ([]*DemographicsRow, error) {
	return r.demographics, nil
}
func (r *mockRepo) Visits(context.Context, VisitFilters) ([]*Visit, error) { return r.visits, nil }
func (r *mockRepo) FollowUpVitals(context.Context, time.Time, time.Time) ([]*VitalsRow, error) {
	return r.vitals, nil
}
func (r *mockRepo) PatientFacts(context.Context, int) ([]*PatientFact, error) {
	return r.patientFacts, nil
}
func (r *mockRepo) FollowUpFacts(context.Context, int) ([]*FollowUpFact, error) {
	return r.followFacts, nil
}
func (r *mockRepo) LabFacts(context.Context, int) ([]*LabFact, error)      { return r.labFacts, nil }
func (r *mockRepo) DumpPatients(context.Context) ([]*PatientDump, error)   { return nil, nil }
func (r *mockRepo) DumpFollowUps(context.Context) ([]*FollowUpDump, error) { return nil, nil }
func (r *mockRepo) DumpANC(context.Context) ([]*ANCDump, error)            { return nil, nil }
func (r *mockRepo) DumpPNC(context.Context) ([]*PNCDump, error)            { return nil, nil }

type mockInventory struct{ lowStock int }

func (m mockInventory) CountLowStock(context.Context, int) (int, error) { return m.lowStock, nil }

func strp(s string) *string { return &s }

func TestDashboard(t *testing.T) {
	repo := &mockRepo{patientsTotal: 120, patientsSince: 7, follow: 13}
	svc := NewService(repo, mockInventory{lowStock: 4}, 10)
	svc.now = func() time.Time { return time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC) }

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.TotalPatients != 120 {
		t.Errorf("total = %d, want 120", stats.TotalPatients)
	}
	if stats.VisitsThisMonth != 20 {
		t.Errorf("visits this month = %d, want 20", stats.VisitsThisMonth)
	}
	if stats.LowStockItems != 4 {
		t.Errorf("low stock = %d, want 4", stats.LowStockItems)
	}
}

func TestVisitorReportSummary(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	repo := &mockRepo{visits: []*Visit{
		{PatientID: p1, VisitType: VisitInitial},
		{PatientID: p1, VisitType: VisitFollowUp},
		{PatientID: p2, VisitType: VisitInitial},
	}}
	svc := NewService(repo, mockInventory{}, 10)

	r, err := svc.VisitorReport(context.Background(), VisitFilters{})
	if err != nil {
		t.Fatalf("VisitorReport: %v", err)
	}
	if r.TotalVisits != 3 || r.UniquePatients != 2 || r.FollowUpVisits != 1 {
		t.Errorf("summary = %d/%d/%d, want 3/2/1",
			r.TotalVisits, r.UniquePatients, r.FollowUpVisits)
	}
}

func TestParseBP(t *testing.T) {
	tests := []struct {
		in       string
		sys, dia float64
		ok       bool
	}{
		{"120/80", 120, 80, true},
		{" 130 / 85 ", 130, 85, true},
		{"high", 0, 0, false},
		{"120", 0, 0, false},
		{"120/", 0, 0, false},
	}
	for _, tt := range tests {
		sys, dia, ok := parseBP(tt.in)
		if sys != tt.sys || dia != tt.dia || ok != tt.ok {
			t.Errorf("parseBP(%q) = %v/%v %v, want %v/%v %v",
				tt.in, sys, dia, ok, tt.sys, tt.dia, tt.ok)
		}
	}
}

func TestVillageSummary(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	repo := &mockRepo{vitals: []*VitalsRow{
		{VillageName: "Rampur", PatientID: p1, MedicinePrescribed: "Paracetamol (2)",
			BloodPressure: strp("120/80"), Heartbeat: strp("72")},
		{VillageName: "Rampur", PatientID: p1, MedicinePrescribed: "ORS (1)",
			BloodPressure: strp("140/90")},
		{VillageName: "Rampur", PatientID: p2, MedicinePrescribed: "Paracetamol (2)",
			BloodPressure: strp("not taken")},
		{VillageName: "Bhimtal", PatientID: uuid.New()},
	}}
	svc := NewService(repo, mockInventory{}, 10)

	rows, err := svc.VillageSummary(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("VillageSummary: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d villages, want 2", len(rows))
	}

	// sorted by name
	if rows[0].VillageName != "Bhimtal" || rows[1].VillageName != "Rampur" {
		t.Fatalf("order = %s, %s", rows[0].VillageName, rows[1].VillageName)
	}

	rampur := rows[1]
	if rampur.PatientCount != 2 {
		t.Errorf("patients = %d, want 2 distinct", rampur.PatientCount)
	}
	if rampur.MedicinesGiven != "Paracetamol (2), ORS (1)" {
		t.Errorf("medicines = %q", rampur.MedicinesGiven)
	}
	// unparsable "not taken" excluded from the averages
	if rampur.AvgSystolic == nil || *rampur.AvgSystolic != 130 {
		t.Errorf("avg systolic = %v, want 130", rampur.AvgSystolic)
	}
	if rampur.AvgDiastolic == nil || *rampur.AvgDiastolic != 85 {
		t.Errorf("avg diastolic = %v, want 85", rampur.AvgDiastolic)
	}
	if rampur.AvgHeartbeat == nil || *rampur.AvgHeartbeat != 72 {
		t.Errorf("avg heartbeat = %v, want 72", rampur.AvgHeartbeat)
	}

	bhimtal := rows[0]
	if bhimtal.AvgSystolic != nil || bhimtal.AvgHeartbeat != nil {
		t.Errorf("averages for village without readings should be nil")
	}
}

func TestCumulative(t *testing.T) {
	ctx := context.Background()
	v1, v2 := uuid.New(), uuid.New()
	labPatient := uuid.New()
	repo := &mockRepo{
		patientFacts: []*PatientFact{
			{Month: 1, Sex: "Female", Age: 3, Caste: "General", ProgramType: "ANC", VillageID: v1},
			{Month: 1, Sex: "Male", Age: 40, Caste: "SC/ST", ProgramType: "General", VillageID: v2},
			{Month: 3, Sex: "Female", Age: 30, Caste: "Others", ProgramType: "PNC", VillageID: v1},
		},
		followFacts: []*FollowUpFact{
			{Month: 1, PatientID: labPatient, VillageID: v1, ComplaintOf: "High Fever and skin rash", Haemoglobin: "10.2"},
			{Month: 2, PatientID: labPatient, VillageID: v2, ComplaintOf: "ear discharge", Haemoglobin: "12"},
		},
		labFacts: []*LabFact{
			{Month: 1, PatientID: labPatient, ProgramType: "ANC"},
			{Month: 1, PatientID: labPatient, ProgramType: "ANC"}, // same patient, counted once
		},
	}
	svc := NewService(repo, mockInventory{}, 10)

	report, err := svc.Cumulative(ctx, 2026)
	if err != nil {
		t.Fatalf("Cumulative: %v", err)
	}
	if len(report) != len(CumulativeParameters) {
		t.Fatalf("got %d parameters, want %d", len(report), len(CumulativeParameters))
	}

	checks := []struct {
		param string
		month string
		want  int
	}{
		{"NO OF PATIENTS REGISTERED", "01", 2},
		{"NO OF PATIENTS REGISTERED", "03", 1},
		{"NO OF FEMALE PATIENTS", "01", 1},
		{"NO OF INFANTS <Below 5 year>", "01", 1},
		{"GEN_COUNT", "01", 1},
		{"SC_ST_COUNT", "01", 1},
		{"OTHERS_COUNT", "03", 1},
		{"ANC_SERVICES", "01", 1},
		{"ANC_GEN", "01", 1},
		{"PNC_SERVICES", "03", 1},
		{"DIAGNOSTIC_SERVICES_AVAILED", "01", 1},
		{"ANC_DIAGNOSTIC_SERVICES", "01", 1},
		{"FEVER", "01", 1},
		{"SKIN_DISEASES", "01", 1},
		{"EAR_DISCHARGE", "02", 1},
		{"ANEMIA", "01", 1},
		{"ANEMIA", "02", 0},
		// two villages saw visits in Jan (v1 registration+follow-up, v2 registration)
		{"VILLAGE VISITED", "01", 2},
		{"VILLAGE VISITED", "02", 1},
	}
	for _, c := range checks {
		if got := report[c.param][c.month]; got != c.want {
			t.Errorf("%s[%s] = %d, want %d", c.param, c.month, got, c.want)
		}
	}

	if got := report["NO OF PATIENTS REGISTERED"]["total"]; got != 3 {
		t.Errorf("registrations total = %d, want 3", got)
	}
	if got := report["VILLAGE VISITED"]["total"]; got != 3 {
		t.Errorf("village visited total = %d, want 3", got)
	}
}
