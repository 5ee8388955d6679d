package report

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats is the landing-page headline block. Visits this month add
// registrations and follow-ups since the 1st.
type DashboardStats struct {
	TotalPatients   int `json:"totalPatients"`
	VisitsThisMonth int `json:"visitsThisMonth"`
	LowStockItems   int `json:"lowStockItems"`
}

// PatientRecord is one row of the searchable patient listing.
type PatientRecord struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	VillageName      string     `json:"village_name"`
	RegistrationDate time.Time  `json:"registration_date"`
	LastFollowUp     *time.Time `json:"last_follow_up"`
}

// RecordFilters narrows the patient listing.
type RecordFilters struct {
	SearchTerm string
	Start      time.Time
	End        time.Time
}

// DemographicsRow breaks one village's patients down by caste.
type DemographicsRow struct {
	VillageName   string `json:"village_name"`
	TotalPatients int    `json:"total_patients"`
	GeneralCount  int    `json:"general_count"`
	SCSTCount     int    `json:"sc_st_count"`
	OthersCount   int    `json:"others_count"`
}

// Visit is one row of the visitor report: an initial registration or a
// follow-up, flattened into a single stream.
type Visit struct {
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	VillageName string    `json:"village_name"`
	ProgramType string    `json:"program_type"`
	Caste       *string   `json:"caste"`
	VisitDate   time.Time `json:"visit_date"`
	VisitType   string    `json:"visit_type"`
}

const (
	VisitInitial  = "Initial Visit"
	VisitFollowUp = "Follow-up"
)

// VisitFilters narrows the visitor report.
type VisitFilters struct {
	Start    time.Time
	End      time.Time
	Villages []string
	Programs []string
	Castes   []string
}

// VisitorReport is the filtered visit stream plus its summary numbers.
type VisitorReport struct {
	TotalVisits    int      `json:"total_visits"`
	UniquePatients int      `json:"unique_patients"`
	FollowUpVisits int      `json:"follow_up_visits"`
	Data           []*Visit `json:"data"`
}

// VitalsRow is the raw material for the village summary: one follow-up
// joined with its patient's village.
type VitalsRow struct {
	VillageName        string
	PatientID          uuid.UUID
	MedicinePrescribed string
	BloodPressure      *string
	Heartbeat          *string
}

// VillageSummaryRow aggregates a village's follow-up activity. Averages are
// nil when no parsable reading exists.
type VillageSummaryRow struct {
	VillageName    string   `json:"village_name"`
	PatientCount   int      `json:"patient_count"`
	MedicinesGiven string   `json:"medicines_given"`
	AvgSystolic    *float64 `json:"avg_systolic"`
	AvgDiastolic   *float64 `json:"avg_diastolic"`
	AvgHeartbeat   *float64 `json:"avg_heartbeat"`
}

// Facts feeding the cumulative yearly matrix: one row per registration,
// follow-up and lab test of the year, month given as 1..12.
type PatientFact struct {
	Month       int
	Sex         string
	Age         int
	Caste       string
	ProgramType string
	VillageID   uuid.UUID
}

type FollowUpFact struct {
	Month       int
	PatientID   uuid.UUID
	VillageID   uuid.UUID
	ComplaintOf string
	Haemoglobin string
}

type LabFact struct {
	Month       int
	PatientID   uuid.UUID
	ProgramType string
}

// MonthCounts is one parameter's twelve monthly tallies plus the row total,
// keyed "01".."12" and "total" for API compatibility with the old reports.
type MonthCounts map[string]int

// Full-dump rows backing the multi-sheet patient details export.

type PatientDump struct {
	ID                uuid.UUID
	Name              string
	HusbandFatherName *string
	Age               int
	Sex               string
	VillageName       string
	ProgramType       string
	Caste             *string
	BPLStatus         *string
	RegistrationDate  time.Time
}

type FollowUpDump struct {
	ID                 uuid.UUID
	PatientName        string
	FollowUpDate       time.Time
	BloodPressure      *string
	Haemoglobin        *string
	ComplaintOf        *string
	TreatmentAdvised   *string
	MedicinePrescribed string
	FollowUpNotes      *string
}

type ANCDump struct {
	PatientName    string
	GPAL           *string
	Albumin        *string
	TT             *string
	FHR            *string
	GestationalAge *string
	FP             *string
	Contact        *string
	Remark         *string
}

type PNCDump struct {
	PatientName  string
	PNCDuration  *string
	MotherWeight *string
	ChildWeight  *string
}
