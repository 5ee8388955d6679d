package followup

import (
	"time"

	"github.com/google/uuid"
)

// FollowUp is one follow-up visit. Everything past the date is optional on
// the intake form, so most vitals are nullable free text the way the camp
// staff type them ("120/80", "98.6F").
type FollowUp struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	PatientID            uuid.UUID  `db:"patient_id" json:"patient_id"`
	FollowUpDate         time.Time  `db:"follow_up_date" json:"follow_up_date"`
	Pulse                *string    `db:"pulse" json:"pulse"`
	RespiratoryRate      *string    `db:"respiratory_rate" json:"respiratory_rate"`
	Temperature          *string    `db:"temperature" json:"temperature"`
	BloodPressure        *string    `db:"blood_pressure" json:"blood_pressure"`
	WeightKg             *string    `db:"weight_kg" json:"weight_kg"`
	HeightCm             *string    `db:"height_cm" json:"height_cm"`
	RandomBloodSugar     *string    `db:"random_blood_sugar" json:"random_blood_sugar"`
	Haemoglobin          *string    `db:"haemoglobin" json:"haemoglobin"`
	KnownCaseOf          *string    `db:"known_case_of" json:"known_case_of"`
	HistoryOf            *string    `db:"history_of" json:"history_of"`
	ComplaintOf          *string    `db:"complaint_of" json:"complaint_of"`
	OnExamination        *string    `db:"on_examination" json:"on_examination"`
	TreatmentAdvised     *string    `db:"treatment_advised" json:"treatment_advised"`
	MedicinePrescribed   string     `db:"medicine_prescribed" json:"medicine_prescribed"`
	FollowUpNotes        *string    `db:"follow_up_notes" json:"follow_up_notes"`
	LastMenstrualPeriod  *time.Time `db:"last_menstrual_period" json:"last_menstrual_period"`
	ExpectedDeliveryDate *time.Time `db:"expected_delivery_date" json:"expected_delivery_date"`
	Heartbeat            *string    `db:"heartbeat" json:"heartbeat"`
	UrineSugar           *string    `db:"urine_sugar" json:"urine_sugar"`
	UrineAlbumin         *string    `db:"urine_albumin" json:"urine_albumin"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}
