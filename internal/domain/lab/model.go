package lab

import (
	"time"

	"github.com/google/uuid"
)

// Test is one diagnostic test result. Positive/negative readings are free
// text; a non-empty positive reading is what the count report treats as an
// abnormal result.
type Test struct {
	ID                    uuid.UUID `db:"id" json:"id"`
	PatientID             uuid.UUID `db:"patient_id" json:"patient_id"`
	TestDate              time.Time `db:"test_date" json:"test_date"`
	TestName              string    `db:"test_name" json:"test_name"`
	ResultPositiveReading *string   `db:"result_positive_reading" json:"result_positive_reading"`
	ResultNegativeReading *string   `db:"result_negative_reading" json:"result_negative_reading"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// ListItem joins the test with the tested patient for the listing view.
type ListItem struct {
	Test
	PatientName       string  `json:"patient_name"`
	HusbandFatherName *string `json:"husband_father_name"`
	Sex               string  `json:"sex"`
}

// CountRow is one line of the per-test tally report.
type CountRow struct {
	TestName   string `json:"test_name"`
	TotalTests int    `json:"total_tests"`
	Positive   int    `json:"positive"`
	Negative   int    `json:"negative"`
}

// DateRange filters a report; zero bounds mean unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}
