package patient

import (
	"time"

	"github.com/google/uuid"
)

// Program types drive which supplementary details a patient carries.
const (
	ProgramANC = "ANC"
	ProgramPNC = "PNC"
)

type Patient struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	HusbandFatherName *string   `db:"husband_father_name" json:"husband_father_name"`
	Age               int       `db:"age" json:"age"`
	Sex               string    `db:"sex" json:"sex"`
	VillageID         uuid.UUID `db:"village_id" json:"village_id"`
	VillageName       string    `db:"-" json:"village_name"`
	ProgramType       string    `db:"program_type" json:"program_type"`
	Caste             *string   `db:"caste" json:"caste"`
	RegistrationDate  time.Time `db:"registration_date" json:"registration_date"`
	BPLStatus         *string   `db:"bpl_status" json:"bpl_status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type Village struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// ANCDetails is the antenatal card attached to ANC-program patients.
type ANCDetails struct {
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	GPAL           *string   `db:"gpal" json:"gpal"`
	Albumin        *string   `db:"albumin" json:"albumin"`
	TT             *string   `db:"tt" json:"tt"`
	FHR            *string   `db:"fhr" json:"fhr"`
	GestationalAge *string   `db:"gestational_age" json:"gestational_age"`
	FP             *string   `db:"fp" json:"fp"`
	Contact        *string   `db:"contact" json:"contact"`
	Remark         *string   `db:"remark" json:"remark"`
}

// PNCDetails is the postnatal card attached to PNC-program patients.
type PNCDetails struct {
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	PNCDuration  *string   `db:"pnc_duration" json:"pnc_duration"`
	MotherWeight *string   `db:"mother_weight" json:"mother_weight"`
	ChildWeight  *string   `db:"child_weight" json:"child_weight"`
}

// NameRef is the id/name pair the follow-up form's patient picker uses.
type NameRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
