package record

import (
	"time"

	"github.com/google/uuid"

	"github.com/medware/hospital-admin/internal/patient"
)

type Vitals struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	Pulse            *int     `json:"pulse,omitempty"`
	BloodPressure    *string  `json:"blood_pressure,omitempty"`
	RespiratoryRate  *int     `json:"respiratory_rate,omitempty"`
	OxygenSaturation *int     `json:"oxygen_saturation,omitempty"`
	HeightCm         *float64 `json:"height_cm,omitempty"`
	WeightKg         *float64 `json:"weight_kg,omitempty"`
}

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

type LabResult struct {
	Name   string `json:"name"`
	Result string `json:"result"`
	Unit   string `json:"unit,omitempty"`
	Flag   string `json:"flag,omitempty"` // Normal, High, Low
}

// MedicalRecord documents one visit. FaceSheetSnapshot is a full copy of the
// patient row taken when the record was written; it is deliberately never
// synced with later patient edits.
type MedicalRecord struct {
	ID                uuid.UUID
	PatientID         uuid.UUID
	DoctorID          uuid.UUID
	VisitType         string
	ChiefComplaint    string
	Diagnosis         string
	Vitals            Vitals
	Medications       []Medication
	LabResults        []LabResult
	Notes             *string
	FaceSheetSnapshot *patient.Patient
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FaceSheet is the IPD admission paperwork. It is its own entity: once
// created it does not follow the patient row.
type FaceSheet struct {
	ID                   uuid.UUID
	PRN                  string
	IPDNumber            string
	PatientID            uuid.UUID
	PatientName          string
	Age                  int
	Gender               string
	Address              *string
	Phone                string
	EmergencyContact     *string
	AdmissionDate        time.Time
	Department           string
	AttendingDoctor      string
	ProvisionalDiagnosis *string
	Payer                *string
	PolicyNumber         *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
