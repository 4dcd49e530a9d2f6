package patient

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAdmitted   Status = "Admitted"
	StatusStable     Status = "Stable"
	StatusCritical   Status = "Critical"
	StatusDischarged Status = "Discharged"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAdmitted, StatusStable, StatusCritical, StatusDischarged:
		return true
	}
	return false
}

type Patient struct {
	ID               uuid.UUID
	Name             string
	Gender           string
	DateOfBirth      *time.Time
	Phone            string
	Email            *string
	Address          *string
	BloodGroup       *string
	EmergencyContact *string
	Status           Status
	AdmissionDate    *time.Time
	DischargeDate    *time.Time
	AssignedDoctorID *uuid.UUID
	AssignedRoomID   *uuid.UUID
	Allergies        []string
	MedicalHistory   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
