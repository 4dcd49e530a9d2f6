package doctor

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusOnLeave  Status = "On Leave"
	StatusInactive Status = "Inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOnLeave, StatusInactive:
		return true
	}
	return false
}

// Schedule maps a day name ("Monday"...) to working hours ("09:00-17:00").
// Days without an entry are off days.
type Schedule map[string]string

type Doctor struct {
	ID              uuid.UUID
	Name            string
	Specialization  string
	Department      string
	Phone           string
	Email           *string
	Qualification   *string
	ConsultationFee float64
	Capacity        int // max concurrently assigned patients
	Status          Status
	Schedule        Schedule
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
