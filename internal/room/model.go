package room

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusOccupied    Status = "Occupied"
	StatusMaintenance Status = "Maintenance"
	StatusReserved    Status = "Reserved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusReserved:
		return true
	}
	return false
}

// Room tracks beds, not an exact floor plan. AssignedPatients is maintained
// by the bed allocator and is not transactionally tied to the patient rows
// pointing back at the room.
type Room struct {
	ID               uuid.UUID
	Number           string
	Type             string // General, Private, ICU, ...
	Floor            int
	Capacity         int
	CurrentOccupancy int
	Status           Status
	DailyRate        float64
	Amenities        []string
	Equipment        []string
	AssignedPatients []uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasSpace reports whether another bed can be taken in this room.
func (r Room) HasSpace() bool {
	if r.Status == StatusMaintenance || r.Status == StatusReserved {
		return false
	}
	return r.CurrentOccupancy < r.Capacity
}
