package room

import (
	"testing"

	"github.com/google/uuid"
)

func TestTakeBed(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()

	t.Run("fills room and flips status at capacity", func(t *testing.T) {
		rm := Room{Capacity: 2, Status: StatusAvailable}

		if err := takeBed(&rm, p1); err != nil {
			t.Fatalf("first takeBed: %v", err)
		}
		if rm.Status != StatusAvailable {
			t.Errorf("status after first bed = %q, want Available", rm.Status)
		}

		if err := takeBed(&rm, p2); err != nil {
			t.Fatalf("second takeBed: %v", err)
		}
		if rm.Status != StatusOccupied {
			t.Errorf("status at capacity = %q, want Occupied", rm.Status)
		}
		if rm.CurrentOccupancy != 2 {
			t.Errorf("occupancy = %d, want 2", rm.CurrentOccupancy)
		}
	})

	t.Run("rejects a full room", func(t *testing.T) {
		rm := Room{Capacity: 1, CurrentOccupancy: 1, Status: StatusOccupied}
		if err := takeBed(&rm, p1); err != ErrRoomFull {
			t.Errorf("takeBed on full room = %v, want ErrRoomFull", err)
		}
	})

	t.Run("rejects maintenance and reserved rooms", func(t *testing.T) {
		for _, status := range []Status{StatusMaintenance, StatusReserved} {
			rm := Room{Capacity: 2, Status: status}
			if err := takeBed(&rm, p1); err != ErrRoomUnavailable {
				t.Errorf("takeBed on %s room = %v, want ErrRoomUnavailable", status, err)
			}
		}
	})
}

func TestFreeBed(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()

	t.Run("releases bed and reopens room", func(t *testing.T) {
		rm := Room{
			Capacity:         1,
			CurrentOccupancy: 1,
			Status:           StatusOccupied,
			AssignedPatients: []uuid.UUID{p1},
		}

		if !freeBed(&rm, p1) {
			t.Fatal("freeBed returned false for an assigned patient")
		}
		if rm.CurrentOccupancy != 0 {
			t.Errorf("occupancy = %d, want 0", rm.CurrentOccupancy)
		}
		if rm.Status != StatusAvailable {
			t.Errorf("status = %q, want Available", rm.Status)
		}
		if len(rm.AssignedPatients) != 0 {
			t.Errorf("assigned patients = %v, want empty", rm.AssignedPatients)
		}
	})

	t.Run("is a no-op for an unassigned patient", func(t *testing.T) {
		rm := Room{
			Capacity:         2,
			CurrentOccupancy: 1,
			AssignedPatients: []uuid.UUID{p1},
		}

		if freeBed(&rm, p2) {
			t.Fatal("freeBed returned true for a patient not in the room")
		}
		if rm.CurrentOccupancy != 1 {
			t.Errorf("occupancy = %d, want 1", rm.CurrentOccupancy)
		}
	})

	t.Run("maintenance room keeps its status", func(t *testing.T) {
		rm := Room{
			Capacity:         1,
			CurrentOccupancy: 1,
			Status:           StatusMaintenance,
			AssignedPatients: []uuid.UUID{p1},
		}

		freeBed(&rm, p1)
		if rm.Status != StatusMaintenance {
			t.Errorf("status = %q, want Maintenance", rm.Status)
		}
	})
}
