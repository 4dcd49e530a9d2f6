package report

import (
	"testing"
	"time"

	"github.com/medware/hospital-admin/internal/auth"
	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/patient"
	"github.com/medware/hospital-admin/internal/room"
)

func TestComputeDashboardStats(t *testing.T) {
	now := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	lastMonth := now.AddDate(0, -1, 0)

	patients := []patient.Patient{
		{Status: patient.StatusAdmitted},
		{Status: patient.StatusStable},
		{Status: patient.StatusCritical},
		{Status: patient.StatusDischarged, DischargeDate: &now},
		{Status: patient.StatusDischarged, DischargeDate: &yesterday},
	}

	rooms := []room.Room{
		{Capacity: 2, CurrentOccupancy: 1, Status: room.StatusAvailable},
		{Capacity: 1, CurrentOccupancy: 1, Status: room.StatusOccupied},
		{Capacity: 2, CurrentOccupancy: 0, Status: room.StatusMaintenance},
	}

	invoices := []billing.Invoice{
		{Total: 500, PaymentDate: &now},
		{Total: 300, PaymentDate: &yesterday},
		{Total: 900, PaymentDate: &lastMonth},
		{Total: 100}, // unpaid, never counted
	}

	users := []auth.User{
		{Role: auth.RoleDoctor, Active: true},
		{Role: auth.RoleDoctor, Active: false},
		{Role: auth.RoleNurse, Active: true},
		{Role: auth.RoleAdmin, Active: true},
	}

	stats := ComputeDashboardStats(patients, rooms, invoices, users, now)

	if stats.TotalPatients != 5 {
		t.Errorf("TotalPatients = %d, want 5", stats.TotalPatients)
	}
	// Admitted includes Stable and Critical.
	if stats.AdmittedPatients != 3 {
		t.Errorf("AdmittedPatients = %d, want 3", stats.AdmittedPatients)
	}
	if stats.CriticalPatients != 1 {
		t.Errorf("CriticalPatients = %d, want 1", stats.CriticalPatients)
	}
	if stats.DischargedToday != 1 {
		t.Errorf("DischargedToday = %d, want 1", stats.DischargedToday)
	}

	if stats.TotalBeds != 5 {
		t.Errorf("TotalBeds = %d, want 5", stats.TotalBeds)
	}
	// The maintenance room's free beds do not count as available.
	if stats.AvailableBeds != 1 {
		t.Errorf("AvailableBeds = %d, want 1", stats.AvailableBeds)
	}
	if stats.OccupancyRate != 40 {
		t.Errorf("OccupancyRate = %v, want 40", stats.OccupancyRate)
	}

	if stats.RevenueToday != 500 {
		t.Errorf("RevenueToday = %v, want 500", stats.RevenueToday)
	}
	if stats.RevenueMonth != 800 {
		t.Errorf("RevenueMonth = %v, want 800", stats.RevenueMonth)
	}

	if stats.ActiveDoctors != 1 {
		t.Errorf("ActiveDoctors = %d, want 1", stats.ActiveDoctors)
	}
	if stats.ActiveStaff != 2 {
		t.Errorf("ActiveStaff = %d, want 2", stats.ActiveStaff)
	}
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := ComputeDashboardStats(nil, nil, nil, nil, time.Now())
	if stats.OccupancyRate != 0 {
		t.Errorf("OccupancyRate with no beds = %v, want 0", stats.OccupancyRate)
	}
	if stats.TotalPatients != 0 || stats.RevenueMonth != 0 {
		t.Errorf("empty stats = %+v, want zeroes", stats)
	}
}
