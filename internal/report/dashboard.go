package report

import (
	"time"

	"github.com/medware/hospital-admin/internal/auth"
	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/patient"
	"github.com/medware/hospital-admin/internal/room"
)

// DashboardStats is the single-pass reduction behind the dashboard tiles.
type DashboardStats struct {
	TotalPatients    int       `json:"total_patients"`
	AdmittedPatients int       `json:"admitted_patients"`
	CriticalPatients int       `json:"critical_patients"`
	DischargedToday  int       `json:"discharged_today"`
	TotalBeds        int       `json:"total_beds"`
	AvailableBeds    int       `json:"available_beds"`
	OccupancyRate    float64   `json:"occupancy_rate"`
	RevenueToday     float64   `json:"revenue_today"`
	RevenueMonth     float64   `json:"revenue_month"`
	ActiveDoctors    int       `json:"active_doctors"`
	ActiveStaff      int       `json:"active_staff"`
	GeneratedAt      time.Time `json:"generated_at"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

// ComputeDashboardStats reduces the four collections into the dashboard
// numbers. Every field is an independent reduction; there is no shared
// intermediate state and order does not matter.
func ComputeDashboardStats(patients []patient.Patient, rooms []room.Room, invoices []billing.Invoice, users []auth.User, now time.Time) DashboardStats {
	stats := DashboardStats{GeneratedAt: now}

	for _, p := range patients {
		stats.TotalPatients++
		switch p.Status {
		case patient.StatusAdmitted, patient.StatusStable:
			stats.AdmittedPatients++
		case patient.StatusCritical:
			stats.AdmittedPatients++
			stats.CriticalPatients++
		case patient.StatusDischarged:
			if p.DischargeDate != nil && sameDay(*p.DischargeDate, now) {
				stats.DischargedToday++
			}
		}
	}

	occupied := 0
	for _, r := range rooms {
		stats.TotalBeds += r.Capacity
		occupied += r.CurrentOccupancy
		if r.Status != room.StatusMaintenance && r.Status != room.StatusReserved {
			free := r.Capacity - r.CurrentOccupancy
			if free > 0 {
				stats.AvailableBeds += free
			}
		}
	}
	if stats.TotalBeds > 0 {
		stats.OccupancyRate = float64(occupied) / float64(stats.TotalBeds) * 100
	}

	for _, inv := range invoices {
		if inv.PaymentDate == nil {
			continue
		}
		if sameDay(*inv.PaymentDate, now) {
			stats.RevenueToday += inv.Total
		}
		if sameMonth(*inv.PaymentDate, now) {
			stats.RevenueMonth += inv.Total
		}
	}

	for _, u := range users {
		if !u.Active {
			continue
		}
		if u.Role == auth.RoleDoctor {
			stats.ActiveDoctors++
		} else {
			stats.ActiveStaff++
		}
	}

	return stats
}
