package report

import (
	"testing"
	"time"

	"github.com/medware/hospital-admin/internal/billing"
	"github.com/medware/hospital-admin/internal/patient"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestPeriodKey(t *testing.T) {
	at := day(2026, time.March, 7)

	tests := []struct {
		g    Granularity
		want string
	}{
		{GranularityDay, "2026-03-07"},
		{GranularityMonth, "2026-03"},
		{GranularityYear, "2026"},
	}
	for _, tt := range tests {
		if got := PeriodKey(at, tt.g); got != tt.want {
			t.Errorf("PeriodKey(%s) = %q, want %q", tt.g, got, tt.want)
		}
	}
}

func TestAggregateDay(t *testing.T) {
	selected := day(2026, time.March, 7)

	invoices := []billing.Invoice{
		{Total: 100, IssueDate: day(2026, time.March, 7)},
		{Total: 50, IssueDate: day(2026, time.March, 7)},
		{Total: 999, IssueDate: day(2026, time.March, 8)}, // different bucket
	}
	patients := []patient.Patient{
		{Status: patient.StatusAdmitted, AdmissionDate: ptr(day(2026, time.March, 7))},
	}

	got := Aggregate(invoices, patients, GranularityDay, selected)
	if len(got) != 1 {
		t.Fatalf("Aggregate returned %d summaries, want 1", len(got))
	}

	s := got[0]
	if s.Period != "2026-03-07" {
		t.Errorf("Period = %q, want 2026-03-07", s.Period)
	}
	if s.TotalRevenue != 150 {
		t.Errorf("TotalRevenue = %v, want 150", s.TotalRevenue)
	}
	if s.PatientCount != 1 || s.Admitted != 1 {
		t.Errorf("counts = %+v, want PatientCount=1 Admitted=1", s)
	}
}

func TestAggregateStatusCounters(t *testing.T) {
	selected := day(2026, time.March, 7)
	admitted := ptr(day(2026, time.March, 7))

	patients := []patient.Patient{
		{Status: patient.StatusAdmitted, AdmissionDate: admitted},
		{Status: patient.StatusStable, AdmissionDate: admitted},
		{Status: patient.StatusCritical, AdmissionDate: admitted},
		{Status: patient.StatusDischarged, AdmissionDate: admitted},
	}

	got := Aggregate(nil, patients, GranularityDay, selected)
	if len(got) != 1 {
		t.Fatalf("Aggregate returned %d summaries, want 1", len(got))
	}

	s := got[0]
	if s.PatientCount != 4 {
		t.Errorf("PatientCount = %d, want 4", s.PatientCount)
	}
	// Stable contributes to the head count only.
	if s.Admitted != 1 || s.Critical != 1 || s.Discharged != 1 {
		t.Errorf("Admitted/Critical/Discharged = %d/%d/%d, want 1/1/1", s.Admitted, s.Critical, s.Discharged)
	}
}

func TestAggregateMonthRollsUpDays(t *testing.T) {
	selected := day(2026, time.March, 15)

	invoices := []billing.Invoice{
		{Total: 100, IssueDate: day(2026, time.March, 1)},
		{Total: 200, IssueDate: day(2026, time.March, 28)},
		{Total: 400, IssueDate: day(2026, time.April, 1)},
	}

	got := Aggregate(invoices, nil, GranularityMonth, selected)
	if len(got) != 1 {
		t.Fatalf("Aggregate returned %d summaries, want 1", len(got))
	}
	if got[0].Period != "2026-03" || got[0].TotalRevenue != 300 {
		t.Errorf("got %+v, want period 2026-03 with revenue 300", got[0])
	}
}

func TestAggregateSkipsZeroDates(t *testing.T) {
	selected := day(2026, time.March, 7)

	invoices := []billing.Invoice{{Total: 100}}
	patients := []patient.Patient{
		{Status: patient.StatusAdmitted},
		{Status: patient.StatusAdmitted, AdmissionDate: &time.Time{}},
	}

	got := Aggregate(invoices, patients, GranularityDay, selected)
	if len(got) != 0 {
		t.Errorf("Aggregate = %v, want empty result", got)
	}
}

func TestAggregateEmptyPeriod(t *testing.T) {
	invoices := []billing.Invoice{{Total: 100, IssueDate: day(2026, time.January, 1)}}

	got := Aggregate(invoices, nil, GranularityDay, day(2026, time.June, 1))
	if len(got) != 0 {
		t.Errorf("Aggregate for a period with no data = %v, want empty", got)
	}
}
