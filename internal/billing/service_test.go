package billing

import (
	"testing"

	"github.com/google/uuid"
)

func TestFilterMatches(t *testing.T) {
	patientID := uuid.New()
	inv := Invoice{PatientID: patientID, Status: StatusPending}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", Filter{}, true},
		{"patient match", Filter{PatientID: patientID}, true},
		{"patient mismatch", Filter{PatientID: uuid.New()}, false},
		{"status match", Filter{Status: StatusPending}, true},
		{"status mismatch", Filter{Status: StatusPaid}, false},
		{"both must match", Filter{PatientID: patientID, Status: StatusPaid}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(inv); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFilter(t *testing.T) {
	p1 := uuid.New()
	invoices := []Invoice{
		{PatientID: p1, Status: StatusPending},
		{PatientID: p1, Status: StatusPaid},
		{PatientID: uuid.New(), Status: StatusPending},
	}

	got := ApplyFilter(invoices, Filter{PatientID: p1, Status: StatusPending})
	if len(got) != 1 {
		t.Fatalf("ApplyFilter returned %d invoices, want 1", len(got))
	}

	if all := ApplyFilter(invoices, Filter{}); len(all) != 3 {
		t.Errorf("ApplyFilter with empty filter returned %d invoices, want 3", len(all))
	}
}
