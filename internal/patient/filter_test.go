package patient

import "testing"

func TestFilterMatches(t *testing.T) {
	alice := Patient{Name: "Alice Fernandes", Phone: "9876543210", Status: StatusAdmitted}
	bob := Patient{Name: "Bob Mathew", Phone: "9123456780", Status: StatusDischarged}

	tests := []struct {
		name    string
		filter  Filter
		patient Patient
		want    bool
	}{
		{"empty filter matches everyone", Filter{}, alice, true},
		{"name substring is case-insensitive", Filter{Search: "alice"}, alice, true},
		{"partial name", Filter{Search: "fern"}, alice, true},
		{"phone substring", Filter{Search: "86543"}, alice, true},
		{"search miss", Filter{Search: "charlie"}, alice, false},
		{"status match", Filter{Status: StatusAdmitted}, alice, true},
		{"status mismatch", Filter{Status: StatusCritical}, alice, false},
		{"search hit but status mismatch", Filter{Search: "bob", Status: StatusAdmitted}, bob, false},
		{"search and status both hit", Filter{Search: "bob", Status: StatusDischarged}, bob, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.patient); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFilter(t *testing.T) {
	patients := []Patient{
		{Name: "Alice Fernandes", Phone: "9876543210", Status: StatusAdmitted},
		{Name: "Bob Mathew", Phone: "9123456780", Status: StatusDischarged},
		{Name: "Carol D'Souza", Phone: "9988776655", Status: StatusCritical},
	}

	got := ApplyFilter(patients, Filter{Search: "a", Status: StatusAdmitted})
	if len(got) != 1 || got[0].Name != "Alice Fernandes" {
		t.Fatalf("ApplyFilter returned %v, want only Alice Fernandes", got)
	}

	// The empty filter hands back the original slice untouched.
	all := ApplyFilter(patients, Filter{})
	if len(all) != len(patients) {
		t.Fatalf("ApplyFilter with empty filter returned %d patients, want %d", len(all), len(patients))
	}
}
