package doctor

import "testing"

func TestFilterMatches(t *testing.T) {
	mehta := Doctor{Name: "Dr. Anita Mehta", Department: "Cardiology", Status: StatusActive}
	rao := Doctor{Name: "Dr. Vikram Rao", Department: "Orthopedics", Status: StatusOnLeave}

	tests := []struct {
		name   string
		filter Filter
		doctor Doctor
		want   bool
	}{
		{"empty filter matches everyone", Filter{}, mehta, true},
		{"name substring is case-insensitive", Filter{Search: "anita"}, mehta, true},
		{"partial name", Filter{Search: "meht"}, mehta, true},
		{"search miss", Filter{Search: "sharma"}, mehta, false},
		{"department match", Filter{Department: "Cardiology"}, mehta, true},
		{"department mismatch", Filter{Department: "Neurology"}, mehta, false},
		{"status match", Filter{Status: StatusOnLeave}, rao, true},
		{"status mismatch", Filter{Status: StatusInactive}, rao, false},
		{"search hit but department mismatch", Filter{Search: "rao", Department: "Cardiology"}, rao, false},
		{"search and facets all hit", Filter{Search: "vikram", Department: "Orthopedics", Status: StatusOnLeave}, rao, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.doctor); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFilter(t *testing.T) {
	doctors := []Doctor{
		{Name: "Dr. Anita Mehta", Department: "Cardiology", Status: StatusActive},
		{Name: "Dr. Vikram Rao", Department: "Orthopedics", Status: StatusOnLeave},
		{Name: "Dr. Priya Nair", Department: "Cardiology", Status: StatusInactive},
	}

	got := ApplyFilter(doctors, Filter{Department: "Cardiology", Status: StatusActive})
	if len(got) != 1 || got[0].Name != "Dr. Anita Mehta" {
		t.Fatalf("ApplyFilter returned %v, want only Dr. Anita Mehta", got)
	}

	// The empty filter hands back the original slice untouched.
	all := ApplyFilter(doctors, Filter{})
	if len(all) != len(doctors) {
		t.Fatalf("ApplyFilter with empty filter returned %d doctors, want %d", len(all), len(doctors))
	}
}
