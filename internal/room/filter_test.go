package room

import "testing"

func TestFilterMatches(t *testing.T) {
	ward := Room{Number: "A-104", Type: "General", Status: StatusAvailable}
	icu := Room{Number: "ICU-2", Type: "ICU", Status: StatusOccupied}

	tests := []struct {
		name   string
		filter Filter
		room   Room
		want   bool
	}{
		{"empty filter matches everything", Filter{}, ward, true},
		{"number substring", Filter{Search: "104"}, ward, true},
		{"number prefix", Filter{Search: "A-"}, ward, true},
		{"search miss", Filter{Search: "B-"}, ward, false},
		{"type match ignores case", Filter{Type: "general"}, ward, true},
		{"type mismatch", Filter{Type: "Private"}, ward, false},
		{"status match", Filter{Status: StatusOccupied}, icu, true},
		{"status mismatch", Filter{Status: StatusMaintenance}, icu, false},
		{"search hit but status mismatch", Filter{Search: "ICU", Status: StatusAvailable}, icu, false},
		{"search and facets all hit", Filter{Search: "ICU", Type: "ICU", Status: StatusOccupied}, icu, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.room); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFilter(t *testing.T) {
	rooms := []Room{
		{Number: "A-104", Type: "General", Status: StatusAvailable},
		{Number: "A-201", Type: "Private", Status: StatusAvailable},
		{Number: "ICU-2", Type: "ICU", Status: StatusOccupied},
	}

	got := ApplyFilter(rooms, Filter{Search: "A-", Status: StatusAvailable, Type: "Private"})
	if len(got) != 1 || got[0].Number != "A-201" {
		t.Fatalf("ApplyFilter returned %v, want only A-201", got)
	}

	// The empty filter hands back the original slice untouched.
	all := ApplyFilter(rooms, Filter{})
	if len(all) != len(rooms) {
		t.Fatalf("ApplyFilter with empty filter returned %d rooms, want %d", len(all), len(rooms))
	}
}
