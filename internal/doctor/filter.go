package doctor

import "strings"

// Filter narrows a doctor list: case-insensitive substring on name,
// exact match on department and status; set fields combine with AND.
type Filter struct {
	Search     string
	Department string
	Status     Status
}

func (f Filter) Matches(d Doctor) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.Department != "" && d.Department != f.Department {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	return true
}

func ApplyFilter(doctors []Doctor, f Filter) []Doctor {
	if f.Search == "" && f.Department == "" && f.Status == "" {
		return doctors
	}
	out := make([]Doctor, 0, len(doctors))
	for _, d := range doctors {
		if f.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}
