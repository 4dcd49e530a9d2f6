package patient

import "strings"

// Filter narrows a patient list. Search matches case-insensitively against
// the name and as a plain substring against the phone number; Status matches
// exactly. All set fields must match.
type Filter struct {
	Search string
	Status Status
}

func (f Filter) Matches(p Patient) bool {
	if f.Search != "" {
		nameHit := strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search))
		phoneHit := strings.Contains(p.Phone, f.Search)
		if !nameHit && !phoneHit {
			return false
		}
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return true
}

func ApplyFilter(patients []Patient, f Filter) []Patient {
	if f.Search == "" && f.Status == "" {
		return patients
	}
	out := make([]Patient, 0, len(patients))
	for _, p := range patients {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
