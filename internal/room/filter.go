package room

import "strings"

// Filter narrows a room list: substring on room number, exact match on type
// and status; set fields combine with AND.
type Filter struct {
	Search string
	Type   string
	Status Status
}

func (f Filter) Matches(r Room) bool {
	if f.Search != "" && !strings.Contains(r.Number, f.Search) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(r.Type, f.Type) {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

func ApplyFilter(rooms []Room, f Filter) []Room {
	if f.Search == "" && f.Type == "" && f.Status == "" {
		return rooms
	}
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
