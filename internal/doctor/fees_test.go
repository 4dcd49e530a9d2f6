package doctor

import "testing"

func TestFeeForSpecialization(t *testing.T) {
	tests := []struct {
		name           string
		specialization string
		ownFee         float64
		want           float64
	}{
		{"known specialization wins over own fee", "Cardiology", 2000, 1500},
		{"general medicine rate", "General Medicine", 0, 500},
		{"unknown specialization falls back to own fee", "Oncology", 1800, 1800},
		{"unknown specialization and no own fee", "Oncology", 0, 500},
		{"negative own fee is ignored", "Oncology", -100, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FeeForSpecialization(tt.specialization, tt.ownFee); got != tt.want {
				t.Errorf("FeeForSpecialization(%q, %v) = %v, want %v", tt.specialization, tt.ownFee, got, tt.want)
			}
		})
	}
}
