package doctor

// Consultation rates per specialization. An appointment's fee is fixed from
// this table once at booking time and never re-derived afterward.
var specializationFees = map[string]float64{
	"General Medicine": 500,
	"Cardiology":       1500,
	"Neurology":        1500,
	"Orthopedics":      1200,
	"Pediatrics":       800,
	"Gynecology":       1000,
	"Dermatology":      900,
	"Psychiatry":       1100,
	"ENT":              700,
	"Ophthalmology":    700,
}

const defaultConsultationFee = 500

// FeeForSpecialization resolves the booking fee for a doctor. Unknown
// specializations fall back to the doctor's own consultation fee, then to
// the general-medicine rate.
func FeeForSpecialization(specialization string, ownFee float64) float64 {
	if fee, ok := specializationFees[specialization]; ok {
		return fee
	}
	if ownFee > 0 {
		return ownFee
	}
	return defaultConsultationFee
}
