package profiles

// Profile holds the demographic and body attributes of a user. All fields
// apart from the user id are optional, a fresh profile is perfectly valid
// with everything unset.
type Profile struct {
	UserID           int      `json:"userId"`
	Age              *int     `json:"age,omitempty"`
	Gender           *string  `json:"gender,omitempty"`
	HeightCm         *float64 `json:"heightCm,omitempty"`
	WeightKg         *float64 `json:"weightKg,omitempty"`
	BMI              *float64 `json:"bmi,omitempty"`
	RestingHeartRate *float64 `json:"restingHeartRate,omitempty"`
}

// RecomputeBMI refreshes the BMI from height and weight when both are
// present, and clears it otherwise so a stale value never survives an
// update of either component.
func (p *Profile) RecomputeBMI() {
	if p.HeightCm == nil || p.WeightKg == nil || *p.HeightCm <= 0 {
		p.BMI = nil
		return
	}
	heightM := *p.HeightCm / 100
	bmi := *p.WeightKg / (heightM * heightM)
	p.BMI = &bmi
}
