package workouts

import "time"

// Workout is one logged exercise session. Everything apart from the owning
// user and the calendar date is optional.
type Workout struct {
	ID              int       `json:"id"`
	UserID          int       `json:"userId"`
	Date            time.Time `json:"date"`
	StartTime       *string   `json:"startTime,omitempty"`
	EndTime         *string   `json:"endTime,omitempty"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	Intensity       *int      `json:"intensity,omitempty"`
	Source          *string   `json:"source,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}

// Validate checks the invariants that hold for every stored workout:
// owning user and date present, duration non-negative, intensity in 1..10.
func (w *Workout) Validate() bool {
	if w.UserID <= 0 || w.Date.IsZero() {
		return false
	}
	if w.DurationMinutes != nil && *w.DurationMinutes < 0 {
		return false
	}
	if w.Intensity != nil && (*w.Intensity < 1 || *w.Intensity > 10) {
		return false
	}
	return true
}
