package fitness

import "time"

// SetSummarizerNow overrides the summarizer clock in tests.
func SetSummarizerNow(s *Summarizer, now func() time.Time) {
	s.now = now
}
