// Package streak implements the consecutive-study-day counter.
package streak

import (
	"time"

	"revreview/backend/models"
)

// DateFormat is how study dates are stored.
const DateFormat = "2006-01-02"

// Touch records study activity at now and returns the updated streak.
// The same day is a no-op. Studying the day after the last recorded date
// extends the run; any longer gap resets it to one. Longest never shrinks.
func Touch(s models.StudyStreak, now time.Time) models.StudyStreak {
	today := now.Format(DateFormat)
	if s.LastStudyDate == today {
		return s
	}

	yesterday := now.AddDate(0, 0, -1).Format(DateFormat)
	if s.LastStudyDate == yesterday {
		s.Current++
	} else {
		s.Current = 1
	}

	s.LastStudyDate = today
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	return s
}
