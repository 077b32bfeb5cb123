package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"revreview/backend/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFirstStudyStartsAtOne(t *testing.T) {
	s := Touch(models.StudyStreak{}, day("2026-03-10"))

	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 1, s.Longest)
	assert.Equal(t, "2026-03-10", s.LastStudyDate)
}

func TestSameDayIsNoOp(t *testing.T) {
	s := Touch(models.StudyStreak{}, day("2026-03-10"))
	again := Touch(s, day("2026-03-10"))

	assert.Equal(t, s, again)
}

func TestConsecutiveDayExtends(t *testing.T) {
	s := Touch(models.StudyStreak{}, day("2026-03-10"))
	s = Touch(s, day("2026-03-11"))

	assert.Equal(t, 2, s.Current)
	assert.Equal(t, 2, s.Longest)
	assert.Equal(t, "2026-03-11", s.LastStudyDate)
}

func TestGapResetsButKeepsLongest(t *testing.T) {
	s := Touch(models.StudyStreak{}, day("2026-03-10"))
	s = Touch(s, day("2026-03-11"))
	s = Touch(s, day("2026-03-14"))

	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 2, s.Longest)
	assert.Equal(t, "2026-03-14", s.LastStudyDate)
}

func TestMonthBoundary(t *testing.T) {
	s := Touch(models.StudyStreak{}, day("2026-03-31"))
	s = Touch(s, day("2026-04-01"))

	assert.Equal(t, 2, s.Current)
}
