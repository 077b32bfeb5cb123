package badges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateAwardsNothingAtZero(t *testing.T) {
	updated, newly := Evaluate(nil, Stats{VocabTotal: 22})

	assert.Empty(t, updated)
	assert.Empty(t, newly)
}

func TestEvaluateFirstStudy(t *testing.T) {
	updated, newly := Evaluate(nil, Stats{VocabTotal: 22, TotalStudyTimeMillis: 1})

	assert.Equal(t, []string{FirstStudy}, updated)
	require.Len(t, newly, 1)
	assert.Equal(t, "First Steps", newly[0].Name)
}

func TestEvaluateSkipsAlreadyEarned(t *testing.T) {
	updated, newly := Evaluate([]string{FirstStudy}, Stats{VocabTotal: 22, TotalStudyTimeMillis: 1})

	assert.Equal(t, []string{FirstStudy}, updated)
	assert.Empty(t, newly)
}

func TestEvaluateCrossingOneThreshold(t *testing.T) {
	earned := []string{FirstStudy}
	stats := Stats{VocabTotal: 22, VocabKnown: 4, TotalStudyTimeMillis: 1}

	updated, newly := Evaluate(earned, stats)
	assert.Empty(t, newly)

	stats.VocabKnown = 5
	updated, newly = Evaluate(updated, stats)
	require.Len(t, newly, 1)
	assert.Equal(t, Vocab5, newly[0].ID)
	assert.Equal(t, []string{FirstStudy, Vocab5}, updated)
}

func TestEvaluateMultipleAtOnceInDefinitionOrder(t *testing.T) {
	stats := Stats{
		VocabKnown:           22,
		VocabTotal:           22,
		StreakCurrent:        7,
		PracticeAttempted:    10,
		BestTestScore:        100,
		TotalStudyTimeMillis: 2 * hourMillis,
		TimelinePerfectCount: 3,
	}
	updated, newly := Evaluate(nil, stats)

	want := []string{
		FirstStudy, Vocab5, VocabAll, Streak3, Streak7,
		Practice10, TestPass, PerfectTest, StudyHour, TimelineMaster,
	}
	assert.Equal(t, want, updated)
	assert.Len(t, newly, len(want))
}

func TestTestScoreThresholds(t *testing.T) {
	_, newly := Evaluate(nil, Stats{VocabTotal: 22, BestTestScore: 79})
	assert.Empty(t, newly)

	_, newly = Evaluate(nil, Stats{VocabTotal: 22, BestTestScore: 80})
	require.Len(t, newly, 1)
	assert.Equal(t, TestPass, newly[0].ID)

	updated, _ := Evaluate(nil, Stats{VocabTotal: 22, BestTestScore: 100})
	assert.Equal(t, []string{TestPass, PerfectTest}, updated)
}

func TestStatusesProgressCapped(t *testing.T) {
	statuses := Statuses([]string{Vocab5}, Stats{
		VocabKnown:           9,
		VocabTotal:           22,
		TotalStudyTimeMillis: 3 * hourMillis,
	})
	require.Len(t, statuses, 10)

	byID := map[string]Status{}
	for _, st := range statuses {
		byID[st.ID] = st
	}

	assert.True(t, byID[Vocab5].Earned)
	assert.Equal(t, 5, byID[Vocab5].Progress)
	assert.Equal(t, 5, byID[Vocab5].Target)

	assert.False(t, byID[VocabAll].Earned)
	assert.Equal(t, 9, byID[VocabAll].Progress)
	assert.Equal(t, 22, byID[VocabAll].Target)

	// 3 hours shown as 60/60 minutes, not 180/60
	assert.Equal(t, 60, byID[StudyHour].Progress)
	assert.Equal(t, 60, byID[StudyHour].Target)
}

func TestAllPreservesDefinitionOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 10)
	assert.Equal(t, FirstStudy, all[0].ID)
	assert.Equal(t, TimelineMaster, all[9].ID)
}
