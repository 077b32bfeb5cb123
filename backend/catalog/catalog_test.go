package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCurriculum(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 22, c.TotalVocab())
	assert.Equal(t, 30, c.TotalQuestions())
	assert.Len(t, c.TimelineEvents(), 10)
	assert.Len(t, c.ShortAnswers(), 5)
}

func TestQuestionIDsMatchBankPosition(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for i, q := range c.Questions() {
		assert.Equal(t, i, q.ID)
		assert.GreaterOrEqual(t, q.Correct, 0)
		assert.Less(t, q.Correct, len(q.Options))
		assert.NotEmpty(t, q.Explanation)
	}
}

func TestQuestionByID(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	q, ok := c.QuestionByID(0)
	require.True(t, ok)
	assert.Contains(t, q.Question, "Proclamation of 1763")

	_, ok = c.QuestionByID(30)
	assert.False(t, ok)
	_, ok = c.QuestionByID(-1)
	assert.False(t, ok)
}

func TestTermByName(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	term, ok := c.TermByName("Boycott")
	require.True(t, ok)
	assert.Equal(t, "Causes of Unrest", term.Category)

	_, ok = c.TermByName("Photosynthesis")
	assert.False(t, ok)
}

func TestTimelineEventIDsAreChronologicalPositions(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for i, e := range c.TimelineEvents() {
		assert.Equal(t, i+1, e.ID)
	}
	first := c.TimelineEvents()[0]
	last := c.TimelineEvents()[9]
	assert.Equal(t, "1763", first.Year)
	assert.Equal(t, "1776", last.Year)
}

func TestShuffledTimelineEventsKeepsAllEvents(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	shuffled := c.ShuffledTimelineEvents()
	require.Len(t, shuffled, 10)
	seen := map[int]bool{}
	for _, e := range shuffled {
		seen[e.ID] = true
	}
	assert.Len(t, seen, 10)
}

func TestRandomQuestionsSampling(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.RandomQuestions(10), 10)
	assert.Len(t, c.RandomQuestions(100), 30)
}

func TestCategoriesAndTopics(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Causes of Unrest", "Uncovering Loyalties", "Declaration"}, c.Categories())
	assert.Contains(t, c.Topics(), "1776 Musical")
	assert.Len(t, c.QuestionsByTopic()["Connections"], 3)
}
