package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"

	"revreview/backend/models"
)

//go:embed curriculum.json
var curriculumRawJSON []byte

type curriculum struct {
	Vocabulary     []models.VocabularyTerm      `json:"vocabulary"`
	Questions      []models.Question            `json:"questions"`
	TimelineEvents []models.TimelineEvent       `json:"timelineEvents"`
	ShortAnswers   []models.ShortAnswerQuestion `json:"shortAnswers"`
}

// Catalog is the read-only curriculum content: vocabulary terms, the
// question bank, timeline events and short-answer prompts. It is loaded
// once from the embedded JSON and never mutated.
type Catalog struct {
	vocabulary     []models.VocabularyTerm
	questions      []models.Question
	timelineEvents []models.TimelineEvent
	shortAnswers   []models.ShortAnswerQuestion
	termIndex      map[string]int
}

// Load parses the embedded curriculum. Question IDs are assigned from bank
// position so they stay stable across restarts.
func Load() (*Catalog, error) {
	var c curriculum
	if err := json.Unmarshal(curriculumRawJSON, &c); err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}

	for i := range c.Questions {
		c.Questions[i].ID = i
	}

	termIndex := make(map[string]int, len(c.Vocabulary))
	for i, v := range c.Vocabulary {
		termIndex[v.Term] = i
	}

	return &Catalog{
		vocabulary:     c.Vocabulary,
		questions:      c.Questions,
		timelineEvents: c.TimelineEvents,
		shortAnswers:   c.ShortAnswers,
		termIndex:      termIndex,
	}, nil
}

func (c *Catalog) Vocabulary() []models.VocabularyTerm {
	return c.vocabulary
}

func (c *Catalog) TotalVocab() int {
	return len(c.vocabulary)
}

// TermByName returns the vocabulary entry for term, or false when the term
// is not part of the curriculum.
func (c *Catalog) TermByName(term string) (models.VocabularyTerm, bool) {
	i, ok := c.termIndex[term]
	if !ok {
		return models.VocabularyTerm{}, false
	}
	return c.vocabulary[i], true
}

func (c *Catalog) Questions() []models.Question {
	return c.questions
}

func (c *Catalog) TotalQuestions() int {
	return len(c.questions)
}

// QuestionByID returns the question with the given bank index.
func (c *Catalog) QuestionByID(id int) (models.Question, bool) {
	if id < 0 || id >= len(c.questions) {
		return models.Question{}, false
	}
	return c.questions[id], true
}

// RandomQuestions returns a shuffled sample of up to n questions.
func (c *Catalog) RandomQuestions(n int) []models.Question {
	shuffled := make([]models.Question, len(c.questions))
	copy(shuffled, c.questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func (c *Catalog) TimelineEvents() []models.TimelineEvent {
	return c.timelineEvents
}

// ShuffledTimelineEvents returns the events in random order for rendering
// the drag-and-drop pool.
func (c *Catalog) ShuffledTimelineEvents() []models.TimelineEvent {
	shuffled := make([]models.TimelineEvent, len(c.timelineEvents))
	copy(shuffled, c.timelineEvents)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

func (c *Catalog) ShortAnswers() []models.ShortAnswerQuestion {
	return c.shortAnswers
}

// Categories returns the distinct vocabulary categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range c.vocabulary {
		if _, ok := seen[v.Category]; ok {
			continue
		}
		seen[v.Category] = struct{}{}
		out = append(out, v.Category)
	}
	return out
}

// TermsByCategory groups vocabulary terms by category.
func (c *Catalog) TermsByCategory() map[string][]models.VocabularyTerm {
	out := make(map[string][]models.VocabularyTerm)
	for _, v := range c.vocabulary {
		out[v.Category] = append(out[v.Category], v)
	}
	return out
}

// Topics returns the distinct question topics in first-seen order.
func (c *Catalog) Topics() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range c.questions {
		if _, ok := seen[q.Topic]; ok {
			continue
		}
		seen[q.Topic] = struct{}{}
		out = append(out, q.Topic)
	}
	return out
}

// QuestionsByTopic groups the question bank by topic.
func (c *Catalog) QuestionsByTopic() map[string][]models.Question {
	out := make(map[string][]models.Question)
	for _, q := range c.questions {
		out[q.Topic] = append(out[q.Topic], q)
	}
	return out
}
