// Package review picks out weak areas for the focused study mode.
package review

import (
	"math/rand"
	"strconv"

	"revreview/backend/models"
)

// Weak-area thresholds and focused set limits.
const (
	weakAccuracy      = 0.7
	maxFocusedItems   = 10
	questionsPerTopic = 3
)

// TopicPerformance is a per-topic tally of latest practice attempts.
type TopicPerformance struct {
	Topic     string  `json:"topic"`
	Correct   int     `json:"correct"`
	Attempted int     `json:"attempted"`
	Accuracy  float64 `json:"accuracy"` // 0..1, zero when nothing attempted
}

// FocusedSet is the study material for one focused session.
type FocusedSet struct {
	Vocabulary []models.VocabularyTerm `json:"vocabulary"`
	Questions  []models.Question       `json:"questions"`
	WeakTopics []string                `json:"weakTopics"`
}

// UnknownTerms returns curriculum terms not yet marked known, in
// curriculum order.
func UnknownTerms(vocabulary []models.VocabularyTerm, known []string) []models.VocabularyTerm {
	knownSet := make(map[string]bool, len(known))
	for _, term := range known {
		knownSet[term] = true
	}
	out := []models.VocabularyTerm{}
	for _, v := range vocabulary {
		if !knownSet[v.Term] {
			out = append(out, v)
		}
	}
	return out
}

// TopicPerformances tallies latest-attempt practice results per question
// topic, in bank order.
func TopicPerformances(questions []models.Question, practice map[string]bool) []TopicPerformance {
	index := map[string]int{}
	out := []TopicPerformance{}
	for _, q := range questions {
		i, ok := index[q.Topic]
		if !ok {
			i = len(out)
			index[q.Topic] = i
			out = append(out, TopicPerformance{Topic: q.Topic})
		}
		correct, attempted := practice[strconv.Itoa(q.ID)]
		if attempted {
			out[i].Attempted++
			if correct {
				out[i].Correct++
			}
		}
	}
	for i := range out {
		if out[i].Attempted > 0 {
			out[i].Accuracy = float64(out[i].Correct) / float64(out[i].Attempted)
		}
	}
	return out
}

// WeakTopics returns topics with at least one attempt and accuracy below
// 70%.
func WeakTopics(performances []TopicPerformance) []string {
	out := []string{}
	for _, p := range performances {
		if p.Attempted > 0 && p.Accuracy < weakAccuracy {
			out = append(out, p.Topic)
		}
	}
	return out
}

// BuildFocusedSet assembles a focused session: every unknown vocabulary
// term plus up to three unmastered questions from each weak topic. Both
// lists are shuffled and capped at ten items.
func BuildFocusedSet(vocabulary []models.VocabularyTerm, questions []models.Question, known []string, practice map[string]bool) FocusedSet {
	set := FocusedSet{
		Vocabulary: UnknownTerms(vocabulary, known),
		Questions:  []models.Question{},
	}
	set.WeakTopics = WeakTopics(TopicPerformances(questions, practice))

	weak := make(map[string]bool, len(set.WeakTopics))
	for _, topic := range set.WeakTopics {
		weak[topic] = true
	}
	perTopic := map[string]int{}
	for _, q := range questions {
		if !weak[q.Topic] || perTopic[q.Topic] >= questionsPerTopic {
			continue
		}
		// only questions never answered or answered wrong last time
		if correct, attempted := practice[strconv.Itoa(q.ID)]; attempted && correct {
			continue
		}
		set.Questions = append(set.Questions, q)
		perTopic[q.Topic]++
	}

	rand.Shuffle(len(set.Vocabulary), func(i, j int) {
		set.Vocabulary[i], set.Vocabulary[j] = set.Vocabulary[j], set.Vocabulary[i]
	})
	rand.Shuffle(len(set.Questions), func(i, j int) {
		set.Questions[i], set.Questions[j] = set.Questions[j], set.Questions[i]
	})

	if len(set.Vocabulary) > maxFocusedItems {
		set.Vocabulary = set.Vocabulary[:maxFocusedItems]
	}
	if len(set.Questions) > maxFocusedItems {
		set.Questions = set.Questions[:maxFocusedItems]
	}
	return set
}
