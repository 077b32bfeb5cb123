// Package mastery computes proficiency percentages from stored progress.
// All functions are pure so controllers and the analytics rollup share the
// same math.
package mastery

import (
	"math"

	"revreview/backend/models"
)

// Proficiency tiers, from lowest to highest.
const (
	TierBeginner   = "beginner"
	TierLearning   = "learning"
	TierProficient = "proficient"
	TierExpert     = "expert"
)

// Breakdown is the full set of mastery figures shown on the progress page.
type Breakdown struct {
	VocabKnown        int     `json:"vocabKnown"`
	VocabTotal        int     `json:"vocabTotal"`
	VocabPercent      float64 `json:"vocabPercent"`
	PracticeCorrect   int     `json:"practiceCorrect"`
	PracticeAttempted int     `json:"practiceAttempted"`
	PracticePercent   float64 `json:"practicePercent"`
	TestsTaken        int     `json:"testsTaken"`
	TestAverage       float64 `json:"testAverage"`
	Overall           float64 `json:"overall"`
	Tier              string  `json:"tier"`
	TierLabel         string  `json:"tierLabel"`
}

// VocabPercent is the share of curriculum terms marked known, rounded to a
// whole percent. Zero when the curriculum is empty.
func VocabPercent(known, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(known) / float64(total) * 100)
}

// PracticeStats counts latest-attempt results. The percentage divides by
// attempted questions only, so unattempted questions do not drag it down.
func PracticeStats(progress map[string]bool) (correct, attempted int, percent float64) {
	attempted = len(progress)
	for _, ok := range progress {
		if ok {
			correct++
		}
	}
	if attempted == 0 {
		return 0, 0, 0
	}
	return correct, attempted, math.Round(float64(correct) / float64(attempted) * 100)
}

// TestAverage is the mean score across all graded tests, rounded to a whole
// percent. Zero when no test has been taken.
func TestAverage(results []models.TestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.Score
	}
	return math.Round(float64(sum) / float64(len(results)))
}

// Overall blends the three components: vocabulary and practice carry 40%
// each, the test average 20%.
func Overall(vocabPercent, practicePercent, testAverage float64) float64 {
	return vocabPercent*0.4 + practicePercent*0.4 + testAverage*0.2
}

// Tier maps an overall score to a proficiency tier.
func Tier(overall float64) string {
	switch {
	case overall >= 90:
		return TierExpert
	case overall >= 70:
		return TierProficient
	case overall >= 40:
		return TierLearning
	default:
		return TierBeginner
	}
}

// TierLabel is the display name for a tier.
func TierLabel(tier string) string {
	switch tier {
	case TierExpert:
		return "Expert"
	case TierProficient:
		return "Proficient"
	case TierLearning:
		return "Learning"
	default:
		return "Beginner"
	}
}

// CategoryMastery is the known-term tally for one vocabulary category.
type CategoryMastery struct {
	Category string  `json:"category"`
	Known    int     `json:"known"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

// CategoryBreakdown tallies known terms per category, in curriculum order.
func CategoryBreakdown(terms []models.VocabularyTerm, known []string) []CategoryMastery {
	knownSet := make(map[string]bool, len(known))
	for _, t := range known {
		knownSet[t] = true
	}
	index := map[string]int{}
	out := []CategoryMastery{}
	for _, v := range terms {
		i, ok := index[v.Category]
		if !ok {
			i = len(out)
			index[v.Category] = i
			out = append(out, CategoryMastery{Category: v.Category})
		}
		out[i].Total++
		if knownSet[v.Term] {
			out[i].Known++
		}
	}
	for i := range out {
		out[i].Percent = VocabPercent(out[i].Known, out[i].Total)
	}
	return out
}

// Compute builds the full breakdown from stored aggregates.
func Compute(vocabKnown, vocabTotal int, practice map[string]bool, tests []models.TestResult) Breakdown {
	vocabPct := VocabPercent(vocabKnown, vocabTotal)
	correct, attempted, practicePct := PracticeStats(practice)
	testAvg := TestAverage(tests)
	overall := Overall(vocabPct, practicePct, testAvg)
	tier := Tier(overall)
	return Breakdown{
		VocabKnown:        vocabKnown,
		VocabTotal:        vocabTotal,
		VocabPercent:      vocabPct,
		PracticeCorrect:   correct,
		PracticeAttempted: attempted,
		PracticePercent:   practicePct,
		TestsTaken:        len(tests),
		TestAverage:       testAvg,
		Overall:           overall,
		Tier:              tier,
		TierLabel:         TierLabel(tier),
	}
}
