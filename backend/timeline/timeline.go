// Package timeline grades the chronological ordering challenge.
package timeline

import "revreview/backend/models"

// SlotResult is the verdict for one drop slot.
type SlotResult struct {
	Position int  `json:"position"` // 1-based slot
	EventID  int  `json:"eventId"`  // 0 when the slot was left empty
	Correct  bool `json:"correct"`
}

// Result is one graded attempt.
type Result struct {
	Score   int          `json:"score"`
	Total   int          `json:"total"`
	Perfect bool         `json:"perfect"`
	Slots   []SlotResult `json:"slots"`
}

// Grade scores a placement. placements[i] is the event ID dropped on slot
// i+1; an event is correct when its ID matches its slot position. Missing
// trailing slots count as empty.
func Grade(placements []int, total int) Result {
	r := Result{Total: total, Slots: make([]SlotResult, total)}
	for i := 0; i < total; i++ {
		slot := SlotResult{Position: i + 1}
		if i < len(placements) {
			slot.EventID = placements[i]
			slot.Correct = placements[i] == i+1
		}
		if slot.Correct {
			r.Score++
		}
		r.Slots[i] = slot
	}
	r.Perfect = r.Score == total && total > 0
	return r
}

// Apply folds a graded attempt into the stored stats. BestScore is a
// running maximum and PerfectCount only moves on a full score.
func Apply(p models.TimelineProgress, r Result) models.TimelineProgress {
	p.Attempts++
	if r.Score > p.BestScore {
		p.BestScore = r.Score
	}
	if r.Perfect {
		p.PerfectCount++
	}
	return p
}
