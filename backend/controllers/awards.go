package controllers

import (
	"revreview/backend/badges"
	"revreview/backend/catalog"
	"revreview/backend/storage"
)

// collectStats assembles the counters the badge rules read.
func collectStats(store *storage.Store, cat *catalog.Catalog, userID uint) badges.Stats {
	best := 0
	for _, r := range store.TestHistory(userID) {
		if r.Score > best {
			best = r.Score
		}
	}
	return badges.Stats{
		VocabKnown:           len(store.VocabMastery(userID)),
		VocabTotal:           cat.TotalVocab(),
		StreakCurrent:        store.Streak(userID).Current,
		PracticeAttempted:    len(store.PracticeProgress(userID)),
		BestTestScore:        best,
		TotalStudyTimeMillis: store.TotalStudyTime(userID),
		TimelinePerfectCount: store.Timeline(userID).PerfectCount,
	}
}

// awardBadges re-evaluates the unlock rules and persists any new badges.
// Returns the newly earned ones for the notification toast, never nil so
// responses always carry a JSON array.
func awardBadges(store *storage.Store, cat *catalog.Catalog, userID uint) ([]badges.Badge, error) {
	earned := store.EarnedBadges(userID)
	updated, newly := badges.Evaluate(earned, collectStats(store, cat, userID))
	if len(newly) == 0 {
		return []badges.Badge{}, nil
	}
	if err := store.SaveEarnedBadges(userID, updated); err != nil {
		return nil, err
	}
	return newly, nil
}
