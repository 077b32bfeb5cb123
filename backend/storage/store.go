package storage

import (
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"revreview/backend/models"
)

// Aggregate keys. One ProgressRecord row per user per key.
const (
	KeyVocabProgress        = "vocabProgress"
	KeyPracticeProgress     = "practiceProgress"
	KeyWrongAnswerCount     = "wrongAnswerCount"
	KeyTestResults          = "testResults"
	KeyTotalStudyTime       = "totalStudyTime"
	KeyStudyStreak          = "studyStreak"
	KeyEarnedBadges         = "earnedBadges"
	KeyTimelineProgress     = "timelineProgress"
	KeyShortAnswerResponses = "shortAnswerResponses"
)

// SnapshotVersion tags exported snapshots. Imports require a version tag
// but accept any value of it.
const SnapshotVersion = "1.0"

// Store persists per-user progress aggregates as JSON rows. Reads never
// fail the caller: a missing or malformed row yields the aggregate's zero
// value, malformed rows are logged.
type Store struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewStore(db *gorm.DB, logger *log.Logger) *Store {
	return &Store{DB: db, Logger: logger}
}

// load decodes the aggregate for (userID, key) into dest and reports
// whether a usable value was found.
func (s *Store) load(userID uint, key string, dest interface{}) bool {
	var rec models.ProgressRecord
	err := s.DB.Where("user_id = ? AND key = ?", userID, key).First(&rec).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			s.Logger.Printf("load %s for user %d: %v", key, userID, err)
		}
		return false
	}
	if err := json.Unmarshal(rec.Value, dest); err != nil {
		s.Logger.Printf("corrupt %s record for user %d, using defaults: %v", key, userID, err)
		return false
	}
	return true
}

// save upserts the aggregate for (userID, key).
func (s *Store) save(userID uint, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	rec := models.ProgressRecord{UserID: userID, Key: key, Value: raw}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

// VocabMastery returns the known-term set in the order terms were marked.
func (s *Store) VocabMastery(userID uint) []string {
	terms := []string{}
	s.load(userID, KeyVocabProgress, &terms)
	return terms
}

// MarkTermKnown adds a term to the known set. The set only grows; marking
// an already-known term is a no-op and ResetVocab is the sole removal
// path. Returns the updated set.
func (s *Store) MarkTermKnown(userID uint, term string) ([]string, error) {
	terms := s.VocabMastery(userID)
	for _, t := range terms {
		if t == term {
			return terms, nil
		}
	}
	terms = append(terms, term)
	return terms, s.save(userID, KeyVocabProgress, terms)
}

// ResetVocab empties the known-term set.
func (s *Store) ResetVocab(userID uint) error {
	return s.save(userID, KeyVocabProgress, []string{})
}

// PracticeProgress maps question ID to the correctness of the most recent
// attempt.
func (s *Store) PracticeProgress(userID uint) map[string]bool {
	progress := map[string]bool{}
	s.load(userID, KeyPracticeProgress, &progress)
	return progress
}

// WrongAnswerCount maps question ID to cumulative wrong attempts.
func (s *Store) WrongAnswerCount(userID uint) map[string]int {
	counts := map[string]int{}
	s.load(userID, KeyWrongAnswerCount, &counts)
	return counts
}

// RecordPracticeAnswer overwrites the question's latest-attempt result and,
// on a wrong answer, increments its wrong-answer tally.
func (s *Store) RecordPracticeAnswer(userID uint, questionID string, correct bool) error {
	progress := s.PracticeProgress(userID)
	progress[questionID] = correct
	if err := s.save(userID, KeyPracticeProgress, progress); err != nil {
		return err
	}
	if !correct {
		counts := s.WrongAnswerCount(userID)
		counts[questionID]++
		if err := s.save(userID, KeyWrongAnswerCount, counts); err != nil {
			return err
		}
	}
	return nil
}

// TestHistory returns all graded tests, oldest first.
func (s *Store) TestHistory(userID uint) []models.TestResult {
	results := []models.TestResult{}
	s.load(userID, KeyTestResults, &results)
	return results
}

// AppendTestResult adds one graded test to the history.
func (s *Store) AppendTestResult(userID uint, result models.TestResult) error {
	results := s.TestHistory(userID)
	results = append(results, result)
	return s.save(userID, KeyTestResults, results)
}

// TotalStudyTime returns accumulated study time in milliseconds.
func (s *Store) TotalStudyTime(userID uint) int64 {
	var total int64
	s.load(userID, KeyTotalStudyTime, &total)
	return total
}

// AddStudyTime accumulates a finished session's duration and returns the
// new total. Non-positive deltas are ignored.
func (s *Store) AddStudyTime(userID uint, deltaMillis int64) (int64, error) {
	total := s.TotalStudyTime(userID)
	if deltaMillis > 0 {
		total += deltaMillis
	}
	return total, s.save(userID, KeyTotalStudyTime, total)
}

// Streak returns the study streak, zero-valued when the user has never
// studied.
func (s *Store) Streak(userID uint) models.StudyStreak {
	var streak models.StudyStreak
	s.load(userID, KeyStudyStreak, &streak)
	return streak
}

func (s *Store) SaveStreak(userID uint, streak models.StudyStreak) error {
	return s.save(userID, KeyStudyStreak, streak)
}

// EarnedBadges returns badge IDs in unlock order.
func (s *Store) EarnedBadges(userID uint) []string {
	badges := []string{}
	s.load(userID, KeyEarnedBadges, &badges)
	return badges
}

func (s *Store) SaveEarnedBadges(userID uint, badges []string) error {
	return s.save(userID, KeyEarnedBadges, badges)
}

// Timeline returns the accumulated timeline challenge stats.
func (s *Store) Timeline(userID uint) models.TimelineProgress {
	var progress models.TimelineProgress
	s.load(userID, KeyTimelineProgress, &progress)
	return progress
}

func (s *Store) SaveTimeline(userID uint, progress models.TimelineProgress) error {
	return s.save(userID, KeyTimelineProgress, progress)
}

// ShortAnswerResponses maps prompt key to the student's saved draft.
func (s *Store) ShortAnswerResponses(userID uint) map[string]string {
	responses := map[string]string{}
	s.load(userID, KeyShortAnswerResponses, &responses)
	return responses
}

// SaveShortAnswerResponse stores one draft, overwriting any previous text
// for the same prompt.
func (s *Store) SaveShortAnswerResponse(userID uint, promptKey, text string) error {
	responses := s.ShortAnswerResponses(userID)
	responses[promptKey] = text
	return s.save(userID, KeyShortAnswerResponses, responses)
}

// ExportAll builds a versioned snapshot of every aggregate.
func (s *Store) ExportAll(userID uint) models.ProgressSnapshot {
	studyTime := s.TotalStudyTime(userID)
	streak := s.Streak(userID)
	timeline := s.Timeline(userID)
	return models.ProgressSnapshot{
		Version:              SnapshotVersion,
		ExportDate:           time.Now().UTC().Format(time.RFC3339),
		VocabMastery:         s.VocabMastery(userID),
		PracticeProgress:     s.PracticeProgress(userID),
		WrongAnswerCount:     s.WrongAnswerCount(userID),
		TestHistory:          s.TestHistory(userID),
		TotalStudyTime:       &studyTime,
		StudyStreak:          &streak,
		EarnedBadges:         s.EarnedBadges(userID),
		TimelineProgress:     &timeline,
		ShortAnswerResponses: s.ShortAnswerResponses(userID),
	}
}

// ImportAll restores aggregates from a snapshot. Only fields present in the
// snapshot are written; absent fields keep their stored values. A snapshot
// without a version tag is rejected and nothing is written.
func (s *Store) ImportAll(userID uint, snap models.ProgressSnapshot) (bool, error) {
	if snap.Version == "" {
		return false, nil
	}
	if snap.VocabMastery != nil {
		if err := s.save(userID, KeyVocabProgress, snap.VocabMastery); err != nil {
			return false, err
		}
	}
	if snap.PracticeProgress != nil {
		if err := s.save(userID, KeyPracticeProgress, snap.PracticeProgress); err != nil {
			return false, err
		}
	}
	if snap.WrongAnswerCount != nil {
		if err := s.save(userID, KeyWrongAnswerCount, snap.WrongAnswerCount); err != nil {
			return false, err
		}
	}
	if snap.TestHistory != nil {
		if err := s.save(userID, KeyTestResults, snap.TestHistory); err != nil {
			return false, err
		}
	}
	if snap.TotalStudyTime != nil {
		if err := s.save(userID, KeyTotalStudyTime, *snap.TotalStudyTime); err != nil {
			return false, err
		}
	}
	if snap.StudyStreak != nil {
		if err := s.save(userID, KeyStudyStreak, *snap.StudyStreak); err != nil {
			return false, err
		}
	}
	if snap.EarnedBadges != nil {
		if err := s.save(userID, KeyEarnedBadges, snap.EarnedBadges); err != nil {
			return false, err
		}
	}
	if snap.TimelineProgress != nil {
		if err := s.save(userID, KeyTimelineProgress, *snap.TimelineProgress); err != nil {
			return false, err
		}
	}
	if snap.ShortAnswerResponses != nil {
		if err := s.save(userID, KeyShortAnswerResponses, snap.ShortAnswerResponses); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ClearAll deletes every stored aggregate for the user. Hard delete, so a
// later save does not collide with a soft-deleted row on the unique index.
func (s *Store) ClearAll(userID uint) error {
	return s.DB.Unscoped().Where("user_id = ?", userID).Delete(&models.ProgressRecord{}).Error
}
