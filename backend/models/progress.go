package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressRecord is one persisted progress aggregate for one user.
// Key is the aggregate name ("vocabProgress", "testResults", ...),
// Value is the JSON-encoded aggregate.
type ProgressRecord struct {
	gorm.Model
	UserID uint           `gorm:"not null;uniqueIndex:idx_user_key"`
	Key    string         `gorm:"not null;uniqueIndex:idx_user_key"`
	Value  datatypes.JSON `gorm:"not null"`
}

// TopicScore is the per-topic tally stored inside a test result.
type TopicScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// TestResult is one graded practice test. Appended to the test-history
// aggregate and never mutated afterwards.
type TestResult struct {
	Score       int                   `json:"score"` // 0-100
	Date        string                `json:"date"`  // ISO 8601
	TopicScores map[string]TopicScore `json:"topicScores"`
}

// StudyStreak tracks consecutive study days. Longest never drops below
// Current after an update.
type StudyStreak struct {
	Current       int    `json:"current"`
	Longest       int    `json:"longest"`
	LastStudyDate string `json:"lastStudyDate"` // "2006-01-02", empty when never studied
}

// TimelineProgress accumulates timeline challenge results. BestScore is a
// running maximum out of 10; PerfectCount only moves on a 10/10 run.
type TimelineProgress struct {
	BestScore    int `json:"bestScore"`
	PerfectCount int `json:"perfectCount"`
	Attempts     int `json:"attempts"`
}

// ProgressSnapshot is the versioned export/import payload covering every
// stored aggregate. Import only touches fields present in the payload.
type ProgressSnapshot struct {
	Version              string            `json:"version"`
	ExportDate           string            `json:"exportDate"`
	VocabMastery         []string          `json:"vocabProgress,omitempty"`
	PracticeProgress     map[string]bool   `json:"practiceProgress,omitempty"`
	WrongAnswerCount     map[string]int    `json:"wrongAnswerCount,omitempty"`
	TestHistory          []TestResult      `json:"testResults,omitempty"`
	TotalStudyTime       *int64            `json:"totalStudyTime,omitempty"`
	StudyStreak          *StudyStreak      `json:"studyStreak,omitempty"`
	EarnedBadges         []string          `json:"earnedBadges,omitempty"`
	TimelineProgress     *TimelineProgress `json:"timelineProgress,omitempty"`
	ShortAnswerResponses map[string]string `json:"shortAnswerResponses,omitempty"`
}
