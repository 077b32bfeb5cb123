// Package badges holds the achievement definitions and unlock rules.
package badges

// Badge IDs. Stored in the earned list and referenced by the frontend.
const (
	FirstStudy     = "first_study"
	Vocab5         = "vocab_5"
	VocabAll       = "vocab_all"
	Streak3        = "streak_3"
	Streak7        = "streak_7"
	Practice10     = "practice_10"
	TestPass       = "test_pass"
	PerfectTest    = "perfect_test"
	StudyHour      = "study_hour"
	TimelineMaster = "timeline_master"
)

const hourMillis = 3600000

// Badge is one achievement definition.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Stats is the progress slice the unlock rules read. Counters only go up,
// so an earned badge stays earnable forever; Evaluate simply never
// re-awards it.
type Stats struct {
	VocabKnown           int
	VocabTotal           int
	StreakCurrent        int
	PracticeAttempted    int
	BestTestScore        int
	TotalStudyTimeMillis int64
	TimelinePerfectCount int
}

type rule struct {
	badge    Badge
	earned   func(Stats) bool
	progress func(Stats) (current, target int)
}

var rules = []rule{
	{
		badge:  Badge{FirstStudy, "First Steps", "👶", "Complete your first study session"},
		earned: func(s Stats) bool { return s.TotalStudyTimeMillis > 0 },
		progress: func(s Stats) (int, int) {
			if s.TotalStudyTimeMillis > 0 {
				return 1, 1
			}
			return 0, 1
		},
	},
	{
		badge:    Badge{Vocab5, "Word Explorer", "📚", "Master 5 vocabulary terms"},
		earned:   func(s Stats) bool { return s.VocabKnown >= 5 },
		progress: func(s Stats) (int, int) { return s.VocabKnown, 5 },
	},
	{
		badge:    Badge{VocabAll, "Vocabulary Master", "🎓", "Master all vocabulary terms"},
		earned:   func(s Stats) bool { return s.VocabKnown >= s.VocabTotal },
		progress: func(s Stats) (int, int) { return s.VocabKnown, s.VocabTotal },
	},
	{
		badge:    Badge{Streak3, "Dedicated Student", "🔥", "Study 3 days in a row"},
		earned:   func(s Stats) bool { return s.StreakCurrent >= 3 },
		progress: func(s Stats) (int, int) { return s.StreakCurrent, 3 },
	},
	{
		badge:    Badge{Streak7, "Week Warrior", "⭐", "Study 7 days in a row"},
		earned:   func(s Stats) bool { return s.StreakCurrent >= 7 },
		progress: func(s Stats) (int, int) { return s.StreakCurrent, 7 },
	},
	{
		badge:    Badge{Practice10, "Practice Pro", "💪", "Complete 10 practice questions"},
		earned:   func(s Stats) bool { return s.PracticeAttempted >= 10 },
		progress: func(s Stats) (int, int) { return s.PracticeAttempted, 10 },
	},
	{
		badge:    Badge{TestPass, "Test Taker", "✅", "Score 80% or higher on a practice test"},
		earned:   func(s Stats) bool { return s.BestTestScore >= 80 },
		progress: func(s Stats) (int, int) { return s.BestTestScore, 80 },
	},
	{
		badge:    Badge{PerfectTest, "Perfect Score", "💯", "Get 100% on a practice test"},
		earned:   func(s Stats) bool { return s.BestTestScore >= 100 },
		progress: func(s Stats) (int, int) { return s.BestTestScore, 100 },
	},
	{
		badge:  Badge{StudyHour, "Time Traveler", "⏰", "Study for at least 1 hour total"},
		earned: func(s Stats) bool { return s.TotalStudyTimeMillis >= hourMillis },
		progress: func(s Stats) (int, int) {
			return int(s.TotalStudyTimeMillis / 60000), 60
		},
	},
	{
		badge:    Badge{TimelineMaster, "Timeline Master", "🕰️", "Get perfect timeline score 3 times"},
		earned:   func(s Stats) bool { return s.TimelinePerfectCount >= 3 },
		progress: func(s Stats) (int, int) { return s.TimelinePerfectCount, 3 },
	},
}

// All returns every badge definition in display order.
func All() []Badge {
	out := make([]Badge, len(rules))
	for i, r := range rules {
		out[i] = r.badge
	}
	return out
}

// Evaluate checks every unlock rule against the stats. Already earned
// badges are skipped; newly satisfied ones are appended to the earned list
// in definition order and also returned on their own for notifications.
func Evaluate(earned []string, s Stats) (updated []string, newlyEarned []Badge) {
	have := make(map[string]bool, len(earned))
	for _, id := range earned {
		have[id] = true
	}
	updated = earned
	for _, r := range rules {
		if have[r.badge.ID] || !r.earned(s) {
			continue
		}
		updated = append(updated, r.badge.ID)
		newlyEarned = append(newlyEarned, r.badge)
	}
	return updated, newlyEarned
}

// Status is one badge with its earned flag and progress toward the target.
type Status struct {
	Badge
	Earned   bool `json:"earned"`
	Progress int  `json:"progress"`
	Target   int  `json:"target"`
}

// Statuses reports every badge with progress for the badge page. Progress
// is capped at the target so bars never overflow.
func Statuses(earned []string, s Stats) []Status {
	have := make(map[string]bool, len(earned))
	for _, id := range earned {
		have[id] = true
	}
	out := make([]Status, len(rules))
	for i, r := range rules {
		current, target := r.progress(s)
		if current > target {
			current = target
		}
		out[i] = Status{
			Badge:    r.badge,
			Earned:   have[r.badge.ID],
			Progress: current,
			Target:   target,
		}
	}
	return out
}
