package models

// VocabularyTerm is one flashcard entry. Term doubles as the unique key in
// the vocabulary-mastery set.
type VocabularyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Category   string `json:"category"`
}

// Question is one multiple-choice item. ID is its index in the question
// bank; Correct is the index into Options.
type Question struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
	Topic       string   `json:"topic"`
}

// TimelineEvent is one draggable card in the timeline challenge. ID is also
// the event's correct 1-based chronological position.
type TimelineEvent struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// ShortAnswerQuestion is a writing prompt with scaffolding.
type ShortAnswerQuestion struct {
	Question         string   `json:"question"`
	Topic            string   `json:"topic"`
	Rubric           []string `json:"rubric"`
	Exemplar         string   `json:"exemplar"`
	SentenceStarters []string `json:"sentenceStarters"`
}
