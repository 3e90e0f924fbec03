package entities

import "time"

// Mistake records one incorrectly answered question within a session.
// Mistakes live for the duration of a single run; a review session consumes
// them wholesale and tracks its own mistakes independently.
type Mistake struct {
	QuestionID    string // ID of the missed question
	Prompt        string // prompt as shown to the user
	CorrectAnswer string // canonical answer, alternatives included
	UserAnswer    string // what the user submitted
	Category      string // category of the source record
}

// Results summarizes a completed session.
type Results struct {
	TotalQuestions int
	CorrectAnswers int
	WrongAnswers   int
	TimeSpent      time.Duration
	Mistakes       []Mistake
}

// SessionResult is a persisted summary of one completed session, kept for
// the history view. It never feeds back into question selection.
type SessionResult struct {
	ID             int64
	ChatID         int64
	Mode           string
	TotalQuestions int
	CorrectAnswers int
	WrongAnswers   int
	TimeSpent      time.Duration
	FinishedAt     time.Time
}
