package entities

import "strings"

// Mode is the interaction mode a question is shaped for.
type Mode string

const (
	ModeFlashcard      Mode = "flashcard"
	ModeMultipleChoice Mode = "multiple_choice"
	ModeFreeText       Mode = "free_text"
	ModeReading        Mode = "reading"
)

// AnswerDelimiter separates alternative acceptable answers inside the
// canonical answer string, e.g. "Apfel/Äpfel".
const AnswerDelimiter = "/"

// Question is a derived, mode-shaped presentation of one Record for one
// session. Questions are built once per batch and read-only afterwards.
type Question struct {
	ID         string   // unique within the generated batch
	Kind       Kind     // content kind of the source record
	Mode       Mode     // interaction mode the question was shaped for
	Prompt     string   // text shown to the user
	Answer     string   // canonical answer, may hold "/"-separated alternatives
	Options    []string // only for multiple choice; includes the canonical answer exactly once
	HelperText string   // optional hint (pronunciation, explanation)
	Record     *Record  // back-reference to the source record, never mutated
}

// CanonicalAnswer returns the first literal of the answer, which is the
// value used as the correct option in multiple choice mode.
func (q Question) CanonicalAnswer() string {
	answer, _, _ := strings.Cut(q.Answer, AnswerDelimiter)
	return strings.TrimSpace(answer)
}
