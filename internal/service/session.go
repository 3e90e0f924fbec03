package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
)

// Phase is the lifecycle phase of a practice session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCompleted
)

// BuildFunc produces a fresh question batch with the configuration that
// started the session. Restart re-invokes it, so a restarted session keeps
// the same mode, category and count but gets a newly sampled batch.
type BuildFunc func() []entities.Question

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithAutoAdvance makes Answer schedule Advance after the given delay, so
// the user sees feedback before the next question appears. A zero delay
// disables the timer; callers then drive Advance themselves.
func WithAutoAdvance(delay time.Duration) SessionOption {
	return func(s *Session) { s.autoAdvance = delay }
}

// WithAdvanceHook registers a callback invoked after every advance,
// whether manual or timer-driven. The presentation layer uses it to render
// the next question or the results screen.
func WithAdvanceHook(hook func()) SessionOption {
	return func(s *Session) { s.advanceHook = hook }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// Session is the state machine owning a single practice run: the fixed
// question batch, the answer pointer, the score, the mistake log and the
// elapsed time. All operations are safe for concurrent use; invalid-phase
// calls are no-ops reported through their return values, never panics.
type Session struct {
	mu sync.Mutex

	phase     Phase
	questions []entities.Question
	current   int
	score     int
	mistakes  []entities.Mistake
	answered  bool
	startedAt time.Time
	results   *entities.Results

	rebuild     BuildFunc
	autoAdvance time.Duration
	advanceHook func()
	now         func() time.Time
	rng         *rand.Rand

	// seq invalidates scheduled advances across phase transitions. A timer
	// that fires after Exit or a new Start must not touch the new state.
	seq   uint64
	timer *time.Timer
}

// NewSession creates an idle session. rebuild is remembered for Restart.
func NewSession(rebuild BuildFunc, opts ...SessionOption) *Session {
	s := &Session{
		rebuild: rebuild,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a new run over the given batch. An empty batch is refused:
// the phase stays where it was and Start reports false, which the
// presentation layer renders as an empty state.
func (s *Session) Start(questions []entities.Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(questions)
}

func (s *Session) startLocked(questions []entities.Question) bool {
	if len(questions) == 0 {
		return false
	}

	s.cancelTimerLocked()
	s.phase = PhaseActive
	s.questions = questions
	s.current = 0
	s.score = 0
	s.mistakes = nil
	s.answered = false
	s.startedAt = s.now()
	s.results = nil

	return true
}

// Answer submits an answer for the current question. It returns whether
// the answer was correct and whether it was accepted at all. A second
// submission for the same question is rejected, so the score and mistake
// log change at most once per question.
func (s *Session) Answer(submitted string) (correct, accepted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || s.answered {
		return false, false
	}

	q := s.questions[s.current]
	s.answered = true

	if IsCorrect(submitted, q.Answer) {
		s.score++
		correct = true
	} else {
		m := entities.Mistake{
			QuestionID:    q.ID,
			Prompt:        q.Prompt,
			CorrectAnswer: q.Answer,
			UserAnswer:    submitted,
		}
		if q.Record != nil {
			m.Category = q.Record.Category
		}
		s.mistakes = append(s.mistakes, m)
	}

	if s.autoAdvance > 0 {
		seq := s.seq
		s.timer = time.AfterFunc(s.autoAdvance, func() {
			s.advanceScheduled(seq)
		})
	}

	return correct, true
}

// advanceScheduled runs a timer-driven advance, dropping it if the session
// has moved on since the timer was armed.
func (s *Session) advanceScheduled(seq uint64) {
	s.mu.Lock()
	if s.seq != seq {
		s.mu.Unlock()
		return
	}
	advanced := s.advanceLocked()
	hook := s.advanceHook
	s.mu.Unlock()

	if advanced && hook != nil {
		hook()
	}
}

// Advance moves to the next question, or finalizes the run when the
// current question was the last one. It is only valid after the current
// question was answered.
func (s *Session) Advance() bool {
	s.mu.Lock()
	advanced := s.advanceLocked()
	hook := s.advanceHook
	s.mu.Unlock()

	if advanced && hook != nil {
		hook()
	}
	return advanced
}

func (s *Session) advanceLocked() bool {
	if s.phase != PhaseActive || !s.answered {
		return false
	}

	s.cancelTimerLocked()

	if s.current == len(s.questions)-1 {
		s.results = &entities.Results{
			TotalQuestions: len(s.questions),
			CorrectAnswers: s.score,
			WrongAnswers:   len(s.questions) - s.score,
			TimeSpent:      s.now().Sub(s.startedAt),
			Mistakes:       append([]entities.Mistake(nil), s.mistakes...),
		}
		s.phase = PhaseCompleted
		return true
	}

	s.current++
	s.answered = false
	return true
}

// Restart begins a fresh run with the same configuration that produced the
// just-finished batch. Only valid from the completed phase.
func (s *Session) Restart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseCompleted || s.rebuild == nil {
		return false
	}
	return s.startLocked(s.rebuild())
}

// ReviewMistakes starts a follow-on run whose batch is exactly the
// questions missed in the run that just completed, reshuffled. Mistakes
// collected during the replay are tracked independently. A no-op when the
// prior run had no mistakes.
func (s *Session) ReviewMistakes() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseCompleted || s.results == nil || len(s.results.Mistakes) == 0 {
		return false
	}

	byID := make(map[string]entities.Question, len(s.questions))
	for _, q := range s.questions {
		byID[q.ID] = q
	}

	batch := make([]entities.Question, 0, len(s.results.Mistakes))
	for _, m := range s.results.Mistakes {
		if q, ok := byID[m.QuestionID]; ok {
			batch = append(batch, q)
		}
	}

	s.rng.Shuffle(len(batch), func(i, j int) {
		batch[i], batch[j] = batch[j], batch[i]
	})

	return s.startLocked(batch)
}

// Exit discards the session state and returns to idle. Valid from any
// phase; no results are emitted.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimerLocked()
	s.phase = PhaseIdle
	s.questions = nil
	s.current = 0
	s.score = 0
	s.mistakes = nil
	s.answered = false
	s.results = nil
}

// cancelTimerLocked suppresses any pending scheduled advance.
func (s *Session) cancelTimerLocked() {
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (entities.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return entities.Question{}, false
	}
	return s.questions[s.current], true
}

// Progress returns the 1-based number of the current question and the
// batch size.
func (s *Session) Progress() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return 0, len(s.questions)
	}
	return s.current + 1, len(s.questions)
}

// Score returns the running number of correct answers.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Results returns the summary of the completed run.
func (s *Session) Results() (entities.Results, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseCompleted || s.results == nil {
		return entities.Results{}, false
	}
	return *s.results, true
}

// Questions returns the batch of the current run.
func (s *Session) Questions() []entities.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Question(nil), s.questions...)
}
