package service_test

import (
	"testing"
	"time"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
	"github.com/mkleist/wortschatz-bot/internal/service"
)

func testBatch(ids ...string) []entities.Question {
	answers := map[string]string{"q1": "der", "q2": "die", "q3": "das"}

	qs := make([]entities.Question, 0, len(ids))
	for _, id := range ids {
		qs = append(qs, entities.Question{
			ID:     id,
			Kind:   entities.KindArticle,
			Mode:   entities.ModeMultipleChoice,
			Prompt: "Der, die oder das " + id + "?",
			Answer: answers[id],
			Record: &entities.Record{ID: id, Category: "nouns"},
		})
	}
	return qs
}

func newTestSession(batch []entities.Question, opts ...service.SessionOption) *service.Session {
	return service.NewSession(func() []entities.Question { return batch }, opts...)
}

func TestSession_StartEmptyBatch(t *testing.T) {
	sess := newTestSession(nil)

	if sess.Start(nil) {
		t.Error("Start(nil) = true, want false")
	}
	if sess.Phase() != service.PhaseIdle {
		t.Errorf("phase = %v after empty Start, want PhaseIdle", sess.Phase())
	}
}

func TestSession_CompletionArithmetic(t *testing.T) {
	batch := testBatch("q1", "q2", "q3")
	sess := newTestSession(batch)

	if !sess.Start(batch) {
		t.Fatal("Start() = false")
	}

	// der is correct, die is correct, der is wrong for q3 (das).
	for _, submitted := range []string{"der", "die", "der"} {
		if _, accepted := sess.Answer(submitted); !accepted {
			t.Fatalf("Answer(%q) not accepted", submitted)
		}
		sess.Advance()
	}

	if sess.Phase() != service.PhaseCompleted {
		t.Fatalf("phase = %v, want PhaseCompleted", sess.Phase())
	}

	res, ok := sess.Results()
	if !ok {
		t.Fatal("Results() not available")
	}

	if res.CorrectAnswers+res.WrongAnswers != res.TotalQuestions {
		t.Errorf("correct %d + wrong %d != total %d", res.CorrectAnswers, res.WrongAnswers, res.TotalQuestions)
	}
	if res.CorrectAnswers != 2 {
		t.Errorf("CorrectAnswers = %d, want 2", res.CorrectAnswers)
	}
	if len(res.Mistakes) != res.WrongAnswers {
		t.Errorf("len(Mistakes) = %d, want %d", len(res.Mistakes), res.WrongAnswers)
	}

	m := res.Mistakes[0]
	if m.QuestionID != "q3" || m.UserAnswer != "der" || m.CorrectAnswer != "das" {
		t.Errorf("mistake = %+v, want q3/der/das", m)
	}
	if m.Category != "nouns" {
		t.Errorf("mistake category = %q, want nouns", m.Category)
	}
}

func TestSession_DuplicateAnswerIsNoOp(t *testing.T) {
	batch := testBatch("q1", "q2")
	sess := newTestSession(batch)
	sess.Start(batch)

	if _, accepted := sess.Answer("der"); !accepted {
		t.Fatal("first Answer() not accepted")
	}
	if _, accepted := sess.Answer("die"); accepted {
		t.Error("second Answer() accepted, want rejected")
	}
	if sess.Score() != 1 {
		t.Errorf("score = %d after duplicate answer, want 1", sess.Score())
	}

	// A wrong duplicate must not append a second mistake either.
	sess.Advance()
	sess.Answer("der")
	sess.Answer("der")
	sess.Advance()

	res, _ := sess.Results()
	if len(res.Mistakes) != 1 {
		t.Errorf("len(Mistakes) = %d after duplicate wrong answer, want 1", len(res.Mistakes))
	}
}

func TestSession_SingleQuestionFinalizes(t *testing.T) {
	batch := testBatch("q1")
	sess := newTestSession(batch)
	sess.Start(batch)

	sess.Answer("der")
	if !sess.Advance() {
		t.Fatal("Advance() = false on the only question")
	}

	if sess.Phase() != service.PhaseCompleted {
		t.Errorf("phase = %v, want PhaseCompleted", sess.Phase())
	}
	res, ok := sess.Results()
	if !ok || res.TotalQuestions != 1 {
		t.Errorf("results = %+v, %v; want 1 question", res, ok)
	}
}

func TestSession_AdvanceRequiresAnswer(t *testing.T) {
	batch := testBatch("q1", "q2")
	sess := newTestSession(batch)
	sess.Start(batch)

	if sess.Advance() {
		t.Error("Advance() before Answer() = true, want false")
	}
	if num, _ := sess.Progress(); num != 1 {
		t.Errorf("current question = %d, want 1", num)
	}
}

func TestSession_InvalidPhaseCallsAreNoOps(t *testing.T) {
	batch := testBatch("q1")
	sess := newTestSession(batch)

	if _, accepted := sess.Answer("der"); accepted {
		t.Error("Answer() accepted while idle")
	}
	if sess.Advance() {
		t.Error("Advance() succeeded while idle")
	}
	if sess.Restart() {
		t.Error("Restart() succeeded while idle")
	}
	if sess.ReviewMistakes() {
		t.Error("ReviewMistakes() succeeded while idle")
	}

	sess.Start(batch)
	if sess.Restart() {
		t.Error("Restart() succeeded while active")
	}
}

func TestSession_RestartKeepsConfiguration(t *testing.T) {
	builds := 0
	rebuild := func() []entities.Question {
		builds++
		return testBatch("q1", "q2")
	}

	sess := service.NewSession(rebuild)
	sess.Start(rebuild())

	sess.Answer("der")
	sess.Advance()
	sess.Answer("die")
	sess.Advance()

	if !sess.Restart() {
		t.Fatal("Restart() = false from completed phase")
	}
	if builds != 2 {
		t.Errorf("builder invoked %d times, want 2", builds)
	}
	if sess.Phase() != service.PhaseActive {
		t.Errorf("phase = %v after restart, want PhaseActive", sess.Phase())
	}
	if sess.Score() != 0 {
		t.Errorf("score = %d after restart, want 0", sess.Score())
	}
}

func TestSession_ReviewMistakesScoping(t *testing.T) {
	batch := testBatch("q1", "q2", "q3")
	sess := newTestSession(batch)
	sess.Start(batch)

	// Miss q1 and q3, get q2 right.
	sess.Answer("das")
	sess.Advance()
	sess.Answer("die")
	sess.Advance()
	sess.Answer("der")
	sess.Advance()

	if !sess.ReviewMistakes() {
		t.Fatal("ReviewMistakes() = false with 2 mistakes")
	}

	review := sess.Questions()
	if len(review) != 2 {
		t.Fatalf("review batch has %d questions, want 2", len(review))
	}
	got := map[string]bool{}
	for _, q := range review {
		got[q.ID] = true
	}
	if !got["q1"] || !got["q3"] {
		t.Errorf("review batch = %v, want exactly {q1, q3}", got)
	}

	// Mistakes of the replay are tracked independently: a clean replay
	// ends with zero mistakes regardless of the prior run.
	for range review {
		q, _ := sess.Current()
		sess.Answer(q.Answer)
		sess.Advance()
	}

	res, ok := sess.Results()
	if !ok {
		t.Fatal("Results() not available after replay")
	}
	if len(res.Mistakes) != 0 || res.CorrectAnswers != 2 {
		t.Errorf("replay results = %+v, want 2 correct and no mistakes", res)
	}
}

func TestSession_ReviewMistakesWithoutMistakes(t *testing.T) {
	batch := testBatch("q1")
	sess := newTestSession(batch)
	sess.Start(batch)

	sess.Answer("der")
	sess.Advance()

	if sess.ReviewMistakes() {
		t.Error("ReviewMistakes() = true with zero mistakes, want false")
	}
	if sess.Phase() != service.PhaseCompleted {
		t.Errorf("phase = %v, want PhaseCompleted", sess.Phase())
	}
}

func TestSession_ExitDiscardsState(t *testing.T) {
	batch := testBatch("q1", "q2")
	sess := newTestSession(batch)
	sess.Start(batch)
	sess.Answer("der")

	sess.Exit()

	if sess.Phase() != service.PhaseIdle {
		t.Errorf("phase = %v after Exit, want PhaseIdle", sess.Phase())
	}
	if _, ok := sess.Current(); ok {
		t.Error("Current() available after Exit")
	}
	if _, ok := sess.Results(); ok {
		t.Error("Results() available after Exit")
	}
}

func TestSession_AutoAdvance(t *testing.T) {
	advanced := make(chan struct{}, 1)
	batch := testBatch("q1", "q2")
	sess := newTestSession(batch,
		service.WithAutoAdvance(10*time.Millisecond),
		service.WithAdvanceHook(func() { advanced <- struct{}{} }),
	)
	sess.Start(batch)

	sess.Answer("der")

	select {
	case <-advanced:
	case <-time.After(time.Second):
		t.Fatal("auto-advance did not fire")
	}

	if num, _ := sess.Progress(); num != 2 {
		t.Errorf("current question = %d after auto-advance, want 2", num)
	}
}

func TestSession_ExitCancelsPendingAdvance(t *testing.T) {
	batch := testBatch("q1", "q2")
	sess := newTestSession(batch, service.WithAutoAdvance(20*time.Millisecond))
	sess.Start(batch)

	sess.Answer("der")
	sess.Exit()

	time.Sleep(60 * time.Millisecond)

	if sess.Phase() != service.PhaseIdle {
		t.Errorf("phase = %v, want PhaseIdle; a stale timer advanced an exited session", sess.Phase())
	}
}

func TestSession_RestartSupersedesPendingAdvance(t *testing.T) {
	batch := testBatch("q1", "q2")
	sess := newTestSession(batch, service.WithAutoAdvance(20*time.Millisecond))
	sess.Start(batch)
	sess.Answer("der")

	// Starting a fresh run while the timer is pending must suppress it.
	sess.Start(testBatch("q1", "q2"))

	time.Sleep(60 * time.Millisecond)

	if num, _ := sess.Progress(); num != 1 {
		t.Errorf("current question = %d, want 1; a stale timer advanced the new run", num)
	}
}

func TestSession_TimeSpentUsesClock(t *testing.T) {
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	batch := testBatch("q1")
	sess := newTestSession(batch, service.WithClock(func() time.Time { return current }))
	sess.Start(batch)

	current = current.Add(42 * time.Second)
	sess.Answer("der")
	sess.Advance()

	res, _ := sess.Results()
	if res.TimeSpent != 42*time.Second {
		t.Errorf("TimeSpent = %v, want 42s", res.TimeSpent)
	}
}
