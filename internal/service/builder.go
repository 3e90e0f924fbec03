package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
)

// Direction selects which side of a record becomes the prompt.
type Direction string

const (
	GermanToEnglish Direction = "de_en"
	EnglishToGerman Direction = "en_de"
)

const maxOptions = 4

// BuildParams describes one batch request.
type BuildParams struct {
	Mode      entities.Mode
	Count     int       // requested batch size; capped at the filtered pool size
	Category  string    // optional category or tag filter
	Direction Direction // prompt direction for flashcard and free text
}

// Builder converts content records into mode-shaped question batches.
// It owns distractor synthesis for multiple choice and the shuffle that
// fixes question order for the lifetime of a session.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder creates a Builder with its own random source.
func NewBuilder() *Builder {
	return &Builder{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Build returns an ordered batch of questions drawn from records.
//
// Records are filtered by params.Category, then sampled without replacement
// in random order, so consecutive calls with the same inputs produce
// different batches. That is the mechanism behind "different questions on
// restart". An empty pool yields an empty batch, never an error.
func (b *Builder) Build(records []*entities.Record, params BuildParams) []entities.Question {
	pool := filterRecords(records, params)
	if len(pool) == 0 || params.Count <= 0 {
		return nil
	}

	b.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	count := params.Count
	if count > len(pool) {
		count = len(pool)
	}

	questions := make([]entities.Question, 0, count)
	for _, rec := range pool[:count] {
		questions = append(questions, b.shapeQuestion(rec, pool, params))
	}

	return questions
}

// filterRecords returns the records eligible for the requested batch.
// Article mode additionally requires a known gender, since the question
// cannot be answered without one.
func filterRecords(records []*entities.Record, params BuildParams) []*entities.Record {
	pool := make([]*entities.Record, 0, len(records))
	for _, rec := range records {
		if !rec.MatchesCategory(params.Category) {
			continue
		}
		if rec.Kind == entities.KindArticle && rec.Gender.Article() == "" {
			continue
		}
		pool = append(pool, rec)
	}
	return pool
}

func (b *Builder) shapeQuestion(rec *entities.Record, pool []*entities.Record, params BuildParams) entities.Question {
	q := entities.Question{
		ID:     rec.ID + "-" + modeSuffix(params.Mode),
		Kind:   rec.Kind,
		Mode:   params.Mode,
		Record: rec,
	}

	switch {
	case params.Mode == entities.ModeReading:
		q.Prompt = rec.German
		q.Answer = rec.English

	case rec.Kind == entities.KindArticle:
		q.Prompt = fmt.Sprintf("Der, die oder das %s?", rec.German)
		q.Answer = rec.Gender.Article()
		q.HelperText = rec.English
		if params.Mode == entities.ModeMultipleChoice {
			q.Options = b.articleOptions()
		}

	case params.Mode == entities.ModeMultipleChoice:
		prompt, correct, domain := mcParts(rec, pool, params.Direction)
		q.Prompt = prompt
		q.Answer = correct
		q.HelperText = rec.Pronunciation
		q.Options = b.buildOptions(firstLiteral(correct), domain)

	default: // flashcard and free text share prompt/answer shaping
		if params.Direction == EnglishToGerman {
			q.Prompt = rec.English
			q.Answer = rec.German
		} else {
			q.Prompt = rec.German
			q.Answer = rec.English
		}
		q.HelperText = rec.Pronunciation
	}

	return q
}

// mcParts returns the templated prompt, the canonical answer and the
// distractor domain for a multiple choice vocabulary question. Distractors
// always come from the same side of the records as the correct answer.
func mcParts(rec *entities.Record, pool []*entities.Record, dir Direction) (string, string, []string) {
	domain := make([]string, 0, len(pool))

	if dir == EnglishToGerman {
		for _, cand := range pool {
			if cand.ID != rec.ID {
				domain = append(domain, firstLiteral(cand.German))
			}
		}
		prompt := fmt.Sprintf("Wie heißt „%s“ auf Deutsch?", firstLiteral(rec.English))
		return prompt, rec.German, domain
	}

	for _, cand := range pool {
		if cand.ID != rec.ID {
			domain = append(domain, firstLiteral(cand.English))
		}
	}
	prompt := fmt.Sprintf("Was bedeutet „%s“?", firstLiteral(rec.German))
	return prompt, rec.English, domain
}

// buildOptions draws up to three distractors from the domain, appends the
// correct answer and shuffles. Distractors must be non-empty, pairwise
// distinct and different from the correct answer; if the corpus cannot
// supply three, fewer are returned rather than fabricating filler.
func (b *Builder) buildOptions(correct string, domain []string) []string {
	candidates := append([]string(nil), domain...)
	b.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	options := []string{correct}
	seen := map[string]struct{}{normalizeOption(correct): {}}

	for _, cand := range candidates {
		if len(options) >= maxOptions {
			break
		}
		cand = strings.TrimSpace(cand)
		if cand == "" {
			continue
		}
		if _, dup := seen[normalizeOption(cand)]; dup {
			continue
		}
		seen[normalizeOption(cand)] = struct{}{}
		options = append(options, cand)
	}

	b.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}

// articleOptions returns the closed {der, die, das} set in random order.
func (b *Builder) articleOptions() []string {
	options := append([]string(nil), entities.Articles...)
	b.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func normalizeOption(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// firstLiteral strips "/"-separated alternatives down to the first one,
// which is what option lists and prompts display.
func firstLiteral(s string) string {
	lit, _, _ := strings.Cut(s, entities.AnswerDelimiter)
	return strings.TrimSpace(lit)
}

func modeSuffix(mode entities.Mode) string {
	switch mode {
	case entities.ModeMultipleChoice:
		return "mc"
	case entities.ModeFlashcard:
		return "fc"
	case entities.ModeFreeText:
		return "ft"
	case entities.ModeReading:
		return "rd"
	}
	return "q"
}
