// Package entities contains domain entities used across the application.
package entities

// Kind classifies a content record by the drill it belongs to.
type Kind string

const (
	KindVocabulary Kind = "vocabulary"
	KindArticle    Kind = "article"
	KindGrammar    Kind = "grammar"
)

// Gender is the grammatical gender of a German noun.
type Gender string

const (
	GenderMasculine Gender = "masculine"
	GenderFeminine  Gender = "feminine"
	GenderNeuter    Gender = "neuter"
)

// Articles lists the three definite articles in canonical order.
var Articles = []string{"der", "die", "das"}

// Article returns the definite article for the gender, or "" if unknown.
func (g Gender) Article() string {
	switch g {
	case GenderMasculine:
		return "der"
	case GenderFeminine:
		return "die"
	case GenderNeuter:
		return "das"
	}
	return ""
}

// Record is an immutable unit of learnable material: a vocabulary word,
// an article-noun, or a grammar lesson. Records are owned by the content
// repositories and are never mutated after loading.
type Record struct {
	ID            string   `json:"id"`            // stable, unique within its content set
	German        string   `json:"german"`        // German term, or lesson title for grammar
	English       string   `json:"english"`       // English translation, or lesson body for grammar
	Kind          Kind     `json:"kind"`          // vocabulary, article, or grammar
	Gender        Gender   `json:"gender"`        // only set for nouns
	Pronunciation string   `json:"pronunciation"` // optional pronunciation hint
	Category      string   `json:"category"`      // primary category used for filtering
	Tags          []string `json:"tags"`          // additional filter tags
	Frequency     int      `json:"frequency"`     // corpus frequency weight, pass-through only
}

// MatchesCategory reports whether the record belongs to the given category,
// either as its primary category or as one of its tags. An empty category
// matches every record.
func (r *Record) MatchesCategory(category string) bool {
	if category == "" {
		return true
	}
	if r.Category == category {
		return true
	}
	for _, t := range r.Tags {
		if t == category {
			return true
		}
	}
	return false
}
