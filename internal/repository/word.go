package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEmptyWordSet   = errors.New("word set is empty")
)

// WordRepository provides read-only access to the vocabulary and
// article-noun records loaded from a JSON asset file. Records are immutable
// after loading.
type WordRepository struct {
	records []*entities.Record
	byID    map[string]*entities.Record
}

// NewWordRepository loads the word set from the given JSON file.
func NewWordRepository(path string) (*WordRepository, error) {
	records, err := loadWords(path)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Record, len(records))
	for _, rec := range records {
		if _, dup := byID[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate record id %q in %s", rec.ID, path)
		}
		byID[rec.ID] = rec
	}

	return &WordRepository{
		records: records,
		byID:    byID,
	}, nil
}

// GetAll returns every loaded record.
func (r *WordRepository) GetAll() []*entities.Record {
	return r.records
}

// GetByID returns the record with the given id.
func (r *WordRepository) GetByID(id string) (*entities.Record, error) {
	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

// GetByKind returns all records of the given kind.
func (r *WordRepository) GetByKind(kind entities.Kind) []*entities.Record {
	out := make([]*entities.Record, 0, len(r.records))
	for _, rec := range r.records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}

// Categories returns the distinct categories of the word set, sorted.
func (r *WordRepository) Categories() []string {
	seen := make(map[string]struct{})
	for _, rec := range r.records {
		if rec.Category != "" {
			seen[rec.Category] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func loadWords(path string) ([]*entities.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Words []*entities.Record `json:"words"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal words JSON: %w", err)
	}

	if len(wrapper.Words) == 0 {
		return nil, ErrEmptyWordSet
	}

	for _, rec := range wrapper.Words {
		if rec.Kind == "" {
			rec.Kind = entities.KindVocabulary
		}
	}

	return wrapper.Words, nil
}
