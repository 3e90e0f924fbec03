package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
)

// grammarLesson is the YAML shape of one lesson file.
type grammarLesson struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Body     string   `yaml:"body"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Order    int      `yaml:"order"`
}

// GrammarRepository loads grammar lessons from a directory of YAML files
// and exposes them as grammar records for reading mode.
type GrammarRepository struct {
	lessons []*entities.Record
}

// NewGrammarRepository walks rootDir and loads every lesson YAML it finds.
// Files that do not parse or carry no id are skipped, so a single broken
// lesson cannot take the whole content set down.
func NewGrammarRepository(rootDir string) (*GrammarRepository, error) {
	var lessons []grammarLesson

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var lesson grammarLesson
		if err := yaml.Unmarshal(data, &lesson); err != nil {
			return nil
		}
		if lesson.ID == "" || lesson.Title == "" {
			return nil
		}

		lessons = append(lessons, lesson)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading grammar lessons: %w", err)
	}

	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].Order < lessons[j].Order
	})

	records := make([]*entities.Record, 0, len(lessons))
	for _, l := range lessons {
		records = append(records, &entities.Record{
			ID:       l.ID,
			German:   l.Title,
			English:  l.Body,
			Kind:     entities.KindGrammar,
			Category: l.Category,
			Tags:     l.Tags,
		})
	}

	return &GrammarRepository{lessons: records}, nil
}

// Lessons returns all grammar lessons in their configured order.
func (r *GrammarRepository) Lessons() []*entities.Record {
	return r.lessons
}
