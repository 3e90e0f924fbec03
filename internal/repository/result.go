package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mkleist/wortschatz-bot/internal/domain/entities"
	"github.com/mkleist/wortschatz-bot/internal/infra/postgres"
)

// ResultRepository stores summaries of completed sessions for the history
// view. Results are write-once and never feed back into question selection.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository with the provided
// database pool.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save inserts one completed session result.
func (r *ResultRepository) Save(ctx context.Context, res *entities.SessionResult) error {
	query := `
		INSERT INTO session_results (
			chat_id, mode, total_questions,
			correct_answers, wrong_answers, time_spent_ms, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		query,
		res.ChatID,
		res.Mode,
		res.TotalQuestions,
		res.CorrectAnswers,
		res.WrongAnswers,
		res.TimeSpent.Milliseconds(),
		res.FinishedAt,
	).Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("save session result: %w", err)
	}

	return nil
}

// ListRecent returns the latest results for a chat, newest first.
func (r *ResultRepository) ListRecent(ctx context.Context, chatID int64, limit int) ([]*entities.SessionResult, error) {
	query := `
		SELECT id, chat_id, mode, total_questions,
		       correct_answers, wrong_answers, time_spent_ms, finished_at
		FROM session_results
		WHERE chat_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("list session results: %w", err)
	}
	defer rows.Close()

	var results []*entities.SessionResult
	for rows.Next() {
		var (
			res         entities.SessionResult
			timeSpentMS int64
		)
		err := rows.Scan(
			&res.ID,
			&res.ChatID,
			&res.Mode,
			&res.TotalQuestions,
			&res.CorrectAnswers,
			&res.WrongAnswers,
			&timeSpentMS,
			&res.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session result: %w", err)
		}
		res.TimeSpent = time.Duration(timeSpentMS) * time.Millisecond
		results = append(results, &res)
	}

	return results, rows.Err()
}
