package postgres

import (
	"context"
	"fmt"

	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/repositories"
	"go.uber.org/zap"
)

// QuestionRepository implements the repositories.QuestionRepository interface
type QuestionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *DB, logger *zap.Logger) repositories.QuestionRepository {
	return &QuestionRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new question
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	query := `
		INSERT INTO questions (id, author_id, title, content, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		question.ID,
		question.AuthorID,
		question.Title,
		question.Content,
		question.Slug,
		question.CreatedAt,
		question.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	r.logger.Debug("question created",
		zap.String("id", question.ID.String()),
		zap.String("slug", question.Slug))
	return nil
}

// ListRecent retrieves a page of questions, newest first
func (r *QuestionRepository) ListRecent(ctx context.Context, limit, offset int) ([]*models.Question, error) {
	query := `
		SELECT id, author_id, title, content, slug, created_at, updated_at
		FROM questions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := make([]*models.Question, 0, limit)
	for rows.Next() {
		question := &models.Question{}
		err := rows.Scan(
			&question.ID,
			&question.AuthorID,
			&question.Title,
			&question.Content,
			&question.Slug,
			&question.CreatedAt,
			&question.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	return questions, nil
}
