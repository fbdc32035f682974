package services

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/upb/forum-api/internal/slug"
	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/repositories"
	"github.com/upb/forum-api/utils"
	"go.uber.org/zap"
)

// QuestionsPerPage is the fixed page size of ListRecent
const QuestionsPerPage = 20

// CreateQuestionInput carries the fields of a new question
type CreateQuestionInput struct {
	Title   string
	Content string
}

// QuestionService creates and lists questions
type QuestionService struct {
	questions repositories.QuestionRepository
	logger    *zap.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questions repositories.QuestionRepository, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		logger:    logger,
	}
}

// Create stores a question authored by authorID with a slug derived from its title
func (s *QuestionService) Create(ctx context.Context, authorID uuid.UUID, in CreateQuestionInput) (*models.Question, error) {
	questionSlug := slug.Normalize(in.Title)
	if questionSlug == "" {
		return nil, NewDomainError(ErrorTypeValidation, "Validation failed",
			utils.NewFieldError("title", "title must contain at least one letter or digit"))
	}

	question := models.NewQuestion(authorID, in.Title, in.Content, questionSlug)
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, WrapInternal("failed to create question", err)
	}

	s.logger.Info("question created",
		zap.String("question_id", question.ID.String()),
		zap.String("author_id", authorID.String()),
		zap.String("slug", questionSlug))
	return question, nil
}

// ListRecent returns the given 1-based page of questions, newest first
func (s *QuestionService) ListRecent(ctx context.Context, page int) ([]*models.Question, error) {
	if page < 1 {
		return nil, NewDomainError(ErrorTypeValidation, "Validation failed",
			utils.NewFieldError("page", "page must be greater than or equal to 1"))
	}

	// pages whose offset overflows int are past any stored row
	if page-1 > math.MaxInt/QuestionsPerPage {
		return []*models.Question{}, nil
	}

	questions, err := s.questions.ListRecent(ctx, QuestionsPerPage, (page-1)*QuestionsPerPage)
	if err != nil {
		return nil, WrapInternal("failed to list questions", err)
	}
	return questions, nil
}
