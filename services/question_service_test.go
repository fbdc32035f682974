package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/utils"
	"go.uber.org/zap"
)

func TestQuestionService_Create(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("derives slug and stores question", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		questions.On("Create", ctx, mock.MatchedBy(func(q *models.Question) bool {
			return q.AuthorID == authorID && q.Slug == "ola-mundo" && q.Title == "Olá, Mundo!!" && q.Content == "body"
		})).Return(nil)

		svc := NewQuestionService(questions, zap.NewNop())
		question, err := svc.Create(ctx, authorID, CreateQuestionInput{Title: "Olá, Mundo!!", Content: "body"})

		require.NoError(t, err)
		assert.Equal(t, "ola-mundo", question.Slug)
		questions.AssertExpectations(t)
	})

	t.Run("title without slug characters is rejected", func(t *testing.T) {
		questions := new(MockQuestionRepository)

		svc := NewQuestionService(questions, zap.NewNop())
		_, err := svc.Create(ctx, authorID, CreateQuestionInput{Title: "!!! ???", Content: "body"})

		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		var validationErr *utils.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "title", validationErr.Violations[0].Path)
		questions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		questions.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))

		svc := NewQuestionService(questions, zap.NewNop())
		_, err := svc.Create(ctx, authorID, CreateQuestionInput{Title: "Title", Content: "body"})

		assert.True(t, IsInternalError(err))
	})
}

func TestQuestionService_ListRecent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		page       int
		wantOffset int
	}{
		{"first page", 1, 0},
		{"second page", 2, 20},
		{"tenth page", 10, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := new(MockQuestionRepository)
			page := []*models.Question{models.NewQuestion(uuid.New(), "T", "c", "t")}
			questions.On("ListRecent", ctx, QuestionsPerPage, tt.wantOffset).Return(page, nil)

			svc := NewQuestionService(questions, zap.NewNop())
			got, err := svc.ListRecent(ctx, tt.page)

			require.NoError(t, err)
			assert.Equal(t, page, got)
			questions.AssertExpectations(t)
		})
	}

	t.Run("page below one is a validation error", func(t *testing.T) {
		questions := new(MockQuestionRepository)

		svc := NewQuestionService(questions, zap.NewNop())
		_, err := svc.ListRecent(ctx, 0)

		assert.True(t, IsValidationError(err))
		questions.AssertNotCalled(t, "ListRecent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("page with overflowing offset is empty", func(t *testing.T) {
		questions := new(MockQuestionRepository)

		svc := NewQuestionService(questions, zap.NewNop())
		for _, page := range []int{math.MaxInt, math.MaxInt/QuestionsPerPage + 2} {
			got, err := svc.ListRecent(ctx, page)

			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		}
		questions.AssertNotCalled(t, "ListRecent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("last page with a representable offset reaches the store", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		last := math.MaxInt/QuestionsPerPage + 1
		questions.On("ListRecent", ctx, QuestionsPerPage, (last-1)*QuestionsPerPage).Return([]*models.Question{}, nil)

		svc := NewQuestionService(questions, zap.NewNop())
		_, err := svc.ListRecent(ctx, last)

		require.NoError(t, err)
		questions.AssertExpectations(t)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		questions := new(MockQuestionRepository)
		questions.On("ListRecent", ctx, QuestionsPerPage, 0).Return(nil, errors.New("query failed"))

		svc := NewQuestionService(questions, zap.NewNop())
		_, err := svc.ListRecent(ctx, 1)

		assert.True(t, IsInternalError(err))
	})
}
