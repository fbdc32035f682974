package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/services"
)

// MockAccountService is a mock implementation of AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, in services.RegisterAccountInput) (*models.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) Authenticate(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

// MockQuestionService is a mock implementation of QuestionService
type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) Create(ctx context.Context, authorID uuid.UUID, in services.CreateQuestionInput) (*models.Question, error) {
	args := m.Called(ctx, authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionService) ListRecent(ctx context.Context, page int) ([]*models.Question, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}
