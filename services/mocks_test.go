package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/repositories"
)

// MockAccountRepository is a mock implementation of repositories.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// MockQuestionRepository is a mock implementation of repositories.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListRecent(ctx context.Context, limit, offset int) ([]*models.Question, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

// MockPasswordHasher is a mock implementation of PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Matches(plaintext, digest string) bool {
	args := m.Called(plaintext, digest)
	return args.Bool(0)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

// passthroughTx runs fn without a real transaction
type passthroughTx struct {
	calls int
}

func (p *passthroughTx) Begin(ctx context.Context) (repositories.Transaction, error) {
	return nil, nil
}

func (p *passthroughTx) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	p.calls++
	return fn(ctx, nil)
}
