package handlers

import "github.com/upb/forum-api/models"

// CreateAccountRequest is the body of POST /accounts
type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// CreateSessionRequest is the body of POST /sessions
type CreateSessionRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// CreateQuestionRequest is the body of POST /questions
type CreateQuestionRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// ListQuestionsQuery is the query string of GET /questions
type ListQuestionsQuery struct {
	Page int `query:"page" default:"1" validate:"gte=1"`
}

// SessionResponse is returned by POST /sessions
type SessionResponse struct {
	AccessToken string `json:"access_token"`
}

// ListQuestionsResponse is returned by GET /questions
type ListQuestionsResponse struct {
	Questions []*models.Question `json:"questions"`
}
