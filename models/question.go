package models

import (
	"time"

	"github.com/google/uuid"
)

// Question represents a piece of content posted by an account
type Question struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	Slug      string     `json:"slug" db:"slug"` // URL-friendly identifier derived from Title
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// TableName returns the table name for the Question model
func (Question) TableName() string {
	return "questions"
}

// NewQuestion creates a new Question instance
func NewQuestion(authorID uuid.UUID, title, content, slug string) *Question {
	return &Question{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}
}
