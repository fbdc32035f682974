package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered user able to authenticate with email/password
type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"` // unique, compared as stored
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new Account instance from an already hashed password
func NewAccount(name, email, passwordHash string) *Account {
	return &Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
