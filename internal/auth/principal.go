package auth

import "github.com/google/uuid"

// Principal is the authenticated caller of a single request.
type Principal struct {
	UserID uuid.UUID
}

// Subject returns the token subject for the principal.
func (p Principal) Subject() string {
	return p.UserID.String()
}
