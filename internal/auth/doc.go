// Package auth provides the credential and identity primitives of the
// forum API.
//
// This package implements:
//   - Password hashing and verification (bcrypt)
//   - Signed identity tokens (HS256 JWT, subject = account ID)
//   - The Principal attached to authenticated requests
//
// Tokens are stateless: nothing is stored server-side and a token stays
// valid for as long as its signature verifies and, when a TTL is
// configured, until it expires.
package auth
