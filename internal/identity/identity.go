// Package identity is the authentication collaborator: it owns
// credential records and issues/validates access tokens. The rest of
// the application only sees provider user ids and metadata.
package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidLogin is returned for any credential mismatch, without
	// revealing which part was wrong.
	ErrInvalidLogin = errors.New("invalid login credentials")
	// ErrEmailRegistered is returned when an account already exists for
	// the given email.
	ErrEmailRegistered = errors.New("email already registered")
	// ErrInvalidToken is returned when a token cannot be resolved to a user.
	ErrInvalidToken = errors.New("invalid token")
)

// Metadata is attached to a user at creation and embedded in issued
// tokens. Username is the fallback hint used when the reverse index
// misses.
type Metadata struct {
	Username    string `json:"username"`
	PartnerName string `json:"partnerName"`
	Role        string `json:"role"`
}

// User is a provider account as seen by the application
type User struct {
	ID       string
	Email    string
	Metadata Metadata
}

// Session is the result of a successful password sign-in
type Session struct {
	AccessToken string
	User        User
}

// Provider issues and validates access credentials
type Provider interface {
	CreateUser(ctx context.Context, email, password string, meta Metadata) (*User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	VerifyToken(ctx context.Context, token string) (*User, error)
}
