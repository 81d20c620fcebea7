package auth

import (
	"context"
	"time"
)

// TokenService defines operations for issuing and verifying session tokens.
type TokenService interface {
	// IssueToken creates a signed JWT carrying the given email.
	// Returns ErrMissingEmail if email is empty.
	IssueToken(ctx context.Context, email string) (string, error)

	// VerifyToken validates the provided token string and extracts the claims.
	// Every failure wraps ErrInvalidToken; the concrete reason is one of
	// ErrInvalidSignature, ErrExpiredToken, ErrMalformedToken or ErrTokenNotYetValid.
	VerifyToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified contents of a session token.
type Claims struct {
	// Email is the identity the token was issued for.
	Email string `json:"email"`

	// Standard registered JWT claims
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
