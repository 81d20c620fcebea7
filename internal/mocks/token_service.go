package mocks

import (
	"context"

	"github.com/phrazzld/taskmate-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// IssueTokenFn allows test cases to mock the IssueToken behavior
	IssueTokenFn func(ctx context.Context, email string) (string, error)

	// VerifyTokenFn allows test cases to mock the VerifyToken behavior
	VerifyTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token     string
	Err       error
	VerifyErr error
	Claims    *auth.Claims
}

var _ auth.TokenService = (*MockTokenService)(nil)

// IssueToken implements the auth.TokenService interface
func (m *MockTokenService) IssueToken(ctx context.Context, email string) (string, error) {
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, email)
	}
	return m.Token, m.Err
}

// VerifyToken implements the auth.TokenService interface
func (m *MockTokenService) VerifyToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.VerifyTokenFn != nil {
		return m.VerifyTokenFn(ctx, tokenString)
	}
	return m.Claims, m.VerifyErr
}
