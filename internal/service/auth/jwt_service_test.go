package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/taskmate-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
	testEmail   = "a@example.com"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.AuthConfig
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     config.AuthConfig{JWTSecret: testSecret, TokenLifetimeHours: 8760},
			wantErr: false,
		},
		{
			name:    "short secret",
			cfg:     config.AuthConfig{JWTSecret: "short", TokenLifetimeHours: 8760},
			wantErr: true,
		},
		{
			name:    "zero lifetime",
			cfg:     config.AuthConfig{JWTSecret: testSecret, TokenLifetimeHours: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, err := NewTokenService(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 365 * 24 * time.Hour
	svc := newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime))

	t.Run("round-trips the email", func(t *testing.T) {
		t.Parallel()
		token, err := svc.IssueToken(context.Background(), testEmail)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.VerifyToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, testEmail, claims.Email)
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("tokens are unique per issue", func(t *testing.T) {
		t.Parallel()
		first, err := svc.IssueToken(context.Background(), testEmail)
		require.NoError(t, err)
		second, err := svc.IssueToken(context.Background(), testEmail)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("missing email", func(t *testing.T) {
		t.Parallel()
		token, err := svc.IssueToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingEmail)
		assert.Empty(t, token)
	})
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := time.Hour

	issue := func(t *testing.T, secret string) string {
		t.Helper()
		token, err := newHMACTokenService(secret, lifetime, fixedClock(fixedTime)).
			IssueToken(context.Background(), testEmail)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (TokenService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (TokenService, string) {
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), issue(t, testSecret)
			},
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (TokenService, string) {
				later := fixedClock(fixedTime.Add(lifetime + time.Hour))
				return newHMACTokenService(testSecret, lifetime, later), issue(t, testSecret)
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			setupFunc: func(t *testing.T) (TokenService, string) {
				return newHMACTokenService(wrongSecret, lifetime, fixedClock(fixedTime)), issue(t, testSecret)
			},
			wantErr: ErrInvalidSignature,
		},
		{
			name: "malformed token",
			setupFunc: func(t *testing.T) (TokenService, string) {
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrMalformedToken,
		},
		{
			name: "empty token",
			setupFunc: func(t *testing.T) (TokenService, string) {
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), ""
			},
			wantErr: ErrMalformedToken,
		},
		{
			name: "different algorithm",
			setupFunc: func(t *testing.T) (TokenService, string) {
				claims := jwtCustomClaims{
					Email: testEmail,
					RegisteredClaims: jwt.RegisteredClaims{
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
					},
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidSignature,
		},
		{
			name: "missing email claim",
			setupFunc: func(t *testing.T) (TokenService, string) {
				claims := jwtCustomClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
					},
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return newHMACTokenService(testSecret, lifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrMalformedToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc(t)
			claims, err := svc.VerifyToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidToken, "every verification failure is an invalid token")
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, testEmail, claims.Email)
			}
		})
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	t.Parallel()

	svc := newHMACTokenService(testSecret, time.Hour, time.Now)
	token, err := svc.IssueToken(context.Background(), testEmail)
	require.NoError(t, err)

	// Change the first character of the signature segment.
	sigStart := strings.LastIndex(token, ".") + 1
	replacement := byte('A')
	if token[sigStart] == 'A' {
		replacement = 'B'
	}
	tampered := token[:sigStart] + string(replacement) + token[sigStart+1:]

	_, err = svc.VerifyToken(context.Background(), tampered)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestErrorHierarchy(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrInvalidSignature, ErrExpiredToken, ErrMalformedToken, ErrTokenNotYetValid} {
		assert.ErrorIs(t, err, ErrInvalidToken, err.Error())
	}
	assert.NotErrorIs(t, ErrMissingEmail, ErrInvalidToken)
}
