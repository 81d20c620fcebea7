package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken is the parent of every verification failure. Callers that
	// do not care why a token was rejected check for this one.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrInvalidSignature indicates the token was not signed with our secret or algorithm
	ErrInvalidSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)

	// ErrMalformedToken indicates the token could not be decoded or lacks required claims
	ErrMalformedToken = fmt.Errorf("%w: malformed token", ErrInvalidToken)

	// ErrTokenNotYetValid indicates the token is not yet valid (iat/nbf claim in the future)
	ErrTokenNotYetValid = fmt.Errorf("%w: token not yet valid", ErrInvalidToken)

	// ErrMissingEmail is returned when a token is requested without an identity
	ErrMissingEmail = errors.New("email is required to issue a token")
)
