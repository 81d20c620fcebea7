package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrEmptyEmail is returned when an account has no email.
var ErrEmptyEmail = errors.New("email cannot be empty")

// reservedAccountFields are the JSON keys owned by the server. Client-supplied
// values for them are not kept in the profile.
var reservedAccountFields = map[string]struct{}{
	"_id":       {},
	"email":     {},
	"createdAt": {},
}

// Account is a user identity record. Email is the unique key; Profile holds
// whatever additional fields the client supplied at creation time and is
// otherwise opaque.
type Account struct {
	ID        string
	Email     string
	Profile   map[string]any
	CreatedAt time.Time
}

// NewAccount creates an Account from the given email and profile fields.
func NewAccount(email string, profile map[string]any) (*Account, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}

	clean := make(map[string]any, len(profile))
	for k, v := range profile {
		if _, reserved := reservedAccountFields[k]; reserved {
			continue
		}
		clean[k] = v
	}

	return &Account{
		Email:     email,
		Profile:   clean,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// MarshalJSON flattens the profile next to the server-owned fields, so an
// account serializes the way the client originally submitted it.
func (a *Account) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Profile)+3)
	for k, v := range a.Profile {
		out[k] = v
	}
	out["_id"] = a.ID
	out["email"] = a.Email
	if !a.CreatedAt.IsZero() {
		out["createdAt"] = a.CreatedAt
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads an account from a flat JSON object. Unknown keys go to
// the profile; server-owned keys other than email are ignored.
func (a *Account) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	email, _ := raw["email"].(string)
	a.Email = email
	a.Profile = make(map[string]any, len(raw))
	for k, v := range raw {
		if _, reserved := reservedAccountFields[k]; reserved {
			continue
		}
		a.Profile[k] = v
	}
	return nil
}
