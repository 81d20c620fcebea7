package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
)

// emailHashLength is the number of hex characters kept from the digest.
const emailHashLength = 12

// Email returns a stable pseudonym for an email address. The same address
// always maps to the same value, so log lines for one user can still be
// correlated without recording the address itself.
func Email(email string) string {
	if email == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(strings.TrimSpace(email)))
	return "user:" + hex.EncodeToString(sum[:])[:emailHashLength]
}

// EmailAttr returns a log attribute carrying the pseudonym of email.
func EmailAttr(key, email string) slog.Attr {
	return slog.String(key, Email(email))
}
