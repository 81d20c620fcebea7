package testdb

import (
	"fmt"
	"strings"

	"github.com/phrazzld/taskmate-api/internal/redact"
)

// formatConnectionError describes a failed connection with a credential-free
// URL and a hint for the most common causes.
func formatConnectionError(err error, url string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (url: %s)", redact.Error(err), redact.String(url))

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		b.WriteString("; is the database server running?")
	case strings.Contains(msg, "password authentication failed"), strings.Contains(msg, "authentication failed"):
		b.WriteString("; check the credentials in the URL")
	case strings.Contains(msg, "does not exist"):
		b.WriteString("; create the test database first")
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "server selection"):
		b.WriteString("; the server did not answer in time")
	}

	if isCIEnvironment() {
		b.WriteString(" [CI]")
	}
	return b.String()
}
