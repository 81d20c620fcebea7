// Package redact removes credentials and other sensitive values from strings
// before they are logged. Session tokens, connection URIs with embedded
// passwords, and user emails all pass through error messages in this service.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted values.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

// rule replaces every match of re with repl. repl may reference groups.
type rule struct {
	re   *regexp.Regexp
	repl string
}

// rules run in order. Token-shaped values go first so that later key=value
// rules see the placeholder instead of a partial token.
var rules = []rule{
	// Stack traces carry file paths and goroutine state.
	{
		re:   regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		repl: RedactedStackPlaceholder,
	},
	// Credentials embedded in connection URIs, e.g. mongodb+srv://user:pw@host.
	{
		re:   regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mongodb(?:\+srv)?|mysql|redis)://[^@/\s]+@`),
		repl: "${1}://" + RedactedCredentialPlaceholder + "@",
	},
	// Signed session tokens.
	{
		re:   regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		repl: RedactedJWTPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/]+=*`),
		repl: "Bearer " + RedactedKeyPlaceholder,
	},
	// Cookie values, e.g. "Cookie: token=abc".
	{
		re:   regexp.MustCompile(`\b(token|session)=[^;\s&]+`),
		repl: "${1}=" + RedactionPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+['"]?`),
		repl: "${1}=" + RedactedCredentialPlaceholder,
	},
	{
		re:   regexp.MustCompile(`(?i)\b(api[_-]?key|secret|access[_-]?key)\s*[=:]\s*['"]?[A-Za-z0-9_\-.~+/]{8,}['"]?`),
		repl: "${1}=" + RedactedKeyPlaceholder,
	},
	{
		re:   regexp.MustCompile(`\bAKIA[A-Z0-9]{12,}\b`),
		repl: RedactedKeyPlaceholder,
	},
	{
		re:   regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		repl: RedactedEmailPlaceholder,
	},
	// Literal values in SQL statements echoed back by the driver.
	{
		re:   regexp.MustCompile(`(?i)\bVALUES\s*\([^)]*\)`),
		repl: "VALUES (" + RedactionPlaceholder + ")",
	},
	{
		re:   regexp.MustCompile(`(?i)\bWHERE\s+[^;]+`),
		repl: "WHERE " + RedactionPlaceholder,
	},
	// File system paths with at least two segments.
	{
		re:   regexp.MustCompile(`(/[\w.-]+){2,}`),
		repl: RedactedPathPlaceholder,
	},
	{
		re:   regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`),
		repl: RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.repl)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
