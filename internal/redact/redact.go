// Package redact strips sensitive material from strings before they are
// logged or echoed in error responses: connection strings, credentials,
// tokens, filesystem paths, and raw SQL fragments.
package redact

import "regexp"

// Redaction placeholders
const (
	PlaceholderCredential = "[REDACTED_CREDENTIAL]"
	PlaceholderKey        = "[REDACTED_KEY]"
	PlaceholderJWT        = "[REDACTED_JWT]"
	PlaceholderPath       = "[REDACTED_PATH]"
	PlaceholderSQL        = "[REDACTED_SQL]"
	PlaceholderEmail      = "[REDACTED_EMAIL]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// Rules are applied in order; earlier, more specific patterns win over the
// broad path pattern at the end.
var rules = []rule{
	// Connection strings with inline credentials (postgres://user:pw@host)
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|redis|amqp)://[^@\s]+@`), PlaceholderCredential},

	// password=..., passwd: "..."
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`), PlaceholderCredential},

	// api_key=..., token: ..., secret=...
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), PlaceholderKey},

	// Standard three-part JWT
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), PlaceholderJWT},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), PlaceholderEmail},

	// SQL statements leaked from the store layer
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)[\s\S]*`), PlaceholderSQL},

	// Absolute filesystem paths
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PlaceholderPath},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
// A nil error yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
