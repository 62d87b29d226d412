package envcmd

import (
	"strings"

	"github.com/raghuramsadineni/env-cmd/internal/coerce"
)

// StripComments removes every line whose first character is '#'.
// Only full comment lines are stripped; a '#' appearing mid-line is kept as
// part of that line. Stripped lines are removed entirely, not blanked.
func StripComments(text string) string {
	lines := splitLines(text)
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// StripEmptyLines removes lines that are completely empty.
// Lines containing only whitespace other than the terminator are kept.
func StripEmptyLines(text string) string {
	lines := splitLines(text)
	kept := lines[:0]
	for _, line := range lines {
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// ParseEnvVars scans text line by line for KEY=VALUE assignments and returns
// the coerced mapping. A line matches when a non-empty key portion precedes
// the first '='; everything after it, to the end of the line, is the value.
// Later duplicate keys overwrite earlier ones. For each match:
//
//  1. key and value are trimmed of surrounding whitespace
//  2. one leading and one trailing quote character (' or ") are stripped
//  3. each literal \n sequence in the value becomes a real newline
//  4. the value is coerced to float64, bool, or string
//
// The result passes through a plain-data normalization round trip so callers
// always receive deep-copyable scalars.
func ParseEnvVars(text string) (Environment, error) {
	env := make(Environment)
	for _, line := range splitLines(text) {
		rawKey, rawValue, ok := strings.Cut(line, "=")
		if !ok || rawKey == "" {
			continue
		}
		key := strings.TrimSpace(rawKey)
		if key == "" {
			continue
		}
		value := strings.TrimSpace(rawValue)
		value = stripQuotes(value)
		value = strings.ReplaceAll(value, `\n`, "\n")
		env[key] = coerce.Value(value)
	}
	return normalizeEnvironment(env)
}

// ParseEnvString parses raw .env text: comments are stripped, then blank
// lines, then the remaining KEY=VALUE lines are tokenized and coerced.
// This is the single entry point for text parsing.
func ParseEnvString(text string) (Environment, error) {
	return ParseEnvVars(StripEmptyLines(StripComments(text)))
}

// stripQuotes removes at most one leading and one trailing quote character.
// The two ends are handled independently, so mismatched quotes are stripped too.
func stripQuotes(s string) string {
	if len(s) > 0 && (s[0] == '\'' || s[0] == '"') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '\'' || s[len(s)-1] == '"') {
		s = s[:len(s)-1]
	}
	return s
}

// splitLines splits on \n, tolerating CRLF input by dropping a trailing \r.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
