package lexer

import (
	"fmt"
	"unicode/utf8"
)

// maxRemainderQuote bounds how much unconsumed input an error message quotes.
const maxRemainderQuote = 32

// ConfigurationError reports a malformed rule specification.
type ConfigurationError struct {
	Index   int    // position of the offending entry in the rule list
	Pattern string // the pattern as supplied, if it could be read
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid rule specification at index %d", e.Index)
	if e.Pattern != "" {
		msg += fmt.Sprintf(" (%s)", e.Pattern)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnrecognizedInputError reports that no rule matches the remaining input.
// Tokens holds what was produced before the failure.
type UnrecognizedInputError struct {
	Remainder string
	Offset    int
	Position  Position
	Tokens    []*Token
}

func (e *UnrecognizedInputError) Error() string {
	return fmt.Sprintf("unrecognized input at line %d, column %d: %q",
		e.Position.Line, e.Position.Col, truncate(e.Remainder, maxRemainderQuote))
}

// TransformError reports a transform that failed on an otherwise valid match.
type TransformError struct {
	Kind     string
	Text     string
	Position Position
	Err      error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform for %s failed at line %d, column %d on %q: %v",
		e.Kind, e.Position.Line, e.Position.Col, truncate(e.Text, maxRemainderQuote), e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
