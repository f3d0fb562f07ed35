// Package lexer turns strings into typed tokens using an ordered list of
// regular expression rules.
//
// At each position the rules are tried in the order they were given and
// the first one that matches wins, even if a later rule would match more
// text. The matched text is consumed and passed to the rule's transform,
// which either emits a token value or asks for the match to be skipped.
// Input that no rule matches is an error.
package lexer

import (
	"fmt"
	"unicode/utf8"
)

// Lexer tokenizes strings with a fixed RuleSet. It holds no per-call
// state and may be used from several goroutines at once.
type Lexer struct {
	rules *RuleSet
}

// New creates a lexer for rules.
func New(rules *RuleSet) *Lexer {
	return &Lexer{rules: rules}
}

// NewFromSpecs validates specs and creates a lexer for them.
func NewFromSpecs(specs []RuleSpec) (*Lexer, error) {
	rules, err := NewRuleSet(specs)
	if err != nil {
		return nil, err
	}
	return New(rules), nil
}

// Rules returns the lexer's rule set.
func (l *Lexer) Rules() *RuleSet {
	return l.rules
}

// Lex splits input into tokens. On failure no tokens are returned; an
// *UnrecognizedInputError still carries the tokens produced before it.
func (l *Lexer) Lex(input string) ([]*Token, error) {
	s := newScanner(l.rules, input)
	if err := s.run(nil); err != nil {
		return nil, err
	}
	return s.tokens, nil
}

// Trace lexes input like Lex but reports every match, skipped or not.
// Concatenating the Text of the steps gives back the input.
func (l *Lexer) Trace(input string) ([]Step, error) {
	var steps []Step
	s := newScanner(l.rules, input)
	err := s.run(func(step Step) {
		steps = append(steps, step)
	})
	if err != nil {
		return nil, err
	}
	return steps, nil
}

// scanner holds the state of a single Lex call.
type scanner struct {
	rules    *RuleSet
	input    string
	position int
	line     int
	column   int
	tokens   []*Token
}

func newScanner(rules *RuleSet, input string) *scanner {
	return &scanner{
		rules:  rules,
		input:  input,
		line:   1,
		column: 1,
		tokens: make([]*Token, 0),
	}
}

// run is the scan loop. observe, when non-nil, sees every match.
func (s *scanner) run(observe func(Step)) error {
	for s.position < len(s.input) {
		remaining := s.input[s.position:]
		rule, m, ok := s.rules.find(remaining, s.position)
		if !ok {
			return &UnrecognizedInputError{
				Remainder: remaining,
				Offset:    s.position,
				Position:  s.pos(),
				Tokens:    s.tokens,
			}
		}

		start := s.pos()
		result := rule.transform(m)
		if result.state == failResult {
			err := result.err
			if err == nil {
				err = fmt.Errorf("transform failed")
			}
			return &TransformError{Kind: rule.kind, Text: m.Text(), Position: start, Err: err}
		}

		// Consumption is by length, not by content.
		s.advance(m.Len())
		span := Span{Start: start, End: s.pos()}

		value, emitted := result.Value()
		if emitted {
			s.tokens = append(s.tokens, &Token{
				Kind:  rule.kind,
				Value: value,
				Text:  m.Text(),
				Span:  span,
			})
		}
		if observe != nil {
			observe(Step{Kind: rule.kind, Text: m.Text(), Span: span, Emitted: emitted})
		}
	}
	return nil
}

func (s *scanner) pos() Position {
	return Position{Line: s.line, Col: s.column}
}

// advance moves forward n bytes, keeping line and column in step.
func (s *scanner) advance(n int) {
	end := min(s.position+n, len(s.input))
	for s.position < end {
		r, size := utf8.DecodeRuneInString(s.input[s.position:])
		if r == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
		s.position += size
	}
}
