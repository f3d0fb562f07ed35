package lexer

import (
	"fmt"
	"regexp"
)

// RuleSpec is a raw rule specification: (pattern, kind) or
// (pattern, kind, transform). The pattern is either a delimited string
// such as `/[0-9]+/` or a Pattern; the transform is a Transform or a
// func(Match) Result.
type RuleSpec []any

// Rule is a validated rule with its anchored, compiled pattern.
type Rule struct {
	pattern   Pattern
	re        *regexp.Regexp
	kind      string
	transform Transform
}

// Kind returns the kind given to tokens produced by the rule.
func (r *Rule) Kind() string {
	return r.kind
}

// Pattern returns the rule's pattern as it was specified.
func (r *Rule) Pattern() Pattern {
	return r.pattern
}

// Regexp returns the anchored expression the rule matches with.
func (r *Rule) Regexp() string {
	return r.re.String()
}

// match tests the rule at the start of input. offset is the position of
// input within the full string being lexed.
func (r *Rule) match(input string, offset int) (Match, bool) {
	loc := r.re.FindStringSubmatchIndex(input)
	// A zero-length match (e.g. `\b`) would never advance the scan.
	if loc == nil || loc[1] == 0 {
		return Match{}, false
	}
	return newMatch(input, loc, r.re.SubexpNames(), offset), true
}

// RuleSet is an ordered, immutable list of rules. Earlier rules take
// precedence over later ones regardless of match length.
type RuleSet struct {
	rules []*Rule
}

// NewRuleSet validates specs and compiles them into a RuleSet.
// It fails with a *ConfigurationError naming the first bad entry.
func NewRuleSet(specs []RuleSpec) (*RuleSet, error) {
	rules := make([]*Rule, 0, len(specs))
	for index, spec := range specs {
		rule, err := newRule(index, spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return &RuleSet{rules: rules}, nil
}

// MustRuleSet is like NewRuleSet but panics on error.
func MustRuleSet(specs []RuleSpec) *RuleSet {
	rs, err := NewRuleSet(specs)
	if err != nil {
		panic(fmt.Sprintf("invalid rule set: %v", err))
	}
	return rs
}

func newRule(index int, spec RuleSpec) (*Rule, error) {
	if n := len(spec); n != 2 && n != 3 {
		return nil, &ConfigurationError{
			Index:  index,
			Reason: fmt.Sprintf("expected 2 or 3 elements (pattern, kind[, transform]), got %d", n),
		}
	}

	var pattern Pattern
	var source string
	switch p := spec[0].(type) {
	case string:
		source = p
		parsed, err := ParsePattern(p)
		if err != nil {
			return nil, &ConfigurationError{Index: index, Pattern: source, Reason: "invalid pattern syntax", Err: err}
		}
		pattern = parsed
	case Pattern:
		pattern = p
		source = p.String()
	default:
		return nil, &ConfigurationError{Index: index, Reason: fmt.Sprintf("pattern must be a string or Pattern, got %T", spec[0])}
	}

	kind, ok := spec[1].(string)
	if !ok || kind == "" {
		return nil, &ConfigurationError{Index: index, Pattern: source, Reason: fmt.Sprintf("kind must be a non-empty string, got %#v", spec[1])}
	}

	transform := Transform(Text)
	if len(spec) == 3 {
		switch tr := spec[2].(type) {
		case Transform:
			transform = tr
		case func(Match) Result:
			transform = tr
		default:
			return nil, &ConfigurationError{Index: index, Pattern: source, Reason: fmt.Sprintf("transform must be a func(Match) Result, got %T", spec[2])}
		}
		if transform == nil {
			return nil, &ConfigurationError{Index: index, Pattern: source, Reason: "transform is nil"}
		}
	}

	re, err := pattern.Compile()
	if err != nil {
		return nil, &ConfigurationError{Index: index, Pattern: source, Reason: "pattern does not compile", Err: err}
	}

	if re.MatchString("") {
		return nil, &ConfigurationError{Index: index, Pattern: source, Reason: "matches empty string - would cause infinite loop"}
	}

	return &Rule{
		pattern:   pattern,
		re:        re,
		kind:      kind,
		transform: transform,
	}, nil
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rules returns the rules in priority order.
func (rs *RuleSet) Rules() []*Rule {
	return append([]*Rule(nil), rs.rules...)
}

// find returns the first rule matching at the start of input.
func (rs *RuleSet) find(input string, offset int) (*Rule, Match, bool) {
	for _, rule := range rs.rules {
		if m, ok := rule.match(input, offset); ok {
			return rule, m, true
		}
	}
	return nil, Match{}, false
}
