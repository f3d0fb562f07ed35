package lexer

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Flags are the pattern modifiers understood by the regexp engine.
type Flags struct {
	CaseInsensitive bool `yaml:"case_insensitive,omitempty"` // i
	Multiline       bool `yaml:"multiline,omitempty"`        // m
	DotAll          bool `yaml:"dot_all,omitempty"`          // s
	Ungreedy        bool `yaml:"ungreedy,omitempty"`         // U
}

// String renders the flags as modifier letters, e.g. "is".
func (f Flags) String() string {
	var b strings.Builder
	if f.CaseInsensitive {
		b.WriteByte('i')
	}
	if f.Multiline {
		b.WriteByte('m')
	}
	if f.DotAll {
		b.WriteByte('s')
	}
	if f.Ungreedy {
		b.WriteByte('U')
	}
	return b.String()
}

// parseFlags converts trailing modifier letters into Flags.
func parseFlags(letters string) (Flags, error) {
	var f Flags
	for _, r := range letters {
		switch r {
		case 'i':
			f.CaseInsensitive = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'U':
			f.Ungreedy = true
		default:
			return Flags{}, fmt.Errorf("unsupported modifier '%c'", r)
		}
	}
	return f, nil
}

// Pattern is a regular expression body plus its modifiers. The body is
// always matched at the start of the remaining input, whether or not it
// begins with '^'.
type Pattern struct {
	Body  string
	Flags Flags
}

// ParsePattern parses the delimited form <delim><body><delim><flags>, for
// example `/[a-z]+/i` or `#\d+#`.
func ParsePattern(s string) (Pattern, error) {
	delim, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return Pattern{}, fmt.Errorf("empty pattern")
	}
	if delim == utf8.RuneError || delim == '\\' || unicode.IsLetter(delim) || unicode.IsDigit(delim) || unicode.IsSpace(delim) {
		return Pattern{}, fmt.Errorf("pattern %q must start with a non-alphanumeric delimiter", s)
	}

	rest := s[size:]
	end := strings.LastIndex(rest, string(delim))
	if end < 0 {
		return Pattern{}, fmt.Errorf("pattern %q has no closing delimiter '%c'", s, delim)
	}

	flags, err := parseFlags(rest[end+size:])
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %q: %w", s, err)
	}

	return Pattern{
		Body:  strings.TrimPrefix(rest[:end], "^"),
		Flags: flags,
	}, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the pattern back in delimited form using '/'.
func (p Pattern) String() string {
	return "/" + p.Body + "/" + p.Flags.String()
}

// Source returns the anchored expression handed to the regexp engine.
// \A rather than ^ keeps the multiline flag from anchoring at line starts.
func (p Pattern) Source() string {
	var b strings.Builder
	if f := p.Flags.String(); f != "" {
		b.WriteString("(?" + f + ")")
	}
	b.WriteString(`\A(?:`)
	b.WriteString(p.Body)
	b.WriteString(")")
	return b.String()
}

// Compile anchors and compiles the pattern.
func (p Pattern) Compile() (*regexp.Regexp, error) {
	// The body must stand alone, otherwise "a)|(b" would escape the anchor group.
	if _, err := syntax.Parse(p.Body, syntax.Perl); err != nil {
		return nil, err
	}
	return regexp.Compile(p.Source())
}
