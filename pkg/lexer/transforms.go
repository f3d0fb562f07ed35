package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Text emits the matched text verbatim. It is the transform of any rule
// specified without one.
func Text(m Match) Result {
	return Emit(m.Text())
}

// Discard skips every match; typically used for whitespace and comments.
func Discard(Match) Result {
	return Skip()
}

// Int emits the matched text as an int64. Prefixes 0x, 0o, 0b and
// underscore separators are accepted.
func Int(m Match) Result {
	n, err := strconv.ParseInt(m.Text(), 0, 64)
	if err != nil {
		return Fail(err)
	}
	return Emit(n)
}

// Float emits the matched text as a float64.
func Float(m Match) Result {
	f, err := strconv.ParseFloat(m.Text(), 64)
	if err != nil {
		return Fail(err)
	}
	return Emit(f)
}

// Lower emits the matched text in lower case.
func Lower(m Match) Result {
	return Emit(strings.ToLower(m.Text()))
}

// Upper emits the matched text in upper case.
func Upper(m Match) Result {
	return Emit(strings.ToUpper(m.Text()))
}

// Trim emits the matched text without surrounding white space.
func Trim(m Match) Result {
	return Emit(strings.TrimSpace(m.Text()))
}

// Group returns a transform that emits capture group i.
func Group(i int) Transform {
	return func(m Match) Result {
		return Emit(m.Group(i))
	}
}

// NamedGroup returns a transform that emits the named capture group.
func NamedGroup(name string) Transform {
	return func(m Match) Result {
		if s, ok := m.Named(name); ok {
			return Emit(s)
		}
		return Fail(fmt.Errorf("pattern has no group named %q", name))
	}
}

// Unquote strips the surrounding quotes from the match and decodes its
// escape sequences.
func Unquote(m Match) Result {
	s, err := unquote(m.Text())
	if err != nil {
		return Fail(err)
	}
	return Emit(s)
}

func unquote(text string) (string, error) {
	if len(text) < 2 {
		return "", fmt.Errorf("not a quoted string: %q", text)
	}
	quote := text[0]
	if (quote != '"' && quote != '\'' && quote != '`') || text[len(text)-1] != quote {
		return "", fmt.Errorf("not a quoted string: %q", text)
	}

	body := text[1 : len(text)-1]
	var value strings.Builder
	for len(body) > 0 {
		r, size := utf8.DecodeRuneInString(body)
		body = body[size:]
		if r != '\\' || len(body) == 0 {
			value.WriteRune(r)
			continue
		}
		var decoded string
		decoded, body = decodeEscape(body)
		value.WriteString(decoded)
	}
	return value.String(), nil
}

// decodeEscape decodes the escape sequence at the start of s (the
// backslash already consumed) and returns it with the unconsumed rest.
func decodeEscape(s string) (string, string) {
	r, size := utf8.DecodeRuneInString(s)
	rest := s[size:]
	switch r {
	case 'b':
		return "\b", rest
	case 'f':
		return "\f", rest
	case 'n':
		return "\n", rest
	case 'r':
		return "\r", rest
	case 't':
		return "\t", rest
	case '\\', '/', '"', '\'', '`':
		return string(r), rest
	case 'u':
		if len(rest) >= 4 {
			if code, err := strconv.ParseUint(rest[:4], 16, 32); err == nil {
				return string(rune(code)), rest[4:]
			}
		}
	}
	// Keep invalid escape sequences as-is.
	return "\\" + string(r), rest
}

// TransformRegistry maps the transform names used in rules files to transforms.
type TransformRegistry map[string]Transform

// DefaultTransforms returns the built-in named transforms.
func DefaultTransforms() TransformRegistry {
	return TransformRegistry{
		"text":    Text,
		"skip":    Discard,
		"int":     Int,
		"float":   Float,
		"lower":   Lower,
		"upper":   Upper,
		"trim":    Trim,
		"unquote": Unquote,
	}
}

// Lookup resolves a transform name. Besides the registered names it
// understands "group:N" and "group:name".
func (reg TransformRegistry) Lookup(name string) (Transform, error) {
	if tr, ok := reg[name]; ok {
		return tr, nil
	}
	if group, ok := strings.CutPrefix(name, "group:"); ok && group != "" {
		if i, err := strconv.Atoi(group); err == nil {
			if i < 0 {
				return nil, fmt.Errorf("negative group index in transform %q", name)
			}
			return Group(i), nil
		}
		return NamedGroup(group), nil
	}
	return nil, fmt.Errorf("unknown transform %q", name)
}
