package lexer

import (
	"errors"
	"regexp"
	"testing"
)

var errTest = errors.New("test failure")

// matchOf builds the Match a pattern makes on text.
func matchOf(t *testing.T, pattern, text string) Match {
	t.Helper()
	re := regexp.MustCompile(pattern)
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		t.Fatalf("Pattern %s does not match %q", pattern, text)
	}
	return newMatch(text, loc, re.SubexpNames(), 0)
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`'world'`, "world"},
		{"`backtick`", "backtick"},
		{`""`, ""},
		{`"escaped\n"`, "escaped\n"},
		{`"quote\"test"`, `quote"test`},
		{`'it\'s'`, "it's"},
		{`"tab\there"`, "tab\there"},
		{`"slash\/"`, "slash/"},
		{`"\u0041é"`, "Aé"},
		{`"bad\uZZ"`, `bad\uZZ`},
		{`"keep\q"`, `keep\q`},
		{`"trailing\"`, `trailing\`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := unquote(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnquoteRejectsUnquotedText(t *testing.T) {
	for _, input := range []string{"", `"`, "abc", `"mismatch'`, `(paren)`} {
		if _, err := unquote(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}

	if r := Unquote(matchOf(t, `.+`, "abc")); r.Err() == nil {
		t.Error("Expected Unquote to fail on unquoted text")
	}
}

func TestNumericTransforms(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		text      string
		expected  any
	}{
		{"Decimal int", Int, "42", int64(42)},
		{"Hex int", Int, "0x1F", int64(31)},
		{"Binary int", Int, "0b101", int64(5)},
		{"Octal int", Int, "0o17", int64(15)},
		{"Int with underscores", Int, "1_000", int64(1000)},
		{"Float", Float, "2.5", 2.5},
		{"Float with exponent", Float, "1e3", 1000.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := tt.transform(matchOf(t, `.+`, tt.text)).Value()
			if !ok {
				t.Fatalf("Expected a value")
			}
			if value != tt.expected {
				t.Errorf("Expected %v (%T), got %v (%T)", tt.expected, tt.expected, value, value)
			}
		})
	}

	if r := Int(matchOf(t, `.+`, "12abc")); r.Err() == nil {
		t.Error("Expected Int to fail on '12abc'")
	}
	if r := Float(matchOf(t, `.+`, "x.5")); r.Err() == nil {
		t.Error("Expected Float to fail on 'x.5'")
	}
}

func TestTextTransforms(t *testing.T) {
	m := matchOf(t, `.+`, "  MiXed  ")
	tests := []struct {
		name      string
		transform Transform
		expected  string
	}{
		{"Text", Text, "  MiXed  "},
		{"Lower", Lower, "  mixed  "},
		{"Upper", Upper, "  MIXED  "},
		{"Trim", Trim, "MiXed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := tt.transform(m).Value()
			if !ok || value != tt.expected {
				t.Errorf("Expected %q, got %q (emitted=%v)", tt.expected, value, ok)
			}
		})
	}

	if r := Discard(m); !r.Skipped() {
		t.Error("Expected Discard to skip")
	}
}

func TestGroupTransforms(t *testing.T) {
	m := matchOf(t, `(?P<key>\w+)=(?P<val>\w+)?`, "a=")

	if v, _ := Group(1)(m).Value(); v != "a" {
		t.Errorf("Expected group 1 'a', got %v", v)
	}
	if v, _ := Group(2)(m).Value(); v != "" {
		t.Errorf("Expected unmatched group to be empty, got %v", v)
	}
	if v, _ := Group(9)(m).Value(); v != "" {
		t.Errorf("Expected out of range group to be empty, got %v", v)
	}
	if v, _ := NamedGroup("key")(m).Value(); v != "a" {
		t.Errorf("Expected named group 'a', got %v", v)
	}
	if r := NamedGroup("missing")(m); r.Err() == nil {
		t.Error("Expected error for a missing named group")
	}

	if m.NumGroups() != 3 {
		t.Errorf("Expected 3 groups, got %d", m.NumGroups())
	}
	groups := m.Groups()
	groups[0] = "changed"
	if m.Text() != "a=" {
		t.Errorf("Expected Groups to return a copy, text is now %q", m.Text())
	}
}

func TestResult(t *testing.T) {
	if _, ok := Skip().Value(); ok {
		t.Error("Expected Skip to carry no value")
	}
	if !Skip().Skipped() {
		t.Error("Expected Skip to be skipped")
	}
	if Emit("x").Skipped() {
		t.Error("Expected Emit not to be skipped")
	}
	r := Fail(errTest)
	if _, ok := r.Value(); ok || r.Skipped() || r.Err() != errTest {
		t.Errorf("Unexpected failure result %+v", r)
	}
}

func TestTransformRegistryLookup(t *testing.T) {
	reg := DefaultTransforms()
	for _, name := range []string{"text", "skip", "int", "float", "lower", "upper", "trim", "unquote", "group:1", "group:key"} {
		if _, err := reg.Lookup(name); err != nil {
			t.Errorf("Expected %q to resolve, got %v", name, err)
		}
	}
	for _, name := range []string{"", "nope", "group:", "group:-1", "Text"} {
		if _, err := reg.Lookup(name); err == nil {
			t.Errorf("Expected %q not to resolve", name)
		}
	}

	reg["shout"] = Upper
	if _, err := reg.Lookup("shout"); err != nil {
		t.Errorf("Expected custom transform to resolve, got %v", err)
	}
}
