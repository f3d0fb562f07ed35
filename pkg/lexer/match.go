package lexer

// Match is the outcome of a rule's pattern matching at the scan position.
// Group 0 is the full match; groups that did not participate are "".
type Match struct {
	groups []string
	names  []string
	offset int
}

// newMatch builds a Match from a submatch index slice taken against input.
func newMatch(input string, loc []int, names []string, offset int) Match {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = input[loc[2*i]:loc[2*i+1]]
		}
	}
	return Match{groups: groups, names: names, offset: offset}
}

// Text returns the full matched substring.
func (m Match) Text() string {
	if len(m.groups) == 0 {
		return ""
	}
	return m.groups[0]
}

// Len is the number of bytes the match consumes.
func (m Match) Len() int {
	return len(m.Text())
}

// Offset is the byte offset of the match in the original input.
func (m Match) Offset() int {
	return m.offset
}

// NumGroups returns the number of groups including the full match.
func (m Match) NumGroups() int {
	return len(m.groups)
}

// Group returns capture group i, or "" when i is out of range.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// Groups returns a copy of all groups, full match first.
func (m Match) Groups() []string {
	return append([]string(nil), m.groups...)
}

// Named returns the named capture group and whether the pattern defines it.
func (m Match) Named(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for i, n := range m.names {
		if n == name && i < len(m.groups) {
			return m.groups[i], true
		}
	}
	return "", false
}

type resultState int

const (
	skipResult resultState = iota
	emitResult
	failResult
)

// Result is what a Transform makes of a Match: a value to emit, a skip,
// or a failure.
type Result struct {
	state resultState
	value any
	err   error
}

// Emit produces a token carrying v. A nil v still produces a token.
func Emit(v any) Result {
	return Result{state: emitResult, value: v}
}

// Skip consumes the match without producing a token.
func Skip() Result {
	return Result{state: skipResult}
}

// Fail aborts lexing with err.
func Fail(err error) Result {
	return Result{state: failResult, err: err}
}

// Value returns the emitted value and true, or nil and false for skips and failures.
func (r Result) Value() (any, bool) {
	return r.value, r.state == emitResult
}

// Skipped reports whether the result suppresses the token.
func (r Result) Skipped() bool {
	return r.state == skipResult
}

// Err returns the failure, if any.
func (r Result) Err() error {
	return r.err
}

// Transform converts a Match into a token value.
type Transform func(Match) Result
