package lexer

import "fmt"

// defaultRules is a general purpose rule list for C-like input.
var defaultRules = [][]string{
	{`/\s+/`, "WS", "skip"},
	{`/#[^\n]*/`, "COMMENT", "skip"},
	{`/[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+/`, "FLOAT", "float"},
	{`/0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+|[1-9][0-9]*|0/`, "INT", "int"},
	{`/"(\\.|[^"\\])*"|'(\\.|[^'\\])*'/`, "STRING", "unquote"},
	{`/[A-Za-z_][A-Za-z0-9_]*/`, "IDENT"},
	{`/[-+*\/%=<>!&|^~?:.]+/`, "OP"},
	{`/[()\[\]{},;]/`, "PUNCT"},
}

// DefaultRulesFile returns the default rules in rules file form.
func DefaultRulesFile() *RulesFile {
	rf := &RulesFile{Rules: make([]RuleEntry, 0, len(defaultRules))}
	for _, fields := range defaultRules {
		rf.Rules = append(rf.Rules, RuleEntry{Tuple: append([]string(nil), fields...)})
	}
	return rf
}

// DefaultRuleSet returns the compiled default rules.
func DefaultRuleSet() *RuleSet {
	// The default rules should never be invalid, so we panic if they are.
	rules, err := DefaultRulesFile().RuleSet(DefaultTransforms())
	if err != nil {
		panic(fmt.Sprintf("invalid default rules: %v", err))
	}
	return rules
}
