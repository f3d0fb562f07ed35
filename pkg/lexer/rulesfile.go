package lexer

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RulesFile represents the structure of a YAML rules file:
//
//	rules:
//	  - ['/\s+/', WS, skip]
//	  - ['/[0-9]+/', NUM, int]
//	  - {body: '[a-z]+', flags: {case_insensitive: true}, kind: WORD}
type RulesFile struct {
	Rules []RuleEntry `yaml:"rules"`
}

// RuleEntry is one rule of a rules file. It is written either as a
// sequence (pattern, kind[, transform]) or as a mapping.
type RuleEntry struct {
	Tuple []string `yaml:"-"`

	Body      string `yaml:"body"`
	Flags     Flags  `yaml:"flags,omitempty"`
	Kind      string `yaml:"kind"`
	Transform string `yaml:"transform,omitempty"`
}

// ruleEntryFields has RuleEntry's mapping layout without its methods.
type ruleEntryFields RuleEntry

// UnmarshalYAML accepts both the sequence and the mapping form.
func (e *RuleEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		e.Tuple = []string{}
		return node.Decode(&e.Tuple)
	case yaml.MappingNode:
		return node.Decode((*ruleEntryFields)(e))
	}
	return fmt.Errorf("line %d: a rule must be a sequence or a mapping", node.Line)
}

// MarshalYAML writes sequence-form entries on a single line.
func (e RuleEntry) MarshalYAML() (any, error) {
	if e.Tuple == nil {
		return ruleEntryFields(e), nil
	}
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, field := range e.Tuple {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field})
	}
	return node, nil
}

// source describes the entry's pattern for error messages.
func (e RuleEntry) source() string {
	if e.Tuple != nil {
		if len(e.Tuple) > 0 {
			return e.Tuple[0]
		}
		return ""
	}
	return Pattern{Body: e.Body, Flags: e.Flags}.String()
}

// spec converts the entry into a RuleSpec, resolving the transform name.
func (e RuleEntry) spec(reg TransformRegistry) (RuleSpec, error) {
	if e.Tuple == nil {
		spec := RuleSpec{Pattern{Body: e.Body, Flags: e.Flags}, e.Kind}
		if e.Transform != "" {
			tr, err := reg.Lookup(e.Transform)
			if err != nil {
				return nil, err
			}
			spec = append(spec, tr)
		}
		return spec, nil
	}

	// Arity is left for NewRuleSet to judge.
	spec := make(RuleSpec, len(e.Tuple))
	for i, field := range e.Tuple {
		spec[i] = field
	}
	if len(e.Tuple) == 3 {
		tr, err := reg.Lookup(e.Tuple[2])
		if err != nil {
			return nil, err
		}
		spec[2] = tr
	}
	return spec, nil
}

// Specs converts the file's entries into rule specifications. A nil
// registry means DefaultTransforms.
func (rf *RulesFile) Specs(reg TransformRegistry) ([]RuleSpec, error) {
	if reg == nil {
		reg = DefaultTransforms()
	}
	specs := make([]RuleSpec, 0, len(rf.Rules))
	for index, entry := range rf.Rules {
		spec, err := entry.spec(reg)
		if err != nil {
			return nil, &ConfigurationError{Index: index, Pattern: entry.source(), Reason: "invalid transform", Err: err}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// RuleSet validates the file's entries and builds a RuleSet from them.
func (rf *RulesFile) RuleSet(reg TransformRegistry) (*RuleSet, error) {
	specs, err := rf.Specs(reg)
	if err != nil {
		return nil, err
	}
	return NewRuleSet(specs)
}

// Marshal renders the rules file as YAML.
func (rf *RulesFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal rules to YAML")
	}
	return data, nil
}

// ParseRulesFile parses YAML rules.
func ParseRulesFile(data []byte) (*RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML rules")
	}
	return &rules, nil
}

// LoadRulesFile loads and parses a YAML rules file.
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rules file '%s'", filename)
	}

	rules, err := ParseRulesFile(data)
	if err != nil {
		return nil, errors.Wrapf(err, "rules file '%s'", filename)
	}
	return rules, nil
}
