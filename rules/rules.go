// Package rules provides conditional rules evaluated over facts drawn from a
// mapped record.
//
// Rules let a mapping profile decide derived values without code changes.
// For example, a record whose use restriction reads "CC BY 4.0" keeps that
// licence as its usage right, while any other restriction text becomes
// "restricted".
package rules

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Facts maps a fact name to its values. A fact with no values is absent.
type Facts map[string][]string

// Add appends non-empty values to a fact.
func (f Facts) Add(name string, values ...string) {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			f[name] = append(f[name], v)
		}
	}
}

// First returns the first value of a fact, or "".
func (f Facts) First(name string) string {
	if vs := f[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// RuleSet contains an ordered list of rules and the action taken when none
// of them match.
type RuleSet struct {
	// Name identifies this rule set
	Name string `yaml:"name" json:"name"`

	// Description documents what these rules are for
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Rules is the ordered list of rules
	Rules []Rule `yaml:"rules" json:"rules"`

	// Default applies when no rule matches
	Default *Action `yaml:"default,omitempty" json:"default,omitempty"`
}

// Rule defines a single conditional action.
type Rule struct {
	// Name identifies this rule for debugging/logging
	Name string `yaml:"name" json:"name"`

	// Description documents what this rule does
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Priority determines rule evaluation order (higher = first). Default is 0.
	Priority int `yaml:"priority,omitempty" json:"priority,omitempty"`

	// When defines the conditions that must be met for this rule to apply
	When Condition `yaml:"when" json:"when"`

	// Then defines the action to apply when conditions are met
	Then Action `yaml:"then" json:"then"`
}

// Condition defines when a rule should be applied. A field condition matches
// when any of the fact's values satisfies it.
type Condition struct {
	// Field is the fact to check (e.g., "rights", "format")
	Field string `yaml:"field,omitempty" json:"field,omitempty"`

	// Equals matches exact value, case-insensitively
	Equals string `yaml:"equals,omitempty" json:"equals,omitempty"`

	// Contains matches if the value contains this substring
	Contains string `yaml:"contains,omitempty" json:"contains,omitempty"`

	// Matches is a regex pattern to match against
	Matches string `yaml:"matches,omitempty" json:"matches,omitempty"`

	// In matches if the value is in this list
	In []string `yaml:"in,omitempty" json:"in,omitempty"`

	// Exists checks if the fact has any value
	Exists *bool `yaml:"exists,omitempty" json:"exists,omitempty"`

	// All requires all sub-conditions to match (AND)
	All []Condition `yaml:"all,omitempty" json:"all,omitempty"`

	// Any requires at least one sub-condition to match (OR)
	Any []Condition `yaml:"any,omitempty" json:"any,omitempty"`

	// Not inverts the sub-condition
	Not *Condition `yaml:"not,omitempty" json:"not,omitempty"`
}

// Action defines the values produced when a rule matches.
type Action struct {
	// SetValue emits a literal value
	SetValue string `yaml:"set_value,omitempty" json:"set_value,omitempty"`

	// CopyFrom emits the first value of the named fact
	CopyFrom string `yaml:"copy_from,omitempty" json:"copy_from,omitempty"`

	// MapValue translates the first value of CopyFrom through a table
	MapValue map[string]string `yaml:"map_value,omitempty" json:"map_value,omitempty"`

	// Skip emits nothing and stops evaluation
	Skip bool `yaml:"skip,omitempty" json:"skip,omitempty"`

	// Multiple actions can be combined
	Actions []Action `yaml:"actions,omitempty" json:"actions,omitempty"`
}

// Result holds the outcome of rule evaluation.
type Result struct {
	// Matched indicates if any rule matched
	Matched bool

	// RuleName is the name of the matched rule, or "default"
	RuleName string

	// Values are the produced values in action order
	Values []string

	// Skip indicates the output should be omitted
	Skip bool
}

// Evaluate checks the rules against the facts. The first matching rule wins;
// the default action applies when none match.
func (rs *RuleSet) Evaluate(facts Facts) *Result {
	result := &Result{}
	if rs == nil {
		return result
	}

	for _, rule := range rs.ordered() {
		if rule.When.Evaluate(facts) {
			result.Matched = true
			result.RuleName = rule.Name
			rule.Then.Apply(result, facts)
			return result
		}
	}

	if rs.Default != nil {
		result.RuleName = "default"
		rs.Default.Apply(result, facts)
	}
	return result
}

// ordered returns the rules sorted by priority, keeping file order for ties.
func (rs *RuleSet) ordered() []Rule {
	rules := make([]Rule, len(rs.Rules))
	copy(rules, rs.Rules)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules
}

// Validate reports rules whose regex patterns do not compile.
func (rs *RuleSet) Validate() error {
	for _, rule := range rs.Rules {
		if err := rule.When.validate(); err != nil {
			return fmt.Errorf("rule %q: %w", rule.Name, err)
		}
	}
	return nil
}

func (c *Condition) validate() error {
	if c.Matches != "" {
		if _, err := compile(c.Matches); err != nil {
			return err
		}
	}
	for i := range c.All {
		if err := c.All[i].validate(); err != nil {
			return err
		}
	}
	for i := range c.Any {
		if err := c.Any[i].validate(); err != nil {
			return err
		}
	}
	if c.Not != nil {
		return c.Not.validate()
	}
	return nil
}

// Evaluate checks if the condition matches the given facts.
func (c *Condition) Evaluate(facts Facts) bool {
	// Handle composite conditions first
	if len(c.All) > 0 {
		for _, sub := range c.All {
			if !sub.Evaluate(facts) {
				return false
			}
		}
		return true
	}

	if len(c.Any) > 0 {
		for _, sub := range c.Any {
			if sub.Evaluate(facts) {
				return true
			}
		}
		return false
	}

	if c.Not != nil {
		return !c.Not.Evaluate(facts)
	}

	// Simple field condition
	if c.Field == "" {
		return true // No condition means always match
	}

	values := facts[c.Field]
	exists := len(values) > 0

	if c.Exists != nil {
		return exists == *c.Exists
	}

	for _, v := range values {
		if c.matchValue(strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}

func (c *Condition) matchValue(value string) bool {
	if c.Equals != "" {
		return strings.EqualFold(value, c.Equals)
	}

	if c.Contains != "" {
		return strings.Contains(strings.ToLower(value), strings.ToLower(c.Contains))
	}

	if c.Matches != "" {
		re, err := compile(c.Matches)
		if err != nil {
			return false
		}
		return re.MatchString(value)
	}

	if len(c.In) > 0 {
		for _, v := range c.In {
			if strings.EqualFold(value, v) {
				return true
			}
		}
		return false
	}

	// No specific condition, just check the fact exists
	return true
}

var patterns sync.Map

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	patterns.Store(pattern, re)
	return re, nil
}

// Apply executes the action and updates the result.
func (a *Action) Apply(result *Result, facts Facts) {
	if a.Skip {
		result.Skip = true
		result.Values = nil
		return
	}

	if a.SetValue != "" {
		result.Values = append(result.Values, a.SetValue)
	}

	if a.CopyFrom != "" {
		v := strings.TrimSpace(facts.First(a.CopyFrom))
		if mapped, ok := a.MapValue[v]; ok {
			v = mapped
		}
		if v != "" {
			result.Values = append(result.Values, v)
		}
	}

	// Apply nested actions
	for _, sub := range a.Actions {
		sub.Apply(result, facts)
		if result.Skip {
			return
		}
	}
}

// LoadRuleSet loads a rule set from a YAML file.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return LoadRuleSetFromBytes(data)
}

// LoadRuleSetFromBytes loads a rule set from YAML bytes.
func LoadRuleSetFromBytes(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing rules YAML: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}
