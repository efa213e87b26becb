// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package compare checks extracted policy rules against business
// configuration records along three axes: numeric bounds, applicability
// scope and stated conditions. An axis never fails hard; when a side
// cannot be resolved the axis reports a match and the reasoning layer
// decides what that means.
package compare

import (
	"math"
	"strings"

	"policy-audit/internal/rules"
)

// Axis names used in comparison results.
const (
	AxisNumeric   = "numeric_comparison"
	AxisScope     = "scope_comparison"
	AxisCondition = "condition_comparison"
)

// Comparison is one axis check between a rule and a record.
type Comparison struct {
	Type        string   `json:"type"`
	RuleValue   any      `json:"rule_value,omitempty"`
	ConfigValue any      `json:"config_value,omitempty"`
	ConfigField string   `json:"config_field,omitempty"`
	Operator    Operator `json:"operator,omitempty"`
	IsMatch     bool     `json:"is_match"`
	Difference  float64  `json:"difference,omitempty"`

	RuleScope    []string `json:"rule_scope,omitempty"`
	ConfigScope  []string `json:"config_scope,omitempty"`
	OverlapRatio float64  `json:"overlap_ratio,omitempty"`

	RuleConditions      []string `json:"rule_conditions,omitempty"`
	MatchedConditions   []string `json:"matched_conditions,omitempty"`
	UnmatchedConditions []string `json:"unmatched_conditions,omitempty"`
}

// Result is the outcome of comparing one rule against one record.
// OverallMatch is the conjunction of all fired axes; a rule that fires
// no axis matches vacuously.
type Result struct {
	Comparisons  []Comparison `json:"comparisons"`
	OverallMatch bool         `json:"overall_match"`
}

// Comparator runs the axis checks selected by a rule's type.
type Comparator struct {
	lex Lexicon
}

// NewComparator returns a Comparator using the default lexicon.
func NewComparator() *Comparator {
	return NewComparatorWithLexicon(DefaultLexicon())
}

// NewComparatorWithLexicon returns a Comparator driven by a custom
// keyword configuration.
func NewComparatorWithLexicon(lex Lexicon) *Comparator {
	return &Comparator{lex: lex}
}

// axisTriggers map rule-type fragments to the axes they fire. A type
// like 上限约束 fires both the numeric and the condition axis.
var axisTriggers = []struct {
	fragments []string
	axis      string
}{
	{[]string{"金额", "上限", "下限"}, AxisNumeric},
	{[]string{"范围", "对象", "限制"}, AxisScope},
	{[]string{"条件", "约束"}, AxisCondition},
}

// Compare runs every axis the rule's type selects and folds the axis
// matches into an overall verdict.
func (c *Comparator) Compare(rule rules.ExtractedRule, record ConfigRecord) Result {
	res := Result{OverallMatch: true}
	ruleType := string(rule.RuleType)
	for _, trigger := range axisTriggers {
		if !containsAnyFragment(ruleType, trigger.fragments) {
			continue
		}
		var cmp Comparison
		switch trigger.axis {
		case AxisNumeric:
			cmp = c.compareNumeric(rule, record)
		case AxisScope:
			cmp = c.compareScope(rule, record)
		case AxisCondition:
			cmp = c.compareCondition(rule, record)
		}
		res.Comparisons = append(res.Comparisons, cmp)
		if !cmp.IsMatch {
			res.OverallMatch = false
		}
	}
	return res
}

func containsAnyFragment(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

// compareNumeric resolves both sides and checks the rule's relation.
// Either side failing to resolve yields a permissive match; an
// unverifiable value is not a violation.
func (c *Comparator) compareNumeric(rule rules.ExtractedRule, record ConfigRecord) Comparison {
	cmp := Comparison{Type: AxisNumeric, IsMatch: true}
	ruleValue, haveRule := ExtractNumericLiteral(strings.Join(rule.ConstraintValues, " "))
	if haveRule {
		cmp.RuleValue = ruleValue
	}
	field, configValue, haveConfig := c.lex.ResolveConfigNumeric(record, rule.SourceText)
	if haveConfig {
		cmp.ConfigValue = configValue
		cmp.ConfigField = field
	}
	cmp.Operator = c.lex.Operator(rule.SourceText, OpEqual)
	if !haveRule || !haveConfig {
		return cmp
	}
	cmp.IsMatch = cmp.Operator.Holds(configValue, ruleValue)
	cmp.Difference = math.Abs(configValue - ruleValue)
	return cmp
}

// compareScope measures applicability overlap between the rule's terms
// and the record's scope-bearing fields.
func (c *Comparator) compareScope(rule rules.ExtractedRule, record ConfigRecord) Comparison {
	source := strings.TrimSpace(strings.Join(rule.ConstraintValues, " "))
	if source == "" {
		source = rule.SourceText
	}
	ruleScope := c.lex.RuleScopeTerms(source)
	configScope := c.lex.ConfigScopeTerms(record)
	overlap := c.lex.ScopeOverlap(ruleScope, configScope)
	return Comparison{
		Type:         AxisScope,
		RuleScope:    ruleScope,
		ConfigScope:  configScope,
		OverlapRatio: overlap,
		IsMatch:      overlap >= scopeMatchThreshold,
	}
}

// compareCondition requires every condition phrased in the rule to have
// a sufficiently similar counterpart among the record's condition
// fields. A rule that states no condition matches.
func (c *Comparator) compareCondition(rule rules.ExtractedRule, record ConfigRecord) Comparison {
	ruleConditions := ExtractConditions(rule.SourceText)
	cmp := Comparison{Type: AxisCondition, RuleConditions: ruleConditions, IsMatch: true}
	available := c.lex.ConfigConditions(record)
	for _, rc := range ruleConditions {
		if conditionSatisfied(rc, available) {
			cmp.MatchedConditions = append(cmp.MatchedConditions, rc)
		} else {
			cmp.UnmatchedConditions = append(cmp.UnmatchedConditions, rc)
		}
	}
	cmp.IsMatch = len(cmp.UnmatchedConditions) == 0
	return cmp
}

func conditionSatisfied(cond string, available []string) bool {
	for _, got := range available {
		if textSimilarity(cond, got) > conditionMatchThreshold {
			return true
		}
	}
	return false
}
