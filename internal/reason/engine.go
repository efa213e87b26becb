// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reason turns a rule/record pair into a compliance verdict:
// whether the record violates the rule, how severe the breach is and a
// human-readable description of why.
package reason

import (
	"fmt"
	"strings"

	"policy-audit/internal/compare"
	"policy-audit/internal/rules"
)

// RiskLevel grades a violation's severity.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "高"
	RiskMedium RiskLevel = "中"
	RiskLow    RiskLevel = "低"
)

const (
	// highRiskExcessRatio is the relative overshoot at which a bound
	// breach escalates from 中 to 高.
	highRiskExcessRatio = 0.2

	violationConfidence = 0.9
	compliantConfidence = 1.0
)

// Verdict is the engine's judgement on one rule/record pair.
type Verdict struct {
	IsViolation bool      `json:"is_violation"`
	RiskLevel   RiskLevel `json:"risk_level,omitempty"`
	Description string    `json:"description"`
	Confidence  float64   `json:"confidence"`
}

// Engine evaluates rules against configuration records directly, using
// the same value-resolution strategy the comparator uses, and applies
// exclusivity checks that numeric resolution cannot express.
type Engine struct {
	lex compare.Lexicon
}

// NewEngine returns an Engine using the default lexicon.
func NewEngine() *Engine {
	return NewEngineWithLexicon(compare.DefaultLexicon())
}

// NewEngineWithLexicon returns an Engine driven by a custom keyword
// configuration.
func NewEngineWithLexicon(lex compare.Lexicon) *Engine {
	return &Engine{lex: lex}
}

// Evaluate judges one record against one rule in a single pass. Scope
// exclusivity findings override numeric findings in the description;
// a numeric breach still sets the verdict when no exclusivity applies.
func (e *Engine) Evaluate(rule rules.ExtractedRule, record compare.ConfigRecord) Verdict {
	verdict := e.evaluateNumeric(rule, record)
	if scope, ok := e.evaluateExclusivity(rule, record); ok {
		scope.Confidence = violationConfidence
		return scope
	}
	return verdict
}

// evaluateNumeric resolves both sides and grades bound breaches. Either
// side failing to resolve is compliant; unverifiable values are not
// violations.
func (e *Engine) evaluateNumeric(rule rules.ExtractedRule, record compare.ConfigRecord) Verdict {
	compliant := Verdict{
		Description: "配置符合规则要求",
		Confidence:  compliantConfidence,
	}
	ruleValue, ok := compare.ExtractNumericLiteral(rule.SourceText)
	if !ok {
		return compliant
	}
	_, configValue, ok := e.lex.ResolveConfigNumeric(record, rule.SourceText)
	if !ok {
		return compliant
	}
	op := e.lex.Operator(rule.SourceText, compare.OpLessOrEqual)
	switch op {
	case compare.OpLessOrEqual:
		if configValue > ruleValue {
			return Verdict{
				IsViolation: true,
				RiskLevel:   excessRisk(configValue-ruleValue, ruleValue),
				Description: fmt.Sprintf("配置值 %s 超过规则上限 %s", formatValue(configValue), formatValue(ruleValue)),
				Confidence:  violationConfidence,
			}
		}
	case compare.OpGreaterOrEqual:
		if configValue < ruleValue {
			return Verdict{
				IsViolation: true,
				RiskLevel:   excessRisk(ruleValue-configValue, ruleValue),
				Description: fmt.Sprintf("配置值 %s 低于规则下限 %s", formatValue(configValue), formatValue(ruleValue)),
				Confidence:  violationConfidence,
			}
		}
	case compare.OpEqual:
		if configValue != ruleValue {
			return Verdict{
				IsViolation: true,
				RiskLevel:   RiskMedium,
				Description: fmt.Sprintf("配置值 %s 不等于规则要求 %s", formatValue(configValue), formatValue(ruleValue)),
				Confidence:  violationConfidence,
			}
		}
	}
	return compliant
}

// excessRisk grades a breach by its size relative to the bound.
func excessRisk(delta, bound float64) RiskLevel {
	if bound > 0 && delta/bound >= highRiskExcessRatio {
		return RiskHigh
	}
	return RiskMedium
}

// evaluateExclusivity handles 仅限/禁止 rules whose breach is a scope
// mismatch rather than a number. A rule restricted to new users needs
// the target-audience field to name them; an online-only rule forbids
// offline channels in the scope field.
func (e *Engine) evaluateExclusivity(rule rules.ExtractedRule, record compare.ConfigRecord) (Verdict, bool) {
	text := rule.SourceText
	if !strings.Contains(text, "仅限") && !strings.Contains(text, "禁止") {
		return Verdict{}, false
	}

	if strings.Contains(text, "新注册用户") || strings.Contains(text, "新用户") {
		target := lookupString(record, "target_users", "发放对象")
		if target != "" && !strings.Contains(target, "新") {
			return Verdict{
				IsViolation: true,
				RiskLevel:   RiskMedium,
				Description: fmt.Sprintf("发放对象 '%s' 不符合规则要求 '新注册用户'", target),
			}, true
		}
	}

	if strings.Contains(text, "线上") && strings.Contains(text, "仅限") {
		scope := lookupString(record, "scope", "活动渠道")
		if strings.Contains(scope, "线下") {
			return Verdict{
				IsViolation: true,
				RiskLevel:   RiskMedium,
				Description: "活动范围包含线下渠道，不符合规则要求 '仅限线上'",
			}, true
		}
	}

	return Verdict{}, false
}

// lookupString returns the textual value of the first named field present
// at the record's top level.
func lookupString(record compare.ConfigRecord, names ...string) string {
	for _, name := range names {
		if v, ok := record[name]; ok {
			return fmt.Sprint(v)
		}
	}
	return ""
}

// formatValue renders numbers without a trailing .0 for whole values.
func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
