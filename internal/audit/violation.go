// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"fmt"
	"strings"

	"policy-audit/internal/compare"
	"policy-audit/internal/reason"
	"policy-audit/internal/rules"
)

// Violation categories used in summaries and reports.
const (
	CategoryAmount    = "金额超限"
	CategoryScope     = "范围越界"
	CategoryCondition = "条件不符"
	CategoryConflict  = "逻辑冲突"
	CategoryOther     = "其他"
)

// Violation is a (rule, record) pair judged non-compliant.
type Violation struct {
	ID              string               `json:"violation_id"`
	Title           string               `json:"title"`
	RiskLevel       reason.RiskLevel     `json:"risk_level"`
	Description     string               `json:"description"`
	PolicyReference string               `json:"policy_reference"`
	RecordName      string               `json:"record_name,omitempty"`
	ConfigValue     compare.ConfigRecord `json:"config_value"`
	Comparison      compare.Result       `json:"comparison"`
	Confidence      float64              `json:"confidence"`
}

// Category buckets a violation by its title keywords, checked in order.
func (v Violation) Category() string {
	switch title := v.Title; {
	case strings.Contains(title, "金额") || strings.Contains(title, "超限"):
		return CategoryAmount
	case strings.Contains(title, "范围") || strings.Contains(title, "越界"):
		return CategoryScope
	case strings.Contains(title, "条件"):
		return CategoryCondition
	case strings.Contains(title, "逻辑") || strings.Contains(title, "冲突"):
		return CategoryConflict
	default:
		return CategoryOther
	}
}

// violationTitle names a violation after the rule's type and constraint
// class.
func violationTitle(rule rules.ExtractedRule) string {
	ruleType := string(rule.RuleType)
	switch {
	case strings.Contains(ruleType, "金额") || strings.Contains(ruleType, "上限"):
		return fmt.Sprintf("金额超限违规 - %s", rule.ConstraintType)
	case strings.Contains(ruleType, "范围"):
		return fmt.Sprintf("范围越界违规 - %s", rule.ConstraintType)
	case strings.Contains(ruleType, "条件"):
		return fmt.Sprintf("条件不符违规 - %s", rule.ConstraintType)
	default:
		return fmt.Sprintf("配置违规 - %s", rule.ConstraintType)
	}
}
