// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rules

import "strings"

// RuleType classifies what a normative sentence demands.
type RuleType string

// Rule types, in classification priority order.
const (
	RuleProhibition RuleType = "禁止事项"
	RuleObligation  RuleType = "必做事项"
	RuleUpperBound  RuleType = "上限约束"
	RuleLowerBound  RuleType = "下限约束"
	RuleScopeLimit  RuleType = "范围限制"
	RuleCondition   RuleType = "条件约束"
)

// ConstraintType classifies the quantity or aspect a rule constrains.
type ConstraintType string

// Constraint types.
const (
	ConstraintAmount   ConstraintType = "金额"
	ConstraintRatio    ConstraintType = "比例"
	ConstraintScope    ConstraintType = "范围"
	ConstraintTime     ConstraintType = "时间"
	ConstraintQuantity ConstraintType = "数量"
	ConstraintOther    ConstraintType = "其他"
)

// ConstraintBucket pairs a constraint type with the keywords that signal it.
type ConstraintBucket struct {
	Type     ConstraintType
	Keywords []string
}

// Vocabulary is the keyword configuration driving rule extraction. It is
// passed to the extractor explicitly (no package-level mutable state) so
// tests can substitute vocabularies.
type Vocabulary struct {
	// Candidacy keywords: a paragraph containing none of these is not a
	// rule candidate.
	Candidacy []string

	// Rule-type keyword sets, checked in priority order.
	Prohibition []string
	Obligation  []string
	UpperBound  []string
	LowerBound  []string
	ScopeLimit  []string

	// Constraint-type buckets, checked in order; first hit wins.
	ConstraintBuckets []ConstraintBucket
}

// DefaultVocabulary returns the built-in keyword tables for Chinese
// marketing-policy documents.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Candidacy: []string{
			"应当", "必须", "不得", "禁止", "要求", "规定",
			"限额", "上限", "下限", "范围", "条件", "标准",
			"不超过", "不得超过", "不得少于", "仅限",
		},
		Prohibition: []string{"不得", "禁止", "严禁"},
		Obligation:  []string{"必须", "应当", "需要"},
		UpperBound:  []string{"限额", "上限", "不超过", "不得超过"},
		LowerBound:  []string{"下限", "不低于", "不少于", "不得少于"},
		ScopeLimit:  []string{"仅限", "范围"},
		ConstraintBuckets: []ConstraintBucket{
			{ConstraintAmount, []string{"金额", "费用", "成本", "预算", "元"}},
			{ConstraintRatio, []string{"比例", "百分比", "%", "折扣"}},
			{ConstraintScope, []string{"范围", "对象", "用户", "渠道", "仅限"}},
			{ConstraintTime, []string{"时间", "期限", "日期", "周期", "天"}},
			{ConstraintQuantity, []string{"数量", "次数", "件数", "人数"}},
		},
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
