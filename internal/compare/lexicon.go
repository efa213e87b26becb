// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

// AliasCategory groups the configuration field names that express one
// business quantity. Key is matched against rule text to select which
// aliases to try.
type AliasCategory struct {
	Key     string
	Aliases []string
}

// OperatorRule binds rule phrasings to the relation they impose.
type OperatorRule struct {
	Words []string
	Op    Operator
}

// Lexicon is the keyword configuration the comparator and reasoning
// engine work from. Instances are immutable after construction; tests
// substitute their own without process-wide side effects.
type Lexicon struct {
	// ScopeTerms is the closed vocabulary of applicability terms: user
	// segments, channels and regions.
	ScopeTerms []string

	// AllInclusiveTerms cover every counterpart by definition.
	AllInclusiveTerms []string

	// ScopeFieldMarkers select configuration fields that carry
	// applicability information, matched case-insensitively.
	ScopeFieldMarkers []string

	// ConditionFieldMarkers select configuration fields that state
	// conditions.
	ConditionFieldMarkers []string

	// AliasCategories map rule hint text to candidate config fields for
	// numeric resolution, tried in order.
	AliasCategories []AliasCategory

	// OperatorRules are scanned in order; bound phrasings come before
	// the bare fragments they contain.
	OperatorRules []OperatorRule
}

// DefaultLexicon returns the stock keyword configuration for marketing
// policy audits.
func DefaultLexicon() Lexicon {
	return Lexicon{
		ScopeTerms: []string{
			"全部用户", "新用户", "老用户", "VIP用户", "普通用户", "新注册用户",
			"所有渠道", "线上", "线下", "APP", "小程序", "官网",
			"全国", "特定区域", "指定城市",
		},
		AllInclusiveTerms:     []string{"全部", "所有"},
		ScopeFieldMarkers:     []string{"范围", "scope", "对象", "target", "用户", "渠道"},
		ConditionFieldMarkers: []string{"条件", "要求", "限制", "constraint"},
		AliasCategories: []AliasCategory{
			{"金额", []string{"金额", "amount", "max_amount", "price"}},
			{"预算", []string{"预算", "budget", "total_budget"}},
			{"次数", []string{"次数", "limit", "monthly_limit"}},
			{"天数", []string{"天数", "days", "validity_days"}},
		},
		OperatorRules: []OperatorRule{
			{[]string{"不超过", "不大于", "上限", "最高", "不得超过"}, OpLessOrEqual},
			{[]string{"不低于", "不小于", "下限", "最低", "不得少于"}, OpGreaterOrEqual},
			{[]string{"等于", "为", "是"}, OpEqual},
		},
	}
}
