// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package reason

import (
	"testing"

	"policy-audit/internal/compare"
	"policy-audit/internal/rules"
)

func amountRule(text string) rules.ExtractedRule {
	return rules.ExtractedRule{
		SourceText:       text,
		RuleType:         rules.RuleProhibition,
		ConstraintType:   rules.ConstraintAmount,
		ExtractionMethod: "pattern",
	}
}

func TestEvaluate_UpperBoundBreach_HighRisk(t *testing.T) {
	e := NewEngine()
	rule := amountRule("单张优惠券金额不得超过500元")
	record := compare.ConfigRecord{"max_amount": float64(600)}

	v := e.Evaluate(rule, record)
	if !v.IsViolation {
		t.Fatal("expected violation")
	}
	// 100 over a 500 bound is a 20% overshoot, the high-risk threshold.
	if v.RiskLevel != RiskHigh {
		t.Errorf("expected 高, got %s", v.RiskLevel)
	}
	if v.Description != "配置值 600 超过规则上限 500" {
		t.Errorf("unexpected description: %s", v.Description)
	}
	if v.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", v.Confidence)
	}
}

func TestEvaluate_UpperBoundBreach_MediumRisk(t *testing.T) {
	e := NewEngine()
	rule := amountRule("单张优惠券金额不得超过500元")
	record := compare.ConfigRecord{"max_amount": float64(520)}

	v := e.Evaluate(rule, record)
	if !v.IsViolation {
		t.Fatal("expected violation")
	}
	if v.RiskLevel != RiskMedium {
		t.Errorf("expected 中 for a 4%% overshoot, got %s", v.RiskLevel)
	}
}

func TestEvaluate_WithinBound(t *testing.T) {
	e := NewEngine()
	rule := amountRule("单张优惠券金额不得超过500元")
	record := compare.ConfigRecord{"max_amount": float64(450)}

	v := e.Evaluate(rule, record)
	if v.IsViolation {
		t.Fatalf("expected compliant, got violation: %s", v.Description)
	}
	if v.Description != "配置符合规则要求" {
		t.Errorf("unexpected description: %s", v.Description)
	}
	if v.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", v.Confidence)
	}
}

func TestEvaluate_LowerBoundBreach(t *testing.T) {
	e := NewEngine()
	rule := amountRule("优惠券有效期不得少于7")
	record := compare.ConfigRecord{"validity": float64(5)}

	v := e.Evaluate(rule, record)
	if !v.IsViolation {
		t.Fatal("expected violation")
	}
	// Short by 2 of 7, over the 20% escalation threshold.
	if v.RiskLevel != RiskHigh {
		t.Errorf("expected 高, got %s", v.RiskLevel)
	}
	if v.Description != "配置值 5 低于规则下限 7" {
		t.Errorf("unexpected description: %s", v.Description)
	}
}

func TestEvaluate_EqualityMismatch(t *testing.T) {
	e := NewEngine()
	rule := amountRule("兑换比例为5")
	record := compare.ConfigRecord{"ratio": float64(3)}

	v := e.Evaluate(rule, record)
	if !v.IsViolation {
		t.Fatal("expected violation")
	}
	if v.RiskLevel != RiskMedium {
		t.Errorf("expected 中, got %s", v.RiskLevel)
	}
	if v.Description != "配置值 3 不等于规则要求 5" {
		t.Errorf("unexpected description: %s", v.Description)
	}
}

func TestEvaluate_MagnitudeSuffix(t *testing.T) {
	e := NewEngine()
	rule := amountRule("单次促销活动总预算不得超过100万元")
	record := compare.ConfigRecord{
		"budget": map[string]any{"total_budget": float64(1500000)},
	}

	v := e.Evaluate(rule, record)
	if !v.IsViolation {
		t.Fatal("expected violation")
	}
	if v.RiskLevel != RiskHigh {
		t.Errorf("expected 高, got %s", v.RiskLevel)
	}
	if v.Description != "配置值 1500000 超过规则上限 1000000" {
		t.Errorf("unexpected description: %s", v.Description)
	}
}

func TestEvaluate_NoNumberInRule(t *testing.T) {
	e := NewEngine()
	rule := amountRule("不得设置隐性消费门槛")
	record := compare.ConfigRecord{"max_amount": float64(600)}

	v := e.Evaluate(rule, record)
	if v.IsViolation {
		t.Errorf("a rule without a numeric bound cannot raise a numeric violation: %s", v.Description)
	}
}

func TestEvaluate_NoNumberInConfig(t *testing.T) {
	e := NewEngine()
	rule := amountRule("金额不得超过500元")
	record := compare.ConfigRecord{"name": "春节促销"}

	v := e.Evaluate(rule, record)
	if v.IsViolation {
		t.Errorf("an unverifiable record is not a violation: %s", v.Description)
	}
}

func TestEvaluate_NewUserExclusivity(t *testing.T) {
	e := NewEngine()
	rule := rules.ExtractedRule{
		SourceText:     "优惠券发放对象仅限新注册用户",
		RuleType:       rules.RuleScopeLimit,
		ConstraintType: rules.ConstraintScope,
	}
	record := compare.ConfigRecord{"target_users": "全部用户"}

	v := e.Evaluate(rule, record)
	if !v.IsViolation {
		t.Fatal("expected violation")
	}
	if v.RiskLevel != RiskMedium {
		t.Errorf("expected 中, got %s", v.RiskLevel)
	}
	if v.Description != "发放对象 '全部用户' 不符合规则要求 '新注册用户'" {
		t.Errorf("unexpected description: %s", v.Description)
	}
	if v.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", v.Confidence)
	}
}

func TestEvaluate_NewUserExclusivity_Compliant(t *testing.T) {
	e := NewEngine()
	rule := rules.ExtractedRule{
		SourceText: "优惠券发放对象仅限新注册用户",
		RuleType:   rules.RuleScopeLimit,
	}
	record := compare.ConfigRecord{"target_users": "新注册用户"}

	if v := e.Evaluate(rule, record); v.IsViolation {
		t.Errorf("expected compliant, got: %s", v.Description)
	}
}

func TestEvaluate_OnlineOnlyExclusivity(t *testing.T) {
	e := NewEngine()
	rule := rules.ExtractedRule{
		SourceText: "促销范围仅限线上渠道",
		RuleType:   rules.RuleScopeLimit,
	}
	record := compare.ConfigRecord{"scope": "线上,线下门店"}

	v := e.Evaluate(rule, record)
	if !v.IsViolation {
		t.Fatal("expected violation")
	}
	if v.Description != "活动范围包含线下渠道，不符合规则要求 '仅限线上'" {
		t.Errorf("unexpected description: %s", v.Description)
	}
}

func TestEvaluate_ExclusivityOverridesNumericVerdict(t *testing.T) {
	e := NewEngine()
	// Both a numeric breach and a scope breach apply; the scope finding
	// wins the description.
	rule := rules.ExtractedRule{
		SourceText: "优惠券金额不得超过500元且仅限新注册用户",
		RuleType:   rules.RuleProhibition,
	}
	record := compare.ConfigRecord{
		"max_amount":   float64(600),
		"target_users": "全部用户",
	}

	v := e.Evaluate(rule, record)
	if !v.IsViolation {
		t.Fatal("expected violation")
	}
	if v.Description != "发放对象 '全部用户' 不符合规则要求 '新注册用户'" {
		t.Errorf("expected the exclusivity finding, got: %s", v.Description)
	}
}

func TestEvaluate_NestedTargetUsersNotInspected(t *testing.T) {
	e := NewEngine()
	rule := rules.ExtractedRule{
		SourceText: "优惠券发放对象仅限新注册用户",
		RuleType:   rules.RuleScopeLimit,
	}
	// The audience check reads top-level fields only.
	record := compare.ConfigRecord{
		"coupon_config": map[string]any{"target_users": "全部用户"},
	}

	if v := e.Evaluate(rule, record); v.IsViolation {
		t.Errorf("nested audience fields are out of reach: %s", v.Description)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{500, "500"},
		{1000000, "1000000"},
		{8.5, "8.5"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
