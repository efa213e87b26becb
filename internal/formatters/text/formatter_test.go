// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"
	"time"

	"policy-audit/internal/audit"
	"policy-audit/internal/formatters"
	"policy-audit/internal/reason"
)

func sampleReport() *audit.Report {
	violations := []audit.Violation{
		{
			ID:              "VIO_1",
			Title:           "金额超限违规 - 金额",
			RiskLevel:       reason.RiskHigh,
			Description:     "配置值 600 超过规则上限 500",
			PolicyReference: "单张优惠券金额不得超过500元",
			RecordName:      "PROMO_2024_001",
			Confidence:      0.9,
		},
		{
			ID:          "VIO_2",
			Title:       "范围越界违规 - 范围",
			RiskLevel:   reason.RiskMedium,
			Description: "活动范围包含线下渠道，不符合规则要求 '仅限线上'",
			Confidence:  0.9,
		},
	}
	report := &audit.Report{
		GeneratedAt:    time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		PolicyFiles:    []string{"policy.docx"},
		ConfigFiles:    []string{"config.xlsx"},
		RulesExtracted: 8,
		RecordCount:    2,
		TotalChecks:    16,
		Violations:     violations,
	}
	report.Summary = audit.Summarize(violations)
	return report
}

func TestFormat(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(sampleReport(), formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"审计报告",
		"审计时间: 2024-03-01 10:30:00",
		"政策文件: policy.docx",
		"提取规则数: 8",
		"VIO_1 金额超限违规 - 金额",
		"描述: 配置值 600 超过规则上限 500",
		"整改建议",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestFormat_VerboseDetails(t *testing.T) {
	f := NewFormatter()
	options := formatters.FormatterOptions{NoColor: true, Verbose: true}
	out, err := f.Format(sampleReport(), options)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "政策依据: 单张优惠券金额不得超过500元") {
		t.Error("verbose output missing policy reference")
	}
	if !strings.Contains(out, "配置记录: PROMO_2024_001") {
		t.Error("verbose output missing record name")
	}
	if !strings.Contains(out, "置信度: 90%") {
		t.Error("verbose output missing confidence")
	}
}

func TestFormat_RiskLevelFilter(t *testing.T) {
	f := NewFormatter()
	options := formatters.FormatterOptions{
		NoColor:    true,
		RiskLevels: map[string]bool{"高": true},
	}
	out, err := f.Format(sampleReport(), options)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "VIO_1") {
		t.Error("expected high-risk violation kept")
	}
	if strings.Contains(out, "VIO_2") {
		t.Error("expected medium-risk violation filtered out")
	}
}

func TestFormat_NoViolations(t *testing.T) {
	f := NewFormatter()
	report := &audit.Report{GeneratedAt: time.Now()}
	report.Summary = audit.Summarize(nil)

	out, err := f.Format(report, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "本次审计未发现违规问题") {
		t.Errorf("expected clean-run message, got:\n%s", out)
	}
	if strings.Contains(out, "违规详情") {
		t.Error("expected no violation section")
	}
}

func TestRegisteredInDefaultRegistry(t *testing.T) {
	f, ok := formatters.Get("text")
	if !ok {
		t.Fatal("text formatter not registered")
	}
	if f.FileExtension() != ".txt" {
		t.Errorf("unexpected extension: %s", f.FileExtension())
	}
}
