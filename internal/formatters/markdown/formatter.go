// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"encoding/json"
	"fmt"
	"strings"

	"policy-audit/internal/audit"
	"policy-audit/internal/formatters"
)

// maxReferenceLen truncates policy citations inside category sections;
// the detailed list at the end keeps the full text.
const maxReferenceLen = 100

func init() {
	formatters.Register(NewFormatter())
}

// Formatter renders the full audit report as a Markdown document.
type Formatter struct{}

// NewFormatter creates a new Markdown formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "markdown"
}

func (f *Formatter) Description() string {
	return "Full audit report as a Markdown document"
}

func (f *Formatter) FileExtension() string {
	return ".md"
}

func (f *Formatter) Format(report *audit.Report, options formatters.FormatterOptions) (string, error) {
	violations := formatters.FilterViolations(report.Violations, options)
	summary := report.Summary
	generated := report.GeneratedAt.Format("2006-01-02 15:04:05")

	var b strings.Builder
	b.WriteString("# 营销审计分析报告\n\n")

	b.WriteString("## 一、报告基本信息\n\n")
	b.WriteString("| 项目 | 内容 |\n|------|------|\n")
	fmt.Fprintf(&b, "| 生成时间 | %s |\n", generated)
	b.WriteString("| 审计类型 | 营销配置合规审计 |\n")
	fmt.Fprintf(&b, "| 政策文件数 | %d |\n", len(report.PolicyFiles))
	fmt.Fprintf(&b, "| 配置文件数 | %d |\n", len(report.ConfigFiles))
	fmt.Fprintf(&b, "| 审计规则数 | %d |\n", report.RulesExtracted)
	fmt.Fprintf(&b, "| 配置项数量 | %d |\n\n", report.RecordCount)

	b.WriteString("## 二、审计结果摘要\n\n")
	b.WriteString(summary.Message + "\n\n")
	b.WriteString("### 风险分布统计\n\n")
	b.WriteString("| 风险等级 | 数量 |\n|----------|------|\n")
	fmt.Fprintf(&b, "| 高风险 | %d |\n", summary.HighRiskCount)
	fmt.Fprintf(&b, "| 中风险 | %d |\n", summary.MediumRiskCount)
	fmt.Fprintf(&b, "| 低风险 | %d |\n", summary.LowRiskCount)
	fmt.Fprintf(&b, "| **合计** | **%d** |\n\n", summary.Total)

	b.WriteString("## 三、违规问题分类详情\n\n")
	for _, category := range []string{
		audit.CategoryAmount, audit.CategoryScope, audit.CategoryCondition,
		audit.CategoryConflict, audit.CategoryOther,
	} {
		items := summary.ByCategory[category]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", category)
		for i, v := range items {
			fmt.Fprintf(&b, "**问题%d**: %s\n", i+1, v.Title)
			fmt.Fprintf(&b, "- 风险等级: %s\n", v.RiskLevel)
			fmt.Fprintf(&b, "- 违规描述: %s\n", v.Description)
			fmt.Fprintf(&b, "- 政策依据: %s...\n\n", truncate(v.PolicyReference, maxReferenceLen))
		}
	}

	b.WriteString("## 四、整改建议\n\n")
	for i, rec := range summary.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	b.WriteString("\n## 五、详细违规清单\n\n")
	for i, v := range violations {
		configValue, err := json.MarshalIndent(v.ConfigValue, "", "  ")
		if err != nil {
			return "", fmt.Errorf("error marshaling config value: %w", err)
		}
		fmt.Fprintf(&b, "### 违规项 %d: %s\n\n", i+1, v.Title)
		b.WriteString("| 属性 | 内容 |\n|------|------|\n")
		fmt.Fprintf(&b, "| 违规ID | %s |\n", v.ID)
		fmt.Fprintf(&b, "| 风险等级 | %s |\n", v.RiskLevel)
		fmt.Fprintf(&b, "| 置信度 | %.2f%% |\n\n", v.Confidence*100)
		fmt.Fprintf(&b, "**违规描述**\n%s\n\n", v.Description)
		fmt.Fprintf(&b, "**政策依据**\n%s\n\n", v.PolicyReference)
		fmt.Fprintf(&b, "**配置值**\n```json\n%s\n```\n\n---\n\n", configValue)
	}

	b.WriteString("## 六、报告说明\n\n")
	b.WriteString("本报告由营销审计系统自动生成，审计结果仅供参考，具体整改措施请结合业务实际情况。\n\n")
	fmt.Fprintf(&b, "---\n*报告生成时间: %s*\n", generated)

	return b.String(), nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
