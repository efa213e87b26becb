// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"policy-audit/internal/audit"
	"policy-audit/internal/formatters"
	"policy-audit/internal/reason"
)

func init() {
	formatters.Register(NewFormatter())
}

// Formatter implements human-readable text output
type Formatter struct {
	colors map[reason.RiskLevel]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[reason.RiskLevel]*color.Color{
			reason.RiskHigh:   color.New(color.FgRed, color.Bold),
			reason.RiskMedium: color.New(color.FgYellow),
			reason.RiskLow:    color.New(color.FgGreen),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colored risk levels"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report *audit.Report, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	violations := formatters.FilterViolations(report.Violations, options)

	var builder strings.Builder
	builder.WriteString(strings.Repeat("=", 60) + "\n")
	builder.WriteString("审计报告\n")
	builder.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&builder, "审计时间: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	if len(report.PolicyFiles) > 0 {
		fmt.Fprintf(&builder, "政策文件: %s\n", strings.Join(report.PolicyFiles, ", "))
	}
	if len(report.ConfigFiles) > 0 {
		fmt.Fprintf(&builder, "配置文件: %s\n", strings.Join(report.ConfigFiles, ", "))
	}
	fmt.Fprintf(&builder, "提取规则数: %d\n", report.RulesExtracted)
	fmt.Fprintf(&builder, "配置记录数: %d\n", report.RecordCount)
	fmt.Fprintf(&builder, "检查项总数: %d\n", report.TotalChecks)
	builder.WriteString("\n" + report.Summary.Message + "\n")

	if len(violations) == 0 {
		return builder.String(), nil
	}

	builder.WriteString("\n违规详情\n")
	builder.WriteString(strings.Repeat("-", 60) + "\n")
	for _, v := range violations {
		fmt.Fprintf(&builder, "[%s] %s %s\n", f.riskLabel(v.RiskLevel), v.ID, v.Title)
		fmt.Fprintf(&builder, "  描述: %s\n", v.Description)
		if options.Verbose {
			fmt.Fprintf(&builder, "  政策依据: %s\n", v.PolicyReference)
			if v.RecordName != "" {
				fmt.Fprintf(&builder, "  配置记录: %s\n", v.RecordName)
			}
			fmt.Fprintf(&builder, "  置信度: %.0f%%\n", v.Confidence*100)
			for _, cmp := range v.Comparison.Comparisons {
				fmt.Fprintf(&builder, "  对比[%s]: 匹配=%t\n", cmp.Type, cmp.IsMatch)
			}
		}
	}

	if len(report.Summary.Recommendations) > 0 {
		builder.WriteString("\n整改建议\n")
		builder.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range report.Summary.Recommendations {
			fmt.Fprintf(&builder, "  - %s\n", rec)
		}
	}

	return builder.String(), nil
}

func (f *Formatter) riskLabel(level reason.RiskLevel) string {
	if c, ok := f.colors[level]; ok {
		return c.Sprint(string(level))
	}
	return string(level)
}
