// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"policy-audit/internal/audit"
	"policy-audit/internal/formatters"
)

// maxReferenceLen truncates long policy citations in tabular output.
const maxReferenceLen = 200

func init() {
	formatters.Register(NewFormatter())
}

// Formatter implements CSV violation-list output
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "CSV violation list for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(report *audit.Report, options formatters.FormatterOptions) (string, error) {
	violations := formatters.FilterViolations(report.Violations, options)

	var builder strings.Builder
	w := csv.NewWriter(&builder)

	header := []string{"违规ID", "标题", "风险等级", "描述", "政策依据", "配置值", "置信度"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, v := range violations {
		configValue, err := json.Marshal(v.ConfigValue)
		if err != nil {
			return "", fmt.Errorf("error marshaling config value: %w", err)
		}
		row := []string{
			v.ID,
			v.Title,
			string(v.RiskLevel),
			v.Description,
			truncate(v.PolicyReference, maxReferenceLen),
			string(configValue),
			fmt.Sprintf("%.2f%%", v.Confidence*100),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV output: %w", err)
	}
	return builder.String(), nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
