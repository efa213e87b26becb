// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"policy-audit/internal/audit"
	"policy-audit/internal/formatters"
)

func init() {
	formatters.Register(NewFormatter())
}

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) Format(report *audit.Report, options formatters.FormatterOptions) (string, error) {
	filtered := *report
	filtered.Violations = formatters.FilterViolations(report.Violations, options)

	data, err := json.MarshalIndent(&filtered, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling report to JSON: %w", err)
	}
	return string(data), nil
}
