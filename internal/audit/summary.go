// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"fmt"
	"sort"

	"policy-audit/internal/reason"
)

// topViolationLimit caps the highlighted violations in a summary.
const topViolationLimit = 5

// Summary aggregates one run's violations for reporting.
type Summary struct {
	Total           int                    `json:"total"`
	HighRiskCount   int                    `json:"high_risk_count"`
	MediumRiskCount int                    `json:"medium_risk_count"`
	LowRiskCount    int                    `json:"low_risk_count"`
	Message         string                 `json:"message"`
	ByCategory      map[string][]Violation `json:"violations_by_category,omitempty"`
	TopViolations   []Violation            `json:"top_violations,omitempty"`
	Recommendations []string               `json:"recommendations"`
}

// Summarize builds the aggregate view: risk counts, category buckets,
// the highest-confidence findings and remediation advice.
func Summarize(violations []Violation) Summary {
	s := Summary{Total: len(violations)}
	for _, v := range violations {
		switch v.RiskLevel {
		case reason.RiskHigh:
			s.HighRiskCount++
		case reason.RiskMedium:
			s.MediumRiskCount++
		case reason.RiskLow:
			s.LowRiskCount++
		}
	}
	s.Message = summaryMessage(s)
	s.ByCategory = categorize(violations)
	s.TopViolations = topByConfidence(violations)
	s.Recommendations = recommendations(violations, s)
	return s
}

func summaryMessage(s Summary) string {
	if s.Total == 0 {
		return "本次审计未发现违规问题，系统配置符合政策要求。"
	}
	return fmt.Sprintf("本次审计共发现 %d 个违规问题，其中高风险 %d 个，中风险 %d 个，低风险 %d 个。",
		s.Total, s.HighRiskCount, s.MediumRiskCount, s.LowRiskCount)
}

func categorize(violations []Violation) map[string][]Violation {
	if len(violations) == 0 {
		return nil
	}
	out := make(map[string][]Violation)
	for _, v := range violations {
		category := v.Category()
		out[category] = append(out[category], v)
	}
	return out
}

// topByConfidence returns up to topViolationLimit violations ordered by
// confidence, ties broken by ID to keep output stable.
func topByConfidence(violations []Violation) []Violation {
	top := make([]Violation, len(violations))
	copy(top, violations)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Confidence > top[j].Confidence
	})
	if len(top) > topViolationLimit {
		top = top[:topViolationLimit]
	}
	return top
}

// categoryOrder fixes recommendation ordering over the map of buckets.
var categoryOrder = []string{CategoryAmount, CategoryScope, CategoryCondition, CategoryConflict, CategoryOther}

func recommendations(violations []Violation, s Summary) []string {
	if len(violations) == 0 {
		return []string{
			"当前配置符合政策要求，建议继续保持。",
			"建议定期进行合规审计，确保配置持续合规。",
		}
	}

	var recs []string
	if s.HighRiskCount > 0 {
		recs = append(recs, fmt.Sprintf("【紧急】发现 %d 个高风险违规项，建议立即整改。", s.HighRiskCount))
	}
	for _, category := range categoryOrder {
		if items := s.ByCategory[category]; len(items) > 0 {
			recs = append(recs, fmt.Sprintf("建议检查 %s 相关配置，共发现 %d 处问题。", category, len(items)))
		}
	}
	recs = append(recs,
		"建议建立配置变更审核机制，从源头预防违规。",
		"建议定期进行合规审计，确保配置持续合规。",
	)
	return recs
}
