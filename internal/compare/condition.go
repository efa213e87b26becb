// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"fmt"
	"regexp"
	"strings"
)

// conditionMatchThreshold is the minimum text similarity for a rule
// condition to count as satisfied by a configuration condition.
const conditionMatchThreshold = 0.6

// conditionPatterns lift condition phrases out of rule text: obligations,
// prohibitions and stated requirements, with a short context window on
// each side.
var conditionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(.{0,20})(必须|应当|需要)(.{0,30})`),
	regexp.MustCompile(`(.{0,20})(不得|禁止|不能)(.{0,30})`),
	regexp.MustCompile(`(.{0,20})(条件|要求|标准)(.{0,30})`),
}

// ExtractConditions returns the condition phrases found in text, whole
// match per pattern hit, deduplicated in order of appearance.
func ExtractConditions(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pat := range conditionPatterns {
		for _, m := range pat.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			if m == "" || seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// ConfigConditions renders the record's condition-bearing fields as
// "field: value" strings.
func (l Lexicon) ConfigConditions(record ConfigRecord) []string {
	var out []string
	for _, k := range sortedKeys(record) {
		if l.isConditionField(k) {
			out = append(out, fmt.Sprintf("%s: %v", k, record[k]))
		}
	}
	return out
}

func (l Lexicon) isConditionField(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range l.ConditionFieldMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
