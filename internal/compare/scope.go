// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"fmt"
	"strings"
)

const (
	// scopeMatchThreshold is the minimum overlap ratio for the scope
	// axis to pass.
	scopeMatchThreshold = 0.8

	// unspecifiedScope marks a side that names no applicability terms.
	unspecifiedScope = "未指定"
)

// RuleScopeTerms returns the lexicon vocabulary terms present in rule
// text, in vocabulary order, or the 未指定 sentinel when none appear.
func (l Lexicon) RuleScopeTerms(text string) []string {
	var terms []string
	for _, term := range l.ScopeTerms {
		if strings.Contains(text, term) {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return []string{unspecifiedScope}
	}
	return terms
}

// ConfigScopeTerms collects the raw values of the record's scope-bearing
// fields. List values contribute one term per element. Returns the 未指定
// sentinel when no field qualifies.
func (l Lexicon) ConfigScopeTerms(record ConfigRecord) []string {
	var terms []string
	for _, k := range sortedKeys(record) {
		if !l.isScopeField(k) {
			continue
		}
		switch v := record[k].(type) {
		case []any:
			for _, item := range v {
				terms = append(terms, fmt.Sprint(item))
			}
		case []string:
			terms = append(terms, v...)
		default:
			terms = append(terms, fmt.Sprint(v))
		}
	}
	if len(terms) == 0 {
		return []string{unspecifiedScope}
	}
	return terms
}

func (l Lexicon) isScopeField(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range l.ScopeFieldMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ScopeOverlap is the Jaccard ratio between the rule's and the record's
// term sets, with two escape hatches: a 未指定 side overlaps fully, and
// an all-inclusive term on the rule side covers any record.
func (l Lexicon) ScopeOverlap(rule, config []string) float64 {
	if len(rule) == 0 || len(config) == 0 {
		return 0.0
	}
	if contains(rule, unspecifiedScope) || contains(config, unspecifiedScope) {
		return 1.0
	}
	for _, term := range rule {
		for _, all := range l.AllInclusiveTerms {
			if strings.Contains(term, all) {
				return 1.0
			}
		}
	}
	set := make(map[string]bool, len(rule))
	for _, t := range rule {
		set[t] = true
	}
	union := make(map[string]bool, len(rule)+len(config))
	for t := range set {
		union[t] = true
	}
	inter := make(map[string]bool)
	for _, t := range config {
		if set[t] {
			inter[t] = true
		}
		union[t] = true
	}
	if len(union) == 0 {
		return 0.0
	}
	return float64(len(inter)) / float64(len(union))
}

func contains(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}
