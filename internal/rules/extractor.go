// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package rules mines normative statements out of policy text and emits
// typed, deduplicated ExtractedRule records.
package rules

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// dedupPrefixLen is the number of leading runes of SourceText that define
// rule identity for deduplication.
const dedupPrefixLen = 100

var (
	// arabicValuePattern captures numeric tokens with optional magnitude
	// words and unit suffixes, e.g. "500元", "3.5万", "20%".
	arabicValuePattern = regexp.MustCompile(`\d+(?:\.\d+)?(?:万|千|百)?(?:元|%)?`)

	// chineseValuePattern captures Chinese-numeral forms, e.g. "三万元".
	chineseValuePattern = regexp.MustCompile(`[一二三四五六七八九十]+(?:万|千|百)?(?:元|%)?`)
)

// ExtractedRule is one typed constraint mined from policy text. Instances
// are created only by the Extractor and are read-only afterwards.
type ExtractedRule struct {
	SourceText       string         `json:"source_text"`
	Section          string         `json:"section,omitempty"`
	RuleType         RuleType       `json:"rule_type"`
	ConstraintType   ConstraintType `json:"constraint_type"`
	ConstraintValues []string       `json:"constraint_value"`
	ExtractionMethod string         `json:"extraction_method"`
}

// Extractor scans normalized text for normative sentences. The vocabulary
// is fixed at construction time.
type Extractor struct {
	vocab Vocabulary
}

// NewExtractor creates an Extractor with the default vocabulary.
func NewExtractor() *Extractor {
	return NewExtractorWithVocabulary(DefaultVocabulary())
}

// NewExtractorWithVocabulary creates an Extractor with a custom vocabulary.
func NewExtractorWithVocabulary(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// SectionText is a chunk of policy text with the heading it appeared
// under.
type SectionText struct {
	Section string
	Text    string
}

// Extract splits text into paragraphs, keeps the rule candidates, classifies
// each and returns the deduplicated rule list. Text is NFKC-normalized
// first so full-width digits and percent signs match the value patterns.
func (e *Extractor) Extract(text string) []ExtractedRule {
	return e.ExtractSections([]SectionText{{Text: text}})
}

// ExtractSections runs extraction over ordered document chunks, tagging
// each rule with its section. Deduplication spans all chunks.
func (e *Extractor) ExtractSections(parts []SectionText) []ExtractedRule {
	var out []ExtractedRule
	seen := make(map[string]struct{})

	for _, part := range parts {
		for _, para := range strings.Split(norm.NFKC.String(part.Text), "\n") {
			para = strings.TrimSpace(para)
			if para == "" || !e.IsRuleCandidate(para) {
				continue
			}

			key := dedupKey(para)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			out = append(out, ExtractedRule{
				SourceText:       para,
				Section:          part.Section,
				RuleType:         e.classifyRuleType(para),
				ConstraintType:   e.classifyConstraintType(para),
				ConstraintValues: ExtractValues(para),
				ExtractionMethod: "pattern",
			})
		}
	}
	return out
}

// IsRuleCandidate reports whether a paragraph contains at least one keyword
// signaling obligation, prohibition or a quantitative constraint.
func (e *Extractor) IsRuleCandidate(text string) bool {
	return containsAny(text, e.vocab.Candidacy)
}

// classifyRuleType assigns the rule type by keyword priority; the first
// matching category wins.
func (e *Extractor) classifyRuleType(text string) RuleType {
	switch {
	case containsAny(text, e.vocab.Prohibition):
		return RuleProhibition
	case containsAny(text, e.vocab.Obligation):
		return RuleObligation
	case containsAny(text, e.vocab.UpperBound):
		return RuleUpperBound
	case containsAny(text, e.vocab.LowerBound):
		return RuleLowerBound
	case containsAny(text, e.vocab.ScopeLimit):
		return RuleScopeLimit
	default:
		return RuleCondition
	}
}

// classifyConstraintType assigns the constraint type from the first bucket
// whose keywords appear in the text.
func (e *Extractor) classifyConstraintType(text string) ConstraintType {
	for _, bucket := range e.vocab.ConstraintBuckets {
		if containsAny(text, bucket.Keywords) {
			return bucket.Type
		}
	}
	return ConstraintOther
}

// ExtractValues captures every distinct literal value token in the text:
// Arabic and Chinese numerals with optional magnitude and unit suffixes.
// Token order is not significant.
func ExtractValues(text string) []string {
	var values []string
	seen := make(map[string]struct{})
	for _, pattern := range []*regexp.Regexp{arabicValuePattern, chineseValuePattern} {
		for _, m := range pattern.FindAllString(text, -1) {
			if _, dup := seen[m]; !dup {
				seen[m] = struct{}{}
				values = append(values, m)
			}
		}
	}
	return values
}

// dedupKey returns the first dedupPrefixLen runes of the source text.
func dedupKey(text string) string {
	runes := []rune(text)
	if len(runes) > dedupPrefixLen {
		return string(runes[:dedupPrefixLen])
	}
	return text
}
