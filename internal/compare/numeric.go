// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"regexp"
	"strconv"
	"strings"
)

// Operator is the comparison relation a rule imposes on a configuration
// value.
type Operator string

const (
	OpLessOrEqual    Operator = "<="
	OpGreaterOrEqual Operator = ">="
	OpEqual          Operator = "=="
	OpGreater        Operator = ">"
	OpLess           Operator = "<"
)

// numericLiteralPattern captures an arabic number with an optional Chinese
// magnitude suffix (万/千/百) and an optional unit (元/%).
var numericLiteralPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)(万|千|百)?(?:元|%)?`)

var magnitudeMultipliers = map[string]float64{
	"万": 10000,
	"千": 1000,
	"百": 100,
}

// ExtractNumericLiteral returns the first numeric literal found in text,
// with Chinese magnitude suffixes applied (5万 → 50000).
func ExtractNumericLiteral(text string) (float64, bool) {
	m := numericLiteralPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if mult, ok := magnitudeMultipliers[m[2]]; ok {
		n *= mult
	}
	return n, true
}

// Operator scans the rule text for relation keywords and returns fallback
// when none apply. The fallback differs per caller: the comparator
// defaults to equality, the reasoning engine to an upper bound.
func (l Lexicon) Operator(text string, fallback Operator) Operator {
	for _, rule := range l.OperatorRules {
		for _, w := range rule.Words {
			if strings.Contains(text, w) {
				return rule.Op
			}
		}
	}
	return fallback
}

// ResolveConfigNumeric finds the configuration value a numeric rule
// should be checked against. Alias categories whose key appears in the
// hint text are tried first, one nesting level deep; when no alias hits,
// the record falls back to FirstNumericField.
func (l Lexicon) ResolveConfigNumeric(record ConfigRecord, hint string) (string, float64, bool) {
	for _, cat := range l.AliasCategories {
		if !strings.Contains(hint, cat.Key) {
			continue
		}
		for _, alias := range cat.Aliases {
			if field, n, ok := lookupNumeric(record, alias); ok {
				return field, n, true
			}
		}
	}
	return FirstNumericField(record)
}

// lookupNumeric checks the named field at the top level and one nested
// mapping level down.
func lookupNumeric(record ConfigRecord, name string) (string, float64, bool) {
	if v, ok := record[name]; ok {
		if n, ok := numericValue(v); ok {
			return name, n, true
		}
	}
	for _, k := range sortedKeys(record) {
		nested, ok := record[k].(map[string]any)
		if !ok {
			continue
		}
		if v, ok := nested[name]; ok {
			if n, ok := numericValue(v); ok {
				return k + "." + name, n, true
			}
		}
	}
	return "", 0, false
}

// FirstNumericField is the last-resort resolution strategy: scan the
// record in sorted key order, one nesting level deep, and take the first
// numeric value found.
func FirstNumericField(record ConfigRecord) (string, float64, bool) {
	for _, k := range sortedKeys(record) {
		if n, ok := numericValue(record[k]); ok {
			return k, n, true
		}
		nested, ok := record[k].(map[string]any)
		if !ok {
			continue
		}
		for _, nk := range sortedKeys(nested) {
			if n, ok := numericValue(nested[nk]); ok {
				return k + "." + nk, n, true
			}
		}
	}
	return "", 0, false
}

// Holds reports whether got relates to want under op.
func (op Operator) Holds(got, want float64) bool {
	switch op {
	case OpLessOrEqual:
		return got <= want
	case OpGreaterOrEqual:
		return got >= want
	case OpEqual:
		return got == want
	case OpGreater:
		return got > want
	case OpLess:
		return got < want
	default:
		return got == want
	}
}
