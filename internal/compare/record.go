// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

import "sort"

// ConfigRecord is one normalized business-configuration entity: an open
// string-keyed mapping of field name to scalar or nested mapping. There is
// no fixed schema; fields are discovered by name-matching at comparison
// time.
type ConfigRecord map[string]any

// sortedKeys returns the record's keys in a stable order so that
// last-resort field scans are reproducible run to run.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// numericValue reports v as a float64 when it carries a numeric type.
// Strings are not coerced; the tabular normalization path types numeric
// cells before records reach the comparator.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
