// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package tables repairs tables captured from policy documents: resolving
// "same as above" continuation markers and merging fragments that were
// split across page boundaries.
package tables

import (
	"strings"

	"policy-audit/internal/document"
)

// headerSimilarityThreshold is the per-position equality ratio two header
// rows must reach before consecutive fragments are merged.
const headerSimilarityThreshold = 0.8

// DefaultMergeIndicators are the cell placeholders meaning "inherit the
// value above". Comparison is trimmed and case-folded.
var DefaultMergeIndicators = []string{"同上", "同前", "同左", "同右", "---", "..."}

// Reconstructor resolves continuation markers and cross-page fragments.
// The marker set is explicit configuration so tests can substitute it.
type Reconstructor struct {
	indicators map[string]struct{}
}

// NewReconstructor creates a Reconstructor with the default marker set.
func NewReconstructor() *Reconstructor {
	return NewReconstructorWithIndicators(DefaultMergeIndicators)
}

// NewReconstructorWithIndicators creates a Reconstructor with a custom
// marker set.
func NewReconstructorWithIndicators(indicators []string) *Reconstructor {
	set := make(map[string]struct{}, len(indicators))
	for _, ind := range indicators {
		set[strings.ToLower(strings.TrimSpace(ind))] = struct{}{}
	}
	return &Reconstructor{indicators: set}
}

// Reconstruct resolves merge indicators inside every table, then merges
// adjacent cross-page fragments. The input tables are not modified;
// reconstruction is idempotent.
func (r *Reconstructor) Reconstruct(in []document.Table) []document.Table {
	processed := make([]document.Table, 0, len(in))
	for _, t := range in {
		processed = append(processed, r.fillMarkers(t))
	}
	return r.mergeFragments(processed)
}

// fillMarkers replaces continuation markers with the value in the same
// column of the immediately preceding row, top to bottom in one pass so a
// marker can chain through several rows.
func (r *Reconstructor) fillMarkers(t document.Table) document.Table {
	out := t
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		filled := make([]string, len(row))
		copy(filled, row)
		if i > 0 {
			prev := out.Rows[i-1]
			for col, cell := range filled {
				if r.isMergeIndicator(cell) && col < len(prev) {
					filled[col] = prev[col]
				}
			}
		}
		out.Rows[i] = filled
	}
	out.Reconstructed = true
	return out
}

func (r *Reconstructor) isMergeIndicator(cell string) bool {
	_, ok := r.indicators[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

// mergeFragments folds the table list in source order, merging each table
// into the previous one when their headers line up.
func (r *Reconstructor) mergeFragments(in []document.Table) []document.Table {
	if len(in) <= 1 {
		return in
	}

	var merged []document.Table
	current := in[0]
	for _, t := range in[1:] {
		if shouldMerge(current, t) {
			current = mergeTwo(current, t)
			continue
		}
		merged = append(merged, current)
		current = t
	}
	return append(merged, current)
}

// shouldMerge reports whether two consecutive tables are fragments of one
// logical table: equal header length and per-position similarity at or
// above the threshold.
func shouldMerge(a, b document.Table) bool {
	if len(a.Headers) == 0 || len(b.Headers) == 0 {
		return false
	}
	if len(a.Headers) != len(b.Headers) {
		return false
	}
	return headerSimilarity(a.Headers, b.Headers) >= headerSimilarityThreshold
}

// headerSimilarity is the fraction of header positions whose trimmed text
// matches exactly.
func headerSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matches := 0
	for i := range a {
		if i < len(b) && strings.TrimSpace(a[i]) == strings.TrimSpace(b[i]) {
			matches++
		}
	}
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return float64(matches) / float64(max)
}

// mergeTwo concatenates fragment b onto a. If b repeats its own header as
// the first data row, that row is dropped before concatenation.
func mergeTwo(a, b document.Table) document.Table {
	rows := b.Rows
	if len(rows) > 0 && rowsEqual(rows[0], b.Headers) {
		rows = rows[1:]
	}

	out := a
	out.Rows = make([][]string, 0, len(a.Rows)+len(rows))
	out.Rows = append(out.Rows, a.Rows...)
	out.Rows = append(out.Rows, rows...)
	out.CrossPageMerged = true
	return out
}

func rowsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Records converts a table into field→value mappings by zipping headers
// with each data row. Rows shorter than the header are right-padded with
// empty strings and longer rows are truncated; this lossy alignment is
// deliberate, malformed rows never fail the batch.
func Records(t document.Table) []map[string]string {
	if len(t.Headers) == 0 || len(t.Rows) == 0 {
		return nil
	}

	rows := t.Rows
	if rowsEqual(rows[0], t.Headers) {
		rows = rows[1:]
	}

	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		adjusted := adjustRow(row, len(t.Headers))
		rec := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			rec[h] = adjusted[i]
		}
		records = append(records, rec)
	}
	return records
}

// adjustRow pads or truncates a row to the target length.
func adjustRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	out := make([]string, length)
	copy(out, row)
	return out
}

// HierarchicalColumn describes a header cell that encodes nested sub-headers.
type HierarchicalColumn struct {
	Index      int
	Header     string
	SubHeaders []string
}

// DetectNestedColumns reports header cells containing "/" or a line break,
// which usually encode a collapsed two-level header. Advisory only.
func DetectNestedColumns(t document.Table) []HierarchicalColumn {
	var cols []HierarchicalColumn
	for i, h := range t.Headers {
		if strings.ContainsAny(h, "/\n") {
			cols = append(cols, HierarchicalColumn{
				Index:      i,
				Header:     h,
				SubHeaders: strings.FieldsFunc(h, func(r rune) bool { return r == '/' || r == '\n' }),
			})
		}
	}
	return cols
}
