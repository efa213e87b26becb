// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// parseCSV normalizes a CSV file into a single-table business config
// document, mirroring the spreadsheet path.
func parseCSV(path string) (*ParsedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are repaired downstream

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(rec))
		for i, cell := range rec {
			row[i] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}

	table := Table{
		Name:    "data",
		Headers: headers,
		Rows:    rows,
	}
	table.ColumnTypes = inferColumnTypes(headers, rows)

	return &ParsedDocument{
		Path:   path,
		Kind:   "business_config",
		Tables: []Table{table},
		Metadata: Metadata{
			TableCount: 1,
		},
	}, nil
}
