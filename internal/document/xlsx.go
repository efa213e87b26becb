// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// xlsxReader parses Office Open XML spreadsheets. Every sheet becomes one
// logical Table with the first row as the header row.
type xlsxReader struct{}

func (x *xlsxReader) parse(path string) (*ParsedDocument, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()

	wbData, err := zipFileContent(&zr.Reader, "xl/workbook.xml")
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	var wb workbookXML
	if err := xml.Unmarshal(wbData, &wb); err != nil {
		return nil, fmt.Errorf("unmarshaling workbook.xml: %w", err)
	}

	shared := parseSharedStrings(&zr.Reader)
	rels := parseSheetRels(&zr.Reader)

	var tables []Table
	for i, ref := range wb.Sheets.Sheet {
		target := rels[ref.RID]
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		target = strings.TrimPrefix(target, "/")
		if !strings.HasPrefix(target, "xl/") {
			target = "xl/" + target
		}

		data, err := zipFileContent(&zr.Reader, target)
		if err != nil {
			continue // skip sheets we cannot read
		}

		table, err := parseWorksheet(data, shared)
		if err != nil {
			continue
		}
		table.Index = len(tables)
		table.Name = ref.Name
		tables = append(tables, table)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no worksheets found")
	}

	doc := &ParsedDocument{
		Path:   path,
		Kind:   "business_config",
		Tables: tables,
	}
	doc.Metadata = xlsxMetadata(&zr.Reader)
	doc.Metadata.TableCount = len(tables)
	return doc, nil
}

func parseSharedStrings(zr *zip.Reader) []string {
	data, err := zipFileContent(zr, "xl/sharedStrings.xml")
	if err != nil {
		return nil
	}
	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil
	}

	out := make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != "" {
			out[i] = si.T
			continue
		}
		// Rich text: concatenate all runs.
		var b strings.Builder
		for _, r := range si.R {
			b.WriteString(r.T)
		}
		out[i] = b.String()
	}
	return out
}

func parseSheetRels(zr *zip.Reader) map[string]string {
	rels := make(map[string]string)
	data, err := zipFileContent(zr, "xl/_rels/workbook.xml.rels")
	if err != nil {
		return rels
	}
	var parsed sheetRelationshipsXML
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return rels
	}
	for _, rel := range parsed.Relationship {
		rels[rel.ID] = rel.Target
	}
	return rels
}

// parseWorksheet converts one worksheet into a Table. Empty cells are
// normalized to the empty string so every row spans the full width.
func parseWorksheet(data []byte, shared []string) (Table, error) {
	var ws worksheetXML
	if err := xml.Unmarshal(data, &ws); err != nil {
		return Table{}, err
	}

	maxRow, maxCol := 0, 0
	for _, row := range ws.SheetData.Rows {
		if row.R > maxRow {
			maxRow = row.R
		}
		for _, c := range row.Cells {
			if col, ok := cellColumn(c.R); ok && col+1 > maxCol {
				maxCol = col + 1
			}
		}
	}
	if maxRow == 0 || maxCol == 0 {
		return Table{}, fmt.Errorf("empty worksheet")
	}

	grid := make([][]string, maxRow)
	for i := range grid {
		grid[i] = make([]string, maxCol)
	}
	for _, row := range ws.SheetData.Rows {
		if row.R < 1 || row.R > maxRow {
			continue
		}
		for _, c := range row.Cells {
			col, ok := cellColumn(c.R)
			if !ok || col >= maxCol {
				continue
			}
			grid[row.R-1][col] = strings.TrimSpace(cellValue(c, shared))
		}
	}

	table := Table{
		Headers: grid[0],
		Rows:    grid[1:],
	}
	table.ColumnTypes = inferColumnTypes(table.Headers, table.Rows)
	return table, nil
}

// cellValue resolves a cell's displayed value, looking up shared strings
// when needed.
func cellValue(c sheetCellXML, shared []string) string {
	switch c.T {
	case "s":
		idx, err := strconv.Atoi(c.V)
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	case "inlineStr":
		if c.Is != nil {
			return c.Is.T
		}
		return ""
	default:
		return c.V
	}
}

// cellColumn parses the 0-indexed column from a cell reference like "B3".
func cellColumn(ref string) (int, bool) {
	col := 0
	seen := false
	for _, r := range ref {
		if r >= 'A' && r <= 'Z' {
			col = col*26 + int(r-'A') + 1
			seen = true
			continue
		}
		break
	}
	if !seen {
		return 0, false
	}
	return col - 1, true
}

// inferColumnTypes guesses a column's type from its first non-empty value.
// The result is advisory only and never enforced.
func inferColumnTypes(headers []string, rows [][]string) map[string]string {
	types := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		types[h] = "unknown"
		for _, row := range rows {
			if i >= len(row) || row[i] == "" {
				continue
			}
			if _, err := strconv.ParseFloat(row[i], 64); err == nil {
				types[h] = "number"
			} else {
				types[h] = "string"
			}
			break
		}
	}
	return types
}

func xlsxMetadata(zr *zip.Reader) Metadata {
	meta := Metadata{}
	if data, err := zipFileContent(zr, "docProps/core.xml"); err == nil {
		var props corePropertiesXML
		if err := xml.Unmarshal(data, &props); err == nil {
			meta.Title = props.Title
			meta.Author = props.Creator
			meta.Created = props.Created
			meta.Modified = props.Modified
		}
	}
	return meta
}
