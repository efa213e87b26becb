// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package document normalizes heterogeneous policy and configuration files
// (DOCX, XLSX, CSV, PDF, plain text) into a canonical ParsedDocument.
package document

import "strings"

// Metadata holds document core properties.
type Metadata struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	Created        string `json:"created_date"`
	Modified       string `json:"modified_date"`
	ParagraphCount int    `json:"paragraph_count"`
	TableCount     int    `json:"table_count"`
}

// ContentBlock is one non-empty paragraph of document text with its
// position and the section it belongs to.
type ContentBlock struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Style     string `json:"style,omitempty"`
	IsHeading bool   `json:"is_heading"`
	Section   string `json:"section"`
}

// Table is a rectangular grid of trimmed cell strings. The first source row
// is treated as the header row. Rows are mutable during table reconstruction
// and must be treated as immutable afterwards.
type Table struct {
	Index           int               `json:"table_index"`
	Name            string            `json:"name,omitempty"`
	Headers         []string          `json:"headers"`
	Rows            [][]string        `json:"rows"`
	ColumnTypes     map[string]string `json:"column_types,omitempty"`
	Reconstructed   bool              `json:"reconstructed,omitempty"`
	CrossPageMerged bool              `json:"is_cross_page_merged,omitempty"`
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColCount returns the number of header columns.
func (t *Table) ColCount() int { return len(t.Headers) }

// Markdown renders the table as a markdown block. The first row doubles as
// the header row, matching how the source grids are captured.
func (t *Table) Markdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	var b strings.Builder
	for i, row := range t.Rows {
		b.WriteString("| ")
		for j, cell := range row {
			if j > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(strings.ReplaceAll(cell, "\n", " "))
		}
		b.WriteString(" |\n")

		if i == 0 {
			b.WriteString("|")
			for range row {
				b.WriteString(" --- |")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// SectionInfo describes one heading in the document outline.
type SectionInfo struct {
	Title string `json:"title"`
	Level int    `json:"level"`
}

// ParsedDocument is the canonical representation every supported input
// format is normalized into. It is immutable once produced.
type ParsedDocument struct {
	Path     string         `json:"file_path"`
	Kind     string         `json:"document_type"` // "policy_document" or "business_config"
	Metadata Metadata       `json:"metadata"`
	Content  []ContentBlock `json:"content"`
	Tables   []Table        `json:"tables"`
	Sections []SectionInfo  `json:"sections,omitempty"`
	RawText  string         `json:"raw_text"`
}
