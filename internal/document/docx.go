// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxReader parses Office Open XML word-processing documents.
type docxReader struct{}

func (d *docxReader) parse(path string) (*ParsedDocument, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()

	data, err := zipFileContent(&zr.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("reading document body: %w", err)
	}

	var body wordDocumentXML
	if err := xml.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	if body.Body == nil {
		return nil, fmt.Errorf("document has no body")
	}

	styleNames := parseStyleNames(&zr.Reader)

	blocks, sections := extractContent(body.Body.Paragraphs, styleNames)
	tables := extractDocxTables(body.Body.Tables)

	doc := &ParsedDocument{
		Path:     path,
		Kind:     "policy_document",
		Content:  blocks,
		Tables:   tables,
		Sections: sections,
		RawText:  rawText(blocks),
	}
	doc.Metadata = docxMetadata(&zr.Reader, blocks)
	doc.Metadata.ParagraphCount = len(body.Body.Paragraphs)
	doc.Metadata.TableCount = len(tables)

	return doc, nil
}

// parseStyleNames maps style IDs to their display names. Styles are
// optional; a missing styles.xml yields an empty map.
func parseStyleNames(zr *zip.Reader) map[string]string {
	names := make(map[string]string)
	data, err := zipFileContent(zr, "word/styles.xml")
	if err != nil {
		return names
	}
	var styles wordStylesXML
	if err := xml.Unmarshal(data, &styles); err != nil {
		return names
	}
	for _, s := range styles.Styles {
		if s.StyleID != "" {
			names[s.StyleID] = s.Name.Val
		}
	}
	return names
}

// extractContent walks the paragraphs once, assigning indexes, heading
// flags and the running section, and collects the heading outline.
func extractContent(paragraphs []wordParagraphXML, styleNames map[string]string) ([]ContentBlock, []SectionInfo) {
	var blocks []ContentBlock
	var sections []SectionInfo
	cursor := newSectionCursor()

	for i, p := range paragraphs {
		text := strings.TrimSpace(paragraphText(p))
		if text == "" {
			continue
		}

		styleName := styleNames[p.Properties.Style.Val]
		if styleName == "" {
			styleName = p.Properties.Style.Val
		}

		heading := isHeadingStyle(styleName) || isHeadingText(text)
		blocks = append(blocks, ContentBlock{
			Index:     i,
			Text:      text,
			Style:     styleName,
			IsHeading: heading,
			Section:   cursor.next(text, heading),
		})

		if heading {
			sections = append(sections, SectionInfo{
				Title: text,
				Level: headingLevel(styleName),
			})
		}
	}
	return blocks, sections
}

// paragraphText concatenates the text runs of one paragraph.
func paragraphText(p wordParagraphXML) string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Value)
		}
	}
	return b.String()
}

// extractDocxTables captures every table as a grid of trimmed cell strings.
// Vertically merged continuation cells inherit the value from the row above
// so the grid stays rectangular and self-contained.
func extractDocxTables(tables []wordTableXML) []Table {
	out := make([]Table, 0, len(tables))
	for i, t := range tables {
		var rows [][]string
		for _, tr := range t.Rows {
			row := make([]string, 0, len(tr.Cells))
			for col, tc := range tr.Cells {
				text := strings.TrimSpace(cellText(tc))
				if text == "" && isVMergeContinuation(tc) && len(rows) > 0 && col < len(rows[len(rows)-1]) {
					text = rows[len(rows)-1][col]
				}
				row = append(row, text)
			}
			rows = append(rows, row)
		}

		var headers []string
		if len(rows) > 0 {
			headers = rows[0]
		}
		out = append(out, Table{
			Index:   i,
			Headers: headers,
			Rows:    rows,
		})
	}
	return out
}

func cellText(tc wordTableCellXML) string {
	parts := make([]string, 0, len(tc.Paragraphs))
	for _, p := range tc.Paragraphs {
		if t := paragraphText(p); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// isVMergeContinuation reports whether a cell continues a vertical merge
// started in a previous row.
func isVMergeContinuation(tc wordTableCellXML) bool {
	return tc.Properties.VMerge != nil && tc.Properties.VMerge.Val != "restart"
}

// docxMetadata reads docProps/core.xml, falling back to a leading paragraph
// containing a policy-document keyword when no title property is present.
func docxMetadata(zr *zip.Reader, blocks []ContentBlock) Metadata {
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
	if meta.Title == "" {
		meta.Title = fallbackTitle(blocks)
	}
	return meta
}

// zipFileContent reads one named file out of a ZIP archive.
func zipFileContent(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found in archive: %s", name)
}
