// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// maxPDFPages caps text extraction to keep very large documents from
// dominating a batch run.
const maxPDFPages = 50

// pdfReader extracts prose from PDF policy documents. PDFs carry no table
// grid information on this path; rule extraction runs on the text alone.
type pdfReader struct{}

func (p *pdfReader) parse(path string) (*ParsedDocument, error) {
	// Validate structure before extraction so corrupt files fail early
	// with a useful error instead of a mid-extraction panic.
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("validating PDF: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip unreadable pages, keep the rest
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	blocks := textToBlocks(b.String())
	doc := &ParsedDocument{
		Path:    path,
		Kind:    "policy_document",
		Content: blocks,
		RawText: rawText(blocks),
	}
	doc.Metadata.Title = fallbackTitle(blocks)
	doc.Metadata.ParagraphCount = len(blocks)
	return doc, nil
}
