// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Sentinel errors surfaced to callers as hard failures. Everything else in
// the pipeline degrades to permissive defaults instead of failing the batch.
var (
	ErrNotFound          = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// DefaultSection is the section assigned to blocks before any heading is seen.
const DefaultSection = "正文"

// HeadingSection is the section label assigned to heading blocks themselves.
const HeadingSection = "标题"

// headingPatterns match enumerated Chinese/Arabic prefixes and
// chapter/section/article prefixes used in policy documents.
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[一二三四五六七八九十]+[、．.]`),
	regexp.MustCompile(`^\d+[、．.]`),
	regexp.MustCompile(`^[(（][一二三四五六七八九十]+[)）]`),
	regexp.MustCompile(`^[(（]\d+[)）]`),
	regexp.MustCompile(`^第[一二三四五六七八九十百]+[章节条款]`),
}

// titleKeywords identify a leading paragraph that can serve as a document
// title when the core properties carry none.
var titleKeywords = []string{"通知", "办法", "规定", "方案", "政策"}

var styleLevelPattern = regexp.MustCompile(`\d+`)

// Normalizer converts raw files into ParsedDocument values. The zero value
// is not usable; construct with NewNormalizer.
type Normalizer struct {
	docx *docxReader
	xlsx *xlsxReader
	pdf  *pdfReader
}

// NewNormalizer creates a Normalizer covering all supported input formats.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		docx: &docxReader{},
		xlsx: &xlsxReader{},
		pdf:  &pdfReader{},
	}
}

// Normalize parses the file at path into a ParsedDocument. It fails with
// ErrNotFound when the path does not exist and ErrUnsupportedFormat when the
// extension is neither a structured-document nor a tabular extension.
func (n *Normalizer) Normalize(path string) (*ParsedDocument, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx":
		return n.docx.parse(path)
	case ".xlsx":
		return n.xlsx.parse(path)
	case ".csv":
		return parseCSV(path)
	case ".pdf":
		return n.pdf.parse(path)
	case ".txt":
		return parsePlainText(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// NormalizeBatch parses every path, collecting per-file errors instead of
// aborting the batch.
func (n *Normalizer) NormalizeBatch(paths []string) ([]*ParsedDocument, []error) {
	var docs []*ParsedDocument
	var errs []error
	for _, path := range paths {
		doc, err := n.Normalize(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, errs
}

// isHeadingText reports whether trimmed paragraph text matches one of the
// enumerated heading prefixes.
func isHeadingText(text string) bool {
	for _, p := range headingPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// isHeadingStyle reports whether a declared paragraph style marks a heading.
func isHeadingStyle(styleName string) bool {
	lower := strings.ToLower(styleName)
	return strings.Contains(lower, "heading") || strings.Contains(styleName, "标题")
}

// headingLevel parses the heading level from a numeric suffix in the style
// name, defaulting to 1.
func headingLevel(styleName string) int {
	if m := styleLevelPattern.FindString(styleName); m != "" {
		level := 0
		for _, c := range m {
			level = level*10 + int(c-'0')
		}
		if level >= 1 && level <= 9 {
			return level
		}
	}
	return 1
}

// sectionCursor is the accumulator for the single-pass section scan: each
// heading updates the cursor, every following non-heading block inherits it.
type sectionCursor struct {
	current string
}

func newSectionCursor() sectionCursor {
	return sectionCursor{current: DefaultSection}
}

// next assigns the section for one paragraph and advances the cursor when
// the paragraph is a heading.
func (c *sectionCursor) next(text string, isHeading bool) string {
	if isHeading {
		c.current = text
		return HeadingSection
	}
	return c.current
}

// fallbackTitle scans the first few paragraphs for a short line containing a
// policy-document keyword, used when core properties carry no title.
func fallbackTitle(blocks []ContentBlock) string {
	limit := 5
	if len(blocks) < limit {
		limit = len(blocks)
	}
	for _, b := range blocks[:limit] {
		if len([]rune(b.Text)) >= 100 {
			continue
		}
		for _, kw := range titleKeywords {
			if strings.Contains(b.Text, kw) {
				return b.Text
			}
		}
	}
	return ""
}

// rawText joins non-empty block texts with newlines.
func rawText(blocks []ContentBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n")
}
