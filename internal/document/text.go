// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"os"
	"strings"
)

// parsePlainText normalizes a plain-text policy file. Each non-empty line
// becomes one content block; heading detection runs on text patterns only.
func parsePlainText(path string) (*ParsedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	blocks := textToBlocks(string(data))
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

// textToBlocks runs the single-pass heading/section scan over raw text.
func textToBlocks(text string) []ContentBlock {
	var blocks []ContentBlock
	cursor := newSectionCursor()

	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		heading := isHeadingText(trimmed)
		blocks = append(blocks, ContentBlock{
			Index:     i,
			Text:      trimmed,
			IsHeading: heading,
			Section:   cursor.next(trimmed, heading),
		})
	}
	return blocks
}
