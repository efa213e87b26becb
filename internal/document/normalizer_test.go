// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xyz")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewNormalizer().Normalize(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNormalize_NotFound(t *testing.T) {
	_, err := NewNormalizer().Normalize("/no/such/file.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalize_PlainText(t *testing.T) {
	text := `营销活动管理办法

一、优惠券发放规则
单张优惠券金额不得超过500元

二、促销活动限制
促销范围仅限线上渠道`
	path := filepath.Join(t.TempDir(), "policy.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewNormalizer().Normalize(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Kind != "policy_document" {
		t.Errorf("expected policy_document, got %s", doc.Kind)
	}
	if doc.Metadata.Title != "营销活动管理办法" {
		t.Errorf("expected title from leading keyword line, got %q", doc.Metadata.Title)
	}
	if len(doc.Content) != 5 {
		t.Fatalf("expected 5 non-empty blocks, got %d", len(doc.Content))
	}

	// 一、 prefixed lines are headings; following prose inherits them.
	if !doc.Content[1].IsHeading {
		t.Error("expected 一、 line detected as heading")
	}
	if got := doc.Content[1].Section; got != HeadingSection {
		t.Errorf("heading block belongs to %q, got %q", HeadingSection, got)
	}
	if got := doc.Content[2].Section; got != "一、优惠券发放规则" {
		t.Errorf("expected prose to inherit heading, got %q", got)
	}
	if got := doc.Content[4].Section; got != "二、促销活动限制" {
		t.Errorf("expected section advanced, got %q", got)
	}
	if got := doc.Content[0].Section; got != DefaultSection {
		t.Errorf("expected %q before any heading, got %q", DefaultSection, got)
	}
}

func TestNormalize_CSV(t *testing.T) {
	csvData := "activity_id,max_amount\nPROMO_A,600\nPROMO_B,300\n"
	path := filepath.Join(t.TempDir(), "config.csv")
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewNormalizer().Normalize(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Kind != "business_config" {
		t.Errorf("expected business_config, got %s", doc.Kind)
	}
	if len(doc.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(doc.Tables))
	}
	table := doc.Tables[0]
	if table.ColCount() != 2 || table.RowCount() != 2 {
		t.Errorf("unexpected dimensions: %dx%d", table.RowCount(), table.ColCount())
	}
	if table.ColumnTypes["max_amount"] != "number" {
		t.Errorf("expected max_amount inferred as number, got %q", table.ColumnTypes["max_amount"])
	}
	if table.ColumnTypes["activity_id"] != "string" {
		t.Errorf("expected activity_id inferred as string, got %q", table.ColumnTypes["activity_id"])
	}
}

func TestNormalize_Docx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.docx")
	writeZip(t, path, map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
      <w:r><w:t>一、优惠券发放规则</w:t></w:r>
    </w:p>
    <w:p><w:r><w:t>单张优惠券金额</w:t></w:r><w:r><w:t>不得超过500元</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>名称</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>金额</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>满减券</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>50</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>100</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`,
		"word/styles.xml": `<?xml version="1.0" encoding="UTF-8"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
</w:styles>`,
		"docProps/core.xml": `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
  xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>营销活动管理办法</dc:title>
  <dc:creator>市场部</dc:creator>
</cp:coreProperties>`,
	})

	doc, err := NewNormalizer().Normalize(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Kind != "policy_document" {
		t.Errorf("expected policy_document, got %s", doc.Kind)
	}
	if doc.Metadata.Title != "营销活动管理办法" {
		t.Errorf("unexpected title: %q", doc.Metadata.Title)
	}
	if doc.Metadata.Author != "市场部" {
		t.Errorf("unexpected author: %q", doc.Metadata.Author)
	}

	if len(doc.Content) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Content))
	}
	if !doc.Content[0].IsHeading {
		t.Error("expected styled heading detected")
	}
	// Runs of one paragraph concatenate.
	if doc.Content[1].Text != "单张优惠券金额不得超过500元" {
		t.Errorf("unexpected paragraph text: %q", doc.Content[1].Text)
	}
	if doc.Content[1].Section != "一、优惠券发放规则" {
		t.Errorf("unexpected section: %q", doc.Content[1].Section)
	}

	if len(doc.Sections) != 1 || doc.Sections[0].Level != 1 {
		t.Fatalf("unexpected outline: %v", doc.Sections)
	}

	if len(doc.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(doc.Tables))
	}
	table := doc.Tables[0]
	if table.Headers[0] != "名称" || table.Headers[1] != "金额" {
		t.Errorf("unexpected headers: %v", table.Headers)
	}
	// The vertically merged cell inherits the value above it.
	if got := table.Rows[2][0]; got != "满减券" {
		t.Errorf("expected vMerge continuation filled, got %q", got)
	}
}

func TestNormalize_Xlsx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xlsx")
	writeZip(t, path, map[string]string{
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets><sheet name="活动配置" sheetId="1" r:id="rId1"/></sheets>
</workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Target="worksheets/sheet1.xml"/>
</Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <si><t>activity_id</t></si>
  <si><t>max_amount</t></si>
  <si><t>PROMO_A</t></si>
</sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1">
      <c r="A1" t="s"><v>0</v></c>
      <c r="B1" t="s"><v>1</v></c>
    </row>
    <row r="2">
      <c r="A2" t="s"><v>2</v></c>
      <c r="B2"><v>600</v></c>
    </row>
  </sheetData>
</worksheet>`,
	})

	doc, err := NewNormalizer().Normalize(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Kind != "business_config" {
		t.Errorf("expected business_config, got %s", doc.Kind)
	}
	if len(doc.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(doc.Tables))
	}
	table := doc.Tables[0]
	if table.Name != "活动配置" {
		t.Errorf("expected sheet name carried over, got %q", table.Name)
	}
	if table.Headers[0] != "activity_id" || table.Headers[1] != "max_amount" {
		t.Errorf("unexpected headers: %v", table.Headers)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "PROMO_A" || table.Rows[0][1] != "600" {
		t.Errorf("unexpected row: %v", table.Rows[0])
	}
}

func TestNormalizeBatch_CollectsErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(good, []byte("不得虚假宣传"), 0o644); err != nil {
		t.Fatal(err)
	}

	docs, errs := NewNormalizer().NormalizeBatch([]string{good, filepath.Join(dir, "missing.txt")})
	if len(docs) != 1 {
		t.Errorf("expected 1 parsed document, got %d", len(docs))
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 error, got %v", errs)
	}
}

func TestTableMarkdown(t *testing.T) {
	table := Table{
		Rows: [][]string{
			{"名称", "金额"},
			{"满减券", "50"},
		},
	}

	md := table.Markdown()
	lines := strings.Split(md, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 markdown lines, got %d:\n%s", len(lines), md)
	}
	if lines[0] != "| 名称 | 金额 |" {
		t.Errorf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "| --- | --- |" {
		t.Errorf("unexpected separator line: %q", lines[1])
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}
