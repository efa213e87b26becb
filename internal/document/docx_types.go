// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import "encoding/xml"

// Lean OOXML structures for word/document.xml. Only the elements the
// normalizer consumes are mapped.

type wordDocumentXML struct {
	XMLName xml.Name     `xml:"document"`
	Body    *wordBodyXML `xml:"body"`
}

type wordBodyXML struct {
	Paragraphs []wordParagraphXML `xml:"p"`
	Tables     []wordTableXML     `xml:"tbl"`
}

type wordParagraphXML struct {
	Properties wordParaPropsXML `xml:"pPr"`
	Runs       []wordRunXML     `xml:"r"`
}

type wordParaPropsXML struct {
	Style wordStyleRefXML `xml:"pStyle"`
}

type wordStyleRefXML struct {
	Val string `xml:"val,attr"`
}

type wordRunXML struct {
	Text []wordTextXML `xml:"t"`
}

type wordTextXML struct {
	Value string `xml:",chardata"`
}

type wordTableXML struct {
	Rows []wordTableRowXML `xml:"tr"`
}

type wordTableRowXML struct {
	Cells []wordTableCellXML `xml:"tc"`
}

type wordTableCellXML struct {
	Properties wordCellPropsXML   `xml:"tcPr"`
	Paragraphs []wordParagraphXML `xml:"p"`
}

type wordCellPropsXML struct {
	VMerge *wordVMergeXML `xml:"vMerge"`
}

type wordVMergeXML struct {
	Val string `xml:"val,attr"` // "restart" or empty (continuation)
}

// word/styles.xml: styleId to human-readable name mapping.

type wordStylesXML struct {
	XMLName xml.Name       `xml:"styles"`
	Styles  []wordStyleXML `xml:"style"`
}

type wordStyleXML struct {
	StyleID string           `xml:"styleId,attr"`
	Name    wordStyleNameXML `xml:"name"`
}

type wordStyleNameXML struct {
	Val string `xml:"val,attr"`
}

// docProps/core.xml Dublin Core properties (shared by DOCX and XLSX).

type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Creator  string   `xml:"creator"`
	Created  string   `xml:"created"`
	Modified string   `xml:"modified"`
}
