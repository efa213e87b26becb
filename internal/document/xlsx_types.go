// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import "encoding/xml"

// Lean OOXML structures for spreadsheet parts. Only what the tabular
// normalization path consumes is mapped.

type workbookXML struct {
	XMLName xml.Name  `xml:"workbook"`
	Sheets  sheetsXML `xml:"sheets"`
}

type sheetsXML struct {
	Sheet []sheetRefXML `xml:"sheet"`
}

type sheetRefXML struct {
	Name    string `xml:"name,attr"`
	SheetID string `xml:"sheetId,attr"`
	RID     string `xml:"id,attr"`
}

type worksheetXML struct {
	XMLName   xml.Name     `xml:"worksheet"`
	SheetData sheetDataXML `xml:"sheetData"`
}

type sheetDataXML struct {
	Rows []sheetRowXML `xml:"row"`
}

type sheetRowXML struct {
	R     int            `xml:"r,attr"` // 1-indexed row number
	Cells []sheetCellXML `xml:"c"`
}

type sheetCellXML struct {
	R  string        `xml:"r,attr"` // cell reference, e.g. "B3"
	T  string        `xml:"t,attr"` // s=shared string, n=number, b=bool, str/inlineStr
	V  string        `xml:"v"`
	Is *inlineStrXML `xml:"is"`
}

type inlineStrXML struct {
	T string `xml:"t"`
}

type sharedStringsXML struct {
	XMLName xml.Name `xml:"sst"`
	SI      []siXML  `xml:"si"`
}

type siXML struct {
	T string       `xml:"t"`
	R []richRunXML `xml:"r"`
}

type richRunXML struct {
	T string `xml:"t"`
}

type sheetRelationshipsXML struct {
	XMLName      xml.Name           `xml:"Relationships"`
	Relationship []sheetRelationXML `xml:"Relationship"`
}

type sheetRelationXML struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}
