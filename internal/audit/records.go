// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"policy-audit/internal/compare"
	"policy-audit/internal/document"
	"policy-audit/internal/tables"
)

// Config kinds assigned by field-name inspection.
const (
	KindCoupon    = "coupon_config"
	KindPromotion = "promotion_config"
	KindUser      = "user_config"
	KindPrice     = "price_config"
	KindUnknown   = "unknown_config"
)

// NamedRecord is one business-configuration entity with its provenance.
type NamedRecord struct {
	Name   string               `json:"name"`
	Source string               `json:"source,omitempty"`
	Kind   string               `json:"config_type"`
	Record compare.ConfigRecord `json:"config_data"`
}

// idFields are tried in order when naming a record after one of its own
// values.
var idFields = []string{"activity_id", "配置ID", "id", "ID", "编号"}

// RecordsFromDocument reconstructs the document's tables and flattens
// every data row into a typed ConfigRecord. Numeric-looking cell values
// are converted to float64 so the comparator sees numbers.
func RecordsFromDocument(doc *document.ParsedDocument, recon *tables.Reconstructor) []NamedRecord {
	var out []NamedRecord
	for _, t := range recon.Reconstruct(doc.Tables) {
		for i, row := range tables.Records(t) {
			record := make(compare.ConfigRecord, len(row))
			for field, value := range row {
				record[field] = typedCell(value)
			}
			out = append(out, NamedRecord{
				Name:   recordName(record, t.Name, i),
				Source: doc.Path,
				Kind:   detectKind(record),
				Record: record,
			})
		}
	}
	return out
}

// LoadJSONRecords reads a JSON configuration file holding either a
// single object or an array of objects. JSON numbers arrive as float64,
// which is the comparator's native numeric type.
func LoadJSONRecords(path string) ([]NamedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var records []map[string]any
	var single map[string]any
	if err := json.Unmarshal(data, &single); err == nil {
		records = append(records, single)
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	out := make([]NamedRecord, 0, len(records))
	for i, m := range records {
		record := compare.ConfigRecord(m)
		out = append(out, NamedRecord{
			Name:   recordName(record, "config", i),
			Source: path,
			Kind:   detectKind(record),
			Record: record,
		})
	}
	return out, nil
}

// typedCell converts a trimmed cell string to float64 when it parses as
// a plain number, otherwise keeps the string.
func typedCell(value string) any {
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}

func recordName(record compare.ConfigRecord, tableName string, row int) string {
	for _, field := range idFields {
		if v, ok := record[field]; ok {
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("%s#%d", tableName, row+1)
}

// kindMarkers map field names to config kinds, checked in order.
var kindMarkers = []struct {
	fields []string
	kind   string
}{
	{[]string{"优惠券", "coupon", "折扣"}, KindCoupon},
	{[]string{"促销", "promotion", "活动"}, KindPromotion},
	{[]string{"用户", "user", "客户"}, KindUser},
	{[]string{"金额", "amount", "价格", "price"}, KindPrice},
}

func detectKind(record compare.ConfigRecord) string {
	keys := make(map[string]bool, len(record))
	for k := range record {
		keys[strings.ToLower(k)] = true
	}
	for _, marker := range kindMarkers {
		for _, f := range marker.fields {
			if keys[f] {
				return marker.kind
			}
		}
	}
	return KindUnknown
}
