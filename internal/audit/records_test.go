// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"os"
	"path/filepath"
	"testing"

	"policy-audit/internal/compare"
	"policy-audit/internal/document"
	"policy-audit/internal/tables"
)

func TestRecordsFromDocument(t *testing.T) {
	doc := &document.ParsedDocument{
		Path: "config.xlsx",
		Kind: "business_config",
		Tables: []document.Table{{
			Name:    "活动配置",
			Headers: []string{"activity_id", "max_amount", "target_users"},
			Rows: [][]string{
				{"activity_id", "max_amount", "target_users"},
				{"PROMO_A", "600", "全部用户"},
				{"PROMO_B", "300", "同上"},
			},
		}},
	}

	records := RecordsFromDocument(doc, tables.NewReconstructor())
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Name != "PROMO_A" {
		t.Errorf("expected record named from activity_id, got %q", first.Name)
	}
	if first.Source != "config.xlsx" {
		t.Errorf("unexpected source: %q", first.Source)
	}
	if got, ok := first.Record["max_amount"].(float64); !ok || got != 600 {
		t.Errorf("expected numeric cell typed as float64 600, got %v", first.Record["max_amount"])
	}
	if got := first.Record["target_users"]; got != "全部用户" {
		t.Errorf("expected string cell preserved, got %v", got)
	}

	// The continuation marker resolves before records are built.
	if got := records[1].Record["target_users"]; got != "全部用户" {
		t.Errorf("expected 同上 resolved, got %v", got)
	}
}

func TestLoadJSONRecords_SingleObject(t *testing.T) {
	path := writeTempJSON(t, `{"activity_id": "PROMO_A", "max_amount": 600}`)

	records, err := LoadJSONRecords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Name != "PROMO_A" {
		t.Errorf("unexpected name: %q", records[0].Name)
	}
	if got, ok := records[0].Record["max_amount"].(float64); !ok || got != 600 {
		t.Errorf("expected float64 600, got %v", records[0].Record["max_amount"])
	}
}

func TestLoadJSONRecords_Array(t *testing.T) {
	path := writeTempJSON(t, `[{"id": "a"}, {"id": "b"}]`)

	records, err := LoadJSONRecords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "a" || records[1].Name != "b" {
		t.Errorf("expected names from id field, got %q, %q", records[0].Name, records[1].Name)
	}
}

func TestLoadJSONRecords_Invalid(t *testing.T) {
	path := writeTempJSON(t, `not json`)
	if _, err := LoadJSONRecords(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestRecordName_Fallback(t *testing.T) {
	record := compare.ConfigRecord{"amount": float64(1)}
	if got := recordName(record, "表格", 2); got != "表格#3" {
		t.Errorf("expected positional fallback name, got %q", got)
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		record compare.ConfigRecord
		want   string
	}{
		{compare.ConfigRecord{"coupon": "x"}, KindCoupon},
		{compare.ConfigRecord{"优惠券": "x"}, KindCoupon},
		{compare.ConfigRecord{"promotion": "x"}, KindPromotion},
		{compare.ConfigRecord{"活动": "x"}, KindPromotion},
		{compare.ConfigRecord{"user": "x"}, KindUser},
		{compare.ConfigRecord{"price": float64(1)}, KindPrice},
		{compare.ConfigRecord{"something": "x"}, KindUnknown},
	}
	for _, tt := range tests {
		if got := detectKind(tt.record); got != tt.want {
			t.Errorf("%v: expected %s, got %s", tt.record, tt.want, got)
		}
	}
}

func TestDetectKind_CaseInsensitive(t *testing.T) {
	record := compare.ConfigRecord{"Coupon": "x"}
	if got := detectKind(record); got != KindCoupon {
		t.Errorf("expected coupon_config for mixed-case key, got %s", got)
	}
}

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}
