// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package audit orchestrates the full pipeline: normalize documents,
// reconstruct tables, extract rules, and judge every rule against every
// configuration record.
package audit

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"policy-audit/internal/compare"
	"policy-audit/internal/document"
	"policy-audit/internal/reason"
	"policy-audit/internal/rules"
	"policy-audit/internal/tables"
)

// DefaultWorkers is the pool size used when the caller does not set one.
const DefaultWorkers = 4

// Options configure an Auditor. Zero values select the defaults.
type Options struct {
	Workers         int
	Vocabulary      *rules.Vocabulary
	Lexicon         *compare.Lexicon
	MergeIndicators []string
}

// Auditor wires the pipeline stages together. Safe for reuse across
// runs; all stages are stateless.
type Auditor struct {
	normalizer    *document.Normalizer
	reconstructor *tables.Reconstructor
	extractor     *rules.Extractor
	comparator    *compare.Comparator
	engine        *reason.Engine
	workers       int
}

// Report is the outcome of one audit run.
type Report struct {
	GeneratedAt    time.Time   `json:"audit_time"`
	PolicyFiles    []string    `json:"policy_files,omitempty"`
	ConfigFiles    []string    `json:"config_files,omitempty"`
	RulesExtracted int         `json:"rules_extracted"`
	RecordCount    int         `json:"record_count"`
	TotalChecks    int         `json:"total_checks"`
	Violations     []Violation `json:"violations"`
	Summary        Summary     `json:"summary"`
}

// New creates an Auditor from the given options.
func New(opts Options) *Auditor {
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	vocab := rules.DefaultVocabulary()
	if opts.Vocabulary != nil {
		vocab = *opts.Vocabulary
	}
	lex := compare.DefaultLexicon()
	if opts.Lexicon != nil {
		lex = *opts.Lexicon
	}
	reconstructor := tables.NewReconstructor()
	if len(opts.MergeIndicators) > 0 {
		reconstructor = tables.NewReconstructorWithIndicators(opts.MergeIndicators)
	}
	return &Auditor{
		normalizer:    document.NewNormalizer(),
		reconstructor: reconstructor,
		extractor:     rules.NewExtractorWithVocabulary(vocab),
		comparator:    compare.NewComparatorWithLexicon(lex),
		engine:        reason.NewEngineWithLexicon(lex),
		workers:       workers,
	}
}

// Run audits the configuration files against the policy files and
// returns the full report.
func (a *Auditor) Run(ctx context.Context, policyPaths, configPaths []string) (*Report, error) {
	extracted, err := a.ExtractFromFiles(policyPaths)
	if err != nil {
		return nil, err
	}

	var records []NamedRecord
	for _, path := range configPaths {
		recs, err := a.RecordsFromFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	violations := a.Check(ctx, extracted, records)

	report := &Report{
		GeneratedAt:    time.Now(),
		PolicyFiles:    policyPaths,
		ConfigFiles:    configPaths,
		RulesExtracted: len(extracted),
		RecordCount:    len(records),
		TotalChecks:    len(extracted) * len(records),
		Violations:     violations,
	}
	report.Summary = Summarize(violations)
	return report, nil
}

// QuickAudit runs the pipeline over in-memory policy text and a single
// record, the demo and ad-hoc entry point.
func (a *Auditor) QuickAudit(ctx context.Context, policyText string, record compare.ConfigRecord) *Report {
	extracted := a.extractor.Extract(policyText)
	records := []NamedRecord{{
		Name:   recordName(record, "config", 0),
		Kind:   detectKind(record),
		Record: record,
	}}
	violations := a.Check(ctx, extracted, records)

	report := &Report{
		GeneratedAt:    time.Now(),
		RulesExtracted: len(extracted),
		RecordCount:    1,
		TotalChecks:    len(extracted),
		Violations:     violations,
	}
	report.Summary = Summarize(violations)
	return report
}

// ExtractFromFiles normalizes each policy document and mines rules from
// its prose and table content.
func (a *Auditor) ExtractFromFiles(paths []string) ([]rules.ExtractedRule, error) {
	var parts []rules.SectionText
	for _, path := range paths {
		doc, err := a.normalizer.Normalize(path)
		if err != nil {
			return nil, fmt.Errorf("normalizing %s: %w", path, err)
		}
		parts = append(parts, policyParts(doc, a.reconstructor)...)
	}
	return a.extractor.ExtractSections(parts), nil
}

// RecordsFromFile loads configuration records from a tabular document or
// a JSON file.
func (a *Auditor) RecordsFromFile(path string) ([]NamedRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSONRecords(path)
	}
	doc, err := a.normalizer.Normalize(path)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", path, err)
	}
	return RecordsFromDocument(doc, a.reconstructor), nil
}

// Check evaluates the full rule×record product and returns the
// violations in deterministic submission order with sequential IDs.
func (a *Auditor) Check(ctx context.Context, extracted []rules.ExtractedRule, records []NamedRecord) []Violation {
	total := len(extracted) * len(records)
	if total == 0 {
		return nil
	}

	pool := newCheckPool(a.workers, a.comparator, a.engine)
	pool.start(ctx)

	go func() {
		index := 0
		for _, rule := range extracted {
			for _, record := range records {
				pool.submit(ctx, checkJob{index: index, rule: rule, record: record})
				index++
			}
		}
		pool.close()
	}()

	results := make([]checkResult, 0, total)
	for result := range pool.results {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	var violations []Violation
	for _, r := range results {
		if !r.verdict.IsViolation {
			continue
		}
		violations = append(violations, Violation{
			ID:              fmt.Sprintf("VIO_%d", len(violations)+1),
			Title:           violationTitle(r.rule),
			RiskLevel:       r.verdict.RiskLevel,
			Description:     r.verdict.Description,
			PolicyReference: r.rule.SourceText,
			RecordName:      r.record.Name,
			ConfigValue:     r.record.Record,
			Comparison:      r.comparison,
			Confidence:      r.verdict.Confidence,
		})
	}
	return violations
}

// policyParts turns a parsed document into ordered section chunks: prose
// grouped by heading, then each reconstructed table rendered as text.
func policyParts(doc *document.ParsedDocument, recon *tables.Reconstructor) []rules.SectionText {
	var parts []rules.SectionText
	var current rules.SectionText
	for _, block := range doc.Content {
		if block.Section != current.Section {
			if current.Text != "" {
				parts = append(parts, current)
			}
			current = rules.SectionText{Section: block.Section}
		}
		if current.Text != "" {
			current.Text += "\n"
		}
		current.Text += block.Text
	}
	if current.Text != "" {
		parts = append(parts, current)
	}
	for _, t := range recon.Reconstruct(doc.Tables) {
		parts = append(parts, rules.SectionText{Section: t.Name, Text: t.Markdown()})
	}
	return parts
}
