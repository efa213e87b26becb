// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"policy-audit/internal/audit"
	"policy-audit/internal/compare"
	"policy-audit/internal/config"
	"policy-audit/internal/document"
	"policy-audit/internal/reason"
	"policy-audit/internal/version"

	"policy-audit/internal/formatters"
	_ "policy-audit/internal/formatters/csv"
	_ "policy-audit/internal/formatters/json"
	_ "policy-audit/internal/formatters/markdown"
	_ "policy-audit/internal/formatters/text"
)

// demoPolicy mirrors a typical marketing-policy document for the demo
// run.
const demoPolicy = `营销活动管理规定

一、优惠券发放规则
1. 单张优惠券金额不得超过500元
2. 优惠券发放对象仅限新注册用户
3. 每位用户每月领取次数不超过3次
4. 优惠券有效期不得少于7天，不得超过30天

二、促销活动限制
1. 单次促销活动总预算不得超过100万元
2. 促销范围仅限线上渠道
3. 禁止与其它优惠活动叠加使用

三、用户权益保护
1. 活动规则必须明确告知用户
2. 不得设置隐性消费门槛
3. 退款时优惠券应当返还`

// demoConfig is a deliberately non-compliant business configuration.
func demoConfig() compare.ConfigRecord {
	return compare.ConfigRecord{
		"activity_id":   "PROMO_2024_001",
		"activity_name": "春节促销活动",
		"coupon_config": map[string]any{
			"max_amount":    float64(600),
			"target_users":  "全部用户",
			"monthly_limit": float64(5),
			"validity_days": float64(60),
		},
		"budget": map[string]any{
			"total_budget": float64(1500000),
			"used_budget":  float64(800000),
		},
		"scope":     []any{"线上", "线下门店"},
		"stackable": true,
	}
}

// cliFlags holds command line flag values
type cliFlags struct {
	policyFiles string
	configFiles string
	format      string
	riskLevels  string
	outputFile  string
	workers     int
	verbose     bool
	noColor     bool
	failOnHigh  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	policyFiles := flag.String("policy", "", "Comma-separated paths to policy documents (docx, pdf, txt)")
	configFiles := flag.String("config", "", "Comma-separated paths to business configuration files (xlsx, csv, json)")
	configFile := flag.String("config-file", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	outputFormat := flag.String("format", "", "Output format: text, json, csv, markdown (default: text)")
	riskLevels := flag.String("risk-levels", "", "Risk levels to display: 高, 中, 低, or combinations like '高,中' (default: all)")
	verbose := flag.Bool("verbose", false, "Display detailed information for each violation")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	workers := flag.Int("workers", 0, "Number of parallel audit workers (default: 4)")
	failOnHigh := flag.Bool("fail-on-high", false, "Exit with a non-zero status when high-risk violations are found")
	demoMode := flag.Bool("demo", false, "Run a demonstration audit with built-in sample data")
	parseFile := flag.String("parse", "", "Parse a single document and print its structure")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return 0
	}

	cfg := loadConfiguration(*configFile)

	if *listProfiles {
		printProfiles(cfg)
		return 0
	}

	if *profileName != "" {
		if err := cfg.ApplyProfile(*profileName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	flags := cliFlags{
		policyFiles: *policyFiles,
		configFiles: *configFiles,
		format:      *outputFormat,
		riskLevels:  *riskLevels,
		outputFile:  *outputFile,
		workers:     *workers,
		verbose:     *verbose,
		noColor:     *noColor,
		failOnHigh:  *failOnHigh,
	}
	resolved := resolveConfiguration(flags, cfg)

	if resolved.noColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	if *parseFile != "" {
		return parseSingleDocument(*parseFile)
	}

	vocab := cfg.Vocabulary()
	lex := cfg.Lexicon()
	auditor := audit.New(audit.Options{
		Workers:         resolved.workers,
		Vocabulary:      &vocab,
		Lexicon:         &lex,
		MergeIndicators: cfg.Extraction.MergeIndicators,
	})

	ctx := context.Background()

	var report *audit.Report
	switch {
	case *demoMode:
		report = auditor.QuickAudit(ctx, demoPolicy, demoConfig())
	case resolved.policyFiles != nil && resolved.configFiles != nil:
		var err error
		report, err = auditor.Run(ctx, resolved.policyFiles, resolved.configFiles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	default:
		flag.Usage()
		return 2
	}

	options := formatters.FormatterOptions{
		RiskLevels: resolved.riskLevelSet,
		Verbose:    resolved.verbose,
		NoColor:    resolved.noColor,
	}
	output, err := formatters.Export(resolved.format, report, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := writeOutput(output, resolved.outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if resolved.failOnHigh && report.Summary.HighRiskCount > 0 {
		return 1
	}
	return 0
}

// resolvedConfiguration holds final settings after merging flags over
// the config file.
type resolvedConfiguration struct {
	policyFiles  []string
	configFiles  []string
	format       string
	riskLevelSet map[string]bool
	outputFile   string
	workers      int
	verbose      bool
	noColor      bool
	failOnHigh   bool
}

func resolveConfiguration(flags cliFlags, cfg *config.Config) resolvedConfiguration {
	resolved := resolvedConfiguration{
		policyFiles: splitPaths(flags.policyFiles),
		configFiles: splitPaths(flags.configFiles),
		format:      cfg.Defaults.Format,
		outputFile:  flags.outputFile,
		workers:     cfg.Defaults.Workers,
		verbose:     flags.verbose || cfg.Defaults.Verbose,
		noColor:     flags.noColor || cfg.Defaults.NoColor,
		failOnHigh:  flags.failOnHigh,
	}
	if flags.format != "" {
		resolved.format = flags.format
	}
	if flags.workers > 0 {
		resolved.workers = flags.workers
	}
	levels := flags.riskLevels
	if levels == "" {
		levels = cfg.Defaults.RiskLevels
	}
	resolved.riskLevelSet = parseRiskLevels(levels)
	if resolved.outputFile == "" && cfg.Defaults.OutputDir != "" {
		resolved.outputFile = filepath.Join(cfg.Defaults.OutputDir, "audit_report"+extensionFor(resolved.format))
	}
	return resolved
}

// parseRiskLevels converts a selector string into a level set. English
// aliases map onto the Chinese grades; "all" or empty selects all.
func parseRiskLevels(selector string) map[string]bool {
	selector = strings.TrimSpace(selector)
	if selector == "" || strings.EqualFold(selector, "all") {
		return nil
	}
	aliases := map[string]reason.RiskLevel{
		"高": reason.RiskHigh, "high": reason.RiskHigh,
		"中": reason.RiskMedium, "medium": reason.RiskMedium,
		"低": reason.RiskLow, "low": reason.RiskLow,
	}
	set := make(map[string]bool)
	for _, part := range strings.Split(selector, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if level, ok := aliases[part]; ok {
			set[string(level)] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

func splitPaths(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var paths []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			paths = append(paths, part)
		}
	}
	return paths
}

func extensionFor(format string) string {
	if f, ok := formatters.Get(format); ok {
		return f.FileExtension()
	}
	return ".txt"
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

func printProfiles(cfg *config.Config) {
	fmt.Println("Available profiles:")
	for _, name := range cfg.GetProfileNames() {
		profile := cfg.Profiles[name]
		if profile.Description != "" {
			fmt.Printf("  %s - %s\n", name, profile.Description)
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}

// parseSingleDocument normalizes one file and prints its structure
// without running an audit.
func parseSingleDocument(path string) int {
	normalizer := document.NewNormalizer()
	doc, err := normalizer.Normalize(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("文档类型: %s\n", doc.Kind)
	if doc.Metadata.Title != "" {
		fmt.Printf("标题: %s\n", doc.Metadata.Title)
	}
	fmt.Printf("段落数: %d, 表格数: %d\n", doc.Metadata.ParagraphCount, doc.Metadata.TableCount)

	if len(doc.Sections) > 0 {
		fmt.Println("\n文档结构:")
		for i, section := range doc.Sections {
			if i >= 10 {
				fmt.Printf("  ... 还有 %d 个章节\n", len(doc.Sections)-i)
				break
			}
			fmt.Printf("  %s%s\n", strings.Repeat("  ", section.Level-1), section.Title)
		}
	}

	for _, t := range doc.Tables {
		fmt.Printf("\n表格 %s: %d 行 × %d 列\n", t.Name, t.RowCount(), t.ColCount())
	}
	return 0
}

func writeOutput(output, path string) error {
	if path == "" {
		fmt.Println(output)
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	return nil
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
