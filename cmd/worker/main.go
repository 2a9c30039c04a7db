// Package main provides the unified worker command that loads exported
// complaint rows, runs the data-quality pipeline, and writes the analytics
// and the signed quality report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/EnriqueColon/Collector-dashboard/internal/analytics"
	"github.com/EnriqueColon/Collector-dashboard/internal/config"
	"github.com/EnriqueColon/Collector-dashboard/internal/formatter"
	"github.com/EnriqueColon/Collector-dashboard/internal/ingest"
	"github.com/EnriqueColon/Collector-dashboard/internal/logger"
	"github.com/EnriqueColon/Collector-dashboard/internal/models"
	"github.com/EnriqueColon/Collector-dashboard/internal/quality"
	"github.com/EnriqueColon/Collector-dashboard/pkg/metadata"
)

func main() {
	// Environment first, so flags and config overrides can see it.
	_ = godotenv.Load()

	configFile := flag.String("config", "", "Path to YAML configuration file")
	inputPath := flag.String("input", "", "Export file to process (overrides config)")
	outputPath := flag.String("output", "", "Output directory (overrides config)")

	flag.Parse()

	cfg := loadConfig(*configFile)

	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}

	if *outputPath != "" {
		cfg.Output.BasePath = *outputPath
	}

	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	registry, err := cfg.BuildRegistry()
	if err != nil {
		log.Error("invalid normalization rules", "error", err)
		os.Exit(1)
	}

	log.Info("starting collector worker", "input", cfg.Input.Path)

	// Phase 1: ingestion.
	start := time.Now()
	fetcher := ingest.NewFileFetcher()

	rows, err := fetcher.FetchRows(context.Background(), cfg.Input.Path)
	if err != nil {
		log.Error("ingestion failed", "error", err)
		os.Exit(1)
	}

	log.Info("loaded rows", "count", len(rows), "elapsed", time.Since(start))

	// Phase 2: quality pipeline. Data-quality findings are never fatal;
	// they land in the report instead.
	pipeline := quality.NewPipeline(
		quality.WithValidator(quality.NewValidatorWithOptions(quality.ValidatorOptions{
			UPBWarnCeiling: cfg.Quality.UPBWarnCeiling,
			StaleYears:     cfg.Quality.StaleYears,
		})),
		quality.WithRegistry(registry),
		quality.WithLogger(log),
	)

	result := pipeline.Process(rows)

	// Phase 3: analytics.
	summaries := buildSummaries(result.Processed, cfg.Analytics.AllowedYears)

	// Phase 4: outputs.
	if err := writeOutputs(cfg, result, summaries); err != nil {
		log.Error("failed to write outputs", "error", err)
		os.Exit(1)
	}

	log.Info("worker complete",
		"validRows", result.Summary.ValidRows,
		"issues", len(result.Issues),
		"elapsed", time.Since(start))
}

func loadConfig(path string) *config.Config {
	if path == "" {
		if _, err := os.Stat("configs/collector.yaml"); err == nil {
			path = "configs/collector.yaml"
		}
	}

	if path == "" {
		return config.Default()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", path, err)
		os.Exit(1)
	}

	return cfg
}

// dashboardData is the analytics payload consumed by the rendering layer.
type dashboardData struct {
	FourWeekByCounty   []analytics.CountyFourWeek  `json:"fourWeekByCounty"`
	FourWeekWeekly     []analytics.CountyWeekly    `json:"fourWeekWeekly"`
	YTD                analytics.PeriodStats       `json:"ytd"`
	CurrentMonth       analytics.PeriodStats       `json:"currentMonth"`
	LenderAnalysis     []analytics.LenderPeriods   `json:"lenderAnalysis"`
	LenderSummary      []analytics.LenderTotals    `json:"lenderSummary"`
	MonthlyTrend       []analytics.MonthlyTrend    `json:"monthlyTrend"`
	MonthlyLenderData  []analytics.LenderMonth     `json:"monthlyLenderData"`
	RegionCurrentMonth []analytics.RegionStats     `json:"regionCurrentMonth"`
	RegionYTD          []analytics.RegionStats     `json:"regionYtd"`
	YearSummary        []analytics.YearStats       `json:"yearSummary"`
	RecentComplaints   []analytics.ComplaintView   `json:"recentComplaints"`
	LastSevenDays      []analytics.ComplaintView   `json:"lastSevenDays"`
	FlowThroughYTD     []analytics.FlowThroughDeal `json:"flowThroughYtd"`
	FlowThroughWeek    []analytics.FlowThroughDeal `json:"flowThroughWeek"`
}

func buildSummaries(records []*models.ProcessedRecord, allowedYears []int) *dashboardData {
	return &dashboardData{
		FourWeekByCounty:   analytics.FourWeekByCounty(records),
		FourWeekWeekly:     analytics.FourWeekWeekly(records),
		YTD:                analytics.YTDStats(records),
		CurrentMonth:       analytics.CurrentMonthStats(records),
		LenderAnalysis:     analytics.LenderAnalysis(records),
		LenderSummary:      analytics.LenderCriteriaSummary(records),
		MonthlyTrend:       analytics.MonthlyTrendSummary(records),
		MonthlyLenderData:  analytics.MonthlyLenderData(records),
		RegionCurrentMonth: analytics.RegionSummaryCurrentMonth(records),
		RegionYTD:          analytics.RegionSummaryYTD(records),
		YearSummary:        analytics.YearSummary(records, allowedYears),
		RecentComplaints:   analytics.RecentComplaints(records),
		LastSevenDays:      analytics.LastSevenDays(records),
		FlowThroughYTD:     analytics.FlowThroughYTD(records),
		FlowThroughWeek:    analytics.FlowThroughLastWeek(records),
	}
}

func writeOutputs(cfg *config.Config, result *models.PipelineResult, data *dashboardData) error {
	if err := os.MkdirAll(cfg.Output.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeJSON(cfg, "quality.json", struct {
		Summary models.QualitySummary     `json:"summary"`
		Issues  []models.DataQualityIssue `json:"issues"`
	}{result.Summary, result.Issues}); err != nil {
		return err
	}

	if err := writeJSON(cfg, "dashboard.json", data); err != nil {
		return err
	}

	report := formatter.QualityReport(result)
	report += formatter.RegionSection("Regions (YTD)", data.RegionYTD)
	report += formatter.LenderSection("Lenders (criteria-meeting)", data.LenderSummary)

	clean := len(result.Issues) == 0
	signed := metadata.Sign(report, clean, "")

	reportPath := filepath.Join(cfg.Output.BasePath, cfg.Output.ReportFile)
	if err := os.WriteFile(reportPath, []byte(signed+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func writeJSON(cfg *config.Config, name string, payload any) error {
	var (
		data []byte
		err  error
	)

	if cfg.Output.PrettyPrint {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(cfg.Output.BasePath, name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}
