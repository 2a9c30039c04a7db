// Package formatter renders the data-quality report as markdown with
// display-width-aligned tables.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/EnriqueColon/Collector-dashboard/internal/analytics"
	"github.com/EnriqueColon/Collector-dashboard/internal/models"
	"github.com/EnriqueColon/Collector-dashboard/pkg/utils"
)

// maxIssueWidth caps issue text in the report table so one noisy row does
// not stretch every column.
const maxIssueWidth = 80

// QualityReport renders the pipeline result as a markdown document:
// summary counts, then one table row per data-quality issue.
func QualityReport(result *models.PipelineResult) string {
	var sb strings.Builder

	sb.WriteString("# Data Quality Report\n\n")
	sb.WriteString("## Summary\n\n")

	summary := result.Summary
	sb.WriteString(Table(
		[]string{"Metric", "Count"},
		[][]string{
			{"Total rows", strconv.Itoa(summary.TotalRows)},
			{"Valid rows", strconv.Itoa(summary.ValidRows)},
			{"Invalid rows", strconv.Itoa(summary.InvalidRows)},
			{"Duplicate rows", strconv.Itoa(summary.DuplicateRows)},
			{"Rows with JSON errors", strconv.Itoa(summary.RowsWithJSONErrors)},
			{"Rows with other errors", strconv.Itoa(summary.RowsWithOtherErrors)},
		},
	))

	if len(result.Issues) == 0 {
		sb.WriteString("\nNo data-quality issues found.\n")

		return sb.String()
	}

	sb.WriteString("\n## Issues\n\n")

	rows := make([][]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		rows = append(rows, []string{
			strconv.Itoa(issue.RowIndex + 1),
			duplicateCell(issue),
			utils.Truncate(strings.Join(issue.Errors, "; "), maxIssueWidth),
		})
	}

	sb.WriteString(Table([]string{"Row", "Duplicate Of", "Issues"}, rows))

	return sb.String()
}

// RegionSection renders a region summary table, or an empty string when
// there is nothing to show.
func RegionSection(title string, summary []analytics.RegionStats) string {
	if len(summary) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(summary))
	for _, entry := range summary {
		rows = append(rows, []string{
			string(entry.Region),
			strconv.Itoa(entry.TotalComplaints),
			formatUPB(entry.TotalUPB),
			strconv.Itoa(entry.CriteriaComplaints),
			formatUPB(entry.CriteriaUPB),
		})
	}

	return fmt.Sprintf("\n## %s\n\n%s", title,
		Table([]string{"Region", "Complaints", "UPB", "Criteria", "Criteria UPB"}, rows))
}

// LenderSection renders a lender criteria-summary table, or an empty
// string when there is nothing to show.
func LenderSection(title string, summary []analytics.LenderTotals) string {
	if len(summary) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(summary))
	for _, entry := range summary {
		rows = append(rows, []string{
			entry.Lender,
			strconv.Itoa(entry.TotalComplaints),
			formatUPB(entry.TotalUPB),
		})
	}

	return fmt.Sprintf("\n## %s\n\n%s", title,
		Table([]string{"Lender", "Complaints", "UPB"}, rows))
}

func duplicateCell(issue models.DataQualityIssue) string {
	if !issue.IsDuplicate || issue.DuplicateOf == nil {
		return "-"
	}

	return strconv.Itoa(*issue.DuplicateOf + 1)
}

func formatUPB(upb float64) string {
	return fmt.Sprintf("$%.2f", upb)
}

// Table renders a markdown table with every column padded to the display
// width of its widest cell, so the source text stays readable even for
// wide runes.
func Table(headers []string, rows [][]string) string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)

	measure := func(cells []string) {
		for i, cell := range cells {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	measure(headers)

	for _, row := range rows {
		measure(row)
	}

	// Separator cells need room for at least "---".
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var sb strings.Builder

	writeRow := func(cells []string) {
		sb.WriteString("|")

		for i := 0; i < colCount; i++ {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}

			padding := widths[i] - runewidth.StringWidth(content)

			sb.WriteString(" ")
			sb.WriteString(content)
			sb.WriteString(strings.Repeat(" ", padding))
			sb.WriteString(" |")
		}

		sb.WriteString("\n")
	}

	writeRow(headers)

	sb.WriteString("|")

	for i := 0; i < colCount; i++ {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", widths[i]))
		sb.WriteString(" |")
	}

	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}
