package analytics

import (
	"sort"
	"time"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// PeriodTotals is a complaint count and UPB sum for one window.
type PeriodTotals struct {
	Complaints int     `json:"complaints"`
	UPB        float64 `json:"upb"`
}

// LenderPeriods splits one lender's criteria-meeting activity into YTD and
// current-month sub-totals.
type LenderPeriods struct {
	Lender       string       `json:"lender"`
	YTD          PeriodTotals `json:"ytd"`
	CurrentMonth PeriodTotals `json:"currentMonth"`
}

// LenderAnalysis groups valid, non-duplicate, criteria-meeting records by
// normalized lender with YTD and current-month sub-totals, sorted by
// lender name.
func LenderAnalysis(records []*models.ProcessedRecord) []LenderPeriods {
	return lenderAnalysisAt(records, time.Now())
}

func lenderAnalysisAt(records []*models.ProcessedRecord, now time.Time) []LenderPeriods {
	yearStart := startOfYear(now)
	monthStart := startOfMonth(now)
	byLender := make(map[string]*LenderPeriods)

	for _, record := range records {
		if !qualifying(record) || record.ComplaintDate == nil {
			continue
		}

		date := *record.ComplaintDate
		if date.Before(yearStart) {
			continue
		}

		entry, ok := byLender[record.NormalizedLender]
		if !ok {
			entry = &LenderPeriods{Lender: record.NormalizedLender}
			byLender[record.NormalizedLender] = entry
		}

		entry.YTD.Complaints++
		entry.YTD.UPB += record.UPBOrZero()

		if !date.Before(monthStart) {
			entry.CurrentMonth.Complaints++
			entry.CurrentMonth.UPB += record.UPBOrZero()
		}
	}

	analysis := make([]LenderPeriods, 0, len(byLender))
	for _, entry := range byLender {
		analysis = append(analysis, *entry)
	}

	sort.Slice(analysis, func(i, j int) bool {
		return analysis[i].Lender < analysis[j].Lender
	})

	return analysis
}

// LenderTotals is one lender's flat criteria-meeting totals.
type LenderTotals struct {
	Lender          string  `json:"lender"`
	TotalComplaints int     `json:"totalComplaints"`
	TotalUPB        float64 `json:"totalUpb"`
}

// LenderCriteriaSummary produces flat per-lender totals over all valid,
// non-duplicate, criteria-meeting records regardless of date, sorted by
// lender name.
func LenderCriteriaSummary(records []*models.ProcessedRecord) []LenderTotals {
	byLender := make(map[string]*LenderTotals)

	for _, record := range records {
		if !qualifying(record) {
			continue
		}

		entry, ok := byLender[record.NormalizedLender]
		if !ok {
			entry = &LenderTotals{Lender: record.NormalizedLender}
			byLender[record.NormalizedLender] = entry
		}

		entry.TotalComplaints++
		entry.TotalUPB += record.UPBOrZero()
	}

	summary := make([]LenderTotals, 0, len(byLender))
	for _, entry := range byLender {
		summary = append(summary, *entry)
	}

	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Lender < summary[j].Lender
	})

	return summary
}
