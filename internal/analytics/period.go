package analytics

import (
	"time"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// PeriodStats are the simple counters for a calendar window.
type PeriodStats struct {
	TotalComplaints    int     `json:"totalComplaints"`
	CriteriaComplaints int     `json:"criteriaComplaints"`
	CriteriaUPB        float64 `json:"criteriaUpb"`
}

// YTDStats counts valid, non-duplicate records dated since the start of
// the calendar year, with criteria-meeting sub-counts.
func YTDStats(records []*models.ProcessedRecord) PeriodStats {
	now := time.Now()

	return periodStatsSince(records, startOfYear(now))
}

// CurrentMonthStats counts valid, non-duplicate records dated since the
// start of the calendar month.
func CurrentMonthStats(records []*models.ProcessedRecord) PeriodStats {
	now := time.Now()

	return periodStatsSince(records, startOfMonth(now))
}

func periodStatsSince(records []*models.ProcessedRecord, start time.Time) PeriodStats {
	var stats PeriodStats

	for _, record := range records {
		if !usable(record) {
			continue
		}

		if record.ComplaintDate == nil || record.ComplaintDate.Before(start) {
			continue
		}

		stats.TotalComplaints++

		if MeetsCriteria(record) {
			stats.CriteriaComplaints++
			stats.CriteriaUPB += record.UPBOrZero()
		}
	}

	return stats
}

func startOfYear(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
