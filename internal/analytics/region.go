package analytics

import (
	"sort"
	"time"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
	"github.com/EnriqueColon/Collector-dashboard/internal/normalizer"
)

// RegionStats tracks total and criteria-meeting activity for one region.
type RegionStats struct {
	Region             models.Region `json:"region"`
	TotalComplaints    int           `json:"totalComplaints"`
	TotalUPB           float64       `json:"totalUpb"`
	CriteriaComplaints int           `json:"criteriaComplaints"`
	CriteriaUPB        float64       `json:"criteriaUpb"`
}

// RegionSummaryCurrentMonth groups valid, non-duplicate records from the
// current calendar month by region. Unmapped rows are dropped entirely,
// and regions with zero complaints are omitted from the output.
func RegionSummaryCurrentMonth(records []*models.ProcessedRecord) []RegionStats {
	now := time.Now()

	return regionSummarySince(records, startOfMonth(now))
}

// RegionSummaryYTD is the year-to-date variant of the region summary.
func RegionSummaryYTD(records []*models.ProcessedRecord) []RegionStats {
	now := time.Now()

	return regionSummarySince(records, startOfYear(now))
}

func regionSummarySince(records []*models.ProcessedRecord, start time.Time) []RegionStats {
	byRegion := make(map[models.Region]*RegionStats)

	for _, record := range records {
		if !usable(record) {
			continue
		}

		if record.ComplaintDate == nil || record.ComplaintDate.Before(start) {
			continue
		}

		region := normalizer.RegionFromCounty(record.NormalizedCounty)
		if region == models.RegionOther {
			continue
		}

		entry, ok := byRegion[region]
		if !ok {
			entry = &RegionStats{Region: region}
			byRegion[region] = entry
		}

		entry.TotalComplaints++
		entry.TotalUPB += record.UPBOrZero()

		if MeetsCriteria(record) {
			entry.CriteriaComplaints++
			entry.CriteriaUPB += record.UPBOrZero()
		}
	}

	summary := make([]RegionStats, 0, len(byRegion))

	for _, region := range normalizer.OrderedRegions() {
		if entry, ok := byRegion[region]; ok && entry.TotalComplaints > 0 {
			summary = append(summary, *entry)
		}
	}

	return summary
}

// YearStats tracks total and criteria-meeting activity for one calendar
// year.
type YearStats struct {
	Year               int     `json:"year"`
	TotalComplaints    int     `json:"totalComplaints"`
	TotalUPB           float64 `json:"totalUpb"`
	CriteriaComplaints int     `json:"criteriaComplaints"`
	CriteriaUPB        float64 `json:"criteriaUpb"`
}

// YearSummary groups valid, non-duplicate records by calendar year,
// restricted to the allowed-years set. Years with zero complaints are
// omitted; output is sorted ascending.
func YearSummary(records []*models.ProcessedRecord, allowedYears []int) []YearStats {
	allowed := make(map[int]bool, len(allowedYears))
	for _, year := range allowedYears {
		allowed[year] = true
	}

	byYear := make(map[int]*YearStats)

	for _, record := range records {
		if !usable(record) || record.ComplaintDate == nil {
			continue
		}

		year := record.ComplaintDate.Year()
		if !allowed[year] {
			continue
		}

		entry, ok := byYear[year]
		if !ok {
			entry = &YearStats{Year: year}
			byYear[year] = entry
		}

		entry.TotalComplaints++
		entry.TotalUPB += record.UPBOrZero()

		if MeetsCriteria(record) {
			entry.CriteriaComplaints++
			entry.CriteriaUPB += record.UPBOrZero()
		}
	}

	summary := make([]YearStats, 0, len(byYear))
	for _, entry := range byYear {
		summary = append(summary, *entry)
	}

	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Year < summary[j].Year
	})

	return summary
}
