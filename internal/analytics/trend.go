package analytics

import (
	"sort"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// monthKey formats a date as the YYYY-MM grouping key.
const monthKeyLayout = "2006-01"

// MonthlyTrend tracks total and criteria-meeting activity for one calendar
// month, in parallel, for trend visualization.
type MonthlyTrend struct {
	Month              string  `json:"month"`
	TotalComplaints    int     `json:"totalComplaints"`
	TotalUPB           float64 `json:"totalUpb"`
	CriteriaComplaints int     `json:"criteriaComplaints"`
	CriteriaUPB        float64 `json:"criteriaUpb"`
}

// MonthlyTrendSummary groups valid, non-duplicate records of any criteria
// status by calendar month, sorted chronologically.
func MonthlyTrendSummary(records []*models.ProcessedRecord) []MonthlyTrend {
	byMonth := make(map[string]*MonthlyTrend)

	for _, record := range records {
		if !usable(record) || record.ComplaintDate == nil {
			continue
		}

		month := record.ComplaintDate.Format(monthKeyLayout)

		entry, ok := byMonth[month]
		if !ok {
			entry = &MonthlyTrend{Month: month}
			byMonth[month] = entry
		}

		entry.TotalComplaints++
		entry.TotalUPB += record.UPBOrZero()

		if MeetsCriteria(record) {
			entry.CriteriaComplaints++
			entry.CriteriaUPB += record.UPBOrZero()
		}
	}

	trend := make([]MonthlyTrend, 0, len(byMonth))
	for _, entry := range byMonth {
		trend = append(trend, *entry)
	}

	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Month < trend[j].Month
	})

	return trend
}

// LenderMonth is one (lender, month) group of criteria-meeting activity.
type LenderMonth struct {
	Lender     string  `json:"lender"`
	Month      string  `json:"month"`
	Complaints int     `json:"complaints"`
	UPB        float64 `json:"upb"`
}

// MonthlyLenderData groups valid, non-duplicate, criteria-meeting records
// by (lender, month), sorted by lender then month.
func MonthlyLenderData(records []*models.ProcessedRecord) []LenderMonth {
	type key struct {
		lender string
		month  string
	}

	byPair := make(map[key]*LenderMonth)

	for _, record := range records {
		if !qualifying(record) || record.ComplaintDate == nil {
			continue
		}

		k := key{
			lender: record.NormalizedLender,
			month:  record.ComplaintDate.Format(monthKeyLayout),
		}

		entry, ok := byPair[k]
		if !ok {
			entry = &LenderMonth{Lender: k.lender, Month: k.month}
			byPair[k] = entry
		}

		entry.Complaints++
		entry.UPB += record.UPBOrZero()
	}

	data := make([]LenderMonth, 0, len(byPair))
	for _, entry := range byPair {
		data = append(data, *entry)
	}

	sort.Slice(data, func(i, j int) bool {
		if data[i].Lender != data[j].Lender {
			return data[i].Lender < data[j].Lender
		}

		return data[i].Month < data[j].Month
	})

	return data
}
