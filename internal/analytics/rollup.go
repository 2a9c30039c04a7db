package analytics

import (
	"sort"
	"time"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// fourWeekWindow is the trailing window for the four-week roll-ups.
const fourWeekWindow = 28 * 24 * time.Hour

// CountyFourWeek is one county's totals over the trailing four weeks.
// Total counts cover every dated record in the window, valid or not, for
// transparency; the criteria figures cover only the valid, non-duplicate,
// criteria-meeting subset.
type CountyFourWeek struct {
	County             string  `json:"county"`
	TotalComplaints    int     `json:"totalComplaints"`
	TotalUPB           float64 `json:"totalUpb"`
	CriteriaComplaints int     `json:"criteriaComplaints"`
	CriteriaUPB        float64 `json:"criteriaUpb"`
}

// FourWeekByCounty rolls the trailing 28 days up by county, sorted
// alphabetically.
func FourWeekByCounty(records []*models.ProcessedRecord) []CountyFourWeek {
	return fourWeekByCountyAt(records, time.Now())
}

func fourWeekByCountyAt(records []*models.ProcessedRecord, now time.Time) []CountyFourWeek {
	cutoff := now.Add(-fourWeekWindow)
	byCounty := make(map[string]*CountyFourWeek)

	for _, record := range records {
		if record.ComplaintDate == nil || record.ComplaintDate.Before(cutoff) {
			continue
		}

		county := record.NormalizedCounty

		entry, ok := byCounty[county]
		if !ok {
			entry = &CountyFourWeek{County: county}
			byCounty[county] = entry
		}

		entry.TotalComplaints++
		entry.TotalUPB += record.UPBOrZero()

		if qualifying(record) {
			entry.CriteriaComplaints++
			entry.CriteriaUPB += record.UPBOrZero()
		}
	}

	return sortedCounties(byCounty)
}

func sortedCounties(byCounty map[string]*CountyFourWeek) []CountyFourWeek {
	rollup := make([]CountyFourWeek, 0, len(byCounty))
	for _, entry := range byCounty {
		rollup = append(rollup, *entry)
	}

	sort.Slice(rollup, func(i, j int) bool {
		return rollup[i].County < rollup[j].County
	})

	return rollup
}

// WeekBucket is one week's complaint count and UPB sum.
type WeekBucket struct {
	Complaints int     `json:"complaints"`
	UPB        float64 `json:"upb"`
}

// CountyWeekly is one county's four-week breakdown: week 1 is the last 7
// days, week 4 is 22-28 days ago.
type CountyWeekly struct {
	County string        `json:"county"`
	Weeks  [4]WeekBucket `json:"weeks"`
	Total  WeekBucket    `json:"total"`
}

// FourWeekWeekly buckets valid, non-duplicate, criteria-meeting records
// from the trailing 28 days into rolling 7-day weeks per county.
func FourWeekWeekly(records []*models.ProcessedRecord) []CountyWeekly {
	return fourWeekWeeklyAt(records, time.Now())
}

func fourWeekWeeklyAt(records []*models.ProcessedRecord, now time.Time) []CountyWeekly {
	cutoff := now.Add(-fourWeekWindow)
	byCounty := make(map[string]*CountyWeekly)

	for _, record := range records {
		if !qualifying(record) {
			continue
		}

		if record.ComplaintDate == nil || record.ComplaintDate.Before(cutoff) {
			continue
		}

		county := record.NormalizedCounty

		entry, ok := byCounty[county]
		if !ok {
			entry = &CountyWeekly{County: county}
			byCounty[county] = entry
		}

		week := weekIndex(*record.ComplaintDate, now)

		entry.Weeks[week].Complaints++
		entry.Weeks[week].UPB += record.UPBOrZero()
		entry.Total.Complaints++
		entry.Total.UPB += record.UPBOrZero()
	}

	weekly := make([]CountyWeekly, 0, len(byCounty))
	for _, entry := range byCounty {
		weekly = append(weekly, *entry)
	}

	sort.Slice(weekly, func(i, j int) bool {
		return weekly[i].County < weekly[j].County
	})

	return weekly
}

// weekIndex maps a date inside the 28-day window to its rolling 7-day
// bucket: 0 for the last 7 days through 3 for 22-28 days ago.
func weekIndex(date, now time.Time) int {
	for week := 0; week < 3; week++ {
		boundary := now.Add(-time.Duration(week+1) * 7 * 24 * time.Hour)
		if date.After(boundary) {
			return week
		}
	}

	return 3
}
