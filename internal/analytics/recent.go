package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// Trailing windows for the recent-activity lists, in calendar days.
const (
	recentWindowDays   = 15
	lastWeekWindowDays = 7
)

// ComplaintView is the display projection of one complaint.
type ComplaintView struct {
	PropertyAddress string    `json:"propertyAddress"`
	County          string    `json:"county"`
	Lender          string    `json:"lender"`
	UPB             float64   `json:"upb"`
	Date            time.Time `json:"date"`
}

// FlowThroughDeal is a criteria-meeting complaint tracked for conversion
// reporting. MeetsCriteria is always true: the lists are pre-filtered, and
// the tag makes that explicit for consumers.
type FlowThroughDeal struct {
	ComplaintView
	MeetsCriteria bool `json:"meetsCriteria"`
}

// RecentComplaints lists valid, non-duplicate, criteria-meeting records
// from the trailing 15 days, newest first.
func RecentComplaints(records []*models.ProcessedRecord) []ComplaintView {
	return recentComplaintsAt(records, time.Now(), recentWindowDays)
}

// LastSevenDays lists valid, non-duplicate, criteria-meeting records from
// the trailing 7 days, newest first.
func LastSevenDays(records []*models.ProcessedRecord) []ComplaintView {
	return recentComplaintsAt(records, time.Now(), lastWeekWindowDays)
}

func recentComplaintsAt(records []*models.ProcessedRecord, now time.Time, days int) []ComplaintView {
	cutoff := now.AddDate(0, 0, -days)
	views := make([]ComplaintView, 0)

	for _, record := range records {
		if !qualifying(record) {
			continue
		}

		if record.ComplaintDate == nil || record.ComplaintDate.Before(cutoff) {
			continue
		}

		views = append(views, projectComplaint(record))
	}

	sortByDateDescending(views)

	return views
}

// FlowThroughYTD lists criteria-meeting deals dated since the start of the
// calendar year, newest first.
func FlowThroughYTD(records []*models.ProcessedRecord) []FlowThroughDeal {
	now := time.Now()

	return flowThroughSince(records, startOfYear(now))
}

// FlowThroughLastWeek lists criteria-meeting deals from the trailing 7
// days, newest first.
func FlowThroughLastWeek(records []*models.ProcessedRecord) []FlowThroughDeal {
	now := time.Now()

	return flowThroughSince(records, now.AddDate(0, 0, -lastWeekWindowDays))
}

func flowThroughSince(records []*models.ProcessedRecord, start time.Time) []FlowThroughDeal {
	deals := make([]FlowThroughDeal, 0)

	for _, record := range records {
		if !qualifying(record) {
			continue
		}

		if record.ComplaintDate == nil || record.ComplaintDate.Before(start) {
			continue
		}

		deals = append(deals, FlowThroughDeal{
			ComplaintView: projectComplaint(record),
			MeetsCriteria: true,
		})
	}

	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].Date.After(deals[j].Date)
	})

	return deals
}

func projectComplaint(record *models.ProcessedRecord) ComplaintView {
	address, _ := record.Raw[models.FieldPropertyAddress].(string)

	return ComplaintView{
		PropertyAddress: strings.TrimSpace(address),
		County:          record.NormalizedCounty,
		Lender:          record.NormalizedLender,
		UPB:             record.UPBOrZero(),
		Date:            *record.ComplaintDate,
	}
}

func sortByDateDescending(views []ComplaintView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Date.After(views[j].Date)
	})
}
