package quality

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
	"github.com/EnriqueColon/Collector-dashboard/pkg/utils"
)

// fuzzyAddressLength is how much of the normalized address the most
// permissive key strategy keeps.
const fuzzyAddressLength = 20

// comparisonJunk strips everything but word characters and spaces when
// building comparison keys. This is a separate, simpler normalization from
// the county/lender canonicalization: it runs on top of those values and
// exists only so trivial formatting differences cannot defeat a match.
var comparisonJunk = regexp.MustCompile(`[^\w\s]`)

// DuplicateMatch is the detector's verdict for one record index.
type DuplicateMatch struct {
	IsDuplicate bool
	DuplicateOf *int
}

// duplicateKeys are the four comparison keys for one record, ordered from
// strictest to most permissive:
//
//  1. exact: address | county | lender | date | UPB
//  2. no-UPB: address | county | lender | date
//  3. address+date: address | date
//  4. fuzzy: first 20 chars of address | county | lender | date
//
// Exact matching alone misses near-duplicates from re-scraped listings with
// trivial formatting differences; the layered strategies trade a controlled
// false-positive rate for substantially better recall.
type duplicateKeys [4]string

// DetectDuplicates flags records that match an earlier record under any
// key strategy. Invalid records are exempt both ways: they never claim a
// key and are never flagged as duplicates. Strategies are checked in order
// and the first hit wins; a non-duplicate record then registers all four of
// its keys, first seen wins. Duplicate status can therefore cascade
// asymmetrically across strategies — only the lowest-index occurrence of a
// cluster is ever canonical, and that is deliberate.
func DetectDuplicates(records []*models.ProcessedRecord) map[int]DuplicateMatch {
	matches := make(map[int]DuplicateMatch, len(records))
	seen := make(map[string]int)

	for i, record := range records {
		if !record.IsValid {
			matches[i] = DuplicateMatch{}

			continue
		}

		keys := buildDuplicateKeys(record)

		if origin, found := lookupKeys(seen, keys); found {
			matches[i] = DuplicateMatch{IsDuplicate: true, DuplicateOf: &origin}

			continue
		}

		matches[i] = DuplicateMatch{}

		for _, key := range keys {
			if _, taken := seen[key]; !taken {
				seen[key] = i
			}
		}
	}

	return matches
}

func lookupKeys(seen map[string]int, keys duplicateKeys) (int, bool) {
	for _, key := range keys {
		if origin, found := seen[key]; found {
			return origin, true
		}
	}

	return 0, false
}

func buildDuplicateKeys(record *models.ProcessedRecord) duplicateKeys {
	address := comparisonValue(fieldString(record.Raw, models.FieldPropertyAddress))
	county := comparisonValue(record.NormalizedCounty)
	lender := comparisonValue(record.NormalizedLender)
	date := ""

	if record.ComplaintDate != nil {
		date = record.ComplaintDate.Format("2006-01-02")
	}

	upb := ""
	if record.UPB != nil {
		upb = strconv.FormatFloat(*record.UPB, 'f', -1, 64)
	}

	return duplicateKeys{
		strings.Join([]string{address, county, lender, date, upb}, "|"),
		strings.Join([]string{address, county, lender, date}, "|"),
		strings.Join([]string{address, date}, "|"),
		strings.Join([]string{utils.Prefix(address, fuzzyAddressLength), county, lender, date}, "|"),
	}
}

// comparisonValue lowercases, strips punctuation, and collapses whitespace
// for key construction.
func comparisonValue(value string) string {
	value = strings.ToLower(value)
	value = comparisonJunk.ReplaceAllString(value, "")

	return utils.CollapseWhitespace(value)
}
