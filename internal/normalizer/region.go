package normalizer

import (
	"strings"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// countyRegions maps canonical county names to their region. Counties the
// feed has produced so far; unmapped counties fall through to
// models.RegionOther. Nassau and Suffolk are the New York counties, not
// the Florida panhandle ones — the feed has never carried the latter.
var countyRegions = map[string]models.Region{
	"Miami-Dade": models.RegionMiamiDade,

	"Broward":      models.RegionOtherFlorida,
	"Palm Beach":   models.RegionOtherFlorida,
	"Hillsborough": models.RegionOtherFlorida,
	"Orange":       models.RegionOtherFlorida,
	"Duval":        models.RegionOtherFlorida,
	"Pinellas":     models.RegionOtherFlorida,
	"Lee":          models.RegionOtherFlorida,
	"Collier":      models.RegionOtherFlorida,
	"Polk":         models.RegionOtherFlorida,
	"Brevard":      models.RegionOtherFlorida,
	"Volusia":      models.RegionOtherFlorida,
	"Pasco":        models.RegionOtherFlorida,
	"Sarasota":     models.RegionOtherFlorida,
	"Seminole":     models.RegionOtherFlorida,
	"Osceola":      models.RegionOtherFlorida,
	"Manatee":      models.RegionOtherFlorida,
	"Saint Lucie":  models.RegionOtherFlorida,
	"Saint Johns":  models.RegionOtherFlorida,
	"Martin":       models.RegionOtherFlorida,
	"Indian River": models.RegionOtherFlorida,
	"Charlotte":    models.RegionOtherFlorida,
	"Monroe":       models.RegionOtherFlorida,
	"Escambia":     models.RegionOtherFlorida,
	"Alachua":      models.RegionOtherFlorida,
	"Lake":         models.RegionOtherFlorida,
	"Marion":       models.RegionOtherFlorida,
	"Hernando":     models.RegionOtherFlorida,
	"Flagler":      models.RegionOtherFlorida,
	"Citrus":       models.RegionOtherFlorida,
	"Okaloosa":     models.RegionOtherFlorida,

	"New York":    models.RegionNewYork,
	"Kings":       models.RegionNewYork,
	"Queens":      models.RegionNewYork,
	"Bronx":       models.RegionNewYork,
	"Richmond":    models.RegionNewYork,
	"Nassau":      models.RegionNewYork,
	"Suffolk":     models.RegionNewYork,
	"Westchester": models.RegionNewYork,
	"Rockland":    models.RegionNewYork,
	"Erie":        models.RegionNewYork,
	"Albany":      models.RegionNewYork,
	"Dutchess":    models.RegionNewYork,
}

// RegionFromCounty maps a county value onto the fixed region set. The
// input is normalized first, then looked up exactly and, failing that, by a
// case-insensitive scan. Unmapped counties map to models.RegionOther.
func RegionFromCounty(county any) models.Region {
	name := County(county)

	if region, ok := countyRegions[name]; ok {
		return region
	}

	for mapped, region := range countyRegions {
		if strings.EqualFold(mapped, name) {
			return region
		}
	}

	return models.RegionOther
}

// OrderedRegions returns the named regions in display order. RegionOther
// is deliberately absent: region-level aggregates drop unmapped rows from
// their output entirely.
func OrderedRegions() []models.Region {
	return []models.Region{
		models.RegionMiamiDade,
		models.RegionOtherFlorida,
		models.RegionNewYork,
	}
}
