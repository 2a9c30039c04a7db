package models

// Region is a coarse geographic grouping of counties.
type Region string

// The fixed region set. RegionOther collects unmapped counties and is
// always excluded from region-level aggregate output.
const (
	RegionMiamiDade    Region = "Miami-Dade"
	RegionOtherFlorida Region = "Other Florida"
	RegionNewYork      Region = "New York"
	RegionOther        Region = "Other/Unmapped"
)
