// Package main provides the seed command-line tool for writing a
// deterministic sample complaint export used in demos and tests.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

func main() {
	outputPath := flag.String("output", "data/complaints.json", "Path to write the sample export")
	flag.Parse()

	rows := sampleRows(time.Now().UTC())

	payload, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		log.Fatalf("Error encoding sample export: %v\n", err)
	}

	if dir := filepath.Dir(*outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Error creating output directory: %v\n", err)
		}
	}

	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		log.Fatalf("Error writing sample export: %v\n", err)
	}

	fmt.Printf("✅ Wrote %d sample rows to %s\n", len(rows), *outputPath)
}

// sampleRows builds a fixed set of complaint rows anchored to now so the
// recent-activity windows always have something in them. It mixes clean rows
// with the failure shapes the pipeline is expected to flag: duplicate pairs,
// malformed embedded JSON, unparseable dates, and junk UPB values.
func sampleRows(now time.Time) []map[string]any {
	day := func(offset int) string {
		return now.AddDate(0, 0, -offset).Format("2006-01-02")
	}

	return []map[string]any{
		{
			"propertyAddress": "123 Main St",
			"county":          "Miami-Dade",
			"lender":          "Wells Fargo Bank, N.A.",
			"upb":             "250000.00",
			"complaintDate":   day(2),
			"meetsCriteria":   "Meets criteria",
		},
		{
			// Duplicate of the row above once punctuation is stripped.
			"propertyAddress": "123 Main St.",
			"county":          "miami dade",
			"lender":          "WELLS FARGO BANK NA",
			"upb":             "250000",
			"complaintDate":   day(2),
			"meetsCriteria":   "Meets criteria",
		},
		{
			"propertyAddress": "456 Ocean Dr, Unit 12",
			"county":          "Broward County, FL",
			"plaintiff":       "JPMorgan Chase Bank, National Association",
			"upb":             "$1,125,000.50",
			"complaintDate":   day(6),
			"meetsCriteria":   "Meets criteria",
		},
		{
			"propertyAddress": "789 Flatbush Ave",
			"county":          "Kings",
			"lender":          "ABC Mortgage Company Inc.",
			"upb":             "310500",
			"complaintDate":   day(12),
			"meetsCriteria":   "Does not meet criteria",
		},
		{
			"propertyAddress": "15 Court Street",
			"county":          "New York City",
			"lender":          "The Bank of New York Mellon",
			"upb":             "98000.25",
			"complaintDate":   day(20),
			"meetsCriteria":   "Meets criteria",
			"metadata":        `{"caseNumber": "2024-CA-001", "division": "11"}`,
		},
		{
			// Embedded JSON missing its closing brace; repairable.
			"propertyAddress": "22 Biscayne Blvd",
			"county":          "Miami Dade",
			"lender":          "US Bank National Association",
			"upb":             "455000",
			"complaintDate":   day(25),
			"meetsCriteria":   "Meets criteria",
			"metadata":        `{"caseNumber": "2024-CA-002"`,
		},
		{
			// Embedded JSON with an unterminated string; unrepairable.
			"propertyAddress": "901 Collins Ave",
			"county":          "Miami-Dade",
			"lender":          "Deutsche Bank National Trust Co",
			"upb":             "780000",
			"complaintDate":   day(27),
			"metadata":        `{"incomplete": "json`,
		},
		{
			"propertyAddress": "31 Hillside Rd",
			"county":          "Westchester County",
			"lender":          "M&T Bank Corp",
			"upb":             "not-a-number",
			"complaintDate":   day(40),
			"meetsCriteria":   "Meets criteria",
		},
		{
			"propertyAddress": "8 Pine Ln",
			"county":          "Palm Beach",
			"lender":          "Lakeview Loan Servicing LLC",
			"upb":             "0",
			"complaintDate":   "02/30/2024",
			"meetsCriteria":   "Does not meet criteria",
		},
		{
			"propertyAddress": "",
			"county":          "Hillsborough",
			"lender":          "Rocket Mortgage LLC",
			"upb":             "125000",
			"complaintDate":   day(45),
		},
		{
			"propertyAddress": "640 St Johns Pl",
			"county":          "st lucie",
			"plaintiff":       "Wilmington Savings Fund Society FSB",
			"upb":             "212750.75",
			"complaintDate":   day(60),
			"meetsCriteria":   "Meets criteria",
		},
		{
			"propertyAddress": "640 St. Johns Pl",
			"county":          "St. Lucie County",
			"plaintiff":       "Wilmington Savings Fund Society, FSB",
			"complaintDate":   day(60),
			"meetsCriteria":   "Meets criteria",
		},
	}
}
