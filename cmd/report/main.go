// Package main provides the report command-line tool for verifying and
// re-signing generated report files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/EnriqueColon/Collector-dashboard/pkg/metadata"
)

func main() {
	inputPath := flag.String("input", "", "Path to report file (e.g., out/quality-report.md)")
	resign := flag.Bool("resign", false, "Re-sign the report after verification")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: report -input <path> [-resign]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	contentBytes, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Error reading file: %v\n", err)
	}

	content := string(contentBytes)
	fmt.Printf("📂 Reading: %s (%d bytes)\n", *inputPath, len(content))

	meta, clean := metadata.Extract(content)
	if meta == nil {
		if !*resign {
			log.Fatalf("❌ No metadata block found in %s\n", *inputPath)
		}
		fmt.Println("⚠️  No metadata block found. Signing fresh.")
	} else {
		fmt.Printf("🔍 Run ID: %s\n", meta.RunID)
		fmt.Printf("🔍 Generated: %s\n", meta.GeneratedAt)

		valid, verr := metadata.Verify(content)
		if verr != nil {
			log.Fatalf("❌ Verification error: %v\n", verr)
		}
		if !valid {
			fmt.Println("❌ Hash mismatch: report content was modified after signing.")
			if !*resign {
				os.Exit(1)
			}
		} else {
			fmt.Println("✅ Signature Verified")
		}
	}

	if *resign {
		fmt.Println("✍️  Signing report...")
		wasClean := true
		runID := ""
		if meta != nil {
			wasClean = meta.Clean
			runID = meta.RunID
		}
		signed := metadata.Sign(clean, wasClean, runID)

		if err := os.WriteFile(*inputPath, []byte(signed), 0o644); err != nil {
			log.Fatalf("Error writing file: %v\n", err)
		}
		fmt.Printf("✅ Signed and saved to: %s\n", *inputPath)
	}
}
