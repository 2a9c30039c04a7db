package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// ErrEmptyExport is returned when an export file contains no rows at all.
var ErrEmptyExport = errors.New("export contains no rows")

// FileFetcher reads rows from a JSON array export (.json) or a line-
// delimited export (.jsonl). Truncated or lightly mangled array exports
// get one repair attempt before the load fails: spreadsheet exports are
// cut off mid-write often enough that giving up on the first parse error
// would block whole refresh cycles.
type FileFetcher struct{}

// NewFileFetcher creates a file-backed fetcher.
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// FetchRows loads every row from the export file at source.
func (f *FileFetcher) FetchRows(ctx context.Context, source string) ([]models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(source), ".jsonl") {
		return f.loadLines(source)
	}

	return f.loadArray(source)
}

func (f *FileFetcher) loadArray(path string) ([]models.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}

	var rows []models.RawRecord

	if err := json.Unmarshal(data, &rows); err != nil {
		repaired, repairErr := jsonrepair.RepairJSON(string(data))
		if repairErr != nil {
			return nil, fmt.Errorf("failed to parse export %s: %w", path, err)
		}

		if retryErr := json.Unmarshal([]byte(repaired), &rows); retryErr != nil {
			return nil, fmt.Errorf("failed to parse export %s after repair: %w", path, err)
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyExport, path)
	}

	return rows, nil
}

func (f *FileFetcher) loadLines(path string) ([]models.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	defer file.Close()

	var rows []models.RawRecord

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var row models.RawRecord
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, fmt.Errorf("failed to parse export %s line %d: %w", path, lineNo, err)
		}

		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyExport, path)
	}

	return rows, nil
}
