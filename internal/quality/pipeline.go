package quality

import (
	"fmt"
	"strings"

	"github.com/EnriqueColon/Collector-dashboard/internal/logger"
	"github.com/EnriqueColon/Collector-dashboard/internal/models"
	"github.com/EnriqueColon/Collector-dashboard/internal/normalizer"
)

// rowValidator validates one raw row. Satisfied by *Validator; swappable in
// tests.
type rowValidator interface {
	ValidateRow(raw models.RawRecord, index int) *models.ProcessedRecord
}

// Pipeline orchestrates the quality checks over a batch of raw rows:
// validate every row, normalize county and lender names, detect
// duplicates, and assemble the issue report and summary.
type Pipeline struct {
	validator rowValidator
	registry  *normalizer.Registry
	log       *logger.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithValidator replaces the default field validator.
func WithValidator(v rowValidator) Option {
	return func(p *Pipeline) { p.validator = v }
}

// WithRegistry installs a normalization registry carrying extra
// consolidation rules.
func WithRegistry(registry *normalizer.Registry) Option {
	return func(p *Pipeline) { p.registry = registry }
}

// WithLogger attaches a logger for batch progress.
func WithLogger(log *logger.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// NewPipeline creates a pipeline with default components.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		validator: NewValidator(),
		registry:  normalizer.NewRegistry(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process runs the full quality pipeline over the batch. It never fails on
// data-quality problems: every finding lands in the returned issues and
// summary, and an unexpected failure while validating one row becomes a
// synthetic error on that row alone. Re-running on the same input produces
// identical output.
func (p *Pipeline) Process(rows []models.RawRecord) *models.PipelineResult {
	result := &models.PipelineResult{
		Processed: make([]*models.ProcessedRecord, 0, len(rows)),
	}

	// Pass 1: validate every row, counting JSON-error rows separately from
	// other-error rows. The two counts never overlap; JSON wins.
	for i, row := range rows {
		record := p.validateRow(row, i)
		result.Processed = append(result.Processed, record)

		if record.IsValid {
			continue
		}

		if hasJSONError(record.Errors) {
			result.Summary.RowsWithJSONErrors++
		} else {
			result.Summary.RowsWithOtherErrors++
		}
	}

	// Pass 2: normalize names for every record. This must complete before
	// duplicate detection starts, because duplicate keys are built from the
	// canonical names.
	for _, record := range result.Processed {
		record.NormalizedCounty = p.registry.County(record.Raw[models.FieldCounty])

		lender, _ := record.Raw.Lender()
		record.NormalizedLender = p.registry.Lender(lender)
	}

	// Pass 3: duplicate detection over the normalized set.
	matches := DetectDuplicates(result.Processed)

	for i, record := range result.Processed {
		match := matches[i]
		if !match.IsDuplicate {
			continue
		}

		record.IsDuplicate = true
		// Row numbers in messages are 1-based.
		record.DuplicateNote = fmt.Sprintf("Duplicate row (matches row %d)", *match.DuplicateOf+1)
	}

	// Pass 4: assemble issues in row order and the summary counts.
	for i, record := range result.Processed {
		issues := record.DisplayIssues()
		if len(issues) > 0 || record.IsDuplicate {
			result.Issues = append(result.Issues, models.DataQualityIssue{
				RowIndex:    i,
				Row:         record.Raw,
				Errors:      issues,
				IsDuplicate: record.IsDuplicate,
				DuplicateOf: matches[i].DuplicateOf,
			})
		}

		result.Summary.TotalRows++

		if record.IsDuplicate {
			result.Summary.DuplicateRows++
		}

		if record.IsValid && !record.IsDuplicate {
			result.Summary.ValidRows++
		}
	}

	result.Summary.InvalidRows = result.Summary.TotalRows - result.Summary.ValidRows

	if p.log != nil {
		p.log.Info("quality pipeline complete",
			"totalRows", result.Summary.TotalRows,
			"validRows", result.Summary.ValidRows,
			"duplicateRows", result.Summary.DuplicateRows,
			"issues", len(result.Issues))
	}

	return result
}

// validateRow guards each row validation with panic recovery: one
// malformed row never blocks processing of the rest of the batch.
func (p *Pipeline) validateRow(row models.RawRecord, index int) (record *models.ProcessedRecord) {
	defer func() {
		if r := recover(); r != nil {
			record = &models.ProcessedRecord{
				Raw:     row,
				Index:   index,
				IsValid: false,
				Errors:  []string{fmt.Sprintf("Unexpected validation failure: %v", r)},
			}

			if p.log != nil {
				p.log.Error("row validation panicked", "row", index, "cause", r)
			}
		}
	}()

	return p.validator.ValidateRow(row, index)
}

// hasJSONError reports whether any error mentions JSON, case-insensitively.
func hasJSONError(errs []string) bool {
	for _, err := range errs {
		if strings.Contains(strings.ToLower(err), "json") {
			return true
		}
	}

	return false
}
