// Package ingest loads raw complaint rows from an exported snapshot file.
// The HTTP proxy that produces those exports lives outside this service;
// the pipeline only ever sees an injected Fetcher.
package ingest

import (
	"context"

	"github.com/EnriqueColon/Collector-dashboard/internal/models"
)

// Fetcher retrieves the raw rows for one source. Implementations own any
// transport or credential concerns; the pipeline treats the handle as
// injected and never resolves one globally.
type Fetcher interface {
	FetchRows(ctx context.Context, source string) ([]models.RawRecord, error)
}
