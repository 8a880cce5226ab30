// Package extractor defines the common capability every platform adapter
// implements, plus the error taxonomy their failures collapse into.
package extractor

import (
	"context"

	"github.com/polis-analysis/postmeta/extractor/working_context"
)

// PostExtractor is the single capability shared by all platform adapters.
// An implementation fetches the post behind wc.URL (API call or page
// scrape) and fills wc.RawPost / wc.RawAuthor with whatever fields the
// upstream exposed.
//
// Contract:
//   - stateless: every call is independent, no state survives across calls
//   - no automatic retries; callers decide whether to retry
//   - every failure is wrapped into a taxonomy *Error, nothing lower-level
//     escapes the boundary
type PostExtractor interface {
	Extract(ctx context.Context, wc *working_context.ExtractionContext) error
}
