package extractor_instances

import (
	"context"

	"github.com/polis-analysis/postmeta/extractor"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
)

// NewsExtractor is a declared stub. News and blog URLs classify correctly
// so the UI can say "coming soon" instead of "unsupported", but extraction
// always fails with the not-implemented kind and never touches the network.
type NewsExtractor struct{}

func (n NewsExtractor) Extract(ctx context.Context, wc *working_context.ExtractionContext) error {
	return extractor.NewError(extractor.KindNotImplemented, model.PlatformNews, wc.URL,
		"news and blog extraction is coming soon")
}
