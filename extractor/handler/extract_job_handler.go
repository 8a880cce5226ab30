package extractor_handler

import (
	"context"

	"github.com/polis-analysis/postmeta/classifier"
	"github.com/polis-analysis/postmeta/extractor"
	extractor_builder "github.com/polis-analysis/postmeta/extractor/builder"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
	"github.com/polis-analysis/postmeta/normalizer"
	Logger "github.com/polis-analysis/postmeta/utils/log"
)

// ExtractJobHandler runs one extraction request end to end: classify the
// URL, forward to the matching adapter, normalize the raw maps into the
// canonical record pair. One synchronous pass, no retries, no state kept
// across requests.
type ExtractJobHandler struct {
	Builder extractor_builder.ExtractorBuilder
}

func (h ExtractJobHandler) Extract(ctx context.Context, rawURL string, creds working_context.Credentials) (model.PostRecord, model.AuthorRecord, error) {
	platform := classifier.DetectPlatform(rawURL)
	if !platform.IsSupported() {
		return model.PostRecord{}, model.AuthorRecord{},
			extractor.NewError(extractor.KindUnsupportedPlatform, platform, rawURL,
				"no supported platform matches this URL")
	}

	wc := working_context.NewExtractionContext(rawURL, platform, creds)

	// ForPlatform covers every supported platform; nil only happens if the
	// classifier and builder fall out of sync.
	ext := h.Builder.ForPlatform(platform)
	if ext == nil {
		return model.PostRecord{}, model.AuthorRecord{},
			extractor.NewError(extractor.KindUnsupportedPlatform, platform, rawURL,
				"no adapter registered for platform %q", platform)
	}

	Logger.Log.Infof("extracting %s post from %s", platform, rawURL)
	if err := ext.Extract(ctx, wc); err != nil {
		Logger.Log.WithField("platform", platform).Errorf("extraction failed: %v", err)
		return model.PostRecord{}, model.AuthorRecord{}, err
	}

	post, author, err := normalizer.NormalizeContext(wc)
	if err != nil {
		Logger.Log.WithField("platform", platform).Errorf("normalization failed: %v", err)
		return model.PostRecord{}, model.AuthorRecord{}, err
	}
	return post, author, nil
}
