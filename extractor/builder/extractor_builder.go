package extractor_builder

import (
	"github.com/polis-analysis/postmeta/extractor"
	extractor_instances "github.com/polis-analysis/postmeta/extractor/instances"
	"github.com/polis-analysis/postmeta/model"
)

// ExtractorBuilder hands out adapter instances. All adapters are stateless
// values; the builder exists so the handler enforces the PostExtractor
// capability on every instance in one place.
type ExtractorBuilder struct{}

func (ExtractorBuilder) NewYouTubeApiExtractor() extractor.PostExtractor {
	return &extractor_instances.YouTubeApiExtractor{}
}

func (ExtractorBuilder) NewFacebookCrawler() extractor.PostExtractor {
	return &extractor_instances.FacebookCrawler{}
}

func (ExtractorBuilder) NewTikTokCrawler() extractor.PostExtractor {
	return &extractor_instances.TikTokCrawler{}
}

func (ExtractorBuilder) NewRedditApiExtractor() extractor.PostExtractor {
	return &extractor_instances.RedditApiExtractor{}
}

func (ExtractorBuilder) NewNewsExtractor() extractor.PostExtractor {
	return &extractor_instances.NewsExtractor{}
}

// ForPlatform returns the adapter handling the given platform, or nil when
// the platform is unknown.
func (b ExtractorBuilder) ForPlatform(p model.Platform) extractor.PostExtractor {
	switch p {
	case model.PlatformYouTube:
		return b.NewYouTubeApiExtractor()
	case model.PlatformFacebook:
		return b.NewFacebookCrawler()
	case model.PlatformTikTok:
		return b.NewTikTokCrawler()
	case model.PlatformReddit:
		return b.NewRedditApiExtractor()
	case model.PlatformNews:
		return b.NewNewsExtractor()
	default:
		return nil
	}
}
