package working_context

import (
	"time"

	"github.com/polis-analysis/postmeta/model"
)

// Credentials are scoped to a single extraction request. They are passed in
// explicitly and never stored in process-wide state, so concurrent sessions
// cannot observe each other's secrets.
type Credentials struct {
	// YouTube Data API key. Empty means the YouTube adapter fails with an
	// auth error instead of calling out.
	YouTubeAPIKey string
	// Raw Facebook session cookie string, "key1=val1; key2=val2".
	FacebookCookies string
}

// RawPost and RawAuthor are the untyped field maps an adapter produces.
// Whatever keys the upstream API or page happened to expose are carried
// through as-is; the normalizer owns the mapping to the canonical schema.
type RawPost map[string]interface{}
type RawAuthor map[string]interface{}

// ExtractionContext is carried across all steps of one extraction: the
// adapter fills RawPost/RawAuthor, the normalizer reads them. One context
// per request, never shared.
type ExtractionContext struct {
	URL         string
	Platform    model.Platform
	Credentials Credentials
	StartedAt   time.Time

	RawPost   RawPost
	RawAuthor RawAuthor
}

func NewExtractionContext(url string, platform model.Platform, creds Credentials) *ExtractionContext {
	return &ExtractionContext{
		URL:         url,
		Platform:    platform,
		Credentials: creds,
		StartedAt:   time.Now(),
		RawPost:     RawPost{},
		RawAuthor:   RawAuthor{},
	}
}
