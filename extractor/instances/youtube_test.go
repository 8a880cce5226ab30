package extractor_instances

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polis-analysis/postmeta/extractor"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
)

const youtubeVideoFixture = `{
	"items": [{
		"id": "abc123def45",
		"snippet": {
			"publishedAt": "2023-08-15T10:30:00Z",
			"channelId": "UCchannel",
			"title": "A title",
			"description": "Great day! #sunshine #fun",
			"channelTitle": "Some Channel",
			"tags": ["travel", "vlog"]
		},
		"statistics": {"viewCount": "1500", "likeCount": "120", "commentCount": "30"}
	}]
}`

const youtubeChannelFixture = `{
	"items": [{
		"id": "UCchannel",
		"snippet": {"title": "Some Channel", "description": "A channel bio"},
		"statistics": {"subscriberCount": "50000", "hiddenSubscriberCount": false, "videoCount": "321"}
	}]
}`

func newYouTubeFixtureServer(t *testing.T, videoBody, channelBody string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		switch r.URL.Path {
		case "/videos":
			w.Write([]byte(videoBody))
		case "/channels":
			w.Write([]byte(channelBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestResolveYouTubeVideoId(t *testing.T) {
	cases := map[string]string{
		"https://youtu.be/abc123def45":                          "abc123def45",
		"https://www.youtube.com/watch?v=abc123def45":           "abc123def45",
		"https://www.youtube.com/watch?v=abc123def45&t=123s":    "abc123def45",
		"https://www.youtube.com/shorts/abc123def45":            "abc123def45",
		"https://www.youtube.com/embed/abc123def45":             "abc123def45",
		"https://www.youtube.com/live/abc123def45":              "abc123def45",
		"https://m.youtube.com/watch?v=abc123def45":             "abc123def45",
		"https://www.youtube.com/attribution_link?v=abc123def45": "abc123def45",
		"https://www.youtube.com/": "",
	}
	for url, expected := range cases {
		assert.Equal(t, expected, ResolveYouTubeVideoId(url), url)
	}
}

func TestYouTubeExtractorMissingKeyIsAuthError(t *testing.T) {
	ext := YouTubeApiExtractor{}
	wc := working_context.NewExtractionContext("https://youtu.be/abc123def45", model.PlatformYouTube, working_context.Credentials{})

	err := ext.Extract(context.Background(), wc)
	require.Error(t, err)
	assert.Equal(t, extractor.KindAuth, extractor.KindOf(err))
}

func TestYouTubeExtractorFillsRawMaps(t *testing.T) {
	ts := newYouTubeFixtureServer(t, youtubeVideoFixture, youtubeChannelFixture, http.StatusOK)
	defer ts.Close()

	ext := YouTubeApiExtractor{BaseURL: ts.URL}
	creds := working_context.Credentials{YouTubeAPIKey: "test-key"}
	wc := working_context.NewExtractionContext("https://youtu.be/abc123def45", model.PlatformYouTube, creds)

	require.NoError(t, ext.Extract(context.Background(), wc))

	assert.Equal(t, "abc123def45", wc.RawPost["id"])
	assert.Equal(t, "Great day! #sunshine #fun", wc.RawPost["description"])
	assert.Equal(t, "1500", wc.RawPost["viewCount"])
	assert.Equal(t, "Some Channel", wc.RawAuthor["channelTitle"])
	assert.Equal(t, "50000", wc.RawAuthor["subscriberCount"])
	assert.Equal(t, "321", wc.RawAuthor["videoCount"])
}

func TestYouTubeExtractorIsIdempotent(t *testing.T) {
	ts := newYouTubeFixtureServer(t, youtubeVideoFixture, youtubeChannelFixture, http.StatusOK)
	defer ts.Close()

	ext := YouTubeApiExtractor{BaseURL: ts.URL}
	creds := working_context.Credentials{YouTubeAPIKey: "test-key"}

	first := working_context.NewExtractionContext("https://youtu.be/abc123def45", model.PlatformYouTube, creds)
	second := working_context.NewExtractionContext("https://youtu.be/abc123def45", model.PlatformYouTube, creds)
	require.NoError(t, ext.Extract(context.Background(), first))
	require.NoError(t, ext.Extract(context.Background(), second))

	assert.Empty(t, cmp.Diff(first.RawPost, second.RawPost))
	assert.Empty(t, cmp.Diff(first.RawAuthor, second.RawAuthor))
}

func TestYouTubeExtractorVideoNotFound(t *testing.T) {
	ts := newYouTubeFixtureServer(t, `{"items": []}`, `{"items": []}`, http.StatusOK)
	defer ts.Close()

	ext := YouTubeApiExtractor{BaseURL: ts.URL}
	creds := working_context.Credentials{YouTubeAPIKey: "test-key"}
	wc := working_context.NewExtractionContext("https://youtu.be/gone0000000", model.PlatformYouTube, creds)

	err := ext.Extract(context.Background(), wc)
	require.Error(t, err)
	assert.Equal(t, extractor.KindNotFound, extractor.KindOf(err))
}

func TestYouTubeExtractorQuotaExhaustedIsRateLimit(t *testing.T) {
	body := `{"error": {"code": 403, "message": "quota exceeded", "errors": [{"reason": "quotaExceeded"}]}}`
	ts := newYouTubeFixtureServer(t, body, body, http.StatusForbidden)
	defer ts.Close()

	ext := YouTubeApiExtractor{BaseURL: ts.URL}
	creds := working_context.Credentials{YouTubeAPIKey: "test-key"}
	wc := working_context.NewExtractionContext("https://youtu.be/abc123def45", model.PlatformYouTube, creds)

	err := ext.Extract(context.Background(), wc)
	require.Error(t, err)
	assert.Equal(t, extractor.KindRateLimit, extractor.KindOf(err))
}

func TestYouTubeExtractorInvalidKeyIsAuthError(t *testing.T) {
	body := `{"error": {"code": 400, "message": "API key not valid", "errors": [{"reason": "keyInvalid"}]}}`
	ts := newYouTubeFixtureServer(t, body, body, http.StatusBadRequest)
	defer ts.Close()

	ext := YouTubeApiExtractor{BaseURL: ts.URL}
	creds := working_context.Credentials{YouTubeAPIKey: "bad-key"}
	wc := working_context.NewExtractionContext("https://youtu.be/abc123def45", model.PlatformYouTube, creds)

	err := ext.Extract(context.Background(), wc)
	require.Error(t, err)
	assert.Equal(t, extractor.KindAuth, extractor.KindOf(err))
}

func TestYouTubeExtractorUnresolvableUrl(t *testing.T) {
	ext := YouTubeApiExtractor{}
	creds := working_context.Credentials{YouTubeAPIKey: "test-key"}
	wc := working_context.NewExtractionContext("https://www.youtube.com/feed/library", model.PlatformYouTube, creds)

	err := ext.Extract(context.Background(), wc)
	require.Error(t, err)
	assert.Equal(t, extractor.KindNotFound, extractor.KindOf(err))
}
