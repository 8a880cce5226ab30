package extractor_instances

import (
	"context"
	"errors"
	"regexp"

	"github.com/polis-analysis/postmeta/extractor"
	"github.com/polis-analysis/postmeta/extractor/clients"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
	Logger "github.com/polis-analysis/postmeta/utils/log"
)

// All URL shapes that carry an 11-character video ID: standard watch pages,
// shorts, short links, embeds, mobile, live streams, attribution links.
var youtubeVideoIdPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/live/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`attribution_link.*?[?&]v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{11})`),
}

var youtubeRateLimitReasons = map[string]bool{
	"quotaExceeded":         true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"dailyLimitExceeded":    true,
}

// YouTubeApiExtractor talks to the official Data API v3. The API key comes
// from the request credentials; a missing key fails before any call goes
// out.
type YouTubeApiExtractor struct {
	// BaseURL overrides the API endpoint in tests. Empty means production.
	BaseURL string
}

func (y YouTubeApiExtractor) Extract(ctx context.Context, wc *working_context.ExtractionContext) error {
	apiKey := wc.Credentials.YouTubeAPIKey
	if apiKey == "" {
		return extractor.NewError(extractor.KindAuth, model.PlatformYouTube, wc.URL,
			"YouTube API key not configured")
	}

	videoId := ResolveYouTubeVideoId(wc.URL)
	if videoId == "" {
		return extractor.NewError(extractor.KindNotFound, model.PlatformYouTube, wc.URL,
			"could not resolve a video ID from the URL")
	}

	client := clients.NewYouTubeClient(apiKey)
	if y.BaseURL != "" {
		client.SetBaseURL(y.BaseURL)
	}

	res, err := client.GetVideo(ctx, videoId)
	if err != nil {
		return y.wrapApiError(wc.URL, err)
	}
	if len(res.Items) == 0 {
		return extractor.NewError(extractor.KindNotFound, model.PlatformYouTube, wc.URL,
			"video %s not found or is private", videoId)
	}

	video := res.Items[0]
	wc.RawPost["id"] = videoId
	wc.RawPost["title"] = video.Snippet.Title
	wc.RawPost["description"] = video.Snippet.Description
	wc.RawPost["publishedAt"] = video.Snippet.PublishedAt
	wc.RawPost["tags"] = video.Snippet.Tags
	wc.RawPost["viewCount"] = video.Statistics.ViewCount
	wc.RawPost["likeCount"] = video.Statistics.LikeCount
	wc.RawPost["commentCount"] = video.Statistics.CommentCount

	wc.RawAuthor["channelTitle"] = video.Snippet.ChannelTitle

	// Channel lookup only enriches the author record; its failure must not
	// fail the whole extraction.
	if video.Snippet.ChannelID != "" {
		channel, err := client.GetChannel(ctx, video.Snippet.ChannelID)
		if err != nil {
			Logger.Log.Warnf("youtube: channel %s lookup failed: %v", video.Snippet.ChannelID, err)
		} else if len(channel.Items) > 0 {
			item := channel.Items[0]
			wc.RawAuthor["channelDescription"] = item.Snippet.Description
			if !item.Statistics.HiddenSubscriberCount {
				wc.RawAuthor["subscriberCount"] = item.Statistics.SubscriberCount
			}
			wc.RawAuthor["videoCount"] = item.Statistics.VideoCount
		}
	}

	return nil
}

func (y YouTubeApiExtractor) wrapApiError(url string, err error) error {
	if clients.IsTimeoutError(err) {
		return extractor.WrapError(extractor.KindTimeout, model.PlatformYouTube, url, err)
	}

	var apiErr *clients.YouTubeApiError
	if errors.As(err, &apiErr) {
		e := extractor.WrapError(kindForYouTubeApiError(apiErr), model.PlatformYouTube, url, err)
		e.StatusCode = apiErr.StatusCode
		return e
	}
	return extractor.WrapError(extractor.KindParse, model.PlatformYouTube, url, err)
}

func kindForYouTubeApiError(apiErr *clients.YouTubeApiError) extractor.ErrorKind {
	switch {
	case youtubeRateLimitReasons[apiErr.Reason]:
		return extractor.KindRateLimit
	case apiErr.StatusCode == 400 || apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
		return extractor.KindAuth
	case apiErr.StatusCode == 404:
		return extractor.KindNotFound
	default:
		return extractor.KindParse
	}
}

// ResolveYouTubeVideoId extracts the video ID out of any supported YouTube
// URL shape, or returns "" when none matches.
func ResolveYouTubeVideoId(url string) string {
	for _, pattern := range youtubeVideoIdPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}
