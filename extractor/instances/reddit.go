package extractor_instances

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/polis-analysis/postmeta/extractor"
	"github.com/polis-analysis/postmeta/extractor/clients"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
	Logger "github.com/polis-analysis/postmeta/utils/log"
)

// Reddit blocks the default Go user agent; any descriptive UA works.
const redditUserAgent = "postmeta-metadata-tool/1.0"

type redditListing struct {
	Data struct {
		Children []struct {
			Data map[string]interface{} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditUserAbout struct {
	Data struct {
		Name       string `json:"name"`
		TotalKarma int64  `json:"total_karma"`
		LinkKarma  int64  `json:"link_karma"`
		Subreddit  struct {
			Subscribers       int64  `json:"subscribers"`
			PublicDescription string `json:"public_description"`
		} `json:"subreddit"`
	} `json:"data"`
}

// RedditApiExtractor reads the public JSON endpoint behind every post URL.
// No credentials needed. Field parity with Reddit's real API shape is
// best-effort; unknown fields ride along in the raw map untouched.
type RedditApiExtractor struct {
	// UserAboutBaseURL overrides the user profile endpoint in tests.
	UserAboutBaseURL string
}

func (r RedditApiExtractor) Extract(ctx context.Context, wc *working_context.ExtractionContext) error {
	header := http.Header{}
	header.Set("User-Agent", redditUserAgent)
	client := clients.NewHttpClient(header, nil)

	jsonUrl := redditJsonUrl(wc.URL)
	resp, err := client.Get(ctx, jsonUrl)
	if err != nil {
		if clients.IsTimeoutError(err) {
			return extractor.WrapError(extractor.KindTimeout, model.PlatformReddit, wc.URL, err)
		}
		return extractor.WrapError(extractor.KindParse, model.PlatformReddit, wc.URL, err)
	}
	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests:
		resp.Body.Close()
		e := extractor.NewError(extractor.KindRateLimit, model.PlatformReddit, wc.URL,
			"Reddit is rate limiting, wait a moment and try again")
		e.StatusCode = resp.StatusCode
		return e
	case http.StatusNotFound:
		resp.Body.Close()
		return extractor.NewError(extractor.KindNotFound, model.PlatformReddit, wc.URL,
			"post not found, URL may be invalid or the post was deleted")
	}
	if resp.StatusCode >= 300 {
		resp.Body.Close()
		e := extractor.NewError(extractor.KindParse, model.PlatformReddit, wc.URL,
			"unexpected upstream status %d", resp.StatusCode)
		e.StatusCode = resp.StatusCode
		return e
	}

	body, err := clients.ReadBody(resp)
	if err != nil {
		return extractor.WrapError(extractor.KindParse, model.PlatformReddit, wc.URL, err)
	}

	// Reddit returns [post listing, comments listing]; the post rides first.
	listings := []redditListing{}
	if err := json.Unmarshal([]byte(body), &listings); err != nil {
		return extractor.WrapError(extractor.KindParse, model.PlatformReddit, wc.URL, err)
	}
	if len(listings) == 0 || len(listings[0].Data.Children) == 0 {
		return extractor.NewError(extractor.KindParse, model.PlatformReddit, wc.URL,
			"unexpected Reddit JSON structure")
	}

	wc.RawPost = listings[0].Data.Children[0].Data
	r.updateRawAuthor(ctx, client, wc)
	return nil
}

// updateRawAuthor enriches the OP from the user's about endpoint. Failures
// degrade to a username-only author, never fail the extraction.
func (r RedditApiExtractor) updateRawAuthor(ctx context.Context, client *clients.HttpClient, wc *working_context.ExtractionContext) {
	username, _ := wc.RawPost["author"].(string)
	if username == "" || username == "[deleted]" {
		return
	}
	wc.RawAuthor["name"] = username

	base := r.UserAboutBaseURL
	if base == "" {
		base = "https://www.reddit.com"
	}
	resp, err := client.Get(ctx, fmt.Sprintf("%s/user/%s/about.json", base, username))
	if err != nil || resp.StatusCode >= 300 {
		if resp != nil {
			resp.Body.Close()
		}
		Logger.Log.Warnf("reddit: user %s about lookup failed, author stats left absent", username)
		return
	}
	body, err := clients.ReadBody(resp)
	if err != nil {
		return
	}
	about := redditUserAbout{}
	if err := json.Unmarshal([]byte(body), &about); err != nil {
		return
	}

	// Karma has no canonical slot but stays available in the raw map.
	wc.RawAuthor["total_karma"] = about.Data.TotalKarma
	wc.RawAuthor["link_karma"] = about.Data.LinkKarma
	wc.RawAuthor["subscribers"] = about.Data.Subreddit.Subscribers
	wc.RawAuthor["public_description"] = about.Data.Subreddit.PublicDescription
}

func redditJsonUrl(rawUrl string) string {
	clean := strings.TrimRight(strings.SplitN(rawUrl, "?", 2)[0], "/")
	return clean + ".json"
}
