package extractor_instances

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"

	"github.com/polis-analysis/postmeta/extractor"
	"github.com/polis-analysis/postmeta/extractor/clients"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
	Logger "github.com/polis-analysis/postmeta/utils/log"
)

// Markers Facebook renders on gated content. Their presence means the post
// needs an authenticated session to view.
var facebookGateMarkers = []string{
	"allow the use of cookies from facebook on this browser",
	"these cookies are required to use meta products",
	"you must log in to continue",
	"log in or sign up to view",
}

var (
	facebookPostIdPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/posts/(?:pfbid)?([\w]+)`),
		regexp.MustCompile(`[?&]story_fbid=(\d+)`),
		regexp.MustCompile(`[?&]fbid=(\d+)`),
		regexp.MustCompile(`/videos/(\d+)`),
		regexp.MustCompile(`/reel/(\d+)`),
		regexp.MustCompile(`fb\.watch/([\w-]+)`),
	}

	// Engagement counts live in JSON blobs embedded in the rendered page.
	facebookReactionRe = regexp.MustCompile(`"reaction_count"\s*:\s*\{\s*"count"\s*:\s*(\d+)`)
	facebookCommentRe  = regexp.MustCompile(`"comment_count"\s*:\s*\{\s*"total_count"\s*:\s*(\d+)`)
	facebookShareRe    = regexp.MustCompile(`"share_count"\s*:\s*\{\s*"count"\s*:\s*(\d+)`)
	facebookViewRe     = regexp.MustCompile(`"video_view_count"\s*:\s*(\d+)`)
	facebookActorRe    = regexp.MustCompile(`"actors"\s*:\s*\[\s*\{[^\]]*?"name"\s*:\s*"([^"]+)"`)
	facebookFollowerRe = regexp.MustCompile(`"follower_count"\s*:\s*(\d+)`)
	facebookEmbedIdRe  = regexp.MustCompile(`"post_id"\s*:\s*"(\d+)"`)
)

// FacebookCrawler scrapes the rendered post page. An optional session
// cookie string supplied by the caller unlocks gated content; it is used
// for this single visit only.
type FacebookCrawler struct{}

func (f FacebookCrawler) Extract(ctx context.Context, wc *working_context.ExtractionContext) error {
	c := colly.NewCollector(
		colly.UserAgent(clients.DesktopUserAgent),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(clients.DefaultRequestTimeout)

	cookies := clients.ParseCookieString(wc.Credentials.FacebookCookies)
	if len(cookies) > 0 {
		if err := c.SetCookies("https://www.facebook.com", cookies); err != nil {
			return extractor.WrapError(extractor.KindAuth, model.PlatformFacebook, wc.URL, err)
		}
	}

	var (
		pageHTML   string
		statusCode int
		visitErr   error
	)
	c.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		pageHTML = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			statusCode = r.StatusCode
			pageHTML = string(r.Body)
		}
		visitErr = err
	})

	if err := c.Visit(wc.URL); err != nil && visitErr == nil {
		visitErr = err
	}
	c.Wait()

	if visitErr != nil && pageHTML == "" {
		if clients.IsTimeoutError(visitErr) {
			return extractor.WrapError(extractor.KindTimeout, model.PlatformFacebook, wc.URL, visitErr)
		}
		e := extractor.WrapError(extractor.KindParse, model.PlatformFacebook, wc.URL, visitErr)
		e.StatusCode = statusCode
		return e
	}

	if isFacebookGated(pageHTML) {
		if len(cookies) == 0 {
			return extractor.NewError(extractor.KindAuthRequired, model.PlatformFacebook, wc.URL,
				"post requires a logged-in session and no cookie string was supplied")
		}
		return extractor.NewError(extractor.KindAuthRequired, model.PlatformFacebook, wc.URL,
			"post is still gated with the supplied session cookies")
	}
	if statusCode == http.StatusNotFound {
		return extractor.NewError(extractor.KindNotFound, model.PlatformFacebook, wc.URL, "post page returned 404")
	}

	return f.updateRawFromPage(wc, pageHTML)
}

func (f FacebookCrawler) updateRawFromPage(wc *working_context.ExtractionContext, pageHTML string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return extractor.WrapError(extractor.KindParse, model.PlatformFacebook, wc.URL, err)
	}

	ogTitle := metaContent(doc, "og:title")
	ogDescription := metaContent(doc, "og:description")
	if ogTitle == "" && ogDescription == "" {
		return extractor.NewError(extractor.KindParse, model.PlatformFacebook, wc.URL,
			"page has none of the expected og: markers, structure likely changed")
	}

	postId := facebookPostId(wc.URL, pageHTML)
	if postId == "" {
		Logger.Log.Warnf("facebook: no post id resolved from %s, keeping og markers only", wc.URL)
	} else {
		wc.RawPost["post_id"] = postId
	}

	if ogDescription != "" {
		wc.RawPost["message"] = ogDescription
	} else {
		wc.RawPost["message"] = ogTitle
	}

	if m := facebookReactionRe.FindStringSubmatch(pageHTML); m != nil {
		wc.RawPost["reaction_count"] = m[1]
	}
	if m := facebookCommentRe.FindStringSubmatch(pageHTML); m != nil {
		wc.RawPost["comment_count"] = m[1]
	}
	if m := facebookShareRe.FindStringSubmatch(pageHTML); m != nil {
		wc.RawPost["share_count"] = m[1]
	}
	if m := facebookViewRe.FindStringSubmatch(pageHTML); m != nil {
		wc.RawPost["video_view_count"] = m[1]
	}

	if m := facebookActorRe.FindStringSubmatch(pageHTML); m != nil {
		wc.RawAuthor["name"] = m[1]
	} else if ogTitle != "" {
		// og:title leads with the page/profile name
		wc.RawAuthor["name"] = strings.TrimSpace(strings.SplitN(ogTitle, " - ", 2)[0])
	}
	if m := facebookFollowerRe.FindStringSubmatch(pageHTML); m != nil {
		wc.RawAuthor["follower_count"] = m[1]
	}

	return nil
}

func isFacebookGated(pageHTML string) bool {
	lower := strings.ToLower(pageHTML)
	for _, marker := range facebookGateMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func facebookPostId(url, pageHTML string) string {
	for _, pattern := range facebookPostIdPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	if m := facebookEmbedIdRe.FindStringSubmatch(pageHTML); m != nil {
		return m[1]
	}
	return ""
}

func metaContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).Attr("content")
	return strings.TrimSpace(content)
}
