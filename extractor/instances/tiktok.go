package extractor_instances

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/polis-analysis/postmeta/extractor"
	"github.com/polis-analysis/postmeta/extractor/clients"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
	Logger "github.com/polis-analysis/postmeta/utils/log"
)

var (
	tiktokVideoUrlRe = regexp.MustCompile(`tiktok\.com/@[\w.-]+/video/(\d+)`)
	tiktokShortUrlRe = regexp.MustCompile(`v[mt]\.tiktok\.com/([A-Za-z0-9]+)`)
	tiktokSigiRe     = regexp.MustCompile(`(?s)<script[^>]*>window\['SIGI_STATE'\]\s*=\s*(\{.+?\});?</script>`)
)

var tiktokGateMarkers = []string{
	"log in to tiktok",
	"verify to confirm",
	"tiktok-verify-page",
}

// Shape of the rehydration JSON the TikTok web app embeds into the page.
// Only the paths the adapter reads are declared.
type tiktokItemStruct struct {
	ID         string `json:"id"`
	Desc       string `json:"desc"`
	CreateTime int64  `json:"createTime"`
	Author     struct {
		UniqueID  string `json:"uniqueId"`
		Signature string `json:"signature"`
	} `json:"author"`
	Stats struct {
		PlayCount    int64 `json:"playCount"`
		DiggCount    int64 `json:"diggCount"`
		CommentCount int64 `json:"commentCount"`
		ShareCount   int64 `json:"shareCount"`
	} `json:"stats"`
	AuthorStats struct {
		FollowerCount  int64 `json:"followerCount"`
		FollowingCount int64 `json:"followingCount"`
		VideoCount     int64 `json:"videoCount"`
	} `json:"authorStats"`
}

type tiktokUniversalData struct {
	DefaultScope struct {
		VideoDetail struct {
			ItemInfo struct {
				ItemStruct *tiktokItemStruct `json:"itemStruct"`
			} `json:"itemInfo"`
		} `json:"webapp.video-detail"`
	} `json:"__DEFAULT_SCOPE__"`
}

// TikTokCrawler scrapes the post page and reads the web app's embedded
// rehydration JSON, falling back to the legacy SIGI_STATE blob.
type TikTokCrawler struct{}

func (t TikTokCrawler) Extract(ctx context.Context, wc *working_context.ExtractionContext) error {
	if !tiktokVideoUrlRe.MatchString(wc.URL) && !tiktokShortUrlRe.MatchString(wc.URL) {
		return extractor.NewError(extractor.KindNotFound, model.PlatformTikTok, wc.URL,
			"URL does not look like a TikTok post")
	}

	client := clients.NewBrowserLikeHttpClient(nil)
	resp, err := client.Get(ctx, wc.URL)
	if err != nil {
		if clients.IsTimeoutError(err) {
			return extractor.WrapError(extractor.KindTimeout, model.PlatformTikTok, wc.URL, err)
		}
		return extractor.WrapError(extractor.KindParse, model.PlatformTikTok, wc.URL, err)
	}
	if resp.StatusCode == 404 {
		resp.Body.Close()
		return extractor.NewError(extractor.KindNotFound, model.PlatformTikTok, wc.URL, "post page returned 404")
	}
	if resp.StatusCode == 429 {
		resp.Body.Close()
		e := extractor.NewError(extractor.KindRateLimit, model.PlatformTikTok, wc.URL, "TikTok is throttling requests")
		e.StatusCode = resp.StatusCode
		return e
	}

	// Other non-200s (age gates, geo blocks) can still carry the embedded
	// JSON, so log and keep parsing.
	clients.MaybeLogNon200HttpError(resp)

	pageHTML, err := clients.ReadBody(resp)
	if err != nil {
		return extractor.WrapError(extractor.KindParse, model.PlatformTikTok, wc.URL, err)
	}

	item := t.itemFromUniversalData(pageHTML)
	if item == nil {
		item = t.itemFromSigiState(pageHTML)
	}
	if item == nil || item.ID == "" {
		if isTikTokGated(pageHTML) {
			return extractor.NewError(extractor.KindAuthRequired, model.PlatformTikTok, wc.URL,
				"post is behind a login or verification wall")
		}
		return extractor.NewError(extractor.KindParse, model.PlatformTikTok, wc.URL,
			"no rehydration data found in page, structure likely changed")
	}

	wc.RawPost["id"] = item.ID
	wc.RawPost["desc"] = item.Desc
	wc.RawPost["createTime"] = item.CreateTime
	wc.RawPost["playCount"] = item.Stats.PlayCount
	wc.RawPost["diggCount"] = item.Stats.DiggCount
	wc.RawPost["commentCount"] = item.Stats.CommentCount
	wc.RawPost["shareCount"] = item.Stats.ShareCount

	wc.RawAuthor["uniqueId"] = item.Author.UniqueID
	wc.RawAuthor["signature"] = item.Author.Signature
	wc.RawAuthor["followerCount"] = item.AuthorStats.FollowerCount
	wc.RawAuthor["followingCount"] = item.AuthorStats.FollowingCount
	wc.RawAuthor["videoCount"] = item.AuthorStats.VideoCount

	return nil
}

func (t TikTokCrawler) itemFromUniversalData(pageHTML string) *tiktokItemStruct {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}
	payload := doc.Find(`script#__UNIVERSAL_DATA_FOR_REHYDRATION__`).Text()
	if payload == "" {
		return nil
	}
	data := tiktokUniversalData{}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		Logger.Log.Warnf("tiktok: universal data blob did not parse: %v", err)
		return nil
	}
	return data.DefaultScope.VideoDetail.ItemInfo.ItemStruct
}

func (t TikTokCrawler) itemFromSigiState(pageHTML string) *tiktokItemStruct {
	m := tiktokSigiRe.FindStringSubmatch(pageHTML)
	if m == nil {
		return nil
	}
	state := struct {
		ItemModule map[string]tiktokItemStruct `json:"ItemModule"`
	}{}
	if err := json.Unmarshal([]byte(m[1]), &state); err != nil {
		Logger.Log.Warnf("tiktok: SIGI_STATE blob did not parse: %v", err)
		return nil
	}
	for _, item := range state.ItemModule {
		if item.ID != "" {
			return &item
		}
	}
	return nil
}

func isTikTokGated(pageHTML string) bool {
	lower := strings.ToLower(pageHTML)
	for _, marker := range tiktokGateMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
