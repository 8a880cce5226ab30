package extractor_instances

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polis-analysis/postmeta/extractor"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
)

const tiktokUniversalFixture = `<!DOCTYPE html>
<html>
<head></head>
<body>
<script id="__UNIVERSAL_DATA_FOR_REHYDRATION__" type="application/json">
{"__DEFAULT_SCOPE__": {"webapp.video-detail": {"itemInfo": {"itemStruct": {
	"id": "7216241758",
	"desc": "Check this out #fyp #dance",
	"createTime": 1692093000,
	"author": {"uniqueId": "dancer99", "signature": "just vibes"},
	"stats": {"playCount": 150000, "diggCount": 12000, "commentCount": 340, "shareCount": 89},
	"authorStats": {"followerCount": 52000, "followingCount": 120, "videoCount": 87}
}}}}}
</script>
</body>
</html>`

const tiktokSigiFixture = `<!DOCTYPE html>
<html>
<body>
<script id="SIGI_STATE" type="application/json">window['SIGI_STATE'] = {"ItemModule": {"7216241758": {
	"id": "7216241758",
	"desc": "Check this out #fyp",
	"createTime": 1692093000,
	"author": {"uniqueId": "dancer99", "signature": "just vibes"},
	"stats": {"playCount": 150000, "diggCount": 12000, "commentCount": 340, "shareCount": 89},
	"authorStats": {"followerCount": 52000, "followingCount": 120, "videoCount": 87}
}}};</script>
</body>
</html>`

func TestTikTokItemFromUniversalData(t *testing.T) {
	ext := TikTokCrawler{}
	item := ext.itemFromUniversalData(tiktokUniversalFixture)

	require.NotNil(t, item)
	assert.Equal(t, "7216241758", item.ID)
	assert.Equal(t, "Check this out #fyp #dance", item.Desc)
	assert.Equal(t, int64(1692093000), item.CreateTime)
	assert.Equal(t, "dancer99", item.Author.UniqueID)
	assert.Equal(t, int64(150000), item.Stats.PlayCount)
	assert.Equal(t, int64(52000), item.AuthorStats.FollowerCount)
}

func TestTikTokItemFromSigiStateFallback(t *testing.T) {
	ext := TikTokCrawler{}
	assert.Nil(t, ext.itemFromUniversalData(tiktokSigiFixture))

	item := ext.itemFromSigiState(tiktokSigiFixture)
	require.NotNil(t, item)
	assert.Equal(t, "7216241758", item.ID)
	assert.Equal(t, "Check this out #fyp", item.Desc)
	assert.Equal(t, int64(340), item.Stats.CommentCount)
}

func TestTikTokNoRehydrationData(t *testing.T) {
	ext := TikTokCrawler{}
	assert.Nil(t, ext.itemFromUniversalData(`<html><body>empty</body></html>`))
	assert.Nil(t, ext.itemFromSigiState(`<html><body>empty</body></html>`))
}

func TestTikTokGateMarkers(t *testing.T) {
	assert.True(t, isTikTokGated(`<html><body>Log in to TikTok</body></html>`))
	assert.True(t, isTikTokGated(`<div class="tiktok-verify-page"></div>`))
	assert.False(t, isTikTokGated(`<html><body>a regular page</body></html>`))
}

func TestTikTokRejectsNonPostUrl(t *testing.T) {
	ext := TikTokCrawler{}
	wc := working_context.NewExtractionContext("https://www.tiktok.com/@dancer99", model.PlatformTikTok, working_context.Credentials{})

	err := ext.Extract(context.Background(), wc)
	require.Error(t, err)
	assert.Equal(t, extractor.KindNotFound, extractor.KindOf(err))
}

func TestTikTokUrlShapes(t *testing.T) {
	assert.True(t, tiktokVideoUrlRe.MatchString("https://www.tiktok.com/@dancer99/video/7216241758"))
	assert.True(t, tiktokShortUrlRe.MatchString("https://vm.tiktok.com/ZMabc123/"))
	assert.True(t, tiktokShortUrlRe.MatchString("https://vt.tiktok.com/ZSxyz789/"))
	assert.False(t, tiktokVideoUrlRe.MatchString("https://www.tiktok.com/foryou"))
}
