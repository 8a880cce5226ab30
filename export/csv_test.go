package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polis-analysis/postmeta/model"
)

func TestWritePostCSVRoundTrip(t *testing.T) {
	published := time.Date(2023, 8, 15, 10, 30, 0, 0, time.UTC)
	record := model.PostRecord{
		ID:          "abc123",
		Platform:    model.PlatformYouTube,
		URL:         "https://youtu.be/abc123def45",
		Caption:     "Great day! #sunshine #fun",
		Hashtags:    []string{"#sunshine", "#fun"},
		Views:       model.Count(1500),
		Likes:       model.Count(120),
		Comments:    model.Count(30),
		PublishedAt: &published,
		ExtractedAt: time.Now(),
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WritePostCSV(buf, []model.PostRecord{record}))

	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, PostColumns, rows[0])

	row := map[string]string{}
	for i, col := range rows[0] {
		row[col] = rows[1][i]
	}
	assert.Equal(t, "abc123", row["post_id"])
	assert.Equal(t, "youtube", row["platform"])
	assert.Equal(t, "https://youtu.be/abc123def45", row["url"])
	assert.Equal(t, "Great day! #sunshine #fun", row["caption"])
	assert.Equal(t, "#sunshine, #fun", row["hashtags"])
	assert.Equal(t, "1500", row["views"])
	assert.Equal(t, "120", row["likes"])
	assert.Equal(t, "30", row["comments"])
	assert.Equal(t, "2023-08-15T10:30:00Z", row["publish_date"])
}

func TestWritePostCSVAbsentMetricsAreEmptyCells(t *testing.T) {
	record := model.PostRecord{
		ID:       "xyz",
		Platform: model.PlatformReddit,
		URL:      "https://www.reddit.com/r/golang/comments/xyz/t/",
		Upvotes:  model.Count(0),
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WritePostCSV(buf, []model.PostRecord{record}))

	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)

	row := map[string]string{}
	for i, col := range rows[0] {
		row[col] = rows[1][i]
	}
	// absent renders empty, an actual zero renders "0"
	assert.Equal(t, "", row["views"])
	assert.Equal(t, "", row["likes"])
	assert.Equal(t, "", row["shares"])
	assert.Equal(t, "0", row["upvotes"])
	assert.Equal(t, "", row["publish_date"])
}

func TestWriteAuthorCSV(t *testing.T) {
	record := model.AuthorRecord{
		Platform:  model.PlatformTikTok,
		Username:  "someone",
		Bio:       "a bio",
		Followers: model.Count(10000),
		Following: model.Count(15),
		PostCount: model.Count(42),
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteAuthorCSV(buf, []model.AuthorRecord{record}))

	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, AuthorColumns, rows[0])
	assert.Equal(t, []string{"tiktok", "someone", "a bio", "10000", "15", "42"}, rows[1])
}
