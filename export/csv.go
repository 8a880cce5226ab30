// Package export serializes canonical records into the two downloadable
// tables: one row per post, one row per original poster. Absent metrics
// render as empty cells so "not supported" never reads as zero.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/polis-analysis/postmeta/model"
)

var PostColumns = []string{
	"post_id", "platform", "url", "caption", "hashtags",
	"views", "likes", "comments", "shares", "upvotes", "publish_date",
}

var AuthorColumns = []string{
	"platform", "username", "bio", "followers", "following", "post_count",
}

func WritePostCSV(w io.Writer, records []model.PostRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(PostColumns); err != nil {
		return errors.Wrap(err, "write post csv header")
	}
	for _, record := range records {
		row := []string{
			record.ID,
			string(record.Platform),
			record.URL,
			record.Caption,
			strings.Join(record.Hashtags, ", "),
			formatCount(record.Views),
			formatCount(record.Likes),
			formatCount(record.Comments),
			formatCount(record.Shares),
			formatCount(record.Upvotes),
			formatTime(record.PublishedAt),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "write post csv row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush post csv")
}

func WriteAuthorCSV(w io.Writer, records []model.AuthorRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(AuthorColumns); err != nil {
		return errors.Wrap(err, "write op csv header")
	}
	for _, record := range records {
		row := []string{
			string(record.Platform),
			record.Username,
			record.Bio,
			formatCount(record.Followers),
			formatCount(record.Following),
			formatCount(record.PostCount),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "write op csv row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush op csv")
}

func formatCount(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
