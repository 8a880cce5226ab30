// Package normalizer maps each adapter's raw field maps into the canonical
// PostRecord/AuthorRecord schema. The raw-to-canonical mapping is static
// per-platform data; all type coercion lives here, never in the adapters.
package normalizer

import (
	"time"

	"github.com/polis-analysis/postmeta/extractor"
	"github.com/polis-analysis/postmeta/extractor/working_context"
	"github.com/polis-analysis/postmeta/model"
)

// fieldMapping lists, per canonical field, the raw keys that may carry it.
// The first key present (and non-empty) wins.
type fieldMapping struct {
	postId   []string
	caption  []string
	date     []string
	views    []string
	likes    []string
	comments []string
	shares   []string
	upvotes  []string
	// Raw keys carrying hashtag material outside the caption: YouTube tags,
	// Reddit flair. Values may be a string or a list of strings.
	tagSources []string

	username  []string
	bio       []string
	followers []string
	following []string
	postCount []string
}

var mappings = map[model.Platform]fieldMapping{
	model.PlatformYouTube: {
		postId:     []string{"id"},
		caption:    []string{"description", "title"},
		date:       []string{"publishedAt"},
		views:      []string{"viewCount"},
		likes:      []string{"likeCount"},
		comments:   []string{"commentCount"},
		tagSources: []string{"tags"},
		username:   []string{"channelTitle"},
		bio:        []string{"channelDescription"},
		followers:  []string{"subscriberCount"},
		postCount:  []string{"videoCount"},
	},
	model.PlatformFacebook: {
		postId:    []string{"post_id"},
		caption:   []string{"message"},
		date:      []string{"created_time"},
		views:     []string{"video_view_count"},
		likes:     []string{"reaction_count"},
		comments:  []string{"comment_count"},
		shares:    []string{"share_count"},
		username:  []string{"name"},
		followers: []string{"follower_count"},
	},
	model.PlatformTikTok: {
		postId:    []string{"id"},
		caption:   []string{"desc"},
		date:      []string{"createTime"},
		views:     []string{"playCount"},
		likes:     []string{"diggCount"},
		comments:  []string{"commentCount"},
		shares:    []string{"shareCount"},
		username:  []string{"uniqueId"},
		bio:       []string{"signature"},
		followers: []string{"followerCount"},
		following: []string{"followingCount"},
		postCount: []string{"videoCount"},
	},
	model.PlatformReddit: {
		postId:     []string{"id", "name"},
		caption:    []string{"selftext", "title"},
		date:       []string{"created_utc"},
		upvotes:    []string{"ups"},
		comments:   []string{"num_comments"},
		shares:     []string{"num_crossposts"},
		tagSources: []string{"link_flair_text"},
		username:   []string{"name"},
		bio:        []string{"public_description"},
		followers:  []string{"subscribers"},
	},
}

// Normalize converts the raw maps of one extraction into the canonical
// record pair. Every field except the post ID degrades to absent; a missing
// post ID is the one hard failure.
func Normalize(platform model.Platform, rawPost working_context.RawPost, rawAuthor working_context.RawAuthor, sourceURL string, extractedAt time.Time) (model.PostRecord, model.AuthorRecord, error) {
	mapping, ok := mappings[platform]
	if !ok {
		return model.PostRecord{}, model.AuthorRecord{},
			extractor.NewError(extractor.KindUnsupportedPlatform, platform, sourceURL,
				"no normalization mapping for platform %q", platform)
	}

	postId := firstString(rawPost, mapping.postId)
	if postId == "" {
		return model.PostRecord{}, model.AuthorRecord{},
			extractor.NewError(extractor.KindNormalization, platform, sourceURL,
				"raw response is missing the post identifier (looked at %v)", mapping.postId)
	}

	caption := firstString(rawPost, mapping.caption)

	post := model.PostRecord{
		ID:          postId,
		Platform:    platform,
		URL:         sourceURL,
		Caption:     caption,
		Hashtags:    collectHashtags(caption, rawPost, mapping.tagSources),
		Views:       firstCount(rawPost, mapping.views),
		Likes:       firstCount(rawPost, mapping.likes),
		Comments:    firstCount(rawPost, mapping.comments),
		Shares:      firstCount(rawPost, mapping.shares),
		Upvotes:     firstCount(rawPost, mapping.upvotes),
		PublishedAt: firstTime(rawPost, mapping.date),
		ExtractedAt: extractedAt,
	}

	author := model.AuthorRecord{
		Platform:  platform,
		Username:  firstString(rawAuthor, mapping.username),
		Bio:       firstString(rawAuthor, mapping.bio),
		Followers: firstCount(rawAuthor, mapping.followers),
		Following: firstCount(rawAuthor, mapping.following),
		PostCount: firstCount(rawAuthor, mapping.postCount),
	}

	return post, author, nil
}

// NormalizeContext is the working-context flavor of Normalize used by the
// extraction handler.
func NormalizeContext(wc *working_context.ExtractionContext) (model.PostRecord, model.AuthorRecord, error) {
	return Normalize(wc.Platform, wc.RawPost, wc.RawAuthor, wc.URL, wc.StartedAt)
}

func firstString(raw map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if s := coerceString(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

func firstCount(raw map[string]interface{}, keys []string) *int64 {
	for _, key := range keys {
		value, present := raw[key]
		if !present {
			continue
		}
		if n, ok := coerceCount(value); ok {
			return model.Count(n)
		}
	}
	return nil
}

func firstTime(raw map[string]interface{}, keys []string) *time.Time {
	for _, key := range keys {
		value, present := raw[key]
		if !present {
			continue
		}
		if t, ok := coerceTime(value); ok {
			return &t
		}
	}
	return nil
}
