package model

import "time"

// Platform identifies which social network a record was extracted from.
type Platform string

const (
	PlatformFacebook Platform = "facebook"
	PlatformYouTube  Platform = "youtube"
	PlatformTikTok   Platform = "tiktok"
	PlatformReddit   Platform = "reddit"
	PlatformNews     Platform = "news"
	PlatformUnknown  Platform = "unknown"
)

func (p Platform) IsSupported() bool {
	switch p {
	case PlatformFacebook, PlatformYouTube, PlatformTikTok, PlatformReddit, PlatformNews:
		return true
	}
	return false
}

// DisplayName returns the human readable platform name for the UI.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformTikTok:
		return "TikTok"
	case PlatformYouTube:
		return "YouTube"
	case PlatformFacebook:
		return "Facebook"
	case PlatformReddit:
		return "Reddit"
	case PlatformNews:
		return "News/Blog Site"
	default:
		return "Unknown Source"
	}
}

// PostRecord is the canonical shape every adapter's raw response is
// normalized into. Each metric is a pointer so that "platform does not
// support this metric" and "metric is zero" stay distinguishable: a nil
// pointer renders as an empty CSV cell, never as 0.
type PostRecord struct {
	ID          string     `json:"post_id"`
	Platform    Platform   `json:"platform"`
	URL         string     `json:"url"`
	Caption     string     `json:"caption,omitempty"`
	Hashtags    []string   `json:"hashtags,omitempty"`
	Views       *int64     `json:"views,omitempty"`
	Likes       *int64     `json:"likes,omitempty"`
	Comments    *int64     `json:"comments,omitempty"`
	Shares      *int64     `json:"shares,omitempty"`
	Upvotes     *int64     `json:"upvotes,omitempty"`
	PublishedAt *time.Time `json:"publish_date,omitempty"`
	ExtractedAt time.Time  `json:"extracted_at"`
}

// AuthorRecord describes the original poster of a single PostRecord. It has
// no identity beyond the extraction that produced it.
type AuthorRecord struct {
	Platform  Platform `json:"platform"`
	Username  string   `json:"username"`
	Bio       string   `json:"bio,omitempty"`
	Followers *int64   `json:"followers,omitempty"`
	Following *int64   `json:"following,omitempty"`
	PostCount *int64   `json:"post_count,omitempty"`
}

// Count boxes a metric value. Callers must not box negative values; the
// normalizer drops them before they reach a record.
func Count(v int64) *int64 {
	return &v
}
