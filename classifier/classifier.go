// Package classifier maps a raw post URL to the platform that should handle
// it. Matching is purely on host patterns; it never touches the network.
package classifier

import (
	"net/url"
	"strings"

	"github.com/polis-analysis/postmeta/model"
)

// Domains routed to the news/blog adapter. Matched as substrings of the
// host, mirroring subdomain variants like edition.cnn.com.
var knownNewsDomains = []string{
	"bbc.com", "bbc.co.uk",
	"cnn.com",
	"theguardian.com",
	"reuters.com",
	"apnews.com",
	"nytimes.com",
	"washingtonpost.com",
	"aljazeera.com",
	"economist.com",
	"medium.com",
	"substack.com",
	"blogger.com",
	"wordpress.com",
	"wix.com",
}

var newsHostPatterns = []string{".blog", "blog.", "news.", ".news"}

// DetectPlatform returns the platform tag for rawURL, or PlatformUnknown
// when no pattern matches. Callers must reject unknown before invoking any
// extractor.
func DetectPlatform(rawURL string) model.Platform {
	parsed, err := url.Parse(strings.TrimSpace(strings.ToLower(rawURL)))
	if err != nil {
		return model.PlatformUnknown
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if host == "" {
		return model.PlatformUnknown
	}

	switch {
	case strings.Contains(host, "tiktok.com"):
		return model.PlatformTikTok
	case strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be"):
		return model.PlatformYouTube
	case strings.Contains(host, "facebook.com") || strings.Contains(host, "fb.com") || strings.Contains(host, "fb.watch"):
		return model.PlatformFacebook
	case strings.Contains(host, "reddit.com") || strings.Contains(host, "redd.it"):
		return model.PlatformReddit
	}

	for _, domain := range knownNewsDomains {
		if strings.Contains(host, domain) {
			return model.PlatformNews
		}
	}
	for _, pattern := range newsHostPatterns {
		if strings.Contains(host, pattern) {
			return model.PlatformNews
		}
	}

	return model.PlatformUnknown
}
