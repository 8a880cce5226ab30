package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polis-analysis/postmeta/model"
)

func TestDetectPlatform(t *testing.T) {
	cases := []struct {
		url      string
		expected model.Platform
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", model.PlatformYouTube},
		{"https://youtu.be/abc123def45", model.PlatformYouTube},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", model.PlatformYouTube},
		{"https://www.youtube.com/shorts/abc123def45", model.PlatformYouTube},
		{"https://www.tiktok.com/@someone/video/7123456789012345678", model.PlatformTikTok},
		{"https://vm.tiktok.com/ZM8abcdef/", model.PlatformTikTok},
		{"https://www.facebook.com/somepage/posts/123456789", model.PlatformFacebook},
		{"https://fb.watch/abc123/", model.PlatformFacebook},
		{"https://www.fb.com/profile.php?id=1", model.PlatformFacebook},
		{"https://www.reddit.com/r/golang/comments/abc123/title/", model.PlatformReddit},
		{"https://redd.it/abc123", model.PlatformReddit},
		{"https://www.bbc.com/news/world-12345", model.PlatformNews},
		{"https://medium.com/@writer/some-story", model.PlatformNews},
		{"https://myname.substack.com/p/post", model.PlatformNews},
		{"https://blog.example.org/entry", model.PlatformNews},
		{"https://example.blog/entry", model.PlatformNews},
	}

	for _, c := range cases {
		t.Run(c.url, func(t *testing.T) {
			assert.Equal(t, c.expected, DetectPlatform(c.url))
		})
	}
}

func TestDetectPlatformUnknown(t *testing.T) {
	unknowns := []string{
		"https://random-shop.example.com/product/1",
		"https://example.com",
		"not a url at all",
		"",
	}
	for _, url := range unknowns {
		t.Run(url, func(t *testing.T) {
			assert.Equal(t, model.PlatformUnknown, DetectPlatform(url))
		})
	}
}

func TestDetectPlatformIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, model.PlatformYouTube, DetectPlatform("HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ"))
}
