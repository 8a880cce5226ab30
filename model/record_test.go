package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformIsSupported(t *testing.T) {
	for _, p := range []Platform{PlatformFacebook, PlatformYouTube, PlatformTikTok, PlatformReddit, PlatformNews} {
		assert.True(t, p.IsSupported(), string(p))
	}
	assert.False(t, PlatformUnknown.IsSupported())
	assert.False(t, Platform("myspace").IsSupported())
}

func TestPlatformDisplayName(t *testing.T) {
	cases := map[Platform]string{
		PlatformTikTok:      "TikTok",
		PlatformYouTube:     "YouTube",
		PlatformFacebook:    "Facebook",
		PlatformReddit:      "Reddit",
		PlatformNews:        "News/Blog Site",
		PlatformUnknown:     "Unknown Source",
		Platform("myspace"): "Unknown Source",
	}
	for p, expected := range cases {
		assert.Equal(t, expected, p.DisplayName())
	}
}

func TestCount(t *testing.T) {
	v := Count(42)
	assert.Equal(t, int64(42), *v)
}
