package normalizer

import "strings"

const hashtagTrailingPunct = ".,!?;:"

// ExtractHashtags scans caption text for #-prefixed tokens, trimming
// trailing punctuation. Order of first appearance is preserved, duplicates
// dropped.
func ExtractHashtags(caption string) []string {
	hashtags := []string{}
	seen := map[string]bool{}
	for _, word := range strings.Fields(caption) {
		if !strings.HasPrefix(word, "#") || len(word) < 2 {
			continue
		}
		tag := strings.TrimRight(word, hashtagTrailingPunct)
		if len(tag) < 2 || seen[tag] {
			continue
		}
		seen[tag] = true
		hashtags = append(hashtags, tag)
	}
	return hashtags
}

// collectHashtags merges caption hashtags with platform tag material (video
// tags, post flair) converted to hashtag form.
func collectHashtags(caption string, raw map[string]interface{}, tagSources []string) []string {
	hashtags := ExtractHashtags(caption)
	seen := map[string]bool{}
	for _, tag := range hashtags {
		seen[tag] = true
	}

	for _, key := range tagSources {
		for _, tag := range tagValues(raw[key]) {
			formatted := formatTag(tag)
			if formatted == "" || seen[formatted] {
				continue
			}
			seen[formatted] = true
			hashtags = append(hashtags, formatted)
		}
	}
	return hashtags
}

func tagValues(value interface{}) []string {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []interface{}:
		tags := []string{}
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

func formatTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if strings.HasPrefix(tag, "#") {
		return tag
	}
	tag = strings.ReplaceAll(tag, " ", "_")
	tag = strings.ReplaceAll(tag, "-", "_")
	return "#" + tag
}
