package formatter

import (
	"fmt"
	"strings"
)

// NormalizeHashtags ensures every tag carries a single leading '#' and no
// internal whitespace. Empty entries are dropped.
func NormalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		tag = strings.TrimLeft(tag, "#")
		tag = strings.ReplaceAll(tag, " ", "")
		if tag == "" {
			continue
		}
		out = append(out, "#"+tag)
	}
	return out
}

// ComposeCaption joins a caption with its hashtag block the way the composer
// renders it: caption, blank line, space-separated tags.
func ComposeCaption(caption string, hashtags []string) string {
	tags := NormalizeHashtags(hashtags)
	if len(tags) == 0 {
		return caption
	}
	if caption == "" {
		return strings.Join(tags, " ")
	}
	return caption + "\n\n" + strings.Join(tags, " ")
}

// FormatCount abbreviates engagement counters for display.
// Example: 1234 -> "1.2K", 5600000 -> "5.6M"
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1fM", float64(n)/1_000_000))
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1fK", float64(n)/1_000))
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.Replace(s, ".0", "", 1)
}
