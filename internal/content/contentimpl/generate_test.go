package contentimpl

import (
	"reflect"
	"testing"

	"github.com/orgball2608/social-publisher/internal/domain"
)

func TestParseGenerated(t *testing.T) {
	raw := `FACEBOOK: Big news today, come see what we built.
INSTAGRAM: Sneak peek of the launch
YOUTUBE: Full walkthrough now live
HASHTAGS: #launch #startup #demo`

	got := parseGenerated(raw, []domain.Platform{
		domain.PlatformFacebook,
		domain.PlatformInstagram,
		domain.PlatformYouTube,
	})

	wantCaptions := map[domain.Platform]string{
		domain.PlatformFacebook:  "Big news today, come see what we built.",
		domain.PlatformInstagram: "Sneak peek of the launch",
		domain.PlatformYouTube:   "Full walkthrough now live",
	}
	if !reflect.DeepEqual(got.Captions, wantCaptions) {
		t.Errorf("captions = %v, want %v", got.Captions, wantCaptions)
	}
	wantTags := []string{"#launch", "#startup", "#demo"}
	if !reflect.DeepEqual(got.Hashtags, wantTags) {
		t.Errorf("hashtags = %v, want %v", got.Hashtags, wantTags)
	}
}

func TestParseGeneratedIgnoresNoise(t *testing.T) {
	raw := `Sure! Here are your captions:

FACEBOOK: A caption
PINTEREST: not requested
no separator line
HASHTAGS: launch startup`

	got := parseGenerated(raw, []domain.Platform{domain.PlatformFacebook})

	if len(got.Captions) != 1 || got.Captions[domain.PlatformFacebook] != "A caption" {
		t.Errorf("captions = %v", got.Captions)
	}
	wantTags := []string{"#launch", "#startup"}
	if !reflect.DeepEqual(got.Hashtags, wantTags) {
		t.Errorf("hashtags = %v, want %v", got.Hashtags, wantTags)
	}
}

func TestParseGeneratedEmpty(t *testing.T) {
	got := parseGenerated("", []domain.Platform{domain.PlatformFacebook})
	if len(got.Captions) != 0 {
		t.Errorf("captions = %v, want none", got.Captions)
	}
}
