package domain

import "time"

// Engagement holds the counters refreshed out-of-band from the Graph API.
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// GeneratedContent is the per-platform caption bundle produced for a prompt.
type GeneratedContent struct {
	Captions map[Platform]string `json:"captions"`
	Hashtags []string            `json:"hashtags"`
}

// Post is the persisted record of a publish attempt. Platforms lists only the
// destinations that confirmed success; RemoteIDs maps each of them to the ID
// the remote API returned.
type Post struct {
	ID         string              `json:"id"`
	SessionID  string              `json:"session_id"`
	Platforms  []Platform          `json:"platforms"`
	RemoteIDs  map[Platform]string `json:"remote_ids"`
	Audience   string              `json:"audience"`
	MediaURL   string              `json:"media_url"`
	Prompt     string              `json:"prompt"`
	Caption    string              `json:"caption"`
	Hashtags   []string            `json:"hashtags"`
	Generated  *GeneratedContent   `json:"generated,omitempty"`
	PostedAt   time.Time           `json:"posted_at"`
	Engagement Engagement          `json:"engagement"`
}
