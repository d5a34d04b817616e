package domain

import "time"

// FacebookConnection is a Page-scoped credential obtained from the one-time
// Graph API token exchange.
type FacebookConnection struct {
	PageID          string
	PageName        string
	PageAccessToken string
}

// InstagramConnection identifies the business account linked to the connected
// Page. AccessToken is a copy of the page token taken at discovery time, so
// video publishes do not depend on the Facebook block being present.
type InstagramConnection struct {
	UserID      string
	Username    string
	AccessToken string
}

// YouTubeConnection is the local stub platform. It has no real API behind it;
// Connected alone decides whether publishes to it succeed.
type YouTubeConnection struct {
	ChannelID string
	Connected bool
}

// ConnectionDetails holds every per-session platform credential. A publish
// call receives a value snapshot of this, so a reconnect mid-flight only
// affects later requests.
type ConnectionDetails struct {
	SessionID string
	Facebook  *FacebookConnection
	Instagram *InstagramConnection
	YouTube   *YouTubeConnection
	CreatedAt time.Time
	UpdatedAt time.Time
}
