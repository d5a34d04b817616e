package domain

// PublishRequest is the inbound contract of the publish pipeline. Media is
// either a base64 data URL (images) or a hosted https URL (videos).
type PublishRequest struct {
	Platforms   []Platform
	Media       string
	Caption     string
	Hashtags    []string
	Audience    string
	Prompt      string
	Generated   *GeneratedContent
	Credentials ConnectionDetails
}
