package domain

// Platform identifies a publishing destination.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
)

// Known reports whether the platform is one the pipeline can dispatch to.
func (p Platform) Known() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformYouTube:
		return true
	}
	return false
}
