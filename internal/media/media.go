package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind is the broad media category a payload resolves to.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Encoding describes how the payload is carried.
type Encoding string

const (
	EncodingDataURL   Encoding = "data_url"
	EncodingHostedURL Encoding = "hosted_url"
)

// ErrUnsupportedMedia is returned when a payload is neither an inline image
// data URL nor a hosted https URL. Publishing to any platform that needs the
// asset must be aborted when classification fails.
var ErrUnsupportedMedia = errors.New("unsupported media payload")

// Classification is the resolver's verdict on a media payload.
type Classification struct {
	Kind     Kind
	Encoding Encoding
	MIME     string
}

var dataURLPattern = regexp.MustCompile(`^data:([a-z]+/[a-z0-9.+-]+);base64,(.+)$`)

// Classify resolves a post's media payload. Images arrive as inline data URLs
// (compressed client-side before upload); videos arrive as hosted https URLs
// because inline video payloads are impractically large for request bodies.
// Inline video data URLs are rejected for the same reason.
func Classify(payload string) (Classification, error) {
	if m := dataURLPattern.FindStringSubmatch(payload); m != nil {
		mime := m[1]
		if !strings.HasPrefix(mime, "image/") {
			return Classification{}, fmt.Errorf("%w: inline %s payloads are not accepted", ErrUnsupportedMedia, mime)
		}
		return Classification{Kind: KindImage, Encoding: EncodingDataURL, MIME: mime}, nil
	}
	if strings.HasPrefix(payload, "https://") {
		return Classification{Kind: KindVideo, Encoding: EncodingHostedURL}, nil
	}
	return Classification{}, ErrUnsupportedMedia
}

// DecodeDataURL extracts the binary payload and MIME type from an inline data
// URL.
func DecodeDataURL(payload string) ([]byte, string, error) {
	m := dataURLPattern.FindStringSubmatch(payload)
	if m == nil {
		return nil, "", ErrUnsupportedMedia
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid base64 payload", ErrUnsupportedMedia)
	}
	return data, m[1], nil
}

// FileExtension picks a filename extension for a MIME type, used when naming
// the multipart upload part.
func FileExtension(mime string) string {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		if idx := strings.IndexByte(mime, '/'); idx >= 0 && idx+1 < len(mime) {
			return mime[idx+1:]
		}
		return "bin"
	}
}
