package publisherimpl

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/media"
	"github.com/orgball2608/social-publisher/internal/publisher"
	"github.com/orgball2608/social-publisher/pkg/formatter"
)

// publishRank is the explicit platform ordering rule: Facebook runs before
// Instagram because the Instagram image path consumes the public URL of the
// Facebook photo publish.
var publishRank = map[domain.Platform]int{
	domain.PlatformFacebook:  0,
	domain.PlatformInstagram: 1,
	domain.PlatformYouTube:   2,
}

// orderPlatforms applies publishRank, deduplicates, and keeps unknown
// platforms at the end in their original relative order so they surface as
// per-platform failures instead of being dropped silently.
func orderPlatforms(requested []domain.Platform) []domain.Platform {
	seen := make(map[domain.Platform]bool, len(requested))
	ordered := make([]domain.Platform, 0, len(requested))
	for _, platform := range requested {
		if seen[platform] {
			continue
		}
		seen[platform] = true
		ordered = append(ordered, platform)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, ok := publishRank[ordered[i]]
		if !ok {
			ri = len(publishRank)
		}
		rj, ok := publishRank[ordered[j]]
		if !ok {
			rj = len(publishRank)
		}
		return ri < rj
	})
	return ordered
}

type platformResult struct {
	platform domain.Platform
	remoteID string
}

// Publish runs the pipeline for one request: platforms in fixed order,
// per-platform failures isolated, successes persisted even when siblings
// fail. Each call owns its own state; the credential snapshot in the request
// is read-only for the duration.
func (p *PublisherImpl) Publish(ctx context.Context, req domain.PublishRequest) (*domain.Post, error) {
	ordered := orderPlatforms(req.Platforms)
	caption := formatter.ComposeCaption(req.Caption, req.Hashtags)

	p.Logger.Info("Starting publish",
		"session_id", req.Credentials.SessionID,
		"platforms", ordered)

	var (
		results          []platformResult
		failures         []publisher.Failure
		facebookPhotoURL string
	)

	fail := func(platform domain.Platform, reason string) {
		p.Logger.Warn("Platform publish failed", "platform", platform, "reason", reason)
		failures = append(failures, publisher.Failure{Platform: platform, Reason: reason})
	}

	for _, platform := range ordered {
		switch platform {
		case domain.PlatformFacebook:
			remoteID, photoURL, err := p.publishFacebook(ctx, req, caption)
			if err != nil {
				fail(platform, err.Error())
				continue
			}
			facebookPhotoURL = photoURL
			results = append(results, platformResult{platform: platform, remoteID: remoteID})

		case domain.PlatformInstagram:
			remoteID, err := p.publishInstagram(ctx, req, caption, facebookPhotoURL)
			if err != nil {
				fail(platform, err.Error())
				continue
			}
			results = append(results, platformResult{platform: platform, remoteID: remoteID})

		case domain.PlatformYouTube:
			// Local stub platform: no remote API behind it, success is
			// decided by the connection flag alone.
			if req.Credentials.YouTube == nil || !req.Credentials.YouTube.Connected {
				fail(platform, "Not connected")
				continue
			}
			results = append(results, platformResult{platform: platform, remoteID: "yt-" + uuid.NewString()})

		default:
			fail(platform, "unsupported platform")
		}
	}

	if len(results) == 0 {
		return nil, &publisher.PartialFailureError{Failures: failures}
	}

	post := p.buildPost(req, results)
	if err := p.PostRepo.Create(ctx, *post); err != nil {
		// The remote posts are live; a persistence failure must not be
		// reported as a publish failure.
		p.Logger.Error("Failed to persist published post", "post_id", post.ID, "error", err)
	}

	if len(failures) > 0 {
		return post, &publisher.PartialFailureError{Failures: failures}
	}
	return post, nil
}

func (p *PublisherImpl) publishFacebook(ctx context.Context, req domain.PublishRequest, caption string) (remoteID, photoURL string, err error) {
	if req.Credentials.Facebook == nil {
		return "", "", publisher.ErrConnectionMissing
	}

	classification, err := media.Classify(req.Media)
	if err != nil {
		return "", "", err
	}

	if classification.Kind == media.KindVideo {
		remoteID, err := p.Facebook.PublishVideo(ctx, *req.Credentials.Facebook, caption, req.Media)
		if err != nil {
			return "", "", err
		}
		return remoteID, "", nil
	}

	payload, mime, err := media.DecodeDataURL(req.Media)
	if err != nil {
		return "", "", err
	}

	result, err := p.Facebook.PublishPhoto(ctx, *req.Credentials.Facebook, caption, payload, "upload."+media.FileExtension(mime))
	if err != nil {
		return "", "", err
	}
	return result.PostID, result.PublicPhotoURL, nil
}

func (p *PublisherImpl) publishInstagram(ctx context.Context, req domain.PublishRequest, caption, facebookPhotoURL string) (string, error) {
	if req.Credentials.Instagram == nil || req.Credentials.Instagram.AccessToken == "" {
		return "", publisher.ErrConnectionMissing
	}

	classification, err := media.Classify(req.Media)
	if err != nil {
		return "", err
	}

	mediaURL := req.Media
	if classification.Kind == media.KindImage {
		// The image path consumes the Facebook-hosted public photo URL; the
		// publisher fails with the dependency error when it is absent.
		mediaURL = facebookPhotoURL
	}

	return p.Instagram.Publish(ctx, *req.Credentials.Instagram, caption, mediaURL, classification.Kind)
}

func (p *PublisherImpl) buildPost(req domain.PublishRequest, results []platformResult) *domain.Post {
	platforms := make([]domain.Platform, 0, len(results))
	remoteIDs := make(map[domain.Platform]string, len(results))
	for _, result := range results {
		platforms = append(platforms, result.platform)
		remoteIDs[result.platform] = result.remoteID
	}

	// The post takes the first successful platform's remote ID; a local ID
	// is only generated when no remote platform contributed one.
	id := results[0].remoteID
	if id == "" {
		id = uuid.NewString()
	}

	return &domain.Post{
		ID:        id,
		SessionID: req.Credentials.SessionID,
		Platforms: platforms,
		RemoteIDs: remoteIDs,
		Audience:  req.Audience,
		MediaURL:  req.Media,
		Prompt:    req.Prompt,
		Caption:   req.Caption,
		Hashtags:  req.Hashtags,
		Generated: req.Generated,
		PostedAt:  time.Now(),
	}
}
