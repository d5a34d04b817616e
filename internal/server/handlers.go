package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/social-publisher/internal/connections"
	"github.com/orgball2608/social-publisher/internal/content"
	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/publisher"
	"github.com/orgball2608/social-publisher/internal/repositories/post"
	apperrors "github.com/orgball2608/social-publisher/pkg/errors"
	"github.com/orgball2608/social-publisher/pkg/formatter"
)

type publishRequest struct {
	Platforms []string                 `json:"platforms" binding:"required,min=1"`
	Media     string                   `json:"media" binding:"required"`
	Caption   string                   `json:"caption"`
	Hashtags  []string                 `json:"hashtags"`
	Audience  string                   `json:"audience"`
	Prompt    string                   `json:"prompt"`
	Generated *domain.GeneratedContent `json:"generated"`
}

func (s *Server) handlePublish(c *gin.Context) {
	sessionID := c.GetString("session_id")

	if !s.Limiter.Allow(sessionID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many publish requests"})
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platforms := make([]domain.Platform, 0, len(req.Platforms))
	for _, name := range req.Platforms {
		platforms = append(platforms, domain.Platform(name))
	}

	// Credentials are snapshotted here; a reconnect mid-publish does not
	// affect an in-flight request.
	credentials := domain.ConnectionDetails{SessionID: sessionID}
	details, err := s.Connections.Get(c.Request.Context(), sessionID)
	if err != nil && !errors.Is(err, connections.ErrNotConnected) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load connection details"})
		return
	}
	if details != nil {
		credentials = *details
	}

	result, err := s.Publisher.Publish(c.Request.Context(), domain.PublishRequest{
		Platforms:   platforms,
		Media:       req.Media,
		Caption:     req.Caption,
		Hashtags:    req.Hashtags,
		Audience:    req.Audience,
		Prompt:      req.Prompt,
		Generated:   req.Generated,
		Credentials: credentials,
	})
	if err != nil {
		var partial *publisher.PartialFailureError
		if errors.As(err, &partial) {
			if result == nil {
				c.JSON(http.StatusBadGateway, gin.H{"errors": partial.Failures, "message": partial.Error()})
				return
			}
			c.JSON(http.StatusMultiStatus, gin.H{"post": result, "errors": partial.Failures, "message": partial.Error()})
			return
		}
		s.Logger.Error("Publish request failed", "session_id", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.GetMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": result})
}

func (s *Server) handleListPosts(c *gin.Context) {
	sessionID := c.GetString("session_id")

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	posts, err := s.PostRepo.ListBySession(c.Request.Context(), sessionID, limit)
	if err != nil {
		s.Logger.Error("Failed to list posts", "session_id", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (s *Server) handleDeletePost(c *gin.Context) {
	sessionID := c.GetString("session_id")
	id := c.Param("id")

	stored, err := s.PostRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	if stored.SessionID != sessionID {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	// Remove the live Facebook post first so the record is not dropped while
	// the remote object survives.
	if remoteID, ok := stored.RemoteIDs[domain.PlatformFacebook]; ok && remoteID != "" {
		details, err := s.Connections.Get(c.Request.Context(), sessionID)
		if err == nil && details.Facebook != nil {
			if err := s.Facebook.DeletePost(c.Request.Context(), details.Facebook.PageAccessToken, remoteID); err != nil {
				s.Logger.Warn("Failed to delete remote post", "post_id", id, "error", err)
				c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete remote post"})
				return
			}
		}
	}

	if err := s.PostRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) handleEngagement(c *gin.Context) {
	sessionID := c.GetString("session_id")
	id := c.Param("id")

	stored, err := s.PostRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	if stored.SessionID != sessionID {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	engagement := stored.Engagement

	// Refresh from the Graph API when the post has a live Facebook object;
	// otherwise the stored counters stand.
	if remoteID, ok := stored.RemoteIDs[domain.PlatformFacebook]; ok && remoteID != "" {
		details, err := s.Connections.Get(c.Request.Context(), sessionID)
		if err == nil && details.Facebook != nil {
			fresh, err := s.Facebook.Engagement(c.Request.Context(), details.Facebook.PageAccessToken, remoteID)
			if err != nil {
				s.Logger.Warn("Failed to refresh engagement", "post_id", id, "error", err)
			} else {
				engagement = fresh
				if err := s.PostRepo.UpdateEngagement(c.Request.Context(), id, fresh); err != nil {
					s.Logger.Warn("Failed to store refreshed engagement", "post_id", id, "error", err)
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"engagement": engagement,
		"formatted": gin.H{
			"likes":    formatter.FormatCount(engagement.Likes),
			"comments": formatter.FormatCount(engagement.Comments),
			"shares":   formatter.FormatCount(engagement.Shares),
		},
	})
}

type generateRequest struct {
	Prompt    string   `json:"prompt" binding:"required"`
	Platforms []string `json:"platforms"`
}

func (s *Server) handleGenerateContent(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platforms := make([]domain.Platform, 0, len(req.Platforms))
	for _, name := range req.Platforms {
		platform := domain.Platform(name)
		if !platform.Known() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown platform: " + name})
			return
		}
		platforms = append(platforms, platform)
	}
	if len(platforms) == 0 {
		platforms = []domain.Platform{domain.PlatformFacebook, domain.PlatformInstagram, domain.PlatformYouTube}
	}

	generated, err := s.Content.Generate(c.Request.Context(), req.Prompt, platforms)
	if err != nil {
		if errors.Is(err, content.ErrUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": content.ErrUnavailable.Error()})
			return
		}
		s.Logger.Error("Content generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate content"})
		return
	}

	c.JSON(http.StatusOK, generated)
}
