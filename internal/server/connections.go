package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/social-publisher/internal/connections"
	"github.com/orgball2608/social-publisher/internal/domain"
)

type connectFacebookRequest struct {
	UserToken string `json:"user_token" binding:"required"`
}

// connectionView is the token-free representation returned to clients.
type connectionView struct {
	Facebook  *facebookView  `json:"facebook,omitempty"`
	Instagram *instagramView `json:"instagram,omitempty"`
	YouTube   *youtubeView   `json:"youtube,omitempty"`
}

type facebookView struct {
	PageID   string `json:"page_id"`
	PageName string `json:"page_name"`
}

type instagramView struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type youtubeView struct {
	ChannelID string `json:"channel_id"`
	Connected bool   `json:"connected"`
}

func viewOf(details *domain.ConnectionDetails) connectionView {
	view := connectionView{}
	if details.Facebook != nil {
		view.Facebook = &facebookView{PageID: details.Facebook.PageID, PageName: details.Facebook.PageName}
	}
	if details.Instagram != nil {
		view.Instagram = &instagramView{UserID: details.Instagram.UserID, Username: details.Instagram.Username}
	}
	if details.YouTube != nil {
		view.YouTube = &youtubeView{ChannelID: details.YouTube.ChannelID, Connected: details.YouTube.Connected}
	}
	return view
}

func (s *Server) handleConnectFacebook(c *gin.Context) {
	sessionID := c.GetString("session_id")

	var req connectFacebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details, err := s.Connections.ConnectFacebook(c.Request.Context(), sessionID, req.UserToken)
	if err != nil {
		if errors.Is(err, connections.ErrNoManagedPages) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": connections.ErrNoManagedPages.Error()})
			return
		}
		s.Logger.Error("Facebook connect failed", "session_id", sessionID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to connect facebook account"})
		return
	}

	c.JSON(http.StatusOK, viewOf(details))
}

func (s *Server) handleGetConnections(c *gin.Context) {
	sessionID := c.GetString("session_id")

	details, err := s.Connections.Get(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, connections.ErrNotConnected) {
			c.JSON(http.StatusNotFound, gin.H{"error": connections.ErrNotConnected.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load connection details"})
		return
	}

	c.JSON(http.StatusOK, viewOf(details))
}

func (s *Server) handleDisconnect(c *gin.Context) {
	sessionID := c.GetString("session_id")

	if err := s.Connections.Disconnect(c.Request.Context(), sessionID); err != nil {
		if errors.Is(err, connections.ErrNotConnected) {
			c.JSON(http.StatusNotFound, gin.H{"error": connections.ErrNotConnected.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to disconnect"})
		return
	}

	c.Status(http.StatusNoContent)
}
