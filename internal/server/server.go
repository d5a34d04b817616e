package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/orgball2608/social-publisher/internal/connections"
	"github.com/orgball2608/social-publisher/internal/content"
	"github.com/orgball2608/social-publisher/internal/facebook"
	"github.com/orgball2608/social-publisher/internal/publisher"
	"github.com/orgball2608/social-publisher/internal/ratelimit"
	"github.com/orgball2608/social-publisher/internal/repositories/post"
	"github.com/orgball2608/social-publisher/pkg/config"
	"github.com/orgball2608/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type Server struct {
	Publisher   publisher.Client
	Connections connections.Client
	Content     content.Client
	Facebook    facebook.Client
	PostRepo    post.Repository
	Limiter     ratelimit.Limiter
	Logger      logger.Logger
	Config      *config.Config
}

type Opts struct {
	fx.In

	LC          fx.Lifecycle
	Publisher   publisher.Client
	Connections connections.Client
	Content     content.Client
	Facebook    facebook.Client
	PostRepo    post.Repository
	Limiter     ratelimit.Limiter
	Logger      logger.Logger
	Config      *config.Config
}

// New builds the gin engine and hangs the http.Server off the fx lifecycle.
func New(opts Opts) *Server {
	s := &Server{
		Publisher:   opts.Publisher,
		Connections: opts.Connections,
		Content:     opts.Content,
		Facebook:    opts.Facebook,
		PostRepo:    opts.PostRepo,
		Limiter:     opts.Limiter,
		Logger:      opts.Logger.WithComponent("HTTPServer"),
		Config:      opts.Config,
	}

	if opts.Config.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(opts.Config.App.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.registerRoutes(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				s.Logger.Info("Starting HTTP server", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.Logger.Error("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return s
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.handleHealth)

	api := engine.Group("/api/v1")
	api.Use(s.requireSession())

	api.POST("/connections/facebook", s.handleConnectFacebook)
	api.GET("/connections", s.handleGetConnections)
	api.DELETE("/connections", s.handleDisconnect)

	api.POST("/posts/publish", s.handlePublish)
	api.GET("/posts", s.handleListPosts)
	api.DELETE("/posts/:id", s.handleDeletePost)
	api.GET("/posts/:id/engagement", s.handleEngagement)

	api.POST("/content/generate", s.handleGenerateContent)
}

// requireSession reads the session identity every API call is scoped to.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing X-Session-ID header"})
			return
		}
		c.Set("session_id", sessionID)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
