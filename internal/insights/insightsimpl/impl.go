package insightsimpl

import (
	"github.com/orgball2608/social-publisher/internal/facebook"
	"github.com/orgball2608/social-publisher/internal/insights"
	"github.com/orgball2608/social-publisher/internal/repositories/connection"
	"github.com/orgball2608/social-publisher/internal/repositories/post"
	"github.com/orgball2608/social-publisher/pkg/config"
	"github.com/orgball2608/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Facebook       facebook.Client
	PostRepo       post.Repository
	ConnectionRepo connection.Repository
	Logger         logger.Logger
	Config         *config.Config
}

type InsightsImpl struct {
	Facebook       facebook.Client
	PostRepo       post.Repository
	ConnectionRepo connection.Repository
	Logger         logger.Logger
	Config         *config.Config
}

func New(opts Opts) *InsightsImpl {
	return &InsightsImpl{
		Facebook:       opts.Facebook,
		PostRepo:       opts.PostRepo,
		ConnectionRepo: opts.ConnectionRepo,
		Logger:         opts.Logger.WithComponent("InsightsRefresher"),
		Config:         opts.Config,
	}
}

var _ insights.Client = (*InsightsImpl)(nil)
