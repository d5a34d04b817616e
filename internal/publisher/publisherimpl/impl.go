package publisherimpl

import (
	"github.com/orgball2608/social-publisher/internal/facebook"
	"github.com/orgball2608/social-publisher/internal/instagram"
	"github.com/orgball2608/social-publisher/internal/publisher"
	"github.com/orgball2608/social-publisher/internal/repositories/post"
	"github.com/orgball2608/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Facebook  facebook.Client
	Instagram instagram.Client
	PostRepo  post.Repository
	Logger    logger.Logger
}

type PublisherImpl struct {
	Facebook  facebook.Client
	Instagram instagram.Client
	PostRepo  post.Repository
	Logger    logger.Logger
}

func New(opts Opts) *PublisherImpl {
	return &PublisherImpl{
		Facebook:  opts.Facebook,
		Instagram: opts.Instagram,
		PostRepo:  opts.PostRepo,
		Logger:    opts.Logger.WithComponent("PublishOrchestrator"),
	}
}

var _ publisher.Client = (*PublisherImpl)(nil)
