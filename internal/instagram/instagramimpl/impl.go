package instagramimpl

import (
	"time"

	"github.com/orgball2608/social-publisher/internal/graph"
	"github.com/orgball2608/social-publisher/internal/instagram"
	"github.com/orgball2608/social-publisher/pkg/config"
	"github.com/orgball2608/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type IgImpl struct {
	Graph        *graph.Client
	Logger       logger.Logger
	PollInterval time.Duration
	PollAttempts int
}

type Opts struct {
	fx.In

	Graph  *graph.Client
	Logger logger.Logger
	Config *config.Config
}

func New(opts Opts) *IgImpl {
	return &IgImpl{
		Graph:        opts.Graph,
		Logger:       opts.Logger.WithComponent("InstagramPublisher"),
		PollInterval: opts.Config.Instagram.PollInterval,
		PollAttempts: opts.Config.Instagram.PollAttempts,
	}
}

var _ instagram.Client = (*IgImpl)(nil)
