package facebookimpl

import (
	"github.com/orgball2608/social-publisher/internal/facebook"
	"github.com/orgball2608/social-publisher/internal/graph"
	"github.com/orgball2608/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type FbImpl struct {
	Graph  *graph.Client
	Logger logger.Logger
}

type Opts struct {
	fx.In

	Graph  *graph.Client
	Logger logger.Logger
}

func New(opts Opts) *FbImpl {
	return &FbImpl{
		Graph:  opts.Graph,
		Logger: opts.Logger.WithComponent("FacebookPublisher"),
	}
}

var _ facebook.Client = (*FbImpl)(nil)
