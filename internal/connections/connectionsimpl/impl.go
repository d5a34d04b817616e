package connectionsimpl

import (
	"github.com/orgball2608/social-publisher/internal/connections"
	"github.com/orgball2608/social-publisher/internal/graph"
	"github.com/orgball2608/social-publisher/internal/repositories/connection"
	"github.com/orgball2608/social-publisher/pkg/logger"
	"go.uber.org/fx"
)

type ConnImpl struct {
	Graph          *graph.Client
	ConnectionRepo connection.Repository
	Logger         logger.Logger
}

type Opts struct {
	fx.In

	Graph          *graph.Client
	ConnectionRepo connection.Repository
	Logger         logger.Logger
}

func New(opts Opts) *ConnImpl {
	return &ConnImpl{
		Graph:          opts.Graph,
		ConnectionRepo: opts.ConnectionRepo,
		Logger:         opts.Logger.WithComponent("Connections"),
	}
}

var _ connections.Client = (*ConnImpl)(nil)
