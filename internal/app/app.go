package app

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/orgball2608/social-publisher/internal/connections"
	"github.com/orgball2608/social-publisher/internal/connections/connectionsimpl"
	"github.com/orgball2608/social-publisher/internal/content"
	"github.com/orgball2608/social-publisher/internal/content/contentimpl"
	"github.com/orgball2608/social-publisher/internal/facebook"
	"github.com/orgball2608/social-publisher/internal/facebook/facebookimpl"
	"github.com/orgball2608/social-publisher/internal/graph"
	"github.com/orgball2608/social-publisher/internal/insights"
	"github.com/orgball2608/social-publisher/internal/insights/insightsimpl"
	"github.com/orgball2608/social-publisher/internal/instagram"
	"github.com/orgball2608/social-publisher/internal/instagram/instagramimpl"
	_ "github.com/orgball2608/social-publisher/internal/migrations"
	"github.com/orgball2608/social-publisher/internal/pgx"
	"github.com/orgball2608/social-publisher/internal/publisher"
	"github.com/orgball2608/social-publisher/internal/publisher/publisherimpl"
	"github.com/orgball2608/social-publisher/internal/ratelimit"
	"github.com/orgball2608/social-publisher/internal/repositories/connection"
	"github.com/orgball2608/social-publisher/internal/repositories/post"
	"github.com/orgball2608/social-publisher/internal/server"
	"github.com/orgball2608/social-publisher/pkg/config"
	"github.com/orgball2608/social-publisher/pkg/logger"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		graph.New,
	),
	fx.Provide(
		fx.Annotate(
			facebookimpl.New,
			fx.As(new(facebook.Client)),
		),
		fx.Annotate(
			instagramimpl.New,
			fx.As(new(instagram.Client)),
		),
		fx.Annotate(
			publisherimpl.New,
			fx.As(new(publisher.Client)),
		),
		fx.Annotate(
			connectionsimpl.New,
			fx.As(new(connections.Client)),
		),
		fx.Annotate(
			contentimpl.New,
			fx.As(new(content.Client)),
		),
		fx.Annotate(
			insightsimpl.New,
			fx.As(new(insights.Client)),
		),
		newLimiter,
	),
	post.Module,
	connection.Module,
	fx.Invoke(migrate),
	fx.Invoke(server.New),
	fx.Invoke(run),
)

// One publish every 5 seconds per session, with a burst of 3.
func newLimiter() ratelimit.Limiter {
	return ratelimit.NewInMemoryLimiter(1, 5*time.Second, 3)
}

// migrate applies pending schema migrations on startup. The migrations are
// Go-based and registered by importing internal/migrations.
func migrate(cfg *config.Config, log logger.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.Up(db, "."); err != nil {
		return err
	}
	log.Info("Database migrations applied")
	return nil
}

func run(lc fx.Lifecycle, log logger.Logger, insightsClient insights.Client) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := insightsClient.ScheduleRefresh(ctx); err != nil {
				log.Error("Failed to start insights refresher", "error", err)
				return err
			}
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
