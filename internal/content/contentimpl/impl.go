package contentimpl

import (
	"context"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/orgball2608/social-publisher/internal/content"
	"github.com/orgball2608/social-publisher/pkg/config"
	"github.com/orgball2608/social-publisher/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

type GeminiImpl struct {
	Model   *genai.GenerativeModel
	Logger  logger.Logger
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

type Opts struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) (*GeminiImpl, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(opts.Config.Gemini.APIKey))
	if err != nil {
		return nil, err
	}

	opts.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	log := opts.Logger.WithComponent("ContentGenerator")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &GeminiImpl{
		Model:   client.GenerativeModel(opts.Config.Gemini.Model),
		Logger:  log,
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
	}, nil
}

var _ content.Client = (*GeminiImpl)(nil)
