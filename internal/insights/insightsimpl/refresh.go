package insightsimpl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/repositories/connection"
	"github.com/orgball2608/social-publisher/pkg/retry"
	"github.com/panjf2000/ants/v2"
)

const refreshWorkers = 5

// ScheduleRefresh runs RefreshAll on a fixed interval until ctx is
// cancelled.
func (i *InsightsImpl) ScheduleRefresh(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(i.Config.Insights.RefreshInterval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				i.Logger.Info("Context cancelled, stopping engagement refresh schedule")
				return
			}
			taskCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()

			if err := i.RefreshAll(taskCtx); err != nil {
				i.Logger.Error("Engagement refresh run failed", "error", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule engagement refresh: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		i.Logger.Info("Stopping engagement refresh scheduler")
		if err := scheduler.Shutdown(); err != nil {
			i.Logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}

// RefreshAll walks every post published inside the configured window and
// overwrites its engagement counters from the Graph API. Page tokens are
// looked up per session and cached for the run.
func (i *InsightsImpl) RefreshAll(ctx context.Context) error {
	since := time.Now().Add(-i.Config.Insights.RefreshWindow)
	posts, err := i.PostRepo.ListPostedSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to list recent posts: %w", err)
	}
	if len(posts) == 0 {
		i.Logger.Debug("No recent posts to refresh")
		return nil
	}

	i.Logger.Info("Refreshing engagement", "posts", len(posts))

	tokens := newTokenCache(i.ConnectionRepo)

	var wg sync.WaitGroup
	pool, _ := ants.NewPool(refreshWorkers, ants.WithPreAlloc(true))
	defer pool.Release()

	for _, p := range posts {
		postToRefresh := p
		remoteID, ok := postToRefresh.RemoteIDs[domain.PlatformFacebook]
		if !ok || remoteID == "" {
			continue
		}

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := i.refreshPost(ctx, tokens, postToRefresh, remoteID); err != nil {
				i.Logger.Warn("Failed to refresh post engagement",
					"post_id", postToRefresh.ID,
					"error", err)
			}
		})
		if err != nil {
			wg.Done()
			i.Logger.Error("Failed to submit refresh job", "post_id", postToRefresh.ID, "error", err)
		}
	}

	wg.Wait()
	return nil
}

func (i *InsightsImpl) refreshPost(ctx context.Context, tokens *tokenCache, p *domain.Post, remoteID string) error {
	token, err := tokens.get(ctx, p.SessionID)
	if err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			// The session disconnected after publishing; its posts keep
			// their last known counters.
			return nil
		}
		return err
	}

	var engagement domain.Engagement
	err = retry.Do(ctx, i.Logger, "fetch engagement", func() error {
		var fetchErr error
		engagement, fetchErr = i.Facebook.Engagement(ctx, token, remoteID)
		return fetchErr
	}, retry.DefaultConfig())
	if err != nil {
		return err
	}

	return i.PostRepo.UpdateEngagement(ctx, p.ID, engagement)
}

// tokenCache memoizes session page tokens for one refresh run, including
// negative results.
type tokenCache struct {
	repo connection.Repository

	mu     sync.Mutex
	tokens map[string]string
	errs   map[string]error
}

func newTokenCache(repo connection.Repository) *tokenCache {
	return &tokenCache{
		repo:   repo,
		tokens: make(map[string]string),
		errs:   make(map[string]error),
	}
}

func (t *tokenCache) get(ctx context.Context, sessionID string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if token, ok := t.tokens[sessionID]; ok {
		return token, nil
	}
	if err, ok := t.errs[sessionID]; ok {
		return "", err
	}

	details, err := t.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		t.errs[sessionID] = err
		return "", err
	}
	if details.Facebook == nil {
		err := connection.ErrNotFound
		t.errs[sessionID] = err
		return "", err
	}

	t.tokens[sessionID] = details.Facebook.PageAccessToken
	return details.Facebook.PageAccessToken, nil
}
