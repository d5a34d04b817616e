package insights

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=insights.go -destination=mocks/mock.go
type Client interface {
	// ScheduleRefresh starts the periodic engagement refresh job. The job
	// stops when ctx is cancelled.
	ScheduleRefresh(ctx context.Context) error

	// RefreshAll re-fetches engagement for every recent post once.
	RefreshAll(ctx context.Context) error
}
