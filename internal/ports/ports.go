package ports

import (
	"context"
	"time"

	"CowsayNews/internal/domain"
)

// HeadlineSource pulls current headlines from the upstream news service.
type HeadlineSource interface {
	Fetch(ctx context.Context) ([]domain.HeadlineRecord, error)
}

// TextModel issues a single text-completion request and returns the
// trimmed response body.
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PostPublisher pushes the rendered document to the blogging target.
type PostPublisher interface {
	Publish(ctx context.Context, title, html string) (domain.PublishResult, error)
}

// Pacer blocks for the configured delay, honoring context cancellation.
// Injected so tests run with a zero-delay policy.
type Pacer interface {
	Pace(ctx context.Context)
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
