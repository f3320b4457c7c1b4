package usecase

import (
	"context"
	"time"
)

// RetryScoringJobPath is the internal job that rescores incomplete matches.
const RetryScoringJobPath = "/v1/internal/jobs/retry-scoring"

// JobQueue schedules a delayed call to one of the internal job endpoints.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

func (noopJobQueue) Enqueue(context.Context, string, any, time.Duration, string) error {
	return nil
}
