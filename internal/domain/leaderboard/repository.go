package leaderboard

import (
	"context"
	"time"
)

// RankFunc turns per-user aggregates into ranked entries.
type RankFunc func(scope Scope, stats []Stats) []Entry

// Repository describes leaderboard persistence needs from use cases.
type Repository interface {
	// RecomputeScope serializes recomputes of one scope across processes. Under
	// that lock it sums calculated predictions per user (tournament scopes only
	// count active participants), ranks them with rank, and writes the result,
	// snapshotting each stored rank into previous rank before overwriting it.
	// Users missing from the ranked entries are dropped.
	RecomputeScope(ctx context.Context, scope Scope, rank RankFunc, updatedAt time.Time) ([]Entry, error)
	AggregateUserStats(ctx context.Context, scope Scope, userID string) (Stats, error)
	ListByScope(ctx context.Context, scope Scope, limit int) ([]Entry, error)
	GetEntry(ctx context.Context, scope Scope, userID string) (Entry, bool, error)
	// CountGroupsAhead counts distinct (points, accuracy, predictions) groups of
	// other users that strictly outrank the given stats.
	CountGroupsAhead(ctx context.Context, scope Scope, userID string, points int, accuracy float64, totalPredictions int) (int, error)
}
