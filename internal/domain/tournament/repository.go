package tournament

import (
	"context"
	"time"
)

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, tournamentID int64) (Tournament, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Tournament, error)
	Create(ctx context.Context, item Tournament) (Tournament, error)
	UpdateStatus(ctx context.Context, tournamentID int64, status Status, overridden bool) error
	GetParticipant(ctx context.Context, tournamentID int64, userID string) (Participant, bool, error)
	// Register locks the tournament row, re-checks the cap and duplicate
	// registration, then inserts or reactivates the participant and increments
	// the cached counter in one transaction.
	Register(ctx context.Context, tournamentID int64, userID string, now time.Time) (Participant, error)
	// Withdraw marks the participant withdrawn, decrements the counter and
	// removes the tournament leaderboard row in one transaction.
	Withdraw(ctx context.Context, tournamentID int64, userID string, now time.Time) error
	// RecountParticipants resets the cached counter from active rows and
	// returns the previous and current values.
	RecountParticipants(ctx context.Context, tournamentID int64) (before int, after int, err error)
}
