package prediction

import (
	"context"
	"time"
)

// UpsertInput carries one submission. A non-nil Prediction.BetAmount replaces
// the wallet stake of the prediction; nil clears any previous stake.
type UpsertInput struct {
	Prediction      Prediction
	Now             time.Time
	StartingBalance int64
}

// ScoreBatch is one scoring run of a match. HomeScore and AwayScore are the
// result the scores were computed from.
type ScoreBatch struct {
	MatchID   int64
	HomeScore int
	AwayScore int
	Scores    []Score
	ScoredAt  time.Time
}

// Repository describes prediction persistence needs from use cases.
type Repository interface {
	// Upsert inserts or overwrites the (user, match) prediction atomically,
	// rejecting with ErrWindowClosed when the match no longer accepts predictions at Now.
	Upsert(ctx context.Context, input UpsertInput) (Prediction, error)
	ListByUser(ctx context.Context, userID string, matchIDs []int64) ([]Prediction, error)
	ListByMatch(ctx context.Context, matchID int64) ([]Prediction, error)
	// ApplyScores writes every score of the match in one transaction and marks
	// the match scoring completed. It fails with ErrScoreSetChanged when scores
	// do not cover exactly the stored predictions of the match, or when the
	// stored result is no longer the one the batch was scored against.
	ApplyScores(ctx context.Context, batch ScoreBatch) error
}
