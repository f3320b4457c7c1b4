package prediction

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinScore = 0
	MaxScore = 20
)

var (
	ErrWindowClosed    = errors.New("prediction window is closed")
	ErrNotParticipant  = errors.New("user is not an active participant of the tournament")
	ErrScoreSetChanged = errors.New("predictions or result changed during scoring")
)

type Winner string

const (
	WinnerHome Winner = "home"
	WinnerAway Winner = "away"
	WinnerDraw Winner = "draw"
)

// DeriveWinner maps a scoreline to its outcome.
func DeriveWinner(home, away int) Winner {
	switch {
	case home > away:
		return WinnerHome
	case home < away:
		return WinnerAway
	default:
		return WinnerDraw
	}
}

// ScoreKind classifies a scored prediction.
type ScoreKind string

const (
	ScoreKindNone   ScoreKind = ""
	ScoreKindExact  ScoreKind = "exact"
	ScoreKindWinner ScoreKind = "winner"
	ScoreKindMiss   ScoreKind = "miss"
)

type Prediction struct {
	ID                 int64
	UserID             string
	MatchID            int64
	PredictedHomeScore int
	PredictedAwayScore int
	PredictedWinner    Winner
	PointsEarned       int
	IsCalculated       bool
	ScoreKind          ScoreKind
	BetAmount          *int64
	SubmitterIP        string
	UserAgent          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func ValidateScores(home, away int) error {
	if home < MinScore || home > MaxScore {
		return fmt.Errorf("predicted home score must be between %d and %d", MinScore, MaxScore)
	}
	if away < MinScore || away > MaxScore {
		return fmt.Errorf("predicted away score must be between %d and %d", MinScore, MaxScore)
	}
	return nil
}

// Score is the scoring engine output for one prediction.
type Score struct {
	PredictionID int64
	UserID       string
	Points       int
	Kind         ScoreKind
	// Payout is credited to the wallet ledger for predictions carrying a bet.
	Payout *int64
}
