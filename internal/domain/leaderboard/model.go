package leaderboard

import (
	"strconv"
	"time"
)

// Scope is the aggregation boundary: global or a single tournament.
type Scope struct {
	TournamentID *int64
}

func Global() Scope {
	return Scope{}
}

func ForTournament(tournamentID int64) Scope {
	id := tournamentID
	return Scope{TournamentID: &id}
}

func (s Scope) IsGlobal() bool {
	return s.TournamentID == nil
}

// Key is the stable storage key of the scope.
func (s Scope) Key() string {
	if s.TournamentID == nil {
		return "global"
	}
	return "tournament:" + strconv.FormatInt(*s.TournamentID, 10)
}

// Stats is the per-user aggregate over calculated predictions in a scope.
type Stats struct {
	UserID           string
	TotalPoints      int
	TotalPredictions int
	CorrectScores    int
	CorrectWinners   int
}

type Entry struct {
	Scope              Scope
	UserID             string
	TotalPoints        int
	TotalPredictions   int
	CorrectScores      int
	CorrectWinners     int
	AccuracyPercentage float64
	Rank               int
	PreviousRank       *int
	UpdatedAt          time.Time
}

type RankMovement string

const (
	RankMovementUp   RankMovement = "up"
	RankMovementDown RankMovement = "down"
	RankMovementSame RankMovement = "same"
	RankMovementNew  RankMovement = "new"
)

// Position is one user's standing resolved by the incremental lookup.
type Position struct {
	Entry    Entry
	Ranked   bool
	Movement RankMovement
}
