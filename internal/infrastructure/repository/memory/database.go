package memory

import (
	"sync"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
)

type predictionKey struct {
	userID  string
	matchID int64
}

type participantKey struct {
	tournamentID int64
	userID       string
}

type walletKey struct {
	predictionID int64
	kind         wallet.EntryKind
}

// Database holds every table behind one lock so operations spanning several
// tables (upsert plus stake, scoring plus payouts, withdraw plus leaderboard)
// stay atomic, the way a single SQL transaction would.
type Database struct {
	mu  sync.RWMutex
	now func() time.Time

	teams      map[int64]team.Team
	nextTeamID int64

	matches     map[int64]match.Match
	nextMatchID int64
	audit       map[int64][]match.AuditEntry
	nextAuditID int64

	predictions      map[int64]prediction.Prediction
	predictionByKey  map[predictionKey]int64
	nextPredictionID int64

	tournaments      map[int64]tournament.Tournament
	tournamentSlugs  map[string]int64
	nextTournamentID int64
	participants     map[participantKey]tournament.Participant

	leaderboard map[string]map[string]leaderboard.Entry

	walletEntries map[walletKey]wallet.Entry
	nextWalletID  int64
}

func NewDatabase() *Database {
	return &Database{
		now:             time.Now,
		teams:           make(map[int64]team.Team),
		matches:         make(map[int64]match.Match),
		audit:           make(map[int64][]match.AuditEntry),
		predictions:     make(map[int64]prediction.Prediction),
		predictionByKey: make(map[predictionKey]int64),
		tournaments:     make(map[int64]tournament.Tournament),
		tournamentSlugs: make(map[string]int64),
		participants:    make(map[participantKey]tournament.Participant),
		leaderboard:     make(map[string]map[string]leaderboard.Entry),
		walletEntries:   make(map[walletKey]wallet.Entry),
	}
}

func (db *Database) timestamp() time.Time {
	return db.now().UTC()
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneMatch(item match.Match) match.Match {
	item.TournamentID = cloneInt64(item.TournamentID)
	item.PredictionsCloseAt = cloneTime(item.PredictionsCloseAt)
	item.HomeScore = cloneInt(item.HomeScore)
	item.AwayScore = cloneInt(item.AwayScore)
	item.ScoredAt = cloneTime(item.ScoredAt)
	return item
}

func clonePrediction(item prediction.Prediction) prediction.Prediction {
	item.BetAmount = cloneInt64(item.BetAmount)
	return item
}

func cloneTournament(item tournament.Tournament) tournament.Tournament {
	item.RegistrationStart = cloneTime(item.RegistrationStart)
	item.RegistrationEnd = cloneTime(item.RegistrationEnd)
	item.MaxParticipants = cloneInt(item.MaxParticipants)
	return item
}

func cloneEntry(item leaderboard.Entry) leaderboard.Entry {
	item.PreviousRank = cloneInt(item.PreviousRank)
	if item.Scope.TournamentID != nil {
		item.Scope = leaderboard.ForTournament(*item.Scope.TournamentID)
	}
	return item
}
