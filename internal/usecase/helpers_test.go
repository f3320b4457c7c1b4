package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

type engine struct {
	clock *testClock

	db              *memory.Database
	teamRepo        *memory.TeamRepository
	matchRepo       *memory.MatchRepository
	predictionRepo  *memory.PredictionRepository
	leaderboardRepo *memory.LeaderboardRepository
	tournamentRepo  *memory.TournamentRepository
	walletRepo      *memory.WalletRepository

	teams       *TeamService
	matches     *MatchService
	predictions *PredictionService
	scoring     *ScoringService
	leaderboard *LeaderboardService
	tournaments *TournamentService
	wallet      *WalletService

	homeTeamID int64
	awayTeamID int64
}

const testStartingBalance = 1000

func newEngine(t *testing.T) *engine {
	t.Helper()

	clock := &testClock{now: baseTime}
	db := memory.NewDatabase()
	e := &engine{
		clock:           clock,
		db:              db,
		teamRepo:        memory.NewTeamRepository(db),
		matchRepo:       memory.NewMatchRepository(db),
		predictionRepo:  memory.NewPredictionRepository(db),
		leaderboardRepo: memory.NewLeaderboardRepository(db),
		tournamentRepo:  memory.NewTournamentRepository(db),
		walletRepo:      memory.NewWalletRepository(db),
	}

	logger := logging.NewNop()
	e.teams = NewTeamService(e.teamRepo)
	e.leaderboard = NewLeaderboardService(e.leaderboardRepo, e.tournamentRepo, LeaderboardConfig{}, logger)
	e.scoring = NewScoringService(e.matchRepo, e.predictionRepo, e.leaderboard, 2, logger)
	e.matches = NewMatchService(e.matchRepo, e.teamRepo, e.tournamentRepo, e.scoring, logger)
	e.predictions = NewPredictionService(e.predictionRepo, e.matchRepo, e.tournamentRepo, testStartingBalance)
	e.tournaments = NewTournamentService(e.tournamentRepo, e.leaderboard, logger)
	e.wallet = NewWalletService(e.walletRepo, testStartingBalance)

	e.leaderboard.now = clock.Now
	e.scoring.now = clock.Now
	e.matches.now = clock.Now
	e.predictions.now = clock.Now
	e.tournaments.now = clock.Now

	ctx := context.Background()
	home, err := e.teamRepo.Create(ctx, team.Team{Name: "Persija Jakarta", ShortName: "PSJ"})
	if err != nil {
		t.Fatalf("create home team: %v", err)
	}
	away, err := e.teamRepo.Create(ctx, team.Team{Name: "Persib Bandung", ShortName: "PSB"})
	if err != nil {
		t.Fatalf("create away team: %v", err)
	}
	e.homeTeamID = home.ID
	e.awayTeamID = away.ID

	return e
}

// openMatch creates a scheduled match kicking off in two hours.
func (e *engine) openMatch(t *testing.T, tournamentID *int64) match.Match {
	t.Helper()

	created, err := e.matches.Create(context.Background(), CreateMatchInput{
		HomeTeamID:   e.homeTeamID,
		AwayTeamID:   e.awayTeamID,
		TournamentID: tournamentID,
		MatchDate:    e.clock.Now().Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return created
}

// openTournament creates a tournament whose registration window contains now.
func (e *engine) openTournament(t *testing.T, slug string, maxParticipants *int) tournament.Tournament {
	t.Helper()

	now := e.clock.Now()
	registrationStart := now.Add(-time.Hour)
	registrationEnd := now.Add(time.Hour)
	created, err := e.tournaments.Create(context.Background(), CreateTournamentInput{
		Name:              "Cup " + slug,
		Slug:              slug,
		StartDate:         now.Add(2 * time.Hour),
		EndDate:           now.Add(72 * time.Hour),
		RegistrationStart: &registrationStart,
		RegistrationEnd:   &registrationEnd,
		MaxParticipants:   maxParticipants,
		IsPublic:          true,
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if created.Status != tournament.StatusRegistrationOpen {
		t.Fatalf("expected registration_open tournament, got %s", created.Status)
	}
	return created
}

func (e *engine) predict(t *testing.T, userID string, matchID int64, home, away int) {
	t.Helper()

	if _, err := e.predictions.Submit(context.Background(), SubmitPredictionInput{
		UserID:    userID,
		MatchID:   matchID,
		HomeScore: home,
		AwayScore: away,
	}); err != nil {
		t.Fatalf("submit prediction user=%s match=%d: %v", userID, matchID, err)
	}
}

func (e *engine) finish(t *testing.T, matchID int64, home, away int) RecordResultOutcome {
	t.Helper()

	outcome, err := e.matches.RecordResult(context.Background(), "admin-1", matchID, home, away)
	if err != nil {
		t.Fatalf("record result match=%d: %v", matchID, err)
	}
	return outcome
}

// storedPrediction reads the user's prediction for a match straight from the repository.
func (e *engine) storedPrediction(t *testing.T, userID string, matchID int64) prediction.Prediction {
	t.Helper()

	items, err := e.predictionRepo.ListByUser(context.Background(), userID, []int64{matchID})
	if err != nil {
		t.Fatalf("list predictions user=%s: %v", userID, err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one prediction for user=%s match=%d, got %d", userID, matchID, len(items))
	}
	return items[0]
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}
