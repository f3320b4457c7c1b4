package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/dinor-predictions/internal/platform/cache"
)

var kickoff = time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

func seedMatch(t *testing.T, db *memory.Database) match.Match {
	t.Helper()

	ctx := context.Background()
	teams := memory.NewTeamRepository(db)
	home, err := teams.Create(ctx, team.Team{Name: "Persija Jakarta"})
	if err != nil {
		t.Fatalf("create home team: %v", err)
	}
	away, err := teams.Create(ctx, team.Team{Name: "Persib Bandung"})
	if err != nil {
		t.Fatalf("create away team: %v", err)
	}

	created, err := memory.NewMatchRepository(db).Create(ctx, match.Match{
		HomeTeamID:         home.ID,
		AwayTeamID:         away.ID,
		MatchDate:          kickoff,
		Status:             match.StatusScheduled,
		IsActive:           true,
		PredictionsEnabled: true,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return created
}

func TestMatchRepository_ServesCachedReadsUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := memory.NewDatabase()
	created := seedMatch(t, db)
	store := basecache.NewStore(time.Minute)
	repo := NewMatchRepository(memory.NewMatchRepository(db), store)

	first, exists, err := repo.GetByID(ctx, created.ID)
	if err != nil || !exists {
		t.Fatalf("get match: exists=%t err=%v", exists, err)
	}
	if first.Status != match.StatusScheduled {
		t.Fatalf("unexpected status: %s", first.Status)
	}

	// A write behind the decorator is not visible until the entry is dropped.
	if _, err := memory.NewMatchRepository(db).UpdateStatus(ctx, created.ID, match.StatusScheduled, match.StatusLive, match.AuditEntry{ActorID: "admin"}); err != nil {
		t.Fatalf("update status behind cache: %v", err)
	}
	cached, _, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get cached match: %v", err)
	}
	if cached.Status != match.StatusScheduled {
		t.Fatalf("expected cached scheduled status, got %s", cached.Status)
	}

	if _, err := repo.RecordResult(ctx, created.ID, match.StatusLive, 2, 1, match.AuditEntry{ActorID: "admin"}); err != nil {
		t.Fatalf("record result: %v", err)
	}
	fresh, _, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get fresh match: %v", err)
	}
	if fresh.Status != match.StatusFinished || fresh.ScoringStatus != match.ScoringPending {
		t.Fatalf("expected finished match pending scoring, got %s/%s", fresh.Status, fresh.ScoringStatus)
	}
	if fresh.HomeScore == nil || *fresh.HomeScore != 2 {
		t.Fatalf("unexpected home score: %v", fresh.HomeScore)
	}
}

func TestMatchRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := memory.NewDatabase()
	created := seedMatch(t, db)
	repo := NewMatchRepository(memory.NewMatchRepository(db), basecache.NewStore(time.Minute))

	if _, err := repo.RecordResult(ctx, created.ID, match.StatusScheduled, 1, 1, match.AuditEntry{ActorID: "admin"}); err != nil {
		t.Fatalf("record result: %v", err)
	}
	first, _, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	*first.HomeScore = 9

	second, _, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if *second.HomeScore != 1 {
		t.Fatalf("cached value was mutated through a returned pointer: %d", *second.HomeScore)
	}
}

func TestPredictionRepository_ApplyScoresDropsCachedMatches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := memory.NewDatabase()
	created := seedMatch(t, db)
	store := basecache.NewStore(time.Minute)
	matches := NewMatchRepository(memory.NewMatchRepository(db), store)
	predictions := NewPredictionRepository(memory.NewPredictionRepository(db), store)

	saved, err := predictions.Upsert(ctx, prediction.UpsertInput{
		Prediction: prediction.Prediction{
			UserID:             "u1",
			MatchID:            created.ID,
			PredictedHomeScore: 1,
			PredictedAwayScore: 0,
			PredictedWinner:    prediction.WinnerHome,
		},
		Now:             kickoff.Add(-time.Hour),
		StartingBalance: 1000,
	})
	if err != nil {
		t.Fatalf("upsert prediction: %v", err)
	}
	if _, err := matches.RecordResult(ctx, created.ID, match.StatusScheduled, 1, 0, match.AuditEntry{ActorID: "admin"}); err != nil {
		t.Fatalf("record result: %v", err)
	}
	pending, _, err := matches.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if pending.ScoringStatus != match.ScoringPending {
		t.Fatalf("expected pending scoring, got %s", pending.ScoringStatus)
	}

	err = predictions.ApplyScores(ctx, prediction.ScoreBatch{
		MatchID:   created.ID,
		HomeScore: 1,
		AwayScore: 0,
		Scores: []prediction.Score{
			{PredictionID: saved.ID, UserID: "u1", Points: 3, Kind: prediction.ScoreKindExact},
		},
		ScoredAt: kickoff.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("apply scores: %v", err)
	}

	scored, _, err := matches.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if scored.ScoringStatus != match.ScoringCompleted {
		t.Fatalf("expected completed scoring after invalidation, got %s", scored.ScoringStatus)
	}
}

func TestTournamentRepository_RegisterRefreshesCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := memory.NewDatabase()
	repo := NewTournamentRepository(memory.NewTournamentRepository(db), basecache.NewStore(time.Minute))

	created, err := repo.Create(ctx, tournament.Tournament{
		Name:      "Cup",
		Slug:      "cup",
		Status:    tournament.StatusUpcoming,
		StartDate: kickoff,
		EndDate:   kickoff.Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if _, _, err := repo.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if _, err := repo.Register(ctx, created.ID, "u1", kickoff.Add(-time.Hour)); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, _, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}
	if got.ParticipantsCount != 1 {
		t.Fatalf("expected participants count 1, got %d", got.ParticipantsCount)
	}
}

func TestMatchFilterKey(t *testing.T) {
	t.Parallel()

	id := int64(3)
	a := matchFilterKey(match.ListFilter{TournamentID: &id, ScoringStatus: []match.ScoringStatus{match.ScoringFailed, match.ScoringPending}})
	b := matchFilterKey(match.ListFilter{TournamentID: &id, ScoringStatus: []match.ScoringStatus{match.ScoringPending, match.ScoringFailed}})
	if a != b {
		t.Fatalf("expected scoring status order not to matter: %q vs %q", a, b)
	}
	if matchFilterKey(match.ListFilter{}) != "all" {
		t.Fatalf("unexpected empty filter key: %q", matchFilterKey(match.ListFilter{}))
	}
	if matchFilterKey(match.ListFilter{Status: match.StatusLive}) == matchFilterKey(match.ListFilter{Status: match.StatusFinished}) {
		t.Fatalf("expected distinct keys for distinct statuses")
	}
}
