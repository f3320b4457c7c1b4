package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
)

func globalScope() leaderboard.Scope {
	return leaderboard.Global()
}

func TestLeaderboardService_RankingOrderAndPreviousRank(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()

	m1 := e.openMatch(t, nil)
	e.predict(t, "alice", m1.ID, 2, 1)
	e.predict(t, "bob", m1.ID, 1, 0)
	e.predict(t, "carol", m1.ID, 0, 2)
	e.finish(t, m1.ID, 2, 1)

	first, err := e.leaderboard.List(ctx, globalScope(), 0)
	if err != nil {
		t.Fatalf("list leaderboard: %v", err)
	}
	assertOrder(t, first, "alice", "bob", "carol")
	for _, entry := range first {
		if entry.PreviousRank != nil {
			t.Fatalf("first computation must not carry a previous rank: %+v", entry)
		}
	}

	m2 := e.openMatch(t, nil)
	e.predict(t, "carol", m2.ID, 3, 3)
	e.predict(t, "alice", m2.ID, 0, 1)
	e.finish(t, m2.ID, 3, 3)

	second, err := e.leaderboard.List(ctx, globalScope(), 0)
	if err != nil {
		t.Fatalf("list leaderboard: %v", err)
	}
	// carol: 3 pts, 50%, 2 preds. alice: 3 pts, 50%, 2 preds. bob: 1 pt, 100%, 1 pred.
	if second[0].Rank != 1 || second[1].Rank != 1 || second[2].Rank != 2 {
		t.Fatalf("expected dense ranks 1,1,2, got %d,%d,%d", second[0].Rank, second[1].Rank, second[2].Rank)
	}
	assertOrder(t, second, "alice", "carol", "bob")

	byUser := make(map[string]leaderboard.Entry, len(second))
	for _, entry := range second {
		byUser[entry.UserID] = entry
	}
	if prev := byUser["carol"].PreviousRank; prev == nil || *prev != 3 {
		t.Fatalf("expected carol previous rank 3, got %v", prev)
	}
	if prev := byUser["bob"].PreviousRank; prev == nil || *prev != 2 {
		t.Fatalf("expected bob previous rank 2, got %v", prev)
	}
}

func TestLeaderboardService_RecomputeAcrossInstancesKeepsLatestAggregates(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()

	m := e.openMatch(t, nil)
	e.predict(t, "alice", m.ID, 2, 1)
	e.predict(t, "bob", m.ID, 0, 0)
	e.finish(t, m.ID, 2, 1)

	// A second service shares the store but not the in-process scope lock.
	other := NewLeaderboardService(e.leaderboardRepo, e.tournamentRepo, LeaderboardConfig{}, logging.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		for _, svc := range []*LeaderboardService{e.leaderboard, other} {
			wg.Add(1)
			go func(svc *LeaderboardService) {
				defer wg.Done()
				if _, err := svc.Recompute(ctx, globalScope()); err != nil {
					errs <- err
				}
			}(svc)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("recompute: %v", err)
	}

	entries, err := e.leaderboard.List(ctx, globalScope(), 0)
	if err != nil {
		t.Fatalf("list leaderboard: %v", err)
	}
	assertOrder(t, entries, "alice", "bob")
	for _, entry := range entries {
		if entry.PreviousRank == nil || *entry.PreviousRank != entry.Rank {
			t.Fatalf("repeated recomputes over unchanged data must keep previous rank equal to rank: %+v", entry)
		}
	}
	if entries[0].TotalPoints != 3 || entries[1].TotalPoints != 0 {
		t.Fatalf("unexpected aggregates: %+v", entries)
	}
}

func TestLeaderboardService_MeAgreesWithBatchRanking(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()

	results := [][2]int{{1, 0}, {2, 2}, {0, 3}, {1, 1}}
	picks := map[string][][2]int{
		"u1": {{1, 0}, {2, 2}, {0, 3}, {0, 0}},
		"u2": {{1, 0}, {1, 1}, {0, 1}, {1, 1}},
		"u3": {{2, 0}, {0, 0}, {0, 3}, {1, 1}},
		"u4": {{0, 1}, {0, 1}, {1, 0}, {2, 2}},
		"u5": {{3, 1}, {1, 1}, {1, 2}, {3, 3}},
	}
	for i, result := range results {
		m := e.openMatch(t, nil)
		for userID, userPicks := range picks {
			e.predict(t, userID, m.ID, userPicks[i][0], userPicks[i][1])
		}
		e.finish(t, m.ID, result[0], result[1])
	}

	batch, err := e.leaderboard.List(ctx, globalScope(), 0)
	if err != nil {
		t.Fatalf("list leaderboard: %v", err)
	}
	if len(batch) != len(picks) {
		t.Fatalf("expected %d entries, got %d", len(picks), len(batch))
	}

	for _, entry := range batch {
		position, err := e.leaderboard.Me(ctx, globalScope(), entry.UserID)
		if err != nil {
			t.Fatalf("me %s: %v", entry.UserID, err)
		}
		if !position.Ranked {
			t.Fatalf("expected %s to be ranked", entry.UserID)
		}
		if position.Entry.Rank != entry.Rank {
			t.Fatalf("user %s: incremental rank %d != batch rank %d", entry.UserID, position.Entry.Rank, entry.Rank)
		}
		if position.Entry.TotalPoints != entry.TotalPoints || position.Entry.AccuracyPercentage != entry.AccuracyPercentage {
			t.Fatalf("user %s: stats mismatch %+v vs %+v", entry.UserID, position.Entry, entry)
		}
	}

	nobody, err := e.leaderboard.Me(ctx, globalScope(), "ghost")
	if err != nil {
		t.Fatalf("me ghost: %v", err)
	}
	if nobody.Ranked || nobody.Movement != leaderboard.RankMovementNew {
		t.Fatalf("expected unranked new position, got %+v", nobody)
	}
}

func TestLeaderboardService_TournamentScopeCountsParticipantsOnly(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	cup := e.openTournament(t, "scope-cup", nil)
	scope := leaderboard.ForTournament(cup.ID)

	for _, userID := range []string{"u1", "u2"} {
		if _, err := e.tournaments.Register(ctx, cup.ID, userID); err != nil {
			t.Fatalf("register %s: %v", userID, err)
		}
	}
	cupMatch := e.openMatch(t, &cup.ID)
	friendly := e.openMatch(t, nil)
	e.predict(t, "u1", cupMatch.ID, 1, 0)
	e.predict(t, "u2", cupMatch.ID, 0, 0)
	e.predict(t, "u3", friendly.ID, 1, 0)
	e.finish(t, cupMatch.ID, 1, 0)
	e.finish(t, friendly.ID, 1, 0)

	rows, err := e.leaderboard.List(ctx, scope, 0)
	if err != nil {
		t.Fatalf("list tournament leaderboard: %v", err)
	}
	assertOrder(t, rows, "u1", "u2")

	global, err := e.leaderboard.List(ctx, globalScope(), 0)
	if err != nil {
		t.Fatalf("list global leaderboard: %v", err)
	}
	if len(global) != 3 {
		t.Fatalf("expected 3 global entries, got %d", len(global))
	}

	if _, err := e.leaderboard.List(ctx, leaderboard.ForTournament(404), 0); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestLeaderboardService_ListClampsLimit(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	m := e.openMatch(t, nil)
	for i := 0; i < 5; i++ {
		e.predict(t, fmt.Sprintf("user-%d", i), m.ID, i, 0)
	}
	e.finish(t, m.ID, 1, 0)

	e.leaderboard.cfg.DefaultLimit = 2
	e.leaderboard.cfg.MaxLimit = 3

	rows, err := e.leaderboard.List(ctx, globalScope(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected default limit 2, got %d", len(rows))
	}
	rows, err = e.leaderboard.List(ctx, globalScope(), 500)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected max limit 3, got %d", len(rows))
	}
}

func TestLeaderboardService_RecomputeAllCoversTournaments(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	e.openTournament(t, "cup-a", nil)
	e.openTournament(t, "cup-b", nil)

	results, err := e.leaderboard.RecomputeAll(ctx)
	if err != nil {
		t.Fatalf("recompute all: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected global plus 2 tournament scopes, got %d", len(results))
	}
}

func assertOrder(t *testing.T, entries []leaderboard.Entry, userIDs ...string) {
	t.Helper()

	if len(entries) != len(userIDs) {
		t.Fatalf("expected %d entries, got %d", len(userIDs), len(entries))
	}
	for i, userID := range userIDs {
		if entries[i].UserID != userID {
			t.Fatalf("position %d: expected %s, got %s", i, userID, entries[i].UserID)
		}
	}
}
