package leaderboard

import "testing"

func TestAssignRanks_TieBreakOrder(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{UserID: "user1", TotalPoints: 10, AccuracyPercentage: 50, TotalPredictions: 4},
		{UserID: "user2", TotalPoints: 10, AccuracyPercentage: 50, TotalPredictions: 6},
		{UserID: "user3", TotalPoints: 10, AccuracyPercentage: 60, TotalPredictions: 4},
	}

	AssignRanks(entries)

	want := []struct {
		userID string
		rank   int
	}{
		{userID: "user3", rank: 1},
		{userID: "user2", rank: 2},
		{userID: "user1", rank: 3},
	}
	for i, w := range want {
		if entries[i].UserID != w.userID || entries[i].Rank != w.rank {
			t.Fatalf("position %d: got %s rank=%d, want %s rank=%d", i, entries[i].UserID, entries[i].Rank, w.userID, w.rank)
		}
	}
}

func TestAssignRanks_DenseOnTies(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{UserID: "a", TotalPoints: 9, AccuracyPercentage: 75, TotalPredictions: 4},
		{UserID: "b", TotalPoints: 12, AccuracyPercentage: 80, TotalPredictions: 5},
		{UserID: "c", TotalPoints: 12, AccuracyPercentage: 80, TotalPredictions: 5},
		{UserID: "d", TotalPoints: 3, AccuracyPercentage: 25, TotalPredictions: 4},
	}

	AssignRanks(entries)

	got := map[string]int{}
	for _, e := range entries {
		got[e.UserID] = e.Rank
	}
	if got["b"] != 1 || got["c"] != 1 {
		t.Fatalf("expected tied users to share rank 1, got b=%d c=%d", got["b"], got["c"])
	}
	if got["a"] != 2 {
		t.Fatalf("expected next group at rank 2, got %d", got["a"])
	}
	if got["d"] != 3 {
		t.Fatalf("expected last group at rank 3, got %d", got["d"])
	}
}

func TestRankAmong_AgreesWithAssignRanks(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{UserID: "a", TotalPoints: 12, AccuracyPercentage: 80, TotalPredictions: 5},
		{UserID: "b", TotalPoints: 12, AccuracyPercentage: 80, TotalPredictions: 5},
		{UserID: "c", TotalPoints: 9, AccuracyPercentage: 75, TotalPredictions: 4},
		{UserID: "d", TotalPoints: 9, AccuracyPercentage: 60, TotalPredictions: 5},
		{UserID: "e", TotalPoints: 0, AccuracyPercentage: 0, TotalPredictions: 2},
	}
	ranked := append([]Entry(nil), entries...)
	AssignRanks(ranked)

	for _, e := range ranked {
		if got := RankAmong(e, entries); got != e.Rank {
			t.Fatalf("user %s: incremental rank %d, batch rank %d", e.UserID, got, e.Rank)
		}
	}
}

func TestAccuracy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		exact, winner, total int
		want                 float64
	}{
		{exact: 0, winner: 0, total: 0, want: 0},
		{exact: 1, winner: 1, total: 3, want: 66.7},
		{exact: 1, winner: 0, total: 3, want: 33.3},
		{exact: 2, winner: 2, total: 4, want: 100},
	}
	for _, tt := range tests {
		if got := Accuracy(tt.exact, tt.winner, tt.total); got != tt.want {
			t.Fatalf("Accuracy(%d,%d,%d)=%v want=%v", tt.exact, tt.winner, tt.total, got, tt.want)
		}
	}
}

func TestResolveMovement(t *testing.T) {
	t.Parallel()

	three := 3
	if got := ResolveMovement(1, &three); got != RankMovementUp {
		t.Fatalf("expected up, got %s", got)
	}
	if got := ResolveMovement(5, &three); got != RankMovementDown {
		t.Fatalf("expected down, got %s", got)
	}
	if got := ResolveMovement(3, &three); got != RankMovementSame {
		t.Fatalf("expected same, got %s", got)
	}
	if got := ResolveMovement(3, nil); got != RankMovementNew {
		t.Fatalf("expected new, got %s", got)
	}
}

func TestRankStats_SkipsEmptyAndRanks(t *testing.T) {
	t.Parallel()

	scope := ForTournament(7)
	entries := RankStats(scope, []Stats{
		{UserID: "idle"},
		{UserID: "low", TotalPoints: 1, TotalPredictions: 2, CorrectWinners: 1},
		{UserID: "top", TotalPoints: 6, TotalPredictions: 2, CorrectScores: 2},
	})
	if len(entries) != 2 {
		t.Fatalf("expected users without predictions to be skipped, got %d entries", len(entries))
	}
	if entries[0].UserID != "top" || entries[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", entries[0])
	}
	if entries[1].UserID != "low" || entries[1].Rank != 2 || entries[1].AccuracyPercentage != 50 {
		t.Fatalf("unexpected runner up: %+v", entries[1])
	}
	if entries[0].Scope.Key() != "tournament:7" {
		t.Fatalf("unexpected scope: %s", entries[0].Scope.Key())
	}
}
