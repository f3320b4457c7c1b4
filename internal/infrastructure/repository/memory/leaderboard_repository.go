package memory

import (
	"context"
	"sort"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
)

type LeaderboardRepository struct {
	db *Database
}

func NewLeaderboardRepository(db *Database) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) AggregateUserStats(_ context.Context, scope leaderboard.Scope, userID string) (leaderboard.Stats, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	stats, ok := r.aggregateLocked(scope, userID)[userID]
	if !ok {
		return leaderboard.Stats{UserID: userID}, nil
	}
	return stats, nil
}

// RecomputeScope aggregates, ranks and stores the scope under the write lock.
func (r *LeaderboardRepository) RecomputeScope(_ context.Context, scope leaderboard.Scope, rank leaderboard.RankFunc, updatedAt time.Time) ([]leaderboard.Entry, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	byUser := r.aggregateLocked(scope, "")
	stats := make([]leaderboard.Stats, 0, len(byUser))
	for _, item := range byUser {
		stats = append(stats, item)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].UserID < stats[j].UserID })
	entries := rank(scope, stats)

	key := scope.Key()
	previous := r.db.leaderboard[key]
	next := make(map[string]leaderboard.Entry, len(entries))
	for i, entry := range entries {
		entry.Scope = scope
		entry.PreviousRank = nil
		if stored, ok := previous[entry.UserID]; ok {
			prev := stored.Rank
			entry.PreviousRank = &prev
		}
		entry.UpdatedAt = updatedAt.UTC()
		entries[i] = entry
		next[entry.UserID] = cloneEntry(entry)
	}
	r.db.leaderboard[key] = next

	return entries, nil
}

func (r *LeaderboardRepository) ListByScope(_ context.Context, scope leaderboard.Scope, limit int) ([]leaderboard.Entry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := r.db.leaderboard[scope.Key()]
	out := make([]leaderboard.Entry, 0, len(rows))
	for _, entry := range rows {
		out = append(out, cloneEntry(entry))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *LeaderboardRepository) GetEntry(_ context.Context, scope leaderboard.Scope, userID string) (leaderboard.Entry, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	entry, ok := r.db.leaderboard[scope.Key()][userID]
	if !ok {
		return leaderboard.Entry{}, false, nil
	}
	return cloneEntry(entry), true, nil
}

func (r *LeaderboardRepository) CountGroupsAhead(_ context.Context, scope leaderboard.Scope, userID string, points int, accuracy float64, totalPredictions int) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	target := leaderboard.Entry{
		UserID:             userID,
		TotalPoints:        points,
		AccuracyPercentage: accuracy,
		TotalPredictions:   totalPredictions,
	}
	rows := r.db.leaderboard[scope.Key()]
	others := make([]leaderboard.Entry, 0, len(rows))
	for _, entry := range rows {
		others = append(others, entry)
	}

	return leaderboard.RankAmong(target, others) - 1, nil
}

// aggregateLocked sums calculated predictions per user. A non-empty onlyUser
// restricts the scan to that user.
func (r *LeaderboardRepository) aggregateLocked(scope leaderboard.Scope, onlyUser string) map[string]leaderboard.Stats {
	out := make(map[string]leaderboard.Stats)
	for _, item := range r.db.predictions {
		if !item.IsCalculated {
			continue
		}
		if onlyUser != "" && item.UserID != onlyUser {
			continue
		}
		if !scope.IsGlobal() {
			m, ok := r.db.matches[item.MatchID]
			if !ok || m.TournamentID == nil || *m.TournamentID != *scope.TournamentID {
				continue
			}
			participant, ok := r.db.participants[participantKey{tournamentID: *scope.TournamentID, userID: item.UserID}]
			if !ok || participant.Status != tournament.ParticipantActive {
				continue
			}
		}

		stats := out[item.UserID]
		stats.UserID = item.UserID
		stats.TotalPoints += item.PointsEarned
		stats.TotalPredictions++
		switch item.ScoreKind {
		case prediction.ScoreKindExact:
			stats.CorrectScores++
		case prediction.ScoreKindWinner:
			stats.CorrectWinners++
		}
		out[item.UserID] = stats
	}
	return out
}
