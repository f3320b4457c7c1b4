package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	qb "github.com/riskibarqy/dinor-predictions/internal/platform/querybuilder"
)

const leaderboardTable = "leaderboard_entries"

const countGroupsAheadQuery = `SELECT COUNT(*) FROM (
    SELECT DISTINCT total_points, accuracy_percentage, total_predictions
    FROM leaderboard_entries
    WHERE scope_key = $1
        AND user_id <> $2
        AND (
            total_points > $3
            OR (total_points = $3 AND accuracy_percentage > $4::NUMERIC(5, 1))
            OR (total_points = $3 AND accuracy_percentage = $4::NUMERIC(5, 1) AND total_predictions > $5)
        )
) AS ahead`

type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) AggregateUserStats(ctx context.Context, scope leaderboard.Scope, userID string) (leaderboard.Stats, error) {
	rows, err := r.aggregate(ctx, r.db, scope, userID)
	if err != nil {
		return leaderboard.Stats{}, err
	}
	if len(rows) == 0 {
		return leaderboard.Stats{UserID: userID}, nil
	}

	return statsFromRow(rows[0]), nil
}

// RecomputeScope aggregates and rewrites the scope inside one transaction
// holding a transaction-level advisory lock on the scope key, so a slower
// instance cannot overwrite newer aggregates. The upsert copies the stored
// rank into previous_rank before overwriting it.
func (r *LeaderboardRepository) RecomputeScope(ctx context.Context, scope leaderboard.Scope, rank leaderboard.RankFunc, updatedAt time.Time) ([]leaderboard.Entry, error) {
	key := scope.Key()
	now := updatedAt.UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx recompute leaderboard scope: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "leaderboard:"+key); err != nil {
		return nil, fmt.Errorf("lock leaderboard scope %s: %w", key, err)
	}

	rows, err := r.aggregate(ctx, tx, scope, "")
	if err != nil {
		return nil, err
	}
	stats := make([]leaderboard.Stats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, statsFromRow(row))
	}
	entries := rank(scope, stats)

	userIDs := make([]string, 0, len(entries))
	if len(entries) > 0 {
		insert := qb.InsertInto(leaderboardTable).
			Columns(
				"scope_key",
				"tournament_id",
				"user_id",
				"total_points",
				"total_predictions",
				"correct_scores",
				"correct_winners",
				"accuracy_percentage",
				"rank",
				"previous_rank",
				"updated_at",
			).
			Suffix(`ON CONFLICT (scope_key, user_id)
DO UPDATE SET
    total_points = EXCLUDED.total_points,
    total_predictions = EXCLUDED.total_predictions,
    correct_scores = EXCLUDED.correct_scores,
    correct_winners = EXCLUDED.correct_winners,
    accuracy_percentage = EXCLUDED.accuracy_percentage,
    previous_rank = leaderboard_entries.rank,
    rank = EXCLUDED.rank,
    updated_at = EXCLUDED.updated_at`)
		for _, entry := range entries {
			insert.Values(
				key,
				scope.TournamentID,
				entry.UserID,
				entry.TotalPoints,
				entry.TotalPredictions,
				entry.CorrectScores,
				entry.CorrectWinners,
				entry.AccuracyPercentage,
				entry.Rank,
				nil,
				now,
			)
			userIDs = append(userIDs, entry.UserID)
		}

		query, args, err := insert.ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build upsert leaderboard entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("upsert leaderboard entries: %w", err)
		}
	}

	deleteQuery, deleteArgs, err := qb.Delete(leaderboardTable).
		Where(
			qb.Eq("scope_key", key),
			qb.Expr("NOT (user_id = ANY(?))", pq.Array(userIDs)),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build prune leaderboard entries query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("prune leaderboard entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit recompute leaderboard scope tx: %w", err)
	}

	return entries, nil
}

func (r *LeaderboardRepository) ListByScope(ctx context.Context, scope leaderboard.Scope, limit int) ([]leaderboard.Entry, error) {
	builder := qb.Select("*").From(leaderboardTable).
		Where(qb.Eq("scope_key", scope.Key())).
		OrderBy("rank", "user_id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leaderboard query: %w", err)
	}

	var rows []leaderboardEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboardEntryFromRow(row))
	}

	return out, nil
}

func (r *LeaderboardRepository) GetEntry(ctx context.Context, scope leaderboard.Scope, userID string) (leaderboard.Entry, bool, error) {
	query, args, err := qb.Select("*").From(leaderboardTable).
		Where(
			qb.Eq("scope_key", scope.Key()),
			qb.Eq("user_id", userID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return leaderboard.Entry{}, false, fmt.Errorf("build get leaderboard entry query: %w", err)
	}

	var row leaderboardEntryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return leaderboard.Entry{}, false, nil
		}
		return leaderboard.Entry{}, false, fmt.Errorf("get leaderboard entry: %w", err)
	}

	return leaderboardEntryFromRow(row), true, nil
}

func (r *LeaderboardRepository) CountGroupsAhead(ctx context.Context, scope leaderboard.Scope, userID string, points int, accuracy float64, totalPredictions int) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, countGroupsAheadQuery, scope.Key(), userID, points, accuracy, totalPredictions); err != nil {
		return 0, fmt.Errorf("count leaderboard groups ahead: %w", err)
	}

	return count, nil
}

// aggregate sums calculated predictions per user. Tournament scopes join the
// active participant rows so withdrawn users drop out.
func (r *LeaderboardRepository) aggregate(ctx context.Context, q sqlx.QueryerContext, scope leaderboard.Scope, onlyUser string) ([]leaderboardStatsRow, error) {
	from := "predictions p JOIN football_matches m ON m.id = p.football_match_id"
	conditions := []qb.Condition{qb.Expr("p.is_calculated")}
	if !scope.IsGlobal() {
		from += " JOIN tournament_participants tp ON tp.tournament_id = m.tournament_id AND tp.user_id = p.user_id AND tp.status = 'active'"
		conditions = append(conditions, qb.Eq("m.tournament_id", *scope.TournamentID))
	}
	if onlyUser != "" {
		conditions = append(conditions, qb.Eq("p.user_id", onlyUser))
	}

	query, args, err := qb.Select(
		"p.user_id",
		"COALESCE(SUM(p.points_earned), 0) AS total_points",
		"COUNT(*) AS total_predictions",
		"COUNT(*) FILTER (WHERE p.score_kind = 'exact') AS correct_scores",
		"COUNT(*) FILTER (WHERE p.score_kind = 'winner') AS correct_winners",
	).From(from).
		Where(conditions...).
		GroupBy("p.user_id").
		OrderBy("p.user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build aggregate leaderboard stats query: %w", err)
	}

	var rows []leaderboardStatsRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("aggregate leaderboard stats scope=%s: %w", scope.Key(), err)
	}

	return rows, nil
}

func statsFromRow(row leaderboardStatsRow) leaderboard.Stats {
	return leaderboard.Stats{
		UserID:           row.UserID,
		TotalPoints:      row.TotalPoints,
		TotalPredictions: row.TotalPredictions,
		CorrectScores:    row.CorrectScores,
		CorrectWinners:   row.CorrectWinners,
	}
}
