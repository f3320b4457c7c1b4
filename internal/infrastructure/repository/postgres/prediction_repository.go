package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
	qb "github.com/riskibarqy/dinor-predictions/internal/platform/querybuilder"
)

const predictionsTable = "predictions"

// upsertPredictionQuery writes the prediction only while the match window is
// open at $9, so the window check and the write are one statement.
const upsertPredictionQuery = `INSERT INTO predictions (
    user_id, football_match_id, predicted_home_score, predicted_away_score,
    predicted_winner, bet_amount, submitter_ip, user_agent, created_at, updated_at
)
SELECT $1, m.id, $3, $4, $5, $6, $7, $8, $9, $9
FROM football_matches m
WHERE m.id = $2
    AND m.is_active
    AND m.predictions_enabled
    AND m.status = 'scheduled'
    AND COALESCE(m.predictions_close_at, m.match_date) > $9
ON CONFLICT (user_id, football_match_id)
DO UPDATE SET
    predicted_home_score = EXCLUDED.predicted_home_score,
    predicted_away_score = EXCLUDED.predicted_away_score,
    predicted_winner = EXCLUDED.predicted_winner,
    bet_amount = EXCLUDED.bet_amount,
    submitter_ip = EXCLUDED.submitter_ip,
    user_agent = EXCLUDED.user_agent,
    points_earned = 0,
    is_calculated = FALSE,
    score_kind = '',
    updated_at = EXCLUDED.updated_at
RETURNING *`

const availableBalanceQuery = `SELECT $2::BIGINT + COALESCE(SUM(amount), 0)
FROM wallet_entries
WHERE user_id = $1
    AND NOT (kind = 'stake' AND prediction_id = $3)`

const applyScoresQuery = `UPDATE predictions AS p
SET points_earned = s.points,
    score_kind = s.kind,
    is_calculated = TRUE,
    updated_at = $4
FROM unnest($1::BIGINT[], $2::INT[], $3::TEXT[]) AS s(id, points, kind)
WHERE p.id = s.id`

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Upsert(ctx context.Context, input prediction.UpsertInput) (prediction.Prediction, error) {
	item := input.Prediction
	now := input.Now.UTC()
	winner := item.PredictedWinner
	if winner == "" {
		winner = prediction.DeriveWinner(item.PredictedHomeScore, item.PredictedAwayScore)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("begin tx upsert prediction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if item.BetAmount != nil {
		// Serializes stake changes of one user so the balance check holds.
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "wallet:"+item.UserID); err != nil {
			return prediction.Prediction{}, fmt.Errorf("lock wallet: %w", err)
		}
	}

	var row predictionTableModel
	err = tx.GetContext(ctx, &row, upsertPredictionQuery,
		item.UserID,
		item.MatchID,
		item.PredictedHomeScore,
		item.PredictedAwayScore,
		string(winner),
		item.BetAmount,
		item.SubmitterIP,
		item.UserAgent,
		now,
	)
	if err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, fmt.Errorf("%w: match=%d", prediction.ErrWindowClosed, item.MatchID)
		}
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}

	if item.BetAmount != nil {
		var available int64
		if err := tx.GetContext(ctx, &available, availableBalanceQuery, item.UserID, input.StartingBalance, row.ID); err != nil {
			return prediction.Prediction{}, fmt.Errorf("get available balance: %w", err)
		}
		if *item.BetAmount > available {
			return prediction.Prediction{}, fmt.Errorf("%w: bet=%d available=%d", wallet.ErrInsufficientBalance, *item.BetAmount, available)
		}
		if err := putWalletEntry(ctx, tx, row.UserID, row.ID, wallet.EntryStake, -*item.BetAmount, now); err != nil {
			return prediction.Prediction{}, err
		}
	} else if err := deleteWalletEntries(ctx, tx, wallet.EntryStake, row.ID); err != nil {
		return prediction.Prediction{}, err
	}
	// A resubmission invalidates any earlier payout until the match is rescored.
	if err := deleteWalletEntries(ctx, tx, wallet.EntryPayout, row.ID); err != nil {
		return prediction.Prediction{}, err
	}

	if err := tx.Commit(); err != nil {
		return prediction.Prediction{}, fmt.Errorf("commit upsert prediction tx: %w", err)
	}

	return predictionFromRow(row), nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string, matchIDs []int64) ([]prediction.Prediction, error) {
	conditions := []qb.Condition{qb.Eq("user_id", userID)}
	if matchIDs != nil {
		conditions = append(conditions, qb.In("football_match_id", int64sToAny(matchIDs)))
	}

	query, args, err := qb.Select("*").From(predictionsTable).
		Where(conditions...).
		OrderBy("football_match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by user query: %w", err)
	}

	return r.selectPredictions(ctx, r.db, query, args)
}

func (r *PredictionRepository) ListByMatch(ctx context.Context, matchID int64) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From(predictionsTable).
		Where(qb.Eq("football_match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by match query: %w", err)
	}

	return r.selectPredictions(ctx, r.db, query, args)
}

// ApplyScores locks the match row, checks that the stored result is the one
// the batch was scored against and that scores cover exactly the stored
// predictions, then writes points, payouts and the completed status.
func (r *PredictionRepository) ApplyScores(ctx context.Context, batch prediction.ScoreBatch) error {
	matchID, scores := batch.MatchID, batch.Scores
	now := batch.ScoredAt.UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("home_score", "away_score").From(matchesTable).
		Where(qb.Eq("id", matchID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock match query: %w", err)
	}
	var locked struct {
		HomeScore sql.NullInt32 `db:"home_score"`
		AwayScore sql.NullInt32 `db:"away_score"`
	}
	if err := tx.GetContext(ctx, &locked, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("apply scores: match %d not found", matchID)
		}
		return fmt.Errorf("lock match: %w", err)
	}
	if !locked.HomeScore.Valid || !locked.AwayScore.Valid ||
		int(locked.HomeScore.Int32) != batch.HomeScore || int(locked.AwayScore.Int32) != batch.AwayScore {
		return fmt.Errorf("%w: match=%d scored against %d-%d but result is %s",
			prediction.ErrScoreSetChanged, matchID, batch.HomeScore, batch.AwayScore, formatStoredResult(locked.HomeScore, locked.AwayScore))
	}

	storedQuery, storedArgs, err := qb.Select("id").From(predictionsTable).
		Where(qb.Eq("football_match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build list scored prediction ids query: %w", err)
	}
	var storedIDs []int64
	if err := tx.SelectContext(ctx, &storedIDs, storedQuery, storedArgs...); err != nil {
		return fmt.Errorf("list scored prediction ids: %w", err)
	}
	if len(storedIDs) != len(scores) {
		return fmt.Errorf("%w: match=%d stored=%d scored=%d", prediction.ErrScoreSetChanged, matchID, len(storedIDs), len(scores))
	}
	stored := make(map[int64]struct{}, len(storedIDs))
	for _, id := range storedIDs {
		stored[id] = struct{}{}
	}

	ids := make([]int64, 0, len(scores))
	points := make([]int64, 0, len(scores))
	kinds := make([]string, 0, len(scores))
	payouts := qb.InsertInto("wallet_entries").
		Columns("user_id", "prediction_id", "kind", "amount", "created_at", "updated_at").
		Suffix(`ON CONFLICT (prediction_id, kind) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at`)
	hasPayouts := false
	for _, score := range scores {
		if _, ok := stored[score.PredictionID]; !ok {
			return fmt.Errorf("%w: prediction %d is not part of match %d", prediction.ErrScoreSetChanged, score.PredictionID, matchID)
		}
		ids = append(ids, score.PredictionID)
		points = append(points, int64(score.Points))
		kinds = append(kinds, string(score.Kind))
		if score.Payout != nil && *score.Payout > 0 {
			payouts.Values(score.UserID, score.PredictionID, string(wallet.EntryPayout), *score.Payout, now, now)
			hasPayouts = true
		}
	}

	if len(ids) > 0 {
		if _, err := tx.ExecContext(ctx, applyScoresQuery, pq.Array(ids), pq.Array(points), pq.Array(kinds), now); err != nil {
			return fmt.Errorf("apply prediction scores: %w", err)
		}
		if err := deleteWalletEntries(ctx, tx, wallet.EntryPayout, ids...); err != nil {
			return err
		}
	}
	if hasPayouts {
		query, args, err := payouts.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert payouts query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert payouts: %w", err)
		}
	}

	completeQuery, completeArgs, err := qb.Update(matchesTable).
		Set("scoring_status", string(match.ScoringCompleted)).
		Set("scored_at", now).
		Set("updated_at", now).
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build complete scoring query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, completeQuery, completeArgs...); err != nil {
		return fmt.Errorf("complete scoring: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply scores tx: %w", err)
	}

	return nil
}

func (r *PredictionRepository) selectPredictions(ctx context.Context, q sqlx.QueryerContext, query string, args []any) ([]prediction.Prediction, error) {
	var rows []predictionTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}

	return out, nil
}

func putWalletEntry(ctx context.Context, tx *sqlx.Tx, userID string, predictionID int64, kind wallet.EntryKind, amount int64, now time.Time) error {
	query, args, err := qb.InsertInto("wallet_entries").
		Columns("user_id", "prediction_id", "kind", "amount", "created_at", "updated_at").
		Values(userID, predictionID, string(kind), amount, now, now).
		Suffix(`ON CONFLICT (prediction_id, kind) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build put wallet entry query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s wallet entry: %w", kind, err)
	}

	return nil
}

func deleteWalletEntries(ctx context.Context, tx *sqlx.Tx, kind wallet.EntryKind, predictionIDs ...int64) error {
	query, args, err := qb.Delete("wallet_entries").
		Where(
			qb.Eq("kind", string(kind)),
			qb.In("prediction_id", int64sToAny(predictionIDs)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete wallet entries query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s wallet entries: %w", kind, err)
	}

	return nil
}

func predictionFromRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:                 row.ID,
		UserID:             row.UserID,
		MatchID:            row.MatchID,
		PredictedHomeScore: row.PredictedHomeScore,
		PredictedAwayScore: row.PredictedAwayScore,
		PredictedWinner:    prediction.Winner(row.PredictedWinner),
		PointsEarned:       row.PointsEarned,
		IsCalculated:       row.IsCalculated,
		ScoreKind:          prediction.ScoreKind(row.ScoreKind),
		BetAmount:          nullInt64Ptr(row.BetAmount),
		SubmitterIP:        row.SubmitterIP,
		UserAgent:          row.UserAgent,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func formatStoredResult(home, away sql.NullInt32) string {
	if !home.Valid || !away.Valid {
		return "missing"
	}
	return fmt.Sprintf("%d-%d", home.Int32, away.Int32)
}
