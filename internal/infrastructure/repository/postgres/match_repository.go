package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	qb "github.com/riskibarqy/dinor-predictions/internal/platform/querybuilder"
)

const matchesTable = "football_matches"

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From(matchesTable).
		Where(qb.Eq("id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	conditions := make([]qb.Condition, 0, 3)
	if filter.TournamentID != nil {
		conditions = append(conditions, qb.Eq("tournament_id", *filter.TournamentID))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(filter.Status)))
	}
	if len(filter.ScoringStatus) > 0 {
		values := make([]any, 0, len(filter.ScoringStatus))
		for _, status := range filter.ScoringStatus {
			values = append(values, string(status))
		}
		conditions = append(conditions, qb.In("scoring_status", values))
	}

	builder := qb.Select("*").From(matchesTable).
		Where(conditions...).
		OrderBy("match_date", "id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	scoringStatus := item.ScoringStatus
	if scoringStatus == "" {
		scoringStatus = match.ScoringNone
	}
	insertModel := matchInsertModel{
		HomeTeamID:         item.HomeTeamID,
		AwayTeamID:         item.AwayTeamID,
		TournamentID:       item.TournamentID,
		MatchDate:          item.MatchDate.UTC(),
		PredictionsCloseAt: item.PredictionsCloseAt,
		Status:             string(item.Status),
		IsActive:           item.IsActive,
		PredictionsEnabled: item.PredictionsEnabled,
		ScoringStatus:      string(scoringStatus),
	}
	query, args, err := qb.InsertModel(matchesTable, insertModel, "RETURNING *")
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	return matchFromRow(row), nil
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, matchID int64, from, to match.Status, audit match.AuditEntry) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx update match status: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update(matchesTable).
		Set("status", string(to)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", matchID),
			qb.Eq("status", string(from)),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build update match status query: %w", err)
	}

	var row matchTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("%w: match %d is no longer %s", match.ErrStaleState, matchID, from)
		}
		return match.Match{}, fmt.Errorf("update match status: %w", err)
	}

	if err := insertMatchAudit(ctx, tx, matchID, audit); err != nil {
		return match.Match{}, err
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit update match status tx: %w", err)
	}

	return matchFromRow(row), nil
}

func (r *MatchRepository) RecordResult(ctx context.Context, matchID int64, from match.Status, homeScore, awayScore int, audit match.AuditEntry) (match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return match.Match{}, fmt.Errorf("begin tx record match result: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update(matchesTable).
		Set("status", string(match.StatusFinished)).
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Set("scoring_status", string(match.ScoringPending)).
		SetExpr("scored_at", "NULL").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", matchID),
			qb.Eq("status", string(from)),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build record match result query: %w", err)
	}

	var row matchTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("%w: match %d is no longer %s", match.ErrStaleState, matchID, from)
		}
		return match.Match{}, fmt.Errorf("record match result: %w", err)
	}

	if err := insertMatchAudit(ctx, tx, matchID, audit); err != nil {
		return match.Match{}, err
	}

	if err := tx.Commit(); err != nil {
		return match.Match{}, fmt.Errorf("commit record match result tx: %w", err)
	}

	return matchFromRow(row), nil
}

func (r *MatchRepository) SetScoringStatus(ctx context.Context, matchID int64, status match.ScoringStatus) error {
	query, args, err := qb.Update(matchesTable).
		Set("scoring_status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set scoring status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set scoring status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected set scoring status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set scoring status: match %d not found", matchID)
	}

	return nil
}

func (r *MatchRepository) ListAudit(ctx context.Context, matchID int64) ([]match.AuditEntry, error) {
	query, args, err := qb.Select("*").From("football_match_audit").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match audit query: %w", err)
	}

	var rows []matchAuditTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match audit: %w", err)
	}

	out := make([]match.AuditEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.AuditEntry{
			ID:         row.ID,
			MatchID:    row.MatchID,
			ActorID:    row.ActorID,
			Action:     match.AuditAction(row.Action),
			FromStatus: match.Status(row.FromStatus),
			ToStatus:   match.Status(row.ToStatus),
			HomeScore:  nullIntPtr(row.HomeScore),
			AwayScore:  nullIntPtr(row.AwayScore),
			CreatedAt:  row.CreatedAt,
		})
	}

	return out, nil
}

func insertMatchAudit(ctx context.Context, tx *sqlx.Tx, matchID int64, audit match.AuditEntry) error {
	insertModel := matchAuditInsertModel{
		MatchID:    matchID,
		ActorID:    audit.ActorID,
		Action:     string(audit.Action),
		FromStatus: string(audit.FromStatus),
		ToStatus:   string(audit.ToStatus),
		HomeScore:  audit.HomeScore,
		AwayScore:  audit.AwayScore,
		CreatedAt:  audit.CreatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("football_match_audit", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert match audit query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match audit: %w", err)
	}

	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:                 row.ID,
		HomeTeamID:         row.HomeTeamID,
		AwayTeamID:         row.AwayTeamID,
		TournamentID:       nullInt64Ptr(row.TournamentID),
		MatchDate:          row.MatchDate.UTC(),
		PredictionsCloseAt: nullTimePtr(row.PredictionsCloseAt),
		Status:             match.Status(row.Status),
		HomeScore:          nullIntPtr(row.HomeScore),
		AwayScore:          nullIntPtr(row.AwayScore),
		IsActive:           row.IsActive,
		PredictionsEnabled: row.PredictionsEnabled,
		ScoringStatus:      match.ScoringStatus(row.ScoringStatus),
		ScoredAt:           nullTimePtr(row.ScoredAt),
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
