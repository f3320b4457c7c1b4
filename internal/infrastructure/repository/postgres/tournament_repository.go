package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	qb "github.com/riskibarqy/dinor-predictions/internal/platform/querybuilder"
)

const (
	tournamentsTable  = "tournaments"
	participantsTable = "tournament_participants"
)

const registerParticipantQuery = `INSERT INTO tournament_participants (tournament_id, user_id, status, registered_at, withdrawn_at, updated_at)
VALUES ($1, $2, 'active', $3, NULL, $3)
ON CONFLICT (tournament_id, user_id)
DO UPDATE SET
    status = 'active',
    registered_at = EXCLUDED.registered_at,
    withdrawn_at = NULL,
    updated_at = EXCLUDED.updated_at
RETURNING *`

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").From(tournamentsTable).
		Where(qb.Eq("id", tournamentID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}

	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	conditions := make([]qb.Condition, 0, 3)
	if filter.PublicOnly {
		conditions = append(conditions, qb.Eq("is_public", true))
	}
	if filter.FeaturedOnly {
		conditions = append(conditions, qb.Eq("is_featured", true))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(filter.Status)))
	}

	query, args, err := qb.Select("*").From(tournamentsTable).
		Where(conditions...).
		OrderBy("start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}

	return out, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	insertModel := tournamentInsertModel{
		Name:              item.Name,
		Slug:              item.Slug,
		Description:       item.Description,
		Status:            string(item.Status),
		StatusOverridden:  item.StatusOverridden,
		StartDate:         item.StartDate.UTC(),
		EndDate:           item.EndDate.UTC(),
		RegistrationStart: item.RegistrationStart,
		RegistrationEnd:   item.RegistrationEnd,
		MaxParticipants:   item.MaxParticipants,
		IsPublic:          item.IsPublic,
		IsFeatured:        item.IsFeatured,
	}
	query, args, err := qb.InsertModel(tournamentsTable, insertModel, "RETURNING *")
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("build insert tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err, "uq_tournaments_slug") {
			return tournament.Tournament{}, fmt.Errorf("%w: %s", tournament.ErrSlugTaken, item.Slug)
		}
		return tournament.Tournament{}, fmt.Errorf("insert tournament: %w", err)
	}

	return tournamentFromRow(row), nil
}

func (r *TournamentRepository) UpdateStatus(ctx context.Context, tournamentID int64, status tournament.Status, overridden bool) error {
	query, args, err := qb.Update(tournamentsTable).
		Set("status", string(status)).
		Set("status_overridden", overridden).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", tournamentID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update tournament status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tournament status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update tournament status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update tournament status: tournament %d not found", tournamentID)
	}

	return nil
}

func (r *TournamentRepository) GetParticipant(ctx context.Context, tournamentID int64, userID string) (tournament.Participant, bool, error) {
	query, args, err := qb.Select("*").From(participantsTable).
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("user_id", userID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Participant{}, false, fmt.Errorf("build get participant query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Participant{}, false, nil
		}
		return tournament.Participant{}, false, fmt.Errorf("get participant: %w", err)
	}

	return participantFromRow(row), true, nil
}

// Register holds the tournament row lock while it applies the registration
// gate (status derived at now, cap and duplicate registration), so concurrent
// registrations cannot overfill and a concurrent status change is seen.
func (r *TournamentRepository) Register(ctx context.Context, tournamentID int64, userID string, now time.Time) (tournament.Participant, error) {
	now = now.UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return tournament.Participant{}, fmt.Errorf("begin tx register participant: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	item, err := lockTournament(ctx, tx, tournamentID)
	if err != nil {
		return tournament.Participant{}, err
	}

	statusQuery, statusArgs, err := qb.Select("status").From(participantsTable).
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return tournament.Participant{}, fmt.Errorf("build get participant status query: %w", err)
	}
	var status string
	if err := tx.GetContext(ctx, &status, statusQuery, statusArgs...); err != nil && !isNotFound(err) {
		return tournament.Participant{}, fmt.Errorf("get participant status: %w", err)
	}
	locked := tournamentFromRow(item)
	alreadyActive := tournament.ParticipantStatus(status) == tournament.ParticipantActive
	if err := tournament.CanRegister(locked, tournament.DeriveStatus(locked, now), locked.ParticipantsCount, alreadyActive); err != nil {
		return tournament.Participant{}, err
	}

	var row participantTableModel
	if err := tx.GetContext(ctx, &row, registerParticipantQuery, tournamentID, userID, now); err != nil {
		return tournament.Participant{}, fmt.Errorf("insert participant: %w", err)
	}

	if err := adjustParticipantsCount(ctx, tx, tournamentID, "participants_count + 1"); err != nil {
		return tournament.Participant{}, err
	}

	if err := tx.Commit(); err != nil {
		return tournament.Participant{}, fmt.Errorf("commit register participant tx: %w", err)
	}

	return participantFromRow(row), nil
}

func (r *TournamentRepository) Withdraw(ctx context.Context, tournamentID int64, userID string, now time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx withdraw participant: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := lockTournament(ctx, tx, tournamentID); err != nil {
		return err
	}

	query, args, err := qb.Update(participantsTable).
		Set("status", string(tournament.ParticipantWithdrawn)).
		Set("withdrawn_at", now.UTC()).
		Set("updated_at", now.UTC()).
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("user_id", userID),
			qb.Eq("status", string(tournament.ParticipantActive)),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build withdraw participant query: %w", err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("withdraw participant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected withdraw participant: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: tournament=%d", tournament.ErrNotRegistered, tournamentID)
	}

	if err := adjustParticipantsCount(ctx, tx, tournamentID, "GREATEST(participants_count - 1, 0)"); err != nil {
		return err
	}

	deleteQuery, deleteArgs, err := qb.Delete(leaderboardTable).
		Where(
			qb.Eq("scope_key", leaderboard.ForTournament(tournamentID).Key()),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete leaderboard entry query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete leaderboard entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit withdraw participant tx: %w", err)
	}

	return nil
}

func (r *TournamentRepository) RecountParticipants(ctx context.Context, tournamentID int64) (int, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin tx recount participants: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	item, err := lockTournament(ctx, tx, tournamentID)
	if err != nil {
		return 0, 0, err
	}

	countQuery, countArgs, err := qb.Select("COUNT(*)").From(participantsTable).
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("status", string(tournament.ParticipantActive)),
		).
		ToSQL()
	if err != nil {
		return 0, 0, fmt.Errorf("build count participants query: %w", err)
	}
	var active int
	if err := tx.GetContext(ctx, &active, countQuery, countArgs...); err != nil {
		return 0, 0, fmt.Errorf("count participants: %w", err)
	}

	if active != item.ParticipantsCount {
		query, args, err := qb.Update(tournamentsTable).
			Set("participants_count", active).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", tournamentID)).
			ToSQL()
		if err != nil {
			return 0, 0, fmt.Errorf("build reset participants count query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, 0, fmt.Errorf("reset participants count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit recount participants tx: %w", err)
	}

	return item.ParticipantsCount, active, nil
}

func lockTournament(ctx context.Context, tx *sqlx.Tx, tournamentID int64) (tournamentTableModel, error) {
	query, args, err := qb.Select("*").From(tournamentsTable).
		Where(qb.Eq("id", tournamentID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return tournamentTableModel{}, fmt.Errorf("build lock tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournamentTableModel{}, fmt.Errorf("tournament %d not found", tournamentID)
		}
		return tournamentTableModel{}, fmt.Errorf("lock tournament: %w", err)
	}

	return row, nil
}

func adjustParticipantsCount(ctx context.Context, tx *sqlx.Tx, tournamentID int64, expr string) error {
	query, args, err := qb.Update(tournamentsTable).
		SetExpr("participants_count", expr).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", tournamentID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build adjust participants count query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("adjust participants count: %w", err)
	}

	return nil
}

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	return tournament.Tournament{
		ID:                row.ID,
		Name:              row.Name,
		Slug:              row.Slug,
		Description:       row.Description,
		Status:            tournament.Status(row.Status),
		StatusOverridden:  row.StatusOverridden,
		StartDate:         row.StartDate.UTC(),
		EndDate:           row.EndDate.UTC(),
		RegistrationStart: nullTimePtr(row.RegistrationStart),
		RegistrationEnd:   nullTimePtr(row.RegistrationEnd),
		MaxParticipants:   nullIntPtr(row.MaxParticipants),
		ParticipantsCount: row.ParticipantsCount,
		IsPublic:          row.IsPublic,
		IsFeatured:        row.IsFeatured,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func participantFromRow(row participantTableModel) tournament.Participant {
	return tournament.Participant{
		TournamentID: row.TournamentID,
		UserID:       row.UserID,
		Status:       tournament.ParticipantStatus(row.Status),
		RegisteredAt: row.RegisteredAt.UTC(),
		WithdrawnAt:  nullTimePtr(row.WithdrawnAt),
	}
}
