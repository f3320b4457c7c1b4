package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID                 int64         `db:"id"`
	HomeTeamID         int64         `db:"home_team_id"`
	AwayTeamID         int64         `db:"away_team_id"`
	TournamentID       sql.NullInt64 `db:"tournament_id"`
	MatchDate          time.Time     `db:"match_date"`
	PredictionsCloseAt sql.NullTime  `db:"predictions_close_at"`
	Status             string        `db:"status"`
	HomeScore          sql.NullInt32 `db:"home_score"`
	AwayScore          sql.NullInt32 `db:"away_score"`
	IsActive           bool          `db:"is_active"`
	PredictionsEnabled bool          `db:"predictions_enabled"`
	ScoringStatus      string        `db:"scoring_status"`
	ScoredAt           sql.NullTime  `db:"scored_at"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

type matchInsertModel struct {
	HomeTeamID         int64      `db:"home_team_id"`
	AwayTeamID         int64      `db:"away_team_id"`
	TournamentID       *int64     `db:"tournament_id"`
	MatchDate          time.Time  `db:"match_date"`
	PredictionsCloseAt *time.Time `db:"predictions_close_at"`
	Status             string     `db:"status"`
	IsActive           bool       `db:"is_active"`
	PredictionsEnabled bool       `db:"predictions_enabled"`
	ScoringStatus      string     `db:"scoring_status"`
}

type matchAuditTableModel struct {
	ID         int64         `db:"id"`
	MatchID    int64         `db:"match_id"`
	ActorID    string        `db:"actor_id"`
	Action     string        `db:"action"`
	FromStatus string        `db:"from_status"`
	ToStatus   string        `db:"to_status"`
	HomeScore  sql.NullInt32 `db:"home_score"`
	AwayScore  sql.NullInt32 `db:"away_score"`
	CreatedAt  time.Time     `db:"created_at"`
}

type matchAuditInsertModel struct {
	MatchID    int64     `db:"match_id"`
	ActorID    string    `db:"actor_id"`
	Action     string    `db:"action"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	HomeScore  *int      `db:"home_score"`
	AwayScore  *int      `db:"away_score"`
	CreatedAt  time.Time `db:"created_at,omitempty"`
}
