package postgres

import (
	"database/sql"
	"time"
)

type predictionTableModel struct {
	ID                 int64         `db:"id"`
	UserID             string        `db:"user_id"`
	MatchID            int64         `db:"football_match_id"`
	PredictedHomeScore int           `db:"predicted_home_score"`
	PredictedAwayScore int           `db:"predicted_away_score"`
	PredictedWinner    string        `db:"predicted_winner"`
	PointsEarned       int           `db:"points_earned"`
	IsCalculated       bool          `db:"is_calculated"`
	ScoreKind          string        `db:"score_kind"`
	BetAmount          sql.NullInt64 `db:"bet_amount"`
	SubmitterIP        string        `db:"submitter_ip"`
	UserAgent          string        `db:"user_agent"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}
