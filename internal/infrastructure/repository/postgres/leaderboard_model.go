package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
)

type leaderboardEntryTableModel struct {
	ScopeKey           string        `db:"scope_key"`
	TournamentID       sql.NullInt64 `db:"tournament_id"`
	UserID             string        `db:"user_id"`
	TotalPoints        int           `db:"total_points"`
	TotalPredictions   int           `db:"total_predictions"`
	CorrectScores      int           `db:"correct_scores"`
	CorrectWinners     int           `db:"correct_winners"`
	AccuracyPercentage float64       `db:"accuracy_percentage"`
	Rank               int           `db:"rank"`
	PreviousRank       sql.NullInt32 `db:"previous_rank"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

type leaderboardStatsRow struct {
	UserID           string `db:"user_id"`
	TotalPoints      int    `db:"total_points"`
	TotalPredictions int    `db:"total_predictions"`
	CorrectScores    int    `db:"correct_scores"`
	CorrectWinners   int    `db:"correct_winners"`
}

func scopeFromColumn(tournamentID sql.NullInt64) leaderboard.Scope {
	if !tournamentID.Valid {
		return leaderboard.Global()
	}
	return leaderboard.ForTournament(tournamentID.Int64)
}

func leaderboardEntryFromRow(row leaderboardEntryTableModel) leaderboard.Entry {
	return leaderboard.Entry{
		Scope:              scopeFromColumn(row.TournamentID),
		UserID:             row.UserID,
		TotalPoints:        row.TotalPoints,
		TotalPredictions:   row.TotalPredictions,
		CorrectScores:      row.CorrectScores,
		CorrectWinners:     row.CorrectWinners,
		AccuracyPercentage: row.AccuracyPercentage,
		Rank:               row.Rank,
		PreviousRank:       nullIntPtr(row.PreviousRank),
		UpdatedAt:          row.UpdatedAt,
	}
}
