package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/dinor-predictions/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts the demo teams when the teams table is empty.
// It returns the number of inserted rows.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return 0, fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	inserted := 0
	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (name, short_name, country, logo_url, primary_color, secondary_color)
VALUES (:name, :short_name, :country, :logo_url, NULLIF(:primary_color, ''), NULLIF(:secondary_color, ''))`, map[string]any{
			"name":            t.Name,
			"short_name":      t.ShortName,
			"country":         t.Country,
			"logo_url":        t.LogoURL,
			"primary_color":   t.PrimaryColor,
			"secondary_color": t.SecondaryColor,
		})
		if err != nil {
			return 0, fmt.Errorf("bind seed team %s query: %w", t.ShortName, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return 0, fmt.Errorf("seed team %s: %w", t.ShortName, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed tx: %w", err)
	}

	return inserted, nil
}
