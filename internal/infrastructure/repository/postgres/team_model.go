package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID             int64          `db:"id"`
	Name           string         `db:"name"`
	ShortName      string         `db:"short_name"`
	Country        string         `db:"country"`
	LogoURL        string         `db:"logo_url"`
	PrimaryColor   sql.NullString `db:"primary_color"`
	SecondaryColor sql.NullString `db:"secondary_color"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type teamInsertModel struct {
	Name           string  `db:"name"`
	ShortName      string  `db:"short_name"`
	Country        string  `db:"country"`
	LogoURL        string  `db:"logo_url"`
	PrimaryColor   *string `db:"primary_color"`
	SecondaryColor *string `db:"secondary_color"`
}
