package postgres

import (
	"database/sql"
	"time"
)

type tournamentTableModel struct {
	ID                int64         `db:"id"`
	Name              string        `db:"name"`
	Slug              string        `db:"slug"`
	Description       string        `db:"description"`
	Status            string        `db:"status"`
	StatusOverridden  bool          `db:"status_overridden"`
	StartDate         time.Time     `db:"start_date"`
	EndDate           time.Time     `db:"end_date"`
	RegistrationStart sql.NullTime  `db:"registration_start"`
	RegistrationEnd   sql.NullTime  `db:"registration_end"`
	MaxParticipants   sql.NullInt32 `db:"max_participants"`
	ParticipantsCount int           `db:"participants_count"`
	IsPublic          bool          `db:"is_public"`
	IsFeatured        bool          `db:"is_featured"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

type tournamentInsertModel struct {
	Name              string     `db:"name"`
	Slug              string     `db:"slug"`
	Description       string     `db:"description"`
	Status            string     `db:"status"`
	StatusOverridden  bool       `db:"status_overridden"`
	StartDate         time.Time  `db:"start_date"`
	EndDate           time.Time  `db:"end_date"`
	RegistrationStart *time.Time `db:"registration_start"`
	RegistrationEnd   *time.Time `db:"registration_end"`
	MaxParticipants   *int       `db:"max_participants"`
	IsPublic          bool       `db:"is_public"`
	IsFeatured        bool       `db:"is_featured"`
}

type participantTableModel struct {
	TournamentID int64        `db:"tournament_id"`
	UserID       string       `db:"user_id"`
	Status       string       `db:"status"`
	RegisteredAt time.Time    `db:"registered_at"`
	WithdrawnAt  sql.NullTime `db:"withdrawn_at"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}
