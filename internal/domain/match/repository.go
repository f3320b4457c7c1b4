package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Match, error)
	Create(ctx context.Context, item Match) (Match, error)
	// UpdateStatus moves the match from -> to and writes the audit entry atomically.
	// It returns ErrStaleState when the stored status is no longer from.
	UpdateStatus(ctx context.Context, matchID int64, from, to Status, audit AuditEntry) (Match, error)
	// RecordResult stores the final score, marks the match finished with scoring pending
	// and writes the audit entry atomically.
	RecordResult(ctx context.Context, matchID int64, from Status, homeScore, awayScore int, audit AuditEntry) (Match, error)
	SetScoringStatus(ctx context.Context, matchID int64, status ScoringStatus) error
	ListAudit(ctx context.Context, matchID int64) ([]AuditEntry, error)
}
