package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrMatchNotFound         = errors.New("match not found")
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrScoringIncomplete is attached with cockroachdb/errors.Mark; test it
	// with errors.Is from that package.
	ErrScoringIncomplete = errors.New("scoring incomplete")
)
