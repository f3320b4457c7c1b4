package match

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStaleState        = errors.New("match state changed concurrently")
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusScheduled:
		return StatusScheduled, nil
	case StatusLive:
		return StatusLive, nil
	case StatusFinished:
		return StatusFinished, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown match status %q", value)
	}
}

// ScoringStatus tracks whether the predictions of a finished match have been scored.
type ScoringStatus string

const (
	ScoringNone      ScoringStatus = "none"
	ScoringPending   ScoringStatus = "pending"
	ScoringCompleted ScoringStatus = "completed"
	ScoringFailed    ScoringStatus = "failed"
)

// Incomplete reports whether the match result is recorded but not fully scored.
func (s ScoringStatus) Incomplete() bool {
	return s == ScoringPending || s == ScoringFailed
}

type Match struct {
	ID                 int64
	HomeTeamID         int64
	AwayTeamID         int64
	TournamentID       *int64
	MatchDate          time.Time
	PredictionsCloseAt *time.Time
	Status             Status
	HomeScore          *int
	AwayScore          *int
	IsActive           bool
	PredictionsEnabled bool
	ScoringStatus      ScoringStatus
	ScoredAt           *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ClosesAt is the instant the prediction window closes.
func (m Match) ClosesAt() time.Time {
	if m.PredictionsCloseAt != nil {
		return *m.PredictionsCloseAt
	}
	return m.MatchDate
}

func (m Match) HasResult() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) Validate() error {
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return fmt.Errorf("home and away team are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("home team and away team must differ")
	}
	if m.MatchDate.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.PredictionsCloseAt != nil && m.PredictionsCloseAt.After(m.MatchDate) {
		return fmt.Errorf("predictions close at must not be after match date")
	}
	if (m.HomeScore == nil) != (m.AwayScore == nil) {
		return fmt.Errorf("home score and away score must be set together")
	}
	if m.Status == StatusFinished && !m.HasResult() {
		return fmt.Errorf("finished match requires both scores")
	}

	return nil
}

type AuditAction string

const (
	AuditStatusChanged  AuditAction = "status_changed"
	AuditResultRecorded AuditAction = "result_recorded"
)

// AuditEntry records who changed a match and when.
type AuditEntry struct {
	ID         int64
	MatchID    int64
	ActorID    string
	Action     AuditAction
	FromStatus Status
	ToStatus   Status
	HomeScore  *int
	AwayScore  *int
	CreatedAt  time.Time
}

type ListFilter struct {
	TournamentID  *int64
	Status        Status
	ScoringStatus []ScoringStatus
	Limit         int
}
