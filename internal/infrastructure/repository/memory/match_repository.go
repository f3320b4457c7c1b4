package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
)

type MatchRepository struct {
	db *Database
}

func NewMatchRepository(db *Database) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) List(_ context.Context, filter match.ListFilter) ([]match.Match, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]match.Match, 0, len(r.db.matches))
	for _, item := range r.db.matches {
		if filter.TournamentID != nil && (item.TournamentID == nil || *item.TournamentID != *filter.TournamentID) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if len(filter.ScoringStatus) > 0 && !slices.Contains(filter.ScoringStatus, item.ScoringStatus) {
			continue
		}
		out = append(out, cloneMatch(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextMatchID++
	now := r.db.timestamp()
	item = cloneMatch(item)
	item.ID = r.db.nextMatchID
	if item.ScoringStatus == "" {
		item.ScoringStatus = match.ScoringNone
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	r.db.matches[item.ID] = item

	return cloneMatch(item), nil
}

func (r *MatchRepository) UpdateStatus(_ context.Context, matchID int64, from, to match.Status, audit match.AuditEntry) (match.Match, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %d not found", matchID)
	}
	if item.Status != from {
		return match.Match{}, fmt.Errorf("%w: match %d is %s, expected %s", match.ErrStaleState, matchID, item.Status, from)
	}

	item.Status = to
	item.UpdatedAt = r.db.timestamp()
	r.db.matches[matchID] = item
	r.appendAuditLocked(matchID, audit)

	return cloneMatch(item), nil
}

func (r *MatchRepository) RecordResult(_ context.Context, matchID int64, from match.Status, homeScore, awayScore int, audit match.AuditEntry) (match.Match, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %d not found", matchID)
	}
	if item.Status != from {
		return match.Match{}, fmt.Errorf("%w: match %d is %s, expected %s", match.ErrStaleState, matchID, item.Status, from)
	}

	home, away := homeScore, awayScore
	item.HomeScore = &home
	item.AwayScore = &away
	item.Status = match.StatusFinished
	item.ScoringStatus = match.ScoringPending
	item.ScoredAt = nil
	item.UpdatedAt = r.db.timestamp()
	r.db.matches[matchID] = item
	r.appendAuditLocked(matchID, audit)

	return cloneMatch(item), nil
}

func (r *MatchRepository) SetScoringStatus(_ context.Context, matchID int64, status match.ScoringStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.matches[matchID]
	if !ok {
		return fmt.Errorf("match %d not found", matchID)
	}
	item.ScoringStatus = status
	item.UpdatedAt = r.db.timestamp()
	r.db.matches[matchID] = item

	return nil
}

func (r *MatchRepository) ListAudit(_ context.Context, matchID int64) ([]match.AuditEntry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := r.db.audit[matchID]
	out := make([]match.AuditEntry, 0, len(items))
	for _, item := range items {
		item.HomeScore = cloneInt(item.HomeScore)
		item.AwayScore = cloneInt(item.AwayScore)
		out = append(out, item)
	}

	return out, nil
}

func (r *MatchRepository) appendAuditLocked(matchID int64, audit match.AuditEntry) {
	r.db.nextAuditID++
	audit.ID = r.db.nextAuditID
	audit.MatchID = matchID
	audit.HomeScore = cloneInt(audit.HomeScore)
	audit.AwayScore = cloneInt(audit.AwayScore)
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = r.db.timestamp()
	}
	r.db.audit[matchID] = append(r.db.audit[matchID], audit)
}
