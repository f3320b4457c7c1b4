package cache

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	basecache "github.com/riskibarqy/dinor-predictions/internal/platform/cache"
)

const (
	teamPrefix       = "team:"
	matchPrefix      = "match:"
	tournamentPrefix = "tournament:"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := teamPrefix + "id:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return team.Team{}, err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	return created, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

// MatchRepository caches match reads. Every write through it, and every
// scoring commit through PredictionRepository, drops all cached matches.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	key := matchPrefix + "id:" + strconv.FormatInt(matchID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cloneMatch(cached.value), cached.exists, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, matchPrefix+"list:"+matchFilterKey(filter), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, cloneMatch(item))
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return match.Match{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, matchID int64, from, to match.Status, audit match.AuditEntry) (match.Match, error) {
	defer r.invalidate(ctx)
	return r.next.UpdateStatus(ctx, matchID, from, to, audit)
}

func (r *MatchRepository) RecordResult(ctx context.Context, matchID int64, from match.Status, homeScore, awayScore int, audit match.AuditEntry) (match.Match, error) {
	defer r.invalidate(ctx)
	return r.next.RecordResult(ctx, matchID, from, homeScore, awayScore, audit)
}

func (r *MatchRepository) SetScoringStatus(ctx context.Context, matchID int64, status match.ScoringStatus) error {
	defer r.invalidate(ctx)
	return r.next.SetScoringStatus(ctx, matchID, status)
}

func (r *MatchRepository) ListAudit(ctx context.Context, matchID int64) ([]match.AuditEntry, error) {
	return r.next.ListAudit(ctx, matchID)
}

func (r *MatchRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, matchPrefix)
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

// PredictionRepository passes everything through. ApplyScores also updates
// the match row, so it drops cached matches.
type PredictionRepository struct {
	prediction.Repository
	cache *basecache.Store
}

func NewPredictionRepository(next prediction.Repository, cache *basecache.Store) *PredictionRepository {
	return &PredictionRepository{Repository: next, cache: cache}
}

func (r *PredictionRepository) ApplyScores(ctx context.Context, batch prediction.ScoreBatch) error {
	defer r.cache.DeletePrefix(ctx, matchPrefix)
	return r.Repository.ApplyScores(ctx, batch)
}

// TournamentRepository caches tournament reads by id. Participant lookups are
// never cached.
type TournamentRepository struct {
	tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{Repository: next, cache: cache}
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	key := tournamentPrefix + "id:" + strconv.FormatInt(tournamentID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.Repository.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cloneTournament(cached.value), cached.exists, nil
}

func (r *TournamentRepository) Create(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	defer r.invalidate(ctx)
	return r.Repository.Create(ctx, item)
}

func (r *TournamentRepository) UpdateStatus(ctx context.Context, tournamentID int64, status tournament.Status, overridden bool) error {
	defer r.invalidate(ctx)
	return r.Repository.UpdateStatus(ctx, tournamentID, status, overridden)
}

func (r *TournamentRepository) Register(ctx context.Context, tournamentID int64, userID string, now time.Time) (tournament.Participant, error) {
	defer r.invalidate(ctx)
	return r.Repository.Register(ctx, tournamentID, userID, now)
}

func (r *TournamentRepository) Withdraw(ctx context.Context, tournamentID int64, userID string, now time.Time) error {
	defer r.invalidate(ctx)
	return r.Repository.Withdraw(ctx, tournamentID, userID, now)
}

func (r *TournamentRepository) RecountParticipants(ctx context.Context, tournamentID int64) (int, int, error) {
	defer r.invalidate(ctx)
	return r.Repository.RecountParticipants(ctx, tournamentID)
}

func (r *TournamentRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, tournamentPrefix)
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

func matchFilterKey(filter match.ListFilter) string {
	parts := make([]string, 0, 4)
	if filter.TournamentID != nil {
		parts = append(parts, "t="+strconv.FormatInt(*filter.TournamentID, 10))
	}
	if filter.Status != "" {
		parts = append(parts, "s="+string(filter.Status))
	}
	if len(filter.ScoringStatus) > 0 {
		statuses := make([]string, 0, len(filter.ScoringStatus))
		for _, status := range filter.ScoringStatus {
			statuses = append(statuses, string(status))
		}
		slices.Sort(statuses)
		parts = append(parts, "ss="+strings.Join(statuses, ","))
	}
	if filter.Limit > 0 {
		parts = append(parts, "l="+strconv.Itoa(filter.Limit))
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, ";")
}

func cloneMatch(item match.Match) match.Match {
	item.TournamentID = cloneInt64(item.TournamentID)
	item.HomeScore = cloneInt(item.HomeScore)
	item.AwayScore = cloneInt(item.AwayScore)
	item.PredictionsCloseAt = cloneTime(item.PredictionsCloseAt)
	item.ScoredAt = cloneTime(item.ScoredAt)
	return item
}

func cloneTournament(item tournament.Tournament) tournament.Tournament {
	item.RegistrationStart = cloneTime(item.RegistrationStart)
	item.RegistrationEnd = cloneTime(item.RegistrationEnd)
	item.MaxParticipants = cloneInt(item.MaxParticipants)
	return item
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
