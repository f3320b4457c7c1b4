package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultLeaderboardLimit     = 50
	maxLeaderboardLimit         = 200
	defaultRecomputeConcurrency = 4
)

type LeaderboardConfig struct {
	DefaultLimit int
	MaxLimit     int
	Concurrency  int
}

type RecomputeResult struct {
	Scope   leaderboard.Scope
	Entries int
}

type LeaderboardService struct {
	repo           leaderboard.Repository
	tournamentRepo tournament.Repository
	logger         *logging.Logger
	now            func() time.Time
	cfg            LeaderboardConfig

	scopeLocksMu sync.Mutex
	scopeLocks   map[string]*sync.Mutex
}

func NewLeaderboardService(
	repo leaderboard.Repository,
	tournamentRepo tournament.Repository,
	cfg LeaderboardConfig,
	logger *logging.Logger,
) *LeaderboardService {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultLeaderboardLimit
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = maxLeaderboardLimit
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultRecomputeConcurrency
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		repo:           repo,
		tournamentRepo: tournamentRepo,
		logger:         logger.Named("leaderboard"),
		now:            time.Now,
		cfg:            cfg,
		scopeLocks:     make(map[string]*sync.Mutex),
	}
}

// Recompute rebuilds every row of the scope from calculated predictions.
// The repository serializes recomputes of a scope across instances; the local
// mutex only keeps goroutines of this process from queueing on that lock.
func (s *LeaderboardService) Recompute(ctx context.Context, scope leaderboard.Scope) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Recompute")
	defer span.End()

	lock := s.scopeLock(scope.Key())
	lock.Lock()
	defer lock.Unlock()

	entries, err := s.repo.RecomputeScope(ctx, scope, leaderboard.RankStats, s.now().UTC())
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("recompute leaderboard scope=%s: %w", scope.Key(), err)
	}

	s.logger.DebugContext(ctx, "leaderboard recomputed", "scope", scope.Key(), "entries", len(entries))
	return RecomputeResult{Scope: scope, Entries: len(entries)}, nil
}

// RecomputeForMatch refreshes the scopes a match contributes to.
func (s *LeaderboardService) RecomputeForMatch(ctx context.Context, item match.Match) error {
	return s.recomputeScopes(ctx, scopesForMatch(item))
}

// RecomputeAll refreshes the global scope and every tournament scope.
func (s *LeaderboardService) RecomputeAll(ctx context.Context) ([]RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.RecomputeAll")
	defer span.End()

	tournaments, err := s.tournamentRepo.List(ctx, tournament.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	scopes := make([]leaderboard.Scope, 0, len(tournaments)+1)
	scopes = append(scopes, leaderboard.Global())
	for _, item := range tournaments {
		scopes = append(scopes, leaderboard.ForTournament(item.ID))
	}

	return s.recomputeMany(ctx, scopes)
}

func (s *LeaderboardService) recomputeScopes(ctx context.Context, scopes []leaderboard.Scope) error {
	_, err := s.recomputeMany(ctx, scopes)
	return err
}

func (s *LeaderboardService) recomputeMany(ctx context.Context, scopes []leaderboard.Scope) ([]RecomputeResult, error) {
	results := make([]RecomputeResult, len(scopes))
	errs := make([]error, len(scopes))

	p := pool.New().WithMaxGoroutines(s.cfg.Concurrency).WithContext(ctx)
	for i, scope := range scopes {
		p.Go(func(ctx context.Context) error {
			result, err := s.Recompute(ctx, scope)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = result
			return nil
		})
	}
	_ = p.Wait()

	var combined error
	out := make([]RecomputeResult, 0, len(scopes))
	for i := range scopes {
		if errs[i] != nil {
			combined = crerr.CombineErrors(combined, errs[i])
			continue
		}
		out = append(out, results[i])
	}

	return out, combined
}

func (s *LeaderboardService) List(ctx context.Context, scope leaderboard.Scope, limit int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.List")
	defer span.End()

	if err := s.ensureScope(ctx, scope); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = s.cfg.DefaultLimit
	case limit > s.cfg.MaxLimit:
		limit = s.cfg.MaxLimit
	}

	items, err := s.repo.ListByScope(ctx, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard scope=%s: %w", scope.Key(), err)
	}

	return items, nil
}

// Me resolves the user's live position without rewriting the scope: the rank
// is one plus the number of distinct stat groups that strictly outrank the user.
func (s *LeaderboardService) Me(ctx context.Context, scope leaderboard.Scope, userID string) (leaderboard.Position, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Me")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return leaderboard.Position{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := s.ensureScope(ctx, scope); err != nil {
		return leaderboard.Position{}, err
	}

	stats, err := s.repo.AggregateUserStats(ctx, scope, userID)
	if err != nil {
		return leaderboard.Position{}, fmt.Errorf("aggregate user stats: %w", err)
	}
	stats.UserID = userID
	entry := leaderboard.EntryFromStats(scope, stats)

	stored, hasStored, err := s.repo.GetEntry(ctx, scope, userID)
	if err != nil {
		return leaderboard.Position{}, fmt.Errorf("get leaderboard entry: %w", err)
	}

	if entry.TotalPredictions == 0 {
		return leaderboard.Position{Entry: entry, Ranked: false, Movement: leaderboard.RankMovementNew}, nil
	}

	ahead, err := s.repo.CountGroupsAhead(ctx, scope, userID, entry.TotalPoints, entry.AccuracyPercentage, entry.TotalPredictions)
	if err != nil {
		return leaderboard.Position{}, fmt.Errorf("count leaderboard groups ahead: %w", err)
	}
	entry.Rank = ahead + 1

	if hasStored {
		entry.UpdatedAt = stored.UpdatedAt
		entry.PreviousRank = stored.PreviousRank
		if stored.Rank != entry.Rank {
			previous := stored.Rank
			entry.PreviousRank = &previous
		}
	}

	return leaderboard.Position{
		Entry:    entry,
		Ranked:   true,
		Movement: leaderboard.ResolveMovement(entry.Rank, entry.PreviousRank),
	}, nil
}

func (s *LeaderboardService) ensureScope(ctx context.Context, scope leaderboard.Scope) error {
	if scope.IsGlobal() {
		return nil
	}
	_, exists, err := s.tournamentRepo.GetByID(ctx, *scope.TournamentID)
	if err != nil {
		return fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: tournament=%d", ErrTournamentNotFound, *scope.TournamentID)
	}
	return nil
}

func (s *LeaderboardService) scopeLock(key string) *sync.Mutex {
	s.scopeLocksMu.Lock()
	defer s.scopeLocksMu.Unlock()

	lock, ok := s.scopeLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.scopeLocks[key] = lock
	}
	return lock
}

func scopesForMatch(item match.Match) []leaderboard.Scope {
	scopes := []leaderboard.Scope{leaderboard.Global()}
	if item.TournamentID != nil {
		scopes = append(scopes, leaderboard.ForTournament(*item.TournamentID))
	}
	return scopes
}
