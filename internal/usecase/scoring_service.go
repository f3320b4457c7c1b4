package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/scoring"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
)

const defaultScoringWorkers = 4

type ScoringSummary struct {
	MatchID       int64
	HomeScore     int
	AwayScore     int
	Predictions   int
	ExactScores   int
	CorrectWinner int
	Misses        int
	TotalPoints   int
	TotalPayout   int64
}

type RetryScoringResult struct {
	Attempted int
	Scored    []ScoringSummary
	Failed    []int64
}

type ScoringService struct {
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	leaderboard    *LeaderboardService
	rules          scoring.Rules
	workers        int
	retryQueue     JobQueue
	retryDelay     time.Duration
	logger         *logging.Logger
	now            func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	leaderboardService *LeaderboardService,
	workers int,
	logger *logging.Logger,
) *ScoringService {
	if workers <= 0 {
		workers = defaultScoringWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		leaderboard:    leaderboardService,
		rules:          scoring.DefaultRules(),
		workers:        workers,
		retryQueue:     NewNoopJobQueue(),
		logger:         logger.Named("scoring"),
		now:            time.Now,
	}
}

// WithRetryQueue makes failed scoring schedule the retry-scoring job after delay.
func (s *ScoringService) WithRetryQueue(queue JobQueue, delay time.Duration) *ScoringService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	s.retryQueue = queue
	s.retryDelay = delay
	return s
}

// ScoreMatch (re)scores every prediction of a finished match, then refreshes
// the leaderboards the match contributes to. Rescoring overwrites earlier results.
func (s *ScoringService) ScoreMatch(ctx context.Context, matchID int64) (ScoringSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreMatch")
	defer span.End()

	item, summary, err := s.scoreMatch(ctx, matchID)
	if err != nil {
		return ScoringSummary{}, err
	}

	if err := s.leaderboard.RecomputeForMatch(ctx, item); err != nil {
		return summary, fmt.Errorf("recompute leaderboards for match %d: %w", matchID, err)
	}

	return summary, nil
}

func (s *ScoringService) scoreMatch(ctx context.Context, matchID int64) (match.Match, ScoringSummary, error) {
	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, ScoringSummary{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, ScoringSummary{}, fmt.Errorf("%w: match=%d", ErrMatchNotFound, matchID)
	}
	if item.Status != match.StatusFinished || !item.HasResult() {
		return match.Match{}, ScoringSummary{}, fmt.Errorf("%w: match %d is %s without a recorded result", match.ErrInvalidTransition, matchID, item.Status)
	}

	predictions, err := s.predictionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, ScoringSummary{}, s.scoringFailed(ctx, matchID, fmt.Errorf("list predictions: %w", err))
	}

	homeScore, awayScore := *item.HomeScore, *item.AwayScore
	scores := scoring.ScoreAll(s.rules, predictions, homeScore, awayScore)
	if err := s.predictionRepo.ApplyScores(ctx, prediction.ScoreBatch{
		MatchID:   matchID,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Scores:    scores,
		ScoredAt:  s.now().UTC(),
	}); err != nil {
		return match.Match{}, ScoringSummary{}, s.scoringFailed(ctx, matchID, fmt.Errorf("apply scores: %w", err))
	}

	summary := summarizeScores(matchID, homeScore, awayScore, scores)
	s.logger.InfoContext(ctx, "match scored",
		"match_id", matchID,
		"predictions", summary.Predictions,
		"exact", summary.ExactScores,
		"winner", summary.CorrectWinner,
	)
	return item, summary, nil
}

// scoringFailed records the failure on the match so it can be listed and
// retried, and marks the returned error as ErrScoringIncomplete.
func (s *ScoringService) scoringFailed(ctx context.Context, matchID int64, cause error) error {
	if err := s.matchRepo.SetScoringStatus(ctx, matchID, match.ScoringFailed); err != nil {
		s.logger.WarnContext(ctx, "mark match scoring failed", "match_id", matchID, "error", err)
	}
	s.logger.ErrorContext(ctx, "match scoring incomplete", "match_id", matchID, "error", cause)
	s.scheduleRetry(ctx, matchID)

	return crerr.Mark(
		crerr.WithDetailf(crerr.Wrapf(cause, "score match %d", matchID), "match_id=%d", matchID),
		ErrScoringIncomplete,
	)
}

func (s *ScoringService) scheduleRetry(ctx context.Context, matchID int64) {
	// One retry per match per delay window; later failures inside the window
	// are deduplicated by the queue.
	bucket := s.now().Unix()
	if seconds := int64(s.retryDelay / time.Second); seconds > 0 {
		bucket /= seconds
	}
	dedupID := fmt.Sprintf("retry-scoring-%d-%d", matchID, bucket)
	payload := map[string]any{"dispatch_id": dedupID}

	if err := s.retryQueue.Enqueue(ctx, RetryScoringJobPath, payload, s.retryDelay, dedupID); err != nil {
		s.logger.WarnContext(ctx, "schedule scoring retry", "match_id", matchID, "error", err)
	}
}

// ListIncomplete returns finished matches whose scoring is pending or failed.
func (s *ScoringService) ListIncomplete(ctx context.Context) ([]match.Match, error) {
	items, err := s.matchRepo.List(ctx, match.ListFilter{
		Status:        match.StatusFinished,
		ScoringStatus: []match.ScoringStatus{match.ScoringPending, match.ScoringFailed},
	})
	if err != nil {
		return nil, fmt.Errorf("list incomplete scoring matches: %w", err)
	}
	return items, nil
}

// RetryIncomplete rescores every incomplete match on a worker pool, then
// refreshes each affected scope once.
func (s *ScoringService) RetryIncomplete(ctx context.Context) (RetryScoringResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RetryIncomplete")
	defer span.End()

	items, err := s.ListIncomplete(ctx)
	if err != nil {
		return RetryScoringResult{}, err
	}
	result := RetryScoringResult{Attempted: len(items)}
	if len(items) == 0 {
		return result, nil
	}

	workerPool, err := ants.NewPool(min(s.workers, len(items)))
	if err != nil {
		return RetryScoringResult{}, fmt.Errorf("create scoring worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
		scopes  = make(map[string]leaderboard.Scope)
	)
	for _, item := range items {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			scored, summary, err := s.scoreMatch(ctx, item.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, item.ID)
				return
			}
			result.Scored = append(result.Scored, summary)
			for _, scope := range scopesForMatch(scored) {
				scopes[scope.Key()] = scope
			}
		}); err != nil {
			workers.Done()
			return RetryScoringResult{}, fmt.Errorf("submit scoring task: %w", err)
		}
	}
	workers.Wait()

	sort.Slice(result.Scored, func(i, j int) bool { return result.Scored[i].MatchID < result.Scored[j].MatchID })
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i] < result.Failed[j] })

	affected := make([]leaderboard.Scope, 0, len(scopes))
	for _, scope := range scopes {
		affected = append(affected, scope)
	}
	if err := s.leaderboard.recomputeScopes(ctx, affected); err != nil {
		return result, fmt.Errorf("recompute leaderboards after scoring retry: %w", err)
	}

	if len(result.Failed) > 0 {
		return result, crerr.Mark(
			crerr.WithDetailf(crerr.Newf("%d of %d matches failed to score", len(result.Failed), result.Attempted), "match_ids=%v", result.Failed),
			ErrScoringIncomplete,
		)
	}

	return result, nil
}

func summarizeScores(matchID int64, homeScore, awayScore int, scores []prediction.Score) ScoringSummary {
	out := ScoringSummary{
		MatchID:     matchID,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		Predictions: len(scores),
	}
	for _, item := range scores {
		out.TotalPoints += item.Points
		switch item.Kind {
		case prediction.ScoreKindExact:
			out.ExactScores++
		case prediction.ScoreKindWinner:
			out.CorrectWinner++
		default:
			out.Misses++
		}
		if item.Payout != nil {
			out.TotalPayout += *item.Payout
		}
	}
	return out
}
