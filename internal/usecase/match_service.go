package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
)

const maxResultScore = 99

type CreateMatchInput struct {
	HomeTeamID         int64
	AwayTeamID         int64
	TournamentID       *int64
	MatchDate          time.Time
	PredictionsCloseAt *time.Time
	PredictionsEnabled *bool
	IsActive           *bool
}

// MatchView pairs a match with its prediction window state at read time.
type MatchView struct {
	Match      match.Match
	CanPredict bool
}

type RecordResultOutcome struct {
	Match   match.Match
	Scoring ScoringSummary
}

type MatchService struct {
	matchRepo      match.Repository
	teamRepo       team.Repository
	tournamentRepo tournament.Repository
	scoring        *ScoringService
	logger         *logging.Logger
	now            func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	tournamentRepo tournament.Repository,
	scoringService *ScoringService,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		scoring:        scoringService,
		logger:         logger.Named("match"),
		now:            time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	item := match.Match{
		HomeTeamID:         input.HomeTeamID,
		AwayTeamID:         input.AwayTeamID,
		TournamentID:       input.TournamentID,
		MatchDate:          input.MatchDate.UTC(),
		Status:             match.StatusScheduled,
		IsActive:           true,
		PredictionsEnabled: true,
		ScoringStatus:      match.ScoringNone,
	}
	if input.PredictionsCloseAt != nil {
		closeAt := input.PredictionsCloseAt.UTC()
		item.PredictionsCloseAt = &closeAt
	}
	if input.PredictionsEnabled != nil {
		item.PredictionsEnabled = *input.PredictionsEnabled
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, teamID := range []int64{item.HomeTeamID, item.AwayTeamID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
		}
	}
	if item.TournamentID != nil {
		_, exists, err := s.tournamentRepo.GetByID(ctx, *item.TournamentID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get tournament by id: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: tournament=%d", ErrTournamentNotFound, *item.TournamentID)
		}
	}

	created, err := s.matchRepo.Create(ctx, item)
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return created, nil
}

func (s *MatchService) Get(ctx context.Context, matchID int64) (MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}

	return MatchView{Match: item, CanPredict: match.CanPredict(item, s.now())}, nil
}

func (s *MatchService) List(ctx context.Context, filter match.ListFilter) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	now := s.now()
	out := make([]MatchView, 0, len(items))
	for _, item := range items {
		out = append(out, MatchView{Match: item, CanPredict: match.CanPredict(item, now)})
	}

	return out, nil
}

// TransitionStatus applies a plain status change. Finishing a match requires
// a result and therefore goes through RecordResult.
func (s *MatchService) TransitionStatus(ctx context.Context, actorID string, matchID int64, to match.Status) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.TransitionStatus")
	defer span.End()

	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return match.Match{}, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	if to == match.StatusFinished {
		return match.Match{}, fmt.Errorf("%w: finishing a match requires a recorded result", match.ErrInvalidTransition)
	}

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if err := match.ValidateTransition(current.Status, to); err != nil {
		return match.Match{}, err
	}

	updated, err := s.matchRepo.UpdateStatus(ctx, matchID, current.Status, to, match.AuditEntry{
		MatchID:    matchID,
		ActorID:    actorID,
		Action:     match.AuditStatusChanged,
		FromStatus: current.Status,
		ToStatus:   to,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, match.ErrStaleState) {
			return match.Match{}, fmt.Errorf("%w: %v", match.ErrInvalidTransition, err)
		}
		return match.Match{}, fmt.Errorf("update match status: %w", err)
	}

	s.logger.InfoContext(ctx, "match status changed",
		"match_id", matchID,
		"from", current.Status,
		"to", to,
		"actor_id", actorID,
	)
	return updated, nil
}

// RecordResult stores the final score (or a correction), finishes the match
// and rescores it. A scoring failure leaves the match listed as incomplete
// and is returned marked with ErrScoringIncomplete.
func (s *MatchService) RecordResult(ctx context.Context, actorID string, matchID int64, homeScore, awayScore int) (RecordResultOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult")
	defer span.End()

	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return RecordResultOutcome{}, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	if homeScore < 0 || homeScore > maxResultScore || awayScore < 0 || awayScore > maxResultScore {
		return RecordResultOutcome{}, fmt.Errorf("%w: result scores must be between 0 and %d", ErrInvalidInput, maxResultScore)
	}

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return RecordResultOutcome{}, err
	}
	if err := match.ValidateResultRecording(current.Status); err != nil {
		return RecordResultOutcome{}, err
	}

	home, away := homeScore, awayScore
	updated, err := s.matchRepo.RecordResult(ctx, matchID, current.Status, homeScore, awayScore, match.AuditEntry{
		MatchID:    matchID,
		ActorID:    actorID,
		Action:     match.AuditResultRecorded,
		FromStatus: current.Status,
		ToStatus:   match.StatusFinished,
		HomeScore:  &home,
		AwayScore:  &away,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, match.ErrStaleState) {
			return RecordResultOutcome{}, fmt.Errorf("%w: %v", match.ErrInvalidTransition, err)
		}
		return RecordResultOutcome{}, fmt.Errorf("record match result: %w", err)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"match_id", matchID,
		"home_score", homeScore,
		"away_score", awayScore,
		"correction", current.Status == match.StatusFinished,
		"actor_id", actorID,
	)

	summary, err := s.scoring.ScoreMatch(ctx, matchID)
	if err != nil {
		return RecordResultOutcome{Match: updated, Scoring: summary}, err
	}

	if refreshed, exists, err := s.matchRepo.GetByID(ctx, matchID); err == nil && exists {
		updated = refreshed
	}

	return RecordResultOutcome{Match: updated, Scoring: summary}, nil
}

func (s *MatchService) AuditTrail(ctx context.Context, matchID int64) ([]match.AuditEntry, error) {
	if _, err := s.getMatch(ctx, matchID); err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListAudit(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match audit: %w", err)
	}

	return items, nil
}

func (s *MatchService) getMatch(ctx context.Context, matchID int64) (match.Match, error) {
	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrMatchNotFound, matchID)
	}

	return item, nil
}
