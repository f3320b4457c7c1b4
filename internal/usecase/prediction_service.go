package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
)

const (
	maxUserAgentLength = 512
	maxMatchFilterSize = 100
)

type SubmitPredictionInput struct {
	UserID    string
	MatchID   int64
	HomeScore int
	AwayScore int
	BetAmount *int64
	IP        string
	UserAgent string
}

type PredictionService struct {
	predictionRepo  prediction.Repository
	matchRepo       match.Repository
	tournamentRepo  tournament.Repository
	startingBalance int64
	now             func() time.Time
}

func NewPredictionService(
	predictionRepo prediction.Repository,
	matchRepo match.Repository,
	tournamentRepo tournament.Repository,
	startingBalance int64,
) *PredictionService {
	return &PredictionService{
		predictionRepo:  predictionRepo,
		matchRepo:       matchRepo,
		tournamentRepo:  tournamentRepo,
		startingBalance: startingBalance,
		now:             time.Now,
	}
}

// Submit creates or overwrites the caller's prediction for a match while its
// window is open. The window is checked again by the store at write time.
func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.MatchID <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if err := prediction.ValidateScores(input.HomeScore, input.AwayScore); err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.BetAmount != nil && *input.BetAmount <= 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: bet amount must be positive", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%d", ErrMatchNotFound, input.MatchID)
	}

	now := s.now().UTC()
	if !match.CanPredict(item, now) {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%d closes_at=%s", prediction.ErrWindowClosed, item.ID, item.ClosesAt().UTC().Format(time.RFC3339))
	}

	if item.TournamentID != nil {
		participant, registered, err := s.tournamentRepo.GetParticipant(ctx, *item.TournamentID, userID)
		if err != nil {
			return prediction.Prediction{}, fmt.Errorf("get tournament participant: %w", err)
		}
		if !registered || participant.Status != tournament.ParticipantActive {
			return prediction.Prediction{}, fmt.Errorf("%w: tournament=%d", prediction.ErrNotParticipant, *item.TournamentID)
		}
	}

	saved, err := s.predictionRepo.Upsert(ctx, prediction.UpsertInput{
		Prediction: prediction.Prediction{
			UserID:             userID,
			MatchID:            item.ID,
			PredictedHomeScore: input.HomeScore,
			PredictedAwayScore: input.AwayScore,
			PredictedWinner:    prediction.DeriveWinner(input.HomeScore, input.AwayScore),
			BetAmount:          input.BetAmount,
			SubmitterIP:        strings.TrimSpace(input.IP),
			UserAgent:          truncate(strings.TrimSpace(input.UserAgent), maxUserAgentLength),
		},
		Now:             now,
		StartingBalance: s.startingBalance,
	})
	if err != nil {
		switch {
		case errors.Is(err, prediction.ErrWindowClosed), errors.Is(err, wallet.ErrInsufficientBalance):
			return prediction.Prediction{}, err
		default:
			return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
		}
	}

	return saved, nil
}

// ListMine returns the caller's predictions, optionally limited to matchIDs.
func (s *PredictionService) ListMine(ctx context.Context, userID string, matchIDs []int64) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(matchIDs) > maxMatchFilterSize {
		return nil, fmt.Errorf("%w: at most %d match ids per request", ErrInvalidInput, maxMatchFilterSize)
	}

	items, err := s.predictionRepo.ListByUser(ctx, userID, dedupeIDs(matchIDs))
	if err != nil {
		return nil, fmt.Errorf("list predictions by user: %w", err)
	}

	return items, nil
}

// GetForMatches indexes the caller's predictions by match id.
func (s *PredictionService) GetForMatches(ctx context.Context, userID string, matchIDs []int64) (map[int64]prediction.Prediction, error) {
	if len(matchIDs) == 0 {
		return map[int64]prediction.Prediction{}, nil
	}

	items, err := s.ListMine(ctx, userID, matchIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]prediction.Prediction, len(items))
	for _, item := range items {
		out[item.MatchID] = item
	}

	return out, nil
}

func dedupeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}
