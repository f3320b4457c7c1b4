package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
	matchmock "github.com/riskibarqy/dinor-predictions/internal/mocks/domain/match"
	predictionmock "github.com/riskibarqy/dinor-predictions/internal/mocks/domain/prediction"
	tournamentmock "github.com/riskibarqy/dinor-predictions/internal/mocks/domain/tournament"
	"github.com/stretchr/testify/mock"
)

func TestPredictionService_Submit_ResubmissionOverwrites(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	m := e.openMatch(t, nil)

	first, err := e.predictions.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: m.ID, HomeScore: 2, AwayScore: 1})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if first.PredictedWinner != prediction.WinnerHome {
		t.Fatalf("unexpected predicted winner: %s", first.PredictedWinner)
	}

	second, err := e.predictions.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: m.ID, HomeScore: 0, AwayScore: 0})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same prediction id, got %d and %d", first.ID, second.ID)
	}
	if second.PredictedWinner != prediction.WinnerDraw {
		t.Fatalf("expected winner recomputed to draw, got %s", second.PredictedWinner)
	}

	items, err := e.predictionRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("list by match: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one prediction row, got %d", len(items))
	}
	if items[0].PredictedHomeScore != 0 || items[0].PredictedAwayScore != 0 {
		t.Fatalf("expected latest scores 0-0, got %d-%d", items[0].PredictedHomeScore, items[0].PredictedAwayScore)
	}
}

func TestPredictionService_Submit_ConcurrentSubmissionsKeepOneRow(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	m := e.openMatch(t, nil)

	const attempts = 25
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(home int) {
			defer wg.Done()
			_, err := e.predictions.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: m.ID, HomeScore: home % 5, AwayScore: 1})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent submit: %v", err)
		}
	}

	items, err := e.predictionRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("list by match: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one prediction row after concurrent upserts, got %d", len(items))
	}
}

func TestPredictionService_Submit_WindowGating(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cases := []struct {
		name   string
		mutate func(t *testing.T, e *engine, m match.Match)
	}{
		{
			name: "deadline passed",
			mutate: func(t *testing.T, e *engine, m match.Match) {
				e.clock.Set(m.MatchDate)
			},
		},
		{
			name: "match live",
			mutate: func(t *testing.T, e *engine, m match.Match) {
				if _, err := e.matches.TransitionStatus(ctx, "admin-1", m.ID, match.StatusLive); err != nil {
					t.Fatalf("transition live: %v", err)
				}
			},
		},
		{
			name: "match cancelled",
			mutate: func(t *testing.T, e *engine, m match.Match) {
				if _, err := e.matches.TransitionStatus(ctx, "admin-1", m.ID, match.StatusCancelled); err != nil {
					t.Fatalf("transition cancelled: %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEngine(t)
			m := e.openMatch(t, nil)
			tc.mutate(t, e, m)

			_, err := e.predictions.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: m.ID, HomeScore: 1, AwayScore: 0})
			if !errors.Is(err, prediction.ErrWindowClosed) {
				t.Fatalf("expected ErrWindowClosed, got %v", err)
			}

			items, err := e.predictionRepo.ListByMatch(ctx, m.ID)
			if err != nil {
				t.Fatalf("list by match: %v", err)
			}
			if len(items) != 0 {
				t.Fatalf("expected no prediction row, got %d", len(items))
			}
		})
	}
}

func TestPredictionService_Submit_ExplicitCloseTime(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	closeAt := e.clock.Now().Add(30 * time.Minute)
	disabled := false
	m, err := e.matches.Create(ctx, CreateMatchInput{
		HomeTeamID:         e.homeTeamID,
		AwayTeamID:         e.awayTeamID,
		MatchDate:          e.clock.Now().Add(2 * time.Hour),
		PredictionsCloseAt: &closeAt,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	closed, err := e.matches.Create(ctx, CreateMatchInput{
		HomeTeamID:         e.homeTeamID,
		AwayTeamID:         e.awayTeamID,
		MatchDate:          e.clock.Now().Add(2 * time.Hour),
		PredictionsEnabled: &disabled,
	})
	if err != nil {
		t.Fatalf("create disabled match: %v", err)
	}

	e.predict(t, "u1", m.ID, 1, 1)

	e.clock.Set(closeAt)
	if _, err := e.predictions.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: m.ID, HomeScore: 3, AwayScore: 0}); !errors.Is(err, prediction.ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed at close time, got %v", err)
	}
	if _, err := e.predictions.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: closed.ID, HomeScore: 3, AwayScore: 0}); !errors.Is(err, prediction.ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed for disabled predictions, got %v", err)
	}

	stored := e.storedPrediction(t, "u1", m.ID)
	if stored.PredictedHomeScore != 1 || stored.PredictedAwayScore != 1 {
		t.Fatalf("closed window must keep the earlier prediction, got %d-%d", stored.PredictedHomeScore, stored.PredictedAwayScore)
	}
}

func TestPredictionService_Submit_InvalidInput(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	m := e.openMatch(t, nil)

	cases := []SubmitPredictionInput{
		{UserID: "", MatchID: m.ID, HomeScore: 1, AwayScore: 1},
		{UserID: "u1", MatchID: m.ID, HomeScore: -1, AwayScore: 1},
		{UserID: "u1", MatchID: m.ID, HomeScore: 1, AwayScore: prediction.MaxScore + 1},
		{UserID: "u1", MatchID: m.ID, HomeScore: 1, AwayScore: 1, BetAmount: int64Ptr(0)},
	}
	for i, input := range cases {
		if _, err := e.predictions.Submit(ctx, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}

	if _, err := e.predictions.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: 999, HomeScore: 1, AwayScore: 1}); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestPredictionService_Submit_TournamentMatchRequiresParticipant(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	cup := e.openTournament(t, "weekend-cup", nil)
	m := e.openMatch(t, &cup.ID)

	if _, err := e.predictions.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: m.ID, HomeScore: 1, AwayScore: 0}); !errors.Is(err, prediction.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	if _, err := e.tournaments.Register(ctx, cup.ID, "u1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	e.predict(t, "u1", m.ID, 1, 0)
}

func TestPredictionService_Submit_BetStakeReplacedAndBounded(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	m1 := e.openMatch(t, nil)
	m2 := e.openMatch(t, nil)

	submit := func(matchID int64, bet *int64) error {
		_, err := e.predictions.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: matchID, HomeScore: 1, AwayScore: 0, BetAmount: bet})
		return err
	}

	if err := submit(m1.ID, int64Ptr(600)); err != nil {
		t.Fatalf("bet 600: %v", err)
	}
	// Replacing the stake on the same prediction frees the earlier amount.
	if err := submit(m1.ID, int64Ptr(900)); err != nil {
		t.Fatalf("rebet 900: %v", err)
	}
	if err := submit(m2.ID, int64Ptr(200)); !errors.Is(err, wallet.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if err := submit(m2.ID, int64Ptr(100)); err != nil {
		t.Fatalf("bet 100: %v", err)
	}

	balance, err := e.wallet.Balance(ctx, "u1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Staked != 1000 || balance.Current != 0 {
		t.Fatalf("unexpected balance: %+v", balance)
	}

	if err := submit(m1.ID, nil); err != nil {
		t.Fatalf("clear bet: %v", err)
	}
	balance, err = e.wallet.Balance(ctx, "u1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.Current != 900 {
		t.Fatalf("expected stake released, got %+v", balance)
	}
}

func TestPredictionService_Submit_StoreRejectsLateWriteUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := predictionmock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	tournamentRepo := tournamentmock.NewRepository(t)

	service := NewPredictionService(predictionRepo, matchRepo, tournamentRepo, testStartingBalance)
	service.now = func() time.Time { return baseTime }

	openMatch := match.Match{
		ID:                 7,
		HomeTeamID:         1,
		AwayTeamID:         2,
		MatchDate:          baseTime.Add(time.Minute),
		Status:             match.StatusScheduled,
		IsActive:           true,
		PredictionsEnabled: true,
	}
	matchRepo.On("GetByID", ctx, int64(7)).Return(openMatch, true, nil).Once()
	predictionRepo.
		On("Upsert", ctx, mock.MatchedBy(func(input prediction.UpsertInput) bool {
			return input.Prediction.UserID == "u1" &&
				input.Prediction.PredictedWinner == prediction.WinnerAway &&
				input.Now.Equal(baseTime) &&
				input.StartingBalance == testStartingBalance
		})).
		Return(prediction.Prediction{}, fmt.Errorf("%w: match=7", prediction.ErrWindowClosed)).
		Once()

	_, err := service.Submit(ctx, SubmitPredictionInput{UserID: "u1", MatchID: 7, HomeScore: 0, AwayScore: 2})
	if !errors.Is(err, prediction.ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed from the store, got %v", err)
	}
}

func TestPredictionService_ListMineAndGetForMatches(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	ctx := context.Background()
	m1 := e.openMatch(t, nil)
	m2 := e.openMatch(t, nil)
	e.predict(t, "u1", m1.ID, 1, 0)
	e.predict(t, "u1", m2.ID, 2, 2)
	e.predict(t, "u2", m1.ID, 0, 0)

	all, err := e.predictions.ListMine(ctx, "u1", nil)
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(all))
	}

	byMatch, err := e.predictions.GetForMatches(ctx, "u1", []int64{m2.ID, m2.ID, 404})
	if err != nil {
		t.Fatalf("get for matches: %v", err)
	}
	if len(byMatch) != 1 || byMatch[m2.ID].PredictedHomeScore != 2 {
		t.Fatalf("unexpected predictions by match: %+v", byMatch)
	}
}
