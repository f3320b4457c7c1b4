package match

import (
	"errors"
	"testing"
	"time"
)

func TestCanPredict(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	closeAt := kickoff.Add(-30 * time.Minute)
	base := Match{
		ID:                 1,
		HomeTeamID:         10,
		AwayTeamID:         20,
		MatchDate:          kickoff,
		Status:             StatusScheduled,
		IsActive:           true,
		PredictionsEnabled: true,
	}

	tests := []struct {
		name   string
		mutate func(*Match)
		now    time.Time
		want   bool
	}{
		{name: "open before kickoff", mutate: func(*Match) {}, now: kickoff.Add(-time.Minute), want: true},
		{name: "closed at kickoff", mutate: func(*Match) {}, now: kickoff, want: false},
		{name: "close at overrides kickoff", mutate: func(m *Match) { m.PredictionsCloseAt = &closeAt }, now: closeAt.Add(-time.Second), want: true},
		{name: "closed at close at", mutate: func(m *Match) { m.PredictionsCloseAt = &closeAt }, now: closeAt, want: false},
		{name: "inactive", mutate: func(m *Match) { m.IsActive = false }, now: kickoff.Add(-time.Hour), want: false},
		{name: "predictions disabled", mutate: func(m *Match) { m.PredictionsEnabled = false }, now: kickoff.Add(-time.Hour), want: false},
		{name: "live", mutate: func(m *Match) { m.Status = StatusLive }, now: kickoff.Add(-time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := base
			tt.mutate(&item)
			if got := CanPredict(item, tt.now); got != tt.want {
				t.Fatalf("CanPredict()=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestValidateTransition(t *testing.T) {
	t.Parallel()

	allowed := [][2]Status{
		{StatusScheduled, StatusLive},
		{StatusScheduled, StatusFinished},
		{StatusScheduled, StatusCancelled},
		{StatusLive, StatusFinished},
		{StatusLive, StatusCancelled},
	}
	for _, pair := range allowed {
		if err := ValidateTransition(pair[0], pair[1]); err != nil {
			t.Fatalf("expected %s -> %s to be allowed, got %v", pair[0], pair[1], err)
		}
	}

	rejected := [][2]Status{
		{StatusLive, StatusScheduled},
		{StatusFinished, StatusLive},
		{StatusFinished, StatusScheduled},
		{StatusFinished, StatusCancelled},
		{StatusCancelled, StatusScheduled},
		{StatusCancelled, StatusLive},
		{StatusScheduled, StatusScheduled},
	}
	for _, pair := range rejected {
		if err := ValidateTransition(pair[0], pair[1]); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected %s -> %s to be rejected, got %v", pair[0], pair[1], err)
		}
	}
}

func TestValidateResultRecording(t *testing.T) {
	t.Parallel()

	if err := ValidateResultRecording(StatusFinished); err != nil {
		t.Fatalf("expected correction to be allowed: %v", err)
	}
	if err := ValidateResultRecording(StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected cancelled match to reject result, got %v", err)
	}
}

func TestMatchValidate(t *testing.T) {
	t.Parallel()

	item := Match{HomeTeamID: 1, AwayTeamID: 1, MatchDate: time.Now()}
	if err := item.Validate(); err == nil {
		t.Fatalf("expected error for identical teams")
	}

	home := 1
	item = Match{HomeTeamID: 1, AwayTeamID: 2, MatchDate: time.Now(), HomeScore: &home}
	if err := item.Validate(); err == nil {
		t.Fatalf("expected error for half-set score")
	}
}
