package tournament

import (
	"errors"
	"testing"
	"time"
)

func TestDeriveStatus_WithRegistrationWindow(t *testing.T) {
	t.Parallel()

	regStart := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	regEnd := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	item := Tournament{
		Status:            StatusUpcoming,
		RegistrationStart: &regStart,
		RegistrationEnd:   &regEnd,
		StartDate:         time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{name: "before registration", now: regStart.Add(-time.Hour), want: StatusUpcoming},
		{name: "registration start inclusive", now: regStart, want: StatusRegistrationOpen},
		{name: "registration end inclusive", now: regEnd, want: StatusRegistrationOpen},
		{name: "between registration and start", now: regEnd.Add(time.Hour), want: StatusRegistrationClosed},
		{name: "start inclusive", now: item.StartDate, want: StatusActive},
		{name: "end inclusive", now: item.EndDate, want: StatusActive},
		{name: "after end", now: item.EndDate.Add(time.Second), want: StatusFinished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(item, tt.now); got != tt.want {
				t.Fatalf("DeriveStatus()=%s want=%s", got, tt.want)
			}
		})
	}
}

func TestDeriveStatus_WithoutRegistrationWindow(t *testing.T) {
	t.Parallel()

	item := Tournament{
		StartDate: time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	if got := DeriveStatus(item, item.StartDate.Add(-time.Hour)); got != StatusUpcoming {
		t.Fatalf("expected upcoming, got %s", got)
	}
	if err := CanRegister(item, StatusUpcoming, 0, false); err != nil {
		t.Fatalf("expected registration while upcoming without window: %v", err)
	}
}

func TestDeriveStatus_CancelledAndOverrideAreKept(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	item := Tournament{
		Status:    StatusCancelled,
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
	}
	if got := DeriveStatus(item, now); got != StatusCancelled {
		t.Fatalf("expected cancelled to stay terminal, got %s", got)
	}

	item.Status = StatusRegistrationOpen
	item.StatusOverridden = true
	if got := DeriveStatus(item, now); got != StatusRegistrationOpen {
		t.Fatalf("expected overridden status to be kept, got %s", got)
	}
}

func TestCanRegister(t *testing.T) {
	t.Parallel()

	regEnd := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	capacity := 2
	item := Tournament{RegistrationEnd: &regEnd, MaxParticipants: &capacity}

	if err := CanRegister(item, StatusUpcoming, 0, false); !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed for upcoming with window, got %v", err)
	}
	if err := CanRegister(item, StatusRegistrationOpen, 1, true); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if err := CanRegister(item, StatusRegistrationOpen, 2, false); !errors.Is(err, ErrTournamentFull) {
		t.Fatalf("expected ErrTournamentFull, got %v", err)
	}
	if err := CanRegister(item, StatusRegistrationOpen, 1, false); err != nil {
		t.Fatalf("expected registration to be allowed: %v", err)
	}
	if err := CanRegister(item, StatusActive, 0, false); !errors.Is(err, ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed for active, got %v", err)
	}
}

func TestValidate_DateOrdering(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	late := start.Add(time.Hour)
	item := Tournament{
		Name:            "Liga Dinor",
		Slug:            "liga-dinor",
		StartDate:       start,
		EndDate:         start.Add(30 * 24 * time.Hour),
		RegistrationEnd: &late,
	}
	if err := item.Validate(); err == nil {
		t.Fatalf("expected error when registration ends after start")
	}

	item.RegistrationEnd = nil
	if err := item.Validate(); err != nil {
		t.Fatalf("expected valid tournament: %v", err)
	}
}
