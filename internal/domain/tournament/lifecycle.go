package tournament

import (
	"fmt"
	"time"
)

// DeriveStatus computes the time-based status. Cancelled and admin-forced
// statuses are kept as stored.
func DeriveStatus(t Tournament, now time.Time) Status {
	if t.Status == StatusCancelled {
		return StatusCancelled
	}
	if t.StatusOverridden && t.Status != "" {
		return t.Status
	}

	switch {
	case now.After(t.EndDate):
		return StatusFinished
	case !now.Before(t.StartDate):
		return StatusActive
	}

	if !t.HasRegistrationWindow() {
		return StatusUpcoming
	}

	registrationEnd := t.StartDate
	if t.RegistrationEnd != nil {
		registrationEnd = *t.RegistrationEnd
	}
	if t.RegistrationStart != nil && now.Before(*t.RegistrationStart) {
		return StatusUpcoming
	}
	if !now.After(registrationEnd) {
		return StatusRegistrationOpen
	}
	return StatusRegistrationClosed
}

// RegistrationOpen reports whether the status admits new registrations.
func RegistrationOpen(t Tournament, status Status) bool {
	switch status {
	case StatusRegistrationOpen:
		return true
	case StatusUpcoming:
		return !t.HasRegistrationWindow()
	default:
		return false
	}
}

// CanRegister applies the registration gate for a user. activeCount is the
// current number of active participants.
func CanRegister(t Tournament, status Status, activeCount int, alreadyActive bool) error {
	if !RegistrationOpen(t, status) {
		return fmt.Errorf("%w: status is %s", ErrRegistrationClosed, status)
	}
	if alreadyActive {
		return ErrAlreadyRegistered
	}
	if t.MaxParticipants != nil && activeCount >= *t.MaxParticipants {
		return fmt.Errorf("%w: %d of %d places taken", ErrTournamentFull, activeCount, *t.MaxParticipants)
	}
	return nil
}

// CanUnregister rejects withdrawals once the tournament is running.
func CanUnregister(status Status) error {
	if status == StatusActive {
		return ErrTournamentActive
	}
	return nil
}

// ValidateOverride checks an admin forced status.
func ValidateOverride(current, next Status) error {
	if current == StatusCancelled && next != StatusCancelled {
		return fmt.Errorf("%w: cancelled tournaments cannot be reopened", ErrInvalidTransition)
	}
	return nil
}
