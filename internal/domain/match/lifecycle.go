package match

import (
	"fmt"
	"time"
)

// CanPredict reports whether predictions for m are accepted at now.
func CanPredict(m Match, now time.Time) bool {
	if !m.IsActive || !m.PredictionsEnabled {
		return false
	}
	if m.Status != StatusScheduled {
		return false
	}
	return now.Before(m.ClosesAt())
}

// ValidateTransition checks a plain status change. Re-finishing a finished
// match is only possible through a result correction.
func ValidateTransition(from, to Status) error {
	switch from {
	case StatusScheduled:
		switch to {
		case StatusLive, StatusFinished, StatusCancelled:
			return nil
		}
	case StatusLive:
		switch to {
		case StatusFinished, StatusCancelled:
			return nil
		}
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// ValidateResultRecording checks that a result may be recorded for a match in status from.
func ValidateResultRecording(from Status) error {
	switch from {
	case StatusScheduled, StatusLive, StatusFinished:
		return nil
	default:
		return fmt.Errorf("%w: cannot record result for %s match", ErrInvalidTransition, from)
	}
}
