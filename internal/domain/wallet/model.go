package wallet

import (
	"errors"
	"time"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

type EntryKind string

const (
	EntryStake  EntryKind = "stake"
	EntryPayout EntryKind = "payout"
)

// Entry is one ledger line keyed by (prediction, kind). Stakes are negative.
type Entry struct {
	ID           int64
	UserID       string
	PredictionID int64
	Kind         EntryKind
	Amount       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Balance is derived from the ledger, never stored.
type Balance struct {
	UserID   string
	Starting int64
	Staked   int64
	Won      int64
	Current  int64
}

func ComputeBalance(userID string, starting int64, entries []Entry) Balance {
	out := Balance{UserID: userID, Starting: starting}
	for _, e := range entries {
		switch e.Kind {
		case EntryStake:
			out.Staked += -e.Amount
		case EntryPayout:
			out.Won += e.Amount
		}
	}
	out.Current = out.Starting - out.Staked + out.Won
	return out
}
