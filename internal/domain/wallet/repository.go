package wallet

import "context"

// Repository reads the ledger. Writes happen inside prediction and scoring transactions.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
}
