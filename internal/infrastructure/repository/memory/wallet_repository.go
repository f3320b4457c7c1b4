package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
)

type WalletRepository struct {
	db *Database
}

func NewWalletRepository(db *Database) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) ListByUser(_ context.Context, userID string) ([]wallet.Entry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]wallet.Entry, 0)
	for _, entry := range r.db.walletEntries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}
