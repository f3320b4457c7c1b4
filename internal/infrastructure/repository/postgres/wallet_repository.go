package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
	qb "github.com/riskibarqy/dinor-predictions/internal/platform/querybuilder"
)

type walletEntryTableModel struct {
	ID           int64     `db:"id"`
	UserID       string    `db:"user_id"`
	PredictionID int64     `db:"prediction_id"`
	Kind         string    `db:"kind"`
	Amount       int64     `db:"amount"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type WalletRepository struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) ListByUser(ctx context.Context, userID string) ([]wallet.Entry, error) {
	query, args, err := qb.Select("*").From("wallet_entries").
		Where(qb.Eq("user_id", userID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list wallet entries query: %w", err)
	}

	var rows []walletEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list wallet entries: %w", err)
	}

	out := make([]wallet.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, wallet.Entry{
			ID:           row.ID,
			UserID:       row.UserID,
			PredictionID: row.PredictionID,
			Kind:         wallet.EntryKind(row.Kind),
			Amount:       row.Amount,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		})
	}

	return out, nil
}
