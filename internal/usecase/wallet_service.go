package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
)

type WalletService struct {
	walletRepo      wallet.Repository
	startingBalance int64
}

func NewWalletService(walletRepo wallet.Repository, startingBalance int64) *WalletService {
	return &WalletService{walletRepo: walletRepo, startingBalance: startingBalance}
}

func (s *WalletService) Balance(ctx context.Context, userID string) (wallet.Balance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WalletService.Balance")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return wallet.Balance{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	entries, err := s.walletRepo.ListByUser(ctx, userID)
	if err != nil {
		return wallet.Balance{}, fmt.Errorf("list wallet entries: %w", err)
	}

	return wallet.ComputeBalance(userID, s.startingBalance, entries), nil
}
