package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
)

type PredictionRepository struct {
	db *Database
}

func NewPredictionRepository(db *Database) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Upsert(_ context.Context, input prediction.UpsertInput) (prediction.Prediction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item := input.Prediction
	target, ok := r.db.matches[item.MatchID]
	if !ok || !match.CanPredict(target, input.Now) {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%d", prediction.ErrWindowClosed, item.MatchID)
	}

	key := predictionKey{userID: item.UserID, matchID: item.MatchID}
	existingID, exists := r.db.predictionByKey[key]
	if item.BetAmount != nil {
		available := r.availableBalanceLocked(item.UserID, input.StartingBalance, existingID)
		if *item.BetAmount > available {
			return prediction.Prediction{}, fmt.Errorf("%w: bet=%d available=%d", wallet.ErrInsufficientBalance, *item.BetAmount, available)
		}
	}

	now := input.Now.UTC()
	if exists {
		stored := r.db.predictions[existingID]
		item.ID = stored.ID
		item.CreatedAt = stored.CreatedAt
	} else {
		r.db.nextPredictionID++
		item.ID = r.db.nextPredictionID
		item.CreatedAt = now
		r.db.predictionByKey[key] = item.ID
	}
	item.PointsEarned = 0
	item.IsCalculated = false
	item.ScoreKind = prediction.ScoreKindNone
	item.BetAmount = cloneInt64(item.BetAmount)
	item.UpdatedAt = now
	r.db.predictions[item.ID] = item

	stakeKey := walletKey{predictionID: item.ID, kind: wallet.EntryStake}
	if item.BetAmount == nil {
		delete(r.db.walletEntries, stakeKey)
	} else {
		r.putWalletEntryLocked(stakeKey, item.UserID, -*item.BetAmount, now)
	}
	// A resubmission invalidates any earlier payout until the match is rescored.
	delete(r.db.walletEntries, walletKey{predictionID: item.ID, kind: wallet.EntryPayout})

	return clonePrediction(item), nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string, matchIDs []int64) ([]prediction.Prediction, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var allowed map[int64]struct{}
	if matchIDs != nil {
		allowed = make(map[int64]struct{}, len(matchIDs))
		for _, id := range matchIDs {
			allowed[id] = struct{}{}
		}
	}

	out := make([]prediction.Prediction, 0)
	for _, item := range r.db.predictions {
		if item.UserID != userID {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[item.MatchID]; !ok {
				continue
			}
		}
		out = append(out, clonePrediction(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })

	return out, nil
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID int64) ([]prediction.Prediction, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.listByMatchLocked(matchID), nil
}

func (r *PredictionRepository) ApplyScores(_ context.Context, batch prediction.ScoreBatch) error {
	matchID, scores := batch.MatchID, batch.Scores

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	target, ok := r.db.matches[matchID]
	if !ok {
		return fmt.Errorf("match %d not found", matchID)
	}
	if target.HomeScore == nil || target.AwayScore == nil ||
		*target.HomeScore != batch.HomeScore || *target.AwayScore != batch.AwayScore {
		return fmt.Errorf("%w: match=%d scored against %d-%d", prediction.ErrScoreSetChanged, matchID, batch.HomeScore, batch.AwayScore)
	}

	stored := r.listByMatchLocked(matchID)
	if len(stored) != len(scores) {
		return fmt.Errorf("%w: match=%d stored=%d scored=%d", prediction.ErrScoreSetChanged, matchID, len(stored), len(scores))
	}
	byID := make(map[int64]prediction.Prediction, len(stored))
	for _, item := range stored {
		byID[item.ID] = item
	}
	for _, score := range scores {
		if _, ok := byID[score.PredictionID]; !ok {
			return fmt.Errorf("%w: prediction %d is not part of match %d", prediction.ErrScoreSetChanged, score.PredictionID, matchID)
		}
	}

	now := batch.ScoredAt.UTC()
	for _, score := range scores {
		item := byID[score.PredictionID]
		item.PointsEarned = score.Points
		item.ScoreKind = score.Kind
		item.IsCalculated = true
		item.UpdatedAt = now
		r.db.predictions[item.ID] = item

		payoutKey := walletKey{predictionID: item.ID, kind: wallet.EntryPayout}
		if score.Payout != nil && *score.Payout > 0 {
			r.putWalletEntryLocked(payoutKey, item.UserID, *score.Payout, now)
		} else {
			delete(r.db.walletEntries, payoutKey)
		}
	}

	target.ScoringStatus = match.ScoringCompleted
	target.ScoredAt = &now
	target.UpdatedAt = now
	r.db.matches[matchID] = target

	return nil
}

func (r *PredictionRepository) listByMatchLocked(matchID int64) []prediction.Prediction {
	out := make([]prediction.Prediction, 0)
	for _, item := range r.db.predictions {
		if item.MatchID == matchID {
			out = append(out, clonePrediction(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// availableBalanceLocked ignores the stake of excludePredictionID, which is
// about to be replaced.
func (r *PredictionRepository) availableBalanceLocked(userID string, starting int64, excludePredictionID int64) int64 {
	entries := make([]wallet.Entry, 0)
	for key, entry := range r.db.walletEntries {
		if entry.UserID != userID {
			continue
		}
		if key.kind == wallet.EntryStake && key.predictionID == excludePredictionID {
			continue
		}
		entries = append(entries, entry)
	}
	return wallet.ComputeBalance(userID, starting, entries).Current
}

func (r *PredictionRepository) putWalletEntryLocked(key walletKey, userID string, amount int64, now time.Time) {
	entry, exists := r.db.walletEntries[key]
	if !exists {
		r.db.nextWalletID++
		entry = wallet.Entry{
			ID:           r.db.nextWalletID,
			UserID:       userID,
			PredictionID: key.predictionID,
			Kind:         key.kind,
			CreatedAt:    now,
		}
	}
	entry.Amount = amount
	entry.UpdatedAt = now
	r.db.walletEntries[key] = entry
}
