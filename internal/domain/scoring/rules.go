package scoring

import "github.com/riskibarqy/dinor-predictions/internal/domain/prediction"

// Rules stores the points awarded per prediction outcome.
type Rules struct {
	ExactScorePoints    int
	CorrectWinnerPoints int
	MissPoints          int
}

func DefaultRules() Rules {
	return Rules{
		ExactScorePoints:    3,
		CorrectWinnerPoints: 1,
		MissPoints:          0,
	}
}

type Result struct {
	Points int
	Kind   prediction.ScoreKind
}

// Evaluate scores a predicted scoreline against the actual one.
func Evaluate(rules Rules, predictedHome, predictedAway, actualHome, actualAway int) Result {
	if predictedHome == actualHome && predictedAway == actualAway {
		return Result{Points: rules.ExactScorePoints, Kind: prediction.ScoreKindExact}
	}
	if prediction.DeriveWinner(predictedHome, predictedAway) == prediction.DeriveWinner(actualHome, actualAway) {
		return Result{Points: rules.CorrectWinnerPoints, Kind: prediction.ScoreKindWinner}
	}
	return Result{Points: rules.MissPoints, Kind: prediction.ScoreKindMiss}
}

// Payout is the wallet credit for a bet given the points earned.
func Payout(betAmount int64, points int) int64 {
	if betAmount <= 0 || points <= 0 {
		return 0
	}
	return betAmount * int64(points)
}

// ScoreAll evaluates every prediction of a finished match.
func ScoreAll(rules Rules, items []prediction.Prediction, actualHome, actualAway int) []prediction.Score {
	out := make([]prediction.Score, 0, len(items))
	for _, item := range items {
		result := Evaluate(rules, item.PredictedHomeScore, item.PredictedAwayScore, actualHome, actualAway)
		score := prediction.Score{
			PredictionID: item.ID,
			UserID:       item.UserID,
			Points:       result.Points,
			Kind:         result.Kind,
		}
		if item.BetAmount != nil {
			payout := Payout(*item.BetAmount, result.Points)
			score.Payout = &payout
		}
		out = append(out, score)
	}
	return out
}
