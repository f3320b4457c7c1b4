package leaderboard

import (
	"math"
	"sort"
)

// Accuracy returns the share of correct predictions as a percentage rounded to one decimal.
func Accuracy(correctScores, correctWinners, total int) float64 {
	if total <= 0 {
		return 0
	}
	raw := 100 * float64(correctScores+correctWinners) / float64(total)
	return math.Round(raw*10) / 10
}

func EntryFromStats(scope Scope, stats Stats) Entry {
	return Entry{
		Scope:              scope,
		UserID:             stats.UserID,
		TotalPoints:        stats.TotalPoints,
		TotalPredictions:   stats.TotalPredictions,
		CorrectScores:      stats.CorrectScores,
		CorrectWinners:     stats.CorrectWinners,
		AccuracyPercentage: Accuracy(stats.CorrectScores, stats.CorrectWinners, stats.TotalPredictions),
	}
}

// RankStats builds ranked entries for a scope, skipping users without
// calculated predictions.
func RankStats(scope Scope, stats []Stats) []Entry {
	entries := make([]Entry, 0, len(stats))
	for _, item := range stats {
		if item.TotalPredictions == 0 {
			continue
		}
		entries = append(entries, EntryFromStats(scope, item))
	}
	AssignRanks(entries)
	return entries
}

// Compare orders by points, accuracy, then prediction count, all descending.
// It returns a negative number when a ranks ahead of b and 0 on a full tie.
func Compare(a, b Entry) int {
	if a.TotalPoints != b.TotalPoints {
		if a.TotalPoints > b.TotalPoints {
			return -1
		}
		return 1
	}
	if a.AccuracyPercentage != b.AccuracyPercentage {
		if a.AccuracyPercentage > b.AccuracyPercentage {
			return -1
		}
		return 1
	}
	if a.TotalPredictions != b.TotalPredictions {
		if a.TotalPredictions > b.TotalPredictions {
			return -1
		}
		return 1
	}
	return 0
}

// Outranks reports whether a is strictly ahead of b.
func Outranks(a, b Entry) bool {
	return Compare(a, b) < 0
}

// AssignRanks sorts entries and assigns dense ranks in place.
func AssignRanks(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if cmp := Compare(entries[i], entries[j]); cmp != 0 {
			return cmp < 0
		}
		return entries[i].UserID < entries[j].UserID
	})

	rank := 0
	for i := range entries {
		if i == 0 || Compare(entries[i-1], entries[i]) != 0 {
			rank++
		}
		entries[i].Rank = rank
	}
}

// RankAmong returns the dense rank target would get among others: one plus the
// number of distinct tie groups strictly ahead of it.
func RankAmong(target Entry, others []Entry) int {
	ahead := make([]Entry, 0, len(others))
	for _, other := range others {
		if other.UserID == target.UserID {
			continue
		}
		if Outranks(other, target) {
			ahead = append(ahead, other)
		}
	}
	if len(ahead) == 0 {
		return 1
	}

	AssignRanks(ahead)
	return ahead[len(ahead)-1].Rank + 1
}

func ResolveMovement(rank int, previous *int) RankMovement {
	if previous == nil || *previous <= 0 {
		return RankMovementNew
	}
	switch {
	case rank < *previous:
		return RankMovementUp
	case rank > *previous:
		return RankMovementDown
	default:
		return RankMovementSame
	}
}
