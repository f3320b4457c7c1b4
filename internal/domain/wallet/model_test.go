package wallet

import "testing"

func TestComputeBalance(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{PredictionID: 1, Kind: EntryStake, Amount: -100},
		{PredictionID: 1, Kind: EntryPayout, Amount: 300},
		{PredictionID: 2, Kind: EntryStake, Amount: -50},
	}

	got := ComputeBalance("u1", 1000, entries)
	if got.Staked != 150 {
		t.Fatalf("unexpected staked: %d", got.Staked)
	}
	if got.Won != 300 {
		t.Fatalf("unexpected won: %d", got.Won)
	}
	if got.Current != 1150 {
		t.Fatalf("unexpected current balance: %d", got.Current)
	}
}
