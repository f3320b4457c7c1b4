package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches any constraint", func(t *testing.T) {
		err := fmt.Errorf("insert tournament: %w", &pq.Error{Code: "23505", Constraint: "uq_tournaments_slug"})
		if !isUniqueViolation(err, "") {
			t.Fatalf("expected true for wrapped unique violation")
		}
	})

	t.Run("matches named constraint", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Constraint: "uq_tournaments_slug"}
		if !isUniqueViolation(err, "uq_tournaments_slug") {
			t.Fatalf("expected true for matching constraint")
		}
		if isUniqueViolation(err, "uq_predictions_user_match") {
			t.Fatalf("expected false for other constraint")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err, "") {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("duplicate key value"), "") {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get match: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullableConversions(t *testing.T) {
	if got := nullInt64Ptr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for null int64, got %d", *got)
	}
	if got := nullInt64Ptr(sql.NullInt64{Int64: 7, Valid: true}); got == nil || *got != 7 {
		t.Fatalf("unexpected int64 conversion: %v", got)
	}
	if got := nullIntPtr(sql.NullInt32{Int32: 3, Valid: true}); got == nil || *got != 3 {
		t.Fatalf("unexpected int conversion: %v", got)
	}

	local := time.Date(2026, 3, 1, 19, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	got := nullTimePtr(sql.NullTime{Time: local, Valid: true})
	if got == nil || got.Location() != time.UTC || !got.Equal(local) {
		t.Fatalf("expected UTC time equal to input, got %v", got)
	}
	if optionalString("  ") != nil {
		t.Fatalf("expected nil for blank string")
	}
}

func TestScopeFromColumn(t *testing.T) {
	if scope := scopeFromColumn(sql.NullInt64{}); !scope.IsGlobal() {
		t.Fatalf("expected null tournament id to be the global scope")
	}
	scope := scopeFromColumn(sql.NullInt64{Int64: 4, Valid: true})
	if scope.Key() != "tournament:4" {
		t.Fatalf("unexpected scope key: %s", scope.Key())
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
