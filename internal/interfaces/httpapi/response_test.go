package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/domain/user"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
	"github.com/riskibarqy/dinor-predictions/internal/usecase"
)

func principalWithRoles(roles ...string) user.Principal {
	return user.Principal{UserID: "user-1", Roles: roles}
}

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
	items, _ := errorObj["errors"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["domain"] != errorDomain {
		t.Fatalf("unexpected error items: %v", errorObj["errors"])
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: connection refused to 10.0.0.5"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body envelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || body.Error.Message != "internal server error" {
		t.Fatalf("expected generic message, got %+v", body.Error)
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	scoringErr := crerr.Mark(crerr.New("write scores failed"), usecase.ErrScoringIncomplete)

	tests := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{fmt.Errorf("%w: x", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{usecase.ErrForbidden, http.StatusForbidden, "forbidden"},
		{fmt.Errorf("%w: team=1", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{fmt.Errorf("%w: match=1", usecase.ErrMatchNotFound), http.StatusNotFound, "matchNotFound"},
		{usecase.ErrTournamentNotFound, http.StatusNotFound, "tournamentNotFound"},
		{fmt.Errorf("%w: match=1", prediction.ErrWindowClosed), http.StatusUnprocessableEntity, "windowClosed"},
		{prediction.ErrNotParticipant, http.StatusUnprocessableEntity, "notParticipant"},
		{wallet.ErrInsufficientBalance, http.StatusUnprocessableEntity, "insufficientBalance"},
		{tournament.ErrRegistrationClosed, http.StatusUnprocessableEntity, "registrationClosed"},
		{tournament.ErrTournamentFull, http.StatusConflict, "tournamentFull"},
		{tournament.ErrAlreadyRegistered, http.StatusConflict, "alreadyRegistered"},
		{tournament.ErrTournamentActive, http.StatusConflict, "tournamentActive"},
		{tournament.ErrNotRegistered, http.StatusConflict, "notRegistered"},
		{tournament.ErrSlugTaken, http.StatusConflict, "slugTaken"},
		{match.ErrInvalidTransition, http.StatusConflict, "invalidTransition"},
		{tournament.ErrInvalidTransition, http.StatusConflict, "invalidTransition"},
		{fmt.Errorf("rescore: %w", scoringErr), http.StatusInternalServerError, "scoringIncomplete"},
		{fmt.Errorf("%w: anubis down", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable"},
		{errors.New("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tt := range tests {
		got := mapError(context.Background(), tt.err)
		if got.HTTPStatus != tt.wantStatus || got.Reason != tt.wantReason {
			t.Fatalf("mapError(%v)=%d/%s want %d/%s", tt.err, got.HTTPStatus, got.Reason, tt.wantStatus, tt.wantReason)
		}
	}
}
