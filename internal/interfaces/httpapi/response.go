package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
	"github.com/riskibarqy/dinor-predictions/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "dinor-predictions"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorMappings is checked in order; the first sentinel found in the chain wins.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrForbidden, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{usecase.ErrMatchNotFound, mappedError{http.StatusNotFound, "matchNotFound", "NOT_FOUND"}},
	{usecase.ErrTournamentNotFound, mappedError{http.StatusNotFound, "tournamentNotFound", "NOT_FOUND"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{prediction.ErrWindowClosed, mappedError{http.StatusUnprocessableEntity, "windowClosed", "FAILED_PRECONDITION"}},
	{prediction.ErrNotParticipant, mappedError{http.StatusUnprocessableEntity, "notParticipant", "FAILED_PRECONDITION"}},
	{wallet.ErrInsufficientBalance, mappedError{http.StatusUnprocessableEntity, "insufficientBalance", "FAILED_PRECONDITION"}},
	{tournament.ErrRegistrationClosed, mappedError{http.StatusUnprocessableEntity, "registrationClosed", "FAILED_PRECONDITION"}},
	{tournament.ErrTournamentFull, mappedError{http.StatusConflict, "tournamentFull", "ABORTED"}},
	{tournament.ErrAlreadyRegistered, mappedError{http.StatusConflict, "alreadyRegistered", "ALREADY_EXISTS"}},
	{tournament.ErrTournamentActive, mappedError{http.StatusConflict, "tournamentActive", "FAILED_PRECONDITION"}},
	{tournament.ErrNotRegistered, mappedError{http.StatusConflict, "notRegistered", "FAILED_PRECONDITION"}},
	{tournament.ErrSlugTaken, mappedError{http.StatusConflict, "slugTaken", "ALREADY_EXISTS"}},
	{match.ErrInvalidTransition, mappedError{http.StatusConflict, "invalidTransition", "FAILED_PRECONDITION"}},
	{tournament.ErrInvalidTransition, mappedError{http.StatusConflict, "invalidTransition", "FAILED_PRECONDITION"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalErrorMapping = mappedError{
	HTTPStatus: http.StatusInternalServerError,
	Reason:     "internalError",
	Status:     "INTERNAL",
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	// Encode into a pooled buffer so a failed encode never sends a partial body.
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_, _ = buf.WriteString(`{"apiVersion":"` + googleAPIVersion + `","error":{"code":500,"message":"encode response failed","status":"INTERNAL"}}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError && mapped.Reason == internalErrorMapping.Reason {
		message = "internal server error"
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New("internal server error"))
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	// Marked errors are only visible through cockroachdb/errors.
	if crerr.Is(err, usecase.ErrScoringIncomplete) {
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "scoringIncomplete",
			Status:     "INTERNAL",
		}
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}

	return internalErrorMapping
}
