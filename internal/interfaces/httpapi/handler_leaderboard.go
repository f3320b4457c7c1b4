package httpapi

import (
	"net/http"

	"github.com/riskibarqy/dinor-predictions/internal/usecase"
)

func (h *Handler) ListLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaderboard")
	defer span.End()

	scope, err := scopeFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboardService.List(ctx, scope, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list leaderboard failed", "scope", scope.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, leaderboardEntryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyLeaderboardPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyLeaderboardPosition")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	scope, err := scopeFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	position, err := h.leaderboardService.Me(ctx, scope, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardPositionToDTO(position))
}

// RecalculateLeaderboard rebuilds one tournament scope, or the global scope
// and every tournament when tournament_id is absent.
func (h *Handler) RecalculateLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateLeaderboard")
	defer span.End()

	scope, err := scopeFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if scope.IsGlobal() {
		results, err := h.leaderboardService.RecomputeAll(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "recalculate all leaderboards failed", "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, recomputeResultsToDTO(results))
		return
	}

	result, err := h.leaderboardService.Recompute(ctx, scope)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate leaderboard failed", "scope", scope.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recomputeResultsToDTO([]usecase.RecomputeResult{result}))
}

func recomputeResultsToDTO(results []usecase.RecomputeResult) []recomputeResultDTO {
	items := make([]recomputeResultDTO, 0, len(results))
	for _, res := range results {
		items = append(items, recomputeResultDTO{Scope: res.Scope.Key(), Entries: res.Entries})
	}
	return items
}
