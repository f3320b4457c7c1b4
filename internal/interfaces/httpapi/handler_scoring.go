package httpapi

import (
	"net/http"

	"github.com/riskibarqy/dinor-predictions/internal/usecase"
)

func (h *Handler) ScoreMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreMatch")
	defer span.End()

	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.scoringService.ScoreMatch(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "score match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringSummaryToDTO(summary))
}

func (h *Handler) ListIncompleteScoring(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListIncompleteScoring")
	defer span.End()

	matches, err := h.scoringService.ListIncomplete(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m, false))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RetryIncompleteScoring(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RetryIncompleteScoring")
	defer span.End()

	result, err := h.scoringService.RetryIncomplete(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "retry incomplete scoring failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, retryScoringToDTO(result))
}

func retryScoringToDTO(v usecase.RetryScoringResult) retryScoringDTO {
	scored := make([]scoringSummaryDTO, 0, len(v.Scored))
	for _, s := range v.Scored {
		scored = append(scored, scoringSummaryToDTO(s))
	}
	failed := append([]int64{}, v.Failed...)

	return retryScoringDTO{
		Attempted: v.Attempted,
		Scored:    scored,
		Failed:    failed,
	}
}
