package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type internalJobRequest struct {
	DispatchID string `json:"dispatch_id,omitempty" validate:"omitempty,max=128"`
}

type internalJobResponse struct {
	JobName    string `json:"job_name"`
	DispatchID string `json:"dispatch_id,omitempty"`
	TraceID    string `json:"trace_id,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Result     any    `json:"result"`
}

// runInternalJob decodes the optional dispatch envelope, runs job and reports
// the outcome with the trace id so a scheduler can correlate its dispatch.
func (h *Handler) runInternalJob(w http.ResponseWriter, r *http.Request, jobName string, job func(context.Context) (any, error)) {
	ctx := r.Context()

	var req internalJobRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	started := time.Now()
	result, err := job(ctx)
	duration := time.Since(started)
	if err != nil {
		h.logger.WarnContext(ctx, "internal job failed",
			"job_name", jobName,
			"dispatch_id", req.DispatchID,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "internal job completed",
		"job_name", jobName,
		"dispatch_id", req.DispatchID,
		"duration_ms", duration.Milliseconds(),
	)
	writeSuccess(ctx, w, http.StatusOK, internalJobResponse{
		JobName:    jobName,
		DispatchID: req.DispatchID,
		TraceID:    traceIDFromContext(ctx),
		DurationMS: duration.Milliseconds(),
		Result:     result,
	})
}

func (h *Handler) RunRefreshTournamentStatusesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshTournamentStatusesJob")
	defer span.End()

	h.runInternalJob(w, r.WithContext(ctx), "refresh-tournament-statuses", func(ctx context.Context) (any, error) {
		result, err := h.tournamentService.RefreshStatuses(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]int{"checked": result.Checked, "changed": result.Changed}, nil
	})
}

func (h *Handler) RunReconcileParticipantCountsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileParticipantCountsJob")
	defer span.End()

	h.runInternalJob(w, r.WithContext(ctx), "reconcile-participant-counts", func(ctx context.Context) (any, error) {
		fixes, err := h.tournamentService.ReconcileParticipantCounts(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]map[string]any, 0, len(fixes))
		for _, fix := range fixes {
			items = append(items, map[string]any{
				"tournament_id": fix.TournamentID,
				"before":        fix.Before,
				"after":         fix.After,
			})
		}
		return map[string]any{"fixed": items}, nil
	})
}

func (h *Handler) RunRecalculateLeaderboardsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateLeaderboardsJob")
	defer span.End()

	h.runInternalJob(w, r.WithContext(ctx), "recalculate-leaderboards", func(ctx context.Context) (any, error) {
		results, err := h.leaderboardService.RecomputeAll(ctx)
		if err != nil {
			return nil, err
		}
		return recomputeResultsToDTO(results), nil
	})
}

func (h *Handler) RunRetryScoringJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRetryScoringJob")
	defer span.End()

	h.runInternalJob(w, r.WithContext(ctx), "retry-scoring", func(ctx context.Context) (any, error) {
		result, err := h.scoringService.RetryIncomplete(ctx)
		if err != nil {
			return nil, err
		}
		return retryScoringToDTO(result), nil
	})
}

func traceIDFromContext(ctx context.Context) string {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return ""
	}
	return spanContext.TraceID().String()
}
