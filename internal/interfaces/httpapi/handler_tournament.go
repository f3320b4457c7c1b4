package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/usecase"
)

const autoTournamentStatus = "auto"

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	filter := tournament.ListFilter{
		PublicOnly:   true,
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := tournament.ParseStatus(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
		filter.Status = status
	}

	tournaments, err := h.tournamentService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		items = append(items, tournamentToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	tournamentID, err := parsePathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) RegisterForTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterForTournament")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	tournamentID, err := parsePathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	participant, err := h.tournamentService.Register(ctx, tournamentID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "register for tournament failed",
			"tournament_id", tournamentID,
			"user_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantToDTO(participant))
}

func (h *Handler) UnregisterFromTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnregisterFromTournament")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	tournamentID, err := parsePathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tournamentService.Unregister(ctx, tournamentID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "unregister from tournament failed",
			"tournament_id", tournamentID,
			"user_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"tournament_id": tournamentID,
		"status":        string(tournament.ParticipantWithdrawn),
	})
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req createTournamentRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	created, err := h.tournamentService.Create(ctx, usecase.CreateTournamentInput{
		Name:              req.Name,
		Slug:              req.Slug,
		Description:       req.Description,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		MaxParticipants:   req.MaxParticipants,
		IsPublic:          isPublic,
		IsFeatured:        req.IsFeatured,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "slug", req.Slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(created))
}

func (h *Handler) ForceTournamentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ForceTournamentStatus")
	defer span.End()

	tournamentID, err := parsePathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req tournamentStatusRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var status tournament.Status
	if req.Status != autoTournamentStatus {
		status, err = tournament.ParseStatus(req.Status)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
	}

	updated, err := h.tournamentService.ForceStatus(ctx, tournamentID, status)
	if err != nil {
		h.logger.WarnContext(ctx, "force tournament status failed", "tournament_id", tournamentID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(updated))
}
