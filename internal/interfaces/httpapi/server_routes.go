package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/leaderboard", handler.ListLeaderboard)
	mux.HandleFunc("GET /v1/content/{kind}/{contentID}", handler.LookupContent)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	auth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, h)
	}

	mux.Handle("POST /v1/predictions", auth(handler.SubmitPrediction))
	mux.Handle("GET /v1/predictions", auth(handler.ListMyPredictions))
	mux.Handle("GET /v1/leaderboard/me", auth(handler.GetMyLeaderboardPosition))
	mux.Handle("POST /v1/tournaments/{tournamentID}/register", auth(handler.RegisterForTournament))
	mux.Handle("POST /v1/tournaments/{tournamentID}/unregister", auth(handler.UnregisterFromTournament))
	mux.Handle("GET /v1/wallet/me", auth(handler.GetMyWallet))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, adminRole string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireRole(adminRole, h))
	}

	mux.Handle("POST /v1/admin/teams", admin(handler.CreateTeam))
	mux.Handle("POST /v1/admin/matches", admin(handler.CreateMatch))
	mux.Handle("POST /v1/admin/matches/{matchID}/status", admin(handler.TransitionMatchStatus))
	mux.Handle("POST /v1/admin/matches/{matchID}/result", admin(handler.RecordMatchResult))
	mux.Handle("POST /v1/admin/matches/{matchID}/score", admin(handler.ScoreMatch))
	mux.Handle("GET /v1/admin/matches/{matchID}/audit", admin(handler.ListMatchAudit))
	mux.Handle("GET /v1/admin/scoring/incomplete", admin(handler.ListIncompleteScoring))
	mux.Handle("POST /v1/admin/scoring/retry", admin(handler.RetryIncompleteScoring))
	mux.Handle("POST /v1/admin/tournaments", admin(handler.CreateTournament))
	mux.Handle("POST /v1/admin/tournaments/{tournamentID}/status", admin(handler.ForceTournamentStatus))
	mux.Handle("POST /v1/admin/leaderboard/recalculate", admin(handler.RecalculateLeaderboard))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	job := func(h http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, h)
	}

	mux.Handle("POST /v1/internal/jobs/refresh-tournament-statuses", job(handler.RunRefreshTournamentStatusesJob))
	mux.Handle("POST /v1/internal/jobs/reconcile-participant-counts", job(handler.RunReconcileParticipantCountsJob))
	mux.Handle("POST /v1/internal/jobs/recalculate-leaderboards", job(handler.RunRecalculateLeaderboardsJob))
	mux.Handle("POST /v1/internal/jobs/retry-scoring", job(handler.RunRetryScoringJob))
}
