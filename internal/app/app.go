package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/config"
	"github.com/riskibarqy/dinor-predictions/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/dinor-predictions/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/dinor-predictions/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/dinor-predictions/internal/platform/id"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
	"github.com/riskibarqy/dinor-predictions/internal/platform/resilience"
	"github.com/riskibarqy/dinor-predictions/internal/usecase"
)

// NewHTTPServer wires storage, services and the router. The returned cleanup
// releases the storage connections and must be called after shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	services := buildServices(cfg, repos, logger)

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		anubis.Config{
			BaseURL:           cfg.AnubisBaseURL,
			IntrospectPath:    cfg.AnubisIntrospectURL,
			AdminKey:          cfg.AnubisAdminKey,
			PrincipalCacheTTL: cfg.AnubisPrincipalCacheTTL,
			Circuit: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(services, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, idgen.NewRandomGenerator(), httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		AdminRole:          cfg.AdminRole,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func buildServices(cfg config.Config, repos repositories, logger *logging.Logger) httpapi.Services {
	leaderboardSvc := usecase.NewLeaderboardService(
		repos.leaderboards,
		repos.tournaments,
		usecase.LeaderboardConfig{
			DefaultLimit: cfg.LeaderboardDefaultLimit,
			MaxLimit:     cfg.LeaderboardMaxLimit,
		},
		logger,
	)
	scoringSvc := usecase.NewScoringService(repos.matches, repos.predictions, leaderboardSvc, cfg.ScoringWorkerPoolSize, logger)
	if cfg.QStashEnabled {
		scoringSvc.WithRetryQueue(jobqueue.NewQStashPublisher(jobqueue.QStashConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
		}, logger), cfg.ScoringRetryDelay)
	}

	return httpapi.Services{
		Teams:       usecase.NewTeamService(repos.teams),
		Matches:     usecase.NewMatchService(repos.matches, repos.teams, repos.tournaments, scoringSvc, logger),
		Predictions: usecase.NewPredictionService(repos.predictions, repos.matches, repos.tournaments, cfg.WalletStartingBalance),
		Scoring:     scoringSvc,
		Leaderboard: leaderboardSvc,
		Tournaments: usecase.NewTournamentService(repos.tournaments, leaderboardSvc, logger),
		Wallet:      usecase.NewWalletService(repos.wallets, cfg.WalletStartingBalance),
		Content:     usecase.NewContentService(repos.teams, repos.tournaments, repos.matches),
	}
}
