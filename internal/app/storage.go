package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/dinor-predictions/internal/config"
	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
	cacherepo "github.com/riskibarqy/dinor-predictions/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/dinor-predictions/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/dinor-predictions/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/dinor-predictions/internal/platform/cache"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	teams        team.Repository
	matches      match.Repository
	predictions  prediction.Repository
	leaderboards leaderboard.Repository
	tournaments  tournament.Repository
	wallets      wallet.Repository
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	var (
		repos   repositories
		cleanup = func() error { return nil }
	)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		db := memory.NewDatabase()
		if err := memory.Seed(ctx, db, time.Now().UTC()); err != nil {
			return repositories{}, nil, fmt.Errorf("seed memory storage: %w", err)
		}
		repos = repositories{
			teams:        memory.NewTeamRepository(db),
			matches:      memory.NewMatchRepository(db),
			predictions:  memory.NewPredictionRepository(db),
			leaderboards: memory.NewLeaderboardRepository(db),
			tournaments:  memory.NewTournamentRepository(db),
			wallets:      memory.NewWalletRepository(db),
		}
		logger.Warn("using in-memory storage with seed data", "tournament_slug", memory.SeedTournamentSlug)
	default:
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		cleanup = db.Close
		if cfg.AppEnv != config.EnvProd {
			inserted, err := postgres.BootstrapSeed(ctx, db)
			if err != nil {
				_ = db.Close()
				return repositories{}, nil, err
			}
			if inserted > 0 {
				logger.Info("seeded demo teams", "count", inserted)
			}
		}
		repos = repositories{
			teams:        postgres.NewTeamRepository(db),
			matches:      postgres.NewMatchRepository(db),
			predictions:  postgres.NewPredictionRepository(db),
			leaderboards: postgres.NewLeaderboardRepository(db),
			tournaments:  postgres.NewTournamentRepository(db),
			wallets:      postgres.NewWalletRepository(db),
		}
		logger.Info("postgres storage connected", "db_name", dbNameFromURL(cfg.DBURL))
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, store)
		repos.predictions = cacherepo.NewPredictionRepository(repos.predictions, store)
		repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, store)
		logger.Info("repository read cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos, cleanup, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary), opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
