package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/user"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
	"github.com/riskibarqy/dinor-predictions/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// Services bundles the usecases the handler serves.
type Services struct {
	Teams       *usecase.TeamService
	Matches     *usecase.MatchService
	Predictions *usecase.PredictionService
	Scoring     *usecase.ScoringService
	Leaderboard *usecase.LeaderboardService
	Tournaments *usecase.TournamentService
	Wallet      *usecase.WalletService
	Content     *usecase.ContentService
}

type Handler struct {
	teamService        *usecase.TeamService
	matchService       *usecase.MatchService
	predictionService  *usecase.PredictionService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	tournamentService  *usecase.TournamentService
	walletService      *usecase.WalletService
	contentService     *usecase.ContentService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:        services.Teams,
		matchService:       services.Matches,
		predictionService:  services.Predictions,
		scoringService:     services.Scoring,
		leaderboardService: services.Leaderboard,
		tournamentService:  services.Tournaments,
		walletService:      services.Wallet,
		contentService:     services.Content,
		logger:             logger.Named("httpapi"),
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a strict JSON body. An empty body is accepted when allowEmpty is set.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func parseOptionalQueryID(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return &value, nil
}

// parseQueryIDList accepts both match_id=1,2 and repeated match_id parameters.
func parseQueryIDList(r *http.Request, name string) ([]int64, error) {
	var out []int64
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			value, err := strconv.ParseInt(part, 10, 64)
			if err != nil || value <= 0 {
				return nil, fmt.Errorf("%w: %s must contain positive integers", usecase.ErrInvalidInput, name)
			}
			out = append(out, value)
		}
	}
	return out, nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	return value, nil
}

func scopeFromQuery(r *http.Request) (leaderboard.Scope, error) {
	tournamentID, err := parseOptionalQueryID(r, "tournament_id")
	if err != nil {
		return leaderboard.Scope{}, err
	}
	if tournamentID == nil {
		return leaderboard.Global(), nil
	}
	return leaderboard.ForTournament(*tournamentID), nil
}
