package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const tournamentRefreshConcurrency = 8

type CreateTournamentInput struct {
	Name              string
	Slug              string
	Description       string
	StartDate         time.Time
	EndDate           time.Time
	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
	MaxParticipants   *int
	IsPublic          bool
	IsFeatured        bool
}

type ParticipantCountFix struct {
	TournamentID int64
	Before       int
	After        int
}

type StatusRefreshResult struct {
	Checked int
	Changed int
}

type TournamentService struct {
	tournamentRepo tournament.Repository
	leaderboard    *LeaderboardService
	logger         *logging.Logger
	now            func() time.Time
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	leaderboardService *LeaderboardService,
	logger *logging.Logger,
) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TournamentService{
		tournamentRepo: tournamentRepo,
		leaderboard:    leaderboardService,
		logger:         logger.Named("tournament"),
		now:            time.Now,
	}
}

func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Create")
	defer span.End()

	item := tournament.Tournament{
		Name:              strings.TrimSpace(input.Name),
		Slug:              strings.ToLower(strings.TrimSpace(input.Slug)),
		Description:       strings.TrimSpace(input.Description),
		StartDate:         input.StartDate.UTC(),
		EndDate:           input.EndDate.UTC(),
		RegistrationStart: utcPtr(input.RegistrationStart),
		RegistrationEnd:   utcPtr(input.RegistrationEnd),
		MaxParticipants:   input.MaxParticipants,
		IsPublic:          input.IsPublic,
		IsFeatured:        input.IsFeatured,
	}
	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	item.Status = tournament.DeriveStatus(item, s.now())

	created, err := s.tournamentRepo.Create(ctx, item)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("create tournament: %w", err)
	}

	return created, nil
}

// Get returns the tournament with its status re-derived and persisted when stale.
func (s *TournamentService) Get(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Get")
	defer span.End()

	item, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, err
	}

	return s.syncStatus(ctx, item)
}

func (s *TournamentService) List(ctx context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	// Status filtering happens after derivation so stale stored values do not leak.
	wantStatus := filter.Status
	filter.Status = ""

	items, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(items))
	for _, item := range items {
		synced, err := s.syncStatus(ctx, item)
		if err != nil {
			return nil, err
		}
		if wantStatus != "" && synced.Status != wantStatus {
			continue
		}
		out = append(out, synced)
	}

	return out, nil
}

func (s *TournamentService) Register(ctx context.Context, tournamentID int64, userID string) (tournament.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Register")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return tournament.Participant{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	if _, err := s.Get(ctx, tournamentID); err != nil {
		return tournament.Participant{}, err
	}

	// The repository applies the registration gate under the tournament row lock.
	participant, err := s.tournamentRepo.Register(ctx, tournamentID, userID, s.now().UTC())
	if err != nil {
		if isRegistrationRejection(err) {
			return tournament.Participant{}, err
		}
		return tournament.Participant{}, fmt.Errorf("register participant: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament participant registered", "tournament_id", tournamentID, "user_id", userID)
	return participant, nil
}

// Unregister withdraws the user and drops their tournament leaderboard row,
// then re-ranks the remaining participants.
func (s *TournamentService) Unregister(ctx context.Context, tournamentID int64, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Unregister")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, err := s.Get(ctx, tournamentID)
	if err != nil {
		return err
	}
	if err := tournament.CanUnregister(item.Status); err != nil {
		return err
	}

	if err := s.tournamentRepo.Withdraw(ctx, tournamentID, userID, s.now().UTC()); err != nil {
		if errors.Is(err, tournament.ErrNotRegistered) {
			return err
		}
		return fmt.Errorf("withdraw participant: %w", err)
	}

	if _, err := s.leaderboard.Recompute(ctx, leaderboard.ForTournament(tournamentID)); err != nil {
		return fmt.Errorf("recompute tournament leaderboard: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament participant withdrawn", "tournament_id", tournamentID, "user_id", userID)
	return nil
}

// ForceStatus pins an admin chosen status. An empty status clears the
// override and returns the tournament to time-based derivation.
func (s *TournamentService) ForceStatus(ctx context.Context, tournamentID int64, status tournament.Status) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ForceStatus")
	defer span.End()

	item, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, err
	}

	if status == "" {
		if item.Status == tournament.StatusCancelled {
			return tournament.Tournament{}, fmt.Errorf("%w: cancelled tournaments cannot be reopened", tournament.ErrInvalidTransition)
		}
		item.StatusOverridden = false
		item.Status = tournament.DeriveStatus(item, s.now())
	} else {
		if err := tournament.ValidateOverride(item.Status, status); err != nil {
			return tournament.Tournament{}, err
		}
		item.Status = status
		item.StatusOverridden = true
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, tournamentID, item.Status, item.StatusOverridden); err != nil {
		return tournament.Tournament{}, fmt.Errorf("update tournament status: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament status forced",
		"tournament_id", tournamentID,
		"status", item.Status,
		"overridden", item.StatusOverridden,
	)
	return item, nil
}

// RefreshStatuses derives and persists the status of every tournament.
func (s *TournamentService) RefreshStatuses(ctx context.Context) (StatusRefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.RefreshStatuses")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx, tournament.ListFilter{})
	if err != nil {
		return StatusRefreshResult{}, fmt.Errorf("list tournaments: %w", err)
	}

	changed := make([]bool, len(items))
	p := pool.New().WithMaxGoroutines(tournamentRefreshConcurrency).WithContext(ctx)
	for i, item := range items {
		p.Go(func(ctx context.Context) error {
			synced, err := s.syncStatus(ctx, item)
			if err != nil {
				return err
			}
			changed[i] = synced.Status != item.Status
			return nil
		})
	}
	err = p.Wait()

	result := StatusRefreshResult{Checked: len(items)}
	for _, ok := range changed {
		if ok {
			result.Changed++
		}
	}
	if err != nil {
		return result, fmt.Errorf("refresh tournament statuses: %w", err)
	}

	return result, nil
}

// ReconcileParticipantCounts rebuilds the cached participant counters from
// active participant rows and reports the tournaments that drifted.
func (s *TournamentService) ReconcileParticipantCounts(ctx context.Context) ([]ParticipantCountFix, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.ReconcileParticipantCounts")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx, tournament.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	var (
		fixes    []ParticipantCountFix
		combined error
	)
	for _, item := range items {
		before, after, err := s.tournamentRepo.RecountParticipants(ctx, item.ID)
		if err != nil {
			combined = crerr.CombineErrors(combined, fmt.Errorf("recount participants tournament=%d: %w", item.ID, err))
			continue
		}
		if before != after {
			fixes = append(fixes, ParticipantCountFix{TournamentID: item.ID, Before: before, After: after})
			s.logger.WarnContext(ctx, "tournament participant count drifted",
				"tournament_id", item.ID,
				"before", before,
				"after", after,
			)
		}
	}

	return fixes, combined
}

func (s *TournamentService) syncStatus(ctx context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	derived := tournament.DeriveStatus(item, s.now())
	if derived == item.Status {
		return item, nil
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, item.ID, derived, item.StatusOverridden); err != nil {
		return tournament.Tournament{}, fmt.Errorf("persist derived tournament status: %w", err)
	}
	item.Status = derived
	return item, nil
}

func (s *TournamentService) getTournament(ctx context.Context, tournamentID int64) (tournament.Tournament, error) {
	if tournamentID <= 0 {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	item, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament by id: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%d", ErrTournamentNotFound, tournamentID)
	}

	return item, nil
}

func isRegistrationRejection(err error) bool {
	return errors.Is(err, tournament.ErrRegistrationClosed) ||
		errors.Is(err, tournament.ErrTournamentFull) ||
		errors.Is(err, tournament.ErrAlreadyRegistered)
}

func utcPtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := v.UTC()
	return &out
}
