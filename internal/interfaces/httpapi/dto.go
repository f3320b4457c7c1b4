package httpapi

import (
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/content"
	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/prediction"
	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
	"github.com/riskibarqy/dinor-predictions/internal/domain/wallet"
	"github.com/riskibarqy/dinor-predictions/internal/usecase"
)

type submitPredictionRequest struct {
	FootballMatchID    int64  `json:"football_match_id" validate:"required,gt=0"`
	PredictedHomeScore *int   `json:"predicted_home_score" validate:"required,min=0,max=20"`
	PredictedAwayScore *int   `json:"predicted_away_score" validate:"required,min=0,max=20"`
	BetAmount          *int64 `json:"bet_amount,omitempty" validate:"omitempty,gt=0"`
	// Accepted for older clients and never read; the winner is derived from the scores.
	PredictedWinner string `json:"predicted_winner,omitempty"`
}

type createTeamRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	ShortName      string `json:"short_name" validate:"max=10"`
	Country        string `json:"country" validate:"max=100"`
	LogoURL        string `json:"logo_url" validate:"omitempty,url"`
	PrimaryColor   string `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondary_color" validate:"omitempty,hexcolor"`
}

type createMatchRequest struct {
	HomeTeamID         int64      `json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID         int64      `json:"away_team_id" validate:"required,gt=0,nefield=HomeTeamID"`
	TournamentID       *int64     `json:"tournament_id,omitempty" validate:"omitempty,gt=0"`
	MatchDate          time.Time  `json:"match_date" validate:"required"`
	PredictionsCloseAt *time.Time `json:"predictions_close_at,omitempty"`
	PredictionsEnabled *bool      `json:"predictions_enabled,omitempty"`
	IsActive           *bool      `json:"is_active,omitempty"`
}

type matchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled live finished cancelled"`
}

type matchResultRequest struct {
	HomeScore *int `json:"home_score" validate:"required,min=0,max=99"`
	AwayScore *int `json:"away_score" validate:"required,min=0,max=99"`
}

type createTournamentRequest struct {
	Name              string     `json:"name" validate:"required,max=150"`
	Slug              string     `json:"slug" validate:"required,max=100"`
	Description       string     `json:"description" validate:"max=2000"`
	StartDate         time.Time  `json:"start_date" validate:"required"`
	EndDate           time.Time  `json:"end_date" validate:"required"`
	RegistrationStart *time.Time `json:"registration_start,omitempty"`
	RegistrationEnd   *time.Time `json:"registration_end,omitempty"`
	MaxParticipants   *int       `json:"max_participants,omitempty" validate:"omitempty,gt=0"`
	IsPublic          *bool      `json:"is_public,omitempty"`
	IsFeatured        bool       `json:"is_featured"`
}

type tournamentStatusRequest struct {
	// auto clears an override.
	Status string `json:"status" validate:"required,oneof=auto upcoming registration_open registration_closed active finished cancelled"`
}

type teamDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ShortName      string `json:"short_name,omitempty"`
	Country        string `json:"country,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

type matchDTO struct {
	ID                 int64      `json:"id"`
	HomeTeamID         int64      `json:"home_team_id"`
	AwayTeamID         int64      `json:"away_team_id"`
	TournamentID       *int64     `json:"tournament_id"`
	MatchDate          time.Time  `json:"match_date"`
	PredictionsCloseAt *time.Time `json:"predictions_close_at"`
	Status             string     `json:"status"`
	HomeScore          *int       `json:"home_score"`
	AwayScore          *int       `json:"away_score"`
	IsActive           bool       `json:"is_active"`
	PredictionsEnabled bool       `json:"predictions_enabled"`
	CanPredict         bool       `json:"can_predict"`
	ScoringStatus      string     `json:"scoring_status"`
	ScoredAt           *time.Time `json:"scored_at,omitempty"`
}

type auditEntryDTO struct {
	ID         int64     `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	HomeScore  *int      `json:"home_score,omitempty"`
	AwayScore  *int      `json:"away_score,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type predictionDTO struct {
	ID                 int64     `json:"id"`
	FootballMatchID    int64     `json:"football_match_id"`
	PredictedHomeScore int       `json:"predicted_home_score"`
	PredictedAwayScore int       `json:"predicted_away_score"`
	PredictedWinner    string    `json:"predicted_winner"`
	PointsEarned       int       `json:"points_earned"`
	IsCalculated       bool      `json:"is_calculated"`
	ScoreKind          string    `json:"score_kind,omitempty"`
	BetAmount          *int64    `json:"bet_amount,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type scoringSummaryDTO struct {
	MatchID       int64 `json:"football_match_id"`
	HomeScore     int   `json:"home_score"`
	AwayScore     int   `json:"away_score"`
	Predictions   int   `json:"predictions"`
	ExactScores   int   `json:"exact_scores"`
	CorrectWinner int   `json:"correct_winners"`
	Misses        int   `json:"misses"`
	TotalPoints   int   `json:"total_points"`
	TotalPayout   int64 `json:"total_payout"`
}

type recordResultDTO struct {
	Match   matchDTO          `json:"match"`
	Scoring scoringSummaryDTO `json:"scoring"`
}

type retryScoringDTO struct {
	Attempted int                 `json:"attempted"`
	Scored    []scoringSummaryDTO `json:"scored"`
	Failed    []int64             `json:"failed"`
}

type leaderboardEntryDTO struct {
	Rank               int       `json:"rank"`
	PreviousRank       *int      `json:"previous_rank"`
	Movement           string    `json:"movement"`
	UserID             string    `json:"user_id"`
	TotalPoints        int       `json:"total_points"`
	TotalPredictions   int       `json:"total_predictions"`
	CorrectScores      int       `json:"correct_scores"`
	CorrectWinners     int       `json:"correct_winners"`
	AccuracyPercentage float64   `json:"accuracy_percentage"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type leaderboardPositionDTO struct {
	Scope  string              `json:"scope"`
	Ranked bool                `json:"ranked"`
	Entry  leaderboardEntryDTO `json:"entry"`
}

type recomputeResultDTO struct {
	Scope   string `json:"scope"`
	Entries int    `json:"entries"`
}

type tournamentDTO struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Slug              string     `json:"slug"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	StatusOverridden  bool       `json:"status_overridden"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
	RegistrationStart *time.Time `json:"registration_start"`
	RegistrationEnd   *time.Time `json:"registration_end"`
	MaxParticipants   *int       `json:"max_participants"`
	ParticipantsCount int        `json:"participants_count"`
	IsPublic          bool       `json:"is_public"`
	IsFeatured        bool       `json:"is_featured"`
}

type participantDTO struct {
	TournamentID int64      `json:"tournament_id"`
	UserID       string     `json:"user_id"`
	Status       string     `json:"status"`
	RegisteredAt time.Time  `json:"registered_at"`
	WithdrawnAt  *time.Time `json:"withdrawn_at,omitempty"`
}

type walletDTO struct {
	UserID   string `json:"user_id"`
	Starting int64  `json:"starting"`
	Staked   int64  `json:"staked"`
	Won      int64  `json:"won"`
	Current  int64  `json:"current"`
}

type contentRefDTO struct {
	Kind     string `json:"kind"`
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:             v.ID,
		Name:           v.Name,
		ShortName:      v.ShortName,
		Country:        v.Country,
		LogoURL:        v.LogoURL,
		PrimaryColor:   v.PrimaryColor,
		SecondaryColor: v.SecondaryColor,
	}
}

func matchToDTO(v match.Match, canPredict bool) matchDTO {
	return matchDTO{
		ID:                 v.ID,
		HomeTeamID:         v.HomeTeamID,
		AwayTeamID:         v.AwayTeamID,
		TournamentID:       v.TournamentID,
		MatchDate:          v.MatchDate.UTC(),
		PredictionsCloseAt: utcPtr(v.PredictionsCloseAt),
		Status:             string(v.Status),
		HomeScore:          v.HomeScore,
		AwayScore:          v.AwayScore,
		IsActive:           v.IsActive,
		PredictionsEnabled: v.PredictionsEnabled,
		CanPredict:         canPredict,
		ScoringStatus:      string(v.ScoringStatus),
		ScoredAt:           utcPtr(v.ScoredAt),
	}
}

func matchViewToDTO(v usecase.MatchView) matchDTO {
	return matchToDTO(v.Match, v.CanPredict)
}

func auditEntryToDTO(v match.AuditEntry) auditEntryDTO {
	return auditEntryDTO{
		ID:         v.ID,
		ActorID:    v.ActorID,
		Action:     string(v.Action),
		FromStatus: string(v.FromStatus),
		ToStatus:   string(v.ToStatus),
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		CreatedAt:  v.CreatedAt.UTC(),
	}
}

func predictionToDTO(v prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:                 v.ID,
		FootballMatchID:    v.MatchID,
		PredictedHomeScore: v.PredictedHomeScore,
		PredictedAwayScore: v.PredictedAwayScore,
		PredictedWinner:    string(v.PredictedWinner),
		PointsEarned:       v.PointsEarned,
		IsCalculated:       v.IsCalculated,
		ScoreKind:          string(v.ScoreKind),
		BetAmount:          v.BetAmount,
		CreatedAt:          v.CreatedAt.UTC(),
		UpdatedAt:          v.UpdatedAt.UTC(),
	}
}

func scoringSummaryToDTO(v usecase.ScoringSummary) scoringSummaryDTO {
	return scoringSummaryDTO{
		MatchID:       v.MatchID,
		HomeScore:     v.HomeScore,
		AwayScore:     v.AwayScore,
		Predictions:   v.Predictions,
		ExactScores:   v.ExactScores,
		CorrectWinner: v.CorrectWinner,
		Misses:        v.Misses,
		TotalPoints:   v.TotalPoints,
		TotalPayout:   v.TotalPayout,
	}
}

func leaderboardEntryToDTO(v leaderboard.Entry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:               v.Rank,
		PreviousRank:       v.PreviousRank,
		Movement:           string(leaderboard.ResolveMovement(v.Rank, v.PreviousRank)),
		UserID:             v.UserID,
		TotalPoints:        v.TotalPoints,
		TotalPredictions:   v.TotalPredictions,
		CorrectScores:      v.CorrectScores,
		CorrectWinners:     v.CorrectWinners,
		AccuracyPercentage: v.AccuracyPercentage,
		UpdatedAt:          v.UpdatedAt.UTC(),
	}
}

func leaderboardPositionToDTO(v leaderboard.Position) leaderboardPositionDTO {
	entry := leaderboardEntryToDTO(v.Entry)
	entry.Movement = string(v.Movement)
	return leaderboardPositionDTO{
		Scope:  v.Entry.Scope.Key(),
		Ranked: v.Ranked,
		Entry:  entry,
	}
}

func tournamentToDTO(v tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:                v.ID,
		Name:              v.Name,
		Slug:              v.Slug,
		Description:       v.Description,
		Status:            string(v.Status),
		StatusOverridden:  v.StatusOverridden,
		StartDate:         v.StartDate.UTC(),
		EndDate:           v.EndDate.UTC(),
		RegistrationStart: utcPtr(v.RegistrationStart),
		RegistrationEnd:   utcPtr(v.RegistrationEnd),
		MaxParticipants:   v.MaxParticipants,
		ParticipantsCount: v.ParticipantsCount,
		IsPublic:          v.IsPublic,
		IsFeatured:        v.IsFeatured,
	}
}

func participantToDTO(v tournament.Participant) participantDTO {
	return participantDTO{
		TournamentID: v.TournamentID,
		UserID:       v.UserID,
		Status:       string(v.Status),
		RegisteredAt: v.RegisteredAt.UTC(),
		WithdrawnAt:  utcPtr(v.WithdrawnAt),
	}
}

func walletToDTO(v wallet.Balance) walletDTO {
	return walletDTO{
		UserID:   v.UserID,
		Starting: v.Starting,
		Staked:   v.Staked,
		Won:      v.Won,
		Current:  v.Current,
	}
}

func contentRefToDTO(v content.Ref) contentRefDTO {
	return contentRefDTO{
		Kind:     string(v.Kind),
		ID:       v.ID,
		Title:    v.Title,
		Subtitle: v.Subtitle,
	}
}

func utcPtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := v.UTC()
	return &out
}
