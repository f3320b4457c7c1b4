package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
)

const SeedTournamentSlug = "liga-1-prediction-cup"

func SeedTeams() []team.Team {
	return []team.Team{
		{Name: "Persija Jakarta", ShortName: "PSJ", Country: "Indonesia", PrimaryColor: "#E4002B", SecondaryColor: "#FFFFFF"},
		{Name: "Persib Bandung", ShortName: "PSB", Country: "Indonesia", PrimaryColor: "#0033A0", SecondaryColor: "#FFFFFF"},
		{Name: "Persebaya Surabaya", ShortName: "PRB", Country: "Indonesia", PrimaryColor: "#007A33", SecondaryColor: "#FFFFFF"},
		{Name: "Bali United", ShortName: "BU", Country: "Indonesia", PrimaryColor: "#D50032", SecondaryColor: "#000000"},
	}
}

// Seed loads demo teams, one open tournament and a few scheduled matches
// relative to now. It is meant for the memory storage driver in local runs.
func Seed(ctx context.Context, db *Database, now time.Time) error {
	teams := NewTeamRepository(db)
	matches := NewMatchRepository(db)
	tournaments := NewTournamentRepository(db)

	teamIDs := make([]int64, 0, 4)
	for _, item := range SeedTeams() {
		created, err := teams.Create(ctx, item)
		if err != nil {
			return fmt.Errorf("seed team %s: %w", item.Name, err)
		}
		teamIDs = append(teamIDs, created.ID)
	}

	day := 24 * time.Hour
	registrationStart := now.Add(-day)
	registrationEnd := now.Add(3 * day)
	cup := tournament.Tournament{
		Name:              "Liga 1 Prediction Cup",
		Slug:              SeedTournamentSlug,
		Description:       "Predict every big match of the week.",
		StartDate:         now.Add(4 * day),
		EndDate:           now.Add(30 * day),
		RegistrationStart: &registrationStart,
		RegistrationEnd:   &registrationEnd,
		IsPublic:          true,
		IsFeatured:        true,
	}
	cup.Status = tournament.DeriveStatus(cup, now)
	createdCup, err := tournaments.Create(ctx, cup)
	if err != nil {
		return fmt.Errorf("seed tournament: %w", err)
	}

	fixtures := []match.Match{
		{HomeTeamID: teamIDs[0], AwayTeamID: teamIDs[1], MatchDate: now.Add(2 * day)},
		{HomeTeamID: teamIDs[2], AwayTeamID: teamIDs[3], MatchDate: now.Add(2*day + 3*time.Hour)},
		{HomeTeamID: teamIDs[1], AwayTeamID: teamIDs[2], MatchDate: now.Add(5 * day), TournamentID: &createdCup.ID},
		{HomeTeamID: teamIDs[3], AwayTeamID: teamIDs[0], MatchDate: now.Add(6 * day), TournamentID: &createdCup.ID},
	}
	for _, item := range fixtures {
		item.Status = match.StatusScheduled
		item.IsActive = true
		item.PredictionsEnabled = true
		item.ScoringStatus = match.ScoringNone
		if _, err := matches.Create(ctx, item); err != nil {
			return fmt.Errorf("seed match: %w", err)
		}
	}

	return nil
}
