package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/dinor-predictions/internal/domain/content"
	"github.com/riskibarqy/dinor-predictions/internal/domain/match"
	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
)

// ContentService exposes read-only display metadata for prediction content.
type ContentService struct {
	resolvers map[content.Kind]content.Resolver
}

func NewContentService(teamRepo team.Repository, tournamentRepo tournament.Repository, matchRepo match.Repository) *ContentService {
	teams := teamResolver{repo: teamRepo}
	return &ContentService{
		resolvers: map[content.Kind]content.Resolver{
			content.KindTeam:       teams,
			content.KindTournament: tournamentResolver{repo: tournamentRepo},
			content.KindMatch:      matchResolver{repo: matchRepo, teams: teams},
		},
	}
}

func (s *ContentService) Lookup(ctx context.Context, kind content.Kind, id int64) (content.Ref, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Lookup")
	defer span.End()

	resolver, ok := s.resolvers[kind]
	if !ok {
		return content.Ref{}, fmt.Errorf("%w: unknown content kind %q", ErrInvalidInput, kind)
	}
	if id <= 0 {
		return content.Ref{}, fmt.Errorf("%w: content id is required", ErrInvalidInput)
	}

	ref, exists, err := resolver.Resolve(ctx, id)
	if err != nil {
		return content.Ref{}, fmt.Errorf("resolve %s content: %w", kind, err)
	}
	if !exists {
		return content.Ref{}, fmt.Errorf("%w: %s=%d", ErrNotFound, kind, id)
	}

	return ref, nil
}

type teamResolver struct {
	repo team.Repository
}

func (r teamResolver) Resolve(ctx context.Context, id int64) (content.Ref, bool, error) {
	item, exists, err := r.repo.GetByID(ctx, id)
	if err != nil || !exists {
		return content.Ref{}, exists, err
	}
	return content.Ref{Kind: content.KindTeam, ID: item.ID, Title: item.Name, Subtitle: item.Country}, true, nil
}

type tournamentResolver struct {
	repo tournament.Repository
}

func (r tournamentResolver) Resolve(ctx context.Context, id int64) (content.Ref, bool, error) {
	item, exists, err := r.repo.GetByID(ctx, id)
	if err != nil || !exists {
		return content.Ref{}, exists, err
	}
	return content.Ref{Kind: content.KindTournament, ID: item.ID, Title: item.Name, Subtitle: item.Slug}, true, nil
}

type matchResolver struct {
	repo  match.Repository
	teams teamResolver
}

func (r matchResolver) Resolve(ctx context.Context, id int64) (content.Ref, bool, error) {
	item, exists, err := r.repo.GetByID(ctx, id)
	if err != nil || !exists {
		return content.Ref{}, exists, err
	}

	home, _, err := r.teams.Resolve(ctx, item.HomeTeamID)
	if err != nil {
		return content.Ref{}, false, err
	}
	away, _, err := r.teams.Resolve(ctx, item.AwayTeamID)
	if err != nil {
		return content.Ref{}, false, err
	}

	return content.Ref{
		Kind:     content.KindMatch,
		ID:       item.ID,
		Title:    fmt.Sprintf("%s vs %s", displayName(home, item.HomeTeamID), displayName(away, item.AwayTeamID)),
		Subtitle: item.MatchDate.UTC().Format("2006-01-02 15:04 MST"),
	}, true, nil
}

func displayName(ref content.Ref, teamID int64) string {
	if ref.Title != "" {
		return ref.Title
	}
	return fmt.Sprintf("team #%d", teamID)
}
