package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/dinor-predictions/internal/domain/leaderboard"
	"github.com/riskibarqy/dinor-predictions/internal/domain/tournament"
)

type TournamentRepository struct {
	db *Database
}

func NewTournamentRepository(db *Database) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.tournaments[tournamentID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}
	return cloneTournament(item), true, nil
}

func (r *TournamentRepository) List(_ context.Context, filter tournament.ListFilter) ([]tournament.Tournament, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.db.tournaments))
	for _, item := range r.db.tournaments {
		if filter.PublicOnly && !item.IsPublic {
			continue
		}
		if filter.FeaturedOnly && !item.IsFeatured {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, cloneTournament(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *TournamentRepository) Create(_ context.Context, item tournament.Tournament) (tournament.Tournament, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, taken := r.db.tournamentSlugs[item.Slug]; taken {
		return tournament.Tournament{}, fmt.Errorf("%w: %s", tournament.ErrSlugTaken, item.Slug)
	}

	r.db.nextTournamentID++
	now := r.db.timestamp()
	item = cloneTournament(item)
	item.ID = r.db.nextTournamentID
	item.ParticipantsCount = 0
	item.CreatedAt = now
	item.UpdatedAt = now
	r.db.tournaments[item.ID] = item
	r.db.tournamentSlugs[item.Slug] = item.ID

	return cloneTournament(item), nil
}

func (r *TournamentRepository) UpdateStatus(_ context.Context, tournamentID int64, status tournament.Status, overridden bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.tournaments[tournamentID]
	if !ok {
		return fmt.Errorf("tournament %d not found", tournamentID)
	}
	item.Status = status
	item.StatusOverridden = overridden
	item.UpdatedAt = r.db.timestamp()
	r.db.tournaments[tournamentID] = item

	return nil
}

func (r *TournamentRepository) GetParticipant(_ context.Context, tournamentID int64, userID string) (tournament.Participant, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.participants[participantKey{tournamentID: tournamentID, userID: userID}]
	if !ok {
		return tournament.Participant{}, false, nil
	}
	item.WithdrawnAt = cloneTime(item.WithdrawnAt)
	return item, true, nil
}

func (r *TournamentRepository) Register(_ context.Context, tournamentID int64, userID string, now time.Time) (tournament.Participant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.tournaments[tournamentID]
	if !ok {
		return tournament.Participant{}, fmt.Errorf("tournament %d not found", tournamentID)
	}

	key := participantKey{tournamentID: tournamentID, userID: userID}
	existing, hasRow := r.db.participants[key]
	alreadyActive := hasRow && existing.Status == tournament.ParticipantActive
	if err := tournament.CanRegister(item, tournament.DeriveStatus(item, now), item.ParticipantsCount, alreadyActive); err != nil {
		return tournament.Participant{}, err
	}

	participant := tournament.Participant{
		TournamentID: tournamentID,
		UserID:       userID,
		Status:       tournament.ParticipantActive,
		RegisteredAt: now.UTC(),
	}
	r.db.participants[key] = participant

	item.ParticipantsCount++
	item.UpdatedAt = r.db.timestamp()
	r.db.tournaments[tournamentID] = item

	return participant, nil
}

func (r *TournamentRepository) Withdraw(_ context.Context, tournamentID int64, userID string, now time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := participantKey{tournamentID: tournamentID, userID: userID}
	existing, ok := r.db.participants[key]
	if !ok || existing.Status != tournament.ParticipantActive {
		return fmt.Errorf("%w: tournament=%d", tournament.ErrNotRegistered, tournamentID)
	}

	withdrawnAt := now.UTC()
	existing.Status = tournament.ParticipantWithdrawn
	existing.WithdrawnAt = &withdrawnAt
	r.db.participants[key] = existing

	if item, ok := r.db.tournaments[tournamentID]; ok {
		if item.ParticipantsCount > 0 {
			item.ParticipantsCount--
		}
		item.UpdatedAt = r.db.timestamp()
		r.db.tournaments[tournamentID] = item
	}
	delete(r.db.leaderboard[leaderboard.ForTournament(tournamentID).Key()], userID)

	return nil
}

func (r *TournamentRepository) RecountParticipants(_ context.Context, tournamentID int64) (int, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	item, ok := r.db.tournaments[tournamentID]
	if !ok {
		return 0, 0, fmt.Errorf("tournament %d not found", tournamentID)
	}

	active := 0
	for key, participant := range r.db.participants {
		if key.tournamentID == tournamentID && participant.Status == tournament.ParticipantActive {
			active++
		}
	}

	before := item.ParticipantsCount
	item.ParticipantsCount = active
	r.db.tournaments[tournamentID] = item

	return before, active, nil
}
