package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/dinor-predictions/internal/domain/team"
)

type TeamRepository struct {
	db *Database
}

func NewTeamRepository(db *Database) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]team.Team, 0, len(r.db.teams))
	for _, item := range r.db.teams {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	item, ok := r.db.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextTeamID++
	now := r.db.timestamp()
	item.ID = r.db.nextTeamID
	item.CreatedAt = now
	item.UpdatedAt = now
	r.db.teams[item.ID] = item

	return item, nil
}
