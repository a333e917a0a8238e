package league

import (
	"context"

	"github.com/mmynk/homegame/internal/calculator"
	"github.com/mmynk/homegame/internal/identity"
	"github.com/mmynk/homegame/internal/models"
)

// Leaderboard is a group's ranked standings.
type Leaderboard struct {
	GroupID string
	SortKey calculator.SortKey
	Players []calculator.PlayerStats

	// GamesCounted is the number of games aggregated.
	GamesCounted int
}

// GroupLeaderboard aggregates every game of the group whatever its status.
// Members only.
// Players are named by their current membership name when they have one.
func (m *Manager) GroupLeaderboard(ctx context.Context, groupID, viewerID, sortKey string) (*Leaderboard, error) {
	key, err := calculator.ParseSortKey(sortKey)
	if err != nil {
		return nil, invalid("sort_by", err.Error())
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, games, err := m.groupGames(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}

	stats := calculator.CalculateLeaderboard(games, group.MemberNames())
	calculator.SortLeaderboard(stats, key)
	return &Leaderboard{
		GroupID:      group.ID,
		SortKey:      key,
		Players:      stats,
		GamesCounted: len(games),
	}, nil
}

// GroupRunningTotals returns each player's cumulative profit across the
// group's games, oldest first. Members only.
func (m *Manager) GroupRunningTotals(ctx context.Context, groupID, viewerID string) ([]calculator.PlayerSeries, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, games, err := m.groupGames(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}
	return calculator.RunningTotals(games, group.MemberNames()), nil
}

func (m *Manager) groupGames(ctx context.Context, groupID, viewerID string) (*models.Group, []*models.Game, error) {
	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireMember(group, viewerID, "view stats"); err != nil {
		return nil, nil, err
	}
	games, err := m.store.ListGamesByGroup(ctx, group.ID)
	if err != nil {
		return nil, nil, fromStorage(err, "list games")
	}
	return group, games, nil
}

// PlayerStats aggregates userID's games across every group.
// A user with no games gets a zero row.
func (m *Manager) PlayerStats(ctx context.Context, userID string) (calculator.PlayerStats, error) {
	if userID == "" {
		return calculator.PlayerStats{}, invalid("user_id", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	games, err := m.store.ListGamesForUser(ctx, userID)
	if err != nil {
		return calculator.PlayerStats{}, fromStorage(err, "list games")
	}

	name := identity.DisplayName(ctx, m.resolver, userID)
	row := calculator.PlayerStats{Key: userID, UserID: userID, Name: name}
	for _, s := range calculator.CalculateLeaderboard(games, map[string]string{userID: name}) {
		if s.Key == userID {
			row = s
			break
		}
	}
	return row, nil
}
