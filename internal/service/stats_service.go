package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/homegame/internal/api"
	"github.com/mmynk/homegame/internal/calculator"
	"github.com/mmynk/homegame/internal/league"
)

// StatsService implements the Connect StatsService.
type StatsService struct {
	league *league.Manager
}

var _ api.StatsServiceHandler = (*StatsService)(nil)

// NewStatsService creates a StatsService.
func NewStatsService(m *league.Manager) *StatsService {
	return &StatsService{league: m}
}

// GetLeaderboard ranks a group's players, with members and guests listed
// separately.
func (s *StatsService) GetLeaderboard(ctx context.Context, req *connect.Request[api.LeaderboardRequest]) (*connect.Response[api.LeaderboardResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetLeaderboard request received", "group_id", req.Msg.GroupID, "sort_by", req.Msg.SortBy)

	board, err := s.league.GroupLeaderboard(ctx, req.Msg.GroupID, userID, req.Msg.SortBy)
	if err != nil {
		return nil, connectError("GetLeaderboard", err)
	}

	members, guests := calculator.SplitGuests(board.Players)
	slog.Info("GetLeaderboard successful",
		"group_id", board.GroupID,
		"games_counted", board.GamesCounted,
		"players", len(board.Players),
	)
	return connect.NewResponse(&api.LeaderboardResponse{
		Members:      toStatsList(members),
		Guests:       toStatsList(guests),
		GamesCounted: board.GamesCounted,
	}), nil
}

// GetPlayerStats aggregates a user's games across all groups.
func (s *StatsService) GetPlayerStats(ctx context.Context, req *connect.Request[api.PlayerStatsRequest]) (*connect.Response[api.PlayerStatsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	target := req.Msg.UserID
	if target == "" {
		target = userID
	}

	stats, err := s.league.PlayerStats(ctx, target)
	if err != nil {
		return nil, connectError("GetPlayerStats", err)
	}
	return connect.NewResponse(&api.PlayerStatsResponse{Stats: toStats(stats)}), nil
}

// GetRunningTotals returns cumulative profit series for a group.
func (s *StatsService) GetRunningTotals(ctx context.Context, req *connect.Request[api.GroupRequest]) (*connect.Response[api.RunningTotalsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	series, err := s.league.GroupRunningTotals(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, connectError("GetRunningTotals", err)
	}

	out := make([]api.Series, len(series))
	for i, ps := range series {
		out[i] = toSeries(ps)
	}
	return connect.NewResponse(&api.RunningTotalsResponse{Series: out}), nil
}
