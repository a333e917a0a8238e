package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	StatsServiceName = Package + ".StatsService"

	StatsServiceGetLeaderboardProcedure   = "/" + StatsServiceName + "/GetLeaderboard"
	StatsServiceGetPlayerStatsProcedure   = "/" + StatsServiceName + "/GetPlayerStats"
	StatsServiceGetRunningTotalsProcedure = "/" + StatsServiceName + "/GetRunningTotals"
)

// StatsServiceHandler is implemented by the leaderboard service.
type StatsServiceHandler interface {
	GetLeaderboard(context.Context, *connect.Request[LeaderboardRequest]) (*connect.Response[LeaderboardResponse], error)
	GetPlayerStats(context.Context, *connect.Request[PlayerStatsRequest]) (*connect.Response[PlayerStatsResponse], error)
	GetRunningTotals(context.Context, *connect.Request[GroupRequest]) (*connect.Response[RunningTotalsResponse], error)
}

// NewStatsServiceHandler returns the path prefix and handler for svc.
func NewStatsServiceHandler(svc StatsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRouter(opts)
	handle(r, StatsServiceGetLeaderboardProcedure, svc.GetLeaderboard)
	handle(r, StatsServiceGetPlayerStatsProcedure, svc.GetPlayerStats)
	handle(r, StatsServiceGetRunningTotalsProcedure, svc.GetRunningTotals)
	return "/" + StatsServiceName + "/", r.mux
}

// StatsServiceClient calls a remote StatsService.
type StatsServiceClient struct{ c caller }

// NewStatsServiceClient creates a client for the server at baseURL.
func NewStatsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *StatsServiceClient {
	return &StatsServiceClient{c: newCaller(httpClient, baseURL, opts)}
}

func (s *StatsServiceClient) GetLeaderboard(ctx context.Context, req *connect.Request[LeaderboardRequest]) (*connect.Response[LeaderboardResponse], error) {
	return call[LeaderboardRequest, LeaderboardResponse](ctx, s.c, StatsServiceGetLeaderboardProcedure, req)
}

func (s *StatsServiceClient) GetPlayerStats(ctx context.Context, req *connect.Request[PlayerStatsRequest]) (*connect.Response[PlayerStatsResponse], error) {
	return call[PlayerStatsRequest, PlayerStatsResponse](ctx, s.c, StatsServiceGetPlayerStatsProcedure, req)
}

func (s *StatsServiceClient) GetRunningTotals(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[RunningTotalsResponse], error) {
	return call[GroupRequest, RunningTotalsResponse](ctx, s.c, StatsServiceGetRunningTotalsProcedure, req)
}
