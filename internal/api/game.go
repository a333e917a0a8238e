package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	GameServiceName = Package + ".GameService"

	GameServiceCreateGameProcedure         = "/" + GameServiceName + "/CreateGame"
	GameServiceGetGameProcedure            = "/" + GameServiceName + "/GetGame"
	GameServiceListGamesProcedure          = "/" + GameServiceName + "/ListGames"
	GameServiceDeleteGameProcedure         = "/" + GameServiceName + "/DeleteGame"
	GameServiceStartGameProcedure          = "/" + GameServiceName + "/StartGame"
	GameServicePauseGameProcedure          = "/" + GameServiceName + "/PauseGame"
	GameServiceCloseGameProcedure          = "/" + GameServiceName + "/CloseGame"
	GameServiceReopenGameProcedure         = "/" + GameServiceName + "/ReopenGame"
	GameServiceUpdateSessionProcedure      = "/" + GameServiceName + "/UpdateSession"
	GameServiceRemoveSessionProcedure      = "/" + GameServiceName + "/RemoveSession"
	GameServiceRemoveGuestSessionProcedure = "/" + GameServiceName + "/RemoveGuestSession"
	GameServiceJoinGameProcedure           = "/" + GameServiceName + "/JoinGame"
	GameServiceLeaveGameProcedure          = "/" + GameServiceName + "/LeaveGame"
)

// GameServiceHandler is implemented by the game lifecycle service.
type GameServiceHandler interface {
	CreateGame(context.Context, *connect.Request[CreateGameRequest]) (*connect.Response[GameResponse], error)
	GetGame(context.Context, *connect.Request[GameRequest]) (*connect.Response[GameResponse], error)
	ListGames(context.Context, *connect.Request[GroupRequest]) (*connect.Response[ListGamesResponse], error)
	DeleteGame(context.Context, *connect.Request[GameRequest]) (*connect.Response[Empty], error)
	StartGame(context.Context, *connect.Request[GameRequest]) (*connect.Response[GameResponse], error)
	PauseGame(context.Context, *connect.Request[GameRequest]) (*connect.Response[GameResponse], error)
	CloseGame(context.Context, *connect.Request[GameRequest]) (*connect.Response[GameResponse], error)
	ReopenGame(context.Context, *connect.Request[GameRequest]) (*connect.Response[GameResponse], error)
	UpdateSession(context.Context, *connect.Request[UpdateSessionRequest]) (*connect.Response[SessionResponse], error)
	RemoveSession(context.Context, *connect.Request[RemoveSessionRequest]) (*connect.Response[Empty], error)
	RemoveGuestSession(context.Context, *connect.Request[RemoveGuestSessionRequest]) (*connect.Response[Empty], error)
	JoinGame(context.Context, *connect.Request[GameRequest]) (*connect.Response[SessionResponse], error)
	LeaveGame(context.Context, *connect.Request[GameRequest]) (*connect.Response[Empty], error)
}

// NewGameServiceHandler returns the path prefix and handler for svc.
func NewGameServiceHandler(svc GameServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRouter(opts)
	handle(r, GameServiceCreateGameProcedure, svc.CreateGame)
	handle(r, GameServiceGetGameProcedure, svc.GetGame)
	handle(r, GameServiceListGamesProcedure, svc.ListGames)
	handle(r, GameServiceDeleteGameProcedure, svc.DeleteGame)
	handle(r, GameServiceStartGameProcedure, svc.StartGame)
	handle(r, GameServicePauseGameProcedure, svc.PauseGame)
	handle(r, GameServiceCloseGameProcedure, svc.CloseGame)
	handle(r, GameServiceReopenGameProcedure, svc.ReopenGame)
	handle(r, GameServiceUpdateSessionProcedure, svc.UpdateSession)
	handle(r, GameServiceRemoveSessionProcedure, svc.RemoveSession)
	handle(r, GameServiceRemoveGuestSessionProcedure, svc.RemoveGuestSession)
	handle(r, GameServiceJoinGameProcedure, svc.JoinGame)
	handle(r, GameServiceLeaveGameProcedure, svc.LeaveGame)
	return "/" + GameServiceName + "/", r.mux
}

// GameServiceClient calls a remote GameService.
type GameServiceClient struct{ c caller }

// NewGameServiceClient creates a client for the server at baseURL.
func NewGameServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GameServiceClient {
	return &GameServiceClient{c: newCaller(httpClient, baseURL, opts)}
}

func (g *GameServiceClient) CreateGame(ctx context.Context, req *connect.Request[CreateGameRequest]) (*connect.Response[GameResponse], error) {
	return call[CreateGameRequest, GameResponse](ctx, g.c, GameServiceCreateGameProcedure, req)
}

func (g *GameServiceClient) GetGame(ctx context.Context, req *connect.Request[GameRequest]) (*connect.Response[GameResponse], error) {
	return call[GameRequest, GameResponse](ctx, g.c, GameServiceGetGameProcedure, req)
}

func (g *GameServiceClient) ListGames(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[ListGamesResponse], error) {
	return call[GroupRequest, ListGamesResponse](ctx, g.c, GameServiceListGamesProcedure, req)
}

func (g *GameServiceClient) DeleteGame(ctx context.Context, req *connect.Request[GameRequest]) (*connect.Response[Empty], error) {
	return call[GameRequest, Empty](ctx, g.c, GameServiceDeleteGameProcedure, req)
}

func (g *GameServiceClient) StartGame(ctx context.Context, req *connect.Request[GameRequest]) (*connect.Response[GameResponse], error) {
	return call[GameRequest, GameResponse](ctx, g.c, GameServiceStartGameProcedure, req)
}

func (g *GameServiceClient) PauseGame(ctx context.Context, req *connect.Request[GameRequest]) (*connect.Response[GameResponse], error) {
	return call[GameRequest, GameResponse](ctx, g.c, GameServicePauseGameProcedure, req)
}

func (g *GameServiceClient) CloseGame(ctx context.Context, req *connect.Request[GameRequest]) (*connect.Response[GameResponse], error) {
	return call[GameRequest, GameResponse](ctx, g.c, GameServiceCloseGameProcedure, req)
}

func (g *GameServiceClient) ReopenGame(ctx context.Context, req *connect.Request[GameRequest]) (*connect.Response[GameResponse], error) {
	return call[GameRequest, GameResponse](ctx, g.c, GameServiceReopenGameProcedure, req)
}

func (g *GameServiceClient) UpdateSession(ctx context.Context, req *connect.Request[UpdateSessionRequest]) (*connect.Response[SessionResponse], error) {
	return call[UpdateSessionRequest, SessionResponse](ctx, g.c, GameServiceUpdateSessionProcedure, req)
}

func (g *GameServiceClient) RemoveSession(ctx context.Context, req *connect.Request[RemoveSessionRequest]) (*connect.Response[Empty], error) {
	return call[RemoveSessionRequest, Empty](ctx, g.c, GameServiceRemoveSessionProcedure, req)
}

func (g *GameServiceClient) RemoveGuestSession(ctx context.Context, req *connect.Request[RemoveGuestSessionRequest]) (*connect.Response[Empty], error) {
	return call[RemoveGuestSessionRequest, Empty](ctx, g.c, GameServiceRemoveGuestSessionProcedure, req)
}

func (g *GameServiceClient) JoinGame(ctx context.Context, req *connect.Request[GameRequest]) (*connect.Response[SessionResponse], error) {
	return call[GameRequest, SessionResponse](ctx, g.c, GameServiceJoinGameProcedure, req)
}

func (g *GameServiceClient) LeaveGame(ctx context.Context, req *connect.Request[GameRequest]) (*connect.Response[Empty], error) {
	return call[GameRequest, Empty](ctx, g.c, GameServiceLeaveGameProcedure, req)
}
