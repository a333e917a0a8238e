package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/homegame/internal/api"
	"github.com/mmynk/homegame/internal/league"
	"github.com/mmynk/homegame/internal/models"
)

// GameService implements the Connect GameService.
type GameService struct {
	league *league.Manager
}

var _ api.GameServiceHandler = (*GameService)(nil)

// NewGameService creates a GameService.
func NewGameService(m *league.Manager) *GameService {
	return &GameService{league: m}
}

// CreateGame schedules a game in a group.
func (s *GameService) CreateGame(ctx context.Context, req *connect.Request[api.CreateGameRequest]) (*connect.Response[api.GameResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGame request received", "group_id", req.Msg.GroupID, "date", req.Msg.Date)

	game, err := s.league.CreateGame(ctx, req.Msg.GroupID, req.Msg.Date, req.Msg.Notes, userID)
	if err != nil {
		return nil, connectError("CreateGame", err)
	}

	slog.Info("Game created", "game_id", game.ID, "group_id", game.GroupID)
	return connect.NewResponse(&api.GameResponse{Game: toGame(game)}), nil
}

// GetGame retrieves a game with its sessions.
func (s *GameService) GetGame(ctx context.Context, req *connect.Request[api.GameRequest]) (*connect.Response[api.GameResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	game, err := s.league.GetGame(ctx, req.Msg.GameID, userID)
	if err != nil {
		return nil, connectError("GetGame", err)
	}
	return connect.NewResponse(&api.GameResponse{Game: toGame(game)}), nil
}

// ListGames retrieves a group's games, newest first.
func (s *GameService) ListGames(ctx context.Context, req *connect.Request[api.GroupRequest]) (*connect.Response[api.ListGamesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	games, err := s.league.ListGames(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, connectError("ListGames", err)
	}

	out := make([]api.Game, len(games))
	for i, g := range games {
		out[i] = toGame(g)
	}
	slog.Info("ListGames successful", "group_id", req.Msg.GroupID, "count", len(games))
	return connect.NewResponse(&api.ListGamesResponse{Games: out}), nil
}

// DeleteGame removes a game and its sessions.
func (s *GameService) DeleteGame(ctx context.Context, req *connect.Request[api.GameRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteGame request received", "game_id", req.Msg.GameID)

	if err := s.league.DeleteGame(ctx, req.Msg.GameID, userID); err != nil {
		return nil, connectError("DeleteGame", err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// StartGame moves an open game to in-progress.
func (s *GameService) StartGame(ctx context.Context, req *connect.Request[api.GameRequest]) (*connect.Response[api.GameResponse], error) {
	return s.transition(ctx, "StartGame", req.Msg.GameID, s.league.StartGame)
}

// PauseGame moves an in-progress game back to open.
func (s *GameService) PauseGame(ctx context.Context, req *connect.Request[api.GameRequest]) (*connect.Response[api.GameResponse], error) {
	return s.transition(ctx, "PauseGame", req.Msg.GameID, s.league.PauseGame)
}

// CloseGame completes a game, freezing its sessions.
func (s *GameService) CloseGame(ctx context.Context, req *connect.Request[api.GameRequest]) (*connect.Response[api.GameResponse], error) {
	return s.transition(ctx, "CloseGame", req.Msg.GameID, s.league.CloseGame)
}

// ReopenGame moves a completed game back to open and clears payout
// confirmations.
func (s *GameService) ReopenGame(ctx context.Context, req *connect.Request[api.GameRequest]) (*connect.Response[api.GameResponse], error) {
	return s.transition(ctx, "ReopenGame", req.Msg.GameID, s.league.ReopenGame)
}

func (s *GameService) transition(ctx context.Context, op, gameID string, fn func(context.Context, string, string) (*models.Game, error)) (*connect.Response[api.GameResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info(op+" request received", "game_id", gameID, "user_id", userID)

	game, err := fn(ctx, gameID, userID)
	if err != nil {
		return nil, connectError(op, err)
	}

	slog.Info(op+" successful", "game_id", game.ID, "status", game.Status)
	return connect.NewResponse(&api.GameResponse{Game: toGame(game)}), nil
}

// UpdateSession records a participant's buy-in and cash-out.
func (s *GameService) UpdateSession(ctx context.Context, req *connect.Request[api.UpdateSessionRequest]) (*connect.Response[api.SessionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateSession request received",
		"game_id", req.Msg.GameID,
		"player_id", req.Msg.UserID,
		"player_name", req.Msg.PlayerName,
	)

	sess, err := s.league.UpdateGameSession(ctx, league.SessionInput{
		GameID:     req.Msg.GameID,
		UserID:     req.Msg.UserID,
		PlayerName: req.Msg.PlayerName,
		BuyIn:      req.Msg.BuyIn,
		EndAmount:  req.Msg.EndAmount,
	}, userID)
	if err != nil {
		return nil, connectError("UpdateSession", err)
	}
	return connect.NewResponse(&api.SessionResponse{Session: toSession(*sess)}), nil
}

// RemoveSession removes a registered player's session.
func (s *GameService) RemoveSession(ctx context.Context, req *connect.Request[api.RemoveSessionRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveSession request received", "game_id", req.Msg.GameID, "player_id", req.Msg.UserID)

	if err := s.league.RemoveGameSession(ctx, req.Msg.GameID, req.Msg.UserID, userID); err != nil {
		return nil, connectError("RemoveSession", err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// RemoveGuestSession removes a guest's session by name.
func (s *GameService) RemoveGuestSession(ctx context.Context, req *connect.Request[api.RemoveGuestSessionRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveGuestSession request received", "game_id", req.Msg.GameID, "player_name", req.Msg.PlayerName)

	if err := s.league.RemoveGuestSession(ctx, req.Msg.GameID, req.Msg.PlayerName, userID); err != nil {
		return nil, connectError("RemoveGuestSession", err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// JoinGame adds the caller to an open game with zero amounts.
func (s *GameService) JoinGame(ctx context.Context, req *connect.Request[api.GameRequest]) (*connect.Response[api.SessionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("JoinGame request received", "game_id", req.Msg.GameID, "user_id", userID)

	sess, err := s.league.JoinGame(ctx, req.Msg.GameID, userID)
	if err != nil {
		return nil, connectError("JoinGame", err)
	}
	return connect.NewResponse(&api.SessionResponse{Session: toSession(*sess)}), nil
}

// LeaveGame removes the caller from an open game.
func (s *GameService) LeaveGame(ctx context.Context, req *connect.Request[api.GameRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("LeaveGame request received", "game_id", req.Msg.GameID, "user_id", userID)

	if err := s.league.LeaveGame(ctx, req.Msg.GameID, userID); err != nil {
		return nil, connectError("LeaveGame", err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}
