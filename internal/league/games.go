package league

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/homegame/internal/models"
)

// CreateGame schedules an open game in the group. Owner or admin only.
// A zero date means today.
func (m *Manager) CreateGame(ctx context.Context, groupID string, date int64, notes, actingUserID string) (*models.Game, error) {
	if date < 0 {
		return nil, invalid("date", "must not be negative")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireManager(group, actingUserID, "create game"); err != nil {
		return nil, err
	}

	if date == 0 {
		date = m.now().Unix()
	}
	game := &models.Game{
		GroupID:   group.ID,
		Date:      date,
		Notes:     strings.TrimSpace(notes),
		CreatedBy: actingUserID,
		CreatedAt: m.now().Unix(),
		Status:    models.StatusOpen,
	}
	if err := m.store.CreateGame(ctx, game); err != nil {
		return nil, fromStorage(err, "create game")
	}
	return game, nil
}

// GetGame returns a game to a member of its group or one of its players.
func (m *Manager) GetGame(ctx context.Context, gameID, viewerID string) (*models.Game, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, group, err := m.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if group.Member(viewerID) == nil && game.SessionFor(viewerID) == nil {
		return nil, forbidden("view game: not a member of the group")
	}
	return game, nil
}

// ListGames returns the group's games, newest first. Members only.
func (m *Manager) ListGames(ctx context.Context, groupID, viewerID string) ([]*models.Game, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, viewerID, "list games"); err != nil {
		return nil, err
	}
	games, err := m.store.ListGamesByGroup(ctx, group.ID)
	if err != nil {
		return nil, fromStorage(err, "list games")
	}
	return games, nil
}

// DeleteGame removes a game with its sessions and payout records.
// Owner or admin only.
func (m *Manager) DeleteGame(ctx context.Context, gameID, actingUserID string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, group, err := m.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := requireManager(group, actingUserID, "delete game"); err != nil {
		return err
	}
	if err := m.store.DeleteGame(ctx, gameID); err != nil {
		return fromStorage(err, "delete game")
	}
	return nil
}

// StartGame moves an open game to in-progress.
func (m *Manager) StartGame(ctx context.Context, gameID, actingUserID string) (*models.Game, error) {
	return m.transition(ctx, gameID, actingUserID, models.StatusInProgress)
}

// PauseGame moves an in-progress game back to open.
func (m *Manager) PauseGame(ctx context.Context, gameID, actingUserID string) (*models.Game, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, err := m.peekStatus(ctx, gameID, actingUserID, "pause game")
	if err != nil {
		return nil, err
	}
	if game.Status != models.StatusInProgress {
		return nil, fmt.Errorf("pause game: game is %s: %w", game.Status, ErrGameState)
	}
	return m.setStatus(ctx, game, models.StatusOpen)
}

// CloseGame completes an open or in-progress game.
func (m *Manager) CloseGame(ctx context.Context, gameID, actingUserID string) (*models.Game, error) {
	return m.transition(ctx, gameID, actingUserID, models.StatusCompleted)
}

// ReopenGame moves a completed game back to open. Every payout confirmation
// for the game is cleared in the same transaction, since amounts may change.
func (m *Manager) ReopenGame(ctx context.Context, gameID, actingUserID string) (*models.Game, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, err := m.peekStatus(ctx, gameID, actingUserID, "reopen game")
	if err != nil {
		return nil, err
	}
	if game.Status != models.StatusCompleted {
		return nil, fmt.Errorf("reopen game: game is %s: %w", game.Status, ErrGameState)
	}
	if err := m.store.ReopenGame(ctx, gameID); err != nil {
		return nil, fromStorage(err, "reopen game")
	}
	game.Status = models.StatusOpen
	slog.Info("Game reopened, payout confirmations reset", "game_id", gameID)
	return game, nil
}

// transition moves a game to `to` from whatever status it is in now, if the
// state machine allows it.
func (m *Manager) transition(ctx context.Context, gameID, actingUserID string, to models.GameStatus) (*models.Game, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, err := m.peekStatus(ctx, gameID, actingUserID, "change game status")
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(game.Status, to) {
		return nil, fmt.Errorf("cannot move game from %s to %s: %w", game.Status, to, ErrGameState)
	}
	return m.setStatus(ctx, game, to)
}

func (m *Manager) peekStatus(ctx context.Context, gameID, actingUserID, action string) (*models.Game, error) {
	game, group, err := m.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := requireManager(group, actingUserID, action); err != nil {
		return nil, err
	}
	return game, nil
}

// setStatus compare-and-sets the status, so a concurrent change fails the
// operation instead of being overwritten.
func (m *Manager) setStatus(ctx context.Context, game *models.Game, to models.GameStatus) (*models.Game, error) {
	if err := m.store.UpdateGameStatus(ctx, game.ID, game.Status, to); err != nil {
		return nil, fromStorage(err, "change game status")
	}
	slog.Info("Game status changed", "game_id", game.ID, "from", game.Status, "to", to)
	game.Status = to
	return game, nil
}
