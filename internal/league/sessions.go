package league

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage"
)

// SessionInput is a buy-in/cash-out entry for one participant.
// An empty UserID records a guest by PlayerName.
type SessionInput struct {
	GameID     string
	UserID     string
	PlayerName string
	BuyIn      float64
	EndAmount  float64
}

func (in SessionInput) validate() error {
	if in.GameID == "" {
		return invalid("game_id", "required")
	}
	if in.UserID == "" && strings.TrimSpace(in.PlayerName) == "" {
		return invalid("player_name", "required for guests")
	}
	if in.BuyIn < 0 || math.IsNaN(in.BuyIn) || math.IsInf(in.BuyIn, 0) {
		return invalid("buy_in", "must be a non-negative amount")
	}
	if in.EndAmount < 0 || math.IsNaN(in.EndAmount) || math.IsInf(in.EndAmount, 0) {
		return invalid("end_amount", "must be a non-negative amount")
	}
	return nil
}

// UpdateGameSession records a participant's buy-in and cash-out, matching an
// existing session by user id, or by case-insensitive name for guests.
//
// While the game is open, members may edit their own session and the owner
// and admins may edit anyone's. While it is in progress, only the owner and
// admins may make corrections. Completed games reject every edit.
func (m *Manager) UpdateGameSession(ctx context.Context, in SessionInput, actingUserID string) (*models.GameSession, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, group, err := m.loadGame(ctx, in.GameID)
	if err != nil {
		return nil, err
	}

	manager := group.CanManage(actingUserID)
	var allowed []models.GameStatus
	switch {
	case game.Status == models.StatusCompleted:
		return nil, fmt.Errorf("update session: game is completed: %w", ErrGameState)
	case game.Status == models.StatusInProgress && !manager:
		return nil, fmt.Errorf("update session: game is in progress, only the owner or an admin may edit: %w", ErrGameState)
	case manager:
		allowed = []models.GameStatus{models.StatusOpen, models.StatusInProgress}
	case in.UserID == actingUserID && actingUserID != "":
		allowed = []models.GameStatus{models.StatusOpen}
	default:
		return nil, forbidden("update session: only your own session")
	}

	name := strings.TrimSpace(in.PlayerName)
	if name == "" {
		name = m.memberName(ctx, group, in.UserID)
	}
	sess := models.NewSession(in.UserID, name, in.BuyIn, in.EndAmount)
	if existing := game.Session(sess.Participant()); existing != nil {
		sess.Role = existing.Role
	}

	if err := m.store.UpsertSession(ctx, game.ID, &sess, allowed...); err != nil {
		return nil, fromStorage(err, "update session")
	}
	return &sess, nil
}

// RemoveGameSession removes userID's session from an open game. Players may
// remove themselves; the owner and admins may remove anyone.
func (m *Manager) RemoveGameSession(ctx context.Context, gameID, userID, actingUserID string) error {
	if userID == "" {
		return invalid("user_id", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, group, err := m.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if userID != actingUserID {
		if err := requireManager(group, actingUserID, "remove session"); err != nil {
			return err
		}
	}
	if game.Status != models.StatusOpen {
		return fmt.Errorf("remove session: game is %s: %w", game.Status, ErrGameState)
	}

	err = m.store.DeleteSession(ctx, gameID, models.Registered(userID, ""), models.StatusOpen)
	return fromStorage(err, "remove session")
}

// RemoveGuestSession removes a guest's session from an open game by name.
// Owner or admin only. Registered players' sessions are never matched.
func (m *Manager) RemoveGuestSession(ctx context.Context, gameID, playerName, actingUserID string) error {
	if strings.TrimSpace(playerName) == "" {
		return invalid("player_name", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, group, err := m.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := requireManager(group, actingUserID, "remove guest session"); err != nil {
		return err
	}
	if game.Status != models.StatusOpen {
		return fmt.Errorf("remove guest session: game is %s: %w", game.Status, ErrGameState)
	}

	key := models.NormalizeName(playerName)
	for _, sess := range game.Sessions {
		p := sess.Participant()
		if p.IsGuest() && models.NormalizeName(p.Name) == key {
			err := m.store.DeleteSession(ctx, gameID, p, models.StatusOpen)
			return fromStorage(err, "remove guest session")
		}
	}
	return fmt.Errorf("remove guest session: no guest named %q: %w", playerName, ErrNotFound)
}

// JoinGame adds a zero buy-in session for userID to an open game, named with
// the user's group or display name. Joining twice is a no-op.
func (m *Manager) JoinGame(ctx context.Context, gameID, userID string) (*models.GameSession, error) {
	if userID == "" {
		return nil, invalid("user_id", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, group, err := m.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Status != models.StatusOpen {
		return nil, fmt.Errorf("join game: game is %s: %w", game.Status, ErrGameState)
	}
	if existing := game.SessionFor(userID); existing != nil {
		return existing, nil
	}

	sess := models.NewSession(userID, m.memberName(ctx, group, userID), 0, 0)
	err = m.store.UpsertSession(ctx, gameID, &sess, models.StatusOpen)
	if errors.Is(err, storage.ErrDuplicate) {
		// A concurrent join won the race.
		return &sess, nil
	}
	if err != nil {
		return nil, fromStorage(err, "join game")
	}
	return &sess, nil
}

// LeaveGame removes userID's session from an open game. Leaving a game you are
// not in is a no-op.
func (m *Manager) LeaveGame(ctx context.Context, gameID, userID string) error {
	if userID == "" {
		return invalid("user_id", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, _, err := m.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if game.Status != models.StatusOpen {
		return fmt.Errorf("leave game: game is %s: %w", game.Status, ErrGameState)
	}

	err = m.store.DeleteSession(ctx, gameID, models.Registered(userID, ""), models.StatusOpen)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return fromStorage(err, "leave game")
}
