package league

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/payout"
)

// RecordPayout stores the caller's own acknowledgement for a completed game
// they played in.
func (m *Manager) RecordPayout(ctx context.Context, gameID, userID string, ack models.PayoutAck) (*models.PayoutAck, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	game, _, err := m.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	saved, err := m.payouts.Record(ctx, game, userID, ack)
	switch {
	case errors.Is(err, payout.ErrGameNotCompleted):
		return nil, fmt.Errorf("record payout: %w", ErrGameState)
	case errors.Is(err, payout.ErrNoSession):
		return nil, fmt.Errorf("record payout: %w", ErrNotFound)
	case errors.Is(err, payout.ErrDetailsRequired):
		return nil, invalid("method", err.Error())
	case err != nil:
		return nil, fromStorage(err, "record payout")
	}
	return saved, nil
}

// GetPayout returns userID's acknowledgement for a game. Visible to the user
// and to the group's owner and admins.
func (m *Manager) GetPayout(ctx context.Context, gameID, userID, viewerID string) (*models.PayoutAck, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, group, err := m.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if userID != viewerID {
		if err := requireManager(group, viewerID, "view payout"); err != nil {
			return nil, err
		}
	}

	ack, err := m.payouts.Get(ctx, gameID, userID)
	if err != nil {
		return nil, fromStorage(err, "view payout")
	}
	return ack, nil
}

// ListPayouts returns a game's acknowledgements: all of them for the owner and
// admins, only the viewer's own for anyone else.
func (m *Manager) ListPayouts(ctx context.Context, gameID, viewerID string) ([]*models.PayoutAck, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, group, err := m.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	acks, err := m.payouts.List(ctx, gameID)
	if err != nil {
		return nil, fromStorage(err, "list payouts")
	}
	if group.CanManage(viewerID) {
		return acks, nil
	}

	var own []*models.PayoutAck
	for _, a := range acks {
		if a.UserID == viewerID {
			own = append(own, a)
		}
	}
	return own, nil
}
