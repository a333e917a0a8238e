// Package payout records players' acknowledgements that a game's money changed
// hands. Acknowledgements are advisory: nothing here talks to a payment system.
package payout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage"
)

var (
	// ErrGameNotCompleted is returned when recording against a game that is
	// still open or in progress.
	ErrGameNotCompleted = errors.New("payouts can only be recorded for completed games")

	// ErrNoSession is returned when the user did not play in the game.
	ErrNoSession = errors.New("user has no session in this game")

	// ErrDetailsRequired is returned when a losing player confirms without
	// saying how they paid.
	ErrDetailsRequired = errors.New("method and handle are required to confirm a losing payout")
)

// Store is the subset of storage the tracker needs.
type Store interface {
	PutPayoutAck(ctx context.Context, ack *models.PayoutAck) error
	GetPayoutAck(ctx context.Context, gameID, userID string) (*models.PayoutAck, error)
	ListPayoutAcks(ctx context.Context, gameID string) ([]*models.PayoutAck, error)
}

// Tracker records and reads payout acknowledgements.
type Tracker struct {
	store Store
	now   func() time.Time
}

// NewTracker creates a Tracker backed by store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// Validate applies the confirmation rule to a player's session: a player who
// lost money must name a method and handle to confirm; anyone else may confirm
// with neither.
func Validate(sess models.GameSession, ack models.PayoutAck) error {
	if !ack.Confirmed || !sess.Lost() {
		return nil
	}
	if strings.TrimSpace(ack.Method) == "" || strings.TrimSpace(ack.Handle) == "" {
		return ErrDetailsRequired
	}
	return nil
}

// Record stores userID's acknowledgement for game.
func (t *Tracker) Record(ctx context.Context, game *models.Game, userID string, ack models.PayoutAck) (*models.PayoutAck, error) {
	if game.Status != models.StatusCompleted {
		return nil, ErrGameNotCompleted
	}
	sess := game.SessionFor(userID)
	if sess == nil {
		return nil, ErrNoSession
	}
	if err := Validate(*sess, ack); err != nil {
		return nil, err
	}

	ack.GameID = game.ID
	ack.UserID = userID
	ack.Method = strings.TrimSpace(ack.Method)
	ack.Handle = strings.TrimSpace(ack.Handle)
	if ack.CompletedAt == 0 {
		ack.CompletedAt = t.now().Unix()
	}

	if err := t.store.PutPayoutAck(ctx, &ack); err != nil {
		return nil, fmt.Errorf("failed to record payout: %w", err)
	}
	return &ack, nil
}

// Get returns userID's acknowledgement for gameID. A user who never recorded
// one gets an unconfirmed acknowledgement rather than an error.
func (t *Tracker) Get(ctx context.Context, gameID, userID string) (*models.PayoutAck, error) {
	ack, err := t.store.GetPayoutAck(ctx, gameID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.PayoutAck{GameID: gameID, UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return ack, nil
}

// List returns every recorded acknowledgement for gameID.
func (t *Tracker) List(ctx context.Context, gameID string) ([]*models.PayoutAck, error) {
	return t.store.ListPayoutAcks(ctx, gameID)
}
