// Package league implements the ledger's business rules: group membership and
// roles, guest claims, the game state machine, and leaderboard queries.
//
// Every operation takes the acting user's id explicitly and checks it against
// the group's roles. Storage calls run under a per-operation timeout and
// business-rule failures come back as errors matching the kinds in errors.go.
package league

import (
	"context"
	"time"

	"github.com/mmynk/homegame/internal/identity"
	"github.com/mmynk/homegame/internal/invite"
	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/payout"
	"github.com/mmynk/homegame/internal/storage"
)

// DefaultTimeout bounds each operation's storage work.
const DefaultTimeout = 5 * time.Second

// Manager coordinates groups, games and claims over a Store.
type Manager struct {
	store    storage.Store
	resolver identity.Resolver
	codes    *invite.Generator
	payouts  *payout.Tracker
	timeout  time.Duration
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout sets the per-operation storage timeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// NewManager creates a Manager.
func NewManager(store storage.Store, resolver identity.Resolver, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		resolver: resolver,
		codes:    invite.NewGenerator(store),
		payouts:  payout.NewTracker(store),
		timeout:  DefaultTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.timeout)
}

func (m *Manager) loadGroup(ctx context.Context, groupID string) (*models.Group, error) {
	if groupID == "" {
		return nil, invalid("group_id", "required")
	}
	group, err := m.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fromStorage(err, "load group")
	}
	return group, nil
}

func (m *Manager) loadGame(ctx context.Context, gameID string) (*models.Game, *models.Group, error) {
	if gameID == "" {
		return nil, nil, invalid("game_id", "required")
	}
	game, err := m.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, fromStorage(err, "load game")
	}
	group, err := m.loadGroup(ctx, game.GroupID)
	if err != nil {
		return nil, nil, err
	}
	return game, group, nil
}

// memberName is the name userID goes by in group: the membership name, else
// the identity provider's display name, else the raw id.
func (m *Manager) memberName(ctx context.Context, group *models.Group, userID string) string {
	if member := group.Member(userID); member != nil && member.UserName != "" {
		return member.UserName
	}
	return identity.DisplayName(ctx, m.resolver, userID)
}

func requireMember(group *models.Group, userID, action string) error {
	if group.Member(userID) == nil {
		return forbidden(action + ": not a member of the group")
	}
	return nil
}

func requireManager(group *models.Group, userID, action string) error {
	if !group.CanManage(userID) {
		return forbidden(action + ": requires group owner or admin")
	}
	return nil
}

func requireOwner(group *models.Group, userID, action string) error {
	if !group.IsOwner(userID) {
		return forbidden(action + ": requires group owner")
	}
	return nil
}
