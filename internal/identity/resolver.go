// Package identity resolves user ids to display names and contact details.
package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mmynk/homegame/internal/models"
)

// ErrUnknownUser is returned for ids the identity provider does not know,
// including every synthetic guest id.
var ErrUnknownUser = errors.New("unknown user")

// Identity is what the ledger needs to know about a registered user.
type Identity struct {
	DisplayName string
	Email       string
}

// Resolver maps user ids to identities.
type Resolver interface {
	Resolve(ctx context.Context, userID string) (Identity, error)
	ResolveMany(ctx context.Context, userIDs []string) (map[string]Identity, error)
}

// UserStorage is the subset of storage the resolver reads.
type UserStorage interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// StoreResolver resolves identities from the users table.
type StoreResolver struct {
	users UserStorage
}

// NewStoreResolver creates a resolver backed by users.
func NewStoreResolver(users UserStorage) *StoreResolver {
	return &StoreResolver{users: users}
}

// Resolve returns the identity of userID.
func (r *StoreResolver) Resolve(ctx context.Context, userID string) (Identity, error) {
	if userID == "" || models.IsGuestID(userID) {
		return Identity{}, fmt.Errorf("%q: %w", userID, ErrUnknownUser)
	}
	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		return Identity{}, err
	}
	if user == nil {
		return Identity{}, fmt.Errorf("%q: %w", userID, ErrUnknownUser)
	}
	return Identity{DisplayName: user.DisplayName, Email: user.Email}, nil
}

// ResolveMany resolves a batch of ids. Unknown and guest ids are omitted.
func (r *StoreResolver) ResolveMany(ctx context.Context, userIDs []string) (map[string]Identity, error) {
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id != "" && !models.IsGuestID(id) {
			ids = append(ids, id)
		}
	}
	users, err := r.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Identity, len(users))
	for id, u := range users {
		out[id] = Identity{DisplayName: u.DisplayName, Email: u.Email}
	}
	return out, nil
}

// CachingResolver memoizes successful lookups of another Resolver.
// Misses are not cached so newly registered users resolve immediately.
type CachingResolver struct {
	next Resolver

	mu    sync.RWMutex
	cache map[string]Identity
}

// NewCachingResolver wraps next with a cache.
func NewCachingResolver(next Resolver) *CachingResolver {
	return &CachingResolver{next: next, cache: make(map[string]Identity)}
}

// Resolve returns a cached identity or asks the wrapped resolver.
func (c *CachingResolver) Resolve(ctx context.Context, userID string) (Identity, error) {
	c.mu.RLock()
	id, ok := c.cache[userID]
	c.mu.RUnlock()
	if ok {
		return id, nil
	}

	id, err := c.next.Resolve(ctx, userID)
	if err != nil {
		return Identity{}, err
	}
	c.mu.Lock()
	c.cache[userID] = id
	c.mu.Unlock()
	return id, nil
}

// ResolveMany serves cached ids and batches the rest.
func (c *CachingResolver) ResolveMany(ctx context.Context, userIDs []string) (map[string]Identity, error) {
	out := make(map[string]Identity, len(userIDs))
	var missing []string

	c.mu.RLock()
	for _, uid := range userIDs {
		if id, ok := c.cache[uid]; ok {
			out[uid] = id
		} else {
			missing = append(missing, uid)
		}
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}
	found, err := c.next.ResolveMany(ctx, missing)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for uid, id := range found {
		c.cache[uid] = id
		out[uid] = id
	}
	c.mu.Unlock()
	return out, nil
}

// DisplayName resolves userID's name, falling back to the raw id on any miss.
func DisplayName(ctx context.Context, r Resolver, userID string) string {
	id, err := r.Resolve(ctx, userID)
	if err != nil || id.DisplayName == "" {
		return userID
	}
	return id.DisplayName
}
