// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/homegame/internal/models"
)

var (
	// ErrNotFound is returned when a keyed record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")

	// ErrStatusConflict is returned when a game is not in a status the write allows.
	ErrStatusConflict = errors.New("game status does not allow this change")
)

// Store defines the repository contract of the ledger.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the league layer. Every method that touches more than one
// row runs in a single transaction.
type Store interface {
	UserStore
	GroupStore
	GameStore
	ClaimStore
	PayoutStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists identity provider accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil, nil when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil, nil when the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs omits unknown ids from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

// GroupStore persists groups and memberships.
type GroupStore interface {
	// CreateGroup inserts the group and its members.
	// Returns ErrDuplicate if the invite code is taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GetGroupByInviteCode matches the code case-insensitively.
	GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error)

	InviteCodeExists(ctx context.Context, code string) (bool, error)

	// ListGroupsForUser returns every group userID is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	UpdateGroup(ctx context.Context, groupID, name, description string) error

	// DeleteGroup removes payout acks, sessions, games, claim requests,
	// members and the group, in that order, in one transaction.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMember returns ErrDuplicate if the user is already a member.
	AddGroupMember(ctx context.Context, groupID string, member models.GroupMember) error

	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	UpdateMemberRole(ctx context.Context, groupID, userID string, role models.Role) error

	UpdateMemberName(ctx context.Context, groupID, userID, name string) error
}

// GameStore persists games and their sessions.
type GameStore interface {
	CreateGame(ctx context.Context, game *models.Game) error

	// GetGame returns the game with its sessions.
	GetGame(ctx context.Context, gameID string) (*models.Game, error)

	// ListGamesByGroup returns the group's games with sessions, newest first.
	ListGamesByGroup(ctx context.Context, groupID string) ([]*models.Game, error)

	// ListGamesForUser returns games, newest first, in which userID has a session.
	ListGamesForUser(ctx context.Context, userID string) ([]*models.Game, error)

	// UpdateGameStatus moves a game from one status to another.
	// Returns ErrStatusConflict if the game is no longer in from.
	UpdateGameStatus(ctx context.Context, gameID string, from, to models.GameStatus) error

	// ReopenGame moves a completed game back to open and clears every payout
	// confirmation for it, in one transaction.
	ReopenGame(ctx context.Context, gameID string) error

	DeleteGame(ctx context.Context, gameID string) error

	// UpsertSession inserts or updates the session matching session's identity.
	// Returns ErrStatusConflict if the game's status is not in allowed.
	UpsertSession(ctx context.Context, gameID string, session *models.GameSession, allowed ...models.GameStatus) error

	// DeleteSession removes the session of participant p.
	// Returns ErrNotFound if there is none.
	DeleteSession(ctx context.Context, gameID string, p models.Participant, allowed ...models.GameStatus) error
}

// ClaimStore persists claim requests.
type ClaimStore interface {
	// SaveClaimRequest replaces any pending request with the same group,
	// guest name and requester, otherwise inserts.
	SaveClaimRequest(ctx context.Context, req *models.ClaimRequest) error

	GetClaimRequest(ctx context.Context, requestID string) (*models.ClaimRequest, error)

	ListClaimRequests(ctx context.Context, groupID string, status models.ClaimStatus) ([]*models.ClaimRequest, error)

	DeleteClaimRequest(ctx context.Context, requestID string) error

	// ApproveClaimRequest upserts member, removes guest placeholders named
	// like the guest, points the guest's sessions at member.UserID and marks
	// the request approved, all in one transaction. It returns the number of
	// sessions rewritten.
	ApproveClaimRequest(ctx context.Context, requestID string, member models.GroupMember) (int, error)
}

// PayoutStore persists payout acknowledgements.
type PayoutStore interface {
	PutPayoutAck(ctx context.Context, ack *models.PayoutAck) error

	GetPayoutAck(ctx context.Context, gameID, userID string) (*models.PayoutAck, error)

	ListPayoutAcks(ctx context.Context, gameID string) ([]*models.PayoutAck, error)
}
