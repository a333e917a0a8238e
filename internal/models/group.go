package models

import (
	"strings"

	"github.com/google/uuid"
)

// Role is a member's permission level within a group.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// GuestIDPrefix marks synthetic member ids created for players without an
// account. Ids with this prefix are never resolvable by the identity provider.
const GuestIDPrefix = "guest_"

// Group is a recurring circle of players.
// Exactly one member has RoleOwner, and that member's UserID equals CreatedBy.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Friday Night Poker").
	Name string

	// Description is optional free text.
	Description string

	// CreatedBy is the user ID of the owner.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64

	// InviteCode is the shareable join code, matched case-insensitively.
	InviteCode string

	// Members lists every membership, the owner included.
	Members []GroupMember
}

// GroupMember is one user's membership in a group.
type GroupMember struct {
	// UserID is the identity provider's user id, or a GuestIDPrefix id for guests.
	UserID string

	// UserName is the member's display name within the group.
	// It is editable and overrides stored player names on leaderboards.
	UserName string

	// JoinedAt is the Unix timestamp of the membership.
	JoinedAt int64

	Role Role
}

// NewGuestID returns a fresh synthetic member id for a guest.
func NewGuestID() string {
	return GuestIDPrefix + uuid.New().String()
}

// IsGuestID reports whether userID is a synthetic guest id.
func IsGuestID(userID string) bool {
	return strings.HasPrefix(userID, GuestIDPrefix)
}

// IsGuest reports whether the membership is a guest placeholder.
func (m GroupMember) IsGuest() bool {
	return IsGuestID(m.UserID)
}

// Member returns the membership for userID, or nil.
func (g *Group) Member(userID string) *GroupMember {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

// Owner returns the owner's membership, or nil if the group is malformed.
func (g *Group) Owner() *GroupMember {
	for i := range g.Members {
		if g.Members[i].Role == RoleOwner {
			return &g.Members[i]
		}
	}
	return nil
}

// IsOwner reports whether userID owns the group.
func (g *Group) IsOwner(userID string) bool {
	m := g.Member(userID)
	return m != nil && m.Role == RoleOwner
}

// CanManage reports whether userID is the owner or an admin.
func (g *Group) CanManage(userID string) bool {
	m := g.Member(userID)
	return m != nil && (m.Role == RoleOwner || m.Role == RoleAdmin)
}

// MemberNames maps member user ids to their current display names.
func (g *Group) MemberNames() map[string]string {
	names := make(map[string]string, len(g.Members))
	for _, m := range g.Members {
		names[m.UserID] = m.UserName
	}
	return names
}

// NormalizeName is the comparison key for free-text player names.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
