package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/homegame/internal/invite"
	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage"
)

// createAttempts bounds retries when a fresh invite code loses a race.
const createAttempts = 3

// CreateGroup creates a group owned by ownerID with a fresh invite code.
// An empty ownerName is filled from the identity provider.
func (m *Manager) CreateGroup(ctx context.Context, name, description, ownerID, ownerName string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "required")
	}
	if ownerID == "" {
		return nil, invalid("owner_id", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if strings.TrimSpace(ownerName) == "" {
		ownerName = m.memberName(ctx, &models.Group{}, ownerID)
	}

	for attempt := 1; ; attempt++ {
		code, err := m.codes.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate invite code: %w: %w", ErrStorage, err)
		}

		group := &models.Group{
			Name:        name,
			Description: strings.TrimSpace(description),
			CreatedBy:   ownerID,
			InviteCode:  code,
			Members: []models.GroupMember{
				{UserID: ownerID, UserName: strings.TrimSpace(ownerName), Role: models.RoleOwner},
			},
		}
		err = m.store.CreateGroup(ctx, group)
		if errors.Is(err, storage.ErrDuplicate) && attempt < createAttempts {
			slog.Warn("Invite code collided, retrying", "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, fromStorage(err, "create group")
		}
		return group, nil
	}
}

// JoinGroup adds userID to the group with the given invite code as a member.
// The code is matched case-insensitively.
func (m *Manager) JoinGroup(ctx context.Context, inviteCode, userID, userName string) (*models.Group, error) {
	code := invite.Normalize(inviteCode)
	if code == "" {
		return nil, invalid("invite_code", "required")
	}
	if userID == "" {
		return nil, invalid("user_id", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.store.GetGroupByInviteCode(ctx, code)
	if err != nil {
		return nil, fromStorage(err, "find invite code")
	}
	if group.Member(userID) != nil {
		return nil, ErrAlreadyMember
	}

	if strings.TrimSpace(userName) == "" {
		userName = m.memberName(ctx, group, userID)
	}
	member := models.GroupMember{
		UserID:   userID,
		UserName: strings.TrimSpace(userName),
		JoinedAt: m.now().Unix(),
		Role:     models.RoleMember,
	}
	err = m.store.AddGroupMember(ctx, group.ID, member)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, ErrAlreadyMember
	}
	if err != nil {
		return nil, fromStorage(err, "join group")
	}

	group.Members = append(group.Members, member)
	return group, nil
}

// GetGroup returns a group to one of its members.
func (m *Manager) GetGroup(ctx context.Context, groupID, viewerID string) (*models.Group, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, viewerID, "view group"); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns the groups userID belongs to, newest first.
func (m *Manager) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	groups, err := m.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		return nil, fromStorage(err, "list groups")
	}
	return groups, nil
}

// RenameGroup changes a group's name and description. Owner only.
func (m *Manager) RenameGroup(ctx context.Context, groupID, name, description, actingUserID string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(group, actingUserID, "rename group"); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if err := m.store.UpdateGroup(ctx, groupID, name, description); err != nil {
		return nil, fromStorage(err, "rename group")
	}
	group.Name = name
	group.Description = description
	return group, nil
}

// DeleteGroup removes a group with all of its games, sessions, claims and
// memberships. Owner only. Callers are expected to have confirmed the
// deletion with the user; it cannot be undone.
func (m *Manager) DeleteGroup(ctx context.Context, groupID, actingUserID string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if err := requireOwner(group, actingUserID, "delete group"); err != nil {
		return err
	}
	if err := m.store.DeleteGroup(ctx, groupID); err != nil {
		return fromStorage(err, "delete group")
	}
	slog.Info("Group deleted", "group_id", groupID, "by", actingUserID)
	return nil
}

// InviteQRCode renders the group's join link as a PNG. Members only.
func (m *Manager) InviteQRCode(ctx context.Context, groupID, actingUserID, baseURL string) ([]byte, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, actingUserID, "view invite"); err != nil {
		return nil, err
	}
	png, err := invite.QRCode(baseURL, group.InviteCode)
	if err != nil {
		return nil, invalid("base_url", err.Error())
	}
	return png, nil
}
