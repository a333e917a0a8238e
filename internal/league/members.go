package league

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/homegame/internal/models"
)

// AddGuestMember adds a placeholder membership for a player without an
// account. Owner only. A name already used in the group is allowed; the
// returned warning is non-empty so the caller can flag a likely duplicate.
func (m *Manager) AddGuestMember(ctx context.Context, groupID, guestName, actingUserID string) (models.GroupMember, string, error) {
	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		return models.GroupMember{}, "", invalid("guest_name", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return models.GroupMember{}, "", err
	}
	if err := requireOwner(group, actingUserID, "add guest"); err != nil {
		return models.GroupMember{}, "", err
	}

	var warning string
	for _, existing := range group.Members {
		if models.NormalizeName(existing.UserName) == models.NormalizeName(guestName) {
			warning = fmt.Sprintf("a member named %q already exists in this group", existing.UserName)
			break
		}
	}

	member := models.GroupMember{
		UserID:   models.NewGuestID(),
		UserName: guestName,
		JoinedAt: m.now().Unix(),
		Role:     models.RoleMember,
	}
	if err := m.store.AddGroupMember(ctx, groupID, member); err != nil {
		return models.GroupMember{}, "", fromStorage(err, "add guest")
	}
	return member, warning, nil
}

// RemoveGroupMember removes userID from the group. Owner only; the owner
// cannot be removed. Past sessions keep their user id.
func (m *Manager) RemoveGroupMember(ctx context.Context, groupID, userID, actingUserID string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, target, err := m.ownerAction(ctx, groupID, userID, actingUserID, "remove member")
	if err != nil {
		return err
	}
	if err := m.store.RemoveGroupMember(ctx, group.ID, target.UserID); err != nil {
		return fromStorage(err, "remove member")
	}
	return nil
}

// PromoteToAdmin gives memberID the admin role. Owner only.
func (m *Manager) PromoteToAdmin(ctx context.Context, groupID, memberID, actingUserID string) error {
	return m.setRole(ctx, groupID, memberID, actingUserID, models.RoleAdmin)
}

// DemoteFromAdmin returns memberID to the member role. Owner only.
func (m *Manager) DemoteFromAdmin(ctx context.Context, groupID, memberID, actingUserID string) error {
	return m.setRole(ctx, groupID, memberID, actingUserID, models.RoleMember)
}

func (m *Manager) setRole(ctx context.Context, groupID, memberID, actingUserID string, role models.Role) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, target, err := m.ownerAction(ctx, groupID, memberID, actingUserID, "change role")
	if err != nil {
		return err
	}
	if role == models.RoleAdmin && target.IsGuest() {
		return invalid("member_id", "guests cannot be admins")
	}
	if target.Role == role {
		return nil
	}
	if err := m.store.UpdateMemberRole(ctx, group.ID, target.UserID, role); err != nil {
		return fromStorage(err, "change role")
	}
	return nil
}

// ownerAction loads the group and target membership for an owner-only action
// on someone other than the owner.
func (m *Manager) ownerAction(ctx context.Context, groupID, targetID, actingUserID, action string) (*models.Group, *models.GroupMember, error) {
	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireOwner(group, actingUserID, action); err != nil {
		return nil, nil, err
	}
	target := group.Member(targetID)
	if target == nil {
		return nil, nil, fmt.Errorf("%s: member %s: %w", action, targetID, ErrNotFound)
	}
	if target.Role == models.RoleOwner {
		return nil, nil, forbidden(action + ": not allowed on the owner")
	}
	return group, target, nil
}

// UpdateGroupMemberName renames memberID within the group. Members may rename
// themselves; the owner and admins may rename anyone. Stored player names on
// past sessions are not touched; leaderboards pick up the new name.
func (m *Manager) UpdateGroupMemberName(ctx context.Context, groupID, memberID, newName, actingUserID string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return invalid("name", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if memberID != actingUserID {
		if err := requireManager(group, actingUserID, "rename member"); err != nil {
			return err
		}
	}
	if group.Member(memberID) == nil {
		return fmt.Errorf("rename member: member %s: %w", memberID, ErrNotFound)
	}
	if err := m.store.UpdateMemberName(ctx, groupID, memberID, newName); err != nil {
		return fromStorage(err, "rename member")
	}
	return nil
}
