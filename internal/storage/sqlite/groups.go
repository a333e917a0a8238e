package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage"
)

// CreateGroup persists a new group and its initial members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate IDs if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	group.InviteCode = strings.ToUpper(group.InviteCode)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (id, name, description, created_by, created_at, invite_code)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, nullable(group.Description), group.CreatedBy, group.CreatedAt, group.InviteCode,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to insert group: %w", storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i := range group.Members {
		m := &group.Members[i]
		if m.JoinedAt == 0 {
			m.JoinedAt = group.CreatedAt
		}
		if err := insertMember(ctx, tx, group.ID, *m); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including all members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return getGroup(ctx, s.db, "id = ?", groupID)
}

// GetGroupByInviteCode retrieves a group by its invite code, ignoring case.
func (s *SQLiteStore) GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	return getGroup(ctx, s.db, "invite_code = ?", strings.TrimSpace(code))
}

// InviteCodeExists reports whether any group uses code.
func (s *SQLiteStore) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE invite_code = ?", code).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check invite code: %w", err)
	}
	return true, nil
}

// ListGroupsForUser retrieves every group the user belongs to, newest first.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := getGroup(ctx, s.db, "id = ?", id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// UpdateGroup renames a group.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, groupID, name, description string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE groups SET name = ?, description = ? WHERE id = ?",
		name, nullable(description), groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	return expectRows(res, "group", groupID)
}

// DeleteGroup removes a group and everything it owns. The cascade is spelled
// out rather than left to foreign keys so each step can fail visibly.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}

	steps := []struct {
		name  string
		query string
	}{
		{"payout_acks", "DELETE FROM payout_acks WHERE game_id IN (SELECT id FROM games WHERE group_id = ?)"},
		{"game_sessions", "DELETE FROM game_sessions WHERE game_id IN (SELECT id FROM games WHERE group_id = ?)"},
		{"games", "DELETE FROM games WHERE group_id = ?"},
		{"claim_requests", "DELETE FROM claim_requests WHERE group_id = ?"},
		{"group_members", "DELETE FROM group_members WHERE group_id = ?"},
		{"groups", "DELETE FROM groups WHERE id = ?"},
	}
	for _, st := range steps {
		if err := s.step("delete_group:" + st.name); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, st.query, groupID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", st.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AddGroupMember appends a membership.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID string, member models.GroupMember) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	return insertMember(ctx, s.db, groupID, member)
}

// RemoveGroupMember deletes a membership. Sessions are left untouched.
func (s *SQLiteStore) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return expectRows(res, "member", userID)
}

// UpdateMemberRole changes a member's role.
func (s *SQLiteStore) UpdateMemberRole(ctx context.Context, groupID, userID string, role models.Role) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE group_members SET role = ? WHERE group_id = ? AND user_id = ?",
		string(role), groupID, userID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to update member role: %w", storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return expectRows(res, "member", userID)
}

// UpdateMemberName changes a member's display name within the group.
func (s *SQLiteStore) UpdateMemberName(ctx context.Context, groupID, userID, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE group_members SET user_name = ? WHERE group_id = ? AND user_id = ?",
		name, groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member name: %w", err)
	}
	return expectRows(res, "member", userID)
}

func insertMember(ctx context.Context, q querier, groupID string, m models.GroupMember) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, user_name, joined_at, role) VALUES (?, ?, ?, ?, ?)",
		groupID, m.UserID, m.UserName, m.JoinedAt, string(m.Role),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to insert member %s: %w", m.UserID, storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func getGroup(ctx context.Context, q querier, where string, arg any) (*models.Group, error) {
	group := &models.Group{}
	var description sql.NullString
	err := q.QueryRowContext(ctx,
		"SELECT id, name, description, created_by, created_at, invite_code FROM groups WHERE "+where,
		arg,
	).Scan(&group.ID, &group.Name, &description, &group.CreatedBy, &group.CreatedAt, &group.InviteCode)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %v: %w", arg, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.Description = description.String

	members, err := listMembers(ctx, q, group.ID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

func listMembers(ctx context.Context, q querier, groupID string) ([]models.GroupMember, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT user_id, user_name, joined_at, role FROM group_members WHERE group_id = ? ORDER BY joined_at, user_name",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.GroupMember
	for rows.Next() {
		var m models.GroupMember
		var role string
		if err := rows.Scan(&m.UserID, &m.UserName, &m.JoinedAt, &role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Role = models.Role(role)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func expectRows(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
	}
	return nil
}
