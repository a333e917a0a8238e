package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage"
)

const claimColumns = "id, group_id, guest_name, requester_id, requester_email, status, created_at"

// SaveClaimRequest stores a pending claim, replacing any pending claim for the
// same group, guest and requester.
func (s *SQLiteStore) SaveClaimRequest(ctx context.Context, req *models.ClaimRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.CreatedAt == 0 {
		req.CreatedAt = time.Now().Unix()
	}
	req.Status = models.ClaimPending

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM claim_requests
		 WHERE group_id = ? AND guest_key = ? AND requester_id = ? AND status = ?`,
		req.GroupID, models.NormalizeName(req.GuestName), req.RequesterID, string(models.ClaimPending),
	)
	if err != nil {
		return fmt.Errorf("failed to replace claim request: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO claim_requests (id, group_id, guest_name, guest_key, requester_id, requester_email, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.GroupID, req.GuestName, models.NormalizeName(req.GuestName),
		req.RequesterID, nullable(req.RequesterEmail), string(req.Status), req.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to insert claim request: %w", storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert claim request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetClaimRequest retrieves a claim request by ID.
func (s *SQLiteStore) GetClaimRequest(ctx context.Context, requestID string) (*models.ClaimRequest, error) {
	return getClaim(ctx, s.db, requestID)
}

// ListClaimRequests retrieves a group's claims with the given status, oldest first.
func (s *SQLiteStore) ListClaimRequests(ctx context.Context, groupID string, status models.ClaimStatus) ([]*models.ClaimRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+claimColumns+" FROM claim_requests WHERE group_id = ? AND status = ? ORDER BY created_at",
		groupID, string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list claim requests: %w", err)
	}
	defer rows.Close()

	var claims []*models.ClaimRequest
	for rows.Next() {
		req, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim request: %w", err)
		}
		claims = append(claims, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claim requests: %w", err)
	}
	return claims, nil
}

// DeleteClaimRequest removes a claim request by ID.
func (s *SQLiteStore) DeleteClaimRequest(ctx context.Context, requestID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM claim_requests WHERE id = ?", requestID)
	if err != nil {
		return fmt.Errorf("failed to delete claim request: %w", err)
	}
	return expectRows(res, "claim request", requestID)
}

// ApproveClaimRequest links a guest's history to member.UserID.
//
// In one transaction it upserts the requester's membership, drops guest
// placeholder members carrying the guest's name, rewrites every guest session
// of the group recorded under that name or a dropped placeholder id, and marks
// the request approved. Any failure rolls all of it back.
func (s *SQLiteStore) ApproveClaimRequest(ctx context.Context, requestID string, member models.GroupMember) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	req, err := getClaim(ctx, tx, requestID)
	if err != nil {
		return 0, err
	}
	if req.Status != models.ClaimPending {
		return 0, fmt.Errorf("claim request %s is %s: %w", requestID, req.Status, storage.ErrStatusConflict)
	}
	guestKey := models.NormalizeName(req.GuestName)

	// Membership
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id, user_name, joined_at, role)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, user_id) DO UPDATE SET user_name = excluded.user_name`,
		req.GroupID, member.UserID, member.UserName, member.JoinedAt, string(member.Role),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert member: %w", err)
	}
	if err := s.step("approve_claim:member"); err != nil {
		return 0, err
	}

	// Guest placeholders with the claimed name
	members, err := listMembers(ctx, tx, req.GroupID)
	if err != nil {
		return 0, err
	}
	placeholderIDs := make(map[string]bool)
	for _, m := range members {
		if m.IsGuest() && models.NormalizeName(m.UserName) == guestKey {
			placeholderIDs[m.UserID] = true
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM group_members WHERE group_id = ? AND user_id = ?",
				req.GroupID, m.UserID,
			); err != nil {
				return 0, fmt.Errorf("failed to remove guest placeholder: %w", err)
			}
		}
	}

	// Sessions
	rows, err := tx.QueryContext(ctx,
		`SELECT s.id, s.player_name, s.user_id, s.role
		 FROM game_sessions s JOIN games g ON g.id = s.game_id
		 WHERE g.group_id = ?
		 ORDER BY s.id`,
		req.GroupID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to query sessions: %w", err)
	}
	var targets []int64
	for rows.Next() {
		var rowID int64
		var sess models.GameSession
		var userID, role sql.NullString
		if err := rows.Scan(&rowID, &sess.PlayerName, &userID, &role); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.UserID = userID.String
		sess.Role = models.SessionRole(role.String)

		p := sess.Participant()
		if !p.IsGuest() {
			continue
		}
		if models.NormalizeName(sess.PlayerName) == guestKey || placeholderIDs[sess.UserID] {
			targets = append(targets, rowID)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	for _, rowID := range targets {
		_, err := tx.ExecContext(ctx,
			"UPDATE game_sessions SET user_id = ?, role = NULL WHERE id = ?",
			member.UserID, rowID,
		)
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("requester already has a session in a claimed game: %w", storage.ErrDuplicate)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to rewrite session: %w", err)
		}
		if err := s.step("approve_claim:session"); err != nil {
			return 0, err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE claim_requests SET status = ? WHERE id = ?",
		string(models.ClaimApproved), requestID,
	); err != nil {
		return 0, fmt.Errorf("failed to mark claim approved: %w", err)
	}
	if err := s.step("approve_claim:status"); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(targets), nil
}

func getClaim(ctx context.Context, q querier, requestID string) (*models.ClaimRequest, error) {
	row := q.QueryRowContext(ctx, "SELECT "+claimColumns+" FROM claim_requests WHERE id = ?", requestID)
	req, err := scanClaim(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("claim request %s: %w", requestID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get claim request: %w", err)
	}
	return req, nil
}

func scanClaim(row scanner) (*models.ClaimRequest, error) {
	req := &models.ClaimRequest{}
	var email sql.NullString
	var status string
	if err := row.Scan(&req.ID, &req.GroupID, &req.GuestName, &req.RequesterID, &email, &status, &req.CreatedAt); err != nil {
		return nil, err
	}
	req.RequesterEmail = email.String
	req.Status = models.ClaimStatus(status)
	return req, nil
}
