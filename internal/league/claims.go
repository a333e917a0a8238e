package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage"
)

// SubmitClaimRequest asks the group's owner and admins to recognize
// requesterID as the guest recorded under guestName. Resubmitting replaces the
// requester's pending claim for the same guest. The guest must appear in the
// group, either as a guest session or a guest placeholder member.
func (m *Manager) SubmitClaimRequest(ctx context.Context, groupID, guestName, requesterID, requesterEmail string) (*models.ClaimRequest, error) {
	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		return nil, invalid("guest_name", "required")
	}
	if requesterID == "" {
		return nil, invalid("requester_id", "required")
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	known, err := m.hasGuest(ctx, group, guestName)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("no guest named %q in this group: %w", guestName, ErrNotFound)
	}

	if strings.TrimSpace(requesterEmail) == "" {
		if id, err := m.resolver.Resolve(ctx, requesterID); err == nil {
			requesterEmail = id.Email
		}
	}

	req := &models.ClaimRequest{
		GroupID:        group.ID,
		GuestName:      guestName,
		RequesterID:    requesterID,
		RequesterEmail: strings.TrimSpace(requesterEmail),
		CreatedAt:      m.now().Unix(),
	}
	if err := m.store.SaveClaimRequest(ctx, req); err != nil {
		return nil, fromStorage(err, "submit claim")
	}
	return req, nil
}

// hasGuest reports whether guestName is a guest member of group or played as
// a guest in one of its games.
func (m *Manager) hasGuest(ctx context.Context, group *models.Group, guestName string) (bool, error) {
	key := models.NormalizeName(guestName)
	for _, member := range group.Members {
		if member.IsGuest() && models.NormalizeName(member.UserName) == key {
			return true, nil
		}
	}

	games, err := m.store.ListGamesByGroup(ctx, group.ID)
	if err != nil {
		return false, fromStorage(err, "list games")
	}
	for _, game := range games {
		for _, sess := range game.Sessions {
			p := sess.Participant()
			if p.IsGuest() && models.NormalizeName(p.Name) == key {
				return true, nil
			}
		}
	}
	return false, nil
}

// ApproveClaimRequest links the guest's history to the requester. Owner or
// admin only. The requester becomes a member named after the guest (keeping
// their role if already a member) and every guest session under that name is
// reassigned, all in one transaction. It returns the number of sessions
// reassigned.
func (m *Manager) ApproveClaimRequest(ctx context.Context, requestID, approverID string) (int, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	req, group, err := m.loadClaim(ctx, requestID, approverID, "approve claim")
	if err != nil {
		return 0, err
	}

	member := models.GroupMember{
		UserID:   req.RequesterID,
		UserName: req.GuestName,
		JoinedAt: m.now().Unix(),
		Role:     models.RoleMember,
	}
	n, err := m.store.ApproveClaimRequest(ctx, req.ID, member)
	switch {
	case errors.Is(err, storage.ErrStatusConflict):
		return 0, fmt.Errorf("approve claim: request is no longer pending: %w", ErrConflict)
	case err != nil:
		return 0, fromStorage(err, "approve claim")
	}

	slog.Info("Claim approved",
		"group_id", group.ID,
		"guest_name", req.GuestName,
		"requester_id", req.RequesterID,
		"sessions", n,
	)
	return n, nil
}

// DenyClaimRequest discards a pending claim. Owner or admin only.
func (m *Manager) DenyClaimRequest(ctx context.Context, requestID, approverID string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if _, _, err := m.loadClaim(ctx, requestID, approverID, "deny claim"); err != nil {
		return err
	}
	if err := m.store.DeleteClaimRequest(ctx, requestID); err != nil {
		return fromStorage(err, "deny claim")
	}
	return nil
}

func (m *Manager) loadClaim(ctx context.Context, requestID, approverID, action string) (*models.ClaimRequest, *models.Group, error) {
	if requestID == "" {
		return nil, nil, invalid("request_id", "required")
	}
	req, err := m.store.GetClaimRequest(ctx, requestID)
	if err != nil {
		return nil, nil, fromStorage(err, action)
	}
	group, err := m.loadGroup(ctx, req.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireManager(group, approverID, action); err != nil {
		return nil, nil, err
	}
	if req.Status != models.ClaimPending {
		return nil, nil, fmt.Errorf("%s: request is %s: %w", action, req.Status, ErrConflict)
	}
	return req, group, nil
}

// ListClaimRequests returns the group's pending claims. The owner and admins
// see every claim; anyone else sees only their own.
func (m *Manager) ListClaimRequests(ctx context.Context, groupID, viewerID string) ([]*models.ClaimRequest, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	group, err := m.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	claims, err := m.store.ListClaimRequests(ctx, group.ID, models.ClaimPending)
	if err != nil {
		return nil, fromStorage(err, "list claims")
	}
	if !group.CanManage(viewerID) {
		own := make([]*models.ClaimRequest, 0, len(claims))
		for _, c := range claims {
			if c.RequesterID == viewerID {
				own = append(own, c)
			}
		}
		claims = own
	}
	m.fillRequesterEmails(ctx, claims)
	return claims, nil
}

// fillRequesterEmails looks up contact emails for requests submitted without
// one, in a single batch. Lookup failures leave the email empty.
func (m *Manager) fillRequesterEmails(ctx context.Context, claims []*models.ClaimRequest) {
	var ids []string
	for _, c := range claims {
		if c.RequesterEmail == "" {
			ids = append(ids, c.RequesterID)
		}
	}
	if len(ids) == 0 {
		return
	}
	found, err := m.resolver.ResolveMany(ctx, ids)
	if err != nil {
		slog.Warn("Failed to resolve claim requesters", "count", len(ids), "error", err)
		return
	}
	for _, c := range claims {
		if c.RequesterEmail == "" {
			c.RequesterEmail = found[c.RequesterID].Email
		}
	}
}
