package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/homegame/internal/api"
	"github.com/mmynk/homegame/internal/invite"
	"github.com/mmynk/homegame/internal/league"
)

// GroupService implements the Connect GroupService.
type GroupService struct {
	league    *league.Manager
	publicURL string
}

var _ api.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a GroupService. publicURL is the site address
// encoded in invite QR codes.
func NewGroupService(m *league.Manager, publicURL string) *GroupService {
	return &GroupService{league: m, publicURL: publicURL}
}

// CreateGroup creates a group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received", "name", req.Msg.Name, "user_id", userID)

	group, err := s.league.CreateGroup(ctx, req.Msg.Name, req.Msg.Description, userID, req.Msg.OwnerName)
	if err != nil {
		return nil, connectError("CreateGroup", err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.GroupResponse{Group: toGroup(group)}), nil
}

// JoinGroup adds the caller to the group with the given invite code.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("JoinGroup request received", "user_id", userID)

	group, err := s.league.JoinGroup(ctx, req.Msg.InviteCode, userID, req.Msg.UserName)
	if err != nil {
		return nil, connectError("JoinGroup", err)
	}

	slog.Info("Group joined", "group_id", group.ID, "user_id", userID)
	return connect.NewResponse(&api.GroupResponse{Group: toGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.league.GetGroup(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, connectError("GetGroup", err)
	}
	return connect.NewResponse(&api.GroupResponse{Group: toGroup(group)}), nil
}

// ListGroups retrieves the caller's groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.league.ListGroups(ctx, userID)
	if err != nil {
		return nil, connectError("ListGroups", err)
	}

	out := make([]api.Group, len(groups))
	for i, g := range groups {
		out[i] = toGroup(g)
	}
	slog.Info("ListGroups successful", "user_id", userID, "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// RenameGroup changes a group's name and description.
func (s *GroupService) RenameGroup(ctx context.Context, req *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RenameGroup request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	group, err := s.league.RenameGroup(ctx, req.Msg.GroupID, req.Msg.Name, req.Msg.Description, userID)
	if err != nil {
		return nil, connectError("RenameGroup", err)
	}
	return connect.NewResponse(&api.GroupResponse{Group: toGroup(group)}), nil
}

// DeleteGroup removes a group with all of its games and claims.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.GroupRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := s.league.DeleteGroup(ctx, req.Msg.GroupID, userID); err != nil {
		return nil, connectError("DeleteGroup", err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// AddGuestMember adds a placeholder member for a player without an account.
func (s *GroupService) AddGuestMember(ctx context.Context, req *connect.Request[api.AddGuestMemberRequest]) (*connect.Response[api.AddGuestMemberResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddGuestMember request received", "group_id", req.Msg.GroupID, "guest_name", req.Msg.GuestName)

	member, warning, err := s.league.AddGuestMember(ctx, req.Msg.GroupID, req.Msg.GuestName, userID)
	if err != nil {
		return nil, connectError("AddGuestMember", err)
	}
	if warning != "" {
		slog.Warn("Guest name already in use", "group_id", req.Msg.GroupID, "guest_name", req.Msg.GuestName)
	}
	return connect.NewResponse(&api.AddGuestMemberResponse{Member: toMember(member), Warning: warning}), nil
}

// RemoveMember removes a member from a group.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.MemberRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.UserID)

	if err := s.league.RemoveGroupMember(ctx, req.Msg.GroupID, req.Msg.UserID, userID); err != nil {
		return nil, connectError("RemoveMember", err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// PromoteToAdmin grants a member the admin role.
func (s *GroupService) PromoteToAdmin(ctx context.Context, req *connect.Request[api.MemberRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.league.PromoteToAdmin(ctx, req.Msg.GroupID, req.Msg.UserID, userID); err != nil {
		return nil, connectError("PromoteToAdmin", err)
	}
	slog.Info("Member promoted", "group_id", req.Msg.GroupID, "member_id", req.Msg.UserID)
	return connect.NewResponse(&api.Empty{}), nil
}

// DemoteFromAdmin returns an admin to the member role.
func (s *GroupService) DemoteFromAdmin(ctx context.Context, req *connect.Request[api.MemberRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.league.DemoteFromAdmin(ctx, req.Msg.GroupID, req.Msg.UserID, userID); err != nil {
		return nil, connectError("DemoteFromAdmin", err)
	}
	slog.Info("Admin demoted", "group_id", req.Msg.GroupID, "member_id", req.Msg.UserID)
	return connect.NewResponse(&api.Empty{}), nil
}

// UpdateMemberName renames a member within the group.
func (s *GroupService) UpdateMemberName(ctx context.Context, req *connect.Request[api.UpdateMemberNameRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.league.UpdateGroupMemberName(ctx, req.Msg.GroupID, req.Msg.UserID, req.Msg.Name, userID); err != nil {
		return nil, connectError("UpdateMemberName", err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// GetInviteQRCode renders the group's join link.
func (s *GroupService) GetInviteQRCode(ctx context.Context, req *connect.Request[api.GroupRequest]) (*connect.Response[api.InviteQRCodeResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	png, err := s.league.InviteQRCode(ctx, req.Msg.GroupID, userID, s.publicURL)
	if err != nil {
		return nil, connectError("GetInviteQRCode", err)
	}
	group, err := s.league.GetGroup(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, connectError("GetInviteQRCode", err)
	}

	return connect.NewResponse(&api.InviteQRCodeResponse{
		InviteCode: group.InviteCode,
		JoinURL:    invite.JoinURL(s.publicURL, group.InviteCode),
		PNG:        png,
	}), nil
}
