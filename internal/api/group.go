package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	GroupServiceName = Package + ".GroupService"

	GroupServiceCreateGroupProcedure      = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceJoinGroupProcedure        = "/" + GroupServiceName + "/JoinGroup"
	GroupServiceGetGroupProcedure         = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure       = "/" + GroupServiceName + "/ListGroups"
	GroupServiceRenameGroupProcedure      = "/" + GroupServiceName + "/RenameGroup"
	GroupServiceDeleteGroupProcedure      = "/" + GroupServiceName + "/DeleteGroup"
	GroupServiceAddGuestMemberProcedure   = "/" + GroupServiceName + "/AddGuestMember"
	GroupServiceRemoveMemberProcedure     = "/" + GroupServiceName + "/RemoveMember"
	GroupServicePromoteToAdminProcedure   = "/" + GroupServiceName + "/PromoteToAdmin"
	GroupServiceDemoteFromAdminProcedure  = "/" + GroupServiceName + "/DemoteFromAdmin"
	GroupServiceUpdateMemberNameProcedure = "/" + GroupServiceName + "/UpdateMemberName"
	GroupServiceGetInviteQRCodeProcedure  = "/" + GroupServiceName + "/GetInviteQRCode"
)

// GroupServiceHandler is implemented by the group and membership service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error)
	JoinGroup(context.Context, *connect.Request[JoinGroupRequest]) (*connect.Response[GroupResponse], error)
	GetGroup(context.Context, *connect.Request[GroupRequest]) (*connect.Response[GroupResponse], error)
	ListGroups(context.Context, *connect.Request[Empty]) (*connect.Response[ListGroupsResponse], error)
	RenameGroup(context.Context, *connect.Request[RenameGroupRequest]) (*connect.Response[GroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[GroupRequest]) (*connect.Response[Empty], error)
	AddGuestMember(context.Context, *connect.Request[AddGuestMemberRequest]) (*connect.Response[AddGuestMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[MemberRequest]) (*connect.Response[Empty], error)
	PromoteToAdmin(context.Context, *connect.Request[MemberRequest]) (*connect.Response[Empty], error)
	DemoteFromAdmin(context.Context, *connect.Request[MemberRequest]) (*connect.Response[Empty], error)
	UpdateMemberName(context.Context, *connect.Request[UpdateMemberNameRequest]) (*connect.Response[Empty], error)
	GetInviteQRCode(context.Context, *connect.Request[GroupRequest]) (*connect.Response[InviteQRCodeResponse], error)
}

// NewGroupServiceHandler returns the path prefix and handler for svc.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRouter(opts)
	handle(r, GroupServiceCreateGroupProcedure, svc.CreateGroup)
	handle(r, GroupServiceJoinGroupProcedure, svc.JoinGroup)
	handle(r, GroupServiceGetGroupProcedure, svc.GetGroup)
	handle(r, GroupServiceListGroupsProcedure, svc.ListGroups)
	handle(r, GroupServiceRenameGroupProcedure, svc.RenameGroup)
	handle(r, GroupServiceDeleteGroupProcedure, svc.DeleteGroup)
	handle(r, GroupServiceAddGuestMemberProcedure, svc.AddGuestMember)
	handle(r, GroupServiceRemoveMemberProcedure, svc.RemoveMember)
	handle(r, GroupServicePromoteToAdminProcedure, svc.PromoteToAdmin)
	handle(r, GroupServiceDemoteFromAdminProcedure, svc.DemoteFromAdmin)
	handle(r, GroupServiceUpdateMemberNameProcedure, svc.UpdateMemberName)
	handle(r, GroupServiceGetInviteQRCodeProcedure, svc.GetInviteQRCode)
	return "/" + GroupServiceName + "/", r.mux
}

// GroupServiceClient calls a remote GroupService.
type GroupServiceClient struct{ c caller }

// NewGroupServiceClient creates a client for the server at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	return &GroupServiceClient{c: newCaller(httpClient, baseURL, opts)}
}

func (g *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error) {
	return call[CreateGroupRequest, GroupResponse](ctx, g.c, GroupServiceCreateGroupProcedure, req)
}

func (g *GroupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[JoinGroupRequest]) (*connect.Response[GroupResponse], error) {
	return call[JoinGroupRequest, GroupResponse](ctx, g.c, GroupServiceJoinGroupProcedure, req)
}

func (g *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[GroupResponse], error) {
	return call[GroupRequest, GroupResponse](ctx, g.c, GroupServiceGetGroupProcedure, req)
}

func (g *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[ListGroupsResponse], error) {
	return call[Empty, ListGroupsResponse](ctx, g.c, GroupServiceListGroupsProcedure, req)
}

func (g *GroupServiceClient) RenameGroup(ctx context.Context, req *connect.Request[RenameGroupRequest]) (*connect.Response[GroupResponse], error) {
	return call[RenameGroupRequest, GroupResponse](ctx, g.c, GroupServiceRenameGroupProcedure, req)
}

func (g *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[Empty], error) {
	return call[GroupRequest, Empty](ctx, g.c, GroupServiceDeleteGroupProcedure, req)
}

func (g *GroupServiceClient) AddGuestMember(ctx context.Context, req *connect.Request[AddGuestMemberRequest]) (*connect.Response[AddGuestMemberResponse], error) {
	return call[AddGuestMemberRequest, AddGuestMemberResponse](ctx, g.c, GroupServiceAddGuestMemberProcedure, req)
}

func (g *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[MemberRequest]) (*connect.Response[Empty], error) {
	return call[MemberRequest, Empty](ctx, g.c, GroupServiceRemoveMemberProcedure, req)
}

func (g *GroupServiceClient) PromoteToAdmin(ctx context.Context, req *connect.Request[MemberRequest]) (*connect.Response[Empty], error) {
	return call[MemberRequest, Empty](ctx, g.c, GroupServicePromoteToAdminProcedure, req)
}

func (g *GroupServiceClient) DemoteFromAdmin(ctx context.Context, req *connect.Request[MemberRequest]) (*connect.Response[Empty], error) {
	return call[MemberRequest, Empty](ctx, g.c, GroupServiceDemoteFromAdminProcedure, req)
}

func (g *GroupServiceClient) UpdateMemberName(ctx context.Context, req *connect.Request[UpdateMemberNameRequest]) (*connect.Response[Empty], error) {
	return call[UpdateMemberNameRequest, Empty](ctx, g.c, GroupServiceUpdateMemberNameProcedure, req)
}

func (g *GroupServiceClient) GetInviteQRCode(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[InviteQRCodeResponse], error) {
	return call[GroupRequest, InviteQRCodeResponse](ctx, g.c, GroupServiceGetInviteQRCodeProcedure, req)
}
