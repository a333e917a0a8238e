package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	ClaimServiceName = Package + ".ClaimService"

	ClaimServiceSubmitClaimProcedure  = "/" + ClaimServiceName + "/SubmitClaim"
	ClaimServiceApproveClaimProcedure = "/" + ClaimServiceName + "/ApproveClaim"
	ClaimServiceDenyClaimProcedure    = "/" + ClaimServiceName + "/DenyClaim"
	ClaimServiceListClaimsProcedure   = "/" + ClaimServiceName + "/ListClaims"
)

// ClaimServiceHandler is implemented by the guest claim service.
type ClaimServiceHandler interface {
	SubmitClaim(context.Context, *connect.Request[SubmitClaimRequest]) (*connect.Response[ClaimResponse], error)
	ApproveClaim(context.Context, *connect.Request[ClaimIDRequest]) (*connect.Response[ApproveClaimResponse], error)
	DenyClaim(context.Context, *connect.Request[ClaimIDRequest]) (*connect.Response[Empty], error)
	ListClaims(context.Context, *connect.Request[GroupRequest]) (*connect.Response[ListClaimsResponse], error)
}

// NewClaimServiceHandler returns the path prefix and handler for svc.
func NewClaimServiceHandler(svc ClaimServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRouter(opts)
	handle(r, ClaimServiceSubmitClaimProcedure, svc.SubmitClaim)
	handle(r, ClaimServiceApproveClaimProcedure, svc.ApproveClaim)
	handle(r, ClaimServiceDenyClaimProcedure, svc.DenyClaim)
	handle(r, ClaimServiceListClaimsProcedure, svc.ListClaims)
	return "/" + ClaimServiceName + "/", r.mux
}

// ClaimServiceClient calls a remote ClaimService.
type ClaimServiceClient struct{ c caller }

// NewClaimServiceClient creates a client for the server at baseURL.
func NewClaimServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ClaimServiceClient {
	return &ClaimServiceClient{c: newCaller(httpClient, baseURL, opts)}
}

func (cl *ClaimServiceClient) SubmitClaim(ctx context.Context, req *connect.Request[SubmitClaimRequest]) (*connect.Response[ClaimResponse], error) {
	return call[SubmitClaimRequest, ClaimResponse](ctx, cl.c, ClaimServiceSubmitClaimProcedure, req)
}

func (cl *ClaimServiceClient) ApproveClaim(ctx context.Context, req *connect.Request[ClaimIDRequest]) (*connect.Response[ApproveClaimResponse], error) {
	return call[ClaimIDRequest, ApproveClaimResponse](ctx, cl.c, ClaimServiceApproveClaimProcedure, req)
}

func (cl *ClaimServiceClient) DenyClaim(ctx context.Context, req *connect.Request[ClaimIDRequest]) (*connect.Response[Empty], error) {
	return call[ClaimIDRequest, Empty](ctx, cl.c, ClaimServiceDenyClaimProcedure, req)
}

func (cl *ClaimServiceClient) ListClaims(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[ListClaimsResponse], error) {
	return call[GroupRequest, ListClaimsResponse](ctx, cl.c, ClaimServiceListClaimsProcedure, req)
}
