package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	AuthServiceName = Package + ".AuthService"

	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"
)

// AuthServiceHandler is implemented by the account service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error)
	GetCurrentUser(context.Context, *connect.Request[Empty]) (*connect.Response[GetCurrentUserResponse], error)
}

// NewAuthServiceHandler returns the path prefix and handler for svc.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRouter(opts)
	handle(r, AuthServiceRegisterProcedure, svc.Register)
	handle(r, AuthServiceLoginProcedure, svc.Login)
	handle(r, AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser)
	return "/" + AuthServiceName + "/", r.mux
}

// AuthServiceClient calls a remote AuthService.
type AuthServiceClient struct{ c caller }

// NewAuthServiceClient creates a client for the server at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	return &AuthServiceClient{c: newCaller(httpClient, baseURL, opts)}
}

func (a *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[AuthResponse], error) {
	return call[RegisterRequest, AuthResponse](ctx, a.c, AuthServiceRegisterProcedure, req)
}

func (a *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[AuthResponse], error) {
	return call[LoginRequest, AuthResponse](ctx, a.c, AuthServiceLoginProcedure, req)
}

func (a *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[Empty]) (*connect.Response[GetCurrentUserResponse], error) {
	return call[Empty, GetCurrentUserResponse](ctx, a.c, AuthServiceGetCurrentUserProcedure, req)
}
