package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Package is the protocol package prefix of every procedure.
const Package = "homegame.v1"

// router collects the unary handlers of one service.
type router struct {
	mux  *http.ServeMux
	opts []connect.HandlerOption
}

func newRouter(opts []connect.HandlerOption) router {
	return router{
		mux:  http.NewServeMux(),
		opts: append([]connect.HandlerOption{WithJSON()}, opts...),
	}
}

func handle[Req, Res any](r router, procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error)) {
	r.mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, r.opts...))
}

// caller issues unary calls against one server.
type caller struct {
	httpClient connect.HTTPClient
	baseURL    string
	opts       []connect.ClientOption
}

func newCaller(httpClient connect.HTTPClient, baseURL string, opts []connect.ClientOption) caller {
	return caller{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		opts:       append([]connect.ClientOption{WithJSON()}, opts...),
	}
}

func call[Req, Res any](ctx context.Context, c caller, procedure string, req *connect.Request[Req]) (*connect.Response[Res], error) {
	return connect.NewClient[Req, Res](c.httpClient, c.baseURL+procedure, c.opts...).CallUnary(ctx, req)
}
