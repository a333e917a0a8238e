package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	PayoutServiceName = Package + ".PayoutService"

	PayoutServiceRecordPayoutProcedure = "/" + PayoutServiceName + "/RecordPayout"
	PayoutServiceGetPayoutProcedure    = "/" + PayoutServiceName + "/GetPayout"
	PayoutServiceListPayoutsProcedure  = "/" + PayoutServiceName + "/ListPayouts"
)

// PayoutServiceHandler is implemented by the payout acknowledgement service.
type PayoutServiceHandler interface {
	RecordPayout(context.Context, *connect.Request[RecordPayoutRequest]) (*connect.Response[PayoutResponse], error)
	GetPayout(context.Context, *connect.Request[PayoutRequest]) (*connect.Response[PayoutResponse], error)
	ListPayouts(context.Context, *connect.Request[GameRequest]) (*connect.Response[ListPayoutsResponse], error)
}

// NewPayoutServiceHandler returns the path prefix and handler for svc.
func NewPayoutServiceHandler(svc PayoutServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	r := newRouter(opts)
	handle(r, PayoutServiceRecordPayoutProcedure, svc.RecordPayout)
	handle(r, PayoutServiceGetPayoutProcedure, svc.GetPayout)
	handle(r, PayoutServiceListPayoutsProcedure, svc.ListPayouts)
	return "/" + PayoutServiceName + "/", r.mux
}

// PayoutServiceClient calls a remote PayoutService.
type PayoutServiceClient struct{ c caller }

// NewPayoutServiceClient creates a client for the server at baseURL.
func NewPayoutServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PayoutServiceClient {
	return &PayoutServiceClient{c: newCaller(httpClient, baseURL, opts)}
}

func (p *PayoutServiceClient) RecordPayout(ctx context.Context, req *connect.Request[RecordPayoutRequest]) (*connect.Response[PayoutResponse], error) {
	return call[RecordPayoutRequest, PayoutResponse](ctx, p.c, PayoutServiceRecordPayoutProcedure, req)
}

func (p *PayoutServiceClient) GetPayout(ctx context.Context, req *connect.Request[PayoutRequest]) (*connect.Response[PayoutResponse], error) {
	return call[PayoutRequest, PayoutResponse](ctx, p.c, PayoutServiceGetPayoutProcedure, req)
}

func (p *PayoutServiceClient) ListPayouts(ctx context.Context, req *connect.Request[GameRequest]) (*connect.Response[ListPayoutsResponse], error) {
	return call[GameRequest, ListPayoutsResponse](ctx, p.c, PayoutServiceListPayoutsProcedure, req)
}
