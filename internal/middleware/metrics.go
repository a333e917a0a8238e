package middleware

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "homegame",
		Name:      "rpc_requests_total",
		Help:      "RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})

	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "homegame",
		Name:      "rpc_duration_seconds",
		Help:      "RPC handling latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})
)

// MetricsInterceptor records call counts and latency for every RPC.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			start := time.Now()

			resp, err := next(ctx, req)

			rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			rpcRequests.WithLabelValues(procedure, codeOf(err)).Inc()
			return resp, err
		}
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}
