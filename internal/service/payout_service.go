package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/homegame/internal/api"
	"github.com/mmynk/homegame/internal/league"
	"github.com/mmynk/homegame/internal/models"
)

// PayoutService implements the Connect PayoutService.
type PayoutService struct {
	league *league.Manager
}

var _ api.PayoutServiceHandler = (*PayoutService)(nil)

// NewPayoutService creates a PayoutService.
func NewPayoutService(m *league.Manager) *PayoutService {
	return &PayoutService{league: m}
}

// RecordPayout stores the caller's payout acknowledgement for a game.
func (s *PayoutService) RecordPayout(ctx context.Context, req *connect.Request[api.RecordPayoutRequest]) (*connect.Response[api.PayoutResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RecordPayout request received",
		"game_id", req.Msg.GameID,
		"user_id", userID,
		"confirmed", req.Msg.Confirmed,
	)

	ack, err := s.league.RecordPayout(ctx, req.Msg.GameID, userID, models.PayoutAck{
		Method:    req.Msg.Method,
		Handle:    req.Msg.Handle,
		Confirmed: req.Msg.Confirmed,
	})
	if err != nil {
		return nil, connectError("RecordPayout", err)
	}
	return connect.NewResponse(&api.PayoutResponse{Ack: toPayoutAck(ack)}), nil
}

// GetPayout returns one player's acknowledgement. Unrecorded payouts come
// back unconfirmed.
func (s *PayoutService) GetPayout(ctx context.Context, req *connect.Request[api.PayoutRequest]) (*connect.Response[api.PayoutResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	target := req.Msg.UserID
	if target == "" {
		target = userID
	}

	ack, err := s.league.GetPayout(ctx, req.Msg.GameID, target, userID)
	if err != nil {
		return nil, connectError("GetPayout", err)
	}
	return connect.NewResponse(&api.PayoutResponse{Ack: toPayoutAck(ack)}), nil
}

// ListPayouts returns the acknowledgements the caller may see for a game.
func (s *PayoutService) ListPayouts(ctx context.Context, req *connect.Request[api.GameRequest]) (*connect.Response[api.ListPayoutsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	acks, err := s.league.ListPayouts(ctx, req.Msg.GameID, userID)
	if err != nil {
		return nil, connectError("ListPayouts", err)
	}

	out := make([]api.PayoutAck, len(acks))
	for i, a := range acks {
		out[i] = toPayoutAck(a)
	}
	return connect.NewResponse(&api.ListPayoutsResponse{Acks: out}), nil
}
