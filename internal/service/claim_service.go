package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/homegame/internal/api"
	"github.com/mmynk/homegame/internal/league"
	"github.com/mmynk/homegame/internal/middleware"
)

// ClaimService implements the Connect ClaimService.
type ClaimService struct {
	league *league.Manager
}

var _ api.ClaimServiceHandler = (*ClaimService)(nil)

// NewClaimService creates a ClaimService.
func NewClaimService(m *league.Manager) *ClaimService {
	return &ClaimService{league: m}
}

// SubmitClaim asks a group's managers to link the caller to a guest's history.
func (s *ClaimService) SubmitClaim(ctx context.Context, req *connect.Request[api.SubmitClaimRequest]) (*connect.Response[api.ClaimResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SubmitClaim request received",
		"group_id", req.Msg.GroupID,
		"guest_name", req.Msg.GuestName,
		"user_id", userID,
	)

	email := req.Msg.Email
	if email == "" {
		email = middleware.GetEmail(ctx)
	}
	claim, err := s.league.SubmitClaimRequest(ctx, req.Msg.GroupID, req.Msg.GuestName, userID, email)
	if err != nil {
		return nil, connectError("SubmitClaim", err)
	}

	slog.Info("Claim submitted", "request_id", claim.ID)
	return connect.NewResponse(&api.ClaimResponse{Claim: toClaim(claim)}), nil
}

// ApproveClaim links the guest's sessions to the requester.
func (s *ClaimService) ApproveClaim(ctx context.Context, req *connect.Request[api.ClaimIDRequest]) (*connect.Response[api.ApproveClaimResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ApproveClaim request received", "request_id", req.Msg.RequestID, "user_id", userID)

	n, err := s.league.ApproveClaimRequest(ctx, req.Msg.RequestID, userID)
	if err != nil {
		return nil, connectError("ApproveClaim", err)
	}

	slog.Info("Claim approved", "request_id", req.Msg.RequestID, "sessions_updated", n)
	return connect.NewResponse(&api.ApproveClaimResponse{SessionsUpdated: n}), nil
}

// DenyClaim discards a pending claim.
func (s *ClaimService) DenyClaim(ctx context.Context, req *connect.Request[api.ClaimIDRequest]) (*connect.Response[api.Empty], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DenyClaim request received", "request_id", req.Msg.RequestID, "user_id", userID)

	if err := s.league.DenyClaimRequest(ctx, req.Msg.RequestID, userID); err != nil {
		return nil, connectError("DenyClaim", err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ListClaims returns a group's pending claims.
func (s *ClaimService) ListClaims(ctx context.Context, req *connect.Request[api.GroupRequest]) (*connect.Response[api.ListClaimsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	claims, err := s.league.ListClaimRequests(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, connectError("ListClaims", err)
	}

	out := make([]api.Claim, len(claims))
	for i, c := range claims {
		out[i] = toClaim(c)
	}
	return connect.NewResponse(&api.ListClaimsResponse{Claims: out}), nil
}
