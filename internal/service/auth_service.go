package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/homegame/internal/api"
	"github.com/mmynk/homegame/internal/auth"
	"github.com/mmynk/homegame/internal/models"
)

// UserLookup loads accounts for GetCurrentUser.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         UserLookup
	logger        *slog.Logger
}

var _ api.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users UserLookup, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new user account and signs them in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if strings.TrimSpace(req.Msg.Email) == "" || strings.TrimSpace(req.Msg.DisplayName) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email and display_name are required"))
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		s.logger.Error("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp, err := s.signIn(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered", "user_id", user.ID)
	return resp, nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	resp, err := s.signIn(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in", "user_id", user.ID)
	return resp, nil
}

func (s *AuthService) signIn(user *models.User) (*connect.Response[api.AuthResponse], error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.AuthResponse{User: toUser(user), Token: token}), nil
}

// GetCurrentUser returns the authenticated caller's account.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.Empty]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error("GetCurrentUser failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if user == nil {
		// Token outlived the account.
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: toUser(user)}), nil
}
