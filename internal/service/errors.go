package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/homegame/internal/auth"
	"github.com/mmynk/homegame/internal/league"
	"github.com/mmynk/homegame/internal/middleware"
)

// connectError maps a league error onto a Connect status. Storage failures
// and unclassified errors are logged and reported as internal.
func connectError(op string, err error) error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, league.ErrValidation):
		code = connect.CodeInvalidArgument
	case errors.Is(err, league.ErrForbidden):
		code = connect.CodePermissionDenied
	case errors.Is(err, league.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, league.ErrConflict):
		code = connect.CodeAlreadyExists
	case errors.Is(err, league.ErrGameState):
		code = connect.CodeFailedPrecondition
	}

	if code == connect.CodeInternal {
		slog.Error(op+" failed", "error", err)
	} else {
		slog.Warn(op+" rejected", "code", code, "error", err)
	}
	return connect.NewError(code, err)
}

// callerID returns the authenticated user of the request.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}
