package league

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/homegame/internal/storage"
)

// Error kinds. Every error returned by a Manager matches exactly one of these
// with errors.Is.
var (
	ErrValidation = errors.New("invalid argument")
	ErrForbidden  = errors.New("permission denied")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrGameState  = errors.New("game status does not allow this operation")
	ErrStorage    = errors.New("storage failure")

	// ErrAlreadyMember is the Conflict returned when joining a group twice.
	ErrAlreadyMember = fmt.Errorf("already a member of this group: %w", ErrConflict)
)

// ValidationError reports which input field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func forbidden(action string) error {
	return fmt.Errorf("%s: %w", action, ErrForbidden)
}

// fromStorage maps a storage error onto the league's error kinds.
func fromStorage(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, storage.ErrDuplicate):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	case errors.Is(err, storage.ErrStatusConflict):
		return fmt.Errorf("%s: %w", what, ErrGameState)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: timed out: %w", what, ErrStorage)
	default:
		return fmt.Errorf("%s: %w: %w", what, ErrStorage, err)
	}
}
