package models

// PayoutAck records that a player acknowledged settling up after a game.
// It is advisory only and never checked against a payment system.
type PayoutAck struct {
	GameID string

	UserID string

	// CompletedAt is the Unix timestamp the player marked the payout done.
	CompletedAt int64

	// Method is how the money moved (e.g., "venmo", "cash").
	// Required for confirmation when the player lost money.
	Method string

	// Handle is the payment handle used with Method.
	Handle string

	// Confirmed is cleared whenever the game is reopened.
	Confirmed bool
}
