package models

// GameStatus is the lifecycle state of a game.
type GameStatus string

const (
	StatusOpen       GameStatus = "open"
	StatusInProgress GameStatus = "in-progress"
	StatusCompleted  GameStatus = "completed"
)

// CanTransition reports whether a game may move from one status to another.
//
//	open ⇄ in-progress -> completed ⇄ open
//	open -> completed
func CanTransition(from, to GameStatus) bool {
	switch from {
	case StatusOpen:
		return to == StatusInProgress || to == StatusCompleted
	case StatusInProgress:
		return to == StatusOpen || to == StatusCompleted
	case StatusCompleted:
		return to == StatusOpen
	}
	return false
}

// Valid reports whether s is a known status.
func (s GameStatus) Valid() bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusCompleted
}

// Game is one poker night within a group.
type Game struct {
	// ID is the unique identifier for the game (UUID format).
	ID string

	GroupID string

	// Date is the Unix timestamp of the day the game was played.
	Date int64

	Notes string

	// CreatedBy is the user ID who scheduled the game.
	CreatedBy string

	CreatedAt int64

	Status GameStatus

	Sessions []GameSession
}

// SessionRole is an explicit tag on a session. The only tag is SessionRoleGuest,
// used for claimed-but-not-member players who carry a user id.
type SessionRole string

const SessionRoleGuest SessionRole = "guest"

// GameSession is one participant's record within a game.
type GameSession struct {
	// PlayerName is the name recorded at the time of play. It is history and
	// is never rewritten by member renames.
	PlayerName string

	BuyIn     float64
	EndAmount float64

	// Profit is EndAmount - BuyIn, persisted alongside the amounts.
	Profit float64

	// UserID is empty for one-time participants tracked by name only.
	UserID string

	Role SessionRole
}

// NewSession builds a session with a consistent Profit.
func NewSession(userID, playerName string, buyIn, endAmount float64) GameSession {
	s := GameSession{
		PlayerName: playerName,
		UserID:     userID,
		BuyIn:      buyIn,
		EndAmount:  endAmount,
	}
	s.Recompute()
	return s
}

// Recompute refreshes the derived Profit field.
func (s *GameSession) Recompute() {
	s.Profit = s.EndAmount - s.BuyIn
}

// Lost reports whether the player cashed out for less than they bought in.
func (s GameSession) Lost() bool {
	return s.EndAmount < s.BuyIn
}

// Session returns the session for participant p, or nil.
func (g *Game) Session(p Participant) *GameSession {
	for i := range g.Sessions {
		if g.Sessions[i].Participant().SameIdentity(p) {
			return &g.Sessions[i]
		}
	}
	return nil
}

// SessionFor returns userID's session, or nil.
func (g *Game) SessionFor(userID string) *GameSession {
	if userID == "" {
		return nil
	}
	for i := range g.Sessions {
		if g.Sessions[i].UserID == userID {
			return &g.Sessions[i]
		}
	}
	return nil
}
