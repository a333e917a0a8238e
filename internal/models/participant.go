package models

// ParticipantKind distinguishes registered players from guests.
type ParticipantKind int

const (
	KindRegistered ParticipantKind = iota
	KindGuest
)

// Participant identifies who a session belongs to.
//
// A Registered participant always has a user id. A Guest participant always
// has a name and may also carry a user id (a synthetic guest id, or a real id
// tagged with SessionRoleGuest).
type Participant struct {
	Kind   ParticipantKind
	UserID string
	Name   string
}

// Registered returns the participant for an account holder.
func Registered(userID, name string) Participant {
	return Participant{Kind: KindRegistered, UserID: userID, Name: name}
}

// Guest returns the participant for a player tracked by name.
func Guest(name string) Participant {
	return Participant{Kind: KindGuest, Name: name}
}

// IsGuest reports whether the participant is a guest.
func (p Participant) IsGuest() bool {
	return p.Kind == KindGuest
}

// Key is the reconciliation key: the user id when one is present,
// otherwise the normalized player name.
func (p Participant) Key() string {
	if p.UserID != "" {
		return p.UserID
	}
	return NormalizeName(p.Name)
}

// SameIdentity reports whether p and other name the same player.
func (p Participant) SameIdentity(other Participant) bool {
	return p.Key() == other.Key()
}

// Participant classifies the session. A session is a guest session if it has
// no user id, its user id is a synthetic guest id, or it is tagged
// SessionRoleGuest.
func (s GameSession) Participant() Participant {
	if s.UserID == "" {
		return Guest(s.PlayerName)
	}
	if IsGuestID(s.UserID) || s.Role == SessionRoleGuest {
		return Participant{Kind: KindGuest, UserID: s.UserID, Name: s.PlayerName}
	}
	return Registered(s.UserID, s.PlayerName)
}
