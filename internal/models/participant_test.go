package models

import "testing"

func TestSessionParticipant(t *testing.T) {
	guestID := NewGuestID()

	tests := []struct {
		name      string
		sess      GameSession
		wantGuest bool
		wantKey   string
	}{
		{"registered", GameSession{PlayerName: "Uma", UserID: "u-1"}, false, "u-1"},
		{"name only", GameSession{PlayerName: " Bob "}, true, "bob"},
		{"guest id", GameSession{PlayerName: "Bob", UserID: guestID}, true, guestID},
		{"guest role with real id", GameSession{PlayerName: "Cy", UserID: "u-2", Role: SessionRoleGuest}, true, "u-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.sess.Participant()
			if p.IsGuest() != tt.wantGuest {
				t.Errorf("IsGuest() = %v, want %v", p.IsGuest(), tt.wantGuest)
			}
			if p.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", p.Key(), tt.wantKey)
			}
		})
	}
}

func TestGameSessionLookup(t *testing.T) {
	game := &Game{Sessions: []GameSession{
		NewSession("u-1", "Uma", 10, 20),
		NewSession("", "Bob", 10, 0),
	}}

	if s := game.Session(Guest("BOB")); s == nil || s.PlayerName != "Bob" {
		t.Errorf("Session(Guest(BOB)) = %+v", s)
	}
	if s := game.SessionFor("u-1"); s == nil || s.Profit != 10 {
		t.Errorf("SessionFor(u-1) = %+v", s)
	}
	if game.SessionFor("") != nil {
		t.Error("empty user id must not match guest sessions")
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to GameStatus
		want     bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusInProgress, StatusOpen, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusOpen, StatusCompleted, true},
		{StatusCompleted, StatusOpen, true},
		{StatusCompleted, StatusInProgress, false},
		{StatusOpen, StatusOpen, false},
		{GameStatus("paused"), StatusOpen, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestGroupRoles(t *testing.T) {
	g := &Group{CreatedBy: "o", Members: []GroupMember{
		{UserID: "o", Role: RoleOwner},
		{UserID: "a", Role: RoleAdmin},
		{UserID: "m", Role: RoleMember},
	}}
	if !g.IsOwner("o") || g.IsOwner("a") {
		t.Error("IsOwner mismatch")
	}
	if !g.CanManage("a") || g.CanManage("m") || g.CanManage("x") {
		t.Error("CanManage mismatch")
	}
	if g.Owner().UserID != "o" {
		t.Errorf("Owner() = %s", g.Owner().UserID)
	}
}
