package league

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/homegame/internal/models"
)

func (f *fixture) newGame(t *testing.T, group *models.Group) *models.Game {
	t.Helper()
	game, err := f.m.CreateGame(context.Background(), group.ID, 1700000000, "", f.id("owner"))
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	return game
}

func TestGameLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	group := f.newGroup(t)
	owner, admin, uma := f.id("owner"), f.id("admin"), f.id("uma")

	t.Run("members cannot schedule games", func(t *testing.T) {
		if _, err := f.m.CreateGame(ctx, group.ID, 0, "", uma); !errors.Is(err, ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("open to in-progress to open to completed to open", func(t *testing.T) {
		game := f.newGame(t, group)
		if game.Status != models.StatusOpen {
			t.Fatalf("Status = %s, want open", game.Status)
		}

		steps := []struct {
			name string
			do   func(context.Context, string, string) (*models.Game, error)
			want models.GameStatus
		}{
			{"start", f.m.StartGame, models.StatusInProgress},
			{"pause", f.m.PauseGame, models.StatusOpen},
			{"start again", f.m.StartGame, models.StatusInProgress},
			{"close", f.m.CloseGame, models.StatusCompleted},
			{"reopen", f.m.ReopenGame, models.StatusOpen},
			{"close from open", f.m.CloseGame, models.StatusCompleted},
		}
		for _, step := range steps {
			got, err := step.do(ctx, game.ID, admin)
			if err != nil {
				t.Fatalf("%s failed: %v", step.name, err)
			}
			if got.Status != step.want {
				t.Fatalf("%s: Status = %s, want %s", step.name, got.Status, step.want)
			}
			stored, _ := f.store.GetGame(ctx, game.ID)
			if stored.Status != step.want {
				t.Fatalf("%s: stored Status = %s, want %s", step.name, stored.Status, step.want)
			}
		}
	})

	t.Run("illegal transitions fail with GameState", func(t *testing.T) {
		game := f.newGame(t, group)
		if _, err := f.m.PauseGame(ctx, game.ID, owner); !errors.Is(err, ErrGameState) {
			t.Errorf("pause open err = %v, want ErrGameState", err)
		}
		if _, err := f.m.ReopenGame(ctx, game.ID, owner); !errors.Is(err, ErrGameState) {
			t.Errorf("reopen open err = %v, want ErrGameState", err)
		}
		if _, err := f.m.CloseGame(ctx, game.ID, owner); err != nil {
			t.Fatalf("CloseGame failed: %v", err)
		}
		if _, err := f.m.StartGame(ctx, game.ID, owner); !errors.Is(err, ErrGameState) {
			t.Errorf("start completed err = %v, want ErrGameState", err)
		}
	})

	t.Run("members cannot change status", func(t *testing.T) {
		game := f.newGame(t, group)
		if _, err := f.m.StartGame(ctx, game.ID, uma); !errors.Is(err, ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("delete game", func(t *testing.T) {
		game := f.newGame(t, group)
		if err := f.m.DeleteGame(ctx, game.ID, uma); !errors.Is(err, ErrForbidden) {
			t.Errorf("member DeleteGame err = %v, want ErrForbidden", err)
		}
		if err := f.m.DeleteGame(ctx, game.ID, admin); err != nil {
			t.Fatalf("DeleteGame failed: %v", err)
		}
		if _, err := f.m.GetGame(ctx, game.ID, owner); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetGame err = %v, want ErrNotFound", err)
		}
	})
}

func TestUpdateGameSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	group := f.newGroup(t)
	owner, uma, vic := f.id("owner"), f.id("uma"), f.id("vic")

	t.Run("upsert is idempotent and profit is consistent", func(t *testing.T) {
		game := f.newGame(t, group)
		in := SessionInput{GameID: game.ID, UserID: uma, BuyIn: 50, EndAmount: 80}
		for i := 0; i < 2; i++ {
			if _, err := f.m.UpdateGameSession(ctx, in, uma); err != nil {
				t.Fatalf("UpdateGameSession #%d failed: %v", i+1, err)
			}
		}
		in.EndAmount = 10
		if _, err := f.m.UpdateGameSession(ctx, in, owner); err != nil {
			t.Fatalf("owner correction failed: %v", err)
		}

		got, _ := f.store.GetGame(ctx, game.ID)
		if len(got.Sessions) != 1 {
			t.Fatalf("sessions = %d, want 1", len(got.Sessions))
		}
		s := got.Sessions[0]
		if s.Profit != s.EndAmount-s.BuyIn || s.Profit != -40 {
			t.Errorf("session = %+v, want profit -40", s)
		}
		if s.PlayerName != "Uma" {
			t.Errorf("PlayerName = %q, want member name", s.PlayerName)
		}
	})

	t.Run("guest sessions match by name", func(t *testing.T) {
		game := f.newGame(t, group)
		for _, name := range []string{"Bob", " bob"} {
			in := SessionInput{GameID: game.ID, PlayerName: name, BuyIn: 20, EndAmount: 5}
			if _, err := f.m.UpdateGameSession(ctx, in, owner); err != nil {
				t.Fatalf("UpdateGameSession(%q) failed: %v", name, err)
			}
		}
		got, _ := f.store.GetGame(ctx, game.ID)
		if len(got.Sessions) != 1 {
			t.Errorf("sessions = %d, want 1", len(got.Sessions))
		}
	})

	t.Run("validation", func(t *testing.T) {
		game := f.newGame(t, group)
		tests := []struct {
			in    SessionInput
			field string
		}{
			{SessionInput{GameID: game.ID, UserID: uma, BuyIn: -1}, "buy_in"},
			{SessionInput{GameID: game.ID, UserID: uma, EndAmount: -5}, "end_amount"},
			{SessionInput{GameID: game.ID}, "player_name"},
			{SessionInput{UserID: uma}, "game_id"},
		}
		for _, tt := range tests {
			_, err := f.m.UpdateGameSession(ctx, tt.in, owner)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("err = %v, want ValidationError on %s", err, tt.field)
			}
		}
	})

	t.Run("members edit only their own session", func(t *testing.T) {
		game := f.newGame(t, group)
		in := SessionInput{GameID: game.ID, UserID: owner, BuyIn: 10}
		if _, err := f.m.UpdateGameSession(ctx, in, uma); !errors.Is(err, ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("in-progress allows only owner and admin corrections", func(t *testing.T) {
		game := f.newGame(t, group)
		if _, err := f.m.StartGame(ctx, game.ID, owner); err != nil {
			t.Fatalf("StartGame failed: %v", err)
		}
		in := SessionInput{GameID: game.ID, UserID: uma, BuyIn: 10}
		if _, err := f.m.UpdateGameSession(ctx, in, uma); !errors.Is(err, ErrGameState) {
			t.Errorf("member edit err = %v, want ErrGameState", err)
		}
		if _, err := f.m.UpdateGameSession(ctx, in, f.id("admin")); err != nil {
			t.Errorf("admin correction failed: %v", err)
		}
	})

	t.Run("completed game rejects edits and leaves sessions unchanged", func(t *testing.T) {
		game := f.newGame(t, group)
		in := SessionInput{GameID: game.ID, UserID: uma, BuyIn: 10, EndAmount: 30}
		if _, err := f.m.UpdateGameSession(ctx, in, owner); err != nil {
			t.Fatalf("UpdateGameSession failed: %v", err)
		}
		if _, err := f.m.CloseGame(ctx, game.ID, owner); err != nil {
			t.Fatalf("CloseGame failed: %v", err)
		}

		in.EndAmount = 0
		if _, err := f.m.UpdateGameSession(ctx, in, owner); !errors.Is(err, ErrGameState) {
			t.Errorf("update err = %v, want ErrGameState", err)
		}
		if _, err := f.m.JoinGame(ctx, game.ID, vic); !errors.Is(err, ErrGameState) {
			t.Errorf("join err = %v, want ErrGameState", err)
		}
		if err := f.m.LeaveGame(ctx, game.ID, uma); !errors.Is(err, ErrGameState) {
			t.Errorf("leave err = %v, want ErrGameState", err)
		}
		if err := f.m.RemoveGameSession(ctx, game.ID, uma, owner); !errors.Is(err, ErrGameState) {
			t.Errorf("remove err = %v, want ErrGameState", err)
		}

		got, _ := f.store.GetGame(ctx, game.ID)
		if len(got.Sessions) != 1 || got.Sessions[0].EndAmount != 30 {
			t.Errorf("sessions changed: %+v", got.Sessions)
		}
	})
}

func TestQuickJoinLeave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	group := f.newGroup(t)
	game := f.newGame(t, group)
	vic := f.id("vic")

	for i := 0; i < 2; i++ {
		sess, err := f.m.JoinGame(ctx, game.ID, vic)
		if err != nil {
			t.Fatalf("JoinGame #%d failed: %v", i+1, err)
		}
		if sess.PlayerName != "Vic" || sess.BuyIn != 0 || sess.EndAmount != 0 {
			t.Errorf("session = %+v", sess)
		}
	}
	got, _ := f.store.GetGame(ctx, game.ID)
	if len(got.Sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(got.Sessions))
	}

	if _, err := f.m.GetGame(ctx, game.ID, vic); err != nil {
		t.Errorf("player GetGame failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := f.m.LeaveGame(ctx, game.ID, vic); err != nil {
			t.Fatalf("LeaveGame #%d failed: %v", i+1, err)
		}
	}
	got, _ = f.store.GetGame(ctx, game.ID)
	if len(got.Sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(got.Sessions))
	}
}

func TestRemoveSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	group := f.newGroup(t)
	game := f.newGame(t, group)
	owner, uma := f.id("owner"), f.id("uma")

	for _, in := range []SessionInput{
		{GameID: game.ID, UserID: uma, BuyIn: 10},
		{GameID: game.ID, UserID: owner, BuyIn: 10},
		{GameID: game.ID, PlayerName: "Bob", BuyIn: 10},
	} {
		if _, err := f.m.UpdateGameSession(ctx, in, owner); err != nil {
			t.Fatalf("UpdateGameSession failed: %v", err)
		}
	}

	if err := f.m.RemoveGameSession(ctx, game.ID, owner, uma); !errors.Is(err, ErrForbidden) {
		t.Errorf("member removing owner err = %v, want ErrForbidden", err)
	}
	if err := f.m.RemoveGameSession(ctx, game.ID, uma, uma); err != nil {
		t.Errorf("self remove failed: %v", err)
	}
	if err := f.m.RemoveGuestSession(ctx, game.ID, "Owner", owner); !errors.Is(err, ErrNotFound) {
		t.Errorf("guest removal of registered player err = %v, want ErrNotFound", err)
	}
	if err := f.m.RemoveGuestSession(ctx, game.ID, "BOB", owner); err != nil {
		t.Errorf("RemoveGuestSession failed: %v", err)
	}

	got, _ := f.store.GetGame(ctx, game.ID)
	if len(got.Sessions) != 1 || got.Sessions[0].UserID != owner {
		t.Errorf("sessions = %+v, want only owner", got.Sessions)
	}
}

func TestReopenResetsPayouts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	group := f.newGroup(t)
	game := f.newGame(t, group)
	owner, uma := f.id("owner"), f.id("uma")

	if _, err := f.m.UpdateGameSession(ctx, SessionInput{GameID: game.ID, UserID: uma, BuyIn: 50, EndAmount: 20}, owner); err != nil {
		t.Fatalf("UpdateGameSession failed: %v", err)
	}

	if _, err := f.m.RecordPayout(ctx, game.ID, uma, models.PayoutAck{Confirmed: true}); !errors.Is(err, ErrGameState) {
		t.Errorf("payout on open game err = %v, want ErrGameState", err)
	}
	if _, err := f.m.CloseGame(ctx, game.ID, owner); err != nil {
		t.Fatalf("CloseGame failed: %v", err)
	}
	if _, err := f.m.RecordPayout(ctx, game.ID, uma, models.PayoutAck{Confirmed: true}); !errors.Is(err, ErrValidation) {
		t.Errorf("losing payout without details err = %v, want ErrValidation", err)
	}
	if _, err := f.m.RecordPayout(ctx, game.ID, owner, models.PayoutAck{Confirmed: true}); !errors.Is(err, ErrNotFound) {
		t.Errorf("payout without session err = %v, want ErrNotFound", err)
	}
	if _, err := f.m.RecordPayout(ctx, game.ID, uma, models.PayoutAck{Confirmed: true, Method: "venmo", Handle: "@uma"}); err != nil {
		t.Fatalf("RecordPayout failed: %v", err)
	}

	ack, err := f.m.GetPayout(ctx, game.ID, uma, owner)
	if err != nil || !ack.Confirmed {
		t.Fatalf("GetPayout = %+v, %v; want confirmed", ack, err)
	}
	if _, err := f.m.GetPayout(ctx, game.ID, uma, f.id("vic")); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger GetPayout err = %v, want ErrForbidden", err)
	}

	if _, err := f.m.ReopenGame(ctx, game.ID, owner); err != nil {
		t.Fatalf("ReopenGame failed: %v", err)
	}
	ack, err = f.m.GetPayout(ctx, game.ID, uma, uma)
	if err != nil {
		t.Fatalf("GetPayout failed: %v", err)
	}
	if ack.Confirmed {
		t.Error("confirmation should be reset by reopen")
	}
	if ack.Method != "venmo" {
		t.Errorf("Method = %q, want details kept", ack.Method)
	}
}
