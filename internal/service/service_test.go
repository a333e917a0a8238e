package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/homegame/internal/api"
	"github.com/mmynk/homegame/internal/auth"
	"github.com/mmynk/homegame/internal/identity"
	"github.com/mmynk/homegame/internal/league"
	"github.com/mmynk/homegame/internal/middleware"
	"github.com/mmynk/homegame/internal/storage/sqlite"
)

type clients struct {
	auth   *api.AuthServiceClient
	group  *api.GroupServiceClient
	claim  *api.ClaimServiceClient
	game   *api.GameServiceClient
	stats  *api.StatsServiceClient
	payout *api.PayoutServiceClient
}

// setupTestServer serves every RPC service over a temp database.
func setupTestServer(t *testing.T, opts ...league.Option) *clients {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	resolver := identity.NewCachingResolver(identity.NewStoreResolver(store))
	manager := league.NewManager(store, resolver, opts...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, api.AuthServiceRegisterProcedure, api.AuthServiceLoginProcedure),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger), interceptors))
	mux.Handle(api.NewGroupServiceHandler(NewGroupService(manager, "https://poker.example.com"), interceptors))
	mux.Handle(api.NewClaimServiceHandler(NewClaimService(manager), interceptors))
	mux.Handle(api.NewGameServiceHandler(NewGameService(manager), interceptors))
	mux.Handle(api.NewStatsServiceHandler(NewStatsService(manager), interceptors))
	mux.Handle(api.NewPayoutServiceHandler(NewPayoutService(manager), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return &clients{
		auth:   api.NewAuthServiceClient(http.DefaultClient, server.URL),
		group:  api.NewGroupServiceClient(http.DefaultClient, server.URL),
		claim:  api.NewClaimServiceClient(http.DefaultClient, server.URL),
		game:   api.NewGameServiceClient(http.DefaultClient, server.URL),
		stats:  api.NewStatsServiceClient(http.DefaultClient, server.URL),
		payout: api.NewPayoutServiceClient(http.DefaultClient, server.URL),
	}
}

// register creates an account and returns its id and bearer token.
func (c *clients) register(t *testing.T, name string) (string, string) {
	t.Helper()

	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       strings.ToLower(name) + "@example.com",
		DisplayName: name,
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", name, err)
	}
	return resp.Msg.User.ID, resp.Msg.Token
}

// as builds a request authenticated with token.
func as[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got success", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected %v, got %v (%v)", want, got, err)
	}
}

func TestAuthService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	userID, token := c.register(t, "Uma")

	resp, err := c.auth.GetCurrentUser(ctx, as(token, &api.Empty{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if resp.Msg.User.ID != userID || resp.Msg.User.DisplayName != "Uma" {
		t.Errorf("unexpected user: %+v", resp.Msg.User)
	}
	if resp.Msg.User.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}

	login, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "uma@example.com", Password: "password123"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.Token == "" || login.Msg.User.ID != userID {
		t.Errorf("unexpected login response: %+v", login.Msg)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "uma@example.com", DisplayName: "Uma 2", Password: "password123",
		}))
		expectCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "vic@example.com", DisplayName: "Vic", Password: "short",
		}))
		expectCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "uma@example.com", Password: "password124"}))
		expectCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("no token", func(t *testing.T) {
		_, err := c.group.ListGroups(ctx, connect.NewRequest(&api.Empty{}))
		expectCode(t, err, connect.CodeUnauthenticated)
	})
}

func TestGroupService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	ownerID, owner := c.register(t, "Owner")
	umaID, uma := c.register(t, "Uma")
	_, vic := c.register(t, "Vic")

	created, err := c.group.CreateGroup(ctx, as(owner, &api.CreateGroupRequest{Name: "Friday Night Poker"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	group := created.Msg.Group
	if group.ID == "" || len(group.InviteCode) != 6 {
		t.Fatalf("unexpected group: %+v", group)
	}
	if len(group.Members) != 1 || group.Members[0].UserID != ownerID || group.Members[0].Role != "owner" {
		t.Errorf("expected the creator as sole owner, got %+v", group.Members)
	}
	if group.Members[0].UserName != "Owner" {
		t.Errorf("owner name: expected display name, got %q", group.Members[0].UserName)
	}

	joined, err := c.group.JoinGroup(ctx, as(uma, &api.JoinGroupRequest{InviteCode: strings.ToLower(group.InviteCode)}))
	if err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}
	if len(joined.Msg.Group.Members) != 2 {
		t.Errorf("members: expected 2, got %d", len(joined.Msg.Group.Members))
	}

	_, err = c.group.JoinGroup(ctx, as(uma, &api.JoinGroupRequest{InviteCode: group.InviteCode}))
	expectCode(t, err, connect.CodeAlreadyExists)

	t.Run("outsider cannot view", func(t *testing.T) {
		_, err := c.group.GetGroup(ctx, as(vic, &api.GroupRequest{GroupID: group.ID}))
		expectCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := c.group.GetGroup(ctx, as(owner, &api.GroupRequest{GroupID: "nonexistent-id"}))
		expectCode(t, err, connect.CodeNotFound)
	})

	t.Run("unknown invite code", func(t *testing.T) {
		_, err := c.group.JoinGroup(ctx, as(vic, &api.JoinGroupRequest{InviteCode: "ZZZZZZ"}))
		expectCode(t, err, connect.CodeNotFound)
	})

	t.Run("member cannot promote", func(t *testing.T) {
		_, err := c.group.PromoteToAdmin(ctx, as(uma, &api.MemberRequest{GroupID: group.ID, UserID: umaID}))
		expectCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("promote and rename", func(t *testing.T) {
		if _, err := c.group.PromoteToAdmin(ctx, as(owner, &api.MemberRequest{GroupID: group.ID, UserID: umaID})); err != nil {
			t.Fatalf("PromoteToAdmin failed: %v", err)
		}
		if _, err := c.group.UpdateMemberName(ctx, as(owner, &api.UpdateMemberNameRequest{GroupID: group.ID, UserID: umaID, Name: "Uma T."})); err != nil {
			t.Fatalf("UpdateMemberName failed: %v", err)
		}

		got, err := c.group.GetGroup(ctx, as(uma, &api.GroupRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		var found bool
		for _, m := range got.Msg.Group.Members {
			if m.UserID == umaID {
				found = true
				if m.Role != "admin" || m.UserName != "Uma T." {
					t.Errorf("unexpected member: %+v", m)
				}
			}
		}
		if !found {
			t.Error("uma missing from members")
		}
	})

	t.Run("guest member warning", func(t *testing.T) {
		first, err := c.group.AddGuestMember(ctx, as(owner, &api.AddGuestMemberRequest{GroupID: group.ID, GuestName: "Bob"}))
		if err != nil {
			t.Fatalf("AddGuestMember failed: %v", err)
		}
		if !first.Msg.Member.Guest || first.Msg.Warning != "" {
			t.Errorf("unexpected first guest: %+v", first.Msg)
		}

		second, err := c.group.AddGuestMember(ctx, as(owner, &api.AddGuestMemberRequest{GroupID: group.ID, GuestName: "bob"}))
		if err != nil {
			t.Fatalf("AddGuestMember failed: %v", err)
		}
		if second.Msg.Warning == "" {
			t.Error("expected a duplicate name warning")
		}
	})

	t.Run("invite QR code", func(t *testing.T) {
		resp, err := c.group.GetInviteQRCode(ctx, as(uma, &api.GroupRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("GetInviteQRCode failed: %v", err)
		}
		if !bytes.HasPrefix(resp.Msg.PNG, []byte("\x89PNG")) {
			t.Error("expected PNG data")
		}
		if !strings.HasPrefix(resp.Msg.JoinURL, "https://poker.example.com/join?code=") {
			t.Errorf("unexpected join URL %q", resp.Msg.JoinURL)
		}
	})

	t.Run("list groups", func(t *testing.T) {
		resp, err := c.group.ListGroups(ctx, as(uma, &api.Empty{}))
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(resp.Msg.Groups) != 1 || resp.Msg.Groups[0].ID != group.ID {
			t.Errorf("unexpected groups: %+v", resp.Msg.Groups)
		}
	})

	t.Run("delete group", func(t *testing.T) {
		_, err := c.group.DeleteGroup(ctx, as(uma, &api.GroupRequest{GroupID: group.ID}))
		expectCode(t, err, connect.CodePermissionDenied)

		if _, err := c.group.DeleteGroup(ctx, as(owner, &api.GroupRequest{GroupID: group.ID})); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		_, err = c.group.GetGroup(ctx, as(owner, &api.GroupRequest{GroupID: group.ID}))
		expectCode(t, err, connect.CodeNotFound)
	})
}

func TestGameNight(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	_, owner := c.register(t, "Owner")
	umaID, uma := c.register(t, "Uma")
	bobID, bob := c.register(t, "Bob")

	created, err := c.group.CreateGroup(ctx, as(owner, &api.CreateGroupRequest{Name: "Home Game"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := created.Msg.Group.ID
	if _, err := c.group.JoinGroup(ctx, as(uma, &api.JoinGroupRequest{InviteCode: created.Msg.Group.InviteCode})); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}

	_, err = c.game.CreateGame(ctx, as(uma, &api.CreateGameRequest{GroupID: groupID}))
	expectCode(t, err, connect.CodePermissionDenied)

	gameResp, err := c.game.CreateGame(ctx, as(owner, &api.CreateGameRequest{GroupID: groupID, Date: 1700000000, Notes: "at Uma's"}))
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	gameID := gameResp.Msg.Game.ID
	if gameResp.Msg.Game.Status != "open" {
		t.Errorf("status: expected open, got %s", gameResp.Msg.Game.Status)
	}

	// Uma joins and records her own result; the owner records a guest.
	if _, err := c.game.JoinGame(ctx, as(uma, &api.GameRequest{GameID: gameID})); err != nil {
		t.Fatalf("JoinGame failed: %v", err)
	}
	sess, err := c.game.UpdateSession(ctx, as(uma, &api.UpdateSessionRequest{GameID: gameID, UserID: umaID, BuyIn: 20, EndAmount: 50}))
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if sess.Msg.Session.Profit != 30 {
		t.Errorf("profit: expected 30, got %v", sess.Msg.Session.Profit)
	}
	if _, err := c.game.UpdateSession(ctx, as(owner, &api.UpdateSessionRequest{GameID: gameID, PlayerName: "Bob", BuyIn: 40, EndAmount: 10})); err != nil {
		t.Fatalf("UpdateSession (guest) failed: %v", err)
	}

	_, err = c.game.UpdateSession(ctx, as(uma, &api.UpdateSessionRequest{GameID: gameID, PlayerName: "Bob", BuyIn: 0, EndAmount: 100}))
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = c.game.UpdateSession(ctx, as(owner, &api.UpdateSessionRequest{GameID: gameID, UserID: umaID, BuyIn: -5}))
	expectCode(t, err, connect.CodeInvalidArgument)

	if _, err := c.game.StartGame(ctx, as(owner, &api.GameRequest{GameID: gameID})); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	_, err = c.game.UpdateSession(ctx, as(uma, &api.UpdateSessionRequest{GameID: gameID, UserID: umaID, BuyIn: 20, EndAmount: 60}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	closed, err := c.game.CloseGame(ctx, as(owner, &api.GameRequest{GameID: gameID}))
	if err != nil {
		t.Fatalf("CloseGame failed: %v", err)
	}
	if closed.Msg.Game.Status != "completed" || len(closed.Msg.Game.Sessions) != 2 {
		t.Fatalf("unexpected closed game: %+v", closed.Msg.Game)
	}

	_, err = c.game.UpdateSession(ctx, as(owner, &api.UpdateSessionRequest{GameID: gameID, UserID: umaID, BuyIn: 20, EndAmount: 60}))
	expectCode(t, err, connect.CodeFailedPrecondition)
	_, err = c.game.CloseGame(ctx, as(owner, &api.GameRequest{GameID: gameID}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	board, err := c.stats.GetLeaderboard(ctx, as(uma, &api.LeaderboardRequest{GroupID: groupID}))
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if board.Msg.GamesCounted != 1 {
		t.Errorf("games counted: expected 1, got %d", board.Msg.GamesCounted)
	}
	if len(board.Msg.Members) != 1 || board.Msg.Members[0].UserID != umaID || board.Msg.Members[0].TotalProfit != 30 {
		t.Errorf("unexpected members: %+v", board.Msg.Members)
	}
	if len(board.Msg.Guests) != 1 || board.Msg.Guests[0].Name != "Bob" || board.Msg.Guests[0].TotalProfit != -30 {
		t.Errorf("unexpected guests: %+v", board.Msg.Guests)
	}

	_, err = c.stats.GetLeaderboard(ctx, as(uma, &api.LeaderboardRequest{GroupID: groupID, SortBy: "luck"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	t.Run("claim the guest history", func(t *testing.T) {
		claim, err := c.claim.SubmitClaim(ctx, as(bob, &api.SubmitClaimRequest{GroupID: groupID, GuestName: "bob"}))
		if err != nil {
			t.Fatalf("SubmitClaim failed: %v", err)
		}
		if claim.Msg.Claim.RequesterEmail != "bob@example.com" || claim.Msg.Claim.Status != "pending" {
			t.Errorf("unexpected claim: %+v", claim.Msg.Claim)
		}

		_, err = c.claim.ApproveClaim(ctx, as(uma, &api.ClaimIDRequest{RequestID: claim.Msg.Claim.ID}))
		expectCode(t, err, connect.CodePermissionDenied)

		approved, err := c.claim.ApproveClaim(ctx, as(owner, &api.ClaimIDRequest{RequestID: claim.Msg.Claim.ID}))
		if err != nil {
			t.Fatalf("ApproveClaim failed: %v", err)
		}
		if approved.Msg.SessionsUpdated != 1 {
			t.Errorf("sessions updated: expected 1, got %d", approved.Msg.SessionsUpdated)
		}

		_, err = c.claim.ApproveClaim(ctx, as(owner, &api.ClaimIDRequest{RequestID: claim.Msg.Claim.ID}))
		expectCode(t, err, connect.CodeAlreadyExists)

		board, err := c.stats.GetLeaderboard(ctx, as(bob, &api.LeaderboardRequest{GroupID: groupID}))
		if err != nil {
			t.Fatalf("GetLeaderboard failed: %v", err)
		}
		if len(board.Msg.Guests) != 0 || len(board.Msg.Members) != 2 {
			t.Fatalf("expected bob among members, got %+v / %+v", board.Msg.Members, board.Msg.Guests)
		}

		stats, err := c.stats.GetPlayerStats(ctx, as(bob, &api.PlayerStatsRequest{}))
		if err != nil {
			t.Fatalf("GetPlayerStats failed: %v", err)
		}
		if stats.Msg.Stats.UserID != bobID || stats.Msg.Stats.TotalProfit != -30 || stats.Msg.Stats.GamesPlayed != 1 {
			t.Errorf("unexpected stats: %+v", stats.Msg.Stats)
		}
	})

	t.Run("payouts", func(t *testing.T) {
		unrecorded, err := c.payout.GetPayout(ctx, as(bob, &api.PayoutRequest{GameID: gameID}))
		if err != nil {
			t.Fatalf("GetPayout failed: %v", err)
		}
		if unrecorded.Msg.Ack.Confirmed {
			t.Error("expected an unrecorded payout to be unconfirmed")
		}

		_, err = c.payout.RecordPayout(ctx, as(bob, &api.RecordPayoutRequest{GameID: gameID, Confirmed: true}))
		expectCode(t, err, connect.CodeInvalidArgument)

		recorded, err := c.payout.RecordPayout(ctx, as(bob, &api.RecordPayoutRequest{GameID: gameID, Method: "venmo", Handle: "@bob", Confirmed: true}))
		if err != nil {
			t.Fatalf("RecordPayout failed: %v", err)
		}
		if !recorded.Msg.Ack.Confirmed || recorded.Msg.Ack.CompletedAt == 0 {
			t.Errorf("unexpected ack: %+v", recorded.Msg.Ack)
		}

		_, err = c.payout.GetPayout(ctx, as(uma, &api.PayoutRequest{GameID: gameID, UserID: bobID}))
		expectCode(t, err, connect.CodePermissionDenied)

		list, err := c.payout.ListPayouts(ctx, as(owner, &api.GameRequest{GameID: gameID}))
		if err != nil {
			t.Fatalf("ListPayouts failed: %v", err)
		}
		if len(list.Msg.Acks) != 1 {
			t.Errorf("acks: expected 1, got %d", len(list.Msg.Acks))
		}

		if _, err := c.game.ReopenGame(ctx, as(owner, &api.GameRequest{GameID: gameID})); err != nil {
			t.Fatalf("ReopenGame failed: %v", err)
		}
		after, err := c.payout.GetPayout(ctx, as(bob, &api.PayoutRequest{GameID: gameID}))
		if err != nil {
			t.Fatalf("GetPayout failed: %v", err)
		}
		if after.Msg.Ack.Confirmed {
			t.Error("expected reopen to clear the confirmation")
		}
	})

	t.Run("running totals", func(t *testing.T) {
		if _, err := c.game.CloseGame(ctx, as(owner, &api.GameRequest{GameID: gameID})); err != nil {
			t.Fatalf("CloseGame failed: %v", err)
		}
		resp, err := c.stats.GetRunningTotals(ctx, as(uma, &api.GroupRequest{GroupID: groupID}))
		if err != nil {
			t.Fatalf("GetRunningTotals failed: %v", err)
		}
		if len(resp.Msg.Series) != 2 {
			t.Fatalf("series: expected 2, got %d", len(resp.Msg.Series))
		}
		for _, s := range resp.Msg.Series {
			if len(s.Points) != 1 || s.Points[0].GameID != gameID {
				t.Errorf("unexpected series %+v", s)
			}
		}
	})
}

func TestLeaveAndRemove(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	_, owner := c.register(t, "Owner")
	umaID, uma := c.register(t, "Uma")

	created, err := c.group.CreateGroup(ctx, as(owner, &api.CreateGroupRequest{Name: "Home Game"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	gameResp, err := c.game.CreateGame(ctx, as(owner, &api.CreateGameRequest{GroupID: created.Msg.Group.ID}))
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	gameID := gameResp.Msg.Game.ID

	// Any signed-in user may quick-join; joining twice is a no-op.
	for i := 0; i < 2; i++ {
		if _, err := c.game.JoinGame(ctx, as(uma, &api.GameRequest{GameID: gameID})); err != nil {
			t.Fatalf("JoinGame #%d failed: %v", i+1, err)
		}
	}
	got, err := c.game.GetGame(ctx, as(uma, &api.GameRequest{GameID: gameID}))
	if err != nil {
		t.Fatalf("GetGame failed: %v", err)
	}
	if len(got.Msg.Game.Sessions) != 1 || got.Msg.Game.Sessions[0].UserID != umaID {
		t.Fatalf("unexpected sessions: %+v", got.Msg.Game.Sessions)
	}

	if _, err := c.game.LeaveGame(ctx, as(uma, &api.GameRequest{GameID: gameID})); err != nil {
		t.Fatalf("LeaveGame failed: %v", err)
	}
	if _, err := c.game.LeaveGame(ctx, as(uma, &api.GameRequest{GameID: gameID})); err != nil {
		t.Fatalf("second LeaveGame failed: %v", err)
	}

	if _, err := c.game.UpdateSession(ctx, as(owner, &api.UpdateSessionRequest{GameID: gameID, PlayerName: "Cy", BuyIn: 10})); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	_, err = c.game.RemoveGuestSession(ctx, as(owner, &api.RemoveGuestSessionRequest{GameID: gameID, PlayerName: "nobody"}))
	expectCode(t, err, connect.CodeNotFound)
	if _, err := c.game.RemoveGuestSession(ctx, as(owner, &api.RemoveGuestSessionRequest{GameID: gameID, PlayerName: "cy"})); err != nil {
		t.Fatalf("RemoveGuestSession failed: %v", err)
	}

	if _, err := c.game.DeleteGame(ctx, as(owner, &api.GameRequest{GameID: gameID})); err != nil {
		t.Fatalf("DeleteGame failed: %v", err)
	}
	list, err := c.game.ListGames(ctx, as(owner, &api.GroupRequest{GroupID: created.Msg.Group.ID}))
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if len(list.Msg.Games) != 0 {
		t.Errorf("games: expected 0, got %d", len(list.Msg.Games))
	}
}

func TestStorageTimeoutIsInternal(t *testing.T) {
	c := setupTestServer(t, league.WithTimeout(time.Nanosecond))
	ctx := context.Background()

	_, owner := c.register(t, "Owner")

	_, err := c.group.CreateGroup(ctx, as(owner, &api.CreateGroupRequest{Name: "Home Game"}))
	expectCode(t, err, connect.CodeInternal)

	_, err = c.group.ListGroups(ctx, as(owner, &api.Empty{}))
	expectCode(t, err, connect.CodeInternal)

	_, err = c.stats.GetPlayerStats(ctx, as(owner, &api.PlayerStatsRequest{}))
	expectCode(t, err, connect.CodeInternal)
}
