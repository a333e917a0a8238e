package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/homegame/internal/models"
)

func game(id string, date int64, sessions ...models.GameSession) *models.Game {
	return &models.Game{ID: id, Date: date, Status: models.StatusCompleted, Sessions: sessions}
}

func findRow(t *testing.T, stats []PlayerStats, key string) PlayerStats {
	t.Helper()
	for _, s := range stats {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("no leaderboard row for %q in %+v", key, stats)
	return PlayerStats{}
}

func TestCalculateLeaderboard(t *testing.T) {
	tests := []struct {
		name         string
		games        []*models.Game
		names        map[string]string
		wantRows     int
		validateFunc func(t *testing.T, stats []PlayerStats)
	}{
		{
			name: "sessions of one user merge across games",
			games: []*models.Game{
				game("g1", 1, models.NewSession("u-1", "Uma", 50, 80)),
				game("g2", 2, models.NewSession("u-1", "Uma B.", 40, 0)),
			},
			wantRows: 1,
			validateFunc: func(t *testing.T, stats []PlayerStats) {
				uma := findRow(t, stats, "u-1")
				if uma.TotalProfit != -10 || uma.TotalBuyIns != 90 || uma.TotalEndAmounts != 80 {
					t.Errorf("uma = %+v", uma)
				}
				if uma.GamesPlayed != 2 {
					t.Errorf("GamesPlayed = %d, want 2", uma.GamesPlayed)
				}
				if uma.WinRate != 0 {
					t.Errorf("WinRate = %v, want 0", uma.WinRate)
				}
				if uma.Name != "Uma" {
					t.Errorf("Name = %q, want first stored name", uma.Name)
				}
			},
		},
		{
			name: "guest names merge case-insensitively",
			games: []*models.Game{
				game("g1", 1, models.NewSession("", "Bob", 20, 50)),
				game("g2", 2, models.NewSession("", "  bob ", 20, 25)),
			},
			wantRows: 1,
			validateFunc: func(t *testing.T, stats []PlayerStats) {
				bob := findRow(t, stats, "bob")
				if !bob.Guest {
					t.Error("expected guest row")
				}
				if bob.TotalProfit != 35 || bob.WinRate != 1 {
					t.Errorf("bob = %+v", bob)
				}
			},
		},
		{
			name: "guest name and user id stay separate",
			games: []*models.Game{
				game("g1", 1,
					models.NewSession("", "Bob", 20, 50),
					models.NewSession("u-bob", "Bob", 10, 0),
				),
			},
			wantRows: 2,
		},
		{
			name: "current member name overrides stored name",
			games: []*models.Game{
				game("g1", 1, models.NewSession("u-1", "Old Name", 10, 20)),
			},
			names:    map[string]string{"u-1": "New Name"},
			wantRows: 1,
			validateFunc: func(t *testing.T, stats []PlayerStats) {
				if stats[0].Name != "New Name" {
					t.Errorf("Name = %q, want New Name", stats[0].Name)
				}
			},
		},
		{
			name: "break-even is not a win",
			games: []*models.Game{
				game("g1", 1, models.NewSession("u-1", "Uma", 25, 25)),
			},
			wantRows: 1,
			validateFunc: func(t *testing.T, stats []PlayerStats) {
				if stats[0].WinRate != 0 {
					t.Errorf("WinRate = %v, want 0", stats[0].WinRate)
				}
			},
		},
		{
			name: "decimal accumulation avoids float drift",
			games: []*models.Game{
				game("g1", 1, models.NewSession("u-1", "Uma", 0, 0.1)),
				game("g2", 2, models.NewSession("u-1", "Uma", 0, 0.2)),
			},
			wantRows: 1,
			validateFunc: func(t *testing.T, stats []PlayerStats) {
				if stats[0].TotalProfit != 0.3 {
					t.Errorf("TotalProfit = %v, want exactly 0.3", stats[0].TotalProfit)
				}
			},
		},
		{
			name: "tagged guest with user id counts as guest",
			games: []*models.Game{
				game("g1", 1, models.GameSession{PlayerName: "Cy", UserID: "u-cy", Role: models.SessionRoleGuest, BuyIn: 5}),
			},
			wantRows: 1,
			validateFunc: func(t *testing.T, stats []PlayerStats) {
				if !stats[0].Guest {
					t.Error("expected guest row")
				}
			},
		},
		{
			name:     "no games",
			games:    nil,
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := CalculateLeaderboard(tt.games, tt.names)
			if len(stats) != tt.wantRows {
				t.Fatalf("rows = %d, want %d: %+v", len(stats), tt.wantRows, stats)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, stats)
			}
		})
	}
}

func TestSortLeaderboard(t *testing.T) {
	stats := []PlayerStats{
		{Key: "a", TotalProfit: 10, TotalBuyIns: 100, GamesPlayed: 1},
		{Key: "b", TotalProfit: 30, TotalBuyIns: 50, GamesPlayed: 3},
		{Key: "c", TotalProfit: 10, TotalBuyIns: 75, GamesPlayed: 3},
	}

	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortByProfit, []string{"b", "a", "c"}},
		{SortByBuyIns, []string{"a", "c", "b"}},
		{SortBySessions, []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			sorted := append([]PlayerStats(nil), stats...)
			SortLeaderboard(sorted, tt.key)
			for i, key := range tt.want {
				if sorted[i].Key != key {
					t.Errorf("position %d = %s, want %s", i, sorted[i].Key, key)
				}
			}
		})
	}
}

func TestParseSortKey(t *testing.T) {
	if k, err := ParseSortKey(""); err != nil || k != SortByProfit {
		t.Errorf("ParseSortKey(\"\") = %v, %v", k, err)
	}
	if _, err := ParseSortKey("luck"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestSplitGuests(t *testing.T) {
	members, guests := SplitGuests([]PlayerStats{
		{Key: "u-1"}, {Key: "bob", Guest: true}, {Key: "u-2"},
	})
	if len(members) != 2 || len(guests) != 1 {
		t.Errorf("members = %d, guests = %d, want 2 and 1", len(members), len(guests))
	}
}

func TestRunningTotals(t *testing.T) {
	// Supplied newest first; totals must accumulate oldest first.
	games := []*models.Game{
		game("g3", 300, models.NewSession("u-1", "Uma", 10, 0)),
		game("g1", 100, models.NewSession("u-1", "Uma", 10, 30), models.NewSession("", "Bob", 10, 0)),
		game("g2", 200, models.NewSession("u-1", "Uma", 10, 15)),
	}

	series := RunningTotals(games, map[string]string{"u-1": "Uma Prime"})
	if len(series) != 2 {
		t.Fatalf("series = %d, want 2", len(series))
	}

	uma := series[0]
	if uma.Name != "Uma Prime" {
		t.Errorf("Name = %q, want Uma Prime", uma.Name)
	}
	want := []float64{20, 25, 15}
	if len(uma.Points) != len(want) {
		t.Fatalf("points = %d, want %d", len(uma.Points), len(want))
	}
	for i, w := range want {
		if math.Abs(uma.Points[i].Cumulative-w) > 0.001 {
			t.Errorf("point %d cumulative = %v, want %v", i, uma.Points[i].Cumulative, w)
		}
	}
	if uma.Points[0].GameID != "g1" {
		t.Errorf("first point = %s, want g1", uma.Points[0].GameID)
	}
}
