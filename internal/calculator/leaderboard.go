package calculator

import (
	"fmt"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/homegame/internal/models"
)

// PlayerStats is one leaderboard row: a participant's aggregate across games.
type PlayerStats struct {
	// Key is the reconciliation key (user id, or normalized guest name).
	Key string

	// Name is the display name: the current member name when known,
	// otherwise the stored player name.
	Name string

	// UserID is empty for name-only guests.
	UserID string

	// Guest is true when every aggregated session was a guest session.
	Guest bool

	TotalProfit     float64
	TotalBuyIns     float64
	TotalEndAmounts float64
	GamesPlayed     int

	// WinRate is 1 when TotalProfit > 0, else 0. It is not a per-session
	// win percentage.
	WinRate float64
}

// SortKey selects the leaderboard ordering.
type SortKey string

const (
	SortByProfit   SortKey = "profit"
	SortByBuyIns   SortKey = "buy_ins"
	SortBySessions SortKey = "sessions"
)

// ParseSortKey validates a client-provided sort key. Empty means profit.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByProfit, nil
	case SortByProfit, SortByBuyIns, SortBySessions:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

type accumulator struct {
	stats   PlayerStats
	profit  decimal.Decimal
	buyIns  decimal.Decimal
	endAmts decimal.Decimal
}

// CalculateLeaderboard aggregates sessions across games into one row per
// participant.
//
// Algorithm:
// - Key each session by user id if present, else by lower-trimmed player name
// - Accumulate profit, buy-ins, cash-outs and session count per key
// - Name each row from names (user id -> current member name) when present,
//   else from the first stored player name seen for the key
// - WinRate = 1 if aggregate profit > 0, else 0
//
// Rows are returned in first-seen order; use SortLeaderboard to rank them.
func CalculateLeaderboard(games []*models.Game, names map[string]string) []PlayerStats {
	var order []string
	acc := make(map[string]*accumulator)

	for _, game := range games {
		for _, sess := range game.Sessions {
			p := sess.Participant()
			key := p.Key()

			a, exists := acc[key]
			if !exists {
				a = &accumulator{stats: PlayerStats{
					Key:    key,
					Name:   sess.PlayerName,
					UserID: sess.UserID,
					Guest:  true,
				}}
				if name, ok := names[sess.UserID]; ok && sess.UserID != "" {
					a.stats.Name = name
				}
				acc[key] = a
				order = append(order, key)
			}

			if !p.IsGuest() {
				a.stats.Guest = false
			}
			a.profit = a.profit.Add(decimal.NewFromFloat(sess.EndAmount).Sub(decimal.NewFromFloat(sess.BuyIn)))
			a.buyIns = a.buyIns.Add(decimal.NewFromFloat(sess.BuyIn))
			a.endAmts = a.endAmts.Add(decimal.NewFromFloat(sess.EndAmount))
			a.stats.GamesPlayed++
		}
	}

	stats := make([]PlayerStats, 0, len(order))
	for _, key := range order {
		a := acc[key]
		a.stats.TotalProfit = a.profit.InexactFloat64()
		a.stats.TotalBuyIns = a.buyIns.InexactFloat64()
		a.stats.TotalEndAmounts = a.endAmts.InexactFloat64()
		if a.profit.IsPositive() {
			a.stats.WinRate = 1
		}
		stats = append(stats, a.stats)
	}
	return stats
}

// SortLeaderboard orders stats descending by key. Ties keep their order.
func SortLeaderboard(stats []PlayerStats, key SortKey) {
	sort.SliceStable(stats, func(i, j int) bool {
		switch key {
		case SortByBuyIns:
			return stats[i].TotalBuyIns > stats[j].TotalBuyIns
		case SortBySessions:
			return stats[i].GamesPlayed > stats[j].GamesPlayed
		default:
			return stats[i].TotalProfit > stats[j].TotalProfit
		}
	})
}

// SplitGuests partitions stats into members and guests, preserving order.
func SplitGuests(stats []PlayerStats) (members, guests []PlayerStats) {
	for _, s := range stats {
		if s.Guest {
			guests = append(guests, s)
		} else {
			members = append(members, s)
		}
	}
	return members, guests
}

// Point is one game's contribution to a running total.
type Point struct {
	GameID     string
	Date       int64
	Profit     float64
	Cumulative float64
}

// PlayerSeries is a participant's profit over time.
type PlayerSeries struct {
	Key    string
	Name   string
	Points []Point
}

// RunningTotals builds each participant's cumulative profit, game by game in
// date order. Participants are keyed and named as in CalculateLeaderboard.
func RunningTotals(games []*models.Game, names map[string]string) []PlayerSeries {
	chrono := slices.Clone(games)
	sort.SliceStable(chrono, func(i, j int) bool {
		return chrono[i].Date < chrono[j].Date
	})

	var order []string
	series := make(map[string]*PlayerSeries)
	totals := make(map[string]decimal.Decimal)

	for _, game := range chrono {
		for _, sess := range game.Sessions {
			key := sess.Participant().Key()
			ps, exists := series[key]
			if !exists {
				ps = &PlayerSeries{Key: key, Name: sess.PlayerName}
				if name, ok := names[sess.UserID]; ok && sess.UserID != "" {
					ps.Name = name
				}
				series[key] = ps
				order = append(order, key)
			}
			profit := decimal.NewFromFloat(sess.EndAmount).Sub(decimal.NewFromFloat(sess.BuyIn))
			totals[key] = totals[key].Add(profit)
			ps.Points = append(ps.Points, Point{
				GameID:     game.ID,
				Date:       game.Date,
				Profit:     profit.InexactFloat64(),
				Cumulative: totals[key].InexactFloat64(),
			})
		}
	}

	out := make([]PlayerSeries, 0, len(order))
	for _, key := range order {
		out = append(out, *series[key])
	}
	return out
}
