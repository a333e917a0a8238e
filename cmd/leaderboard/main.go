// Command leaderboard prints a group's standings from a ledger database.
//
//	leaderboard -db ./data/homegame.db -code K7QX2M -sort profit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"

	"github.com/mmynk/homegame/internal/calculator"
	"github.com/mmynk/homegame/internal/identity"
	"github.com/mmynk/homegame/internal/league"
	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage/sqlite"
)

// options are the command's flags.
type options struct {
	dbPath  string
	groupID string
	code    string
	sortBy  string
}

func main() {
	var opts options
	flag.StringVar(&opts.dbPath, "db", "./data/homegame.db", "path to the ledger database")
	flag.StringVar(&opts.groupID, "group", "", "group id")
	flag.StringVar(&opts.code, "code", "", "group invite code, instead of -group")
	flag.StringVar(&opts.sortBy, "sort", "profit", "sort key: profit, buy_ins or sessions")
	flag.Parse()

	if opts.groupID == "" && opts.code == "" {
		fmt.Fprintf(os.Stderr, "usage: %s -group <id> | -code <invite code> [-db path] [-sort key]\n", os.Args[0])
		os.Exit(2)
	}

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	if err := run(context.Background(), opts); err != nil {
		logger.Error("Leaderboard failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	store, err := sqlite.New(opts.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	var group *models.Group
	if opts.groupID != "" {
		group, err = store.GetGroup(ctx, opts.groupID)
	} else {
		group, err = store.GetGroupByInviteCode(ctx, opts.code)
	}
	if err != nil {
		return fmt.Errorf("group not found: %w", err)
	}

	manager := league.NewManager(store, identity.NewStoreResolver(store))
	// The owner can see everything in the group.
	board, err := manager.GroupLeaderboard(ctx, group.ID, group.CreatedBy, opts.sortBy)
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}

	pterm.DefaultHeader.WithFullWidth().Println(group.Name)
	pterm.Info.Printfln("%d games, sorted by %s", board.GamesCounted, board.SortKey)

	members, guests := calculator.SplitGuests(board.Players)
	pterm.DefaultSection.Println("Members")
	renderTable(members)
	if len(guests) > 0 {
		pterm.DefaultSection.Println("Guests")
		renderTable(guests)
	}
	return nil
}

func renderTable(stats []calculator.PlayerStats) {
	if len(stats) == 0 {
		pterm.Println(pterm.Gray("  no games yet"))
		return
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData(stats)).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

// tableData lays out stats as rows under a header, ranked in the given order.
func tableData(stats []calculator.PlayerStats) pterm.TableData {
	data := pterm.TableData{{"#", "Player", "Profit", "Buy-ins", "Cash-outs", "Games", "Up"}}
	for i, s := range stats {
		data = append(data, []string{
			fmt.Sprint(i + 1),
			s.Name,
			money(s.TotalProfit),
			fmt.Sprintf("%.2f", s.TotalBuyIns),
			fmt.Sprintf("%.2f", s.TotalEndAmounts),
			fmt.Sprint(s.GamesPlayed),
			upMark(s.WinRate),
		})
	}
	return data
}

func upMark(winRate float64) string {
	if winRate > 0 {
		return "yes"
	}
	return ""
}

func money(v float64) string {
	s := fmt.Sprintf("%+.2f", v)
	switch {
	case v > 0:
		return pterm.Green(s)
	case v < 0:
		return pterm.Red(s)
	}
	return s
}
