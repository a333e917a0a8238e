package service

import (
	"github.com/mmynk/homegame/internal/api"
	"github.com/mmynk/homegame/internal/calculator"
	"github.com/mmynk/homegame/internal/models"
)

func toUser(u *models.User) api.User {
	return api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toMember(m models.GroupMember) api.Member {
	return api.Member{
		UserID:   m.UserID,
		UserName: m.UserName,
		JoinedAt: m.JoinedAt,
		Role:     string(m.Role),
		Guest:    m.IsGuest(),
	}
}

func toGroup(g *models.Group) api.Group {
	members := make([]api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = toMember(m)
	}
	return api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
		InviteCode:  g.InviteCode,
		Members:     members,
	}
}

func toSession(s models.GameSession) api.Session {
	return api.Session{
		PlayerName: s.PlayerName,
		UserID:     s.UserID,
		BuyIn:      s.BuyIn,
		EndAmount:  s.EndAmount,
		Profit:     s.Profit,
		Guest:      s.Participant().IsGuest(),
	}
}

func toGame(g *models.Game) api.Game {
	sessions := make([]api.Session, len(g.Sessions))
	for i, s := range g.Sessions {
		sessions[i] = toSession(s)
	}
	return api.Game{
		ID:        g.ID,
		GroupID:   g.GroupID,
		Date:      g.Date,
		Notes:     g.Notes,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
		Status:    string(g.Status),
		Sessions:  sessions,
	}
}

func toClaim(c *models.ClaimRequest) api.Claim {
	return api.Claim{
		ID:             c.ID,
		GroupID:        c.GroupID,
		GuestName:      c.GuestName,
		RequesterID:    c.RequesterID,
		RequesterEmail: c.RequesterEmail,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
	}
}

func toStats(s calculator.PlayerStats) api.PlayerStats {
	return api.PlayerStats{
		Name:            s.Name,
		UserID:          s.UserID,
		Guest:           s.Guest,
		TotalProfit:     s.TotalProfit,
		GamesPlayed:     s.GamesPlayed,
		TotalBuyIns:     s.TotalBuyIns,
		TotalEndAmounts: s.TotalEndAmounts,
		WinRate:         s.WinRate,
	}
}

func toStatsList(stats []calculator.PlayerStats) []api.PlayerStats {
	out := make([]api.PlayerStats, len(stats))
	for i, s := range stats {
		out[i] = toStats(s)
	}
	return out
}

func toSeries(s calculator.PlayerSeries) api.Series {
	points := make([]api.Point, len(s.Points))
	for i, p := range s.Points {
		points[i] = api.Point{
			GameID:     p.GameID,
			Date:       p.Date,
			Profit:     p.Profit,
			Cumulative: p.Cumulative,
		}
	}
	return api.Series{Key: s.Key, Name: s.Name, Points: points}
}

func toPayoutAck(a *models.PayoutAck) api.PayoutAck {
	return api.PayoutAck{
		GameID:      a.GameID,
		UserID:      a.UserID,
		CompletedAt: a.CompletedAt,
		Method:      a.Method,
		Handle:      a.Handle,
		Confirmed:   a.Confirmed,
	}
}
