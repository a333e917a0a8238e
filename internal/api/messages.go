package api

// Shared resources

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type Member struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	JoinedAt int64  `json:"joined_at"`
	Role     string `json:"role"`
	Guest    bool   `json:"guest,omitempty"`
}

type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	CreatedBy   string   `json:"created_by"`
	CreatedAt   int64    `json:"created_at"`
	InviteCode  string   `json:"invite_code"`
	Members     []Member `json:"members"`
}

type Session struct {
	PlayerName string  `json:"player_name"`
	UserID     string  `json:"user_id,omitempty"`
	BuyIn      float64 `json:"buy_in"`
	EndAmount  float64 `json:"end_amount"`
	Profit     float64 `json:"profit"`
	Guest      bool    `json:"guest,omitempty"`
}

type Game struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Date      int64     `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt int64     `json:"created_at"`
	Status    string    `json:"status"`
	Sessions  []Session `json:"sessions"`
}

type Claim struct {
	ID             string `json:"id"`
	GroupID        string `json:"group_id"`
	GuestName      string `json:"guest_name"`
	RequesterID    string `json:"requester_id"`
	RequesterEmail string `json:"requester_email,omitempty"`
	Status         string `json:"status"`
	CreatedAt      int64  `json:"created_at"`
}

type PlayerStats struct {
	Name            string  `json:"name"`
	UserID          string  `json:"user_id,omitempty"`
	Guest           bool    `json:"guest,omitempty"`
	TotalProfit     float64 `json:"total_profit"`
	GamesPlayed     int     `json:"games_played"`
	TotalBuyIns     float64 `json:"total_buy_ins"`
	TotalEndAmounts float64 `json:"total_end_amounts"`
	WinRate         float64 `json:"win_rate"`
}

type Point struct {
	GameID     string  `json:"game_id"`
	Date       int64   `json:"date"`
	Profit     float64 `json:"profit"`
	Cumulative float64 `json:"cumulative"`
}

type Series struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type PayoutAck struct {
	GameID      string `json:"game_id"`
	UserID      string `json:"user_id"`
	CompletedAt int64  `json:"completed_at"`
	Method      string `json:"method,omitempty"`
	Handle      string `json:"handle,omitempty"`
	Confirmed   bool   `json:"confirmed"`
}

// Empty is the request or response of RPCs that carry no data.
type Empty struct{}

// AuthService

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

// GroupService

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// OwnerName defaults to the caller's display name.
	OwnerName string `json:"owner_name,omitempty"`
}

type JoinGroupRequest struct {
	InviteCode string `json:"invite_code"`
	// UserName defaults to the caller's display name.
	UserName string `json:"user_name,omitempty"`
}

type GroupRequest struct {
	GroupID string `json:"group_id"`
}

type GroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type RenameGroupRequest struct {
	GroupID     string `json:"group_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type AddGuestMemberRequest struct {
	GroupID   string `json:"group_id"`
	GuestName string `json:"guest_name"`
}

type AddGuestMemberResponse struct {
	Member Member `json:"member"`
	// Warning is set when the name is already used in the group.
	Warning string `json:"warning,omitempty"`
}

// MemberRequest targets one member of a group.
type MemberRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

type UpdateMemberNameRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
}

type InviteQRCodeResponse struct {
	InviteCode string `json:"invite_code"`
	JoinURL    string `json:"join_url"`
	// PNG is base64 encoded on the wire.
	PNG []byte `json:"png"`
}

// ClaimService

type SubmitClaimRequest struct {
	GroupID   string `json:"group_id"`
	GuestName string `json:"guest_name"`
	// Email defaults to the caller's registered email.
	Email string `json:"email,omitempty"`
}

type ClaimResponse struct {
	Claim Claim `json:"claim"`
}

type ClaimIDRequest struct {
	RequestID string `json:"request_id"`
}

type ApproveClaimResponse struct {
	SessionsUpdated int `json:"sessions_updated"`
}

type ListClaimsResponse struct {
	Claims []Claim `json:"claims"`
}

// GameService

type CreateGameRequest struct {
	GroupID string `json:"group_id"`
	Date    int64  `json:"date,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

type GameResponse struct {
	Game Game `json:"game"`
}

type ListGamesResponse struct {
	Games []Game `json:"games"`
}

type UpdateSessionRequest struct {
	GameID string `json:"game_id"`
	// UserID is empty for guests recorded by name.
	UserID     string  `json:"user_id,omitempty"`
	PlayerName string  `json:"player_name,omitempty"`
	BuyIn      float64 `json:"buy_in"`
	EndAmount  float64 `json:"end_amount"`
}

type SessionResponse struct {
	Session Session `json:"session"`
}

type RemoveSessionRequest struct {
	GameID string `json:"game_id"`
	UserID string `json:"user_id"`
}

type RemoveGuestSessionRequest struct {
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
}

// StatsService

type LeaderboardRequest struct {
	GroupID string `json:"group_id"`
	// SortBy is "profit" (default), "buy_ins" or "sessions".
	SortBy string `json:"sort_by,omitempty"`
}

type LeaderboardResponse struct {
	Members      []PlayerStats `json:"members"`
	Guests       []PlayerStats `json:"guests"`
	GamesCounted int           `json:"games_counted"`
}

type PlayerStatsRequest struct {
	// UserID defaults to the caller.
	UserID string `json:"user_id,omitempty"`
}

type PlayerStatsResponse struct {
	Stats PlayerStats `json:"stats"`
}

type RunningTotalsResponse struct {
	Series []Series `json:"series"`
}

// PayoutService

type RecordPayoutRequest struct {
	GameID    string `json:"game_id"`
	Method    string `json:"method,omitempty"`
	Handle    string `json:"handle,omitempty"`
	Confirmed bool   `json:"confirmed"`
}

type PayoutRequest struct {
	GameID string `json:"game_id"`
	// UserID defaults to the caller.
	UserID string `json:"user_id,omitempty"`
}

type PayoutResponse struct {
	Ack PayoutAck `json:"ack"`
}

type ListPayoutsResponse struct {
	Acks []PayoutAck `json:"acks"`
}
