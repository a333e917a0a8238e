package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage"
)

const gameColumns = "id, group_id, date, notes, created_by, created_at, status"

// CreateGame persists a new game and any initial sessions.
func (s *SQLiteStore) CreateGame(ctx context.Context, game *models.Game) error {
	// Generate IDs if not set
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if game.CreatedAt == 0 {
		game.CreatedAt = time.Now().Unix()
	}
	if game.Status == "" {
		game.Status = models.StatusOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO games ("+gameColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		game.ID, game.GroupID, game.Date, nullable(game.Notes), game.CreatedBy, game.CreatedAt, string(game.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	for i := range game.Sessions {
		sess := &game.Sessions[i]
		sess.Recompute()
		if err := insertSession(ctx, tx, game.ID, sess); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGame retrieves a game by ID, including its sessions.
func (s *SQLiteStore) GetGame(ctx context.Context, gameID string) (*models.Game, error) {
	games, err := s.queryGames(ctx, "SELECT "+gameColumns+" FROM games WHERE id = ?", gameID)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("game %s: %w", gameID, storage.ErrNotFound)
	}
	return games[0], nil
}

// ListGamesByGroup retrieves all games of a group, newest first.
func (s *SQLiteStore) ListGamesByGroup(ctx context.Context, groupID string) ([]*models.Game, error) {
	return s.queryGames(ctx,
		"SELECT "+gameColumns+" FROM games WHERE group_id = ? ORDER BY date DESC, created_at DESC",
		groupID,
	)
}

// ListGamesForUser retrieves every game the user has a session in, newest first.
func (s *SQLiteStore) ListGamesForUser(ctx context.Context, userID string) ([]*models.Game, error) {
	return s.queryGames(ctx,
		`SELECT `+gameColumns+` FROM games
		 WHERE id IN (SELECT game_id FROM game_sessions WHERE user_id = ?)
		 ORDER BY date DESC, created_at DESC`,
		userID,
	)
}

// UpdateGameStatus moves a game between statuses if it is still in from.
func (s *SQLiteStore) UpdateGameStatus(ctx context.Context, gameID string, from, to models.GameStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE games SET status = ? WHERE id = ? AND status = ?",
		string(to), gameID, string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return missingOrConflict(ctx, s.db, gameID)
	}
	return nil
}

// ReopenGame moves a completed game back to open and clears its payout confirmations.
func (s *SQLiteStore) ReopenGame(ctx context.Context, gameID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE games SET status = ? WHERE id = ? AND status = ?",
		string(models.StatusOpen), gameID, string(models.StatusCompleted),
	)
	if err != nil {
		return fmt.Errorf("failed to reopen game: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return missingOrConflict(ctx, tx, gameID)
	}

	if err := s.step("reopen_game:payout_acks"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE payout_acks SET confirmed = 0 WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to reset payout acks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteGame removes a game, its sessions and its payout acks.
func (s *SQLiteStore) DeleteGame(ctx context.Context, gameID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM payout_acks WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to delete payout acks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM game_sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM games WHERE id = ?", gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if err := expectRows(res, "game", gameID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpsertSession inserts or updates the session with the same identity:
// the user id when set, otherwise the normalized player name.
func (s *SQLiteStore) UpsertSession(ctx context.Context, gameID string, session *models.GameSession, allowed ...models.GameStatus) error {
	session.Recompute()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkStatus(ctx, tx, gameID, allowed); err != nil {
		return err
	}

	rowID, err := findSession(ctx, tx, gameID, session.Participant())
	if err != nil {
		return err
	}

	if rowID == 0 {
		if err := insertSession(ctx, tx, gameID, session); err != nil {
			return err
		}
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE game_sessions
			 SET player_name = ?, name_key = ?, buy_in = ?, end_amount = ?, profit = ?, role = ?
			 WHERE id = ?`,
			session.PlayerName, models.NormalizeName(session.PlayerName),
			session.BuyIn, session.EndAmount, session.Profit, nullable(string(session.Role)),
			rowID,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to update session: %w", storage.ErrDuplicate)
		}
		if err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSession removes the session belonging to p.
func (s *SQLiteStore) DeleteSession(ctx context.Context, gameID string, p models.Participant, allowed ...models.GameStatus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkStatus(ctx, tx, gameID, allowed); err != nil {
		return err
	}

	rowID, err := findSession(ctx, tx, gameID, p)
	if err != nil {
		return err
	}
	if rowID == 0 {
		return fmt.Errorf("session %s in game %s: %w", p.Key(), gameID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM game_sessions WHERE id = ?", rowID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// queryGames runs a game query and attaches sessions. Game rows are fully read
// before sessions are loaded, since the store holds a single connection.
func (s *SQLiteStore) queryGames(ctx context.Context, query string, args ...any) ([]*models.Game, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}

	var games []*models.Game
	byID := make(map[string]*models.Game)
	for rows.Next() {
		game := &models.Game{}
		var notes sql.NullString
		var status string
		if err := rows.Scan(&game.ID, &game.GroupID, &game.Date, &notes, &game.CreatedBy, &game.CreatedAt, &status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		game.Notes = notes.String
		game.Status = models.GameStatus(status)
		games = append(games, game)
		byID[game.ID] = game
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	if len(games) == 0 {
		return games, nil
	}

	ids := make([]any, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	sessRows, err := s.db.QueryContext(ctx,
		`SELECT game_id, player_name, buy_in, end_amount, profit, user_id, role
		 FROM game_sessions WHERE game_id IN (`+placeholders(len(ids))+`) ORDER BY id`,
		ids...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}
	defer sessRows.Close()

	for sessRows.Next() {
		var gameID string
		var sess models.GameSession
		var userID, role sql.NullString
		if err := sessRows.Scan(&gameID, &sess.PlayerName, &sess.BuyIn, &sess.EndAmount, &sess.Profit, &userID, &role); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.UserID = userID.String
		sess.Role = models.SessionRole(role.String)
		if g, ok := byID[gameID]; ok {
			g.Sessions = append(g.Sessions, sess)
		}
	}
	if err := sessRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return games, nil
}

func insertSession(ctx context.Context, q querier, gameID string, sess *models.GameSession) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO game_sessions (game_id, player_name, name_key, buy_in, end_amount, profit, user_id, role)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, sess.PlayerName, models.NormalizeName(sess.PlayerName),
		sess.BuyIn, sess.EndAmount, sess.Profit, nullable(sess.UserID), nullable(string(sess.Role)),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to insert session: %w", storage.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// findSession returns the row id of p's session in the game, or 0.
func findSession(ctx context.Context, q querier, gameID string, p models.Participant) (int64, error) {
	var rowID int64
	var err error
	if p.UserID != "" {
		err = q.QueryRowContext(ctx,
			"SELECT id FROM game_sessions WHERE game_id = ? AND user_id = ?",
			gameID, p.UserID,
		).Scan(&rowID)
	} else {
		err = q.QueryRowContext(ctx,
			"SELECT id FROM game_sessions WHERE game_id = ? AND user_id IS NULL AND name_key = ?",
			gameID, models.NormalizeName(p.Name),
		).Scan(&rowID)
	}
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find session: %w", err)
	}
	return rowID, nil
}

// checkStatus verifies the game exists and, when allowed is non-empty, that
// its status is one of allowed.
func checkStatus(ctx context.Context, q querier, gameID string, allowed []models.GameStatus) error {
	var status string
	err := q.QueryRowContext(ctx, "SELECT status FROM games WHERE id = ?", gameID).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("game %s: %w", gameID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get game status: %w", err)
	}
	if len(allowed) > 0 && !slices.Contains(allowed, models.GameStatus(status)) {
		return fmt.Errorf("game %s is %s: %w", gameID, status, storage.ErrStatusConflict)
	}
	return nil
}

func missingOrConflict(ctx context.Context, q querier, gameID string) error {
	if err := checkStatus(ctx, q, gameID, nil); err != nil {
		return err
	}
	return fmt.Errorf("game %s: %w", gameID, storage.ErrStatusConflict)
}
