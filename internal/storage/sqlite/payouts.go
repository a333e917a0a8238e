package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/homegame/internal/models"
	"github.com/mmynk/homegame/internal/storage"
)

const payoutColumns = "game_id, user_id, completed_at, method, handle, confirmed"

// PutPayoutAck creates or replaces a payout acknowledgement.
func (s *SQLiteStore) PutPayoutAck(ctx context.Context, ack *models.PayoutAck) error {
	if ack.CompletedAt == 0 {
		ack.CompletedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payout_acks (`+payoutColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (game_id, user_id) DO UPDATE SET
		     completed_at = excluded.completed_at,
		     method = excluded.method,
		     handle = excluded.handle,
		     confirmed = excluded.confirmed`,
		ack.GameID, ack.UserID, ack.CompletedAt, nullable(ack.Method), nullable(ack.Handle), ack.Confirmed,
	)
	if err != nil {
		return fmt.Errorf("failed to save payout ack: %w", err)
	}

	return nil
}

// GetPayoutAck retrieves the acknowledgement for a game and user.
func (s *SQLiteStore) GetPayoutAck(ctx context.Context, gameID, userID string) (*models.PayoutAck, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+payoutColumns+" FROM payout_acks WHERE game_id = ? AND user_id = ?",
		gameID, userID,
	)
	ack, err := scanPayoutAck(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payout ack %s/%s: %w", gameID, userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payout ack: %w", err)
	}
	return ack, nil
}

// ListPayoutAcks retrieves every acknowledgement recorded for a game.
func (s *SQLiteStore) ListPayoutAcks(ctx context.Context, gameID string) ([]*models.PayoutAck, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+payoutColumns+" FROM payout_acks WHERE game_id = ? ORDER BY completed_at",
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payout acks: %w", err)
	}
	defer rows.Close()

	var acks []*models.PayoutAck
	for rows.Next() {
		ack, err := scanPayoutAck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payout ack: %w", err)
		}
		acks = append(acks, ack)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payout acks: %w", err)
	}

	return acks, nil
}

func scanPayoutAck(row scanner) (*models.PayoutAck, error) {
	ack := &models.PayoutAck{}
	var method, handle sql.NullString
	if err := row.Scan(&ack.GameID, &ack.UserID, &ack.CompletedAt, &method, &handle, &ack.Confirmed); err != nil {
		return nil, err
	}
	ack.Method = method.String
	ack.Handle = handle.String
	return ack, nil
}
