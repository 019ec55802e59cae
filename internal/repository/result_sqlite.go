package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

type sqliteResult struct {
	conn *sql.DB
}

func NewSQLiteResultRepository(conn *sql.DB) ResultRepository {
	return &sqliteResult{
		conn: conn,
	}
}

func (that *sqliteResult) Save(ctx context.Context, result *entity.MatchResult) error {
	query := `INSERT OR REPLACE INTO results (id, winner, guesses, hits, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.ID,
		result.Winner,
		result.Guesses,
		result.Hits,
		result.StartedAt.UnixMilli(),
		result.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *sqliteResult) GetByID(ctx context.Context, id string) (*entity.MatchResult, error) {
	query := `SELECT id, winner, guesses, hits, started_at, finished_at FROM results WHERE id = ?`

	var (
		result                entity.MatchResult
		startedAt, finishedAt int64
	)

	err := that.conn.QueryRowContext(ctx, query, id).
		Scan(&result.ID, &result.Winner, &result.Guesses, &result.Hits, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find result: %w", err)
	}

	result.StartedAt = time.UnixMilli(startedAt).UTC()
	result.FinishedAt = time.UnixMilli(finishedAt).UTC()

	return &result, nil
}
