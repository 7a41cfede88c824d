package sharing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/recoverlink/recoverlink/internal/dbx"
)

// SQLiteRepository implements Repository over a dbx.DBTX, which may be the
// database handle itself or an open transaction.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, row *Row) error {
	query := `INSERT INTO sponsor_shared_entries
		(id, user_id, connection_id, direction, journal_entry_id, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.UserID, row.ConnectionID, string(row.Direction),
		row.JournalEntryID, row.Payload,
		row.CreatedAt.UnixMilli(), row.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert share row: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ExistsByPayload(ctx context.Context, payload string) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM sponsor_shared_entries WHERE payload = ?`
	if err := r.db.QueryRowContext(ctx, query, payload).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check payload existence: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) ListByConnection(ctx context.Context, connectionID string, direction Direction) ([]Row, error) {
	query := `SELECT id, user_id, connection_id, direction, journal_entry_id, payload, created_at, updated_at
		FROM sponsor_shared_entries
		WHERE connection_id = ? AND direction = ?
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, connectionID, string(direction))
	if err != nil {
		return nil, fmt.Errorf("failed to select share rows: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func (r *SQLiteRepository) ListByEntry(ctx context.Context, entryID string, direction Direction) ([]Row, error) {
	query := `SELECT id, user_id, connection_id, direction, journal_entry_id, payload, created_at, updated_at
		FROM sponsor_shared_entries
		WHERE journal_entry_id = ? AND direction = ?
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, entryID, string(direction))
	if err != nil {
		return nil, fmt.Errorf("failed to select share rows: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	var result []Row
	for rows.Next() {
		var (
			item               Row
			direction          string
			createdAt, updated int64
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.ConnectionID, &direction,
			&item.JournalEntryID, &item.Payload, &createdAt, &updated); err != nil {
			return nil, err
		}
		item.Direction = Direction(direction)
		item.CreatedAt = time.UnixMilli(createdAt).UTC()
		item.UpdatedAt = time.UnixMilli(updated).UTC()
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
