package sharing

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var rowTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setupShareDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "share.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testRow(id string, direction Direction) *Row {
	return &Row{
		ID:             id,
		UserID:         "user-1",
		ConnectionID:   "conn-1",
		Direction:      direction,
		JournalEntryID: "entry-1",
		Payload:        "RCSHARE:payload-" + id,
		CreatedAt:      rowTime,
		UpdatedAt:      rowTime,
	}
}

func TestInsertAndListByConnection(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupShareDB(t))

	require.NoError(t, repo.Insert(ctx, testRow("a", DirectionIncoming)))
	require.NoError(t, repo.Insert(ctx, testRow("b", DirectionIncoming)))
	require.NoError(t, repo.Insert(ctx, testRow("c", DirectionOutgoing)))

	rows, err := repo.ListByConnection(ctx, "conn-1", DirectionIncoming)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "a", rows[0].ID)
	require.Equal(t, "b", rows[1].ID)
	require.Equal(t, DirectionIncoming, rows[0].Direction)
	require.True(t, rows[0].CreatedAt.Equal(rowTime))
}

func TestListByConnectionScopesByConnection(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupShareDB(t))

	other := testRow("other", DirectionIncoming)
	other.ConnectionID = "conn-2"

	require.NoError(t, repo.Insert(ctx, testRow("a", DirectionIncoming)))
	require.NoError(t, repo.Insert(ctx, other))

	rows, err := repo.ListByConnection(ctx, "conn-1", DirectionIncoming)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "a", rows[0].ID)
}

func TestListByConnectionOrdersOldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupShareDB(t))

	newer := testRow("newer", DirectionIncoming)
	newer.CreatedAt = rowTime.Add(time.Hour)
	older := testRow("older", DirectionIncoming)

	require.NoError(t, repo.Insert(ctx, newer))
	require.NoError(t, repo.Insert(ctx, older))

	rows, err := repo.ListByConnection(ctx, "conn-1", DirectionIncoming)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "older", rows[0].ID)
	require.Equal(t, "newer", rows[1].ID)
}

func TestListByEntry(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupShareDB(t))

	comment := testRow("c1", DirectionComment)
	otherEntry := testRow("c2", DirectionComment)
	otherEntry.JournalEntryID = "entry-2"

	require.NoError(t, repo.Insert(ctx, comment))
	require.NoError(t, repo.Insert(ctx, otherEntry))
	require.NoError(t, repo.Insert(ctx, testRow("share", DirectionOutgoing)))

	rows, err := repo.ListByEntry(ctx, "entry-1", DirectionComment)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "c1", rows[0].ID)
}

func TestExistsByPayload(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupShareDB(t))

	require.NoError(t, repo.Insert(ctx, testRow("a", DirectionIncoming)))

	exists, err := repo.ExistsByPayload(ctx, "RCSHARE:payload-a")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByPayload(ctx, "RCSHARE:payload-unknown")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupShareDB(t))

	require.NoError(t, repo.Insert(ctx, testRow("a", DirectionIncoming)))
	require.Error(t, repo.Insert(ctx, testRow("a", DirectionIncoming)))
}

func TestInsertRejectsUnknownDirection(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupShareDB(t))

	bad := testRow("a", Direction("sideways"))
	require.Error(t, repo.Insert(ctx, bad))
}
