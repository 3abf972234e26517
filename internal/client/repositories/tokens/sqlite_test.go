package tokens

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avasilyev/cmskeeper/internal/cryptox"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE tokens (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL,
  nonce BLOB NOT NULL
);
`)
	require.NoError(t, err)

	box, err := cryptox.NewBox(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)

	return NewSQLiteRepository(db, box), db
}

func TestSetGet_RoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "session_token", []byte("jwt-value")))

	got, err := repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Equal(t, []byte("jwt-value"), got)
}

func TestSet_SealsValueAtRest(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "session_token", []byte("jwt-value")))

	var raw []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM tokens WHERE key = ?`, "session_token").Scan(&raw))
	require.NotContains(t, string(raw), "jwt-value")
}

func TestGet_AbsentKey(t *testing.T) {
	repo, _ := setupRepo(t)

	got, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSet_Overwrites(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "session_token", []byte("first")))
	require.NoError(t, repo.Set(ctx, "session_token", []byte("second")))

	got, err := repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}

func TestDelete(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "session_token", []byte("v")))
	require.NoError(t, repo.Delete(ctx, "session_token"))

	got, err := repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Nil(t, got)

	// deleting a missing key is not an error
	require.NoError(t, repo.Delete(ctx, "session_token"))
}

func TestReset_ReplacesEverything(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "stale", []byte("old")))
	require.NoError(t, repo.Reset(ctx, "session_token", []byte("fresh")))

	got, err := repo.Get(ctx, "stale")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Equal(t, []byte("fresh"), got)
}

func TestClear(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{"a", "b"} {
		got, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, got)
	}
}
