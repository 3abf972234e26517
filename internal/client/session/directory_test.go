package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avasilyev/cmskeeper/internal/client/client"
	"github.com/avasilyev/cmskeeper/internal/client/models"
	"github.com/avasilyev/cmskeeper/internal/logging"
)

var alice = models.User{ID: "7", Username: "alice", Email: "alice@example.com"}

func TestGetUser_NoToken_CachesEmpty(t *testing.T) {
	fc := &fakeClient{}
	d := NewDirectory(fc, logging.NewNop())
	ctx := context.Background()

	require.True(t, d.GetUser(ctx).IsEmpty())
	require.True(t, d.GetUser(ctx).IsEmpty())

	// second call must short-circuit on the cache
	_, _, token, user := fc.calls()
	require.Equal(t, 1, token)
	require.Equal(t, 0, user)
}

func TestGetUser_ResolvesAndCaches(t *testing.T) {
	fc := &fakeClient{TokenRet: "session-token", UserRet: alice}
	d := NewDirectory(fc, logging.NewNop())
	ctx := context.Background()

	require.Equal(t, alice, d.GetUser(ctx))
	require.Equal(t, alice, d.GetUser(ctx))

	_, _, _, user := fc.calls()
	require.Equal(t, 1, user)
}

func TestGetUser_FetchFailureNotCached(t *testing.T) {
	fc := &fakeClient{TokenRet: "session-token", UserErr: client.ErrUnavailable}
	d := NewDirectory(fc, logging.NewNop())
	ctx := context.Background()

	require.True(t, d.GetUser(ctx).IsEmpty())

	fc.mu.Lock()
	fc.UserErr = nil
	fc.UserRet = alice
	fc.mu.Unlock()

	// failure was not cached, so this call re-resolves
	require.Equal(t, alice, d.GetUser(ctx))

	_, _, _, user := fc.calls()
	require.Equal(t, 2, user)
}

func TestGetUser_TokenReadFailureNotCached(t *testing.T) {
	fc := &fakeClient{TokenErr: client.ErrUnavailable}
	d := NewDirectory(fc, logging.NewNop())
	ctx := context.Background()

	require.True(t, d.GetUser(ctx).IsEmpty())
	require.True(t, d.GetUser(ctx).IsEmpty())

	_, _, token, _ := fc.calls()
	require.Equal(t, 2, token)
}

func TestClearUser_ForcesReresolve(t *testing.T) {
	fc := &fakeClient{TokenRet: "session-token", UserRet: alice}
	d := NewDirectory(fc, logging.NewNop())
	ctx := context.Background()

	require.Equal(t, alice, d.GetUser(ctx))

	d.ClearUser()

	bob := models.User{ID: "8", Username: "bob"}
	fc.mu.Lock()
	fc.UserRet = bob
	fc.mu.Unlock()

	// a cleared cache must never serve the previous session's identity
	require.Equal(t, bob, d.GetUser(ctx))

	_, _, _, user := fc.calls()
	require.Equal(t, 2, user)
}
