package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avasilyev/cmskeeper/internal/client/models"
	"github.com/avasilyev/cmskeeper/internal/client/session"
	"github.com/avasilyev/cmskeeper/internal/logging"
)

func TestIsLoggedIn(t *testing.T) {
	app := &App{log: logging.NewNop(), current: session.Unknown()}
	require.False(t, app.isLoggedIn())

	app.setState(session.Unauthenticated())
	require.False(t, app.isLoggedIn())

	app.setState(session.Authenticated(models.User{ID: "7", Username: "alice"}))
	require.True(t, app.isLoggedIn())
}

func TestStatusLine_FollowsState(t *testing.T) {
	app := &App{log: logging.NewNop(), current: session.Unknown()}
	require.Equal(t, "(...)", app.statusLine())

	app.setState(session.Unauthenticated())
	require.Equal(t, "(guest)", app.statusLine())

	app.setState(session.Authenticated(models.User{ID: "7", Username: "alice"}))
	require.Equal(t, "(alice)", app.statusLine())
}

func TestStatusLine_AuthenticatedWithUnresolvedUser(t *testing.T) {
	app := &App{log: logging.NewNop(), current: session.Authenticated(models.Empty)}
	require.Equal(t, "(session)", app.statusLine())
}

func TestSetState_ReplacesWholesale(t *testing.T) {
	app := &App{log: logging.NewNop(), current: session.Unknown()}

	st := session.Authenticated(models.User{ID: "7", Username: "alice"})
	app.setState(st)
	require.Equal(t, st, app.state())

	app.setState(session.Unauthenticated())
	require.Equal(t, session.Unauthenticated(), app.state())
}
