package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"sync"

	"github.com/avasilyev/cmskeeper/internal/client/client"
	"github.com/avasilyev/cmskeeper/internal/client/config"
	"github.com/avasilyev/cmskeeper/internal/client/repositories/tokens"
	"github.com/avasilyev/cmskeeper/internal/client/session"
	"github.com/avasilyev/cmskeeper/internal/cryptox"
	"github.com/avasilyev/cmskeeper/internal/logging"
)

// App wires the credential service, the session core and the REPL together.
// It owns one repository/directory/coordinator trio for its whole lifetime
// and holds the last AuthenticationState the coordinator emitted; the REPL
// reads it through state().
type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	apiClient   client.Client
	sessions    *session.Repository
	coordinator *session.Coordinator
	reader      *bufio.Reader

	mu      sync.Mutex
	current session.State
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "failed to initialize vault database", "error", err)
		return nil, err
	}

	key, err := cryptox.LoadKey(cfg.KeyPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	box, err := cryptox.NewBox(key)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := tokens.NewSQLiteRepository(db, box)
	apiClient := client.NewStrapiClient(cfg.BaseURL, cfg.HTTPTimeout, store, log)

	repo := session.NewRepository(apiClient, log)
	dir := session.NewDirectory(apiClient, log)
	coord := session.NewCoordinator(repo, dir, log)

	return &App{
		config:      cfg,
		log:         log,
		db:          db,
		apiClient:   apiClient,
		sessions:    repo,
		coordinator: coord,
		reader:      bufio.NewReader(os.Stdin),
		current:     session.Unknown(),
	}, nil
}

// Run starts the coordinator, mirrors its state sequence into the app, and
// drives the REPL until the user exits. Teardown disposes the session
// repository, which completes the state sequence and stops the mirror.
func (a *App) Run(ctx context.Context) {
	a.coordinator.Start(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for st := range a.coordinator.States() {
			a.setState(st)
		}
	}()

	runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))

	a.sessions.Dispose()
	<-done
	_ = a.apiClient.Close()
	_ = a.db.Close()
}

func (a *App) setState(st session.State) {
	a.mu.Lock()
	changed := st != a.current
	a.current = st
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "auth state changed",
			"status", st.Status.String(), "user", st.User.Username)
	}
}

func (a *App) state() session.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *App) isLoggedIn() bool {
	return a.state().Status == session.StatusAuthenticated
}

// statusLine renders the prompt segment for the current view.
func (a *App) statusLine() string {
	st := a.state()
	switch st.Status {
	case session.StatusAuthenticated:
		if st.User.IsEmpty() {
			return "(session)"
		}
		return "(" + st.User.Username + ")"
	case session.StatusUnauthenticated:
		return "(guest)"
	default:
		return "(...)"
	}
}
