package session

import (
	"context"
	"sync"

	"github.com/avasilyev/cmskeeper/internal/client/client"
	"github.com/avasilyev/cmskeeper/internal/client/models"
	"github.com/avasilyev/cmskeeper/internal/logging"
)

// Directory resolves and caches the User entity for the current session.
// The cache has exactly one writer, the Directory itself; in the reference
// wiring only the Coordinator calls it.
type Directory struct {
	client client.Client
	log    logging.Logger

	mu     sync.Mutex
	user   models.User
	cached bool
}

func NewDirectory(c client.Client, log logging.Logger) *Directory {
	return &Directory{client: c, log: log}
}

// GetUser returns the cached user when present. Otherwise it resolves one:
// if no session token is stored, the empty sentinel is cached and returned;
// if a token exists, the current principal is fetched and cached. Resolution
// errors are logged and substituted with the empty sentinel without being
// cached, so a later call retries. Errors never reach the caller.
func (d *Directory) GetUser(ctx context.Context) models.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cached {
		return d.user
	}

	token, err := d.client.Token(ctx)
	if err != nil {
		d.log.Error(ctx, "token read failed", "error", err)
		return models.Empty
	}
	if token == "" {
		d.user = models.Empty
		d.cached = true
		return d.user
	}

	user, err := d.client.CurrentUser(ctx)
	if err != nil {
		d.log.Error(ctx, "principal fetch failed", "error", err)
		return models.Empty
	}

	d.user = user
	d.cached = true
	return d.user
}

// ClearUser drops the cache, forcing the next GetUser to re-resolve. Invoked
// whenever the coordinator observes a non-authenticated status, so stale
// identity never leaks across sessions.
func (d *Directory) ClearUser() {
	d.mu.Lock()
	d.user = models.User{}
	d.cached = false
	d.mu.Unlock()
}
