package session

import (
	"context"

	"github.com/avasilyev/cmskeeper/internal/logging"
)

// Coordinator bridges the raw status stream into the composite State
// consumed by navigation, and owns the one cross-cutting rule: an
// authenticated status implies a resolved user.
//
// Event handling is strictly serialized. The loop does not read event n+1
// until event n's user resolution has finished and the resulting State has
// been handed to the consumer; the unbuffered output channel is what enforces
// the second half of that.
type Coordinator struct {
	repo   *Repository
	dir    *Directory
	log    logging.Logger
	states chan State
}

func NewCoordinator(repo *Repository, dir *Directory, log logging.Logger) *Coordinator {
	return &Coordinator{
		repo:   repo,
		dir:    dir,
		log:    log,
		states: make(chan State),
	}
}

// States is the sequence navigation subscribes to. It closes when the
// underlying status stream terminates or the coordinator's context is
// cancelled — exactly once either way.
func (c *Coordinator) States() <-chan State {
	return c.states
}

// Start subscribes to the status stream and launches the event loop. The
// coordinator does nothing before Start; its owner decides when observation
// begins.
func (c *Coordinator) Start(ctx context.Context) {
	statuses := c.repo.Subscribe()
	go c.run(ctx, statuses)
}

// RequestLogout asks the session repository to end the session. It emits no
// State itself; the status event arriving asynchronously does.
func (c *Coordinator) RequestLogout(ctx context.Context) {
	c.repo.LogOut(ctx)
}

func (c *Coordinator) run(ctx context.Context, statuses <-chan Status) {
	defer close(c.states)
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-statuses:
			if !ok {
				return
			}
			next := c.stateFor(ctx, s)
			select {
			case c.states <- next:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (c *Coordinator) stateFor(ctx context.Context, s Status) State {
	switch s {
	case StatusAuthenticated:
		return c.resolveAuthenticated(ctx)
	case StatusUnauthenticated:
		c.dir.ClearUser()
		return Unauthenticated()
	default:
		return Unknown()
	}
}

// resolveAuthenticated is the single decision point for the policy that an
// authenticated status with an unresolved user is still reported as
// authenticated. Return Unauthenticated() here instead to demote such
// sessions; nothing else in the state machine needs to change.
func (c *Coordinator) resolveAuthenticated(ctx context.Context) State {
	user := c.dir.GetUser(ctx)
	if user.IsEmpty() {
		c.log.Warn(ctx, "authenticated session with unresolved principal")
	}
	return Authenticated(user)
}
