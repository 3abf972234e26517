package session

import (
	"context"
	"sync"

	"github.com/avasilyev/cmskeeper/internal/client/client"
	"github.com/avasilyev/cmskeeper/internal/logging"
)

// Repository owns the authoritative authentication status stream. Its own
// methods are the stream's only producer path: LogIn, Register and LogOut
// convert credential service outcomes into status transitions.
//
// Failures are swallowed by contract: the caller of LogIn/Register/LogOut
// never receives an error, the outcome surfaces as the next status event.
// LastFailure keeps the most recent operation error for display.
//
// The repository is a scoped resource: acquired at application start,
// disposed exactly once at teardown. Calling its methods after Dispose is
// undefined.
type Repository struct {
	client client.Client
	log    logging.Logger

	mu       sync.Mutex
	subs     []chan Status
	disposed bool
	lastErr  error
}

func NewRepository(c client.Client, log logging.Logger) *Repository {
	return &Repository{client: c, log: log}
}

// Subscribe registers a consumer of the status stream. The returned channel
// is primed with a synthetic StatusUnauthenticated before any live event,
// then receives every event the repository publishes, in publication order.
// The channel is closed when the repository is disposed.
func (r *Repository) Subscribe() <-chan Status {
	ch := make(chan Status, 1)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		close(ch)
		return ch
	}
	ch <- StatusUnauthenticated
	r.subs = append(r.subs, ch)
	return ch
}

// LogIn exchanges credentials for a session via the credential service.
// Success publishes StatusAuthenticated; any failure publishes
// StatusUnauthenticated.
func (r *Repository) LogIn(ctx context.Context, username string, password []byte) {
	if err := r.client.Login(ctx, username, password); err != nil {
		r.log.Warn(ctx, "login failed", "username", username, "error", err)
		r.setFailure(err)
		r.publish(StatusUnauthenticated)
		return
	}
	r.setFailure(nil)
	r.publish(StatusAuthenticated)
}

// Register creates an account remotely and, like LogIn, establishes a session
// on success.
func (r *Repository) Register(ctx context.Context, username, email string, password []byte) {
	if err := r.client.Register(ctx, username, email, password); err != nil {
		r.log.Warn(ctx, "registration failed", "username", username, "error", err)
		r.setFailure(err)
		r.publish(StatusUnauthenticated)
		return
	}
	r.setFailure(nil)
	r.publish(StatusAuthenticated)
}

// LogOut asks the credential service to drop the stored token, then publishes
// StatusUnauthenticated regardless of the deletion outcome. Token deletion is
// best-effort: a failed delete is logged and otherwise ignored.
func (r *Repository) LogOut(ctx context.Context) {
	if err := r.client.Logout(ctx); err != nil {
		r.log.Warn(ctx, "token deletion failed", "error", err)
	}
	r.setFailure(nil)
	r.publish(StatusUnauthenticated)
}

// LastFailure returns the error behind the most recent failed operation, or
// nil if the last operation succeeded. It is a display side-channel only and
// never affects the stream.
func (r *Repository) LastFailure() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Dispose terminates the status stream: every subscriber channel is closed
// exactly once, and later publishes are dropped. Safe to call more than once.
func (r *Repository) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return
	}
	r.disposed = true
	for _, ch := range r.subs {
		close(ch)
	}
	r.subs = nil
}

func (r *Repository) setFailure(err error) {
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
}

// publish delivers s to every subscriber in registration order. Sends block:
// a slow consumer delays delivery of the next event, it never drops one.
// Holding the mutex across the sends keeps publication ordering total and
// makes a concurrent Dispose wait instead of closing a channel mid-send.
func (r *Repository) publish(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return
	}
	for _, ch := range r.subs {
		ch <- s
	}
}
