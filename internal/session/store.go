package session

import (
	"context"

	dErrors "propertyhub/pkg/domain-errors"
)

// ErrNoToken is returned by Retrieve when no token is stored.
var ErrNoToken = dErrors.New(dErrors.CodeNotFound, "no token stored")

// Error Contract:
// All store methods follow this error pattern:
// - Retrieve returns ErrNoToken when no token is present
// - Remove is idempotent: removing an absent token is not an error
// - Return wrapped errors with context for infrastructure failures
//
// TokenStore is the opaque persistence collaborator for the client-held
// credential. It is keyed by a single well-known storage key. Writes and
// removals must be observable by every watcher, including ones in other
// execution contexts, so the manager can react to changes it did not make.
type TokenStore interface {
	Persist(ctx context.Context, token string) error
	Retrieve(ctx context.Context) (string, error)
	Remove(ctx context.Context) error

	// Watch returns a channel that receives a signal whenever the stored
	// token is written or removed. The channel is closed when ctx ends.
	// Signals coalesce: a slow consumer sees at least one signal for any
	// burst of changes, which is enough because rechecks are idempotent.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
