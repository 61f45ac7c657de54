package registration

import "context"

// Store is the resource persistence port. Implementations must make Execute
// a per-resource critical section: the callback observes and mutates the
// resource under that resource's lock, and calls against different resources
// may run in parallel.
type Store interface {
	// Find returns a copy of the resource, or sentinel.ErrNotFound.
	Find(ctx context.Context, resourceID string) (*Resource, error)
	// List returns copies of all resources in seed order.
	List(ctx context.Context) ([]*Resource, error)
	// Execute runs mutate under the resource's lock and returns a copy of
	// the resource afterwards. A non-nil error from mutate aborts without
	// publishing any partial state.
	Execute(ctx context.Context, resourceID string, mutate func(*Resource) error) (*Resource, error)
}
