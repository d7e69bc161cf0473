package blog

import "context"

// Store persists posts. Implementations must be safe for concurrent use.
type Store interface {
	// List returns every post in insertion order.
	List(ctx context.Context) ([]Post, error)

	// Get should return ErrNotFound if no post has the identifier and
	// ErrInvalidID if the identifier is malformed.
	Get(ctx context.Context, id string) (Post, error)

	// Create assigns a fresh identifier to p, stores it, and returns the stored post.
	Create(ctx context.Context, p Post) (Post, error)

	// Delete removes the post if present. A missing post is not an error.
	Delete(ctx context.Context, id string) error

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
