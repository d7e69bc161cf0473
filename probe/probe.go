package probe

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Func reports an error while the checked component is unavailable.
type Func func(ctx context.Context) error

// Pinger is satisfied by every blog store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MongoPinger is the part of *mongo.Client the readiness check needs.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Store checks a store through its own Ping.
func Store(name string, store Pinger) Func {
	return func(ctx context.Context) error {
		if store == nil {
			return fmt.Errorf("%s store is not configured", name)
		}
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("%s store unreachable: %w", name, err)
		}
		return nil
	}
}

// Mongo pings the replica set primary; posts cannot be written without one.
func Mongo(client MongoPinger) Func {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.New("mongo client is not configured")
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return fmt.Errorf("mongo primary unreachable: %w", err)
		}
		return nil
	}
}
