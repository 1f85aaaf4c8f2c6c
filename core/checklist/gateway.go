package checklist

import (
	"context"

	"github.com/pkg/errors"
)

// Gateway is a durable slot holding one serialized State per user id.
type Gateway interface {
	// Get returns the last blob stored for userID; found is false when there is none.
	Get(ctx context.Context, userID string) (blob string, found bool, err error)
	// Put replaces the blob stored for userID.
	Put(ctx context.Context, userID, blob string) error
}

type fallback []Gateway

// Fallback reads from the first gateway holding a blob for the user, skipping failing ones,
// and writes to every gateway.
func Fallback(gws ...Gateway) Gateway {
	return fallback(gws)
}

func (f fallback) Get(ctx context.Context, userID string) (string, bool, error) {
	var firstErr error
	for _, gw := range f {
		blob, found, err := gw.Get(ctx, userID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if found {
			return blob, true, nil
		}
	}
	return "", false, firstErr
}

func (f fallback) Put(ctx context.Context, userID, blob string) error {
	var firstErr error
	for i, gw := range f {
		if err := gw.Put(ctx, userID, blob); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "gateway %d", i)
		}
	}
	return firstErr
}
