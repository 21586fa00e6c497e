package store

import (
	"context"
	"errors"
)

// SnapshotKey is the stable identifier of the persisted cart snapshot.
const SnapshotKey = "@RocketShoes:cart"

// ErrNoSnapshot is returned by Load when no snapshot has been saved yet.
var ErrNoSnapshot = errors.New("no cart snapshot")

// Store persists the serialized cart snapshot. The snapshot is read
// once at startup and overwritten in full on every successful mutation.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
