package save

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrStore           = errors.New("save store failed")
	ErrCorruptSnapshot = errors.New("save data is corrupt")
)

// Gateway reads and writes one snapshot under a fixed key.
type Gateway struct {
	store BlobStore
	key   string
}

// NewGateway binds store to key.
func NewGateway(store BlobStore, key string) *Gateway {
	return &Gateway{store: store, key: key}
}

// Key returns the storage key of the snapshot.
func (g *Gateway) Key() string { return g.key }

// Save replaces the stored snapshot.
func (g *Gateway) Save(ctx context.Context, s Snapshot) error {
	blob, err := Encode(s)
	if err != nil {
		return err
	}
	if err := g.store.Set(ctx, g.key, blob); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	return nil
}

// Load returns the stored snapshot. found is false when nothing is stored or
// the blob cannot be decoded; the latter also returns ErrCorruptSnapshot.
func (g *Gateway) Load(ctx context.Context) (s Snapshot, found bool, err error) {
	blob, ok, err := g.store.Get(ctx, g.key)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("%w: %w", ErrStore, err)
	}
	if !ok {
		return Snapshot{}, false, nil
	}
	s, err = Decode(blob)
	if err != nil {
		return Snapshot{}, false, err
	}
	return s, true, nil
}

// Clear removes the stored snapshot.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.store.Remove(ctx, g.key); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	return nil
}
