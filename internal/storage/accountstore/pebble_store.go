package accountstore

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// PebbleStore is the primary account-store backend, adapted from the
// teacher's internal/storage/database/pebble.DB.
type PebbleStore struct {
	db *pebble.DB
}

// OpenPebble opens (creating if absent) a pebble-backed store at dir.
func OpenPebble(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "accountstore: open pebble")
	}
	return &PebbleStore{db: db}, nil
}

func (p *PebbleStore) Get(_ context.Context, key Key) ([]byte, error) {
	val, closer, err := p.db.Get(key[:])
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (p *PebbleStore) Exists(ctx context.Context, key Key) (bool, error) {
	_, err := p.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *PebbleStore) Create(ctx context.Context, key Key, data []byte) error {
	exists, err := p.Exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}
	return p.Put(ctx, key, data)
}

func (p *PebbleStore) Put(_ context.Context, key Key, data []byte) error {
	return p.db.Set(key[:], data, pebble.Sync)
}

func (p *PebbleStore) Delete(_ context.Context, key Key) error {
	return p.db.Delete(key[:], pebble.Sync)
}

func (p *PebbleStore) Close() error {
	return p.db.Close()
}
