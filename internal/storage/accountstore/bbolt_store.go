package accountstore

import (
	"context"

	"github.com/cockroachdb/errors"
	bolt "go.etcd.io/bbolt"
)

var accountsBucket = []byte("accounts")

// BoltStore is the single-file embedded backend, adapted from the
// teacher's internal/storage/database/bbolt.DB. It is offered alongside
// PebbleStore for single-binary deployments (bundled verifier test
// harnesses, CI), matching the teacher's dual-backend keyValueDb design.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (creating if absent) a bbolt-backed store at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "accountstore: open bbolt")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(accountsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "accountstore: create bucket")
	}
	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Get(_ context.Context, key Key) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(accountsBucket).Get(key[:])
		if v == nil {
			return ErrNotFound
		}
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BoltStore) Exists(ctx context.Context, key Key) (bool, error) {
	_, err := b.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *BoltStore) Create(ctx context.Context, key Key, data []byte) error {
	exists, err := b.Exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}
	return b.Put(ctx, key, data)
}

func (b *BoltStore) Put(_ context.Context, key Key, data []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(accountsBucket).Put(key[:], data)
	})
}

func (b *BoltStore) Delete(_ context.Context, key Key) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(accountsBucket).Delete(key[:])
	})
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}
