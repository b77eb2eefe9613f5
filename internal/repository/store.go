package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
)

var snapshotBucket = []byte("snapshot")

// Logical keys inside the snapshot bucket. Each collection is persisted
// independently as a JSON array; the NFS-e link is a bare string.
var (
	keyAccounts = []byte("accounts")
	keyClients  = []byte("clients")
	keyServices = []byte("services")
	keyNFSLink  = []byte("nfs_link")
)

// Snapshot is the full persisted state of the application.
type Snapshot struct {
	Accounts []entity.Account
	Clients  []entity.Client
	Services []entity.ServiceOrder
	NFSLink  string
}

// Store owns the on-disk snapshot. It is the only component allowed to read
// or write the database file; everything else goes through the service layer.
type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", entity.ErrPersistence, path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create bucket: %w", entity.ErrPersistence, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the last saved snapshot. When no accounts were ever persisted
// the built-in seed set is written and returned, so the next load (and the
// first login) sees the same data.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	var (
		snap   Snapshot
		seeded bool
	)

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(snapshotBucket)

		if bucket.Get(keyAccounts) == nil {
			seed, err := seedSnapshot()
			if err != nil {
				return err
			}

			if err := putSnapshot(bucket, seed); err != nil {
				return err
			}

			snap = seed
			seeded = true

			return nil
		}

		if err := getJSON(bucket, keyAccounts, &snap.Accounts); err != nil {
			return err
		}

		if err := getJSON(bucket, keyClients, &snap.Clients); err != nil {
			return err
		}

		if err := getJSON(bucket, keyServices, &snap.Services); err != nil {
			return err
		}

		if link := bucket.Get(keyNFSLink); link != nil {
			snap.NFSLink = string(link)
		} else {
			snap.NFSLink = entity.DefaultNFSLink
		}

		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: load snapshot: %w", entity.ErrPersistence, err)
	}

	if seeded {
		slog.InfoContext(ctx, "empty snapshot, seed data written",
			"accounts", len(snap.Accounts),
			"clients", len(snap.Clients),
			"services", len(snap.Services),
		)
	}

	return snap, nil
}

func (s *Store) SaveAccounts(_ context.Context, accounts []entity.Account) error {
	return s.putJSON(keyAccounts, accounts)
}

func (s *Store) SaveClients(_ context.Context, clients []entity.Client) error {
	return s.putJSON(keyClients, clients)
}

func (s *Store) SaveServices(_ context.Context, services []entity.ServiceOrder) error {
	return s.putJSON(keyServices, services)
}

func (s *Store) SaveNFSLink(_ context.Context, link string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotBucket).Put(keyNFSLink, []byte(link))
	})
	if err != nil {
		return fmt.Errorf("%w: save nfs_link: %w", entity.ErrPersistence, err)
	}

	return nil
}

// ReplaceAll overwrites the four logical keys in a single transaction.
// Restore uses it so a half-written backup can never be observed.
func (s *Store) ReplaceAll(_ context.Context, snap Snapshot) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return putSnapshot(tx.Bucket(snapshotBucket), snap)
	})
	if err != nil {
		return fmt.Errorf("%w: replace snapshot: %w", entity.ErrPersistence, err)
	}

	return nil
}

func (s *Store) putJSON(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %w", entity.ErrPersistence, key, err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotBucket).Put(key, data)
	})
	if err != nil {
		return fmt.Errorf("%w: save %s: %w", entity.ErrPersistence, key, err)
	}

	return nil
}

func putSnapshot(bucket *bbolt.Bucket, snap Snapshot) error {
	entries := []struct {
		key   []byte
		value any
	}{
		{keyAccounts, snap.Accounts},
		{keyClients, snap.Clients},
		{keyServices, snap.Services},
	}

	for _, e := range entries {
		data, err := json.Marshal(e.value)
		if err != nil {
			return err
		}

		if err := bucket.Put(e.key, data); err != nil {
			return err
		}
	}

	return bucket.Put(keyNFSLink, []byte(snap.NFSLink))
}

func getJSON(bucket *bbolt.Bucket, key []byte, target any) error {
	data := bucket.Get(key)
	if data == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}
