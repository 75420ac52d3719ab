// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package db implements the swap database on top of bbolt: an
// append-only per-swap state history (so a crash can resume from the
// last committed transition) plus a side table of each swap's static
// metadata.
package db

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/athanorlabs/atomic-swap-btc/protocol/backend"
)

var (
	statesBucket   = []byte("swap-states")
	swapMetaBucket = []byte("swap-meta")
)

// ErrSwapNotFound is returned when no metadata is stored for a given
// swap ID.
var ErrSwapNotFound = errors.New("db: swap not found")

// Database wraps a single bbolt file. bbolt serializes writers
// internally, so Database needs no additional locking of its own: the
// one shared mutable resource every swap goroutine touches is this
// *bolt.DB, guarded by bbolt's single-writer transaction semantics.
type Database struct {
	bdb *bolt.DB
}

// Open opens (creating if necessary) the bbolt-backed swap database at
// path.
func Open(path string) (*Database, error) {
	bdb, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("db: failed to open %s: %w", path, err)
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(statesBucket); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(swapMetaBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(swapIndexBucket)
		return err
	})
	if err != nil {
		_ = bdb.Close()
		return nil, err
	}

	return &Database{bdb: bdb}, nil
}

// Close releases the underlying bbolt file handle.
func (d *Database) Close() error {
	return d.bdb.Close()
}

// PutState appends encodedState to id's state history. History entries
// are keyed by a monotonically increasing sequence number scoped to the
// swap, so GetStates always replays transitions in the order they were
// committed.
func (d *Database) PutState(id uuid.UUID, encodedState []byte) error {
	return d.bdb.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.Bucket(statesBucket).CreateBucketIfNotExists(id[:])
		if err != nil {
			return err
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return bucket.Put(key, encodedState)
	})
}

// GetStates returns id's full state history, oldest first.
func (d *Database) GetStates(id uuid.UUID) ([][]byte, error) {
	var states [][]byte

	err := d.bdb.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(statesBucket).Bucket(id[:])
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(_, v []byte) error {
			entry := make([]byte, len(v))
			copy(entry, v)
			states = append(states, entry)
			return nil
		})
	})

	return states, err
}

// PutSwapMeta stores (or overwrites) id's static metadata.
func (d *Database) PutSwapMeta(id uuid.UUID, meta *backend.SwapMeta) error {
	encoded, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	return d.bdb.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(swapMetaBucket).Put(id[:], encoded)
	})
}

// GetSwapMeta retrieves id's static metadata.
func (d *Database) GetSwapMeta(id uuid.UUID) (*backend.SwapMeta, error) {
	var meta backend.SwapMeta

	err := d.bdb.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(swapMetaBucket).Get(id[:])
		if raw == nil {
			return ErrSwapNotFound
		}
		return json.Unmarshal(raw, &meta)
	})
	if err != nil {
		return nil, err
	}

	return &meta, nil
}

// GetAllSwapIDs returns every swap ID with stored metadata, used on
// startup to find swaps the coordinator should resume.
func (d *Database) GetAllSwapIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := d.bdb.View(func(tx *bolt.Tx) error {
		return tx.Bucket(swapMetaBucket).ForEach(func(k, _ []byte) error {
			id, err := uuid.FromBytes(k)
			if err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
	})

	return ids, err
}

var _ backend.Database = (*Database)(nil)
