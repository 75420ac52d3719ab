// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package db

import (
	"encoding/json"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/athanorlabs/atomic-swap-btc/protocol/swap"
)

var swapIndexBucket = []byte("swap-index")

func (d *Database) ensureSwapIndexBucket(tx *bolt.Tx) (*bolt.Bucket, error) {
	return tx.CreateBucketIfNotExists(swapIndexBucket)
}

// PutSwap stores (or overwrites) the denormalized swap.Info summary
// used by protocol/swap.Manager for listing ongoing and past swaps.
func (d *Database) PutSwap(info *swap.Info) error {
	encoded, err := json.Marshal(info)
	if err != nil {
		return err
	}

	return d.bdb.Update(func(tx *bolt.Tx) error {
		bucket, err := d.ensureSwapIndexBucket(tx)
		if err != nil {
			return err
		}
		return bucket.Put(info.ID[:], encoded)
	})
}

// GetSwap retrieves a swap.Info summary by ID.
func (d *Database) GetSwap(id uuid.UUID) (*swap.Info, error) {
	var info swap.Info

	err := d.bdb.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(swapIndexBucket)
		if bucket == nil {
			return ErrSwapNotFound
		}
		raw := bucket.Get(id[:])
		if raw == nil {
			return ErrSwapNotFound
		}
		return json.Unmarshal(raw, &info)
	})
	if err != nil {
		return nil, err
	}

	return &info, nil
}

// GetAllSwaps returns every stored swap.Info summary.
func (d *Database) GetAllSwaps() ([]*swap.Info, error) {
	var all []*swap.Info

	err := d.bdb.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(swapIndexBucket)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(_, v []byte) error {
			info := new(swap.Info)
			if err := json.Unmarshal(v, info); err != nil {
				return err
			}
			all = append(all, info)
			return nil
		})
	})

	return all, err
}

var _ swap.Database = (*Database)(nil)
