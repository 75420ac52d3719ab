// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package swap provides the management layer used by swapd for tracking
// current and past swaps.
package swap

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errNoSwapWithID = errors.New("unable to find swap with given ID")

// Database is the persistence surface Manager needs for the
// denormalized Info summaries it serves to callers, distinct from
// backend.Database's append-only per-state history: this is the
// bbolt-backed "list my swaps" index, not the resumable transition log.
type Database interface {
	PutSwap(info *Info) error
	GetSwap(id uuid.UUID) (*Info, error)
	GetAllSwaps() ([]*Info, error)
}

// Manager tracks current and past swaps.
type Manager interface {
	AddSwap(info *Info) error
	WriteSwapToDB(info *Info) error
	GetPastIDs() ([]uuid.UUID, error)
	GetPastSwap(uuid.UUID) (*Info, error)
	GetOngoingSwap(uuid.UUID) (Info, error)
	GetOngoingSwaps() ([]*Info, error)
	CompleteOngoingSwap(info *Info, status Status) error
	HasOngoingSwap(uuid.UUID) bool
}

// manager implements Manager.
//
// Ongoing swaps are fully populated in memory; past swaps are only
// cached once they've completed during this run, or been recently
// retrieved.
type manager struct {
	db Database
	sync.RWMutex
	ongoing map[uuid.UUID]*Info
	past    map[uuid.UUID]*Info
}

var _ Manager = (*manager)(nil)

// NewManager returns a new Manager backed by db, loading all ongoing
// swaps into memory on construction. Completed swaps are not loaded
// into memory up front.
func NewManager(db Database) (Manager, error) {
	ongoing := make(map[uuid.UUID]*Info)

	stored, err := db.GetAllSwaps()
	if err != nil {
		return nil, err
	}

	for _, s := range stored {
		if !s.Status.IsOngoing() {
			continue
		}
		ongoing[s.ID] = s
	}

	return &manager{
		db:      db,
		ongoing: ongoing,
		past:    make(map[uuid.UUID]*Info),
	}, nil
}

// AddSwap adds info to the Manager and persists it.
func (m *manager) AddSwap(info *Info) error {
	m.Lock()
	defer m.Unlock()

	if info.Status.IsOngoing() {
		m.ongoing[info.ID] = info
	} else {
		m.past[info.ID] = info
	}

	return m.db.PutSwap(info)
}

// WriteSwapToDB persists info without altering the Manager's in-memory
// caches, for callers that just need a checkpoint write.
func (m *manager) WriteSwapToDB(info *Info) error {
	return m.db.PutSwap(info)
}

// GetPastIDs returns every completed swap's ID.
func (m *manager) GetPastIDs() ([]uuid.UUID, error) {
	m.RLock()
	defer m.RUnlock()

	ids := make(map[uuid.UUID]struct{})
	for id := range m.past {
		ids[id] = struct{}{}
	}

	stored, err := m.db.GetAllSwaps()
	if err != nil {
		return nil, err
	}

	for _, s := range stored {
		if s.Status.IsOngoing() {
			continue
		}
		ids[s.ID] = struct{}{}
	}

	idArr := make([]uuid.UUID, 0, len(ids))
	for id := range ids {
		idArr = append(idArr, id)
	}

	return idArr, nil
}

// GetPastSwap returns a completed swap's Info given its ID.
func (m *manager) GetPastSwap(id uuid.UUID) (*Info, error) {
	m.RLock()
	s, has := m.past[id]
	m.RUnlock()
	if has {
		return s, nil
	}

	s, err := m.db.GetSwap(id)
	if err != nil {
		return nil, err
	}

	m.Lock()
	m.past[s.ID] = s
	m.Unlock()

	return s, nil
}

// GetOngoingSwap returns the ongoing swap's Info, if there is one.
func (m *manager) GetOngoingSwap(id uuid.UUID) (Info, error) {
	m.RLock()
	defer m.RUnlock()

	s, has := m.ongoing[id]
	if !has {
		return Info{}, errNoSwapWithID
	}

	return *s, nil
}

// GetOngoingSwaps returns a snapshot of every ongoing swap's Info.
func (m *manager) GetOngoingSwaps() ([]*Info, error) {
	m.RLock()
	defer m.RUnlock()

	swaps := make([]*Info, 0, len(m.ongoing))
	for _, s := range m.ongoing {
		sCopy := new(Info)
		*sCopy = *s
		swaps = append(swaps, sCopy)
	}

	return swaps, nil
}

// CompleteOngoingSwap marks info's swap as finished with the given
// terminal status and persists the change.
func (m *manager) CompleteOngoingSwap(info *Info, status Status) error {
	m.Lock()
	defer m.Unlock()

	if _, has := m.ongoing[info.ID]; !has {
		return errNoSwapWithID
	}

	now := time.Now()
	info.Status = status
	info.EndTime = &now

	m.past[info.ID] = info
	delete(m.ongoing, info.ID)

	return m.db.PutSwap(info)
}

// HasOngoingSwap returns true if id names a currently-ongoing swap.
func (m *manager) HasOngoingSwap(id uuid.UUID) bool {
	m.RLock()
	defer m.RUnlock()
	_, has := m.ongoing[id]
	return has
}
