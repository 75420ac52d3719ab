// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swap

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memDB is an in-memory Database used only to exercise Manager's
// caching behavior without a real bbolt file.
type memDB struct {
	swaps map[uuid.UUID]*Info
}

func newMemDB() *memDB {
	return &memDB{swaps: make(map[uuid.UUID]*Info)}
}

func (m *memDB) PutSwap(info *Info) error {
	cp := *info
	m.swaps[info.ID] = &cp
	return nil
}

func (m *memDB) GetSwap(id uuid.UUID) (*Info, error) {
	s, has := m.swaps[id]
	if !has {
		return nil, errNoSwapWithID
	}
	return s, nil
}

func (m *memDB) GetAllSwaps() ([]*Info, error) {
	all := make([]*Info, 0, len(m.swaps))
	for _, s := range m.swaps {
		all = append(all, s)
	}
	return all, nil
}

func TestManagerLoadsOngoingSwapsOnConstruction(t *testing.T) {
	db := newMemDB()
	ongoingID := uuid.New()
	pastID := uuid.New()

	require.NoError(t, db.PutSwap(&Info{ID: ongoingID, Status: StatusOngoing, StartTime: time.Now()}))
	require.NoError(t, db.PutSwap(&Info{ID: pastID, Status: StatusSuccess, StartTime: time.Now()}))

	mgr, err := NewManager(db)
	require.NoError(t, err)

	require.True(t, mgr.HasOngoingSwap(ongoingID))
	require.False(t, mgr.HasOngoingSwap(pastID))
}

func TestAddSwapRoutesToOngoingOrPast(t *testing.T) {
	mgr, err := NewManager(newMemDB())
	require.NoError(t, err)

	ongoing := &Info{ID: uuid.New(), Status: StatusOngoing, StartTime: time.Now()}
	require.NoError(t, mgr.AddSwap(ongoing))
	require.True(t, mgr.HasOngoingSwap(ongoing.ID))

	got, err := mgr.GetOngoingSwap(ongoing.ID)
	require.NoError(t, err)
	require.Equal(t, ongoing.ID, got.ID)
}

func TestCompleteOngoingSwapMovesToPast(t *testing.T) {
	mgr, err := NewManager(newMemDB())
	require.NoError(t, err)

	info := &Info{ID: uuid.New(), Status: StatusOngoing, StartTime: time.Now()}
	require.NoError(t, mgr.AddSwap(info))

	require.NoError(t, mgr.CompleteOngoingSwap(info, StatusSuccess))
	require.False(t, mgr.HasOngoingSwap(info.ID))

	past, err := mgr.GetPastSwap(info.ID)
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, past.Status)
	require.NotNil(t, past.EndTime)
}

func TestCompleteOngoingSwapRejectsUnknownID(t *testing.T) {
	mgr, err := NewManager(newMemDB())
	require.NoError(t, err)

	err = mgr.CompleteOngoingSwap(&Info{ID: uuid.New()}, StatusSuccess)
	require.ErrorIs(t, err, errNoSwapWithID)
}

func TestGetPastIDsMergesCacheAndDB(t *testing.T) {
	db := newMemDB()
	mgr, err := NewManager(db)
	require.NoError(t, err)

	dbOnly := &Info{ID: uuid.New(), Status: StatusRefunded, StartTime: time.Now()}
	require.NoError(t, db.PutSwap(dbOnly))

	cached := &Info{ID: uuid.New(), Status: StatusOngoing, StartTime: time.Now()}
	require.NoError(t, mgr.AddSwap(cached))
	require.NoError(t, mgr.CompleteOngoingSwap(cached, StatusPunished))

	ids, err := mgr.GetPastIDs()
	require.NoError(t, err)
	require.Contains(t, ids, dbOnly.ID)
	require.Contains(t, ids, cached.ID)
}
