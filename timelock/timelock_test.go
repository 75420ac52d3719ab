// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package timelock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockConfirmationsBelowCancelTimelockIsNone(t *testing.T) {
	lockStatus := FromConfirmations(4)
	cancelStatus := Unseen

	epoch := CurrentEpoch(5, 5, lockStatus, cancelStatus)
	require.True(t, epoch.IsNone())
}

func TestLockConfirmationsAtCancelTimelockIsCancel(t *testing.T) {
	lockStatus := FromConfirmations(5)
	cancelStatus := Unseen

	epoch := CurrentEpoch(5, 5, lockStatus, cancelStatus)
	require.True(t, epoch.IsCancel())
}

func TestCancelConfirmationsAtPunishTimelockIsPunish(t *testing.T) {
	lockStatus := FromConfirmations(10)
	cancelStatus := FromConfirmations(5)

	epoch := CurrentEpoch(5, 5, lockStatus, cancelStatus)
	require.True(t, epoch.IsPunish())
}

func TestBlocksLeftCountsDownToNextBoundary(t *testing.T) {
	lockStatus := FromConfirmations(2)
	cancelStatus := Unseen

	epoch := CurrentEpoch(10, 5, lockStatus, cancelStatus)
	require.True(t, epoch.IsNone())
	require.Equal(t, uint32(8), epoch.BlocksLeft())
}

func TestCancelTimelockExpiredIncludesPunish(t *testing.T) {
	require.False(t, None(3).CancelTimelockExpired())
	require.True(t, Cancel(3).CancelTimelockExpired())
	require.True(t, Punish().CancelTimelockExpired())
}
