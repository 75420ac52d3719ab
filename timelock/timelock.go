// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package timelock tracks the swap's relative-locktime epochs: how many
// confirmations TxLock and TxCancel have accumulated, and which of
// None/Cancel/Punish the protocol is currently in as a result.
package timelock

// ScriptStatus is the confirmation state of a watched transaction, the
// minimal information the epoch monitor needs: whether it has been seen
// at all, and if so how many confirmations it carries.
type ScriptStatus struct {
	seen          bool
	confirmations uint32
}

// Unseen is the status of a transaction that has not yet appeared, even
// unconfirmed, on the network.
var Unseen = ScriptStatus{}

// FromConfirmations builds a ScriptStatus for a transaction observed
// with the given confirmation count (0 meaning seen but unconfirmed).
func FromConfirmations(confirmations uint32) ScriptStatus {
	return ScriptStatus{seen: true, confirmations: confirmations}
}

// Seen reports whether the transaction has appeared on the network at
// all, even unconfirmed.
func (s ScriptStatus) Seen() bool {
	return s.seen
}

// Confirmations returns the transaction's confirmation count, zero if
// it has not been seen or is seen but unconfirmed.
func (s ScriptStatus) Confirmations() uint32 {
	return s.confirmations
}

// IsConfirmedWith reports whether this status has accumulated at least
// timelock confirmations.
func (s ScriptStatus) IsConfirmedWith(timelock uint32) bool {
	return s.seen && s.confirmations >= timelock
}

// BlocksLeftUntil returns how many further confirmations are needed
// before timelock is reached, zero if it already has been. It also
// returns zero for a transaction that has not been seen.
func (s ScriptStatus) BlocksLeftUntil(timelock uint32) uint32 {
	if !s.seen || s.confirmations >= timelock {
		return 0
	}
	return timelock - s.confirmations
}

// Epoch is the swap's current position relative to the cancel and
// punish timelocks. Exactly one of its accessors is meaningful: BlocksLeft
// for None/Cancel, nothing for Punish.
type Epoch struct {
	kind       epochKind
	blocksLeft uint32
}

type epochKind int

const (
	epochNone epochKind = iota
	epochCancel
	epochPunish
)

// None constructs the pre-cancel epoch, blocksLeft confirmations away
// from the cancel timelock.
func None(blocksLeft uint32) Epoch {
	return Epoch{kind: epochNone, blocksLeft: blocksLeft}
}

// Cancel constructs the post-cancel-timelock, pre-punish-timelock
// epoch, blocksLeft confirmations away from the punish timelock.
func Cancel(blocksLeft uint32) Epoch {
	return Epoch{kind: epochCancel, blocksLeft: blocksLeft}
}

// Punish constructs the epoch in which the punish timelock has expired.
func Punish() Epoch {
	return Epoch{kind: epochPunish}
}

// IsNone reports whether the cancel timelock has not yet expired.
func (e Epoch) IsNone() bool { return e.kind == epochNone }

// IsCancel reports whether the cancel timelock expired but the punish
// timelock has not.
func (e Epoch) IsCancel() bool { return e.kind == epochCancel }

// IsPunish reports whether the punish timelock has expired.
func (e Epoch) IsPunish() bool { return e.kind == epochPunish }

// CancelTimelockExpired reports whether the cancel timelock has expired,
// true for both the Cancel and Punish epochs.
func (e Epoch) CancelTimelockExpired() bool {
	return e.kind != epochNone
}

// BlocksLeft returns the number of confirmations remaining until the
// next timelock boundary. It is meaningless (and zero) in the Punish
// epoch, which has no further boundary.
func (e Epoch) BlocksLeft() uint32 {
	return e.blocksLeft
}

// CurrentEpoch computes the swap's epoch from the cancel and punish
// timelocks and the confirmation status of TxLock and TxCancel.
func CurrentEpoch(
	cancelTimelock uint32,
	punishTimelock uint32,
	lockStatus ScriptStatus,
	cancelStatus ScriptStatus,
) Epoch {
	if cancelStatus.IsConfirmedWith(punishTimelock) {
		return Punish()
	}

	if lockStatus.IsConfirmedWith(cancelTimelock) {
		return Cancel(cancelStatus.BlocksLeftUntil(punishTimelock))
	}

	return None(lockStatus.BlocksLeftUntil(cancelTimelock))
}
