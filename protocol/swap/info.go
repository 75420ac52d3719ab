// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swap

import (
	"time"

	"github.com/google/uuid"
)

// Status is the coarse-grained lifecycle stage of a swap, independent
// of which precise protocol/alice or protocol/bob state it's in. The
// Manager only needs to know whether a swap is still ongoing, and if
// not, how it ended.
type Status int

const (
	// StatusOngoing means the swap's state machine has not yet reached
	// a terminal state.
	StatusOngoing Status = iota
	// StatusSuccess means the swap completed with both sides redeemed.
	StatusSuccess
	// StatusRefunded means the initiator recovered their Bitcoin via
	// TxCancel/TxPartialRefund rather than completing the swap.
	StatusRefunded
	// StatusPunished means the counterparty's failure to cooperate
	// after the cancel timelock resulted in a punish spend.
	StatusPunished
	// StatusAborted means the swap ended before any funds were locked.
	StatusAborted
)

// IsOngoing reports whether s is the in-progress status.
func (s Status) IsOngoing() bool {
	return s == StatusOngoing
}

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusSuccess:
		return "success"
	case StatusRefunded:
		return "refunded"
	case StatusPunished:
		return "punished"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Info is the Manager's bookkeeping record for a single swap: static
// parameters plus a coarse status and the timestamps bracketing it. The
// authoritative, resumable state lives in the append-only history
// returned by backend.Database.GetStates; Info is a denormalized
// summary kept for fast listing.
type Info struct {
	ID            uuid.UUID
	IsAlice       bool
	Counterparty  string
	ProvidedAsset string
	ReceivedAsset string
	ProvidedAmount string
	ReceivedAmount string
	Status        Status
	StartTime     time.Time
	EndTime       *time.Time
}
