// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/psbt"

	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
)

// ErrAmbiguousLockOutput is returned when a candidate PSBT pays the
// shared descriptor's script more than once, violating M2's "exactly
// one output" invariant.
var ErrAmbiguousLockOutput = errors.New("protocol: psbt has more than one output paying the shared descriptor")

// ValidateLockPSBT decodes raw (a serialized PSBT) and checks it against
// spec §4.4's M2 invariant: exactly one output pays descriptor's P2WSH
// script for amount satoshis. It returns the validated TxLock on
// success.
func ValidateLockPSBT(raw []byte, descriptor *swapbtc.LockDescriptor, amount int64) (*swapbtc.TxLock, error) {
	pkt, err := psbt.NewFromRawBytes(bytes.NewReader(raw), false)
	if err != nil {
		return nil, fmt.Errorf("protocol: malformed lock psbt: %w", err)
	}

	pkScript, err := descriptor.ScriptPubKey()
	if err != nil {
		return nil, err
	}

	matches := 0
	for _, out := range pkt.UnsignedTx.TxOut {
		if out.Value == amount && bytes.Equal(out.PkScript, pkScript) {
			matches++
		}
	}

	switch matches {
	case 0:
		return nil, swapbtc.ErrLockOutputNotFound
	case 1:
		return swapbtc.TxLockFromCandidate(pkt.UnsignedTx, descriptor, amount)
	default:
		return nil, ErrAmbiguousLockOutput
	}
}
