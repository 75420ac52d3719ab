// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

// sequenceLockTimeDisabled, when set in bit 31 of a TxIn's sequence
// number, disables BIP-68 relative locktime semantics for that input.
const sequenceLockTimeDisabled = 1 << 31

// sequenceLockTimeTypeFlag, bit 22, selects between a block-height-based
// relative locktime (0) and a 512-second-granularity time-based one (1).
// Every relative timelock this package encodes is block-height-based.
const sequenceLockTimeTypeFlag = 1 << 22

// sequenceLockTimeMask isolates the low 16 bits that carry the relative
// locktime value itself.
const sequenceLockTimeMask = 0x0000ffff

// relativeBlockLockToSequence encodes a BIP-68 relative locktime,
// expressed in blocks, as a wire.TxIn sequence number. btcsuite/btcd
// does not export this conversion outside its internal blockchain
// package, so it is reimplemented locally; the encoding itself is fixed
// by BIP-68 and carries no design freedom.
func relativeBlockLockToSequence(blocks uint32) uint32 {
	return blocks & sequenceLockTimeMask
}
