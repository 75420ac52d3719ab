// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

// SatPerKWeight is a fee rate expressed in satoshis per 1000 weight
// units, the unit segwit fee estimation operates in.
//
// lnd carries an equivalent type (lnwallet/chainfee.SatPerKWeight), but
// that package lives deep in lnd's internal module tree and is not
// importable from outside it, so the handful of conversions this
// package needs are reimplemented here directly rather than vendored.
type SatPerKWeight int64

// FeeForWeight returns the absolute fee, in satoshis, for a transaction
// of the given weight at this fee rate.
func (r SatPerKWeight) FeeForWeight(weight int64) int64 {
	return int64(r) * weight / 1000
}
