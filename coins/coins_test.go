// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package coins

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/require"
)

func TestBitcoinAmountDecimalRoundTrip(t *testing.T) {
	amt, err := NewBitcoinAmountFromDecimal("0.015")
	require.NoError(t, err)
	require.Equal(t, int64(1_500_000), amt.Sats())
	require.Equal(t, "0.01500000", amt.Decimal())
}

func TestBitcoinAmountAddSub(t *testing.T) {
	a := NewBitcoinAmountFromSats(1000)
	b := NewBitcoinAmountFromSats(300)
	require.Equal(t, int64(1300), a.Add(b).Sats())
	require.Equal(t, int64(700), a.Sub(b).Sats())
}

func TestMoneroAmountDecimalRoundTrip(t *testing.T) {
	amt, err := NewMoneroAmountFromDecimal("1.5")
	require.NoError(t, err)
	require.Equal(t, uint64(1_500_000_000_000), amt.Piconero())
}

func TestExchangeRateToXMR(t *testing.T) {
	rate := ExchangeRate{XMRPerBTC: apd.New(150, 0)}
	btc := NewBitcoinAmountFromSats(satPerBTC / 10) // 0.1 BTC

	xmr, err := rate.ToXMR(btc)
	require.NoError(t, err)
	require.Equal(t, uint64(15_000_000_000_000), xmr.Piconero())
}
