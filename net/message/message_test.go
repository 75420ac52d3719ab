// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package message

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMessage0EncodeDecodeRoundTrip(t *testing.T) {
	m := &Message0{
		SwapID:               uuid.New(),
		BitcoinPubKey:        []byte{0x02, 0x03, 0x04},
		MoneroSpendPoint:     make([]byte, 32),
		DLEqProof:            make([]byte, 97),
		MoneroViewKeyShare:   make([]byte, 32),
		BitcoinRefundAddress: "bc1qexampleaddress",
		RefundFeeSats:        1000,
		PartialRefundFeeSats: 1000,
		CancelFeeSats:        1000,
	}

	b, err := m.Encode()
	require.NoError(t, err)
	require.Equal(t, byte(TypeMessage0), b[0])

	decoded, err := Decode(b)
	require.NoError(t, err)
	require.Equal(t, TypeMessage0, decoded.Type())

	got, ok := decoded.(*Message0)
	require.True(t, ok)
	require.Equal(t, m.SwapID, got.SwapID)
	require.Equal(t, m.BitcoinRefundAddress, got.BitcoinRefundAddress)
	require.Equal(t, m.RefundFeeSats, got.RefundFeeSats)
}

func TestMessage3OmitsEmptyOptionalFields(t *testing.T) {
	m := &Message3{
		SwapID:              uuid.New(),
		CancelSig:           []byte{0x01},
		PartialRefundEncSig: []byte{0x02},
	}

	b, err := m.Encode()
	require.NoError(t, err)

	decoded, err := Decode(b)
	require.NoError(t, err)

	got, ok := decoded.(*Message3)
	require.True(t, ok)
	require.Empty(t, got.FullRefundEncSig)
	require.Empty(t, got.AmnestySig)
}

func TestDecodeRejectsEmptyBuffer(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := Decode([]byte{0xff})
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestQuoteRoundTrip(t *testing.T) {
	q := &Quote{ExchangeRate: "150.5", MinBitcoin: 10_000, MaxBitcoin: 1_000_000}

	b, err := q.Encode()
	require.NoError(t, err)

	decoded, err := Decode(b)
	require.NoError(t, err)

	got, ok := decoded.(*Quote)
	require.True(t, ok)
	require.Equal(t, q.ExchangeRate, got.ExchangeRate)
}
