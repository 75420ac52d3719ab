// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/wire"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
)

func TestGenerateKeysAndProofProducesConsistentPoints(t *testing.T) {
	keys, err := GenerateKeysAndProof(rand.Reader)
	require.NoError(t, err)

	require.True(t, keys.BitcoinPublicKey().Equal(keys.Proof.SBtc))
	require.True(t, keys.MoneroSpendPoint().Equal(keys.Proof.SXmr))
}

func TestMessage0RoundTripVerifies(t *testing.T) {
	bobKeys, err := GenerateKeysAndProof(rand.Reader)
	require.NoError(t, err)

	swapID := uuid.New()
	m0 := NewMessage0(swapID, bobKeys, "bc1qbobrefund", Message0Fees{
		RefundSats: 200, PartialRefundSats: 200, CancelSats: 150,
	})

	got, err := VerifyMessage0(swapID, m0)
	require.NoError(t, err)
	require.True(t, got.BitcoinPubKey.Equal(bobKeys.BitcoinPublicKey()))
	require.True(t, got.MoneroSpendPoint.Equal(bobKeys.MoneroSpendPoint()))
}

func TestMessage0RejectsSwapIDMismatch(t *testing.T) {
	bobKeys, err := GenerateKeysAndProof(rand.Reader)
	require.NoError(t, err)

	m0 := NewMessage0(uuid.New(), bobKeys, "bc1qbobrefund", Message0Fees{})

	_, err = VerifyMessage0(uuid.New(), m0)
	require.ErrorIs(t, err, ErrSwapIDMismatch)
}

func TestMessage0RejectsTamperedProof(t *testing.T) {
	bobKeys, err := GenerateKeysAndProof(rand.Reader)
	require.NoError(t, err)

	swapID := uuid.New()
	m0 := NewMessage0(swapID, bobKeys, "bc1qbobrefund", Message0Fees{})

	otherKeys, err := GenerateKeysAndProof(rand.Reader)
	require.NoError(t, err)
	m0.DLEqProof = otherKeys.Proof.Encode()

	_, err = VerifyMessage0(swapID, m0)
	require.Error(t, err)
}

func TestMessage1RoundTripVerifies(t *testing.T) {
	aliceKeys, err := GenerateKeysAndProof(rand.Reader)
	require.NoError(t, err)

	swapID := uuid.New()
	m1 := NewMessage1(swapID, aliceKeys, "bc1qaliceredeem", "bc1qalicepunish", Message1Fees{
		RedeemSats: 150, PunishSats: 150, AmnestySats: 1000,
	})

	got, err := VerifyMessage1(swapID, m1)
	require.NoError(t, err)
	require.True(t, got.BitcoinPubKey.Equal(aliceKeys.BitcoinPublicKey()))
	require.Equal(t, int64(1000), m1.AmnestySats)
}

func testDescriptor(t *testing.T) *swapbtc.LockDescriptor {
	t.Helper()
	a, err := secp256k1.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	b, err := secp256k1.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	d, err := swapbtc.NewLockDescriptor(a.Public(), b.Public())
	require.NoError(t, err)
	return d
}

func encodePSBT(t *testing.T, tx *wire.MsgTx) []byte {
	t.Helper()
	pkt, err := psbt.NewFromUnsignedTx(tx)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, pkt.Serialize(&buf))
	return buf.Bytes()
}

func TestValidateLockPSBTAcceptsSingleMatchingOutput(t *testing.T) {
	descriptor := testDescriptor(t)
	pkScript, err := descriptor.ScriptPubKey()
	require.NoError(t, err)

	tx := wire.NewMsgTx(2)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0}})
	tx.AddTxOut(wire.NewTxOut(100_000, pkScript))
	tx.AddTxOut(wire.NewTxOut(5_000, []byte{0x00, 0x14}))

	lock, err := ValidateLockPSBT(encodePSBT(t, tx), descriptor, 100_000)
	require.NoError(t, err)
	require.Equal(t, int64(100_000), lock.Amount())
}

func TestValidateLockPSBTRejectsAmbiguousOutputs(t *testing.T) {
	descriptor := testDescriptor(t)
	pkScript, err := descriptor.ScriptPubKey()
	require.NoError(t, err)

	tx := wire.NewMsgTx(2)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0}})
	tx.AddTxOut(wire.NewTxOut(100_000, pkScript))
	tx.AddTxOut(wire.NewTxOut(100_000, pkScript))

	_, err = ValidateLockPSBT(encodePSBT(t, tx), descriptor, 100_000)
	require.ErrorIs(t, err, ErrAmbiguousLockOutput)
}

func TestValidateLockPSBTRejectsMissingOutput(t *testing.T) {
	descriptor := testDescriptor(t)

	tx := wire.NewMsgTx(2)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0}})
	tx.AddTxOut(wire.NewTxOut(100_000, []byte{0x00, 0x14}))

	_, err := ValidateLockPSBT(encodePSBT(t, tx), descriptor, 100_000)
	require.ErrorIs(t, err, swapbtc.ErrLockOutputNotFound)
}
