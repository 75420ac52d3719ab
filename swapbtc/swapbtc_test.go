// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

import (
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
)

func testDescriptor(t *testing.T) (*LockDescriptor, *secp256k1.PrivateKey, *secp256k1.PrivateKey) {
	t.Helper()

	a, err := secp256k1.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	b, err := secp256k1.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	d, err := NewLockDescriptor(a.Public(), b.Public())
	require.NoError(t, err)

	return d, a, b
}

func testLock(t *testing.T, descriptor *LockDescriptor) *TxLock {
	t.Helper()

	var fundingHash chainhash.Hash
	copy(fundingHash[:], []byte("deterministic-funding-txid-0000"))

	input := &wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: fundingHash, Index: 0},
		Sequence:         wire.MaxTxInSequenceNum,
	}

	lock, err := NewTxLock([]*wire.TxIn{input}, 1_000_000, descriptor, nil)
	require.NoError(t, err)
	return lock
}

func TestLockDescriptorIsOrderIndependent(t *testing.T) {
	a, err := secp256k1.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	b, err := secp256k1.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	d1, err := NewLockDescriptor(a.Public(), b.Public())
	require.NoError(t, err)
	d2, err := NewLockDescriptor(b.Public(), a.Public())
	require.NoError(t, err)

	require.Equal(t, d1.WitnessScript(), d2.WitnessScript())
}

func TestTxCancelSpendsTxLockOutput(t *testing.T) {
	descriptor, _, _ := testDescriptor(t)
	lock := testLock(t, descriptor)

	cancel, err := NewTxCancel(lock, descriptor, 144, 1000)
	require.NoError(t, err)

	require.Equal(t, lock.Outpoint(), cancel.msgTx.TxIn[0].PreviousOutPoint)
	require.Equal(t, relativeBlockLockToSequence(144), cancel.msgTx.TxIn[0].Sequence)
	require.Equal(t, lock.Amount()-1000, cancel.Amount())
}

func TestTxPartialRefundWithAmnesty(t *testing.T) {
	descriptor, _, _ := testDescriptor(t)
	lock := testLock(t, descriptor)

	cancel, err := NewTxCancel(lock, descriptor, 144, 1000)
	require.NoError(t, err)

	refundScript := []byte{0x00, 0x14}
	refundScript = append(refundScript, make([]byte, 20)...)

	refund, err := NewTxPartialRefund(cancel, refundScript, 10_000, descriptor, 1000)
	require.NoError(t, err)
	require.True(t, refund.HasAmnestyOutput())
	require.Equal(t, int64(10_000), refund.AmnestyAmount())
	require.Len(t, refund.msgTx.TxOut, 2)
}

func TestTxPartialRefundRejectsOversizedAmnesty(t *testing.T) {
	descriptor, _, _ := testDescriptor(t)
	lock := testLock(t, descriptor)

	cancel, err := NewTxCancel(lock, descriptor, 144, 1000)
	require.NoError(t, err)

	refundScript := make([]byte, 22)

	_, err = NewTxPartialRefund(cancel, refundScript, cancel.Amount(), descriptor, 1000)
	require.ErrorIs(t, err, ErrAmnestyExceedsAmount)
}

func TestRefundBurnAndFinalAmnestyChain(t *testing.T) {
	descriptor, _, _ := testDescriptor(t)
	lock := testLock(t, descriptor)

	cancel, err := NewTxCancel(lock, descriptor, 144, 1000)
	require.NoError(t, err)

	refundScript := make([]byte, 22)
	refund, err := NewTxPartialRefund(cancel, refundScript, 20_000, descriptor, 1000)
	require.NoError(t, err)

	burn, err := NewTxRefundBurn(refund, descriptor, 500)
	require.NoError(t, err)
	require.Equal(t, refund.AmnestyOutpoint(), burn.msgTx.TxIn[0].PreviousOutPoint)

	finalAmnesty, err := NewTxFinalAmnesty(burn, refundScript, 500)
	require.NoError(t, err)
	require.Equal(t, burn.Outpoint(), finalAmnesty.msgTx.TxIn[0].PreviousOutPoint)
}

func TestDigestDependsOnOutputs(t *testing.T) {
	descriptor, _, _ := testDescriptor(t)
	lock := testLock(t, descriptor)

	redeemScript := make([]byte, 22)
	redeem1, err := NewTxRedeem(lock, redeemScript, 1000)
	require.NoError(t, err)

	otherScript := make([]byte, 22)
	otherScript[2] = 0xff
	redeem2, err := NewTxRedeem(lock, otherScript, 1000)
	require.NoError(t, err)

	d1, err := redeem1.Digest()
	require.NoError(t, err)
	d2, err := redeem2.Digest()
	require.NoError(t, err)

	require.NotEqual(t, d1, d2)
}

func TestTxPunishSequenceEncodesRelativeTimelock(t *testing.T) {
	descriptor, _, _ := testDescriptor(t)
	lock := testLock(t, descriptor)

	cancel, err := NewTxCancel(lock, descriptor, 144, 1000)
	require.NoError(t, err)

	payout := make([]byte, 22)
	punish, err := NewTxPunish(cancel, payout, 72, 1000)
	require.NoError(t, err)

	require.Equal(t, relativeBlockLockToSequence(72), punish.msgTx.TxIn[0].Sequence)
}
