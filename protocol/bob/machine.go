// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package bob

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	logging "github.com/ipfs/go-log/v2"

	"github.com/athanorlabs/atomic-swap-btc/adaptor"
	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/net/message"
	"github.com/athanorlabs/atomic-swap-btc/protocol"
	"github.com/athanorlabs/atomic-swap-btc/protocol/backend"
	"github.com/athanorlabs/atomic-swap-btc/protocol/swaperr"
	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
	"github.com/athanorlabs/atomic-swap-btc/timelock"
)

var log = logging.Logger("bob")

// AdvanceOnLockStatus applies a Bitcoin wallet confirmation update to
// Started, the only state watching Bob's own TxLock broadcast.
func AdvanceOnLockStatus(s State, status timelock.ScriptStatus, finalityConfirmationsBTC uint32) (State, error) {
	st, ok := s.(Started)
	if !ok {
		return s, &swaperr.ProtocolPolicyError{
			Op:  "AdvanceOnLockStatus",
			Err: fmt.Errorf("unexpected state %s for a lock-status update", s),
		}
	}
	if !status.IsConfirmedWith(finalityConfirmationsBTC) {
		return st, nil
	}
	log.Infof("%s: TxLock reached finality", st.Session().SwapID)
	return BtcLocked{base{st.session}}, nil
}

// AdvanceOnTransferProof moves BtcLocked to XmrLockProofReceived on
// receipt of Alice's transfer proof.
func AdvanceOnTransferProof(s BtcLocked, xmrTxID string, txKey ed25519x.Scalar) (State, error) {
	log.Infof("%s: received Alice's transfer proof for tx %s", s.Session().SwapID, xmrTxID)
	return XmrLockProofReceived{base{s.session}, xmrTxID, txKey}, nil
}

// AdvanceXmrLockProofReceived verifies Alice's transfer against the
// joint view pair for exactly the expected amount. Any discrepancy, even
// one piconero, leaves Bob in BtcLocked rather than sending the
// encrypted signature: he waits out the cancel timelock instead.
func AdvanceXmrLockProofReceived(
	ctx context.Context,
	be *backend.Backend,
	s XmrLockProofReceived,
	expectedPiconero uint64,
) (State, error) {
	jointSpendPoint := s.Session().Counterparty.MoneroSpendPoint.Add(s.Session().Keys.MoneroSpendPoint())
	jointViewScalar := *s.Session().Keys.ViewKeyShare.Add(s.Session().Counterparty.ViewKeyShare)

	ok, err := be.Monero.VerifyTransfer(ctx, s.XmrTxID, jointSpendPoint, jointViewScalar, expectedPiconero)
	if err != nil {
		return s, &swaperr.ResourceError{Op: "AdvanceXmrLockProofReceived/VerifyTransfer", Err: err}
	}
	if !ok {
		log.Warnf("%s: Alice's XMR transfer did not pay the exact agreed amount, refusing to redeem", s.Session().SwapID)
		return BtcLocked{base{s.session}}, nil
	}

	digest, err := s.Session().Txs.Redeem.Digest()
	if err != nil {
		return s, err
	}

	encsig, err := adaptor.EncSign(s.Session().Keys.BitcoinPrivateKey, s.Session().Counterparty.BitcoinPubKey, digest)
	if err != nil {
		return s, &swaperr.CryptoError{Op: "AdvanceXmrLockProofReceived/EncSign", Err: err}
	}

	encBytes := encsig.Encode()
	err = be.Net.SendSwapMessage(&message.EncryptedSignatureMessage{
		SwapID:    s.Session().SwapID,
		Purpose:   "redeem",
		EncSigned: encBytes,
	}, s.Session().SwapID)
	if err != nil {
		return s, &swaperr.NetworkError{Op: "AdvanceXmrLockProofReceived/SendSwapMessage", Err: err}
	}

	log.Infof("%s: verified XMR lock, sent encrypted signature on Redeem", s.Session().SwapID)
	return XmrLocked{base{s.session}, encsig}, nil
}

// AdvanceOnRedeemSeen observes Alice's broadcast of the decrypted
// Redeem signature, recovers s_a from it, combines it with Bob's own
// s_b, and sweeps the joint Monero wallet to his receive address pool,
// moving to the terminal BtcRedeemed.
func AdvanceOnRedeemSeen(
	ctx context.Context,
	be *backend.Backend,
	s XmrLocked,
	aliceRedeemSig *adaptor.Signature,
	redeemTxID chainhash.Hash,
	walletPath string,
	restoreHeight uint64,
	dests []backend.SweepDestination,
) (State, error) {
	sk, err := adaptor.Recover(aliceRedeemSig, s.RedeemEncSig, s.Session().Counterparty.BitcoinPubKey)
	if err != nil {
		return s, &swaperr.CryptoError{Op: "AdvanceOnRedeemSeen/Recover", Err: err}
	}

	sa, err := protocol.SharedScalarFromSecpPrivateKey(sk)
	if err != nil {
		return s, &swaperr.CryptoError{Op: "AdvanceOnRedeemSeen/ScalarConvert", Err: err}
	}

	spendKey := s.Session().Keys.Secret.Add(sa)
	viewKey := s.Session().Keys.ViewKeyShare.Add(s.Session().Counterparty.ViewKeyShare)

	if err := be.Monero.OpenOrCreateFromKeys(ctx, walletPath, "", *viewKey, *spendKey, restoreHeight); err != nil {
		return s, &swaperr.ResourceError{Op: "AdvanceOnRedeemSeen/OpenOrCreateFromKeys", Err: err}
	}

	if _, err := be.Monero.SweepMultiDestination(ctx, dests); err != nil {
		return s, &swaperr.ResourceError{Op: "AdvanceOnRedeemSeen/Sweep", Err: err}
	}

	log.Infof("%s: recovered s_a, swept joint Monero wallet to receive pool", s.Session().SwapID)
	return BtcRedeemed{base{s.session}, redeemTxID, sa}, nil
}

// AdvanceOnCancelEpoch moves any non-terminal, pre-redeem state to
// CancelTimelockExpired once the epoch monitor reports T1 has matured.
func AdvanceOnCancelEpoch(s State, epoch timelock.Epoch) (State, error) {
	if s.Terminal() {
		return s, &swaperr.ProtocolPolicyError{
			Op:  "AdvanceOnCancelEpoch",
			Err: fmt.Errorf("swap already in terminal state %s", s),
		}
	}
	if !epoch.CancelTimelockExpired() {
		return s, nil
	}
	switch s.(type) {
	case CancelTimelockExpired, BtcCancelled, BtcRefundPublished:
		return s, nil
	default:
		return CancelTimelockExpired{base{s.Session()}}, nil
	}
}

// AdvanceCancelTimelockExpired broadcasts Cancel using Bob's own
// signature and Alice's Message3 pre-signature, moving to BtcCancelled.
func AdvanceCancelTimelockExpired(ctx context.Context, be *backend.Backend, s CancelTimelockExpired) (State, error) {
	digest, err := s.Session().Txs.Cancel.Digest()
	if err != nil {
		return s, err
	}

	bobSig := s.Session().Keys.BitcoinPrivateKey.Sign(digest)
	tx := s.Session().Txs.Cancel.Finalize(
		s.Session().AliceCancelSig,
		swapbtc.DerEncode(bobSig),
	)

	txid, err := be.Bitcoin.SignAndBroadcast(ctx, tx)
	if err != nil {
		return s, &swaperr.OnChainRuleError{Op: "AdvanceCancelTimelockExpired/Broadcast", Err: err}
	}

	log.Infof("%s: broadcast Cancel, txid=%s", s.Session().SwapID, txid)
	return BtcCancelled{base{s.session}}, nil
}

// AdvanceBtcCancelled decrypts Alice's PartialRefund signature with
// Bob's own secret, combines it with his own plain signature, and
// broadcasts PartialRefund, moving to BtcRefundPublished. Publishing it
// lets Alice recover Bob's s_b from the chain (alice.AdvanceOnRefundSeen);
// Bob learns nothing new from it.
func AdvanceBtcCancelled(ctx context.Context, be *backend.Backend, s BtcCancelled) (State, error) {
	digest, err := s.Session().Txs.PartialRefund.Digest()
	if err != nil {
		return s, err
	}

	aliceSig := adaptor.Decrypt(s.Session().AlicePartialRefundEncSig, s.Session().Keys.BitcoinPrivateKey)
	bobSig := s.Session().Keys.BitcoinPrivateKey.Sign(digest)

	tx := s.Session().Txs.PartialRefund.Finalize(
		swapbtc.DerEncode(aliceSig.ToWire()),
		swapbtc.DerEncode(bobSig),
	)

	txid, err := be.Bitcoin.SignAndBroadcast(ctx, tx)
	if err != nil {
		return s, &swaperr.OnChainRuleError{Op: "AdvanceBtcCancelled/Broadcast", Err: err}
	}

	log.Infof("%s: broadcast Refund, txid=%s", s.Session().SwapID, txid)
	return BtcRefundPublished{base{s.session}}, nil
}

// AdvanceOnRefundStatus moves BtcRefundPublished to the terminal
// BtcRefunded once Refund reaches finality.
func AdvanceOnRefundStatus(s BtcRefundPublished, status timelock.ScriptStatus, finalityConfirmationsBTC uint32) (State, error) {
	if !status.IsConfirmedWith(finalityConfirmationsBTC) {
		return s, nil
	}
	log.Infof("%s: Refund reached finality", s.Session().SwapID)
	return BtcRefunded{base{s.session}}, nil
}

// AdvanceOnPunishObserved moves BtcCancelled or BtcRefundPublished to
// the terminal BtcPunished once the epoch monitor reports the punish
// timelock matured without Refund reaching finality first.
func AdvanceOnPunishObserved(s State, epoch timelock.Epoch) (State, error) {
	switch s.(type) {
	case BtcCancelled, BtcRefundPublished:
	default:
		return s, &swaperr.ProtocolPolicyError{
			Op:  "AdvanceOnPunishObserved",
			Err: fmt.Errorf("unexpected state %s for a punish observation", s),
		}
	}
	if !epoch.IsPunish() {
		return s, nil
	}
	log.Warnf("%s: punished, losing locked funds", s.Session().SwapID)
	return BtcPunished{base{s.Session()}}, nil
}

// CanEarlyRefund reports whether s is a pre-redeem, non-terminal state
// from which an EarlyRefund cooperation is still possible.
func CanEarlyRefund(s State) bool {
	switch s.(type) {
	case Started, BtcLocked, XmrLockProofReceived, XmrLocked:
		return true
	default:
		return false
	}
}

// AdvanceOnEarlyRefundCooperate moves any pre-redeem state to
// BtcEarlyRefundable once Alice has sent her EarlyRefund signature.
func AdvanceOnEarlyRefundCooperate(s State, aliceEarlyRefundSig []byte) (State, error) {
	if !CanEarlyRefund(s) {
		return s, &swaperr.ProtocolPolicyError{
			Op:  "AdvanceOnEarlyRefundCooperate",
			Err: fmt.Errorf("state %s cannot early-refund", s),
		}
	}
	return BtcEarlyRefundable{base{s.Session()}, aliceEarlyRefundSig}, nil
}

// AdvanceBtcEarlyRefundable broadcasts EarlyRefund, moving to the
// terminal BtcEarlyRefunded.
func AdvanceBtcEarlyRefundable(ctx context.Context, be *backend.Backend, s BtcEarlyRefundable) (State, error) {
	digest, err := s.Session().Txs.EarlyRefund.Digest()
	if err != nil {
		return s, err
	}

	bobSig := s.Session().Keys.BitcoinPrivateKey.Sign(digest)
	tx := s.Session().Txs.EarlyRefund.Finalize(
		s.AliceEarlyRefundSig,
		swapbtc.DerEncode(bobSig),
	)

	txid, err := be.Bitcoin.SignAndBroadcast(ctx, tx)
	if err != nil {
		return s, &swaperr.OnChainRuleError{Op: "AdvanceBtcEarlyRefundable/Broadcast", Err: err}
	}

	log.Infof("%s: broadcast EarlyRefund, txid=%s", s.Session().SwapID, txid)
	return BtcEarlyRefunded{base{s.session}}, nil
}

// AdvanceAbort moves Started to SafelyAborted; it is only valid before
// Bitcoin is funded, matching test scenario 2 in spec §8.
func AdvanceAbort(s State, reason error) (State, error) {
	st, ok := s.(Started)
	if !ok {
		return s, &swaperr.ProtocolPolicyError{
			Op:  "AdvanceAbort",
			Err: fmt.Errorf("state %s cannot safely abort", s),
		}
	}
	return SafelyAborted{base{st.Session()}, reason}, nil
}
