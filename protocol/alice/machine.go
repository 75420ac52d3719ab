// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package alice

import (
	"context"
	"fmt"

	logging "github.com/ipfs/go-log/v2"

	"github.com/athanorlabs/atomic-swap-btc/adaptor"
	"github.com/athanorlabs/atomic-swap-btc/moneroproof"
	"github.com/athanorlabs/atomic-swap-btc/net/message"
	"github.com/athanorlabs/atomic-swap-btc/protocol"
	"github.com/athanorlabs/atomic-swap-btc/protocol/backend"
	"github.com/athanorlabs/atomic-swap-btc/protocol/swaperr"
	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
	"github.com/athanorlabs/atomic-swap-btc/timelock"
)

var log = logging.Logger("alice")

// AdvanceOnLockStatus applies a Bitcoin wallet confirmation update to
// Started or BtcLockTransactionSeen, the only two states that watch
// TxLock directly.
func AdvanceOnLockStatus(s State, status timelock.ScriptStatus, finalityConfirmationsBTC uint32) (State, error) {
	switch st := s.(type) {
	case Started:
		if !status.Seen() {
			return st, nil
		}
		log.Infof("%s: observed TxLock in mempool", st.Session().SwapID)
		return BtcLockTransactionSeen{base{st.session}}, nil
	case BtcLockTransactionSeen:
		if !status.IsConfirmedWith(finalityConfirmationsBTC) {
			return st, nil
		}
		log.Infof("%s: TxLock reached finality", st.Session().SwapID)
		return BtcLocked{base{st.session}}, nil
	default:
		return s, &swaperr.ProtocolPolicyError{
			Op:  "AdvanceOnLockStatus",
			Err: fmt.Errorf("unexpected state %s for a lock-status update", s),
		}
	}
}

// AdvanceBtcLocked moves Alice from BtcLocked to XmrLocked by sending
// her half of the joint Monero output, unless the cancel timelock is
// already within its safety margin, in which case she refuses to lock
// and jumps straight to CancelTimelockExpired per spec §4.5's tie-break.
func AdvanceBtcLocked(
	ctx context.Context,
	be *backend.Backend,
	s BtcLocked,
	epoch timelock.Epoch,
	jointMoneroAddress string,
	amountPiconero uint64,
) (State, error) {
	if !epoch.IsNone() || epoch.BlocksLeft() <= s.Session().SafetyMarginBlocks {
		log.Warnf("%s: refusing to lock XMR, cancel timelock is within the safety margin", s.Session().SwapID)
		return CancelTimelockExpired{base{s.session}}, nil
	}

	receipt, err := be.Monero.Transfer(ctx, jointMoneroAddress, amountPiconero)
	if err != nil {
		return s, &swaperr.ResourceError{Op: "AdvanceBtcLocked/Transfer", Err: err}
	}

	proof, err := moneroproof.NewTransferProof(receipt.TxID, receipt.TxKey)
	if err != nil {
		return s, &swaperr.CryptoError{Op: "AdvanceBtcLocked/NewTransferProof", Err: err}
	}

	txKeyBytes := proof.TxKey.Bytes()
	err = be.Net.SendSwapMessage(&message.TransferProofMessage{
		SwapID: s.Session().SwapID,
		TxID:   proof.TxID,
		TxKey:  txKeyBytes[:],
	}, s.Session().SwapID)
	if err != nil {
		return s, &swaperr.NetworkError{Op: "AdvanceBtcLocked/SendSwapMessage", Err: err}
	}

	log.Infof("%s: locked XMR in tx %s", s.Session().SwapID, receipt.TxID)
	return XmrLocked{base{s.session}, receipt.TxID}, nil
}

// AdvanceXmrLocked verifies Bob's adaptor signature on Redeem against
// (B, S_a_xmr, digest(Redeem)) and, if valid, moves to EncSigLearned.
func AdvanceXmrLocked(s XmrLocked, encsig *adaptor.EncryptedSignature) (State, error) {
	digest, err := s.Session().Txs.Redeem.Digest()
	if err != nil {
		return s, err
	}

	x := s.Session().Counterparty.BitcoinPubKey // B
	y := s.Session().Keys.BitcoinPublicKey()     // A, equal to S_a_xmr's secp counterpart

	if err := adaptor.EncVerify(encsig, x, y, digest); err != nil {
		return s, &swaperr.CryptoError{Op: "AdvanceXmrLocked/EncVerify", Err: err}
	}

	log.Infof("%s: learned a valid encrypted signature on Redeem", s.Session().SwapID)
	return EncSigLearned{base{s.session}, s.XmrTxID, encsig}, nil
}

// AdvanceEncSigLearned decrypts Bob's encrypted signature on Redeem
// with Alice's own secret, combines it with her own plain signature,
// and broadcasts Redeem, moving to the terminal BtcRedeemed.
func AdvanceEncSigLearned(ctx context.Context, be *backend.Backend, s EncSigLearned) (State, error) {
	digest, err := s.Session().Txs.Redeem.Digest()
	if err != nil {
		return s, err
	}

	bobSig := adaptor.Decrypt(s.RedeemEncSig, s.Session().Keys.BitcoinPrivateKey)
	aliceSig := s.Session().Keys.BitcoinPrivateKey.Sign(digest)

	tx := s.Session().Txs.Redeem.Finalize(
		swapbtc.DerEncode(aliceSig),
		swapbtc.DerEncode(bobSig.ToWire()),
	)

	txid, err := be.Bitcoin.SignAndBroadcast(ctx, tx)
	if err != nil {
		return s, &swaperr.OnChainRuleError{Op: "AdvanceEncSigLearned/Broadcast", Err: err}
	}

	log.Infof("%s: broadcast Redeem, txid=%s", s.Session().SwapID, txid)
	return BtcRedeemed{base{s.session}, txid}, nil
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
	case CancelTimelockExpired, BtcCancelled, BtcPunishable:
		return s, nil
	default:
		return CancelTimelockExpired{base{s.Session()}}, nil
	}
}

// AdvanceCancelTimelockExpired broadcasts Cancel, moving to
// BtcCancelled.
func AdvanceCancelTimelockExpired(ctx context.Context, be *backend.Backend, s CancelTimelockExpired) (State, error) {
	digest, err := s.Session().Txs.Cancel.Digest()
	if err != nil {
		return s, err
	}

	aliceSig := s.Session().Keys.BitcoinPrivateKey.Sign(digest)
	tx := s.Session().Txs.Cancel.Finalize(
		swapbtc.DerEncode(aliceSig),
		s.Session().BobCancelSig,
	)

	txid, err := be.Bitcoin.SignAndBroadcast(ctx, tx)
	if err != nil {
		return s, &swaperr.OnChainRuleError{Op: "AdvanceCancelTimelockExpired/Broadcast", Err: err}
	}

	log.Infof("%s: broadcast Cancel, txid=%s", s.Session().SwapID, txid)
	return BtcCancelled{base{s.session}}, nil
}

// AdvanceOnRefundSeen takes the plain signature Bob revealed by
// broadcasting Refund (decrypted from its witness by whatever is
// watching the chain) and recovers s_b from it by comparing it against
// the encrypted signature Alice sent Bob in Message3, moving to the
// terminal BtcRefunded.
func AdvanceOnRefundSeen(s BtcCancelled, bobRefundSig *adaptor.Signature) (State, error) {
	sk, err := adaptor.Recover(bobRefundSig, s.Session().OwnPartialRefundEncSig, s.Session().Counterparty.BitcoinPubKey)
	if err != nil {
		return s, &swaperr.CryptoError{Op: "AdvanceOnRefundSeen/Recover", Err: err}
	}

	sb, err := protocol.SharedScalarFromSecpPrivateKey(sk)
	if err != nil {
		return s, &swaperr.CryptoError{Op: "AdvanceOnRefundSeen/ScalarConvert", Err: err}
	}

	log.Infof("%s: recovered s_b from Bob's Refund", s.Session().SwapID)
	return BtcRefunded{base{s.session}, sb}, nil
}

// AdvanceOnPunishEpoch moves BtcCancelled to BtcPunishable once the
// epoch monitor reports T2 has matured without Bob publishing Refund.
func AdvanceOnPunishEpoch(s BtcCancelled, epoch timelock.Epoch) (State, error) {
	if !epoch.IsPunish() {
		return s, nil
	}
	log.Infof("%s: punish timelock matured without Refund", s.Session().SwapID)
	return BtcPunishable{base{s.session}}, nil
}

// AdvanceBtcPunishable broadcasts Punish, moving to the terminal
// BtcPunished.
func AdvanceBtcPunishable(ctx context.Context, be *backend.Backend, s BtcPunishable) (State, error) {
	digest, err := s.Session().Txs.Punish.Digest()
	if err != nil {
		return s, err
	}

	aliceSig := s.Session().Keys.BitcoinPrivateKey.Sign(digest)
	tx := s.Session().Txs.Punish.Finalize(
		swapbtc.DerEncode(aliceSig),
		s.Session().BobPunishSig,
	)

	txid, err := be.Bitcoin.SignAndBroadcast(ctx, tx)
	if err != nil {
		return s, &swaperr.OnChainRuleError{Op: "AdvanceBtcPunishable/Broadcast", Err: err}
	}

	log.Infof("%s: broadcast Punish, txid=%s", s.Session().SwapID, txid)
	return BtcPunished{base{s.session}}, nil
}

// AdvanceBtcRefunded sweeps the joint Monero wallet, combining Alice's
// own secret with Bob's recovered s_b, moving to the terminal
// XmrRefunded.
func AdvanceBtcRefunded(ctx context.Context, be *backend.Backend, s BtcRefunded, walletPath, destinationAddress string, restoreHeight uint64) (State, error) {
	spendKey := s.Session().Keys.Secret.Add(s.RecoveredSecret)
	viewKey := s.Session().Keys.ViewKeyShare.Add(s.Session().Counterparty.ViewKeyShare)

	// The joint wallet's address is derived by the wallet RPC from
	// (spendKey, viewKey); Alice has no independent address to assert here,
	// the same as Bob's symmetric open in protocol/bob/machine.go.
	if err := be.Monero.OpenOrCreateFromKeys(ctx, walletPath, "", *viewKey, *spendKey, restoreHeight); err != nil {
		return s, &swaperr.ResourceError{Op: "AdvanceBtcRefunded/OpenOrCreateFromKeys", Err: err}
	}

	_, err := be.Monero.SweepMultiDestination(ctx, []backend.SweepDestination{
		{Address: destinationAddress, Percentage: 1.0},
	})
	if err != nil {
		return s, &swaperr.ResourceError{Op: "AdvanceBtcRefunded/Sweep", Err: err}
	}

	log.Infof("%s: swept joint Monero wallet back to %s", s.Session().SwapID, destinationAddress)
	return XmrRefunded{base{s.session}}, nil
}

// CanEarlyRefund reports whether s is a pre-redeem, non-terminal state
// from which an EarlyRefund cooperation is still possible.
func CanEarlyRefund(s State) bool {
	switch s.(type) {
	case Started, BtcLockTransactionSeen, BtcLocked, XmrLocked, EncSigLearned:
		return true
	default:
		return false
	}
}

// AdvanceOnEarlyRefundCooperate moves any pre-redeem state to
// BtcEarlyRefundable once Bob has sent his EarlyRefund signature.
func AdvanceOnEarlyRefundCooperate(s State) (State, error) {
	if !CanEarlyRefund(s) {
		return s, &swaperr.ProtocolPolicyError{
			Op:  "AdvanceOnEarlyRefundCooperate",
			Err: fmt.Errorf("state %s cannot early-refund", s),
		}
	}
	return BtcEarlyRefundable{base{s.Session()}}, nil
}

// AdvanceBtcEarlyRefundable broadcasts EarlyRefund, moving to the
// terminal BtcEarlyRefunded.
func AdvanceBtcEarlyRefundable(ctx context.Context, be *backend.Backend, s BtcEarlyRefundable) (State, error) {
	digest, err := s.Session().Txs.EarlyRefund.Digest()
	if err != nil {
		return s, err
	}

	aliceSig := s.Session().Keys.BitcoinPrivateKey.Sign(digest)
	tx := s.Session().Txs.EarlyRefund.Finalize(
		swapbtc.DerEncode(aliceSig),
		s.Session().BobEarlyRefundSig,
	)

	txid, err := be.Bitcoin.SignAndBroadcast(ctx, tx)
	if err != nil {
		return s, &swaperr.OnChainRuleError{Op: "AdvanceBtcEarlyRefundable/Broadcast", Err: err}
	}

	log.Infof("%s: broadcast EarlyRefund, txid=%s", s.Session().SwapID, txid)
	return BtcEarlyRefunded{base{s.session}}, nil
}

// AdvanceAbort moves Started or BtcLockTransactionSeen to
// SafelyAborted; it is only valid before Bitcoin is irreversibly
// committed, matching test scenario 2 in spec §8.
func AdvanceAbort(s State, reason error) (State, error) {
	switch s.(type) {
	case Started, BtcLockTransactionSeen:
		return SafelyAborted{base{s.Session()}, reason}, nil
	default:
		return s, &swaperr.ProtocolPolicyError{
			Op:  "AdvanceAbort",
			Err: fmt.Errorf("state %s cannot safely abort", s),
		}
	}
}
