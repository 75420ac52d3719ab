// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package message defines the wire messages exchanged during the swap
// setup handshake (Message0..Message4) and during the runtime phase
// (quote, transfer-proof, encrypted-signature, cooperative-redeem),
// CBOR-encoded behind a one-byte type prefix.
package message

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Type identifies the concrete shape of a Message's payload.
type Type byte

const (
	// TypeMessage0 is Bob's opening offer of setup parameters.
	TypeMessage0 Type = iota
	// TypeMessage1 is Alice's counter-offer of setup parameters.
	TypeMessage1
	// TypeMessage2 carries Bob's funded TxLock PSBT.
	TypeMessage2
	// TypeMessage3 carries Alice's cancel signature and encrypted
	// refund signature(s).
	TypeMessage3
	// TypeMessage4 carries Bob's punish, cancel, and early-refund
	// signatures.
	TypeMessage4
	// TypeQuote is a price quote exchanged ahead of setup.
	TypeQuote
	// TypeTransferProof carries a Monero transfer receipt.
	TypeTransferProof
	// TypeEncryptedSignature carries a single adaptor-encrypted
	// signature sent out of band from the M0-M4 handshake.
	TypeEncryptedSignature
	// TypeCooperativeRedeem is Alice's post-punish request that Bob
	// cooperatively relay her redeem via the relayer.
	TypeCooperativeRedeem
)

var typeNames = map[Type]string{
	TypeMessage0:            "Message0",
	TypeMessage1:            "Message1",
	TypeMessage2:            "Message2",
	TypeMessage3:            "Message3",
	TypeMessage4:            "Message4",
	TypeQuote:               "Quote",
	TypeTransferProof:       "TransferProof",
	TypeEncryptedSignature:  "EncryptedSignature",
	TypeCooperativeRedeem:   "CooperativeRedeem",
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Message must be implemented by every network message this package
// defines.
type Message interface {
	fmt.Stringer
	Type() Type
	Encode() ([]byte, error)
}

// ErrEmptyMessage is returned by Decode when given a zero-length buffer.
var ErrEmptyMessage = errors.New("message: empty message bytes")

// ErrUnknownType is returned by Decode when the leading type byte does
// not match a known message.
var ErrUnknownType = errors.New("message: unknown message type")

// Decode parses the type-prefixed, CBOR-encoded wire format back into a
// concrete Message.
func Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return nil, ErrEmptyMessage
	}

	body := b[1:]
	switch Type(b[0]) {
	case TypeMessage0:
		var m Message0
		if err := cbor.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case TypeMessage1:
		var m Message1
		if err := cbor.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case TypeMessage2:
		var m Message2
		if err := cbor.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case TypeMessage3:
		var m Message3
		if err := cbor.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case TypeMessage4:
		var m Message4
		if err := cbor.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case TypeQuote:
		var m Quote
		if err := cbor.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case TypeTransferProof:
		var m TransferProofMessage
		if err := cbor.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case TypeEncryptedSignature:
		var m EncryptedSignatureMessage
		if err := cbor.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case TypeCooperativeRedeem:
		var m CooperativeRedeemMessage
		if err := cbor.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		return &m, nil
	default:
		return nil, ErrUnknownType
	}
}

// encode CBOR-marshals payload and prepends t's type byte.
func encode(t Type, payload interface{}) ([]byte, error) {
	body, err := cbor.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(t)}, body...), nil
}
