// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package adaptor

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
)

// ErrMalformedEncryptedSignature is returned by DecodeEncryptedSignature
// when the input is not the expected length.
var ErrMalformedEncryptedSignature = errors.New("adaptor: malformed encrypted signature encoding")

// encodedLen is R (33) + R_hat (33) + s_hat (32) + the DLEQ proof's e
// (32) and z (32).
const encodedLen = 33 + 33 + 32 + 32 + 32

// Encode serializes an EncryptedSignature for transmission over the
// wire (the net/message setup handshake).
func (e *EncryptedSignature) Encode() []byte {
	out := make([]byte, 0, encodedLen)
	out = append(out, e.r.Bytes()...)
	out = append(out, e.rHat.Bytes()...)
	sHatBytes := e.sHat.Bytes()
	out = append(out, sHatBytes[:]...)
	eBytes := e.proof.e.Bytes()
	out = append(out, eBytes[:]...)
	zBytes := e.proof.z.Bytes()
	out = append(out, zBytes[:]...)
	return out
}

// DecodeEncryptedSignature parses the wire encoding produced by Encode.
func DecodeEncryptedSignature(b []byte) (*EncryptedSignature, error) {
	if len(b) != encodedLen {
		return nil, ErrMalformedEncryptedSignature
	}

	r, err := secp256k1.NewPublicKeyFromBytes(b[:33])
	if err != nil {
		return nil, err
	}
	rHat, err := secp256k1.NewPublicKeyFromBytes(b[33:66])
	if err != nil {
		return nil, err
	}

	var sHat, e, z btcec.ModNScalar
	var buf [32]byte

	copy(buf[:], b[66:98])
	sHat.SetBytes(&buf)

	copy(buf[:], b[98:130])
	e.SetBytes(&buf)

	copy(buf[:], b[130:162])
	z.SetBytes(&buf)

	return &EncryptedSignature{
		r:    r,
		rHat: rHat,
		sHat: &sHat,
		proof: &dleqProof{
			e: &e,
			z: &z,
		},
	}, nil
}

// Encode serializes a decrypted (r, s) signature as 64 raw bytes.
func (s *Signature) Encode() []byte {
	out := make([]byte, 0, 64)
	rBytes := s.R.Bytes()
	sBytes := s.S.Bytes()
	out = append(out, rBytes[:]...)
	out = append(out, sBytes[:]...)
	return out
}

// DecodeSignature parses the encoding produced by Signature.Encode.
func DecodeSignature(b []byte) (*Signature, error) {
	if len(b) != 64 {
		return nil, ErrMalformedEncryptedSignature
	}

	var r, s btcec.ModNScalar
	var buf [32]byte

	copy(buf[:], b[:32])
	r.SetBytes(&buf)

	copy(buf[:], b[32:])
	s.SetBytes(&buf)

	return &Signature{R: &r, S: &s}, nil
}
