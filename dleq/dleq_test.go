// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package dleq

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
)

func TestProveVerify(t *testing.T) {
	s, err := ed25519x.GenerateScalar(rand.Reader)
	require.NoError(t, err)

	proof, err := Prove(s, rand.Reader)
	require.NoError(t, err)

	result, err := Verify(proof)
	require.NoError(t, err)
	require.True(t, result.SBtc.Equal(proof.SBtc))
	require.True(t, result.SXmr.Equal(proof.SXmr))
}

func TestVerifyRejectsMismatchedScalars(t *testing.T) {
	s1, err := ed25519x.GenerateScalar(rand.Reader)
	require.NoError(t, err)
	s2, err := ed25519x.GenerateScalar(rand.Reader)
	require.NoError(t, err)

	proof, err := Prove(s1, rand.Reader)
	require.NoError(t, err)

	// Swap in an unrelated S_xmr so the proof no longer binds the same
	// scalar on both curves.
	proof.SXmr = s2.BasePointMult()

	_, err = Verify(proof)
	require.ErrorIs(t, err, ErrInvalidProof)
}

// TestVerifyRejectsFreelyChosenBlindFactor exercises the forgery the old
// unreduced-shared-response construction allowed: once S_xmr is swapped for
// an unrelated point, no choice of the aggregate blinding factor can make
// the proof verify, because the per-bit commitments are still bound to the
// original s and H_secp/H_xmr's discrete logs are unknown.
func TestVerifyRejectsFreelyChosenBlindFactor(t *testing.T) {
	s, err := ed25519x.GenerateScalar(rand.Reader)
	require.NoError(t, err)
	other, err := ed25519x.GenerateScalar(rand.Reader)
	require.NoError(t, err)

	proof, err := Prove(s, rand.Reader)
	require.NoError(t, err)

	proof.SXmr = other.BasePointMult()
	proof.blind = big.NewInt(12345)

	_, err = Verify(proof)
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s, err := ed25519x.GenerateScalar(rand.Reader)
	require.NoError(t, err)

	proof, err := Prove(s, rand.Reader)
	require.NoError(t, err)

	encoded := proof.Encode()
	decoded, err := DecodeProof(encoded, proof.SBtc, proof.SXmr)
	require.NoError(t, err)

	result, err := Verify(decoded)
	require.NoError(t, err)
	require.True(t, result.SBtc.Equal(proof.SBtc))
}
