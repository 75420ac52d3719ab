// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package dleq implements the cross-curve discrete-log-equality proof that
// binds one secret scalar to a point on secp256k1 and a point on ed25519.
// This is the sole cross-chain binding of the protocol (spec.md §4.1): a
// verifier that accepts a Proof is assured that S_btc = s*G_secp and
// S_xmr = s*G_ed share the exact same scalar s.
//
// A single Sigma protocol run in parallel over both groups with one shared
// unreduced response does not work here: secp256k1's order N and ed25519's
// subgroup order L are coprime, so by the Chinese Remainder Theorem a
// cheating prover can always find some z satisfying the secp256k1
// verification equation mod N and the ed25519 equation mod L independently,
// for any two unrelated points, as long as z is allowed to range freely up
// to N*L. Binding the two groups together requires bounding the shared
// witness to a range far smaller than N*L, which is what this package does:
// s is decomposed bit by bit, each bit is committed to (via an independent,
// nothing-up-my-sleeve second generator H) and proved to be 0 or 1 with a
// two-branch ring signature run jointly over both groups, and the bit
// commitments are aggregated and checked against S_btc/S_xmr. Bounding s to
// its true bit length (ed25519's L needs at most 253 bits) makes the
// CRT-style forgery succeed with only negligible probability instead of
// certainty.
package dleq

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
)

// ErrInvalidProof is returned by Verify when the transcript does not
// satisfy every per-bit ring proof or the final aggregate binding check.
var ErrInvalidProof = errors.New("dleq: proof failed to verify")

// numBits is the number of bits decomposed. ed25519's prime-order subgroup
// has order L with 2^252 < L < 2^253, so every valid scalar fits in 253
// bits.
const numBits = 253

// secp256k1Order is the order of the secp256k1 group (N).
var secp256k1Order, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

// ed25519Order is the order of the ed25519 prime-order subgroup (L).
var ed25519Order, _ = new(big.Int).SetString(
	"1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)

// gSecp and gXmr are the standard generators of their respective groups,
// exposed here so bit commitments can be built without ever multiplying by
// a zero scalar (which btcec and edwards25519 both treat as an edge case
// best avoided rather than relied on).
var (
	gSecp = secp256k1.ScalarBaseMult(oneModNScalar())
	gXmr  = mustOneEdScalar().BasePointMult()
)

// hSecp and hXmr are independent, nothing-up-my-sleeve second generators
// used as the Pedersen blinding base for bit commitments. Their discrete
// logs relative to gSecp/gXmr are assumed unknown to everyone, which is
// what makes the bit commitments binding.
var (
	hSecp = deriveSecpGenerator()
	hXmr  = deriveEdGenerator()
)

func oneModNScalar() *btcec.ModNScalar {
	var one btcec.ModNScalar
	one.SetInt(1)
	return &one
}

func mustOneEdScalar() *ed25519x.Scalar {
	s, err := bigToEdScalar(big.NewInt(1))
	if err != nil {
		panic(err) // unreachable: 1 < ed25519Order always
	}
	return s
}

func deriveSecpGenerator() *secp256k1.PublicKey {
	for counter := uint32(0); ; counter++ {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], counter)
		h := sha256.Sum256(append([]byte("atomic-swap-btc/dleq/H/secp256k1"), buf[:]...))
		candidate := append([]byte{0x02}, h[:]...)
		if p, err := secp256k1.NewPublicKeyFromBytes(candidate); err == nil {
			return p
		}
	}
}

func deriveEdGenerator() *ed25519x.Point {
	for counter := uint32(0); ; counter++ {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], counter)
		h := sha256.Sum256(append([]byte("atomic-swap-btc/dleq/H/ed25519"), buf[:]...))
		if p, err := ed25519x.NewPointFromBytes(h[:]); err == nil {
			return p
		}
	}
}

// bitRecord is one bit's Pedersen commitments in both groups plus its
// two-branch ring proof that the committed value is 0 or 1.
type bitRecord struct {
	cBtc *secp256k1.PublicKey
	cXmr *ed25519x.Point
	c0   *big.Int
	c1   *big.Int
	z0   *big.Int
	z1   *big.Int
}

// Proof is a bit-decomposition transcript proving knowledge of s < L such
// that S_btc = s*G_secp and S_xmr = s*G_ed.
type Proof struct {
	SBtc *secp256k1.PublicKey
	SXmr *ed25519x.Point

	bits  []bitRecord
	blind *big.Int // T = sum_i 2^i * r_i, the aggregate Pedersen blinding
}

// Prove constructs a Proof that s is the discrete log of both S_btc and
// S_xmr. s must already be a valid ed25519 scalar (< L), which is also
// automatically a valid secp256k1 scalar since L < N.
func Prove(s *ed25519x.Scalar, rnd io.Reader) (*Proof, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	sBtcScalar, err := secpScalarFromEd(s)
	if err != nil {
		return nil, err
	}
	sBig := scalarToBig(s.Bytes())

	sXmrPoint := s.BasePointMult()
	sBtcPub := secp256k1.ScalarBaseMult(sBtcScalar)

	bits := make([]bitRecord, numBits)
	blind := new(big.Int)

	for i := 0; i < numBits; i++ {
		bit := sBig.Bit(i)

		r, err := randBelow(rnd, ed25519Order)
		if err != nil {
			return nil, err
		}

		rSecp, err := bigToSecpScalar(r)
		if err != nil {
			return nil, err
		}
		rEd, err := bigToEdScalar(r)
		if err != nil {
			return nil, err
		}

		cBtc := secp256k1.ScalarMult(rSecp, hSecp)
		cXmr := rEd.ScalarMult(hXmr)
		if bit == 1 {
			cBtc = cBtc.Add(gSecp)
			cXmr = cXmr.Add(gXmr)
		}

		rec, err := proveBit(rnd, i, bit, r, cBtc, cXmr)
		if err != nil {
			return nil, err
		}
		bits[i] = *rec

		blind.Add(blind, new(big.Int).Lsh(r, uint(i)))
	}

	return &Proof{SBtc: sBtcPub, SXmr: sXmrPoint, bits: bits, blind: blind}, nil
}

// proveBit builds the two-branch ring proof that cBtc/cXmr commit to bit
// (0 or 1) with blinding r, jointly over both groups: one branch proves
// cBtc = r*H_secp (and cXmr = r*H_ed), the other proves cBtc - G_secp =
// r*H_secp (and cXmr - G_xmr = r*H_ed). Exactly one branch is real; the
// other is simulated, standard ring-signature style.
func proveBit(rnd io.Reader, idx int, bit uint, r *big.Int, cBtc *secp256k1.PublicKey, cXmr *ed25519x.Point) (*bitRecord, error) {
	k, err := randBelow(rnd, ed25519Order)
	if err != nil {
		return nil, err
	}
	cFake, err := randBelow(rnd, ed25519Order)
	if err != nil {
		return nil, err
	}
	zFake, err := randBelow(rnd, ed25519Order)
	if err != nil {
		return nil, err
	}

	kSecp, err := bigToSecpScalar(k)
	if err != nil {
		return nil, err
	}
	kEd, err := bigToEdScalar(k)
	if err != nil {
		return nil, err
	}
	aRealBtc := secp256k1.ScalarMult(kSecp, hSecp)
	aRealXmr := kEd.ScalarMult(hXmr)

	fakeBit := uint(1) - bit
	targetFakeBtc, targetFakeXmr := cBtc, cXmr
	if fakeBit == 1 {
		targetFakeBtc = cBtc.Add(gSecp.Negate())
		targetFakeXmr = cXmr.Add(gXmr.Negate())
	}

	zFakeSecp, err := bigToSecpScalar(zFake)
	if err != nil {
		return nil, err
	}
	cFakeSecp, err := bigToSecpScalar(cFake)
	if err != nil {
		return nil, err
	}
	var negCFakeSecp btcec.ModNScalar
	negCFakeSecp.Set(cFakeSecp)
	negCFakeSecp.Negate()
	aFakeBtc := secp256k1.ScalarMult(zFakeSecp, hSecp).Add(secp256k1.ScalarMult(&negCFakeSecp, targetFakeBtc))

	zFakeEd, err := bigToEdScalar(zFake)
	if err != nil {
		return nil, err
	}
	cFakeEd, err := bigToEdScalar(cFake)
	if err != nil {
		return nil, err
	}
	aFakeXmr := zFakeEd.ScalarMult(hXmr).Add(cFakeEd.Negate().ScalarMult(targetFakeXmr))

	var a0Btc, a1Btc *secp256k1.PublicKey
	var a0Xmr, a1Xmr *ed25519x.Point
	if bit == 0 {
		a0Btc, a0Xmr = aRealBtc, aRealXmr
		a1Btc, a1Xmr = aFakeBtc, aFakeXmr
	} else {
		a0Btc, a0Xmr = aFakeBtc, aFakeXmr
		a1Btc, a1Xmr = aRealBtc, aRealXmr
	}

	e := bitChallenge(idx, a0Btc, a0Xmr, a1Btc, a1Xmr)
	cReal := new(big.Int).Mod(new(big.Int).Sub(e, cFake), ed25519Order)
	zReal := new(big.Int).Mod(new(big.Int).Add(k, new(big.Int).Mul(cReal, r)), ed25519Order)

	rec := &bitRecord{cBtc: cBtc, cXmr: cXmr}
	if bit == 0 {
		rec.c0, rec.z0 = cReal, zReal
		rec.c1, rec.z1 = cFake, zFake
	} else {
		rec.c0, rec.z0 = cFake, zFake
		rec.c1, rec.z1 = cReal, zReal
	}
	return rec, nil
}

// VerifyResult carries the two points whose equality of discrete log was
// just verified.
type VerifyResult struct {
	SBtc *secp256k1.PublicKey
	SXmr *ed25519x.Point
}

// Verify checks every bit's ring proof and that the bit commitments, once
// aggregated and de-blinded, reconstruct proof.SBtc and proof.SXmr.
func Verify(proof *Proof) (*VerifyResult, error) {
	if len(proof.bits) != numBits {
		return nil, ErrInvalidProof
	}

	var aggBtc *secp256k1.PublicKey
	var aggXmr *ed25519x.Point

	for i, b := range proof.bits {
		if !verifyBit(i, &b) {
			return nil, ErrInvalidProof
		}

		weight := new(big.Int).Lsh(big.NewInt(1), uint(i))

		weightSecp, err := bigToSecpScalar(weight)
		if err != nil {
			return nil, ErrInvalidProof
		}
		weightEd, err := bigToEdScalar(weight)
		if err != nil {
			return nil, ErrInvalidProof
		}

		termBtc := secp256k1.ScalarMult(weightSecp, b.cBtc)
		termXmr := weightEd.ScalarMult(b.cXmr)

		if aggBtc == nil {
			aggBtc, aggXmr = termBtc, termXmr
		} else {
			aggBtc = aggBtc.Add(termBtc)
			aggXmr = aggXmr.Add(termXmr)
		}
	}

	blindModN := new(big.Int).Mod(proof.blind, secp256k1Order)
	blindModL := new(big.Int).Mod(proof.blind, ed25519Order)

	blindSecp, err := bigToSecpScalar(blindModN)
	if err != nil {
		return nil, ErrInvalidProof
	}
	blindEd, err := bigToEdScalar(blindModL)
	if err != nil {
		return nil, ErrInvalidProof
	}

	lhsBtc := aggBtc.Add(proof.SBtc.Negate())
	rhsBtc := secp256k1.ScalarMult(blindSecp, hSecp)
	if !lhsBtc.Equal(rhsBtc) {
		return nil, ErrInvalidProof
	}

	lhsXmr := aggXmr.Add(proof.SXmr.Negate())
	rhsXmr := blindEd.ScalarMult(hXmr)
	if !lhsXmr.Equal(rhsXmr) {
		return nil, ErrInvalidProof
	}

	return &VerifyResult{SBtc: proof.SBtc, SXmr: proof.SXmr}, nil
}

func verifyBit(idx int, b *bitRecord) bool {
	z0Secp, err := bigToSecpScalar(b.z0)
	if err != nil {
		return false
	}
	c0Secp, err := bigToSecpScalar(b.c0)
	if err != nil {
		return false
	}
	z1Secp, err := bigToSecpScalar(b.z1)
	if err != nil {
		return false
	}
	c1Secp, err := bigToSecpScalar(b.c1)
	if err != nil {
		return false
	}

	var negC0Secp, negC1Secp btcec.ModNScalar
	negC0Secp.Set(c0Secp)
	negC0Secp.Negate()
	negC1Secp.Set(c1Secp)
	negC1Secp.Negate()

	targetBtc1 := b.cBtc.Add(gSecp.Negate())
	a0Btc := secp256k1.ScalarMult(z0Secp, hSecp).Add(secp256k1.ScalarMult(&negC0Secp, b.cBtc))
	a1Btc := secp256k1.ScalarMult(z1Secp, hSecp).Add(secp256k1.ScalarMult(&negC1Secp, targetBtc1))

	z0Ed, err := bigToEdScalar(b.z0)
	if err != nil {
		return false
	}
	c0Ed, err := bigToEdScalar(b.c0)
	if err != nil {
		return false
	}
	z1Ed, err := bigToEdScalar(b.z1)
	if err != nil {
		return false
	}
	c1Ed, err := bigToEdScalar(b.c1)
	if err != nil {
		return false
	}

	targetXmr1 := b.cXmr.Add(gXmr.Negate())
	a0Xmr := z0Ed.ScalarMult(hXmr).Add(c0Ed.Negate().ScalarMult(b.cXmr))
	a1Xmr := z1Ed.ScalarMult(hXmr).Add(c1Ed.Negate().ScalarMult(targetXmr1))

	e := bitChallenge(idx, a0Btc, a0Xmr, a1Btc, a1Xmr)
	sum := new(big.Int).Mod(new(big.Int).Add(b.c0, b.c1), ed25519Order)
	return sum.Cmp(new(big.Int).Mod(e, ed25519Order)) == 0
}

// bitChallenge derives bit idx's Fiat-Shamir challenge from its ring
// proof's four nonce commitments.
func bitChallenge(idx int, a0Btc *secp256k1.PublicKey, a0Xmr *ed25519x.Point, a1Btc *secp256k1.PublicKey, a1Xmr *ed25519x.Point) *big.Int {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte("atomic-swap-btc/dleq/bit/v1"))
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], uint32(idx))
	h.Write(idxBuf[:])
	h.Write(a0Btc.Bytes())
	a0x := a0Xmr.Bytes()
	h.Write(a0x[:])
	h.Write(a1Btc.Bytes())
	a1x := a1Xmr.Bytes()
	h.Write(a1x[:])
	digest := h.Sum(nil)

	e := new(big.Int).SetBytes(digest)
	return e.Mod(e, ed25519Order)
}

// bitRecordLen is cBtc (33 bytes, compressed) + cXmr (32 bytes) + c0, c1,
// z0, z1 (32 bytes each, left-padded).
const bitRecordLen = 33 + 32 + 32 + 32 + 32 + 32

// blindLen holds blind = sum_i 2^i*r_i unreduced; with r_i < L (~253 bits)
// and numBits terms, blind stays below L*2^numBits < 2^506, within 64
// bytes (512 bits).
const blindLen = 64

// Encode serializes the full proof transcript (excluding the claimed
// points, which travel alongside it in the setup messages) to bytes.
func (p *Proof) Encode() []byte {
	out := make([]byte, 0, numBits*bitRecordLen+blindLen)
	for _, b := range p.bits {
		out = append(out, b.cBtc.Bytes()...)
		cXmr := b.cXmr.Bytes()
		out = append(out, cXmr[:]...)
		out = append(out, leftPad32(b.c0)...)
		out = append(out, leftPad32(b.c1)...)
		out = append(out, leftPad32(b.z0)...)
		out = append(out, leftPad32(b.z1)...)
	}
	blindBytes := make([]byte, blindLen)
	p.blind.FillBytes(blindBytes)
	out = append(out, blindBytes...)
	return out
}

// DecodeProof reconstructs a Proof from its encoded transcript and the
// claimed points S_btc, S_xmr that it accompanies.
func DecodeProof(buf []byte, sBtc *secp256k1.PublicKey, sXmr *ed25519x.Point) (*Proof, error) {
	if len(buf) != numBits*bitRecordLen+blindLen {
		return nil, errors.New("dleq: malformed proof encoding")
	}

	bits := make([]bitRecord, numBits)
	off := 0
	for i := 0; i < numBits; i++ {
		cBtc, err := secp256k1.NewPublicKeyFromBytes(buf[off : off+33])
		if err != nil {
			return nil, err
		}
		off += 33

		cXmr, err := ed25519x.NewPointFromBytes(buf[off : off+32])
		if err != nil {
			return nil, err
		}
		off += 32

		c0 := new(big.Int).SetBytes(buf[off : off+32])
		off += 32
		c1 := new(big.Int).SetBytes(buf[off : off+32])
		off += 32
		z0 := new(big.Int).SetBytes(buf[off : off+32])
		off += 32
		z1 := new(big.Int).SetBytes(buf[off : off+32])
		off += 32

		bits[i] = bitRecord{cBtc: cBtc, cXmr: cXmr, c0: c0, c1: c1, z0: z0, z1: z1}
	}

	blind := new(big.Int).SetBytes(buf[off : off+blindLen])

	return &Proof{SBtc: sBtc, SXmr: sXmr, bits: bits, blind: blind}, nil
}

func leftPad32(v *big.Int) []byte {
	b := make([]byte, 32)
	v.FillBytes(b)
	return b
}

func randBelow(rnd io.Reader, max *big.Int) (*big.Int, error) {
	return rand.Int(rnd, max)
}

func scalarToBig(b [32]byte) *big.Int {
	// ed25519x.Scalar.Bytes() is little-endian.
	return new(big.Int).SetBytes(reverse(b[:]))
}

func bigToSecpScalar(v *big.Int) (*btcec.ModNScalar, error) {
	var buf [32]byte
	v.FillBytes(buf[:])
	var s btcec.ModNScalar
	s.SetBytes(&buf)
	return &s, nil
}

func bigToEdScalar(v *big.Int) (*ed25519x.Scalar, error) {
	var buf [32]byte
	be := make([]byte, 32)
	v.FillBytes(be)
	copy(buf[:], reverse(be))
	return ed25519x.NewScalarFromCanonicalBytes(buf[:])
}

func secpScalarFromEd(s *ed25519x.Scalar) (*btcec.ModNScalar, error) {
	b := s.Bytes()
	var buf [32]byte
	copy(buf[:], reverse(b[:]))
	var out btcec.ModNScalar
	out.SetBytes(&buf)
	return &out, nil
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
