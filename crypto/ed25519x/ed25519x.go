// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package ed25519x wraps edwards25519 scalar/point arithmetic for the
// Monero side of the cross-curve DLEQ proof and for joint-wallet key
// aggregation (v = v_a + v_b, s = s_a + s_b).
package ed25519x

import (
	"crypto/rand"
	"errors"
	"io"

	"filippo.io/edwards25519"
)

// ErrInvalidScalar is returned when bytes do not decode to a canonical
// scalar.
var ErrInvalidScalar = errors.New("invalid ed25519 scalar")

// Scalar is an ed25519 private scalar (mod l).
type Scalar struct {
	s *edwards25519.Scalar
}

// Point is an ed25519 group element.
type Point struct {
	p *edwards25519.Point
}

// GenerateScalar returns a uniformly random scalar.
func GenerateScalar(rnd io.Reader) (*Scalar, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	var wide [64]byte
	if _, err := io.ReadFull(rnd, wide[:]); err != nil {
		return nil, err
	}

	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return nil, err
	}

	return &Scalar{s: s}, nil
}

// NewScalarFromCanonicalBytes parses a 32-byte little-endian canonical
// scalar, as used for Monero private keys.
func NewScalarFromCanonicalBytes(b []byte) (*Scalar, error) {
	if len(b) != 32 {
		return nil, ErrInvalidScalar
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, ErrInvalidScalar
	}

	return &Scalar{s: s}, nil
}

// Bytes returns the 32-byte little-endian canonical encoding.
func (s *Scalar) Bytes() [32]byte {
	var out [32]byte
	copy(out[:], s.s.Bytes())
	return out
}

// Add returns s + other (mod l).
func (s *Scalar) Add(other *Scalar) *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Add(s.s, other.s)}
}

// Negate returns -s (mod l).
func (s *Scalar) Negate() *Scalar {
	return &Scalar{s: edwards25519.NewScalar().Negate(s.s)}
}

// SumScalars folds Add across every element; used to combine view/spend
// key shares into the joint wallet's private keys.
func SumScalars(scalars ...*Scalar) *Scalar {
	sum := edwards25519.NewScalar()
	for _, s := range scalars {
		sum = edwards25519.NewScalar().Add(sum, s.s)
	}
	return &Scalar{s: sum}
}

// BasePointMult returns s*B for the ed25519 base point B.
func (s *Scalar) BasePointMult() *Point {
	return &Point{p: edwards25519.NewIdentityPoint().ScalarBaseMult(s.s)}
}

// ScalarMult returns s*p.
func (s *Scalar) ScalarMult(p *Point) *Point {
	return &Point{p: edwards25519.NewIdentityPoint().ScalarMult(s.s, p.p)}
}

// Bytes returns the 32-byte compressed encoding of the point.
func (p *Point) Bytes() [32]byte {
	var out [32]byte
	copy(out[:], p.p.Bytes())
	return out
}

// NewPointFromBytes decodes a compressed point.
func NewPointFromBytes(b []byte) (*Point, error) {
	pt, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, err
	}
	return &Point{p: pt}, nil
}

// Add returns p + other.
func (p *Point) Add(other *Point) *Point {
	return &Point{p: edwards25519.NewIdentityPoint().Add(p.p, other.p)}
}

// Negate returns -p, the point's additive inverse.
func (p *Point) Negate() *Point {
	return &Point{p: edwards25519.NewIdentityPoint().Negate(p.p)}
}

// Equal reports whether two points are equal.
func (p *Point) Equal(other *Point) bool {
	return p.p.Equal(other.p) == 1
}

// SumPoints folds Add across every element; used to derive the joint
// wallet's public spend key S_a + S_b (and, equivalently, its public
// view key).
func SumPoints(points ...*Point) *Point {
	sum := edwards25519.NewIdentityPoint()
	for _, p := range points {
		sum = edwards25519.NewIdentityPoint().Add(sum, p.p)
	}
	return &Point{p: sum}
}
