// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package tweakable provides the address-separated hash functions the
// scheme is built from: the PRF, the chain-step hash F, the node hash
// THASH and the message digest H_MSG. The concrete hash is a
// construction-time choice injected through TweakableHashFunction.
package tweakable

import (
	"crypto/sha256"

	"golang.org/x/crypto/sha3"
)

// Variant selects between the robust (bitmask-then-hash) and simple
// constructions.
type Variant int

const (
	Robust Variant = iota
	Simple
)

// Mask tags appended to the serialized address when deriving the robust
// variant's XOR masks. THASH uses both; F uses only the left tag.
const (
	MaskTagLeft  byte = 0x00
	MaskTagRight byte = 0x01
)

// TweakableHashFunction is the hash capability the rest of the scheme is
// parameterized over. All outputs are exactly the requested length.
type TweakableHashFunction interface {
	// Hash maps data to outLen bytes with the underlying primitive.
	Hash(data []byte, outLen int) []byte
	// PRF computes Hash(key || addr || msg, n). msg may be nil.
	PRF(key, addr, msg []byte) []byte
	// F applies one chain step to an n-byte value.
	F(pkSeed, addr, in []byte) []byte
	// THash hashes two sibling nodes into their parent.
	THash(pkSeed, addr, left, right []byte) []byte
	// HMsg compresses a message into the index-extraction digest.
	HMsg(r, pkSeed, root, msg []byte) []byte
}

// Shake256Tweak implements the tweakable hash layer over SHAKE256.
type Shake256Tweak struct {
	Variant             Variant
	N                   int
	MessageDigestLength int
}

// Hash squeezes outLen bytes of SHAKE256 over data.
func (s *Shake256Tweak) Hash(data []byte, outLen int) []byte {
	out := make([]byte, outLen)
	sha3.ShakeSum256(out, data)
	return out
}

func (s *Shake256Tweak) PRF(key, addr, msg []byte) []byte {
	return s.Hash(concat(key, addr, msg), s.N)
}

func (s *Shake256Tweak) F(pkSeed, addr, in []byte) []byte {
	return s.Hash(concat(pkSeed, addr, maskInput(s, pkSeed, addr, in, MaskTagLeft)), s.N)
}

func (s *Shake256Tweak) THash(pkSeed, addr, left, right []byte) []byte {
	l := maskInput(s, pkSeed, addr, left, MaskTagLeft)
	r := maskInput(s, pkSeed, addr, right, MaskTagRight)
	return s.Hash(concat(pkSeed, addr, l, r), s.N)
}

func (s *Shake256Tweak) HMsg(r, pkSeed, root, msg []byte) []byte {
	return s.Hash(concat(r, pkSeed, root, msg), s.MessageDigestLength)
}

func (s *Shake256Tweak) variant() Variant { return s.Variant }

// Sha256Tweak implements the tweakable hash layer over SHA-256. Outputs
// longer than the SHA-256 digest are zero-padded, shorter ones truncated.
type Sha256Tweak struct {
	Variant             Variant
	N                   int
	MessageDigestLength int
}

func (s *Sha256Tweak) Hash(data []byte, outLen int) []byte {
	sum := sha256.Sum256(data)
	out := make([]byte, outLen)
	copy(out, sum[:])
	return out
}

func (s *Sha256Tweak) PRF(key, addr, msg []byte) []byte {
	return s.Hash(concat(key, addr, msg), s.N)
}

func (s *Sha256Tweak) F(pkSeed, addr, in []byte) []byte {
	return s.Hash(concat(pkSeed, addr, maskInput(s, pkSeed, addr, in, MaskTagLeft)), s.N)
}

func (s *Sha256Tweak) THash(pkSeed, addr, left, right []byte) []byte {
	l := maskInput(s, pkSeed, addr, left, MaskTagLeft)
	r := maskInput(s, pkSeed, addr, right, MaskTagRight)
	return s.Hash(concat(pkSeed, addr, l, r), s.N)
}

func (s *Sha256Tweak) HMsg(r, pkSeed, root, msg []byte) []byte {
	return s.Hash(concat(r, pkSeed, root, msg), s.MessageDigestLength)
}

func (s *Sha256Tweak) variant() Variant { return s.Variant }

// masker is the slice of TweakableHashFunction the robust masking needs.
type masker interface {
	PRF(key, addr, msg []byte) []byte
	variant() Variant
}

// maskInput returns in unchanged for the simple variant, or in XORed with
// PRF(pkSeed, addr || tag) for the robust variant.
func maskInput(m masker, pkSeed, addr, in []byte, tag byte) []byte {
	if m.variant() != Robust {
		return in
	}
	tagged := make([]byte, 0, len(addr)+1)
	tagged = append(tagged, addr...)
	tagged = append(tagged, tag)
	mask := m.PRF(pkSeed, tagged, nil)
	out := make([]byte, len(in))
	for i := range in {
		out[i] = in[i] ^ mask[i]
	}
	return out
}

func concat(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
