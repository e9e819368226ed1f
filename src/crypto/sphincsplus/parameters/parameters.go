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

// Package parameters derives every fixed size of the scheme from the five
// tunables (n, k, w, t, robust; h and d are carried but reserved) and binds
// the tweakable hash the instance runs on. A Parameters value is immutable
// once constructed.
package parameters

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/sphinx-core/spx/src/crypto/sphincsplus/tweakable"
)

// ErrInvalidParameters reports a parameter combination the scheme cannot
// be instantiated with.
var ErrInvalidParameters = errors.New("sphincsplus: invalid parameter set")

type Parameters struct {
	N      int  // Security parameter: hash and key element size in bytes
	H      int  // Total tree height (reserved)
	D      int  // Number of hypertree layers (reserved)
	K      int  // Number of FORS trees
	W      int  // Winternitz parameter
	T      int  // Leaves per FORS tree (2^LogT)
	Robust bool // Robust (bitmask) variant

	Hprime int // Height per hypertree layer (reserved)
	LogT   int // FORS tree height
	LogW   int // Bits per Winternitz digit

	Len1 int // Message digits of a WOTS signature
	Len2 int // Checksum digits of a WOTS signature
	Len  int // Total WOTS chains, Len1 + Len2

	MessageDigestLen int // H_MSG output length in bytes

	Tweak tweakable.TweakableHashFunction
}

// Hash function names accepted by MakeSphincsPlus.
const (
	HashShake256 = "SHAKE256"
	HashSha256   = "SHA256"
)

// MakeSphincsPlus validates the tunables and derives the full parameter
// set. The hash primitive is fixed here, once, so that every later call
// site works against the injected tweakable capability.
func MakeSphincsPlus(n, h, d, k, w, t int, hashFunc string, robust bool) (*Parameters, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be at least 1, got %d", ErrInvalidParameters, n)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalidParameters, k)
	}
	if d < 1 {
		return nil, fmt.Errorf("%w: d must be at least 1, got %d", ErrInvalidParameters, d)
	}
	if h < 0 {
		return nil, fmt.Errorf("%w: h must not be negative, got %d", ErrInvalidParameters, h)
	}
	if w < 2 || !isPowerOfTwo(w) {
		return nil, fmt.Errorf("%w: w must be a power of two >= 2, got %d", ErrInvalidParameters, w)
	}
	if t < 1 || !isPowerOfTwo(t) {
		return nil, fmt.Errorf("%w: t must be a power of two >= 1, got %d", ErrInvalidParameters, t)
	}

	p := &Parameters{
		N:      n,
		H:      h,
		D:      d,
		K:      k,
		W:      w,
		T:      t,
		Robust: robust,
		Hprime: h / d,
		LogT:   bits.TrailingZeros(uint(t)),
		LogW:   bits.TrailingZeros(uint(w)),
	}
	p.Len1 = (8*n + p.LogW - 1) / p.LogW
	// Maximum checksum is Len1*(w-1); Len2 digits hold it in base w.
	p.Len2 = (bits.Len(uint(p.Len1*(w-1)))-1)/p.LogW + 1
	p.Len = p.Len1 + p.Len2
	p.MessageDigestLen = (k*p.LogT + 7) / 8

	variant := tweakable.Simple
	if robust {
		variant = tweakable.Robust
	}
	switch hashFunc {
	case HashShake256:
		p.Tweak = &tweakable.Shake256Tweak{
			Variant:             variant,
			N:                   n,
			MessageDigestLength: p.MessageDigestLen,
		}
	case HashSha256:
		p.Tweak = &tweakable.Sha256Tweak{
			Variant:             variant,
			N:                   n,
			MessageDigestLength: p.MessageDigestLen,
		}
	default:
		return nil, fmt.Errorf("%w: unsupported hash function %q", ErrInvalidParameters, hashFunc)
	}
	return p, nil
}

// Default is the parameter set the scheme was originally tuned with:
// 128-bit elements, 10 FORS trees of 64 leaves, Winternitz base 16,
// robust SHAKE256.
func Default() (*Parameters, error) {
	return MakeSphincsPlus(16, 64, 8, 10, 16, 64, HashShake256, true)
}

func MakeSphincsPlusSHAKE256128Robust() (*Parameters, error) {
	return MakeSphincsPlus(16, 64, 8, 10, 16, 64, HashShake256, true)
}

func MakeSphincsPlusSHAKE256128Simple() (*Parameters, error) {
	return MakeSphincsPlus(16, 64, 8, 10, 16, 64, HashShake256, false)
}

func MakeSphincsPlusSHAKE256256Robust() (*Parameters, error) {
	return MakeSphincsPlus(32, 64, 8, 22, 16, 16384, HashShake256, true)
}

func MakeSphincsPlusSHA256128Robust() (*Parameters, error) {
	return MakeSphincsPlus(16, 64, 8, 10, 16, 64, HashSha256, true)
}

func MakeSphincsPlusSHA256128Simple() (*Parameters, error) {
	return MakeSphincsPlus(16, 64, 8, 10, 16, 64, HashSha256, false)
}

// PublicKeyBytes is the serialized public key size: pk_seed || root.
func (p *Parameters) PublicKeyBytes() int {
	return 2 * p.N
}

// PrivateKeyBytes is the serialized private key size:
// sk_seed || sk_prf || pk_seed || root.
func (p *Parameters) PrivateKeyBytes() int {
	return 4 * p.N
}

// WotsSigBytes is the WOTS part of a signature: one element per chain.
func (p *Parameters) WotsSigBytes() int {
	return p.Len * p.N
}

// ForsSigBytes is the FORS part of a signature: per tree one revealed
// secret plus LogT authentication nodes.
func (p *Parameters) ForsSigBytes() int {
	return p.K * (1 + p.LogT) * p.N
}

// SignatureBytes is the full signature size: r || FORS || WOTS.
func (p *Parameters) SignatureBytes() int {
	return p.N + p.ForsSigBytes() + p.WotsSigBytes()
}

func isPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}
