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

// Package wots implements the Winternitz one-time signature over hash
// chains. All functions are pure over (seeds, address); the checksum
// digits make lowering any message digit unachievable without forging a
// chain preimage.
package wots

import (
	"errors"
	"fmt"

	"github.com/sphinx-core/spx/src/crypto/sphincsplus/address"
	"github.com/sphinx-core/spx/src/crypto/sphincsplus/parameters"
)

var (
	// ErrChainRange reports a chain walk past position w-1.
	ErrChainRange = errors.New("wots: chain position out of range")
	// ErrMessageLength reports a digest that is not exactly n bytes.
	ErrMessageLength = errors.New("wots: message length does not match parameter set")
	// ErrSignatureLength reports a signature that is not len*n bytes.
	ErrSignatureLength = errors.New("wots: signature length does not match parameter set")
)

// SkGen derives the len chain secrets of one key pair, one PRF call per
// chain index.
func SkGen(p *parameters.Parameters, skSeed []byte, adrs address.Address) [][]byte {
	sk := make([][]byte, p.Len)
	a := adrs
	a.SetType(address.TypeWOTSKey)
	for i := range sk {
		a.SetChain(uint32(i))
		sk[i] = p.Tweak.PRF(skSeed, a.Bytes(), nil)
	}
	return sk
}

// Chain applies the chain-step hash F to x steps times, starting at
// position start. The walk must stay within [0, w-1].
func Chain(p *parameters.Parameters, x []byte, start, steps int, pkSeed []byte, adrs address.Address) ([]byte, error) {
	if start < 0 || steps < 0 || start+steps > p.W-1 {
		return nil, fmt.Errorf("%w: start %d steps %d with w %d", ErrChainRange, start, steps, p.W)
	}
	out := append([]byte(nil), x...)
	a := adrs
	a.SetType(address.TypeWOTSChain)
	for j := start; j < start+steps; j++ {
		a.SetHash(uint32(j))
		out = p.Tweak.F(pkSeed, a.Bytes(), out)
	}
	return out, nil
}

// PkGen chains every secret the full w-1 steps and concatenates the
// endpoints into the len*n-byte public key.
func PkGen(p *parameters.Parameters, skSeed, pkSeed []byte, adrs address.Address) ([]byte, error) {
	sk := SkGen(p, skSeed, adrs)
	pk := make([]byte, 0, p.Len*p.N)
	for i := 0; i < p.Len; i++ {
		a := adrs
		a.SetChain(uint32(i))
		end, err := Chain(p, sk[i], 0, p.W-1, pkSeed, a)
		if err != nil {
			return nil, err
		}
		pk = append(pk, end...)
	}
	return pk, nil
}

// Sign walks each chain to the digit extracted from msg and returns the
// concatenated intermediate values.
func Sign(p *parameters.Parameters, msg, skSeed, pkSeed []byte, adrs address.Address) ([]byte, error) {
	if len(msg) != p.N {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrMessageLength, len(msg), p.N)
	}
	lengths := chainLengths(p, msg)
	sk := SkGen(p, skSeed, adrs)
	sig := make([]byte, 0, p.Len*p.N)
	for i := 0; i < p.Len; i++ {
		a := adrs
		a.SetChain(uint32(i))
		v, err := Chain(p, sk[i], 0, lengths[i], pkSeed, a)
		if err != nil {
			return nil, err
		}
		sig = append(sig, v...)
	}
	return sig, nil
}

// PkFromSig completes each chain from the signature value to position w-1
// and returns the candidate public key. Matching PkGen output for the
// signing key is the correctness law of the construction.
func PkFromSig(p *parameters.Parameters, sig, msg, pkSeed []byte, adrs address.Address) ([]byte, error) {
	if len(sig) != p.Len*p.N {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSignatureLength, len(sig), p.Len*p.N)
	}
	if len(msg) != p.N {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrMessageLength, len(msg), p.N)
	}
	lengths := chainLengths(p, msg)
	pk := make([]byte, 0, p.Len*p.N)
	for i := 0; i < p.Len; i++ {
		a := adrs
		a.SetChain(uint32(i))
		v, err := Chain(p, sig[i*p.N:(i+1)*p.N], lengths[i], p.W-1-lengths[i], pkSeed, a)
		if err != nil {
			return nil, err
		}
		pk = append(pk, v...)
	}
	return pk, nil
}

// chainLengths decomposes msg into len1 base-w digits and appends the
// len2 checksum digits, least-significant chunk first.
func chainLengths(p *parameters.Parameters, msg []byte) []int {
	digits := baseW(p, msg)
	csum := 0
	for _, d := range digits {
		csum += p.W - 1 - d
	}
	for i := 0; i < p.Len2; i++ {
		digits = append(digits, (csum>>(p.LogW*i))&(p.W-1))
	}
	return digits
}

// baseW extracts len1 digits of logW bits each from msg, most-significant
// bit first. Positions past the end of msg read as zero bits.
func baseW(p *parameters.Parameters, msg []byte) []int {
	digits := make([]int, 0, p.Len)
	totalBits := len(msg) * 8
	for i := 0; i < p.Len1; i++ {
		d := 0
		for b := 0; b < p.LogW; b++ {
			pos := i*p.LogW + b
			bit := 0
			if pos < totalBits {
				bit = int(msg[pos/8] >> (7 - pos%8) & 1)
			}
			d = d<<1 | bit
		}
		digits = append(digits, d)
	}
	return digits
}
