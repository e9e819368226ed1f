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

// Package sphincs orchestrates key generation, signing and verification
// by composing the FORS few-time signature (digest to compressed root)
// with the WOTS one-time signature (signing that root). Every operation
// is a pure, stateless transform; the few-time reuse bound of FORS is a
// caller-level trust decision the scheme does not track.
package sphincs

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"github.com/sphinx-core/spx/src/crypto/sphincsplus/address"
	"github.com/sphinx-core/spx/src/crypto/sphincsplus/fors"
	"github.com/sphinx-core/spx/src/crypto/sphincsplus/parameters"
	"github.com/sphinx-core/spx/src/crypto/sphincsplus/wots"
)

// SPHINCS_SK is the private key: sk_seed || sk_prf || pk_seed || root.
type SPHINCS_SK struct {
	SKseed []byte
	SKprf  []byte
	PKseed []byte
	PKroot []byte
}

// SPHINCS_PK is the public key: pk_seed || root.
type SPHINCS_PK struct {
	PKseed []byte
	PKroot []byte
}

// SPHINCS_SIG is a signature: randomizer || FORS part || WOTS part.
type SPHINCS_SIG struct {
	R        []byte
	SIG_FORS []byte
	SIG_WOTS []byte
}

// Spx_keygen draws the three n-byte seeds and derives the public root
// from the fixed-address WOTS public key, the same value Spx_verify
// recomputes from a signature.
func Spx_keygen(p *parameters.Parameters) (*SPHINCS_SK, *SPHINCS_PK, error) {
	seeds := make([]byte, 3*p.N)
	if _, err := rand.Read(seeds); err != nil {
		return nil, nil, fmt.Errorf("sphincs: drawing key seeds: %w", err)
	}
	skSeed := seeds[:p.N]
	skPrf := seeds[p.N : 2*p.N]
	pkSeed := seeds[2*p.N:]

	var adrs address.Address
	wotsPK, err := wots.PkGen(p, skSeed, pkSeed, adrs)
	if err != nil {
		return nil, nil, err
	}
	root := p.Tweak.Hash(wotsPK, p.N)

	sk := &SPHINCS_SK{
		SKseed: skSeed,
		SKprf:  skPrf,
		PKseed: pkSeed,
		PKroot: root,
	}
	pk := &SPHINCS_PK{
		PKseed: pkSeed,
		PKroot: root,
	}
	return sk, pk, nil
}

// Spx_sign produces a signature for message. Signing is deterministic
// given (key, message): the randomizer is derived from sk_prf and the
// message, never from fresh randomness. The FORS public value is
// recomputed through VerifyToRoot, not read from a cache, so the signer
// exercises exactly the path the verifier will take.
func Spx_sign(p *parameters.Parameters, message []byte, sk *SPHINCS_SK) (*SPHINCS_SIG, error) {
	if err := checkSK(p, sk); err != nil {
		return nil, err
	}

	var randAdrs address.Address
	randAdrs.SetType(address.TypeRandomizer)
	r := p.Tweak.PRF(sk.SKprf, randAdrs.Bytes(), message)
	digest := p.Tweak.HMsg(r, sk.PKseed, sk.PKroot, message)

	var adrs address.Address
	forsSig, err := fors.Sign(p, digest, sk.SKseed, sk.PKseed, adrs)
	if err != nil {
		return nil, err
	}
	forsPK, err := fors.VerifyToRoot(p, digest, forsSig, sk.PKseed, adrs)
	if err != nil {
		return nil, err
	}
	wotsSig, err := wots.Sign(p, forsPK, sk.SKseed, sk.PKseed, adrs)
	if err != nil {
		return nil, err
	}
	return &SPHINCS_SIG{
		R:        r,
		SIG_FORS: forsSig,
		SIG_WOTS: wotsSig,
	}, nil
}

// Spx_verify reports whether sig is a valid signature on message under
// pk. A mismatch of any kind is a normal false outcome, never an error.
func Spx_verify(p *parameters.Parameters, message []byte, sig *SPHINCS_SIG, pk *SPHINCS_PK) bool {
	if sig == nil || pk == nil {
		return false
	}
	if len(pk.PKseed) != p.N || len(pk.PKroot) != p.N || len(sig.R) != p.N {
		return false
	}

	digest := p.Tweak.HMsg(sig.R, pk.PKseed, pk.PKroot, message)

	var adrs address.Address
	forsPK, err := fors.VerifyToRoot(p, digest, sig.SIG_FORS, pk.PKseed, adrs)
	if err != nil {
		return false
	}
	wotsPK, err := wots.PkFromSig(p, sig.SIG_WOTS, forsPK, pk.PKseed, adrs)
	if err != nil {
		return false
	}
	return bytes.Equal(p.Tweak.Hash(wotsPK, p.N), pk.PKroot)
}

func checkSK(p *parameters.Parameters, sk *SPHINCS_SK) error {
	if sk == nil {
		return fmt.Errorf("%w: nil private key", ErrBadKeyLength)
	}
	if len(sk.SKseed) != p.N || len(sk.SKprf) != p.N || len(sk.PKseed) != p.N || len(sk.PKroot) != p.N {
		return fmt.Errorf("%w: private key fields must each be %d bytes", ErrBadKeyLength, p.N)
	}
	return nil
}
