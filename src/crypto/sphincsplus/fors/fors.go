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

// Package fors implements the few-time signature: k independent Merkle
// trees of t leaves each, where the message digest selects one leaf per
// tree to reveal. Tree construction is an iterative level-by-level pass;
// the k trees are independent and computed on separate goroutines.
package fors

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sphinx-core/spx/src/crypto/sphincsplus/address"
	"github.com/sphinx-core/spx/src/crypto/sphincsplus/parameters"
)

var (
	// ErrDigestTooShort reports a digest with fewer than k*logt bits.
	ErrDigestTooShort = errors.New("fors: digest too short for index extraction")
	// ErrSignatureLength reports a signature that is not k*(1+logt)*n bytes.
	ErrSignatureLength = errors.New("fors: signature length does not match parameter set")
)

// Indices partitions the digest into k chunks of logt bits, big-endian
// within each chunk, and reduces each to a leaf index mod t.
func Indices(p *parameters.Parameters, digest []byte) ([]uint32, error) {
	need := p.K * p.LogT
	if len(digest)*8 < need {
		return nil, fmt.Errorf("%w: have %d bits, need %d", ErrDigestTooShort, len(digest)*8, need)
	}
	indices := make([]uint32, p.K)
	for i := 0; i < p.K; i++ {
		v := uint32(0)
		for j := i * p.LogT; j < (i+1)*p.LogT; j++ {
			bit := digest[j/8] >> (7 - j%8) & 1
			v = v<<1 | uint32(bit)
		}
		indices[i] = v % uint32(p.T)
	}
	return indices, nil
}

// PkGen computes the roots of all k trees and compresses them into the
// n-byte FORS public value.
func PkGen(p *parameters.Parameters, skSeed, pkSeed []byte, adrs address.Address) []byte {
	roots := make([][]byte, p.K)
	var wg sync.WaitGroup
	for i := 0; i < p.K; i++ {
		wg.Add(1)
		go func(tree int) {
			defer wg.Done()
			leaves := treeLeaves(p, skSeed, pkSeed, adrs, uint32(tree))
			roots[tree] = buildRoot(p, leaves, pkSeed, adrs, uint32(tree))
		}(i)
	}
	wg.Wait()
	joined := make([]byte, 0, p.K*p.N)
	for _, r := range roots {
		joined = append(joined, r...)
	}
	return p.Tweak.Hash(joined, p.N)
}

// Sign reveals, for each tree, the secret of the selected leaf followed
// by its authentication path, and concatenates the k groups.
func Sign(p *parameters.Parameters, digest, skSeed, pkSeed []byte, adrs address.Address) ([]byte, error) {
	indices, err := Indices(p, digest)
	if err != nil {
		return nil, err
	}
	parts := make([][]byte, p.K)
	var wg sync.WaitGroup
	for i := 0; i < p.K; i++ {
		wg.Add(1)
		go func(tree int) {
			defer wg.Done()
			leafIdx := indices[tree]
			part := make([]byte, 0, (1+p.LogT)*p.N)
			part = append(part, leafSecret(p, skSeed, adrs, uint32(tree), leafIdx)...)
			leaves := treeLeaves(p, skSeed, pkSeed, adrs, uint32(tree))
			for _, node := range authPath(p, leafIdx, leaves, pkSeed, adrs, uint32(tree)) {
				part = append(part, node...)
			}
			parts[tree] = part
		}(i)
	}
	wg.Wait()
	sig := make([]byte, 0, p.ForsSigBytes())
	for _, part := range parts {
		sig = append(sig, part...)
	}
	return sig, nil
}

// VerifyToRoot recomputes the leaf indices from the digest, folds every
// revealed secret up its authentication path and compresses the k roots
// into the candidate FORS public value. A wrong path yields a wrong
// root, never an error.
func VerifyToRoot(p *parameters.Parameters, digest, sig, pkSeed []byte, adrs address.Address) ([]byte, error) {
	if len(sig) != p.ForsSigBytes() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSignatureLength, len(sig), p.ForsSigBytes())
	}
	indices, err := Indices(p, digest)
	if err != nil {
		return nil, err
	}
	elem := (1 + p.LogT) * p.N
	joined := make([]byte, 0, p.K*p.N)
	for i := 0; i < p.K; i++ {
		leafIdx := indices[i]
		off := i * elem
		sk := sig[off : off+p.N]
		node := leafNode(p, sk, pkSeed, adrs, uint32(i), leafIdx)

		a := adrs
		a.SetType(address.TypeFORSNode)
		a.SetKeyPair(uint32(i))
		for lvl := 0; lvl < p.LogT; lvl++ {
			auth := sig[off+(1+lvl)*p.N : off+(2+lvl)*p.N]
			a.SetTreeHeight(uint32(lvl + 1))
			a.SetTreeIndex(leafIdx >> uint(lvl+1))
			// Bit lvl of the leaf index says which side the running
			// node sits on at this level.
			if leafIdx>>uint(lvl)&1 == 1 {
				node = p.Tweak.THash(pkSeed, a.Bytes(), auth, node)
			} else {
				node = p.Tweak.THash(pkSeed, a.Bytes(), node, auth)
			}
		}
		joined = append(joined, node...)
	}
	return p.Tweak.Hash(joined, p.N), nil
}

// LeafSecret derives the PRF secret behind one leaf. Exported for the
// key-reuse analysis in tests; signing uses it internally.
func LeafSecret(p *parameters.Parameters, skSeed []byte, adrs address.Address, tree, leaf uint32) []byte {
	return leafSecret(p, skSeed, adrs, tree, leaf)
}

func leafSecret(p *parameters.Parameters, skSeed []byte, adrs address.Address, tree, leaf uint32) []byte {
	a := adrs
	a.SetType(address.TypeFORSSecret)
	a.SetKeyPair(tree)
	a.SetTreeIndex(leaf)
	return p.Tweak.PRF(skSeed, a.Bytes(), nil)
}

func leafNode(p *parameters.Parameters, sk, pkSeed []byte, adrs address.Address, tree, leaf uint32) []byte {
	a := adrs
	a.SetType(address.TypeFORSLeaf)
	a.SetKeyPair(tree)
	a.SetTreeIndex(leaf)
	return p.Tweak.F(pkSeed, a.Bytes(), sk)
}

func treeLeaves(p *parameters.Parameters, skSeed, pkSeed []byte, adrs address.Address, tree uint32) [][]byte {
	leaves := make([][]byte, p.T)
	for j := range leaves {
		sk := leafSecret(p, skSeed, adrs, tree, uint32(j))
		leaves[j] = leafNode(p, sk, pkSeed, adrs, tree, uint32(j))
	}
	return leaves
}

// buildRoot folds a full level of nodes into the next one until a single
// root remains. An odd tail is parented as thash(last, last), which keeps
// the fold in VerifyToRoot consistent; with t a power of two it never
// triggers.
func buildRoot(p *parameters.Parameters, leaves [][]byte, pkSeed []byte, adrs address.Address, tree uint32) []byte {
	nodes := append([][]byte(nil), leaves...)
	a := adrs
	a.SetType(address.TypeFORSNode)
	a.SetKeyPair(tree)
	for height := 1; len(nodes) > 1; height++ {
		next := make([][]byte, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			right := nodes[i]
			if i+1 < len(nodes) {
				right = nodes[i+1]
			}
			a.SetTreeHeight(uint32(height))
			a.SetTreeIndex(uint32(i / 2))
			next = append(next, p.Tweak.THash(pkSeed, a.Bytes(), nodes[i], right))
		}
		nodes = next
	}
	return nodes[0]
}

// authPath records, per level, the sibling of the node on the path from
// leafIdx to the root, ordered leaf to root.
func authPath(p *parameters.Parameters, leafIdx uint32, leaves [][]byte, pkSeed []byte, adrs address.Address, tree uint32) [][]byte {
	path := make([][]byte, 0, p.LogT)
	nodes := append([][]byte(nil), leaves...)
	a := adrs
	a.SetType(address.TypeFORSNode)
	a.SetKeyPair(tree)
	idx := leafIdx
	for height := 1; len(nodes) > 1; height++ {
		sibling := idx ^ 1
		if int(sibling) >= len(nodes) {
			sibling = idx
		}
		path = append(path, nodes[sibling])

		next := make([][]byte, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			right := nodes[i]
			if i+1 < len(nodes) {
				right = nodes[i+1]
			}
			a.SetTreeHeight(uint32(height))
			a.SetTreeIndex(uint32(i / 2))
			next = append(next, p.Tweak.THash(pkSeed, a.Bytes(), nodes[i], right))
		}
		nodes = next
		idx >>= 1
	}
	return path
}
