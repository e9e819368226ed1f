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

// Package address defines the fixed-width hash address used to diversify
// every hash invocation of the signature scheme. Two invocations with equal
// addresses and equal seeds are the identical logical hash site, so every
// distinct purpose gets its own type word.
package address

import "encoding/binary"

// Address purpose words. Each logically distinct hash site carries a
// distinct type so that domain separation holds structurally rather than
// by byte-string convention.
const (
	TypeWOTSKey    uint32 = 0 // PRF derivation of a WOTS chain secret
	TypeWOTSChain  uint32 = 1 // F applications along a WOTS chain
	TypeFORSSecret uint32 = 2 // PRF derivation of a FORS leaf secret
	TypeFORSLeaf   uint32 = 3 // F hash of a FORS leaf secret into a leaf node
	TypeFORSNode   uint32 = 4 // THASH of two sibling nodes in a FORS tree
	TypeRandomizer uint32 = 5 // PRF derivation of the per-message randomizer
)

// Size is the serialized width of an Address in bytes.
const Size = 32

// Address is an 8-word hash address: layer, tree (two words), type, and
// three purpose-specific words. The zero value is a valid base address.
type Address [8]uint32

// SetLayer sets the hypertree layer (reserved, always 0 in this scheme).
func (a *Address) SetLayer(layer uint32) {
	a[0] = layer
}

// SetTree sets the 64-bit tree position within a layer (reserved).
func (a *Address) SetTree(tree uint64) {
	a[1] = uint32(tree >> 32)
	a[2] = uint32(tree)
}

// SetType sets the purpose word.
func (a *Address) SetType(typ uint32) {
	a[3] = typ
}

// SetKeyPair identifies the key pair or FORS tree the hash belongs to.
func (a *Address) SetKeyPair(keyPair uint32) {
	a[4] = keyPair
}

// SetChain identifies the WOTS chain index.
func (a *Address) SetChain(chain uint32) {
	a[5] = chain
}

// SetHash identifies the position along a WOTS chain.
func (a *Address) SetHash(hash uint32) {
	a[6] = hash
}

// SetTreeHeight identifies the level of a node within a FORS tree.
// Shares a word with SetChain; the type word keeps the uses apart.
func (a *Address) SetTreeHeight(treeHeight uint32) {
	a[5] = treeHeight
}

// SetTreeIndex identifies the node index within a FORS tree level.
func (a *Address) SetTreeIndex(treeIndex uint32) {
	a[6] = treeIndex
}

// Bytes serializes the address to its constant 32-byte big-endian form.
func (a Address) Bytes() []byte {
	buf := make([]byte, Size)
	for i := 0; i < 8; i++ {
		binary.BigEndian.PutUint32(buf[i*4:(i+1)*4], a[i])
	}
	return buf
}
