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

package address

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestSerializedWidthIsConstant(t *testing.T) {
	var a Address
	if got := len(a.Bytes()); got != Size {
		t.Fatalf("zero address serializes to %d bytes, want %d", got, Size)
	}
	a.SetLayer(7)
	a.SetTree(0xDEADBEEFCAFE)
	a.SetType(TypeFORSNode)
	a.SetKeyPair(9)
	a.SetTreeHeight(3)
	a.SetTreeIndex(12345)
	if got := len(a.Bytes()); got != Size {
		t.Fatalf("populated address serializes to %d bytes, want %d", got, Size)
	}
}

func TestFieldPlacement(t *testing.T) {
	var a Address
	a.SetLayer(1)
	a.SetTree(0x0102030405060708)
	a.SetType(TypeWOTSChain)
	a.SetKeyPair(4)
	a.SetChain(5)
	a.SetHash(6)
	buf := a.Bytes()

	words := make([]uint32, 8)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(buf[i*4 : (i+1)*4])
	}
	if words[0] != 1 {
		t.Errorf("layer word = %d, want 1", words[0])
	}
	if words[1] != 0x01020304 || words[2] != 0x05060708 {
		t.Errorf("tree words = %08x %08x", words[1], words[2])
	}
	if words[3] != TypeWOTSChain {
		t.Errorf("type word = %d, want %d", words[3], TypeWOTSChain)
	}
	if words[4] != 4 || words[5] != 5 || words[6] != 6 {
		t.Errorf("purpose words = %d %d %d, want 4 5 6", words[4], words[5], words[6])
	}
}

func TestTreeHeightAndIndexShareChainWords(t *testing.T) {
	var chain, node Address
	chain.SetChain(3)
	chain.SetHash(8)
	node.SetTreeHeight(3)
	node.SetTreeIndex(8)
	// Same words on purpose; the type word is what keeps the two uses
	// in different domains.
	if !bytes.Equal(chain.Bytes(), node.Bytes()) {
		t.Fatal("expected identical serialization before the type word is set")
	}
	chain.SetType(TypeWOTSChain)
	node.SetType(TypeFORSNode)
	if bytes.Equal(chain.Bytes(), node.Bytes()) {
		t.Fatal("type word did not separate the two address domains")
	}
}

func TestDistinctTypesNeverCollide(t *testing.T) {
	types := []uint32{
		TypeWOTSKey, TypeWOTSChain, TypeFORSSecret,
		TypeFORSLeaf, TypeFORSNode, TypeRandomizer,
	}
	seen := make(map[string]uint32)
	for _, typ := range types {
		var a Address
		a.SetType(typ)
		key := string(a.Bytes())
		if prev, dup := seen[key]; dup {
			t.Fatalf("types %d and %d serialize identically", prev, typ)
		}
		seen[key] = typ
	}
}

func TestAddressIsAValue(t *testing.T) {
	var a Address
	a.SetType(TypeFORSLeaf)
	b := a
	b.SetTreeIndex(42)
	if bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("mutating a copy must not alias the original")
	}
	if a[6] != 0 {
		t.Fatal("original address mutated through its copy")
	}
}
