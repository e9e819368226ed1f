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

// Package hashtree anchors serialized signatures in a small Merkle tree:
// the signature is split into chunks, each chunk becomes a leaf, and the
// root is the integrity handle callers keep. Leaves can be persisted to
// LevelDB in batches and pruned once enough newer batches exist.
package hashtree

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/minio/highwayhash"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"golang.org/x/crypto/sha3"
)

// ErrNoLeaves reports an attempt to build a tree from nothing.
var ErrNoLeaves = errors.New("hashtree: no leaves to build from")

// leafKeySeed keys the HighwayHash used to derive leaf record keys.
var leafKeySeed = []byte("sphincs-hashtree-leaf-keyseed-01")

const (
	leafKeyPrefix = "sigleaf-"
	seqKey        = "hashtree-seq"
)

// HashTreeNode is one node of the tree. Hash is the 256-bit SHAKE256
// digest of the leaf chunk, or of the two child hashes.
type HashTreeNode struct {
	Hash  uint256.Int
	Left  *HashTreeNode
	Right *HashTreeNode
}

// HashTree holds the leaves of one tree and, after Build, its root.
type HashTree struct {
	Leaves [][]byte
	Root   *HashTreeNode
}

// NewHashTree creates a tree over the given leaves. Build must be called
// before Root is valid.
func NewHashTree(leaves [][]byte) *HashTree {
	return &HashTree{Leaves: leaves}
}

// Build computes the root from the leaves.
func (t *HashTree) Build() error {
	root, err := BuildHashTreeFromLeaves(t.Leaves)
	if err != nil {
		return err
	}
	t.Root = root
	return nil
}

// BuildHashTreeFromLeaves builds the tree bottom-up. An odd node at any
// level is paired with itself.
func BuildHashTreeFromLeaves(leaves [][]byte) (*HashTreeNode, error) {
	if len(leaves) == 0 {
		return nil, ErrNoLeaves
	}
	level := make([]*HashTreeNode, len(leaves))
	for i, leaf := range leaves {
		node := &HashTreeNode{}
		node.Hash.SetBytes(digest(leaf))
		level[i] = node
	}
	for len(level) > 1 {
		next := make([]*HashTreeNode, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			parent := &HashTreeNode{Left: left, Right: right}
			lh := left.Hash.Bytes32()
			rh := right.Hash.Bytes32()
			joined := make([]byte, 0, 64)
			joined = append(joined, lh[:]...)
			joined = append(joined, rh[:]...)
			parent.Hash.SetBytes(digest(joined))
			next = append(next, parent)
		}
		level = next
	}
	return level[0], nil
}

// SaveLeavesBatchToDB writes one batch of leaves under a fresh sequence
// number. Keys are sequence-ordered so pruning can drop the oldest
// batches with a single prefix scan.
func SaveLeavesBatchToDB(db *leveldb.DB, leaves [][]byte) error {
	if db == nil {
		return errors.New("hashtree: nil database")
	}
	seq, err := nextSequence(db)
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	for _, leaf := range leaves {
		batch.Put(leafKey(seq, leaf), leaf)
	}
	var seqBuf [8]byte
	binary.BigEndian.PutUint64(seqBuf[:], seq)
	batch.Put([]byte(seqKey), seqBuf[:])
	if err := db.Write(batch, nil); err != nil {
		return fmt.Errorf("hashtree: writing leaf batch: %w", err)
	}
	return nil
}

// PruneOldLeaves deletes every leaf record older than the newest
// keepBatches batches.
func PruneOldLeaves(db *leveldb.DB, keepBatches int) error {
	if db == nil {
		return errors.New("hashtree: nil database")
	}
	latest, err := currentSequence(db)
	if err != nil {
		return err
	}
	if latest < uint64(keepBatches) {
		return nil
	}
	cutoff := latest - uint64(keepBatches)

	batch := new(leveldb.Batch)
	iter := db.NewIterator(util.BytesPrefix([]byte(leafKeyPrefix)), nil)
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()
		seq, ok := parseLeafSeq(key)
		if !ok {
			continue
		}
		if seq <= cutoff {
			batch.Delete(append([]byte(nil), key...))
		}
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("hashtree: scanning leaf records: %w", err)
	}
	if err := db.Write(batch, nil); err != nil {
		return fmt.Errorf("hashtree: pruning leaf records: %w", err)
	}
	return nil
}

func digest(data []byte) []byte {
	out := make([]byte, 32)
	sha3.ShakeSum256(out, data)
	return out
}

// leafKey is "sigleaf-" + 16 hex digits of batch sequence + "-" +
// 16 hex digits of the keyed HighwayHash of the leaf content.
func leafKey(seq uint64, leaf []byte) []byte {
	sum := highwayhash.Sum64(leaf, leafKeySeed)
	return []byte(fmt.Sprintf("%s%016x-%016x", leafKeyPrefix, seq, sum))
}

func parseLeafSeq(key []byte) (uint64, bool) {
	if len(key) < len(leafKeyPrefix)+16 {
		return 0, false
	}
	seq, err := strconv.ParseUint(string(key[len(leafKeyPrefix):len(leafKeyPrefix)+16]), 16, 64)
	if err != nil {
		return 0, false
	}
	return seq, true
}

func currentSequence(db *leveldb.DB) (uint64, error) {
	raw, err := db.Get([]byte(seqKey), nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("hashtree: reading batch sequence: %w", err)
	}
	if len(raw) != 8 {
		return 0, errors.New("hashtree: corrupt batch sequence record")
	}
	return binary.BigEndian.Uint64(raw), nil
}

func nextSequence(db *leveldb.DB) (uint64, error) {
	cur, err := currentSequence(db)
	if err != nil {
		return 0, err
	}
	return cur + 1, nil
}
