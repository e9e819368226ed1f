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

package sign

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/sphinx-core/spx/src/core/hashtree"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
	key "github.com/sphinx-core/spx/src/core/sphincs/key/backend"
	"github.com/sphinx-core/spx/src/crypto/sphincsplus/sphincs"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap"
)

// Number of chunks a serialized signature is split into before being
// anchored in the hashtree.
const signatureChunks = 4

// Number of leaf batches kept in the database after pruning.
const keptLeafBatches = 5

// SphincsManager signs and verifies messages with the scheme and anchors
// each serialized signature in a chunk Merkle tree whose leaves are
// persisted to LevelDB.
type SphincsManager struct {
	db         *leveldb.DB
	keyManager *key.KeyManager
	parameters *params.SPHINCSParameters
	log        *zap.Logger
}

// NewSphincsManager creates a new SphincsManager. The database may be
// nil, in which case signatures are not persisted; KeyManager and
// parameters must be initialized.
func NewSphincsManager(db *leveldb.DB, keyManager *key.KeyManager, parameters *params.SPHINCSParameters, logger *zap.Logger) *SphincsManager {
	if keyManager == nil || parameters == nil || parameters.Params == nil {
		panic("KeyManager or SPHINCSParameters are not properly initialized")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SphincsManager{
		db:         db,
		keyManager: keyManager,
		parameters: parameters,
		log:        logger,
	}
}

// SignMessage signs a given message using the secret key and returns the
// signature together with the root of the Merkle tree built over the
// serialized signature chunks.
func (sm *SphincsManager) SignMessage(message []byte, sk *sphincs.SPHINCS_SK) (*sphincs.SPHINCS_SIG, *hashtree.HashTreeNode, error) {
	if sm.parameters == nil || sm.parameters.Params == nil {
		return nil, nil, errors.New("SPHINCSParameters are not initialized")
	}

	sig, err := sphincs.Spx_sign(sm.parameters.Params, message, sk)
	if err != nil {
		return nil, nil, err
	}

	sigBytes, err := sig.SerializeSignature()
	if err != nil {
		return nil, nil, err
	}

	// The integrity handle is a Merkle root over fixed chunks of the
	// serialized signature, so verification can check the stored parts
	// without holding the whole signature.
	sigParts := chunkSignature(sigBytes)
	merkleRoot, err := buildHashTreeFromSignature(sigParts)
	if err != nil {
		return nil, nil, err
	}

	if sm.db != nil {
		if err := hashtree.SaveLeavesBatchToDB(sm.db, sigParts); err != nil {
			return nil, nil, err
		}
		if err := hashtree.PruneOldLeaves(sm.db, keptLeafBatches); err != nil {
			return nil, nil, err
		}
	}

	rootHash := merkleRoot.Hash.Bytes32()
	sm.log.Info("message signed",
		zap.String("merkle_root", hex.EncodeToString(rootHash[:])),
	)
	return sig, merkleRoot, nil
}

// VerifySignature verifies a signature against a message and public key,
// then rebuilds the chunk Merkle tree and compares its root with the one
// recorded at signing time.
func (sm *SphincsManager) VerifySignature(message []byte, sig *sphincs.SPHINCS_SIG, pk *sphincs.SPHINCS_PK, merkleRoot *hashtree.HashTreeNode) bool {
	if sm.parameters == nil || sm.parameters.Params == nil {
		return false
	}
	if merkleRoot == nil {
		return false
	}

	if !sphincs.Spx_verify(sm.parameters.Params, message, sig, pk) {
		sm.log.Info("signature rejected")
		return false
	}

	sigBytes, err := sig.SerializeSignature()
	if err != nil {
		return false
	}
	rebuiltRoot, err := buildHashTreeFromSignature(chunkSignature(sigBytes))
	if err != nil {
		return false
	}

	rebuilt := rebuiltRoot.Hash.Bytes32()
	recorded := merkleRoot.Hash.Bytes32()
	if !bytes.Equal(rebuilt[:], recorded[:]) {
		sm.log.Warn("signature valid but merkle root mismatch")
		return false
	}
	return true
}

// chunkSignature divides a serialized signature into signatureChunks
// parts; the last part takes the remainder.
func chunkSignature(sigBytes []byte) [][]byte {
	chunkSize := len(sigBytes) / signatureChunks
	parts := make([][]byte, signatureChunks)
	for i := 0; i < signatureChunks; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == signatureChunks-1 {
			end = len(sigBytes)
		}
		parts[i] = sigBytes[start:end]
	}
	return parts
}

// buildHashTreeFromSignature constructs a Merkle tree from the signature
// parts and returns the root node.
func buildHashTreeFromSignature(sigParts [][]byte) (*hashtree.HashTreeNode, error) {
	tree := hashtree.NewHashTree(sigParts)
	if err := tree.Build(); err != nil {
		return nil, err
	}
	return tree.Root, nil
}
