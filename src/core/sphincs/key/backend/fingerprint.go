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

package key

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"github.com/sphinx-core/spx/src/crypto/sphincsplus/sphincs"
	"golang.org/x/crypto/ripemd160"
)

// Prefix byte for fingerprint generation.
const fingerprintPrefix = 0x78 // ASCII 'x'

// PublicKeyFingerprint derives a short human-readable identifier for a
// public key: the serialized key is hashed twice with the scheme's own
// hash, folded through RIPEMD-160, prefixed and Base58 encoded. Purely
// an identifier; nothing verifies against it.
func (km *KeyManager) PublicKeyFingerprint(pk *sphincs.SPHINCS_PK) (string, error) {
	if km.Params == nil || km.Params.Params == nil {
		return "", fmt.Errorf("missing parameters in KeyManager")
	}
	pkBytes, err := pk.SerializePK()
	if err != nil {
		return "", err
	}
	tweak := km.Params.Params.Tweak
	first := tweak.Hash(pkBytes, 32)
	second := tweak.Hash(first, 32)

	r := ripemd160.New()
	r.Write(second)
	body := r.Sum(nil)

	return base58.Encode(append([]byte{fingerprintPrefix}, body...)), nil
}

// DecodeFingerprint decodes a Base58 fingerprint and checks the prefix
// byte, returning the RIPEMD-160 body.
func DecodeFingerprint(encoded string) ([]byte, error) {
	raw := base58.Decode(encoded)
	if len(raw) == 0 {
		return nil, fmt.Errorf("invalid fingerprint: %s", encoded)
	}
	if raw[0] != fingerprintPrefix {
		return nil, fmt.Errorf("invalid fingerprint prefix: 0x%02x", raw[0])
	}
	return raw[1:], nil
}
