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

package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sphinx-core/spx/src/crypto/sphincsplus/parameters"
)

const keysFileName = "sphinxKeys.dat"

// KeyConfig handles the storage and retrieval of serialized key pairs in
// the keystore directory. Expected lengths come from the parameter set,
// so one keystore only ever holds keys of one configuration.
type KeyConfig struct {
	keystoreDir string
	params      *parameters.Parameters
}

// NewKeyConfig initializes a keystore rooted at keystoreDir, creating the
// directory if needed.
func NewKeyConfig(keystoreDir string, p *parameters.Parameters) (*KeyConfig, error) {
	if p == nil {
		return nil, errors.New("missing SPHINCS+ parameters")
	}
	if err := os.MkdirAll(keystoreDir, 0o700); err != nil {
		return nil, errors.New("failed to create keystore directory: " + err.Error())
	}
	return &KeyConfig{keystoreDir: keystoreDir, params: p}, nil
}

// SaveKeyPair saves a serialized SPHINCS secret (sk) and public (pk) key
// pair into a single file in the keystore directory.
func (c *KeyConfig) SaveKeyPair(sk, pk []byte) error {
	if len(sk) != c.params.PrivateKeyBytes() || len(pk) != c.params.PublicKeyBytes() {
		return errors.New("key lengths do not match the parameter set")
	}

	combined := make([]byte, 0, len(sk)+len(pk))
	combined = append(combined, sk...)
	combined = append(combined, pk...)

	keysPath := filepath.Join(c.keystoreDir, keysFileName)
	if err := os.WriteFile(keysPath, combined, 0o600); err != nil {
		return errors.New("failed to save keys: " + err.Error())
	}
	return nil
}

// LoadKeyPair retrieves the serialized secret and public key pair from
// the keystore file and splits them at the lengths the parameter set
// derives.
func (c *KeyConfig) LoadKeyPair() ([]byte, []byte, error) {
	keysPath := filepath.Join(c.keystoreDir, keysFileName)
	combined, err := os.ReadFile(keysPath)
	if err != nil {
		return nil, nil, errors.New("failed to load keys: " + err.Error())
	}

	skLen := c.params.PrivateKeyBytes()
	pkLen := c.params.PublicKeyBytes()
	if len(combined) != skLen+pkLen {
		return nil, nil, errors.New("invalid combined keys length")
	}
	return combined[:skLen], combined[skLen:], nil
}
