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

package sphincs

import (
	"errors"
	"fmt"

	"github.com/sphinx-core/spx/src/crypto/sphincsplus/parameters"
)

var (
	// ErrBadKeyLength reports key bytes that do not match the sizes the
	// parameter set derives.
	ErrBadKeyLength = errors.New("sphincs: key length does not match parameter set")
	// ErrBadSignatureLength reports signature bytes that do not match
	// the derived total length.
	ErrBadSignatureLength = errors.New("sphincs: signature length does not match parameter set")
)

// SerializeSK serializes the private key to
// sk_seed || sk_prf || pk_seed || root, 4n bytes.
func (sk *SPHINCS_SK) SerializeSK() ([]byte, error) {
	if sk == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrBadKeyLength)
	}
	out := make([]byte, 0, len(sk.SKseed)+len(sk.SKprf)+len(sk.PKseed)+len(sk.PKroot))
	out = append(out, sk.SKseed...)
	out = append(out, sk.SKprf...)
	out = append(out, sk.PKseed...)
	out = append(out, sk.PKroot...)
	return out, nil
}

// SerializePK serializes the public key to pk_seed || root, 2n bytes.
func (pk *SPHINCS_PK) SerializePK() ([]byte, error) {
	if pk == nil {
		return nil, fmt.Errorf("%w: nil public key", ErrBadKeyLength)
	}
	out := make([]byte, 0, len(pk.PKseed)+len(pk.PKroot))
	out = append(out, pk.PKseed...)
	out = append(out, pk.PKroot...)
	return out, nil
}

// SerializeSignature serializes the signature to r || FORS || WOTS.
func (s *SPHINCS_SIG) SerializeSignature() ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil signature", ErrBadSignatureLength)
	}
	out := make([]byte, 0, len(s.R)+len(s.SIG_FORS)+len(s.SIG_WOTS))
	out = append(out, s.R...)
	out = append(out, s.SIG_FORS...)
	out = append(out, s.SIG_WOTS...)
	return out, nil
}

// DeserializeSK parses a 4n-byte private key. Any other length is a
// format error.
func DeserializeSK(p *parameters.Parameters, b []byte) (*SPHINCS_SK, error) {
	if len(b) != p.PrivateKeyBytes() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadKeyLength, len(b), p.PrivateKeyBytes())
	}
	n := p.N
	return &SPHINCS_SK{
		SKseed: append([]byte(nil), b[:n]...),
		SKprf:  append([]byte(nil), b[n:2*n]...),
		PKseed: append([]byte(nil), b[2*n:3*n]...),
		PKroot: append([]byte(nil), b[3*n:]...),
	}, nil
}

// DeserializePK parses a 2n-byte public key.
func DeserializePK(p *parameters.Parameters, b []byte) (*SPHINCS_PK, error) {
	if len(b) != p.PublicKeyBytes() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadKeyLength, len(b), p.PublicKeyBytes())
	}
	n := p.N
	return &SPHINCS_PK{
		PKseed: append([]byte(nil), b[:n]...),
		PKroot: append([]byte(nil), b[n:]...),
	}, nil
}

// DeserializeSignature parses r || FORS || WOTS. The total length must
// match the parameter set exactly.
func DeserializeSignature(p *parameters.Parameters, b []byte) (*SPHINCS_SIG, error) {
	if len(b) != p.SignatureBytes() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadSignatureLength, len(b), p.SignatureBytes())
	}
	n := p.N
	forsEnd := n + p.ForsSigBytes()
	return &SPHINCS_SIG{
		R:        append([]byte(nil), b[:n]...),
		SIG_FORS: append([]byte(nil), b[n:forsEnd]...),
		SIG_WOTS: append([]byte(nil), b[forsEnd:]...),
	}, nil
}
