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
	"testing"

	"github.com/google/go-cmp/cmp"
	params "github.com/sphinx-core/spx/src/core/sphincs/config"
)

func newManager(t *testing.T) *KeyManager {
	t.Helper()
	km, err := NewKeyManager()
	if err != nil {
		t.Fatalf("NewKeyManager: %v", err)
	}
	return km
}

func TestGenerateKeyShapes(t *testing.T) {
	km := newManager(t)
	sk, pk, err := km.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	n := km.Params.Params.N
	if len(sk.SKseed) != n || len(sk.SKprf) != n || len(sk.PKseed) != n || len(sk.PKroot) != n {
		t.Fatal("private key fields do not match the parameter set")
	}
	if len(pk.PKseed) != n || len(pk.PKroot) != n {
		t.Fatal("public key fields do not match the parameter set")
	}
}

func TestKeyPairSerializationRoundTrip(t *testing.T) {
	km := newManager(t)
	sk, pk, err := km.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	skBytes, pkBytes, err := km.SerializeKeyPair(sk, pk)
	if err != nil {
		t.Fatalf("SerializeKeyPair: %v", err)
	}
	p := km.Params.Params
	if len(skBytes) != p.PrivateKeyBytes() || len(pkBytes) != p.PublicKeyBytes() {
		t.Fatalf("serialized sizes %d/%d, want %d/%d",
			len(skBytes), len(pkBytes), p.PrivateKeyBytes(), p.PublicKeyBytes())
	}

	sk2, pk2, err := km.DeserializeKeyPair(skBytes, pkBytes)
	if err != nil {
		t.Fatalf("DeserializeKeyPair: %v", err)
	}
	if diff := cmp.Diff(sk, sk2); diff != "" {
		t.Fatalf("private key round trip:\n%s", diff)
	}
	if diff := cmp.Diff(pk, pk2); diff != "" {
		t.Fatalf("public key round trip:\n%s", diff)
	}

	pk3, err := km.DeserializePublicKey(pkBytes)
	if err != nil {
		t.Fatalf("DeserializePublicKey: %v", err)
	}
	if diff := cmp.Diff(pk, pk3); diff != "" {
		t.Fatalf("public-key-only round trip:\n%s", diff)
	}
}

func TestDeserializeRejectsBadLengths(t *testing.T) {
	km := newManager(t)
	sk, pk, err := km.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	skBytes, pkBytes, err := km.SerializeKeyPair(sk, pk)
	if err != nil {
		t.Fatalf("SerializeKeyPair: %v", err)
	}
	if _, _, err := km.DeserializeKeyPair(skBytes[:len(skBytes)-1], pkBytes); err == nil {
		t.Fatal("truncated private key accepted")
	}
	if _, _, err := km.DeserializeKeyPair(skBytes, append(pkBytes, 0)); err == nil {
		t.Fatal("oversized public key accepted")
	}
}

func TestNewKeyManagerWith(t *testing.T) {
	cfg, err := params.NewSPHINCSParametersWith(32, 64, 8, 14, 16, 256, "SHAKE256", true)
	if err != nil {
		t.Fatalf("NewSPHINCSParametersWith: %v", err)
	}
	km, err := NewKeyManagerWith(cfg)
	if err != nil {
		t.Fatalf("NewKeyManagerWith: %v", err)
	}
	if km.GetSPHINCSParameters().Params.N != 32 {
		t.Fatal("manager does not carry the provided parameters")
	}
	if _, err := NewKeyManagerWith(nil); err == nil {
		t.Fatal("nil configuration accepted")
	}
}

func TestPublicKeyFingerprint(t *testing.T) {
	km := newManager(t)
	_, pk, err := km.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	fp, err := km.PublicKeyFingerprint(pk)
	if err != nil {
		t.Fatalf("PublicKeyFingerprint: %v", err)
	}
	if fp == "" {
		t.Fatal("empty fingerprint")
	}

	again, err := km.PublicKeyFingerprint(pk)
	if err != nil {
		t.Fatalf("PublicKeyFingerprint: %v", err)
	}
	if fp != again {
		t.Fatal("fingerprint is not deterministic")
	}

	body, err := DecodeFingerprint(fp)
	if err != nil {
		t.Fatalf("DecodeFingerprint: %v", err)
	}
	if len(body) != 20 {
		t.Fatalf("fingerprint body is %d bytes, want 20", len(body))
	}

	_, otherPK, err := km.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	otherFP, err := km.PublicKeyFingerprint(otherPK)
	if err != nil {
		t.Fatalf("PublicKeyFingerprint: %v", err)
	}
	if fp == otherFP {
		t.Fatal("two keys share a fingerprint")
	}
}

func TestDecodeFingerprintRejectsGarbage(t *testing.T) {
	if _, err := DecodeFingerprint(""); err == nil {
		t.Fatal("empty fingerprint accepted")
	}
	// "1" decodes to a single zero byte, which fails the prefix check.
	if _, err := DecodeFingerprint("1"); err == nil {
		t.Fatal("wrong prefix accepted")
	}
}
