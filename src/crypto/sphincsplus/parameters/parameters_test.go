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

package parameters

import (
	"errors"
	"testing"
)

func TestDefaultDerivedSizes(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}
	if p.N != 16 || p.K != 10 || p.W != 16 || p.T != 64 {
		t.Fatalf("unexpected tunables: n=%d k=%d w=%d t=%d", p.N, p.K, p.W, p.T)
	}
	if p.LogW != 4 {
		t.Errorf("LogW = %d, want 4", p.LogW)
	}
	if p.LogT != 6 {
		t.Errorf("LogT = %d, want 6", p.LogT)
	}
	if p.Len1 != 32 || p.Len2 != 3 || p.Len != 35 {
		t.Errorf("Len1/Len2/Len = %d/%d/%d, want 32/3/35", p.Len1, p.Len2, p.Len)
	}
	// 10 trees of height 6 need 60 bits; the digest must round up.
	if p.MessageDigestLen != 8 {
		t.Errorf("MessageDigestLen = %d, want 8", p.MessageDigestLen)
	}
	if p.MessageDigestLen*8 < p.K*p.LogT {
		t.Errorf("digest supplies %d bits, index extraction needs %d", p.MessageDigestLen*8, p.K*p.LogT)
	}
	if got := p.PublicKeyBytes(); got != 32 {
		t.Errorf("PublicKeyBytes = %d, want 32", got)
	}
	if got := p.PrivateKeyBytes(); got != 64 {
		t.Errorf("PrivateKeyBytes = %d, want 64", got)
	}
	if got := p.ForsSigBytes(); got != 10*7*16 {
		t.Errorf("ForsSigBytes = %d, want %d", got, 10*7*16)
	}
	if got := p.WotsSigBytes(); got != 35*16 {
		t.Errorf("WotsSigBytes = %d, want %d", got, 35*16)
	}
	if got := p.SignatureBytes(); got != 16+10*7*16+35*16 {
		t.Errorf("SignatureBytes = %d, want %d", got, 16+10*7*16+35*16)
	}
}

func TestMinimalWinternitzBase(t *testing.T) {
	p, err := MakeSphincsPlus(16, 64, 8, 10, 2, 64, HashShake256, true)
	if err != nil {
		t.Fatalf("MakeSphincsPlus(w=2): %v", err)
	}
	if p.LogW != 1 {
		t.Errorf("LogW = %d, want 1", p.LogW)
	}
	if p.Len1 != 128 {
		t.Errorf("Len1 = %d, want 128", p.Len1)
	}
	if p.Len2 != 8 {
		t.Errorf("Len2 = %d, want 8", p.Len2)
	}
}

func TestSingleLeafTrees(t *testing.T) {
	p, err := MakeSphincsPlus(16, 64, 8, 10, 16, 1, HashShake256, true)
	if err != nil {
		t.Fatalf("MakeSphincsPlus(t=1): %v", err)
	}
	if p.LogT != 0 {
		t.Errorf("LogT = %d, want 0", p.LogT)
	}
	if p.MessageDigestLen != 0 {
		t.Errorf("MessageDigestLen = %d, want 0", p.MessageDigestLen)
	}
	// One revealed secret per tree, no authentication nodes.
	if got := p.ForsSigBytes(); got != 10*16 {
		t.Errorf("ForsSigBytes = %d, want %d", got, 10*16)
	}
}

func TestRejectsInvalidCombinations(t *testing.T) {
	cases := []struct {
		name             string
		n, h, d, k, w, t int
		hash             string
	}{
		{"t not power of two", 16, 64, 8, 10, 16, 3, HashShake256},
		{"w not power of two", 16, 64, 8, 10, 3, 64, HashShake256},
		{"w too small", 16, 64, 8, 10, 1, 64, HashShake256},
		{"zero n", 0, 64, 8, 10, 16, 64, HashShake256},
		{"zero k", 16, 64, 8, 0, 16, 64, HashShake256},
		{"zero d", 16, 64, 0, 10, 16, 64, HashShake256},
		{"negative h", 16, -1, 8, 10, 16, 64, HashShake256},
		{"unknown hash", 16, 64, 8, 10, 16, 64, "BLAKE3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MakeSphincsPlus(tc.n, tc.h, tc.d, tc.k, tc.w, tc.t, tc.hash, true)
			if !errors.Is(err, ErrInvalidParameters) {
				t.Fatalf("got %v, want ErrInvalidParameters", err)
			}
		})
	}
}

func TestSha256Presets(t *testing.T) {
	for _, mk := range []func() (*Parameters, error){
		MakeSphincsPlusSHA256128Robust,
		MakeSphincsPlusSHA256128Simple,
		MakeSphincsPlusSHAKE256128Robust,
		MakeSphincsPlusSHAKE256128Simple,
		MakeSphincsPlusSHAKE256256Robust,
	} {
		p, err := mk()
		if err != nil {
			t.Fatalf("preset: %v", err)
		}
		if p.Tweak == nil {
			t.Fatal("preset left Tweak unset")
		}
	}
}
