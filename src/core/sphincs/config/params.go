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

package params

import (
	"github.com/sphinx-core/spx/src/crypto/sphincsplus/parameters"
)

// SPHINCSParameters wraps the SPHINCS+ parameter configuration the key
// and signing managers run on.
type SPHINCSParameters struct {
	Params *parameters.Parameters
}

// NewSPHINCSParameters initializes the default parameter set
// (SHAKE256-robust, n=16, k=10, t=64, w=16).
func NewSPHINCSParameters() (*SPHINCSParameters, error) {
	p, err := parameters.Default()
	if err != nil {
		return nil, err
	}
	return &SPHINCSParameters{Params: p}, nil
}

// NewSPHINCSParametersWith initializes a custom parameter set.
func NewSPHINCSParametersWith(n, h, d, k, w, t int, hashFunc string, robust bool) (*SPHINCSParameters, error) {
	p, err := parameters.MakeSphincsPlus(n, h, d, k, w, t, hashFunc, robust)
	if err != nil {
		return nil, err
	}
	return &SPHINCSParameters{Params: p}, nil
}
