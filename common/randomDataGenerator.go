// Copyright © Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package common

import (
	"errors"
	"math/rand"
	"sync"
)

// RandomDataGenerator produces a fixed-size stream of pseudo-random bytes.
// The validator uses it to fill blobs and files it creates as test sources.
type RandomDataGenerator struct {
	size   int64
	rand   *rand.Rand
	randMu *sync.Mutex
}

func NewRandomDataGenerator(sizeInBytes int64) *RandomDataGenerator {
	return &RandomDataGenerator{sizeInBytes,
		rand.New(rand.NewSource(rand.Int63())),
		&sync.Mutex{}}
}

func (r *RandomDataGenerator) Size() int64 {
	return r.size
}

func (r *RandomDataGenerator) ReadAt(p []byte, off int64) (n int, err error) {
	if off+int64(len(p)) > r.size {
		return 0, errors.New("would read past end")
	}

	r.randMu.Lock()
	defer r.randMu.Unlock()

	return r.rand.Read(p)
}

// Bytes materializes the whole stream.
func (r *RandomDataGenerator) Bytes() []byte {
	buf := make([]byte, r.size)
	if r.size > 0 {
		_, _ = r.ReadAt(buf, 0)
	}
	return buf
}
