/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package lattice

import (
	"rstrategies.dev/core/apis"
	"rstrategies.dev/core/erasure"
)

// Codec wraps and unwraps a boxed value into its unboxed representation
// R. Unwrap's second return reports whether v's concrete variant is one
// this codec understands; SingleType and Tagging both use it as their
// membership test.
type Codec[R any] struct {
	Wrap   func(R) apis.Value
	Unwrap func(apis.Value) (R, bool)
}

// SingleType represents every value whose concrete variant unwraps via
// codec, stored unboxed as []R. Indexing is safe.
type SingleType[R any] struct {
	Base
	codec        Codec[R]
	defaultValue R
}

var _ apis.Strategy = (*SingleType[int])(nil)

// NewSingleType builds a SingleType strategy over representation R.
func NewSingleType[R any](class apis.StrategyClass, promoter apis.Promoter, codec Codec[R], defaultValue R) *SingleType[R] {
	s := &SingleType[R]{codec: codec, defaultValue: defaultValue}
	s.Base = NewBase(s, class, promoter)
	return s
}

// CheckCanHandle reports whether v unwraps under this strategy's codec.
func (s *SingleType[R]) CheckCanHandle(v apis.Value) bool {
	_, ok := s.codec.Unwrap(v)
	return ok
}

// InitializeStorage installs n copies of the default representation.
func (s *SingleType[R]) InitializeStorage(c apis.Collection, n int) {
	arr := make([]R, n)
	for i := range arr {
		arr[i] = s.defaultValue
	}
	c.SetStorage(erasure.Erase(arr))
}

func (s *SingleType[R]) storage(c apis.Collection) []R {
	return erasure.Unerase[[]R](c.GetStorage())
}

// Size returns the slice length.
func (s *SingleType[R]) Size(c apis.Collection) int { return len(s.storage(c)) }

// Fetch rewraps the representation at i.
func (s *SingleType[R]) Fetch(c apis.Collection, i int) apis.Value {
	arr := s.storage(c)
	MustIndex(i, len(arr))
	return s.codec.Wrap(arr[i])
}

// Store unwraps v and writes it at i, promoting if v does not unwrap.
func (s *SingleType[R]) Store(c apis.Collection, i int, v apis.Value) {
	arr := s.storage(c)
	MustIndex(i, len(arr))
	r, ok := s.codec.Unwrap(v)
	if !ok {
		ns := s.promote(c, v)
		ns.Store(c, i, v)
		return
	}
	arr[i] = r
}

// Insert unwraps and splices the leading run of vs that this strategy
// can represent; on the first value that does not unwrap, it promotes
// and hands the remainder to the promoted strategy at the correct
// offset, leaving the already-spliced prefix untouched.
func (s *SingleType[R]) Insert(c apis.Collection, i int, vs []apis.Value) {
	arr := s.storage(c)
	MustInsertIndex(i, len(arr))

	reprs := make([]R, 0, len(vs))
	for j, v := range vs {
		r, ok := s.codec.Unwrap(v)
		if !ok {
			s.splice(c, arr, i, reprs)
			ns := s.promote(c, v)
			ns.Insert(c, i+len(reprs), vs[j:])
			return
		}
		reprs = append(reprs, r)
	}
	s.splice(c, arr, i, reprs)
}

func (s *SingleType[R]) splice(c apis.Collection, arr []R, i int, reprs []R) {
	out := make([]R, 0, len(arr)+len(reprs))
	out = append(out, arr[:i]...)
	out = append(out, reprs...)
	out = append(out, arr[i:]...)
	c.SetStorage(erasure.Erase(out))
}

// Delete removes [start, end), shifting the suffix left.
func (s *SingleType[R]) Delete(c apis.Collection, start, end int) {
	arr := s.storage(c)
	MustRange(start, end, len(arr))
	out := make([]R, 0, len(arr)-(end-start))
	out = append(out, arr[:start]...)
	out = append(out, arr[end:]...)
	c.SetStorage(erasure.Erase(out))
}
