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

// SingleValue represents a collection whose every element is the single
// fixed value k (tested by the matches function given to NewSingleValue,
// which defaults to ==).
// Storage is just an element counter: every index in range fetches k, so
// every operation is O(1) and position never matters.
type SingleValue struct {
	Base
	value   apis.Value
	matches func(apis.Value) bool
}

var _ apis.Strategy = (*SingleValue)(nil)

// NewSingleValue builds a SingleValue strategy for the fixed value k.
// matches may be nil, in which case Go's == is used.
func NewSingleValue(class apis.StrategyClass, promoter apis.Promoter, k apis.Value, matches func(apis.Value) bool) *SingleValue {
	if matches == nil {
		matches = func(v apis.Value) bool { return v == k }
	}
	s := &SingleValue{value: k, matches: matches}
	s.Base = NewBase(s, class, promoter)
	return s
}

// CheckCanHandle reports whether v is (according to matches) the fixed
// value this strategy represents.
func (s *SingleValue) CheckCanHandle(v apis.Value) bool { return s.matches(v) }

// InitializeStorage installs a counter of n.
func (s *SingleValue) InitializeStorage(c apis.Collection, n int) {
	c.SetStorage(erasure.Erase(n))
}

// Size returns the counter.
func (s *SingleValue) Size(c apis.Collection) int {
	return erasure.Unerase[int](c.GetStorage())
}

// Fetch returns the fixed value for any in-range index.
func (s *SingleValue) Fetch(c apis.Collection, i int) apis.Value {
	MustIndex(i, s.Size(c))
	return s.value
}

// Store is a no-op when v matches the fixed value (it is, by definition,
// already stored); otherwise it promotes and retries.
func (s *SingleValue) Store(c apis.Collection, i int, v apis.Value) {
	MustIndex(i, s.Size(c))
	if s.matches(v) {
		return
	}
	ns := s.promote(c, v)
	ns.Store(c, i, v)
}

// Insert grows the counter by one for each leading element of vs that
// matches the fixed value — since every representable element is
// identical, *where* a matching value lands does not affect any fetch,
// so growing the counter is sufficient and position-independent. On the
// first non-matching element, the counter absorbs only the
// already-matched prefix, and the unhandled suffix (vs[handled:]) is
// handed to the promoted strategy at the correct offset i+handled; the
// prefix before it is never re-visited.
func (s *SingleValue) Insert(c apis.Collection, i int, vs []apis.Value) {
	n := s.Size(c)
	MustInsertIndex(i, n)

	handled := 0
	for _, v := range vs {
		if !s.matches(v) {
			break
		}
		handled++
	}
	c.SetStorage(erasure.Erase(n + handled))
	if handled == len(vs) {
		return
	}
	ns := s.promote(c, vs[handled])
	ns.Insert(c, i+handled, vs[handled:])
}

// Delete shrinks the counter by the size of the deleted range.
func (s *SingleValue) Delete(c apis.Collection, start, end int) {
	n := s.Size(c)
	MustRange(start, end, n)
	c.SetStorage(erasure.Erase(n - (end - start)))
}
