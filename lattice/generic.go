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

// Generic represents every value, boxed, in a plain slice. It is the
// terminal node of the lattice: CheckCanHandle always returns true, and
// it has no generalizations. Indexing is unsafe: out-of-range access is
// left to the underlying slice to fault on, and negative indices wrap
// from the end.
type Generic struct {
	Base
	defaultValue apis.Value
}

var _ apis.Strategy = (*Generic)(nil)

// NewGeneric builds a Generic strategy whose InitializeStorage fills with
// defaultValue.
func NewGeneric(class apis.StrategyClass, promoter apis.Promoter, defaultValue apis.Value) *Generic {
	g := &Generic{defaultValue: defaultValue}
	g.Base = NewBase(g, class, promoter)
	return g
}

// CheckCanHandle always returns true.
func (g *Generic) CheckCanHandle(apis.Value) bool { return true }

// InitializeStorage installs n copies of the default value.
func (g *Generic) InitializeStorage(c apis.Collection, n int) {
	arr := make([]apis.Value, n)
	for i := range arr {
		arr[i] = g.defaultValue
	}
	c.SetStorage(erasure.Erase(arr))
}

func (g *Generic) storage(c apis.Collection) []apis.Value {
	return erasure.Unerase[[]apis.Value](c.GetStorage())
}

// Size returns the slice length.
func (g *Generic) Size(c apis.Collection) int { return len(g.storage(c)) }

// Fetch returns the element at i (unsafe: negative i wraps).
func (g *Generic) Fetch(c apis.Collection, i int) apis.Value {
	arr := g.storage(c)
	return arr[NormalizeUnsafe(i, len(arr))]
}

// Store writes v at i (unsafe: negative i wraps); always succeeds since
// Generic can handle any value.
func (g *Generic) Store(c apis.Collection, i int, v apis.Value) {
	arr := g.storage(c)
	arr[NormalizeUnsafe(i, len(arr))] = v
}

// Insert splices vs into the slice at i, shifting the suffix right.
func (g *Generic) Insert(c apis.Collection, i int, vs []apis.Value) {
	arr := g.storage(c)
	i = NormalizeUnsafe(i, len(arr))
	out := make([]apis.Value, 0, len(arr)+len(vs))
	out = append(out, arr[:i]...)
	out = append(out, vs...)
	out = append(out, arr[i:]...)
	c.SetStorage(erasure.Erase(out))
}

// Delete removes [start, end) from the slice, shifting the suffix left.
func (g *Generic) Delete(c apis.Collection, start, end int) {
	arr := g.storage(c)
	start = NormalizeUnsafe(start, len(arr))
	end = NormalizeUnsafe(end, len(arr))
	out := make([]apis.Value, 0, len(arr)-(end-start))
	out = append(out, arr[:start]...)
	out = append(out, arr[end:]...)
	c.SetStorage(erasure.Erase(out))
}

// ConvertStorageFrom overrides the generic fallback with the *→Generic
// shortcut: every source strategy already knows how to fetch_all its own
// elements, so Generic just reboxes that slice directly instead of
// re-validating each element through Store.
func (g *Generic) ConvertStorageFrom(c apis.Collection, previous apis.Strategy) {
	vs := previous.FetchAll(c)
	out := make([]apis.Value, len(vs))
	copy(out, vs)
	c.SetStorage(erasure.Erase(out))
}
