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
	"weak"

	"rstrategies.dev/core/apis"
	"rstrategies.dev/core/erasure"
)

// box is the heap cell a weak.Pointer targets. weak.Pointer needs a
// concrete pointee type, and apis.Value is an interface, so Store boxes
// each value once and keeps only a weak handle to the box.
type box struct {
	v apis.Value
}

// WeakGeneric represents every value, like Generic, but storage holds
// only non-owning weak handles. Fetch returns this strategy's default
// value instead of the originally stored one if the referent has already
// been reclaimed; per the framework's contract, a value stored here must
// be kept reachable by the host through some other strong reference, or
// its disappearance from the collection is undefined-by-contract, not an
// error.
type WeakGeneric struct {
	Base
	defaultValue apis.Value
}

var _ apis.Strategy = (*WeakGeneric)(nil)

// NewWeakGeneric builds a WeakGeneric strategy whose Fetch falls back to
// defaultValue when a referent has been collected.
func NewWeakGeneric(class apis.StrategyClass, promoter apis.Promoter, defaultValue apis.Value) *WeakGeneric {
	w := &WeakGeneric{defaultValue: defaultValue}
	w.Base = NewBase(w, class, promoter)
	return w
}

// CheckCanHandle always returns true.
func (w *WeakGeneric) CheckCanHandle(apis.Value) bool { return true }

// InitializeStorage installs n zero-valued weak pointers (each already
// reporting its referent gone, so Fetch returns defaultValue for them
// until stored into).
func (w *WeakGeneric) InitializeStorage(c apis.Collection, n int) {
	c.SetStorage(erasure.Erase(make([]weak.Pointer[box], n)))
}

func (w *WeakGeneric) storage(c apis.Collection) []weak.Pointer[box] {
	return erasure.Unerase[[]weak.Pointer[box]](c.GetStorage())
}

// Size returns the slice length.
func (w *WeakGeneric) Size(c apis.Collection) int { return len(w.storage(c)) }

// Fetch dereferences the weak pointer at i, returning defaultValue if the
// referent is gone.
func (w *WeakGeneric) Fetch(c apis.Collection, i int) apis.Value {
	arr := w.storage(c)
	p := arr[NormalizeUnsafe(i, len(arr))]
	if b := p.Value(); b != nil {
		return b.v
	}
	return w.defaultValue
}

// Store wraps v in a fresh box and installs a weak pointer to it at i.
func (w *WeakGeneric) Store(c apis.Collection, i int, v apis.Value) {
	arr := w.storage(c)
	arr[NormalizeUnsafe(i, len(arr))] = weak.Make(&box{v: v})
}

// Insert splices vs into the slice at i, each wrapped in its own box.
func (w *WeakGeneric) Insert(c apis.Collection, i int, vs []apis.Value) {
	arr := w.storage(c)
	i = NormalizeUnsafe(i, len(arr))
	fresh := make([]weak.Pointer[box], len(vs))
	for j, v := range vs {
		fresh[j] = weak.Make(&box{v: v})
	}
	out := make([]weak.Pointer[box], 0, len(arr)+len(vs))
	out = append(out, arr[:i]...)
	out = append(out, fresh...)
	out = append(out, arr[i:]...)
	c.SetStorage(erasure.Erase(out))
}

// Delete removes [start, end) from the slice, shifting the suffix left.
func (w *WeakGeneric) Delete(c apis.Collection, start, end int) {
	arr := w.storage(c)
	start = NormalizeUnsafe(start, len(arr))
	end = NormalizeUnsafe(end, len(arr))
	out := make([]weak.Pointer[box], 0, len(arr)-(end-start))
	out = append(out, arr[:start]...)
	out = append(out, arr[end:]...)
	c.SetStorage(erasure.Erase(out))
}
