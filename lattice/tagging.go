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

// Tagging represents {taggedValue} ∪ {v : v unwraps to an R != taggedRepr},
// stored unboxed as []R. It reserves one representation (taggedRepr) in
// the unboxed domain to stand in for the single out-of-type value
// taggedValue, so a mostly-unboxed layout can still accept one
// exceptional element (typically nil) without promoting to Generic.
type Tagging[R comparable] struct {
	Base
	codec         Codec[R]
	taggedValue   apis.Value
	taggedRepr    R
	matchesTagged func(apis.Value) bool
}

var _ apis.Strategy = (*Tagging[int])(nil)

// NewTagging builds a Tagging strategy. matchesTagged identifies the
// single exceptional value (taggedValue) by identity; it may be nil, in
// which case Go's == against taggedValue is used.
func NewTagging[R comparable](class apis.StrategyClass, promoter apis.Promoter, codec Codec[R], taggedValue apis.Value, taggedRepr R, matchesTagged func(apis.Value) bool) *Tagging[R] {
	if matchesTagged == nil {
		matchesTagged = func(v apis.Value) bool { return v == taggedValue }
	}
	t := &Tagging[R]{codec: codec, taggedValue: taggedValue, taggedRepr: taggedRepr, matchesTagged: matchesTagged}
	t.Base = NewBase(t, class, promoter)
	return t
}

// CheckCanHandle reports whether v is the tagged value, or unwraps to a
// representation other than the reserved sentinel.
func (t *Tagging[R]) CheckCanHandle(v apis.Value) bool {
	if t.matchesTagged(v) {
		return true
	}
	r, ok := t.codec.Unwrap(v)
	return ok && r != t.taggedRepr
}

// InitializeStorage installs n copies of the reserved sentinel, i.e. n
// copies of the tagged value.
func (t *Tagging[R]) InitializeStorage(c apis.Collection, n int) {
	arr := make([]R, n)
	for i := range arr {
		arr[i] = t.taggedRepr
	}
	c.SetStorage(erasure.Erase(arr))
}

func (t *Tagging[R]) storage(c apis.Collection) []R {
	return erasure.Unerase[[]R](c.GetStorage())
}

// Size returns the slice length.
func (t *Tagging[R]) Size(c apis.Collection) int { return len(t.storage(c)) }

// Fetch returns the tagged value if the representation at i is the
// sentinel, otherwise rewraps it.
func (t *Tagging[R]) Fetch(c apis.Collection, i int) apis.Value {
	arr := t.storage(c)
	MustIndex(i, len(arr))
	if r := arr[i]; r != t.taggedRepr {
		return t.codec.Wrap(r)
	}
	return t.taggedValue
}

// Store writes the sentinel for the tagged value, the unwrapped
// representation for any other representable value, or promotes.
func (t *Tagging[R]) Store(c apis.Collection, i int, v apis.Value) {
	arr := t.storage(c)
	MustIndex(i, len(arr))
	if t.matchesTagged(v) {
		arr[i] = t.taggedRepr
		return
	}
	r, ok := t.codec.Unwrap(v)
	if !ok || r == t.taggedRepr {
		ns := t.promote(c, v)
		ns.Store(c, i, v)
		return
	}
	arr[i] = r
}

// Insert splices the leading run of vs this strategy can represent,
// promoting and delegating the remainder on the first value that is
// neither the tagged value nor a safely-unwrappable representation.
func (t *Tagging[R]) Insert(c apis.Collection, i int, vs []apis.Value) {
	arr := t.storage(c)
	MustInsertIndex(i, len(arr))

	reprs := make([]R, 0, len(vs))
	for j, v := range vs {
		var r R
		switch {
		case t.matchesTagged(v):
			r = t.taggedRepr
		default:
			var ok bool
			r, ok = t.codec.Unwrap(v)
			if !ok || r == t.taggedRepr {
				t.splice(c, arr, i, reprs)
				ns := t.promote(c, v)
				ns.Insert(c, i+len(reprs), vs[j:])
				return
			}
		}
		reprs = append(reprs, r)
	}
	t.splice(c, arr, i, reprs)
}

func (t *Tagging[R]) splice(c apis.Collection, arr []R, i int, reprs []R) {
	out := make([]R, 0, len(arr)+len(reprs))
	out = append(out, arr[:i]...)
	out = append(out, reprs...)
	out = append(out, arr[i:]...)
	c.SetStorage(erasure.Erase(out))
}

// Delete removes [start, end), shifting the suffix left.
func (t *Tagging[R]) Delete(c apis.Collection, start, end int) {
	arr := t.storage(c)
	MustRange(start, end, len(arr))
	out := make([]R, 0, len(arr)-(end-start))
	out = append(out, arr[:start]...)
	out = append(out, arr[end:]...)
	c.SetStorage(erasure.Erase(out))
}

// ConvertByDefaultFill is a specialized conversion applicable whenever
// target's default storage (what InitializeStorage(c, n) installs)
// already represents the same n elements source held — for example
// SingleValue(k) → Tagging whose taggedValue is k (InitializeStorage
// fills n sentinels, which Fetch resolves back to k), or
// SingleValue(k) → SingleValue(k) (InitializeStorage just rewrites the
// counter). It skips the generic fetch/store loop entirely.
func ConvertByDefaultFill(c apis.Collection, source, target apis.Strategy) {
	target.InitializeStorage(c, source.Size(c))
}
