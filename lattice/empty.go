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

import "rstrategies.dev/core/apis"

// Empty represents no elements. Its representable set is the empty set:
// any store or insert promotes immediately. size is always 0; delete only
// tolerates an already-empty range.
type Empty struct {
	Base
}

var (
	_ apis.Strategy = (*Empty)(nil)
)

// NewEmpty builds an Empty strategy. Empty is normally a singleton class;
// class and promoter are supplied by the factory at construction time.
func NewEmpty(class apis.StrategyClass, promoter apis.Promoter) *Empty {
	e := &Empty{}
	e.Base = NewBase(e, class, promoter)
	return e
}

// CheckCanHandle always returns false: Empty's representable set is empty.
func (e *Empty) CheckCanHandle(apis.Value) bool { return false }

// InitializeStorage installs the (trivial) empty payload.
func (e *Empty) InitializeStorage(c apis.Collection, n int) {
	c.SetStorage(nil)
}

// Size is always 0.
func (e *Empty) Size(apis.Collection) int { return 0 }

// Fetch always panics: there is no valid index into an empty collection.
func (e *Empty) Fetch(c apis.Collection, i int) apis.Value {
	MustIndex(i, 0)
	panic("unreachable")
}

// Store always promotes, since Empty cannot hold any value.
func (e *Empty) Store(c apis.Collection, i int, v apis.Value) {
	ns := e.promote(c, v)
	ns.Store(c, i, v)
}

// Insert promotes using the first element of vs (if any) and hands the
// whole vector to the promoted strategy in one shot, rather than
// splitting the work element-by-element the way a non-empty strategy's
// Insert would.
func (e *Empty) Insert(c apis.Collection, i int, vs []apis.Value) {
	MustInsertIndex(i, 0)
	if len(vs) == 0 {
		return
	}
	ns := e.promote(c, vs[0])
	ns.Insert(c, i, vs)
}

// Delete tolerates only an already-empty range.
func (e *Empty) Delete(c apis.Collection, start, end int) {
	MustRange(start, end, 0)
}

// ConvertStorageFrom installs empty storage directly; previous must
// itself report size 0 for this to be meaningful (the factory only ever
// converts *into* Empty when a collection is being reset to empty, which
// this framework does not do as part of promotion — Empty only ever
// appears as a conversion *source*).
func (e *Empty) ConvertStorageFrom(c apis.Collection, previous apis.Strategy) {
	c.SetStorage(nil)
}
