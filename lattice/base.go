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

// Package lattice provides the family of reusable strategy layouts (Empty,
// SingleValue, Generic, WeakGeneric, SingleType, Tagging) and the shared
// plumbing (Base, indexing policy, StrategyClass) every concrete layout is
// built from.
package lattice

import "rstrategies.dev/core/apis"

// Base is embedded by every concrete strategy in this package. It supplies
// the operations the spec calls "derived" (Slice, FetchAll, StoreAll,
// Append, Pop), the no-op default StrategySwitched hook, and the generic
// fallback storage conversion pair. Concrete types must still implement
// CheckCanHandle, InitializeStorage, Size, Fetch, Store, Insert, Delete.
//
// self holds the concrete strategy (set once at construction via NewBase).
// Go has no way for an embedded struct's methods to recover the identity
// of the outer value that embeds it, so every concrete constructor must
// pass itself in; this stands in for the dynamic "self" rerased/mixin
// pattern the source language gets for free.
type Base struct {
	self     apis.Strategy
	class    apis.StrategyClass
	promoter apis.Promoter
}

// NewBase wires self (the concrete strategy being constructed), its
// class, and the promoter used to resolve generalization targets.
func NewBase(self apis.Strategy, class apis.StrategyClass, promoter apis.Promoter) Base {
	return Base{self: self, class: class, promoter: promoter}
}

// Class returns the StrategyClass this instance was built from.
func (b *Base) Class() apis.StrategyClass { return b.class }

// StrategySwitched is a no-op by default; layouts that need a hook
// (currently none of the ones in this package do) override it.
func (b *Base) StrategySwitched(apis.Collection) {}

// promote asks the promoter for the generalization of self that can
// handle v, installs it on c, and returns it. It is a fatal configuration
// error (via Promoter.Promote) if none of self's generalizations can
// handle v.
func (b *Base) promote(c apis.Collection, v apis.Value) apis.Strategy {
	return b.promoter.Promote(c, b.self, v)
}

// Slice returns a boxed copy of c's elements in [start, end), fetched one
// at a time through self, not c.GetStrategy(). This matters during a
// storage conversion: the factory rewires c onto the new strategy before
// calling the old strategy's ConvertStorageTo/previous.FetchAll, so at
// that point c.GetStrategy() already reports the new strategy while
// self's own storage (still installed on c) is what must be read.
// Outside a conversion, self and c.GetStrategy() always agree.
func (b *Base) Slice(c apis.Collection, start, end int) []apis.Value {
	out := make([]apis.Value, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, b.self.Fetch(c, i))
	}
	return out
}

// FetchAll returns every element of c, boxed, read through self (see
// Slice).
func (b *Base) FetchAll(c apis.Collection) []apis.Value {
	return b.Slice(c, 0, b.self.Size(c))
}

// StoreAll stores vs into c positionally, one element at a time, via the
// strategy currently installed on c. If storing the first elements
// promotes c to a more general strategy, later elements are delegated
// through c.GetStrategy() rather than the (now-stale) original receiver,
// so a store_all spanning multiple promotions never reads storage through
// the wrong strategy's eyes.
func (b *Base) StoreAll(c apis.Collection, vs []apis.Value) {
	for i, v := range vs {
		c.GetStrategy().Store(c, i, v)
	}
}

// Append stores vs at the end of c.
func (b *Base) Append(c apis.Collection, vs []apis.Value) {
	s := c.GetStrategy()
	s.Insert(c, s.Size(c), vs)
}

// Pop removes and returns the element at index i.
func (b *Base) Pop(c apis.Collection, i int) apis.Value {
	s := c.GetStrategy()
	v := s.Fetch(c, i)
	s.Delete(c, i, i+1)
	return v
}

// ConvertStorageTo is the generic fallback half of a storage conversion:
// it simply forwards to target's ConvertStorageFrom. The factory's
// conversion table intercepts specific (source, target) pairs before
// this is ever reached, so this only runs for pairs with no registered
// specialization.
func (b *Base) ConvertStorageTo(c apis.Collection, target apis.Strategy) {
	target.ConvertStorageFrom(c, b.self)
}

// ConvertStorageFrom is the generic fallback half: read every element out
// of previous (whose storage is still installed on c at this point),
// install fresh storage for self, and re-store each element, promoting
// further if self itself cannot hold every value (which should not
// happen, since self was chosen specifically to handle the witness that
// triggered this conversion, but a pathological generalization table
// could still force it).
func (b *Base) ConvertStorageFrom(c apis.Collection, previous apis.Strategy) {
	n := previous.Size(c)
	vs := make([]apis.Value, n)
	for i := 0; i < n; i++ {
		vs[i] = previous.Fetch(c, i)
	}
	b.self.InitializeStorage(c, n)
	for i, v := range vs {
		b.self.Store(c, i, v)
	}
}
