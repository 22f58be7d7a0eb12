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

// Package apis defines the contracts shared by the strategy lattice, the
// factory/registry, and the collection façade. No implementation lives
// here; lattice and factory depend on apis, never the reverse.
package apis

// Value is an element stored in a collection. It is always a boxed,
// host-defined value; strategies decide how (or whether) to unbox it for
// a compact storage representation.
type Value = any

// Storage is a strategy's private representation of a collection's
// elements. Its concrete type is chosen and owned entirely by the
// Strategy currently installed on the Collection; host code must never
// inspect or mutate it directly.
type Storage = any

// Collection is the minimal surface a host type must expose to
// participate in the storage strategy framework. A host embeds or
// implements Collection, then only ever calls the free functions in the
// top-level rstrategies package; it never calls a Strategy directly.
type Collection interface {
	// GetStrategy returns the strategy currently installed on this
	// collection. Never nil once SetInitialStrategy has run.
	GetStrategy() Strategy
	// SetStrategy installs strategy on this collection. Only the factory
	// calls this; host code must not call it directly.
	SetStrategy(strategy Strategy)
	// GetStorage returns the opaque storage cell currently installed.
	GetStorage() Storage
	// SetStorage installs storage on this collection. Only strategies
	// call this, when they initialize, resize or convert storage.
	SetStorage(storage Storage)
	// ClassName returns a host-supplied name for the collection's element
	// container (for example, "Array" or "PointersObject"), used only for
	// diagnostics; it may be empty.
	ClassName() string
}

// Strategy implements one concrete in-memory layout for a collection's
// elements. A Strategy instance is either a singleton (shared by every
// collection currently using that layout) or non-singleton (one instance
// per collection); Class().Singleton() reports which.
//
// Every method takes the Collection it operates on explicitly, since a
// singleton Strategy has no collection-specific state of its own; its
// Storage lives entirely on the Collection.
type Strategy interface {
	// Class returns the StrategyClass this instance was instantiated
	// from.
	Class() StrategyClass

	// CheckCanHandle reports whether v can be represented by this
	// strategy's layout without promotion.
	CheckCanHandle(v Value) bool

	// InitializeStorage installs fresh storage on c holding n copies of
	// this strategy's default value, so Size(c) is n afterwards.
	InitializeStorage(c Collection, n int)

	// Size returns the number of elements currently stored in c.
	Size(c Collection) int

	// Fetch returns the element at index i. i must be in [0, Size(c)).
	Fetch(c Collection, i int) Value
	// Store installs v at index i, promoting c first if v cannot be
	// handled by this strategy. i must be in [0, Size(c)).
	Store(c Collection, i int, v Value)

	// Insert splices vs into c starting at index i, shifting any
	// existing elements at or after i to the right. i must be in
	// [0, Size(c)].
	Insert(c Collection, i int, vs []Value)
	// Delete removes the half-open range [start, end) from c.
	Delete(c Collection, start, end int)

	// Append adds vs to the end of c, promoting if necessary.
	Append(c Collection, vs []Value)
	// Pop removes and returns the element at index i.
	Pop(c Collection, i int) Value

	// Slice returns a copy of the half-open range [start, end) of c's
	// elements, boxed.
	Slice(c Collection, start, end int) []Value
	// FetchAll returns a copy of every element in c, boxed.
	FetchAll(c Collection) []Value
	// StoreAll stores vs[i] at index i for every i in vs, one element at
	// a time. An element this strategy cannot represent promotes c at
	// that point, and the remaining elements are stored through the
	// promoted strategy.
	StoreAll(c Collection, vs []Value)

	// StrategySwitched is called on a strategy immediately after it has
	// been installed on c (whether from SetInitialStrategy or from a
	// promotion). Most strategies no-op here.
	StrategySwitched(c Collection)

	// ConvertStorageTo reads every element out of c's current storage
	// (under this, the source strategy) and installs it, reboxed, into
	// target's representation on c. The default implementation forwards
	// to target.ConvertStorageFrom(c, this); a specialized pair may
	// override this to avoid the generic fetch/store loop.
	ConvertStorageTo(c Collection, target Strategy)
	// ConvertStorageFrom is the receiving half of a storage conversion:
	// previous is the strategy c was using before this one was already
	// installed on c (by the factory), and previous's storage is still
	// reachable on c when this is called. The default implementation
	// rewraps every element from previous's storage into this
	// strategy's own representation.
	ConvertStorageFrom(c Collection, previous Strategy)
}

// StrategyClass is the type-level description of one layout: its name,
// singleton-ness, and its place in the generalization lattice.
type StrategyClass interface {
	// Name returns a short, stable identifier for this class (used in
	// diagnostics and the transition log).
	Name() string
	// Singleton reports whether every collection using this class shares
	// one Strategy instance.
	Singleton() bool
	// Generalizations lists, in preference order, the classes this class
	// may promote to when a value cannot be handled. An empty result
	// means this class is maximally general (normally only the Generic
	// class returns empty).
	Generalizations() []StrategyClass
	// Prototype returns the instance used for CheckCanHandle probing
	// during promotion target selection. For a singleton class it is
	// also the shared instance Instantiate returns; for a non-singleton
	// class it is used only for probing.
	Prototype() Strategy
	// Instantiate builds a Strategy of this class for collection c, sized
	// for initialSize elements. For singleton classes this returns the
	// shared instance.
	Instantiate(c Collection, initialSize int) Strategy
}

// Promoter resolves the next strategy to use when from cannot represent
// v, and installs it.
type Promoter interface {
	// Promote finds the first generalization of from, in
	// Generalizations() order, that can handle v, switches c to it (converting storage and rewiring
	// c's strategy pointer), and returns the new strategy. It is a fatal
	// configuration error if no generalization of from can handle v.
	Promote(c Collection, from Strategy, v Value) Strategy
}

// Factory owns the singleton strategy instances for one generalization
// lattice and mediates every strategy switch for collections using it.
type Factory interface {
	Promoter

	// SetInitialStrategy installs class on c, sized for initialSize
	// elements, then stores vs into it (promoting as needed), and
	// returns the strategy finally installed. This is the one lifecycle
	// entry point a host calls directly, before any other operation on
	// c.
	SetInitialStrategy(c Collection, class StrategyClass, initialSize int, vs []Value) Strategy

	// SwitchStrategy installs target on c (instantiated fresh if
	// target is non-singleton), converts c's storage from old to
	// target, and returns the new strategy. witness is the value whose
	// rejection by old triggered this switch; it is reported in the
	// logged event's elements. SwitchStrategy does not check that target
	// can handle witness. Host code normally reaches this indirectly via
	// Promote.
	SwitchStrategy(c Collection, old Strategy, target StrategyClass, witness Value) Strategy

	// StrategyTypeFor returns the most specific class able to represent
	// every value in vs, used by SetInitialStrategy.
	StrategyTypeFor(vs []Value) StrategyClass
}
