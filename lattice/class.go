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

// Class is a reusable apis.StrategyClass implementation. Every concrete
// layout constructor in this package returns one alongside its Strategy;
// Generalizations is filled in after construction (via SetGeneralizations)
// once every class in a lattice exists, since classes generally reference
// each other.
type Class struct {
	name            string
	singleton       bool
	generalizations []apis.StrategyClass
	prototype       apis.Strategy
	instantiate     func(c apis.Collection, initialSize int) apis.Strategy
}

// NewClass builds a Class named name. prototype is returned by both
// Prototype and (for singleton classes) Instantiate. instantiate is used
// for non-singleton classes only; it may be nil for singleton classes.
func NewClass(name string, singleton bool, prototype apis.Strategy, instantiate func(apis.Collection, int) apis.Strategy) *Class {
	return &Class{name: name, singleton: singleton, prototype: prototype, instantiate: instantiate}
}

// Name returns the class's stable identifier.
func (c *Class) Name() string { return c.name }

// Singleton reports whether this class has exactly one shared instance.
func (c *Class) Singleton() bool { return c.singleton }

// Generalizations returns the classes tried, in order, when this class
// cannot represent a value.
func (c *Class) Generalizations() []apis.StrategyClass { return c.generalizations }

// SetGeneralizations wires this class's generalization edges. Must be
// called once, after every referenced class has been constructed, before
// the class is handed to a factory.
func (c *Class) SetGeneralizations(g ...apis.StrategyClass) { c.generalizations = g }

// Prototype returns the instance used for CheckCanHandle probing during
// promotion target selection (for a singleton class, also the shared
// instance Instantiate returns).
func (c *Class) Prototype() apis.Strategy { return c.prototype }

// SetPrototype wires c's prototype after construction. It exists because
// a concrete strategy's constructor needs its Class before the Class
// itself can be built with that strategy as its prototype; callers build
// the class with a nil prototype, construct the strategy against it, then
// call SetPrototype once the strategy exists. Singleton classes also use
// this same instance as Instantiate's return value.
func (c *Class) SetPrototype(s apis.Strategy) { c.prototype = s }

// Instantiate returns the strategy instance initialSize elements of
// storage should be prepared for. Singleton classes always return the
// same shared instance (their Prototype); non-singleton classes build a
// fresh one per collection.
func (c *Class) Instantiate(col apis.Collection, initialSize int) apis.Strategy {
	if c.singleton {
		return c.prototype
	}
	return c.instantiate(col, initialSize)
}
