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

// Package rstrategies is the host-facing surface of the storage strategy
// framework. A host type embeds or implements apis.Collection and then
// only ever calls the functions in this package; it never calls a
// Strategy or a Factory directly. Every function here does nothing but
// read c's currently installed strategy and forward, so the cost of
// using this package over calling apis.Strategy directly is one
// indirection, paid once per call.
package rstrategies

import "rstrategies.dev/core/apis"

// SetInitialStrategy installs a collection's first strategy. It must be
// called exactly once per collection, before any other function in this
// package is used on it. class is normally chosen via a Factory's
// StrategyTypeFor(vs).
func SetInitialStrategy(f apis.Factory, c apis.Collection, class apis.StrategyClass, initialSize int, vs []apis.Value) apis.Strategy {
	return f.SetInitialStrategy(c, class, initialSize, vs)
}

// Size returns the number of elements currently stored in c.
func Size(c apis.Collection) int {
	return c.GetStrategy().Size(c)
}

// Fetch returns the element at index i.
func Fetch(c apis.Collection, i int) apis.Value {
	return c.GetStrategy().Fetch(c, i)
}

// Store installs v at index i, promoting c's strategy first if needed.
func Store(c apis.Collection, i int, v apis.Value) {
	c.GetStrategy().Store(c, i, v)
}

// Insert splices vs into c starting at index i.
func Insert(c apis.Collection, i int, vs []apis.Value) {
	c.GetStrategy().Insert(c, i, vs)
}

// Delete removes the half-open range [start, end) from c.
func Delete(c apis.Collection, start, end int) {
	c.GetStrategy().Delete(c, start, end)
}

// Append adds vs to the end of c.
func Append(c apis.Collection, vs []apis.Value) {
	c.GetStrategy().Append(c, vs)
}

// Pop removes and returns the element at index i.
func Pop(c apis.Collection, i int) apis.Value {
	return c.GetStrategy().Pop(c, i)
}

// Slice returns a copy of the half-open range [start, end) of c's
// elements, boxed.
func Slice(c apis.Collection, start, end int) []apis.Value {
	return c.GetStrategy().Slice(c, start, end)
}

// FetchAll returns a copy of every element in c, boxed.
func FetchAll(c apis.Collection) []apis.Value {
	return c.GetStrategy().FetchAll(c)
}

// StoreAll replaces every element in c with vs, promoting as needed.
func StoreAll(c apis.Collection, vs []apis.Value) {
	c.GetStrategy().StoreAll(c, vs)
}
