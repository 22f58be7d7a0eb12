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

package factory

import (
	"testing"

	"rstrategies.dev/core/apis"
	"rstrategies.dev/core/lattice"
)

// testCollection is a minimal apis.Collection used across these tests,
// modeled on test_rstrategies.py's W_List.
type testCollection struct {
	strategy apis.Strategy
	storage  apis.Storage
}

func (c *testCollection) GetStrategy() apis.Strategy  { return c.strategy }
func (c *testCollection) SetStrategy(s apis.Strategy) { c.strategy = s }
func (c *testCollection) GetStorage() apis.Storage    { return c.storage }
func (c *testCollection) SetStorage(s apis.Storage)   { c.storage = s }
func (c *testCollection) ClassName() string           { return "List" }

// testLattice assembles the six-class generalization topology used by
// the reference test suite: Empty -> {NilStrategy, IntegerStrategy,
// GenericStrategy}, NilStrategy -> {IntegerOrNilStrategy, GenericStrategy},
// IntegerStrategy -> {IntegerOrNilStrategy, GenericStrategy},
// IntegerOrNilStrategy -> {GenericStrategy}, GenericStrategy -> {}.
type testLattice struct {
	empty          *lattice.Class
	nilStrategy    *lattice.Class
	integer        *lattice.Class
	integerOrNil   *lattice.Class
	generic        *lattice.Class
	weak           *lattice.Class
	factory        *Factory
}

func buildTestLattice(t *testing.T) *testLattice {
	t.Helper()

	l := &testLattice{}
	// promoter reads l.factory at call time rather than closing over a
	// fixed Factory, so a test may swap in a differently-configured
	// Factory on the same set of classes (see
	// TestScenario_SpecializedConversionSkipsGenericLoop) without
	// rebuilding the whole lattice.
	promoter := promoterFunc(func(c apis.Collection, from apis.Strategy, v apis.Value) apis.Strategy {
		return l.factory.Promote(c, from, v)
	})

	l.empty = lattice.NewClass("EmptyStrategy", true, nil, nil)
	l.empty.SetPrototype(lattice.NewEmpty(l.empty, promoter))

	l.nilStrategy = lattice.NewClass("NilStrategy", true, nil, nil)
	l.nilStrategy.SetPrototype(lattice.NewSingleValue(l.nilStrategy, promoter, nil, func(v apis.Value) bool { return v == nil }))

	intCodec := lattice.Codec[int]{
		Wrap:   func(r int) apis.Value { return r },
		Unwrap: func(v apis.Value) (int, bool) { r, ok := v.(int); return r, ok },
	}
	l.integer = lattice.NewClass("IntegerStrategy", true, nil, nil)
	l.integer.SetPrototype(lattice.NewSingleType[int](l.integer, promoter, intCodec, 0))

	l.integerOrNil = lattice.NewClass("IntegerOrNilStrategy", true, nil, nil)
	l.integerOrNil.SetPrototype(lattice.NewTagging[int](l.integerOrNil, promoter, intCodec, nil, 0, func(v apis.Value) bool { return v == nil }))

	l.generic = lattice.NewClass("GenericStrategy", true, nil, nil)
	l.generic.SetPrototype(lattice.NewGeneric(l.generic, promoter, nil))

	l.weak = lattice.NewClass("WeakGenericStrategy", true, nil, nil)
	l.weak.SetPrototype(lattice.NewWeakGeneric(l.weak, promoter, nil))

	l.empty.SetGeneralizations(l.nilStrategy, l.integer, l.generic)
	l.nilStrategy.SetGeneralizations(l.integerOrNil, l.generic)
	l.integer.SetGeneralizations(l.integerOrNil, l.generic)
	l.integerOrNil.SetGeneralizations(l.generic)
	l.generic.SetGeneralizations()
	l.weak.SetGeneralizations()

	f, err := New([]apis.StrategyClass{l.empty, l.nilStrategy, l.integer, l.integerOrNil, l.generic, l.weak})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.factory = f
	return l
}

type promoterFunc func(c apis.Collection, from apis.Strategy, v apis.Value) apis.Strategy

func (p promoterFunc) Promote(c apis.Collection, from apis.Strategy, v apis.Value) apis.Strategy {
	return p(c, from, v)
}

func newCollection(l *testLattice, class apis.StrategyClass, vs []apis.Value) *testCollection {
	c := &testCollection{}
	l.factory.SetInitialStrategy(c, class, len(vs), vs)
	return c
}

// Scenario 1: an empty collection stores only nils and stays on
// NilStrategy.
func TestScenario_EmptyThenAllNils(t *testing.T) {
	l := buildTestLattice(t)
	c := newCollection(l, l.empty, nil)
	if c.GetStrategy().Class().Name() != "EmptyStrategy" {
		t.Fatalf("initial class = %s", c.GetStrategy().Class().Name())
	}

	c.GetStrategy().Insert(c, 0, []apis.Value{nil, nil})
	if got := c.GetStrategy().Class().Name(); got != "NilStrategy" {
		t.Fatalf("after inserting nils, class = %s, want NilStrategy", got)
	}
	if c.GetStrategy().Size(c) != 2 {
		t.Fatalf("size = %d, want 2", c.GetStrategy().Size(c))
	}
}

// Scenario 2: storing a non-nil int into a NilStrategy collection
// promotes straight to IntegerOrNilStrategy (skipping IntegerStrategy,
// since the collection already holds a nil).
func TestScenario_NilThenInt_PromotesToIntegerOrNil(t *testing.T) {
	l := buildTestLattice(t)
	c := newCollection(l, l.nilStrategy, []apis.Value{nil, nil})

	c.GetStrategy().Store(c, 0, 42)
	if got := c.GetStrategy().Class().Name(); got != "IntegerOrNilStrategy" {
		t.Fatalf("class = %s, want IntegerOrNilStrategy", got)
	}
	if got := c.GetStrategy().Fetch(c, 0); got != 42 {
		t.Fatalf("Fetch(0) = %v, want 42", got)
	}
	if got := c.GetStrategy().Fetch(c, 1); got != nil {
		t.Fatalf("Fetch(1) = %v, want nil", got)
	}
}

// Scenario 3: storing a string into an all-integer collection promotes
// all the way to GenericStrategy.
func TestScenario_IntegerThenString_PromotesToGeneric(t *testing.T) {
	l := buildTestLattice(t)
	c := newCollection(l, l.integer, []apis.Value{1, 2, 3})

	c.GetStrategy().Store(c, 1, "hi")
	if got := c.GetStrategy().Class().Name(); got != "GenericStrategy" {
		t.Fatalf("class = %s, want GenericStrategy", got)
	}
	got := c.GetStrategy().FetchAll(c)
	want := []apis.Value{1, "hi", 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FetchAll = %v, want %v", got, want)
		}
	}
}

// Scenario 4 (SingleValueStrategy.Insert correction): inserting a mixed
// vector into a NilStrategy collection grows the counter for the leading
// nils and delegates exactly the unhandled suffix, at the correct offset,
// to the promoted strategy.
func TestScenario_NilInsertMixedVector_SplitsAtFirstNonNil(t *testing.T) {
	l := buildTestLattice(t)
	c := newCollection(l, l.nilStrategy, []apis.Value{nil})

	c.GetStrategy().Insert(c, 1, []apis.Value{nil, 7, nil})
	if got := c.GetStrategy().Class().Name(); got != "IntegerOrNilStrategy" {
		t.Fatalf("class = %s, want IntegerOrNilStrategy", got)
	}
	got := c.GetStrategy().FetchAll(c)
	want := []apis.Value{nil, nil, 7, nil}
	if len(got) != len(want) {
		t.Fatalf("FetchAll = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FetchAll[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// Scenario 5: an Empty collection receiving several elements at once via
// Insert promotes using the first element as the witness and hands the
// whole vector to the promoted strategy in a single call; that strategy
// promotes further as it meets values it cannot hold (NilStrategy ->
// IntegerOrNilStrategy -> GenericStrategy), ending on GenericStrategy.
func TestScenario_EmptyInsertMixedVector_EndsOnGeneric(t *testing.T) {
	l := buildTestLattice(t)
	c := newCollection(l, l.empty, nil)

	c.GetStrategy().Insert(c, 0, []apis.Value{nil, 1, struct{}{}, nil})
	if got := c.GetStrategy().Class().Name(); got != "GenericStrategy" {
		t.Fatalf("class = %s, want GenericStrategy", got)
	}
	if c.GetStrategy().Size(c) != 4 {
		t.Fatalf("size = %d, want 4", c.GetStrategy().Size(c))
	}
}

// Scenario 6: a registered specialized conversion is used instead of the
// generic fetch/store loop.
func TestScenario_SpecializedConversionSkipsGenericLoop(t *testing.T) {
	l := buildTestLattice(t)
	calls := 0
	table := ConversionTable{}
	table.Register("NilStrategy", "IntegerOrNilStrategy", func(c apis.Collection, source, target apis.Strategy) {
		calls++
		lattice.ConvertByDefaultFill(c, source, target)
	})

	f, err := New([]apis.StrategyClass{l.empty, l.nilStrategy, l.integer, l.integerOrNil, l.generic, l.weak}, WithConversions(table))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.factory = f

	c := newCollection(l, l.nilStrategy, []apis.Value{nil, nil, nil})
	c.GetStrategy().Store(c, 0, 9)

	if calls != 1 {
		t.Fatalf("specialized conversion called %d times, want 1", calls)
	}
	if got := c.GetStrategy().Class().Name(); got != "IntegerOrNilStrategy" {
		t.Fatalf("class = %s, want IntegerOrNilStrategy", got)
	}
}

func TestNew_DetectsCycle(t *testing.T) {
	a := lattice.NewClass("A", true, lattice.NewEmpty(nil, nil), nil)
	b := lattice.NewClass("B", true, lattice.NewEmpty(nil, nil), nil)
	a.SetGeneralizations(b)
	b.SetGeneralizations(a)

	_, err := New([]apis.StrategyClass{a, b})
	if err == nil {
		t.Fatal("expected a cycle error, got nil")
	}
}

func TestStrategyTypeFor_PicksMostSpecific(t *testing.T) {
	l := buildTestLattice(t)

	if got := l.factory.StrategyTypeFor(nil); got.Name() != "EmptyStrategy" {
		t.Fatalf("StrategyTypeFor(nil) = %s, want EmptyStrategy", got.Name())
	}
	if got := l.factory.StrategyTypeFor([]apis.Value{nil, nil}); got.Name() != "NilStrategy" {
		t.Fatalf("StrategyTypeFor(nils) = %s, want NilStrategy", got.Name())
	}
	if got := l.factory.StrategyTypeFor([]apis.Value{1, 2, 3}); got.Name() != "IntegerStrategy" {
		t.Fatalf("StrategyTypeFor(ints) = %s, want IntegerStrategy", got.Name())
	}
	if got := l.factory.StrategyTypeFor([]apis.Value{1, nil, 2}); got.Name() != "IntegerOrNilStrategy" {
		t.Fatalf("StrategyTypeFor(mixed) = %s, want IntegerOrNilStrategy", got.Name())
	}
	if got := l.factory.StrategyTypeFor([]apis.Value{1, "x"}); got.Name() != "GenericStrategy" {
		t.Fatalf("StrategyTypeFor(int+string) = %s, want GenericStrategy", got.Name())
	}
}
