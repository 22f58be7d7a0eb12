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

// Package factory builds a generalization lattice out of a set of
// apis.StrategyClass values and mediates every transition a collection
// using that lattice makes: choosing an initial layout, promoting when a
// strategy can no longer represent a value, and converting storage
// between the two.
package factory

import (
	"fmt"

	"rstrategies.dev/core/apis"
	"rstrategies.dev/core/logging"
)

// ConversionFunc converts c's storage from source's representation to
// target's, for one specific (source class, target class) pair. At the
// time it runs, target is already installed on c (c.GetStrategy() ==
// target); source's own storage representation is still reachable
// through source for the duration of the call.
type ConversionFunc func(c apis.Collection, source, target apis.Strategy)

// conversionKey identifies a registered specialized conversion by the
// class names of its source and target.
type conversionKey struct {
	source, target string
}

// ConversionTable maps (source class name, target class name) pairs to a
// specialized ConversionFunc, bypassing the generic
// ConvertStorageTo/ConvertStorageFrom fetch/store loop for that pair.
type ConversionTable map[conversionKey]ConversionFunc

// Register adds a specialized conversion for the (source, target) class
// name pair, overwriting any existing entry.
func (t ConversionTable) Register(source, target string, fn ConversionFunc) {
	t[conversionKey{source, target}] = fn
}

// Factory owns the generalization lattice built from a fixed set of
// classes and mediates every strategy switch for collections using it. It
// implements apis.Factory.
type Factory struct {
	ordered     []apis.StrategyClass // most specific first
	logger      logging.Logger
	conversions ConversionTable
}

var _ apis.Factory = (*Factory)(nil)

// Option configures a Factory at construction time.
type Option func(*Factory)

// WithLogger sets the logger used to record every Created/Switched
// event. The default is logging.Nop().
func WithLogger(l logging.Logger) Option {
	return func(f *Factory) { f.logger = l }
}

// WithConversions registers table as the factory's specialized
// conversion table, used by SwitchStrategy in place of the generic
// fetch/store loop for any (source, target) pair it covers.
func WithConversions(table ConversionTable) Option {
	return func(f *Factory) {
		for k, fn := range table {
			f.conversions[k] = fn
		}
	}
}

// New builds a Factory over classes. It returns ErrCycle if the
// generalization graph described by classes' Generalizations() contains
// a cycle.
func New(classes []apis.StrategyClass, opts ...Option) (*Factory, error) {
	depths, err := computeDepths(classes)
	if err != nil {
		return nil, err
	}

	ordered := append([]apis.StrategyClass(nil), classes...)
	// Stable sort, most specific (deepest) first: a class with more
	// generalization steps to Generic is tried before one with fewer, so
	// StrategyTypeFor's alive-bitmap sweep settles on the narrowest class
	// that can still represent every value seen.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && depths[ordered[j-1].Name()] < depths[ordered[j].Name()]; j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}

	f := &Factory{
		ordered:     ordered,
		logger:      logging.Nop(),
		conversions: ConversionTable{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// computeDepths assigns each class a depth: 0 for a class with no
// generalizations (maximally general), 1+max(depth of its
// generalizations) otherwise. It detects cycles via a standard
// white/gray/black DFS coloring.
func computeDepths(classes []apis.StrategyClass) (map[string]int, error) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(classes))
	depth := make(map[string]int, len(classes))
	byName := make(map[string]apis.StrategyClass, len(classes))
	for _, c := range classes {
		byName[c.Name()] = c
	}

	var visit func(c apis.StrategyClass) error
	visit = func(c apis.StrategyClass) error {
		switch color[c.Name()] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("%w: at %s", ErrCycle, c.Name())
		}
		color[c.Name()] = gray
		max := -1
		for _, g := range c.Generalizations() {
			if err := visit(g); err != nil {
				return err
			}
			if d := depth[g.Name()]; d > max {
				max = d
			}
		}
		depth[c.Name()] = max + 1
		color[c.Name()] = black
		return nil
	}

	for _, c := range classes {
		if err := visit(c); err != nil {
			return nil, err
		}
	}
	return depth, nil
}

// SetInitialStrategy installs class on c, sized for initialSize elements,
// stores vs into it (which may itself trigger one or more promotions),
// and logs a single Created event for whichever strategy is installed by
// the time storing finishes — not necessarily class itself, if vs
// contained a value class could not represent.
func (f *Factory) SetInitialStrategy(c apis.Collection, class apis.StrategyClass, initialSize int, vs []apis.Value) apis.Strategy {
	s := class.Instantiate(c, initialSize)
	c.SetStrategy(s)
	s.InitializeStorage(c, initialSize)
	if len(vs) > 0 {
		c.GetStrategy().StoreAll(c, vs)
	}

	final := c.GetStrategy()
	final.StrategySwitched(c)
	f.logger.Log(logging.NewEvent("", final.Class().Name(), c, final.Size(c), vs))
	return final
}

// SwitchStrategy instantiates target, rewires c onto it, converts
// storage, and logs a Switched event. Rewiring happens before storage
// conversion: by the time ConvertStorageFrom/a specialized ConversionFunc
// runs, c.GetStrategy() already reports the new strategy, matching the
// reference implementation's switch_strategy order (set_strategy, then
// convert_storage_to).
func (f *Factory) SwitchStrategy(c apis.Collection, old apis.Strategy, target apis.StrategyClass, witness apis.Value) apis.Strategy {
	size := old.Size(c)
	newStrategy := target.Instantiate(c, size)
	c.SetStrategy(newStrategy)

	if fn, ok := f.conversions[conversionKey{old.Class().Name(), target.Name()}]; ok {
		fn(c, old, newStrategy)
	} else {
		old.ConvertStorageTo(c, newStrategy)
	}

	newStrategy.StrategySwitched(c)
	f.logger.Log(logging.NewEvent(old.Class().Name(), target.Name(), c, newStrategy.Size(c), []apis.Value{witness}))
	return newStrategy
}

// Promote finds the first generalization of from able to handle v and
// switches c to it. It panics with a *ConfigurationError if none can.
func (f *Factory) Promote(c apis.Collection, from apis.Strategy, v apis.Value) apis.Strategy {
	for _, g := range from.Class().Generalizations() {
		if g.Prototype().CheckCanHandle(v) {
			return f.SwitchStrategy(c, from, g, v)
		}
	}
	panic(&ConfigurationError{Source: from.Class().Name(), Witness: v})
}

// StrategyTypeFor returns the most specific class able to represent every
// value in vs. It maintains, per class, whether that class is still
// "alive" (has rejected nothing seen so far), eliminating classes as
// values are scanned and stopping early once at most one candidate
// remains — mirroring the reference implementation's alive-bitmap sweep.
// An empty vs leaves every class alive, so the most specific class
// overall (normally the one representing zero elements) wins.
func (f *Factory) StrategyTypeFor(vs []apis.Value) apis.StrategyClass {
	alive := make([]bool, len(f.ordered))
	for i := range alive {
		alive[i] = true
	}
	remaining := len(alive)

	for _, v := range vs {
		if remaining <= 1 {
			break
		}
		for i, class := range f.ordered {
			if !alive[i] {
				continue
			}
			if !class.Prototype().CheckCanHandle(v) {
				alive[i] = false
				remaining--
			}
		}
	}

	for i, class := range f.ordered {
		if alive[i] {
			return class
		}
	}
	panic(&classificationError{values: vs})
}
