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
	"errors"
	"fmt"
)

// ErrCycle is returned by New when the generalization graph of the
// supplied classes contains a cycle.
var ErrCycle = errors.New("factory: cycle in generalization graph")

// ConfigurationError reports a fatal, ill-formed-lattice condition
// discovered at runtime: no generalization of a strategy's class could
// accept a value that strategy itself rejected. This indicates the
// lattice was built incorrectly, not a problem with the input value; it
// is never recovered inside the core.
type ConfigurationError struct {
	// Source is the class name of the strategy that could not handle the
	// witness value and found no usable generalization.
	Source string
	// Witness is the value that could not be placed anywhere in the
	// lattice.
	Witness any
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("factory: no generalization of %s can handle %#v", e.Source, e.Witness)
}

// classificationError reports that no strategy class passed to the
// factory can represent every value in a vector (StrategyTypeFor).
type classificationError struct {
	values []any
}

func (e *classificationError) Error() string {
	return fmt.Sprintf("factory: no strategy class can handle all of %#v", e.values)
}
