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

// Package naming turns a boxed value's Go type into the short, stable
// name logging uses for its "elements:" clause (for example
// "main.Integer" rather than "*main.Integer"; a built-in type such as int
// keeps its plain name "int"). It unwraps one layer of
// pointer/slice/array/chan, strips a package path down to its base, and
// memoizes the result per reflect.Type, since the same element types
// recur across every Created/Switched event a host collection ever logs.
package naming

import (
	"path"
	"reflect"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// typeNameCacheSize bounds the type-name memoization table. A host that
// mints unbounded distinct generic instantiations would otherwise grow
// this cache without limit.
const typeNameCacheSize = 4096

var typeNameCache = mustLRU()

func mustLRU() *lru.Cache[reflect.Type, string] {
	c, err := lru.New[reflect.Type, string](typeNameCacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	overridesMu sync.RWMutex
	overrides   = map[reflect.Type]string{}
)

// Entity resolves v's type to a short display name. A nil v resolves to
// "nil". Panics from a nil reflect.Type are not possible here: v is
// already a non-nil any, so reflect.TypeOf(v) is always non-nil.
func Entity(v any) string {
	if v == nil {
		return "nil"
	}
	return EntityType(reflect.TypeOf(v))
}

// EntityType resolves t to a short display name, honoring any override
// registered for t via RegisterType.
func EntityType(t reflect.Type) string {
	overridesMu.RLock()
	name, ok := overrides[t]
	overridesMu.RUnlock()
	if ok {
		return name
	}

	if name, ok := typeNameCache.Get(t); ok {
		return name
	}

	name = resolve(t)
	typeNameCache.Add(t, name)
	return name
}

// RegisterType sets name as t's display name, overriding both the
// default reflection-based resolution and anything already memoized for
// t. It is meant for a host that wants a friendlier name for one of its
// own element types than the package-qualified default (for example
// "SmallInteger" for a type whose Go name is unexported or unwieldy).
func RegisterType(t reflect.Type, name string) {
	overridesMu.Lock()
	overrides[t] = name
	overridesMu.Unlock()
}

// resolve computes t's default display name: unwrap one layer of
// pointer/slice/array/chan, strip any generic instantiation suffix, and
// reduce a package path to its base component.
func resolve(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
		if elem := t.Elem(); elem != nil {
			t = elem
		}
	}

	name := stripTypeParams(t.Name())
	if name == "" {
		return t.Kind().String()
	}
	if p := t.PkgPath(); p != "" {
		return path.Base(p) + "." + name
	}
	return name
}

// stripTypeParams removes a generic instantiation suffix:
// "Pair[int,string]" -> "Pair".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
