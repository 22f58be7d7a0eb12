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

// Package logging records strategy lifecycle events (creation, transition)
// as single structured lines, one per event, matching the grammar:
//
//	<operation> (<new>)[ of <classname>] size <n>[ objects <m>][ elements: <c1> <c2> …]
//	<operation> (<old> -> <new>)[ of <classname>] size <n>[ objects <m>][ elements: <c1> <c2> …]
//
// <operation> is "Created" when Old is empty, "Switched" otherwise.
package logging

import (
	"fmt"
	"strconv"
	"strings"

	"rstrategies.dev/core/apis"
	"rstrategies.dev/core/naming"
)

// Event is one strategy lifecycle occurrence: either a collection's
// initial strategy being installed (Old == "") or a promotion from Old to
// New.
type Event struct {
	// Old is the previous strategy's class name, or "" for a Created event.
	Old string
	// New is the strategy class name now installed.
	New string
	// ClassName is the host type of the collection; may be empty.
	ClassName string
	// Size is the element count after the event.
	Size int
	// Objects is the number of collections this event summarizes. Zero
	// means "omit"; NewEvent never sets it, so the core's own events
	// carry no "objects" clause.
	Objects int
	// Elements is the host type name of each element involved, in order.
	// Empty means omit the "elements:" clause entirely.
	Elements []string
}

// Operation returns "Created" or "Switched" depending on whether Old is set.
func (e Event) Operation() string {
	if e.Old == "" {
		return "Created"
	}
	return "Switched"
}

// Format renders e as the one-line grammar string described in the
// package doc.
func Format(e Event) string {
	var b strings.Builder
	b.WriteString(e.Operation())
	b.WriteString(" (")
	if e.Old != "" {
		b.WriteString(e.Old)
		b.WriteString(" -> ")
	}
	b.WriteString(e.New)
	b.WriteString(")")

	if e.ClassName != "" {
		b.WriteString(" of ")
		b.WriteString(e.ClassName)
	}

	b.WriteString(" size ")
	b.WriteString(strconv.Itoa(e.Size))

	if e.Objects > 0 {
		fmt.Fprintf(&b, " objects %d", e.Objects)
	}

	if len(e.Elements) > 0 {
		b.WriteString(" elements:")
		for _, el := range e.Elements {
			b.WriteString(" ")
			b.WriteString(el)
		}
	}

	return b.String()
}

// NewEvent builds an Event for a collection transitioning (or being
// created) from old to new, reporting size elements and the types of
// vs via the naming package. old is "" for a Created event. c may be
// nil (ClassName is then left empty).
func NewEvent(old, new string, c apis.Collection, size int, vs []apis.Value) Event {
	ev := Event{Old: old, New: new, Size: size}
	if c != nil {
		ev.ClassName = c.ClassName()
	}
	if len(vs) == 0 {
		return ev
	}
	ev.Elements = make([]string, len(vs))
	for i, v := range vs {
		if v == nil {
			ev.Elements[i] = "nil"
			continue
		}
		ev.Elements[i] = naming.Entity(v)
	}
	return ev
}
