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

package logtool

import (
	"os/exec"
	"strings"
	"testing"
)

const sampleLog = `Created (NilStrategy) of List size 5
Switched (NilStrategy -> IntegerOrNilStrategy) of List size 10 elements: Integer
this is not a log line
Switched (IntegerOrNilStrategy -> GenericStrategy) of List size 3 elements: Object
Switched (NilStrategy -> IntegerOrNilStrategy) of Array size 20 objects 4 elements: Integer
`

func TestParse_SkipsNonMatchingLinesAsErrors(t *testing.T) {
	entries, errs := Parse(strings.NewReader(sampleLog))
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4", len(entries))
	}
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	if errs[0].Line != 3 {
		t.Fatalf("errs[0].Line = %d, want 3", errs[0].Line)
	}
}

func TestParse_FieldsMatchGrammar(t *testing.T) {
	entries, _ := Parse(strings.NewReader(sampleLog))

	created := entries[0]
	if created.Operation != "Created" || created.Old != "" || created.New != "NilStrategy" {
		t.Fatalf("created entry = %+v", created)
	}
	if created.ClassName != "List" || created.Size != 5 || created.Objects != 1 {
		t.Fatalf("created entry = %+v", created)
	}

	switched := entries[1]
	if switched.Operation != "Switched" || switched.Old != "NilStrategy" || switched.New != "IntegerOrNilStrategy" {
		t.Fatalf("switched entry = %+v", switched)
	}
	if len(switched.Elements) != 1 || switched.Elements[0] != "Integer" {
		t.Fatalf("switched.Elements = %v", switched.Elements)
	}

	withObjects := entries[3]
	if withObjects.Objects != 4 || withObjects.Size != 20 {
		t.Fatalf("withObjects entry = %+v", withObjects)
	}
}

func TestAggregate_MergesMatchingTransitions(t *testing.T) {
	entries, _ := Parse(strings.NewReader(sampleLog))
	g := Aggregate(entries)

	edges := g.Edges()
	var nilToIntOrNil *Edge
	for _, e := range edges {
		if e.From == "NilStrategy" && e.To == "IntegerOrNilStrategy" {
			nilToIntOrNil = e
		}
	}
	if nilToIntOrNil == nil {
		t.Fatal("missing NilStrategy -> IntegerOrNilStrategy edge")
	}
	// One entry with objects=1, size=10, and one with objects=4, size=20:
	// Objects = 1+4 = 5, Slots = 10*1 + 20*4 = 90.
	if nilToIntOrNil.Objects != 5 {
		t.Fatalf("Objects = %d, want 5", nilToIntOrNil.Objects)
	}
	if nilToIntOrNil.Slots != 90 {
		t.Fatalf("Slots = %d, want 90", nilToIntOrNil.Slots)
	}
	if nilToIntOrNil.ByClass["List"] != 1 || nilToIntOrNil.ByClass["Array"] != 4 {
		t.Fatalf("ByClass = %v", nilToIntOrNil.ByClass)
	}
	if nilToIntOrNil.ByElement["Integer"] != 5 {
		t.Fatalf("ByElement = %v", nilToIntOrNil.ByElement)
	}
}

func TestGraph_Nodes_ExcludesNothingByDefault(t *testing.T) {
	entries, _ := Parse(strings.NewReader(sampleLog))
	g := Aggregate(entries)
	nodes := g.Nodes()
	want := []string{"GenericStrategy", "IntegerOrNilStrategy", "NilStrategy", InitialNode}
	if len(nodes) != len(want) {
		t.Fatalf("Nodes = %v, want %v", nodes, want)
	}
}

func TestSummarize_ExcludesNonStorageByDefault(t *testing.T) {
	entries, _ := Parse(strings.NewReader(sampleLog))
	g := Aggregate(entries)

	s := g.Summarize("NilStrategy", SummaryOptions{})
	if len(s.Incoming) != 0 {
		t.Fatalf("Incoming = %v, want none (Created's InitialNode edge excluded)", s.Incoming)
	}
	if len(s.Outgoing) != 1 {
		t.Fatalf("Outgoing = %v, want 1 edge", s.Outgoing)
	}
	if s.TotalOutgoingObjects != 5 {
		t.Fatalf("TotalOutgoingObjects = %d, want 5", s.TotalOutgoingObjects)
	}
}

func TestSummarize_IncludeNonStorage(t *testing.T) {
	entries, _ := Parse(strings.NewReader(sampleLog))
	g := Aggregate(entries)

	s := g.Summarize("NilStrategy", SummaryOptions{IncludeNonStorage: true})
	if len(s.Incoming) != 1 || s.Incoming[0].Peer != InitialNode {
		t.Fatalf("Incoming = %v, want one edge from InitialNode", s.Incoming)
	}
}

func TestSummarize_Percentages(t *testing.T) {
	entries, _ := Parse(strings.NewReader(sampleLog))
	g := Aggregate(entries)

	s := g.Summarize("GenericStrategy", SummaryOptions{Percentages: true})
	if len(s.Incoming) != 1 {
		t.Fatalf("Incoming = %v, want 1 edge", s.Incoming)
	}
	if s.Incoming[0].Percentage != 100 {
		t.Fatalf("Percentage = %v, want 100 (only one incoming edge)", s.Incoming[0].Percentage)
	}
}

func TestRenderDOT_QuotesNodeNames(t *testing.T) {
	entries, _ := Parse(strings.NewReader(sampleLog))
	g := Aggregate(entries)

	out := RenderDOT(g, DOTOptions{})
	if !strings.Contains(out, `"NilStrategy" -> "IntegerOrNilStrategy"`) {
		t.Fatalf("RenderDOT output missing expected edge:\n%s", out)
	}
	if strings.Contains(out, InitialNode) {
		t.Fatalf("RenderDOT output should exclude InitialNode by default:\n%s", out)
	}
}

func TestRenderImage_RequiresDotBinary(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("dot binary not available in this environment")
	}
	entries, _ := Parse(strings.NewReader(sampleLog))
	g := Aggregate(entries)

	img, err := RenderImage(g, "svg", DOTOptions{})
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	if len(img) == 0 {
		t.Fatal("RenderImage returned no bytes")
	}
}
