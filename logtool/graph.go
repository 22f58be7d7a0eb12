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

import "sort"

// InitialNode is the synthetic source node for Created entries, which
// have no predecessor strategy. It is a "non-storage" node: it does not
// correspond to any real layout, only to the act of a collection's first
// strategy being chosen.
const InitialNode = "∅"

// Edge aggregates every log entry observed for one (From, To) transition.
type Edge struct {
	From, To string
	// Objects is the total number of collections this edge summarizes.
	Objects int
	// Slots is the total element count across every aggregated
	// collection (each entry's Size weighted by its own Objects).
	Slots int
	// ByClass counts Objects per host ClassName, omitting entries whose
	// ClassName was empty.
	ByClass map[string]int
	// ByElement counts Objects per element type name seen in any
	// aggregated entry's Elements, for every element (not deduplicated
	// per entry, so an entry with two same-typed elements counts twice).
	ByElement map[string]int
}

// Graph is a directed multigraph of layout transitions, aggregated from
// a set of log entries: one Edge per distinct (old, new) class name
// pair.
type Graph struct {
	edges map[edgeKey]*Edge
	order []edgeKey // insertion order, for deterministic output
}

type edgeKey struct{ from, to string }

func newGraph() *Graph {
	return &Graph{edges: map[edgeKey]*Edge{}}
}

func (g *Graph) edge(from, to string) *Edge {
	k := edgeKey{from, to}
	e, ok := g.edges[k]
	if !ok {
		e = &Edge{From: from, To: to, ByClass: map[string]int{}, ByElement: map[string]int{}}
		g.edges[k] = e
		g.order = append(g.order, k)
	}
	return e
}

// Edges returns every edge in the graph, ordered by (From, To) for
// deterministic iteration.
func (g *Graph) Edges() []*Edge {
	keys := append([]edgeKey(nil), g.order...)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].from != keys[j].from {
			return keys[i].from < keys[j].from
		}
		return keys[i].to < keys[j].to
	})
	out := make([]*Edge, len(keys))
	for i, k := range keys {
		out[i] = g.edges[k]
	}
	return out
}

// Nodes returns every distinct node name (class name or InitialNode)
// that appears as an edge endpoint, sorted.
func (g *Graph) Nodes() []string {
	seen := map[string]bool{}
	for _, k := range g.order {
		seen[k.from] = true
		seen[k.to] = true
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Aggregate merges entries into a Graph, one Edge per distinct (old,
// new) class name pair. A Created entry (Old == "") is recorded as an
// edge from InitialNode.
func Aggregate(entries []Entry) *Graph {
	g := newGraph()
	for _, e := range entries {
		from := e.Old
		if from == "" {
			from = InitialNode
		}
		edge := g.edge(from, e.New)
		edge.Objects += e.Objects
		edge.Slots += e.Size * e.Objects
		if e.ClassName != "" {
			edge.ByClass[e.ClassName] += e.Objects
		}
		for _, el := range e.Elements {
			edge.ByElement[el] += e.Objects
		}
	}
	return g
}

// SummaryOptions controls how Summarize reports a node's neighborhood;
// its fields mirror the CLI's -p -a -c -s flags directly.
type SummaryOptions struct {
	// Percentages reports each edge's share of the node's total
	// incoming/outgoing objects.
	Percentages bool
	// IncludeNonStorage includes edges to/from InitialNode. Off by
	// default, since InitialNode is not a real layout.
	IncludeNonStorage bool
	// PerClass includes each edge's ByClass breakdown.
	PerClass bool
	// SuppressSlots omits Slots from each EdgeSummary.
	SuppressSlots bool
}

// EdgeSummary is one edge of a Summary, from the perspective of the node
// Summarize was called for.
type EdgeSummary struct {
	// Peer is the other endpoint of the edge.
	Peer string
	Objects int
	// Slots is zero if SummaryOptions.SuppressSlots was set.
	Slots int
	// Percentage is this edge's share of the direction's total objects,
	// zero unless SummaryOptions.Percentages was set.
	Percentage float64
	// ByClass is nil unless SummaryOptions.PerClass was set.
	ByClass map[string]int
}

// Summary is a node's incoming and outgoing edges.
type Summary struct {
	Node                 string
	Incoming             []EdgeSummary
	Outgoing             []EdgeSummary
	TotalIncomingObjects int
	TotalOutgoingObjects int
}

// Summarize reports node's incoming and outgoing transitions.
func (g *Graph) Summarize(node string, opts SummaryOptions) Summary {
	s := Summary{Node: node}
	var inTotal, outTotal int

	for _, e := range g.Edges() {
		if !opts.IncludeNonStorage && (e.From == InitialNode || e.To == InitialNode) {
			continue
		}
		if e.To == node {
			inTotal += e.Objects
		}
		if e.From == node {
			outTotal += e.Objects
		}
	}

	for _, e := range g.Edges() {
		if !opts.IncludeNonStorage && (e.From == InitialNode || e.To == InitialNode) {
			continue
		}
		switch {
		case e.To == node:
			s.Incoming = append(s.Incoming, summarize(e, e.From, inTotal, opts))
		case e.From == node:
			s.Outgoing = append(s.Outgoing, summarize(e, e.To, outTotal, opts))
		}
	}

	s.TotalIncomingObjects = inTotal
	s.TotalOutgoingObjects = outTotal
	return s
}

func summarize(e *Edge, peer string, total int, opts SummaryOptions) EdgeSummary {
	es := EdgeSummary{Peer: peer, Objects: e.Objects}
	if !opts.SuppressSlots {
		es.Slots = e.Slots
	}
	if opts.Percentages && total > 0 {
		es.Percentage = 100 * float64(e.Objects) / float64(total)
	}
	if opts.PerClass {
		es.ByClass = e.ByClass
	}
	return es
}
