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

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"rstrategies.dev/core/logtool"
)

func openLog(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func parseLog(cmd *cobra.Command, path string) ([]logtool.Entry, error) {
	f, err := openLog(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	entries, errs := logtool.Parse(f)
	if verbose {
		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
		}
	}
	return entries, nil
}

func summaryOptions() logtool.SummaryOptions {
	return logtool.SummaryOptions{
		Percentages:       percentages,
		IncludeNonStorage: allNodes,
		PerClass:          perClass,
		SuppressSlots:     suppressSlots,
	}
}

func dotOptions() logtool.DOTOptions {
	return logtool.DOTOptions{
		IncludeNonStorage: allNodes,
		Detailed:          detailed,
	}
}

var printEntriesCmd = &cobra.Command{
	Use:   "print_entries <logfile>",
	Short: "Print every parsed log entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := parseLog(cmd, args[0])
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", e)
		}
		return nil
	},
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <logfile>",
	Short: "Print the aggregated transition edges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := parseLog(cmd, args[0])
		if err != nil {
			return err
		}
		g := logtool.Aggregate(entries)
		for _, e := range g.Edges() {
			out := cmd.OutOrStdout()
			if suppressSlots {
				fmt.Fprintf(out, "%s -> %s: objects %d\n", e.From, e.To, e.Objects)
			} else {
				fmt.Fprintf(out, "%s -> %s: objects %d, slots %d\n", e.From, e.To, e.Objects, e.Slots)
			}
			if perClass && len(e.ByClass) > 0 {
				fmt.Fprintf(out, "\t%s\n", formatCounts(e.ByClass))
			}
		}
		return nil
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <logfile> <node>",
	Short: "Print one node's incoming and outgoing transitions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := parseLog(cmd, args[0])
		if err != nil {
			return err
		}
		g := logtool.Aggregate(entries)
		s := g.Summarize(args[1], summaryOptions())
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s\n", s.Node)
		fmt.Fprintf(out, "incoming (total objects %d):\n", s.TotalIncomingObjects)
		for _, es := range s.Incoming {
			fmt.Fprintf(out, "\t%s\n", formatEdgeSummary(es))
		}
		fmt.Fprintf(out, "outgoing (total objects %d):\n", s.TotalOutgoingObjects)
		for _, es := range s.Outgoing {
			fmt.Fprintf(out, "\t%s\n", formatEdgeSummary(es))
		}
		return nil
	},
}

var printDotCmd = &cobra.Command{
	Use:   "print_dot <logfile>",
	Short: "Print the transition graph as Graphviz DOT source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := parseLog(cmd, args[0])
		if err != nil {
			return err
		}
		g := logtool.Aggregate(entries)
		fmt.Fprint(cmd.OutOrStdout(), logtool.RenderDOT(g, dotOptions()))
		return nil
	},
}

var dotFormat string

var dotCmd = &cobra.Command{
	Use:   "dot <logfile> <outfile>",
	Short: "Render the transition graph to an image via the dot binary",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := parseLog(cmd, args[0])
		if err != nil {
			return err
		}
		g := logtool.Aggregate(entries)
		img, err := logtool.RenderImage(g, dotFormat, dotOptions())
		if err != nil {
			return err
		}
		return os.WriteFile(args[1], img, 0o644)
	},
}

func init() {
	dotCmd.Flags().StringVarP(&dotFormat, "format", "T", "svg", "Graphviz output format")
}

func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, m[k]))
	}
	return strings.Join(parts, ", ")
}

func formatEdgeSummary(es logtool.EdgeSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: objects %d", es.Peer, es.Objects)
	if !suppressSlots {
		fmt.Fprintf(&b, ", slots %d", es.Slots)
	}
	if percentages {
		fmt.Fprintf(&b, " (%.1f%%)", es.Percentage)
	}
	if perClass && len(es.ByClass) > 0 {
		fmt.Fprintf(&b, " [%s]", formatCounts(es.ByClass))
	}
	return b.String()
}
