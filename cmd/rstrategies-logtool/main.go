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

// Command rstrategies-logtool reads a strategy transition log (the
// format logging.Format emits) and reports on it: raw or aggregated
// entries, per-node summaries, or a Graphviz rendering.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rstrategies.dev/core/logtool"
)

var (
	verbose       bool
	percentages   bool
	allNodes      bool
	detailed      bool
	perClass      bool
	suppressSlots bool
)

var rootCmd = &cobra.Command{
	Use:   "rstrategies-logtool <command> <logfile> [args]",
	Short: "Inspect a strategy transition log",
	Long: `rstrategies-logtool parses the one-line-per-event transition log emitted
by the rstrategies logger and reports on the layout transitions it
records: raw entries, aggregated transitions, a per-strategy summary, or
a Graphviz rendering of the transition graph.

<logfile> is read once per invocation; pass - to read from stdin. The
command name comes first; a <logfile> given before it is not recognized.`,
	// Unknown or missing arguments should print usage, not just an error
	// line, so SilenceUsage stays off; SilenceErrors avoids main() and
	// cobra both printing the same error.
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report skipped lines that do not match the log grammar")
	rootCmd.PersistentFlags().BoolVarP(&percentages, "percentages", "p", false, "show each edge's share of its node's total")
	rootCmd.PersistentFlags().BoolVarP(&allNodes, "all", "a", false, "include the synthetic initial-strategy node")
	rootCmd.PersistentFlags().BoolVarP(&detailed, "detailed", "d", false, "include a per-edge breakdown")
	rootCmd.PersistentFlags().BoolVarP(&perClass, "per-class", "c", false, "include a per-class breakdown")
	rootCmd.PersistentFlags().BoolVarP(&suppressSlots, "suppress-slots", "s", false, "omit slot counts")

	rootCmd.AddCommand(printEntriesCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(printDotCmd)
	rootCmd.AddCommand(dotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
