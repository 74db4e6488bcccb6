// Command mbel is the MBEL command-line interface: one-shot subcommands
// for checking, querying, and simulating a memory bank file, plus an
// interactive REPL for ad hoc exploration.
package main

import (
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LoryBug/mbel/internal/mbellog"
)

var (
	verbose bool
	log     *zap.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "mbel",
		Short: "Memory Bank Encoding Language toolkit",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := mbellog.New(verbose)
			if err != nil {
				return oops.Code("LOGGER_INIT").Wrap(err)
			}
			log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newCheckCmd(),
		newImpactCmd(),
		newContextCmd(),
		newGrammarCmd(),
		newSimulateCmd(),
		newReplCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
