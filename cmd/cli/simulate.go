package main

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/LoryBug/mbel"
	"github.com/LoryBug/mbel/internal/query"
	"github.com/LoryBug/mbel/internal/result"
)

func newSimulateCmd() *cobra.Command {
	var from, to, feature string
	cmd := &cobra.Command{
		Use:   "simulate <file> <add-dep|remove-dep|add-feature|remove-feature>",
		Short: "Run simulate() against a hypothetical graph edit without touching the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, op := args[0], args[1]

			var q query.SimulateQuery
			switch op {
			case "add-dep":
				q = query.SimulateQuery{Op: query.SimAddDependency, From: from, To: to}
			case "remove-dep":
				q = query.SimulateQuery{Op: query.SimRemoveDependency, From: from, To: to}
			case "add-feature":
				q = query.SimulateQuery{Op: query.SimAddFeature, Feature: feature}
			case "remove-feature":
				q = query.SimulateQuery{Op: query.SimRemoveFeature, Feature: feature}
			default:
				return oops.Code("INVALID_OP").With("op", op).Errorf("unknown simulate operation %q", op)
			}

			doc, err := mbel.ParseFile(path)
			if err != nil {
				return oops.Code("READ_FAILED").With("path", path).Wrap(err)
			}

			res, err := doc.Query(q)
			if err != nil {
				return oops.Code("QUERY_FAILED").With("query", "simulate").Wrap(err)
			}
			sim := res.(result.Simulation)

			fmt.Println(sim.String())
			if sim.Circular {
				fmt.Println("rejected: would introduce a circular dependency")
				return nil
			}
			fmt.Printf("impact: %s\n", sim.ImpactLevel)
			fmt.Printf("affected features: %v\n", sim.AffectedFeatures)
			if len(sim.BreakingDependents) > 0 {
				fmt.Printf("breaking dependents: %v\n", sim.BreakingDependents)
			}
			fmt.Printf("suggested tests: %v\n", sim.SuggestedTests)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "dependency source feature (add-dep/remove-dep)")
	cmd.Flags().StringVar(&to, "to", "", "dependency target feature (add-dep/remove-dep)")
	cmd.Flags().StringVar(&feature, "feature", "", "feature name (add-feature/remove-feature)")
	return cmd
}
