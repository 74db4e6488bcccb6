package main

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/LoryBug/mbel"
	"github.com/LoryBug/mbel/internal/query"
	"github.com/LoryBug/mbel/internal/result"
)

func newImpactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "impact <file> <changed-file>...",
		Short: "Run getEditRisk / getImpactAnalysis against one or more changed files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			changed := args[1:]

			doc, err := mbel.ParseFile(path)
			if err != nil {
				return oops.Code("READ_FAILED").With("path", path).Wrap(err)
			}

			for _, f := range changed {
				res, err := doc.Query(query.EditRiskQuery{Path: f})
				if err != nil {
					return oops.Code("QUERY_FAILED").With("query", "editRisk").Wrap(err)
				}
				risk := res.(result.RiskAssessment)
				fmt.Printf("%s: risk=%s\n", f, risk.Level)
				for _, r := range risk.Reasons {
					fmt.Printf("  - %s\n", r)
				}
			}

			res, err := doc.Query(query.ImpactAnalysisQuery{Files: changed})
			if err != nil {
				return oops.Code("QUERY_FAILED").With("query", "impactAnalysis").Wrap(err)
			}
			impact := res.(result.Impact)
			fmt.Println(impact.String())
			return nil
		},
	}
	return cmd
}
