package main

import (
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/LoryBug/mbel"
	"github.com/LoryBug/mbel/internal/diagnostic"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and analyze a memory bank file, printing its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := mbel.ParseFile(path)
			if err != nil {
				return oops.Code("READ_FAILED").With("path", path).Wrap(err)
			}

			result := doc.AnalyzeDefault()
			if len(result.Diagnostics) == 0 {
				fmt.Printf("%s: no diagnostics\n", path)
				return nil
			}

			errorCount := 0
			for _, d := range result.Diagnostics {
				fmt.Printf("%s:%d:%d: %s [%s] %s\n",
					path, d.Range.Start.Line, d.Range.Start.Column, d.Severity, d.Code, d.Message)
				for _, rel := range d.RelatedInfo {
					fmt.Printf("  %s:%d:%d: %s\n", path, rel.Range.Start.Line, rel.Range.Start.Column, rel.Message)
				}
				if d.Severity == diagnostic.SeverityError {
					errorCount++
				}
			}

			if errorCount > 0 {
				fmt.Fprintf(os.Stderr, "%d error(s)\n", errorCount)
				os.Exit(1)
			}
			return nil
		},
	}
	return cmd
}
