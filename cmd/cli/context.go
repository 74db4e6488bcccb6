package main

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/LoryBug/mbel"
	"github.com/LoryBug/mbel/internal/query"
	"github.com/LoryBug/mbel/internal/result"
)

func newContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context <file> <feature>",
		Short: "Run getWorkContext for a feature or task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, feature := args[0], args[1]

			doc, err := mbel.ParseFile(path)
			if err != nil {
				return oops.Code("READ_FAILED").With("path", path).Wrap(err)
			}

			res, err := doc.Query(query.WorkContextQuery{Feature: feature})
			if err != nil {
				return oops.Code("QUERY_FAILED").With("query", "workContext").With("feature", feature).Wrap(err)
			}
			wc := res.(result.WorkContext)

			fmt.Println(wc.String())
			fmt.Println("files:")
			for _, f := range wc.Files {
				fmt.Printf("  %s\n", f.Path)
			}
			if wc.EntryPoint != nil {
				fmt.Printf("entry point: %s\n", wc.EntryPoint.File)
			}
			fmt.Printf("depends on: %v\n", wc.Dependencies)
			fmt.Printf("depended on by: %v\n", wc.Dependents)
			for _, d := range wc.Decisions {
				fmt.Printf("decision %s: %s\n", d.Name, d.Reason)
			}
			for _, a := range wc.Anchors {
				fmt.Printf("anchor %s: %s\n", a.Path, a.Description)
			}
			for _, h := range wc.Heat {
				fmt.Printf("heat %s: %v\n", h.Path, h.HeatType)
			}
			return nil
		},
	}
	return cmd
}
