package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/LoryBug/mbel/internal/grammarref"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar <file>",
		Short: "Cross-check each line against the reference version/section/attribute grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return oops.Code("READ_FAILED").With("path", path).Wrap(err)
			}
			defer f.Close()

			scanner := bufio.NewScanner(f)
			lineNo := 0
			for scanner.Scan() {
				lineNo++
				line := scanner.Text()
				switch {
				case grammarref.IsVersionLine(line):
					fmt.Printf("%d: version header\n", lineNo)
				case grammarref.IsSectionLine(line):
					fmt.Printf("%d: section header\n", lineNo)
				default:
					if l, err := grammarref.ParseLine(line); err == nil && l.Attribute != nil {
						fmt.Printf("%d: attribute %s = %s\n", lineNo, l.Attribute.Name, l.Attribute.Value)
					}
				}
			}
			return scanner.Err()
		},
	}
	return cmd
}
