package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LoryBug/mbel"
	"github.com/LoryBug/mbel/internal/query"
)

const replHelp = `mbel interactive REPL

Commands:
  load <name> <file>   Parse and load a memory bank file
  unload <name>        Remove a loaded document
  list                 List all loaded documents
  use <name>           Set the active document for queries
  check                Run AnalyzeDefault on the active document
  help                 Show this help message
  exit / quit          Exit the REPL

Any other input is treated as "<query> <args...>" against the active
document, e.g.:
  files myFeature
  deps myFeature
  risk src/foo.go
  context myFeature
`

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session over one or more loaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepl()
			return nil
		},
	}
}

func runRepl() {
	docs := make(map[string]*mbel.Document)
	var active string

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("mbel — Memory Bank Encoding Language toolkit")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		if active != "" {
			fmt.Printf("[%s]> ", active)
		} else {
			fmt.Print("> ")
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit":
			return

		case "help":
			fmt.Print(replHelp)

		case "list":
			if len(docs) == 0 {
				fmt.Println("(no documents loaded)")
				continue
			}
			for name := range docs {
				marker := " "
				if name == active {
					marker = "*"
				}
				fmt.Printf("  %s %s\n", marker, name)
			}

		case "use":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: use <name>")
				continue
			}
			name := parts[1]
			if _, ok := docs[name]; !ok {
				fmt.Fprintf(os.Stderr, "no document named %q\n", name)
				continue
			}
			active = name
			fmt.Printf("active document set to %q\n", name)

		case "load":
			if len(parts) < 3 {
				fmt.Fprintln(os.Stderr, "usage: load <name> <file>")
				continue
			}
			name, path := parts[1], parts[2]
			doc, err := mbel.ParseFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error loading %q: %v\n", path, err)
				continue
			}
			docs[name] = doc
			if active == "" {
				active = name
			}
			fmt.Printf("loaded %q (%d parse error(s))\n", name, len(doc.Errors))

		case "unload":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: unload <name>")
				continue
			}
			name := parts[1]
			if _, ok := docs[name]; !ok {
				fmt.Fprintf(os.Stderr, "no document named %q\n", name)
				continue
			}
			delete(docs, name)
			if active == name {
				active = ""
			}
			fmt.Printf("unloaded %q\n", name)

		case "check":
			if active == "" {
				fmt.Fprintln(os.Stderr, "no active document — use 'load' or 'use' first")
				continue
			}
			res := docs[active].AnalyzeDefault()
			if len(res.Diagnostics) == 0 {
				fmt.Println("no diagnostics")
				continue
			}
			for _, d := range res.Diagnostics {
				fmt.Printf("%d:%d: %s [%s] %s\n", d.Range.Start.Line, d.Range.Start.Column, d.Severity, d.Code, d.Message)
			}

		default:
			if active == "" {
				fmt.Fprintln(os.Stderr, "no active document — use 'load' or 'use' first")
				continue
			}
			runReplQuery(docs[active], cmd, parts[1:])
		}
	}
}

func runReplQuery(doc *mbel.Document, verb string, args []string) {
	var q query.Query
	switch verb {
	case "files":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "usage: files <feature>")
			return
		}
		q = query.FeatureFilesQuery{Name: args[0]}
	case "deps":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "usage: deps <feature>")
			return
		}
		q = query.FeatureDependenciesQuery{Name: args[0]}
	case "dependents":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "usage: dependents <feature>")
			return
		}
		q = query.DependentsQuery{Name: args[0]}
	case "cycles":
		q = query.CircularDependenciesQuery{}
	case "risk":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "usage: risk <path>")
			return
		}
		q = query.EditRiskQuery{Path: args[0]}
	case "context":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "usage: context <feature>")
			return
		}
		q = query.WorkContextQuery{Feature: args[0]}
	case "search":
		q = query.SemanticSearchQuery{Query: strings.Join(args, " ")}
	default:
		fmt.Fprintf(os.Stderr, "unrecognized command or query %q — try 'help'\n", verb)
		return
	}

	res, err := doc.Query(q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query error: %v\n", err)
		return
	}
	if res == nil {
		fmt.Println("(no result)")
		return
	}
	fmt.Println(res.String())
}
